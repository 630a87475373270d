package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/fleet-logistics/internal/model"
	"github.com/nurpe/fleet-logistics/internal/service"
)

func (h *Handler) registerOperations(router *gin.Engine) {
	router.POST("/maintenance", h.registerMaintenance)
	router.POST("/evaluations", h.registerEvaluation)
	router.GET("/evaluations/:id", h.getEvaluation)
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func (h *Handler) updateLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	result, err := h.tracking.UpdateLocation(c.Request.Context(), id, service.LocationInput{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type maintenanceRequest struct {
	TruckID     string  `json:"truck_id" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	KmPerformed float64 `json:"km_performed"`
	PerformedAt *string `json:"performed_at"`
	Notes       string  `json:"notes"`
	Cost        float64 `json:"cost"`
}

func (h *Handler) registerMaintenance(c *gin.Context) {
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	truckID, err := uuid.Parse(req.TruckID)
	if err != nil {
		badRequest(c, "invalid truck_id")
		return
	}
	performedAt, err := parseOptionalTime(req.PerformedAt)
	if err != nil {
		badRequest(c, "invalid performed_at")
		return
	}

	record, err := h.maintenance.Register(c.Request.Context(), service.MaintenanceInput{
		TruckID:     truckID,
		Type:        model.MaintenanceType(req.Type),
		KmPerformed: req.KmPerformed,
		PerformedAt: performedAt,
		Notes:       req.Notes,
		Cost:        req.Cost,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) listMaintenance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	records, err := h.maintenance.ListByTruck(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) maintenanceAlerts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	alerts, err := h.maintenance.Alerts(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

type evaluationRequest struct {
	ShipmentID string `json:"shipment_id" binding:"required"`
	Score      int    `json:"score" binding:"required"`
	Comment    string `json:"comment"`
}

func (h *Handler) registerEvaluation(c *gin.Context) {
	var req evaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	shipmentID, err := uuid.Parse(req.ShipmentID)
	if err != nil {
		badRequest(c, "invalid shipment_id")
		return
	}
	evaluation, err := h.evaluations.Register(c.Request.Context(), service.EvaluationInput{
		ShipmentID: shipmentID,
		Score:      req.Score,
		Comment:    req.Comment,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, evaluation)
}

func (h *Handler) getEvaluation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	evaluation, err := h.evaluations.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, evaluation)
}
