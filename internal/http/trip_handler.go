package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/fleet-logistics/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

func (h *Handler) registerTrips(router *gin.Engine) {
	trips := router.Group("/trips")
	trips.POST("", h.dispatchTrip)
	trips.GET("", h.listTrips)
	trips.GET("/:id", h.getTrip)
	trips.PUT("/:id/finalize", h.finalizeTrip)
	trips.GET("/:id/manifest.xlsx", h.exportManifestExcel)
	trips.GET("/:id/manifest.pdf", h.exportManifestPDF)

	router.POST("/planning/suggest-truck", h.suggestTruck)
}

type dispatchRequest struct {
	TruckID     string   `json:"truck_id" binding:"required"`
	DriverID    string   `json:"driver_id" binding:"required"`
	ShipmentIDs []string `json:"shipment_ids" binding:"required,min=1"`
	DepartureKm float64  `json:"departure_km"`
}

func (h *Handler) dispatchTrip(c *gin.Context) {
	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ids, err := parseIDs([]string{req.TruckID, req.DriverID})
	if err != nil {
		badRequest(c, "invalid truck_id or driver_id")
		return
	}
	shipmentIDs, err := parseIDs(req.ShipmentIDs)
	if err != nil {
		badRequest(c, "invalid shipment_ids")
		return
	}

	trip, err := h.trips.Register(c.Request.Context(), service.DispatchInput{
		TruckID:     ids[0],
		DriverID:    ids[1],
		ShipmentIDs: shipmentIDs,
		DepartureKm: req.DepartureKm,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

func (h *Handler) listTrips(c *gin.Context) {
	trips, err := h.trips.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (h *Handler) getTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	trip, err := h.trips.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type finalizeRequest struct {
	ArrivalKm  *float64 `json:"arrival_km" binding:"required"`
	FuelLiters float64  `json:"fuel_liters"`
}

func (h *Handler) finalizeTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req finalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	trip, err := h.trips.Finalize(c.Request.Context(), id, service.FinalizeInput{
		ArrivalKm:  *req.ArrivalKm,
		FuelLiters: req.FuelLiters,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *Handler) exportManifestExcel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.manifests.ExportExcel(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	attachment(c, xlsxContentType, result)
}

func (h *Handler) exportManifestPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := h.manifests.ExportPDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	attachment(c, pdfContentType, result)
}

type suggestTruckRequest struct {
	ShipmentIDs []string `json:"shipment_ids" binding:"required,min=1"`
}

func (h *Handler) suggestTruck(c *gin.Context) {
	var req suggestTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ids, err := parseIDs(req.ShipmentIDs)
	if err != nil {
		badRequest(c, "invalid shipment_ids")
		return
	}
	suggestion, err := h.planner.SuggestBestTruck(c.Request.Context(), ids)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}
