package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nurpe/fleet-logistics/internal/model"
	"github.com/nurpe/fleet-logistics/internal/service"
)

func (h *Handler) registerShipments(router *gin.Engine) {
	shipments := router.Group("/shipments")
	shipments.POST("", h.createShipment)
	shipments.GET("", h.listShipments)
	shipments.GET("/quotes", h.listQuotes)
	shipments.GET("/:id", h.getShipment)
	shipments.PUT("/:id", h.updateShipment)
	shipments.DELETE("/:id", h.deleteShipment)
	shipments.PUT("/:id/status", h.updateOverallStatus)
	shipments.PUT("/:id/status/driver", h.updateDriverStatus)
	shipments.PUT("/:id/status/client", h.updateClientStatus)

	router.GET("/boxes/:id/shipments", h.listShipmentsByBox)
}

type shipmentRequest struct {
	Product       string  `json:"product" binding:"required"`
	Length        float64 `json:"length" binding:"required"`
	Width         float64 `json:"width" binding:"required"`
	Height        float64 `json:"height" binding:"required"`
	Weight        float64 `json:"weight" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required"`
	Origin        string  `json:"origin" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	PickupAt      *string `json:"pickup_at"`
	PaymentStatus string  `json:"payment_status"`
	BoxID         string  `json:"box_id" binding:"required"`
	ClientID      *string `json:"client_id"`
	CarrierID     *string `json:"carrier_id"`
}

func (r shipmentRequest) toInput() (service.ShipmentInput, string) {
	boxID, err := uuid.Parse(r.BoxID)
	if err != nil {
		return service.ShipmentInput{}, "invalid box_id"
	}
	clientID, err := parseOptionalID(r.ClientID)
	if err != nil {
		return service.ShipmentInput{}, "invalid client_id"
	}
	carrierID, err := parseOptionalID(r.CarrierID)
	if err != nil {
		return service.ShipmentInput{}, "invalid carrier_id"
	}
	pickupAt, err := parseOptionalTime(r.PickupAt)
	if err != nil {
		return service.ShipmentInput{}, "invalid pickup_at"
	}
	return service.ShipmentInput{
		Product:       r.Product,
		Length:        r.Length,
		Width:         r.Width,
		Height:        r.Height,
		Weight:        r.Weight,
		Quantity:      r.Quantity,
		Origin:        r.Origin,
		Destination:   r.Destination,
		PickupAt:      pickupAt,
		PaymentStatus: r.PaymentStatus,
		BoxID:         boxID,
		ClientID:      clientID,
		CarrierID:     carrierID,
	}, ""
}

func (h *Handler) createShipment(c *gin.Context) {
	var req shipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	input, msg := req.toInput()
	if msg != "" {
		badRequest(c, msg)
		return
	}
	shipment, err := h.shipments.Register(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shipment)
}

func (h *Handler) listShipments(c *gin.Context) {
	shipments, err := h.shipments.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipments)
}

func (h *Handler) listShipmentsByBox(c *gin.Context) {
	boxID, ok := pathID(c)
	if !ok {
		return
	}
	shipments, err := h.shipments.ListByBox(c.Request.Context(), boxID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipments)
}

func (h *Handler) getShipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	shipment, err := h.shipments.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

func (h *Handler) updateShipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req shipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	input, msg := req.toInput()
	if msg != "" {
		badRequest(c, msg)
		return
	}
	shipment, err := h.shipments.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

func (h *Handler) deleteShipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.shipments.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type statusUpdate func(c *gin.Context, id uuid.UUID, status model.DeliveryStatus) (*model.Shipment, error)

func (h *Handler) updateStatus(c *gin.Context, apply statusUpdate) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	status, err := model.ParseDeliveryStatus(req.Status)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	shipment, err := apply(c, id, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

func (h *Handler) updateOverallStatus(c *gin.Context) {
	h.updateStatus(c, func(c *gin.Context, id uuid.UUID, status model.DeliveryStatus) (*model.Shipment, error) {
		return h.shipments.UpdateOverallStatus(c.Request.Context(), id, status)
	})
}

func (h *Handler) updateDriverStatus(c *gin.Context) {
	h.updateStatus(c, func(c *gin.Context, id uuid.UUID, status model.DeliveryStatus) (*model.Shipment, error) {
		return h.shipments.UpdateDriverStatus(c.Request.Context(), id, status)
	})
}

func (h *Handler) updateClientStatus(c *gin.Context) {
	h.updateStatus(c, func(c *gin.Context, id uuid.UUID, status model.DeliveryStatus) (*model.Shipment, error) {
		return h.shipments.UpdateClientStatus(c.Request.Context(), id, status)
	})
}

type quoteQuery struct {
	Weight      float64 `form:"weight" binding:"required"`
	Length      float64 `form:"length" binding:"required"`
	Width       float64 `form:"width" binding:"required"`
	Height      float64 `form:"height" binding:"required"`
	Quantity    int     `form:"quantity"`
	Origin      string  `form:"origin" binding:"required"`
	Destination string  `form:"destination" binding:"required"`
}

func (h *Handler) listQuotes(c *gin.Context) {
	var query quoteQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err.Error())
		return
	}
	if query.Quantity == 0 {
		query.Quantity = 1
	}
	quotes, err := h.shipments.ListAvailableCarrierQuotes(c.Request.Context(), service.QuoteInput{
		Weight:      query.Weight,
		Length:      query.Length,
		Width:       query.Width,
		Height:      query.Height,
		Quantity:    query.Quantity,
		Origin:      query.Origin,
		Destination: query.Destination,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}
