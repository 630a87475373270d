package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/fleet-logistics/internal/model"
)

func (h *Handler) registerFleet(router *gin.Engine) {
	trucks := router.Group("/trucks")
	trucks.POST("", h.createTruck)
	trucks.GET("", h.listTrucks)
	trucks.GET("/:id", h.getTruck)
	trucks.PUT("/:id", h.updateTruck)
	trucks.GET("/:id/maintenance", h.listMaintenance)
	trucks.GET("/:id/maintenance-alerts", h.maintenanceAlerts)

	drivers := router.Group("/drivers")
	drivers.POST("", h.createDriver)
	drivers.GET("", h.listDrivers)
	drivers.GET("/cpf/:cpf", h.findDriverByCPF)
	drivers.GET("/cnh/:cnh", h.findDriverByCNH)
	drivers.GET("/available/count", h.countAvailableDrivers)
	drivers.GET("/:id", h.getDriver)
	drivers.PUT("/:id", h.updateDriver)
	drivers.POST("/:id/location", h.updateLocation)

	boxes := router.Group("/boxes")
	boxes.POST("", h.createBox)
	boxes.GET("", h.listBoxes)
	boxes.GET("/:id", h.getBox)
	boxes.PUT("/:id", h.updateBox)
	boxes.GET("/:id/fits", h.boxFits)

	clients := router.Group("/clients")
	clients.POST("", h.createClient)
	clients.GET("", h.listClients)
	clients.GET("/:id", h.getClient)
	clients.PUT("/:id", h.updateClient)

	carriers := router.Group("/carriers")
	carriers.POST("", h.createCarrier)
	carriers.GET("", h.listCarriers)
	carriers.GET("/:id", h.getCarrier)
	carriers.PUT("/:id", h.updateCarrier)
	carriers.PUT("/:id/active", h.setCarrierActive)
}

type truckRequest struct {
	Model     string  `json:"model" binding:"required"`
	Brand     string  `json:"brand"`
	Plate     string  `json:"plate" binding:"required"`
	MaxLoad   float64 `json:"max_load" binding:"required"`
	Length    float64 `json:"length" binding:"required"`
	Width     float64 `json:"width" binding:"required"`
	Height    float64 `json:"height" binding:"required"`
	Year      int     `json:"year"`
	CurrentKm float64 `json:"current_km"`
}

func (r truckRequest) toModel() model.Truck {
	return model.Truck{
		Model:     r.Model,
		Brand:     r.Brand,
		Plate:     r.Plate,
		MaxLoad:   r.MaxLoad,
		Length:    r.Length,
		Width:     r.Width,
		Height:    r.Height,
		Year:      r.Year,
		CurrentKm: r.CurrentKm,
	}
}

func (h *Handler) createTruck(c *gin.Context) {
	var req truckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	truck, err := h.fleet.CreateTruck(c.Request.Context(), req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, truck)
}

func (h *Handler) listTrucks(c *gin.Context) {
	trucks, err := h.fleet.ListTrucks(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, trucks)
}

func (h *Handler) getTruck(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	truck, err := h.fleet.GetTruck(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, truck)
}

func (h *Handler) updateTruck(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req truckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	truck, err := h.fleet.UpdateTruck(c.Request.Context(), id, req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, truck)
}

// driverRequest has no availability field; only trips change it.
type driverRequest struct {
	Name          string `json:"name" binding:"required"`
	CPF           string `json:"cpf" binding:"required"`
	CNH           string `json:"cnh"`
	WhatsappPhone string `json:"whatsapp_phone"`
	Active        *bool  `json:"active"`
}

func (r driverRequest) toModel() model.Driver {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return model.Driver{
		Name:          r.Name,
		CPF:           r.CPF,
		CNH:           r.CNH,
		WhatsappPhone: r.WhatsappPhone,
		Active:        active,
	}
}

func (h *Handler) createDriver(c *gin.Context) {
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	driver, err := h.fleet.CreateDriver(c.Request.Context(), req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

func (h *Handler) listDrivers(c *gin.Context) {
	drivers, err := h.fleet.ListDrivers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *Handler) findDriverByCPF(c *gin.Context) {
	driver, err := h.fleet.FindDriverByCPF(c.Request.Context(), c.Param("cpf"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *Handler) findDriverByCNH(c *gin.Context) {
	driver, err := h.fleet.FindDriverByCNH(c.Request.Context(), c.Param("cnh"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *Handler) countAvailableDrivers(c *gin.Context) {
	count, err := h.fleet.CountAvailableDrivers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": count})
}

func (h *Handler) getDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	driver, err := h.fleet.GetDriver(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *Handler) updateDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req driverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	driver, err := h.fleet.UpdateDriver(c.Request.Context(), id, req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

type boxRequest struct {
	Material   string  `json:"material"`
	CapacityKg float64 `json:"capacity_kg" binding:"required"`
	Available  *bool   `json:"available"`
	Height     float64 `json:"height" binding:"required"`
	Width      float64 `json:"width" binding:"required"`
	Depth      float64 `json:"depth" binding:"required"`
}

func (r boxRequest) toModel() model.Box {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return model.Box{
		Material:   r.Material,
		CapacityKg: r.CapacityKg,
		Available:  available,
		Height:     r.Height,
		Width:      r.Width,
		Depth:      r.Depth,
	}
}

func (h *Handler) createBox(c *gin.Context) {
	var req boxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	box, err := h.fleet.CreateBox(c.Request.Context(), req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, box)
}

func (h *Handler) listBoxes(c *gin.Context) {
	boxes, err := h.fleet.ListBoxes(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, boxes)
}

func (h *Handler) getBox(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	box, err := h.fleet.GetBox(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, box)
}

func (h *Handler) updateBox(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req boxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	box, err := h.fleet.UpdateBox(c.Request.Context(), id, req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, box)
}

type boxFitQuery struct {
	Length float64 `form:"length" binding:"required"`
	Width  float64 `form:"width" binding:"required"`
	Height float64 `form:"height" binding:"required"`
	Weight float64 `form:"weight" binding:"required"`
}

func (h *Handler) boxFits(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var query boxFitQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err.Error())
		return
	}
	result, err := h.fleet.CheckBoxFit(c.Request.Context(), id, query.Length, query.Width, query.Height, query.Weight)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type clientRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Document   string `json:"document"`
	PostalCode string `json:"postal_code"`
	Active     *bool  `json:"active"`
}

func (r clientRequest) toModel() model.Client {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return model.Client{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		City:       r.City,
		Document:   r.Document,
		PostalCode: r.PostalCode,
		Active:     active,
	}
}

func (h *Handler) createClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	client, err := h.fleet.CreateClient(c.Request.Context(), req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *Handler) listClients(c *gin.Context) {
	clients, err := h.fleet.ListClients(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *Handler) getClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	client, err := h.fleet.GetClient(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *Handler) updateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	client, err := h.fleet.UpdateClient(c.Request.Context(), id, req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

type carrierRequest struct {
	Name       string   `json:"name" binding:"required"`
	CNPJ       string   `json:"cnpj" binding:"required"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	Notes      string   `json:"notes"`
	RatePerKm  *float64 `json:"rate_per_km"`
	RatePerBox *float64 `json:"rate_per_box"`
	RatePerKg  *float64 `json:"rate_per_kg"`
}

func (r carrierRequest) toModel() model.Carrier {
	return model.Carrier{
		Name:       r.Name,
		CNPJ:       r.CNPJ,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Notes:      r.Notes,
		RatePerKm:  r.RatePerKm,
		RatePerBox: r.RatePerBox,
		RatePerKg:  r.RatePerKg,
	}
}

func (h *Handler) createCarrier(c *gin.Context) {
	var req carrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	carrier, err := h.fleet.CreateCarrier(c.Request.Context(), req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, carrier)
}

func (h *Handler) listCarriers(c *gin.Context) {
	carriers, err := h.fleet.ListCarriers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, carriers)
}

func (h *Handler) getCarrier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	carrier, err := h.fleet.GetCarrier(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, carrier)
}

func (h *Handler) updateCarrier(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req carrierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	carrier, err := h.fleet.UpdateCarrier(c.Request.Context(), id, req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, carrier)
}

type carrierActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *Handler) setCarrierActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req carrierActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	carrier, err := h.fleet.SetCarrierActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, carrier)
}
