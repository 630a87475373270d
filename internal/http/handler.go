package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/fleet-logistics/internal/model"
	"github.com/nurpe/fleet-logistics/internal/service"
)

type FleetService interface {
	CreateTruck(ctx context.Context, truck model.Truck) (*model.Truck, error)
	GetTruck(ctx context.Context, id uuid.UUID) (*model.Truck, error)
	ListTrucks(ctx context.Context) ([]model.Truck, error)
	UpdateTruck(ctx context.Context, id uuid.UUID, input model.Truck) (*model.Truck, error)
	CreateDriver(ctx context.Context, driver model.Driver) (*model.Driver, error)
	GetDriver(ctx context.Context, id uuid.UUID) (*model.Driver, error)
	ListDrivers(ctx context.Context) ([]model.Driver, error)
	UpdateDriver(ctx context.Context, id uuid.UUID, input model.Driver) (*model.Driver, error)
	FindDriverByCPF(ctx context.Context, cpf string) (*model.Driver, error)
	FindDriverByCNH(ctx context.Context, cnh string) (*model.Driver, error)
	CountAvailableDrivers(ctx context.Context) (int64, error)
	CreateBox(ctx context.Context, box model.Box) (*model.Box, error)
	GetBox(ctx context.Context, id uuid.UUID) (*model.Box, error)
	ListBoxes(ctx context.Context) ([]model.Box, error)
	UpdateBox(ctx context.Context, id uuid.UUID, input model.Box) (*model.Box, error)
	CheckBoxFit(ctx context.Context, id uuid.UUID, length, width, height, weight float64) (*service.FitResult, error)
	CreateClient(ctx context.Context, client model.Client) (*model.Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error)
	ListClients(ctx context.Context) ([]model.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, input model.Client) (*model.Client, error)
	CreateCarrier(ctx context.Context, carrier model.Carrier) (*model.Carrier, error)
	GetCarrier(ctx context.Context, id uuid.UUID) (*model.Carrier, error)
	ListCarriers(ctx context.Context) ([]model.Carrier, error)
	UpdateCarrier(ctx context.Context, id uuid.UUID, input model.Carrier) (*model.Carrier, error)
	SetCarrierActive(ctx context.Context, id uuid.UUID, active bool) (*model.Carrier, error)
}

type ShipmentService interface {
	Register(ctx context.Context, input service.ShipmentInput) (*model.Shipment, error)
	Update(ctx context.Context, id uuid.UUID, input service.ShipmentInput) (*model.Shipment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Shipment, error)
	List(ctx context.Context) ([]model.Shipment, error)
	ListByBox(ctx context.Context, boxID uuid.UUID) ([]model.Shipment, error)
	UpdateDriverStatus(ctx context.Context, id uuid.UUID, status model.DeliveryStatus) (*model.Shipment, error)
	UpdateClientStatus(ctx context.Context, id uuid.UUID, status model.DeliveryStatus) (*model.Shipment, error)
	UpdateOverallStatus(ctx context.Context, id uuid.UUID, status model.DeliveryStatus) (*model.Shipment, error)
	ListAvailableCarrierQuotes(ctx context.Context, input service.QuoteInput) ([]model.CarrierQuote, error)
}

type TripService interface {
	Register(ctx context.Context, input service.DispatchInput) (*model.Trip, error)
	Finalize(ctx context.Context, id uuid.UUID, input service.FinalizeInput) (*model.Trip, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Trip, error)
	List(ctx context.Context) ([]model.Trip, error)
}

type Planner interface {
	SuggestBestTruck(ctx context.Context, shipmentIDs []uuid.UUID) (*service.TruckSuggestion, error)
}

type TrackingService interface {
	UpdateLocation(ctx context.Context, driverID uuid.UUID, input service.LocationInput) (*service.TrackingResult, error)
}

type MaintenanceService interface {
	Register(ctx context.Context, input service.MaintenanceInput) (*model.Maintenance, error)
	ListByTruck(ctx context.Context, truckID uuid.UUID) ([]model.Maintenance, error)
	Alerts(ctx context.Context, truckID uuid.UUID) ([]model.MaintenanceAlert, error)
}

type EvaluationService interface {
	Register(ctx context.Context, input service.EvaluationInput) (*model.Evaluation, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Evaluation, error)
}

type ManifestService interface {
	ExportExcel(ctx context.Context, tripID uuid.UUID) (*service.ExportResult, error)
	ExportPDF(ctx context.Context, tripID uuid.UUID) (*service.ExportResult, error)
}

type Services struct {
	Fleet       FleetService
	Shipments   ShipmentService
	Trips       TripService
	Planner     Planner
	Tracking    TrackingService
	Maintenance MaintenanceService
	Evaluations EvaluationService
	Manifests   ManifestService
}

type Handler struct {
	fleet       FleetService
	shipments   ShipmentService
	trips       TripService
	planner     Planner
	tracking    TrackingService
	maintenance MaintenanceService
	evaluations EvaluationService
	manifests   ManifestService
	log         zerolog.Logger
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{
		fleet:       services.Fleet,
		shipments:   services.Shipments,
		trips:       services.Trips,
		planner:     services.Planner,
		tracking:    services.Tracking,
		maintenance: services.Maintenance,
		evaluations: services.Evaluations,
		manifests:   services.Manifests,
		log:         log,
	}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.registerFleet(router)
	h.registerShipments(router)
	h.registerTrips(router)
	h.registerOperations(router)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrBusinessRule):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		badRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseOptionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseOptionalTime(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := parseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func attachment(c *gin.Context, contentType string, result *service.ExportResult) {
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}
