package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-logistics/internal/config"
	"github.com/nurpe/fleet-logistics/internal/model"
)

const upcomingShare = 0.9

type MaintenanceService struct {
	trucks    TruckStore
	records   MaintenanceStore
	intervals map[model.MaintenanceType]float64
}

func NewMaintenanceService(trucks TruckStore, records MaintenanceStore, cfg config.MaintenanceConfig) *MaintenanceService {
	return &MaintenanceService{
		trucks:  trucks,
		records: records,
		intervals: map[model.MaintenanceType]float64{
			model.MaintenanceOilFilters: cfg.OilIntervalKm,
			model.MaintenanceTyres:      cfg.TyreIntervalKm,
		},
	}
}

type MaintenanceInput struct {
	TruckID     uuid.UUID
	Type        model.MaintenanceType
	KmPerformed float64
	PerformedAt *time.Time
	Notes       string
	Cost        float64
}

func (s *MaintenanceService) Register(ctx context.Context, input MaintenanceInput) (*model.Maintenance, error) {
	if input.KmPerformed < 0 || input.Cost < 0 {
		return nil, fmt.Errorf("%w: km and cost must not be negative", ErrInvalidInput)
	}
	kind, err := model.ParseMaintenanceType(string(input.Type))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	truck, err := s.trucks.Get(ctx, input.TruckID)
	if err != nil {
		return nil, storeError(err, "truck", input.TruckID)
	}
	if input.KmPerformed > truck.CurrentKm {
		return nil, fmt.Errorf("%w: %.1f > %.1f", ErrMaintenanceKm, input.KmPerformed, truck.CurrentKm)
	}

	performedAt := now()
	if input.PerformedAt != nil {
		performedAt = input.PerformedAt.UTC()
	}
	record := &model.Maintenance{
		TruckID:     truck.ID,
		Type:        kind,
		PerformedAt: performedAt,
		KmPerformed: input.KmPerformed,
		Notes:       input.Notes,
		Cost:        input.Cost,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *MaintenanceService) ListByTruck(ctx context.Context, truckID uuid.UUID) ([]model.Maintenance, error) {
	if _, err := s.trucks.Get(ctx, truckID); err != nil {
		return nil, storeError(err, "truck", truckID)
	}
	return s.records.ListByTruck(ctx, truckID)
}

// Alerts lists the interval-based services that are due, close to due, or
// were never registered. An empty slice means nothing is pending.
func (s *MaintenanceService) Alerts(ctx context.Context, truckID uuid.UUID) ([]model.MaintenanceAlert, error) {
	truck, err := s.trucks.Get(ctx, truckID)
	if err != nil {
		return nil, storeError(err, "truck", truckID)
	}

	alerts := []model.MaintenanceAlert{}
	for _, kind := range []model.MaintenanceType{model.MaintenanceOilFilters, model.MaintenanceTyres} {
		interval := s.intervals[kind]
		last, err := s.records.Last(ctx, truck.ID, kind)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			alerts = append(alerts, model.MaintenanceAlert{
				Type:    kind,
				Level:   model.AlertNeverRegistered,
				Message: fmt.Sprintf("%s was never registered", kind),
			})
			continue
		}
		if err != nil {
			return nil, err
		}

		if alert, ok := intervalAlert(kind, interval, truck.CurrentKm-last.KmPerformed); ok {
			alerts = append(alerts, alert)
		}
	}
	return alerts, nil
}

func intervalAlert(kind model.MaintenanceType, interval, since float64) (model.MaintenanceAlert, bool) {
	alert := model.MaintenanceAlert{
		Type:        kind,
		KmSinceLast: since,
		KmRemaining: interval - since,
	}
	switch {
	case since >= interval:
		alert.Level = model.AlertDue
		alert.KmRemaining = 0
		alert.Message = fmt.Sprintf("%s is due", kind)
	case since >= interval*upcomingShare:
		alert.Level = model.AlertUpcoming
		alert.Message = fmt.Sprintf("%s due in %.0f km", kind, interval-since)
	default:
		return model.MaintenanceAlert{}, false
	}
	return alert, true
}
