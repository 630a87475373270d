package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type ManifestGenerator interface {
	Generate(manifest model.TripManifest) ([]byte, error)
}

type ManifestService struct {
	trips   TripStore
	trucks  TruckStore
	drivers DriverStore
	excel   ManifestGenerator
	pdf     ManifestGenerator
}

func NewManifestService(trips TripStore, trucks TruckStore, drivers DriverStore, excel, pdf ManifestGenerator) *ManifestService {
	return &ManifestService{
		trips:   trips,
		trucks:  trucks,
		drivers: drivers,
		excel:   excel,
		pdf:     pdf,
	}
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *ManifestService) ExportExcel(ctx context.Context, tripID uuid.UUID) (*ExportResult, error) {
	return s.export(ctx, tripID, s.excel, "xlsx")
}

func (s *ManifestService) ExportPDF(ctx context.Context, tripID uuid.UUID) (*ExportResult, error) {
	return s.export(ctx, tripID, s.pdf, "pdf")
}

func (s *ManifestService) Build(ctx context.Context, tripID uuid.UUID) (*model.TripManifest, error) {
	trip, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, storeError(err, "trip", tripID)
	}
	truck, err := s.trucks.Get(ctx, trip.TruckID)
	if err != nil {
		return nil, storeError(err, "truck", trip.TruckID)
	}
	driver, err := s.drivers.Get(ctx, trip.DriverID)
	if err != nil {
		return nil, storeError(err, "driver", trip.DriverID)
	}
	return &model.TripManifest{
		Trip:        *trip,
		Truck:       *truck,
		Driver:      *driver,
		Shipments:   trip.Shipments,
		GeneratedAt: now(),
	}, nil
}

func (s *ManifestService) export(ctx context.Context, tripID uuid.UUID, generator ManifestGenerator, ext string) (*ExportResult, error) {
	manifest, err := s.Build(ctx, tripID)
	if err != nil {
		return nil, err
	}
	content, err := generator.Generate(*manifest)
	if err != nil {
		return nil, fmt.Errorf("generate %s manifest: %w", ext, err)
	}
	return &ExportResult{
		FileName: fmt.Sprintf("manifest_%s_%s.%s", manifest.Truck.Plate, manifest.Trip.DepartedAt.Format("20060102"), ext),
		Content:  content,
	}, nil
}
