package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nurpe/fleet-logistics/internal/model"
)

type Planner struct {
	shipments   ShipmentStore
	trucks      TruckStore
	cubicFactor float64
}

func NewPlanner(shipments ShipmentStore, trucks TruckStore, cubicFactor float64) *Planner {
	return &Planner{shipments: shipments, trucks: trucks, cubicFactor: cubicFactor}
}

type LoadSummary struct {
	TotalWeight    float64 `json:"total_weight"`
	TotalCubic     float64 `json:"total_cubic_weight"`
	RequiredWeight float64 `json:"required_weight"`
	RequiredVolume float64 `json:"required_volume"`
}

type TruckSuggestion struct {
	Truck    model.Truck `json:"truck"`
	Load     LoadSummary `json:"load"`
	Headroom float64     `json:"headroom"`
}

func (p *Planner) Summarize(shipments []model.Shipment) LoadSummary {
	var summary LoadSummary
	for _, shipment := range shipments {
		volume := shipment.Volume()
		summary.TotalWeight += shipment.Weight
		summary.TotalCubic += volume * p.cubicFactor
		summary.RequiredVolume += volume
	}
	summary.RequiredWeight = summary.TotalWeight
	if summary.TotalCubic > summary.RequiredWeight {
		summary.RequiredWeight = summary.TotalCubic
	}
	return summary
}

// SuggestBestTruck picks the feasible truck with the least spare load capacity.
// The first truck reaching the minimum wins ties.
func (p *Planner) SuggestBestTruck(ctx context.Context, shipmentIDs []uuid.UUID) (*TruckSuggestion, error) {
	ids, err := uniqueIDs(shipmentIDs)
	if err != nil {
		return nil, err
	}

	shipments, err := p.shipments.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(shipments) != len(shipmentIDs) {
		return nil, fmt.Errorf("%w: one or more shipments not found", ErrNotFound)
	}

	trucks, err := p.trucks.List(ctx)
	if err != nil {
		return nil, err
	}

	load := p.Summarize(shipments)
	best, ok := pickTruck(trucks, load)
	if !ok {
		return nil, fmt.Errorf("%w: need %.2f kg and %.3f m3",
			ErrNoTruckAvailable, load.RequiredWeight, load.RequiredVolume)
	}

	return &TruckSuggestion{
		Truck:    best,
		Load:     load,
		Headroom: best.MaxLoad - load.RequiredWeight,
	}, nil
}

func pickTruck(trucks []model.Truck, load LoadSummary) (model.Truck, bool) {
	var (
		best     model.Truck
		found    bool
		headroom float64
	)
	for _, truck := range trucks {
		if truck.MaxLoad < load.RequiredWeight || truck.Volume() < load.RequiredVolume {
			continue
		}
		spare := truck.MaxLoad - load.RequiredWeight
		if !found || spare < headroom {
			best, headroom, found = truck, spare, true
		}
	}
	return best, found
}
