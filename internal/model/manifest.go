package model

import "time"

// TripManifest is the document view of a trip used by the xlsx and pdf exports.
type TripManifest struct {
	Trip        Trip
	Truck       Truck
	Driver      Driver
	Shipments   []Shipment
	GeneratedAt time.Time
}

func (m TripManifest) TotalWeight() float64 {
	total := 0.0
	for _, shipment := range m.Shipments {
		total += shipment.Weight
	}
	return total
}

func (m TripManifest) TotalFreight() float64 {
	total := 0.0
	for _, shipment := range m.Shipments {
		total += shipment.Freight
	}
	return total
}
