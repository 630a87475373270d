package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/fleet-logistics/internal/config"
	"github.com/nurpe/fleet-logistics/internal/model"
	"github.com/nurpe/fleet-logistics/internal/routing"
)

type memTable[T any] struct {
	rows   map[uuid.UUID]T
	order  []uuid.UUID
	id     func(*T) *uuid.UUID
	unique func(a, b T) bool
}

func newTable[T any](id func(*T) *uuid.UUID) *memTable[T] {
	return &memTable[T]{rows: map[uuid.UUID]T{}, id: id}
}

func (t *memTable[T]) conflicts(v T, self uuid.UUID) bool {
	if t.unique == nil {
		return false
	}
	for key, row := range t.rows {
		if key != self && t.unique(row, v) {
			return true
		}
	}
	return false
}

func (t *memTable[T]) create(v *T) error {
	p := t.id(v)
	if *p == uuid.Nil {
		*p = uuid.New()
	}
	if t.conflicts(*v, *p) {
		return gorm.ErrDuplicatedKey
	}
	t.rows[*p] = *v
	t.order = append(t.order, *p)
	return nil
}

func (t *memTable[T]) get(id uuid.UUID) (*T, error) {
	v, ok := t.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (t *memTable[T]) save(v *T) error {
	p := t.id(v)
	if _, ok := t.rows[*p]; !ok {
		return gorm.ErrRecordNotFound
	}
	if t.conflicts(*v, *p) {
		return gorm.ErrDuplicatedKey
	}
	t.rows[*p] = *v
	return nil
}

func (t *memTable[T]) delete(id uuid.UUID) error {
	if _, ok := t.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(t.rows, id)
	for i, key := range t.order {
		if key == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *memTable[T]) find(match func(T) bool) (*T, error) {
	for _, key := range t.order {
		if v := t.rows[key]; match(v) {
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (t *memTable[T]) list() []T {
	result := make([]T, 0, len(t.order))
	for _, key := range t.order {
		result = append(result, t.rows[key])
	}
	return result
}

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedRoute struct {
	estimate routing.Estimate
	calls    int
}

func (f *fixedRoute) Estimate(context.Context, string, string) routing.Estimate {
	f.calls++
	return f.estimate
}

type fakeTrucks struct{ *memTable[model.Truck] }

func (f fakeTrucks) Create(_ context.Context, v *model.Truck) error { return f.create(v) }
func (f fakeTrucks) Get(_ context.Context, id uuid.UUID) (*model.Truck, error) {
	return f.get(id)
}
func (f fakeTrucks) GetForUpdate(_ context.Context, id uuid.UUID) (*model.Truck, error) {
	return f.get(id)
}
func (f fakeTrucks) List(context.Context) ([]model.Truck, error) { return f.list(), nil }
func (f fakeTrucks) Update(_ context.Context, v *model.Truck) error { return f.save(v) }

type fakeDrivers struct{ *memTable[model.Driver] }

func (f fakeDrivers) Create(_ context.Context, v *model.Driver) error { return f.create(v) }
func (f fakeDrivers) Get(_ context.Context, id uuid.UUID) (*model.Driver, error) {
	return f.get(id)
}
func (f fakeDrivers) GetForUpdate(_ context.Context, id uuid.UUID) (*model.Driver, error) {
	return f.get(id)
}
func (f fakeDrivers) List(context.Context) ([]model.Driver, error) { return f.list(), nil }
func (f fakeDrivers) Update(_ context.Context, v *model.Driver) error { return f.save(v) }
func (f fakeDrivers) FindByCPF(_ context.Context, cpf string) (*model.Driver, error) {
	return f.find(func(d model.Driver) bool { return d.CPF == cpf })
}
func (f fakeDrivers) FindByCNH(_ context.Context, cnh string) (*model.Driver, error) {
	return f.find(func(d model.Driver) bool { return d.CNH == cnh })
}
func (f fakeDrivers) CountAvailable(context.Context) (int64, error) {
	var count int64
	for _, d := range f.rows {
		if d.Active && d.Available {
			count++
		}
	}
	return count, nil
}

type fakeBoxes struct{ *memTable[model.Box] }

func (f fakeBoxes) Create(_ context.Context, v *model.Box) error { return f.create(v) }
func (f fakeBoxes) Get(_ context.Context, id uuid.UUID) (*model.Box, error) {
	return f.get(id)
}
func (f fakeBoxes) List(context.Context) ([]model.Box, error) { return f.list(), nil }
func (f fakeBoxes) Update(_ context.Context, v *model.Box) error { return f.save(v) }

type fakeClients struct{ *memTable[model.Client] }

func (f fakeClients) Create(_ context.Context, v *model.Client) error { return f.create(v) }
func (f fakeClients) Get(_ context.Context, id uuid.UUID) (*model.Client, error) {
	return f.get(id)
}
func (f fakeClients) List(context.Context) ([]model.Client, error) { return f.list(), nil }
func (f fakeClients) Update(_ context.Context, v *model.Client) error { return f.save(v) }

type fakeCarriers struct{ *memTable[model.Carrier] }

func (f fakeCarriers) Create(_ context.Context, v *model.Carrier) error { return f.create(v) }
func (f fakeCarriers) Get(_ context.Context, id uuid.UUID) (*model.Carrier, error) {
	return f.get(id)
}
func (f fakeCarriers) List(context.Context) ([]model.Carrier, error) { return f.list(), nil }
func (f fakeCarriers) ListActive(context.Context) ([]model.Carrier, error) {
	var active []model.Carrier
	for _, carrier := range f.list() {
		if carrier.Active {
			active = append(active, carrier)
		}
	}
	return active, nil
}
func (f fakeCarriers) Update(_ context.Context, v *model.Carrier) error { return f.save(v) }

type fakeShipments struct{ *memTable[model.Shipment] }

func (f fakeShipments) Create(_ context.Context, v *model.Shipment) error { return f.create(v) }
func (f fakeShipments) Get(_ context.Context, id uuid.UUID) (*model.Shipment, error) {
	return f.get(id)
}
func (f fakeShipments) GetForUpdate(_ context.Context, id uuid.UUID) (*model.Shipment, error) {
	return f.get(id)
}
func (f fakeShipments) GetMany(_ context.Context, ids []uuid.UUID) ([]model.Shipment, error) {
	var result []model.Shipment
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if row, ok := f.rows[id]; ok && !seen[id] {
			seen[id] = true
			result = append(result, row)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID.String() < result[j].ID.String() })
	return result, nil
}
func (f fakeShipments) GetManyForUpdate(ctx context.Context, ids []uuid.UUID) ([]model.Shipment, error) {
	return f.GetMany(ctx, ids)
}
func (f fakeShipments) List(context.Context) ([]model.Shipment, error) { return f.list(), nil }
func (f fakeShipments) ListByBox(_ context.Context, boxID uuid.UUID) ([]model.Shipment, error) {
	result := []model.Shipment{}
	for _, row := range f.list() {
		if row.BoxID != nil && *row.BoxID == boxID {
			result = append(result, row)
		}
	}
	return result, nil
}
func (f fakeShipments) Update(_ context.Context, v *model.Shipment) error { return f.save(v) }
func (f fakeShipments) Delete(_ context.Context, id uuid.UUID) error { return f.delete(id) }

type fakeTrips struct {
	*memTable[model.Trip]
	links     map[uuid.UUID][]uuid.UUID
	shipments fakeShipments
}

func (f fakeTrips) Create(_ context.Context, v *model.Trip) error {
	if err := f.create(v); err != nil {
		return err
	}
	f.links[v.ID] = v.ShipmentIDs()
	return nil
}

func (f fakeTrips) load(trip *model.Trip) *model.Trip {
	trip.Shipments = []model.Shipment{}
	for _, id := range f.links[trip.ID] {
		if row, ok := f.shipments.rows[id]; ok {
			trip.Shipments = append(trip.Shipments, row)
		}
	}
	return trip
}

func (f fakeTrips) Get(_ context.Context, id uuid.UUID) (*model.Trip, error) {
	trip, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return f.load(trip), nil
}
func (f fakeTrips) GetForUpdate(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	return f.Get(ctx, id)
}
func (f fakeTrips) List(context.Context) ([]model.Trip, error) {
	trips := f.list()
	for i := range trips {
		f.load(&trips[i])
	}
	return trips, nil
}
func (f fakeTrips) ListOpenByDriver(_ context.Context, driverID uuid.UUID) ([]model.Trip, error) {
	var open []model.Trip
	for _, trip := range f.list() {
		if trip.DriverID == driverID && !trip.Finalized {
			open = append(open, *f.load(&trip))
		}
	}
	return open, nil
}
func (f fakeTrips) Update(_ context.Context, v *model.Trip) error {
	stored := *v
	stored.Shipments = nil
	return f.save(&stored)
}
func (f fakeTrips) HasShipment(_ context.Context, shipmentID uuid.UUID) (bool, error) {
	for _, ids := range f.links {
		for _, id := range ids {
			if id == shipmentID {
				return true, nil
			}
		}
	}
	return false, nil
}

type fakeMaintenance struct{ *memTable[model.Maintenance] }

func (f fakeMaintenance) Create(_ context.Context, v *model.Maintenance) error { return f.create(v) }
func (f fakeMaintenance) ListByTruck(_ context.Context, truckID uuid.UUID) ([]model.Maintenance, error) {
	var result []model.Maintenance
	for _, record := range f.list() {
		if record.TruckID == truckID {
			result = append(result, record)
		}
	}
	return result, nil
}
func (f fakeMaintenance) Last(_ context.Context, truckID uuid.UUID, kind model.MaintenanceType) (*model.Maintenance, error) {
	var last *model.Maintenance
	for _, record := range f.list() {
		if record.TruckID != truckID || record.Type != kind {
			continue
		}
		if last == nil || record.KmPerformed > last.KmPerformed {
			r := record
			last = &r
		}
	}
	if last == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return last, nil
}

type fakeEvaluations struct {
	*memTable[model.Evaluation]
	shipments fakeShipments
}

func (f fakeEvaluations) Create(_ context.Context, v *model.Evaluation) error { return f.create(v) }
func (f fakeEvaluations) Get(_ context.Context, id uuid.UUID) (*model.Evaluation, error) {
	return f.get(id)
}
func (f fakeEvaluations) ExistsForShipment(_ context.Context, shipmentID uuid.UUID) (bool, error) {
	for _, evaluation := range f.list() {
		if evaluation.ShipmentID == shipmentID {
			return true, nil
		}
	}
	return false, nil
}
func (f fakeEvaluations) AverageScoreForCarrier(_ context.Context, carrierID uuid.UUID) (float64, bool, error) {
	total, count := 0, 0
	for _, evaluation := range f.list() {
		shipment, ok := f.shipments.rows[evaluation.ShipmentID]
		if !ok || shipment.CarrierID == nil || *shipment.CarrierID != carrierID {
			continue
		}
		total += evaluation.Score
		count++
	}
	if count == 0 {
		return 0, false, nil
	}
	return float64(total) / float64(count), true, nil
}

type fakeNotifications struct{ *memTable[model.Notification] }

func (f fakeNotifications) Create(_ context.Context, v *model.Notification) error {
	return f.create(v)
}

// fixture wires every service against one in-memory store set.
type fixture struct {
	trucks        fakeTrucks
	drivers       fakeDrivers
	boxes         fakeBoxes
	clients       fakeClients
	carriers      fakeCarriers
	shipments     fakeShipments
	trips         fakeTrips
	maintenance   fakeMaintenance
	evaluations   fakeEvaluations
	notifications fakeNotifications
	route         *fixedRoute
	pricing       *Pricing
}

func testPricingConfig() config.PricingConfig {
	return config.PricingConfig{RatePerKm: 5, RatePerBox: 10, RatePerKg: 1, CubicFactor: 0.3, TollCap: 100}
}

func newFixture() *fixture {
	f := &fixture{
		trucks:        fakeTrucks{newTable(func(v *model.Truck) *uuid.UUID { return &v.ID })},
		drivers:       fakeDrivers{newTable(func(v *model.Driver) *uuid.UUID { return &v.ID })},
		boxes:         fakeBoxes{newTable(func(v *model.Box) *uuid.UUID { return &v.ID })},
		clients:       fakeClients{newTable(func(v *model.Client) *uuid.UUID { return &v.ID })},
		carriers:      fakeCarriers{newTable(func(v *model.Carrier) *uuid.UUID { return &v.ID })},
		shipments:     fakeShipments{newTable(func(v *model.Shipment) *uuid.UUID { return &v.ID })},
		maintenance:   fakeMaintenance{newTable(func(v *model.Maintenance) *uuid.UUID { return &v.ID })},
		notifications: fakeNotifications{newTable(func(v *model.Notification) *uuid.UUID { return &v.ID })},
		route:         &fixedRoute{estimate: routing.Estimate{DistanceKm: 50, Toll: 10, Fallback: true}},
	}
	f.trucks.unique = func(a, b model.Truck) bool { return a.Plate == b.Plate }
	f.drivers.unique = func(a, b model.Driver) bool { return a.CPF == b.CPF }
	f.clients.unique = func(a, b model.Client) bool { return a.Email == b.Email }
	f.carriers.unique = func(a, b model.Carrier) bool { return a.CNPJ == b.CNPJ }
	f.trips = fakeTrips{
		memTable:  newTable(func(v *model.Trip) *uuid.UUID { return &v.ID }),
		links:     map[uuid.UUID][]uuid.UUID{},
		shipments: f.shipments,
	}
	f.evaluations = fakeEvaluations{
		memTable:  newTable(func(v *model.Evaluation) *uuid.UUID { return &v.ID }),
		shipments: f.shipments,
	}
	f.pricing = NewPricing(f.route, testPricingConfig(), zerolog.Nop())
	return f
}

func (f *fixture) shipmentService() *ShipmentService {
	return NewShipmentService(passthroughTx{}, f.shipments, f.boxes, f.clients, f.carriers, f.trips, f.pricing, zerolog.Nop())
}

func (f *fixture) tripService() *TripService {
	return NewTripService(passthroughTx{}, f.trips, f.trucks, f.drivers, f.shipments, zerolog.Nop())
}

func (f *fixture) addTruck(maxLoad, length, width, height, km float64) model.Truck {
	truck := model.Truck{
		Model: "FH 540", Plate: uuid.NewString()[:7], MaxLoad: maxLoad,
		Length: length, Width: width, Height: height, CurrentKm: km,
	}
	_ = f.trucks.create(&truck)
	return truck
}

func (f *fixture) addDriver(active, available bool) model.Driver {
	driver := model.Driver{Name: "Joao", CPF: uuid.NewString(), WhatsappPhone: "+5515999990000", Active: active, Available: available}
	_ = f.drivers.create(&driver)
	return driver
}

func (f *fixture) addBox() model.Box {
	box := model.Box{Material: "papelao", CapacityKg: 30, Depth: 0.6, Width: 0.5, Height: 0.4, Available: true}
	_ = f.boxes.create(&box)
	return box
}

func (f *fixture) addShipment(status model.DeliveryStatus, weight, length, width, height float64) model.Shipment {
	shipment := model.Shipment{
		Product: "Notebook", Weight: weight, Length: length, Width: width, Height: height,
		Quantity: 1, Origin: "Sorocaba", Destination: "Campinas",
	}
	shipment.SetOverallStatus(status)
	_ = f.shipments.create(&shipment)
	return shipment
}

func (f *fixture) addCarrier(name string, active bool, perKm *float64) model.Carrier {
	carrier := model.Carrier{Name: name, CNPJ: uuid.NewString(), Active: active, RatePerKm: perKm}
	_ = f.carriers.create(&carrier)
	return carrier
}

func ptr[T any](v T) *T {
	return &v
}
