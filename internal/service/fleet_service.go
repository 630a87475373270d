package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/fleet-logistics/internal/model"
)

// FleetService covers the plain keyed records: trucks, drivers, boxes,
// clients and carriers.
type FleetService struct {
	trucks   TruckStore
	drivers  DriverStore
	boxes    BoxStore
	clients  ClientStore
	carriers CarrierStore
}

func NewFleetService(trucks TruckStore, drivers DriverStore, boxes BoxStore, clients ClientStore, carriers CarrierStore) *FleetService {
	return &FleetService{
		trucks:   trucks,
		drivers:  drivers,
		boxes:    boxes,
		clients:  clients,
		carriers: carriers,
	}
}

func (s *FleetService) CreateTruck(ctx context.Context, truck model.Truck) (*model.Truck, error) {
	if err := validateTruck(truck); err != nil {
		return nil, err
	}
	truck.ID = uuid.Nil
	truck.Plate = normalizePlate(truck.Plate)
	if err := s.trucks.Create(ctx, &truck); err != nil {
		return nil, storeError(err, "truck plate", stringer(truck.Plate))
	}
	return &truck, nil
}

func (s *FleetService) GetTruck(ctx context.Context, id uuid.UUID) (*model.Truck, error) {
	truck, err := s.trucks.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "truck", id)
	}
	return truck, nil
}

func (s *FleetService) ListTrucks(ctx context.Context) ([]model.Truck, error) {
	return s.trucks.List(ctx)
}

// UpdateTruck never moves the odometer backwards.
func (s *FleetService) UpdateTruck(ctx context.Context, id uuid.UUID, input model.Truck) (*model.Truck, error) {
	if err := validateTruck(input); err != nil {
		return nil, err
	}
	truck, err := s.trucks.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "truck", id)
	}
	if input.CurrentKm < truck.CurrentKm {
		return nil, fmt.Errorf("%w: truck %s", ErrOdometerRegression, id)
	}

	truck.Model = input.Model
	truck.Brand = input.Brand
	truck.Plate = normalizePlate(input.Plate)
	truck.MaxLoad = input.MaxLoad
	truck.Length = input.Length
	truck.Width = input.Width
	truck.Height = input.Height
	truck.Year = input.Year
	truck.CurrentKm = input.CurrentKm
	if err := s.trucks.Update(ctx, truck); err != nil {
		return nil, storeError(err, "truck plate", stringer(truck.Plate))
	}
	return truck, nil
}

// CreateDriver stores a new driver. New drivers are active and available.
func (s *FleetService) CreateDriver(ctx context.Context, driver model.Driver) (*model.Driver, error) {
	if err := validateDriver(driver); err != nil {
		return nil, err
	}
	driver.ID = uuid.Nil
	driver.CPF = digitsOnly(driver.CPF)
	driver.Active = true
	driver.Available = true
	driver.Latitude = nil
	driver.Longitude = nil
	if err := s.drivers.Create(ctx, &driver); err != nil {
		return nil, storeError(err, "driver cpf", stringer(driver.CPF))
	}
	return &driver, nil
}

func (s *FleetService) GetDriver(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	driver, err := s.drivers.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "driver", id)
	}
	return driver, nil
}

func (s *FleetService) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	return s.drivers.List(ctx)
}

// FindDriverByCPF accepts the document formatted or not.
func (s *FleetService) FindDriverByCPF(ctx context.Context, cpf string) (*model.Driver, error) {
	digits := digitsOnly(cpf)
	if digits == "" {
		return nil, fmt.Errorf("%w: cpf is required", ErrInvalidInput)
	}
	driver, err := s.drivers.FindByCPF(ctx, digits)
	if err != nil {
		return nil, storeError(err, "driver cpf", stringer(digits))
	}
	return driver, nil
}

func (s *FleetService) FindDriverByCNH(ctx context.Context, cnh string) (*model.Driver, error) {
	cnh = strings.TrimSpace(cnh)
	if cnh == "" {
		return nil, fmt.Errorf("%w: cnh is required", ErrInvalidInput)
	}
	driver, err := s.drivers.FindByCNH(ctx, cnh)
	if err != nil {
		return nil, storeError(err, "driver cnh", stringer(cnh))
	}
	return driver, nil
}

// CountAvailableDrivers counts drivers that are active and not on a trip.
func (s *FleetService) CountAvailableDrivers(ctx context.Context) (int64, error) {
	return s.drivers.CountAvailable(ctx)
}

// UpdateDriver leaves availability and position untouched; trips and tracking own them.
func (s *FleetService) UpdateDriver(ctx context.Context, id uuid.UUID, input model.Driver) (*model.Driver, error) {
	if err := validateDriver(input); err != nil {
		return nil, err
	}
	driver, err := s.drivers.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "driver", id)
	}

	driver.Name = strings.TrimSpace(input.Name)
	driver.CPF = digitsOnly(input.CPF)
	driver.CNH = input.CNH
	driver.WhatsappPhone = input.WhatsappPhone
	driver.Active = input.Active
	if err := s.drivers.Update(ctx, driver); err != nil {
		return nil, storeError(err, "driver cpf", stringer(driver.CPF))
	}
	return driver, nil
}

func (s *FleetService) CreateBox(ctx context.Context, box model.Box) (*model.Box, error) {
	if err := validateBox(box); err != nil {
		return nil, err
	}
	box.ID = uuid.Nil
	if err := s.boxes.Create(ctx, &box); err != nil {
		return nil, err
	}
	return &box, nil
}

func (s *FleetService) GetBox(ctx context.Context, id uuid.UUID) (*model.Box, error) {
	box, err := s.boxes.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "box", id)
	}
	return box, nil
}

func (s *FleetService) ListBoxes(ctx context.Context) ([]model.Box, error) {
	return s.boxes.List(ctx)
}

func (s *FleetService) UpdateBox(ctx context.Context, id uuid.UUID, input model.Box) (*model.Box, error) {
	if err := validateBox(input); err != nil {
		return nil, err
	}
	box, err := s.boxes.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "box", id)
	}

	box.Material = input.Material
	box.CapacityKg = input.CapacityKg
	box.Available = input.Available
	box.Height = input.Height
	box.Width = input.Width
	box.Depth = input.Depth
	if err := s.boxes.Update(ctx, box); err != nil {
		return nil, err
	}
	return box, nil
}

type FitResult struct {
	BoxID  uuid.UUID `json:"box_id"`
	Fits   bool      `json:"fits"`
	Volume float64   `json:"box_volume"`
}

func (s *FleetService) CheckBoxFit(ctx context.Context, id uuid.UUID, length, width, height, weight float64) (*FitResult, error) {
	if length <= 0 || width <= 0 || height <= 0 || weight <= 0 {
		return nil, fmt.Errorf("%w: dimensions and weight must be positive", ErrInvalidInput)
	}
	box, err := s.GetBox(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FitResult{
		BoxID:  box.ID,
		Fits:   box.Fits(length, width, height, weight),
		Volume: box.Volume(),
	}, nil
}

func (s *FleetService) CreateClient(ctx context.Context, client model.Client) (*model.Client, error) {
	if err := validateClient(client); err != nil {
		return nil, err
	}
	client.ID = uuid.Nil
	client.Email = strings.ToLower(strings.TrimSpace(client.Email))
	client.Active = true
	if err := s.clients.Create(ctx, &client); err != nil {
		return nil, storeError(err, "client email", stringer(client.Email))
	}
	return &client, nil
}

func (s *FleetService) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "client", id)
	}
	return client, nil
}

func (s *FleetService) ListClients(ctx context.Context) ([]model.Client, error) {
	return s.clients.List(ctx)
}

func (s *FleetService) UpdateClient(ctx context.Context, id uuid.UUID, input model.Client) (*model.Client, error) {
	if err := validateClient(input); err != nil {
		return nil, err
	}
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "client", id)
	}

	client.Name = strings.TrimSpace(input.Name)
	client.Email = strings.ToLower(strings.TrimSpace(input.Email))
	client.Phone = input.Phone
	client.Address = input.Address
	client.City = input.City
	client.Document = input.Document
	client.PostalCode = input.PostalCode
	client.Active = input.Active
	if err := s.clients.Update(ctx, client); err != nil {
		return nil, storeError(err, "client email", stringer(client.Email))
	}
	return client, nil
}

func (s *FleetService) CreateCarrier(ctx context.Context, carrier model.Carrier) (*model.Carrier, error) {
	if err := validateCarrier(carrier); err != nil {
		return nil, err
	}
	carrier.ID = uuid.Nil
	carrier.CNPJ = digitsOnly(carrier.CNPJ)
	carrier.Email = strings.ToLower(strings.TrimSpace(carrier.Email))
	carrier.Rating = nil
	carrier.Active = true
	if err := s.carriers.Create(ctx, &carrier); err != nil {
		return nil, storeError(err, "carrier cnpj or email", stringer(carrier.CNPJ))
	}
	return &carrier, nil
}

func (s *FleetService) GetCarrier(ctx context.Context, id uuid.UUID) (*model.Carrier, error) {
	carrier, err := s.carriers.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "carrier", id)
	}
	return carrier, nil
}

func (s *FleetService) ListCarriers(ctx context.Context) ([]model.Carrier, error) {
	return s.carriers.List(ctx)
}

// UpdateCarrier keeps the rating, which only evaluations recompute.
func (s *FleetService) UpdateCarrier(ctx context.Context, id uuid.UUID, input model.Carrier) (*model.Carrier, error) {
	if err := validateCarrier(input); err != nil {
		return nil, err
	}
	carrier, err := s.carriers.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "carrier", id)
	}

	carrier.Name = strings.TrimSpace(input.Name)
	carrier.CNPJ = digitsOnly(input.CNPJ)
	carrier.Email = strings.ToLower(strings.TrimSpace(input.Email))
	carrier.Phone = input.Phone
	carrier.Address = input.Address
	carrier.Notes = input.Notes
	carrier.RatePerKm = input.RatePerKm
	carrier.RatePerBox = input.RatePerBox
	carrier.RatePerKg = input.RatePerKg
	if err := s.carriers.Update(ctx, carrier); err != nil {
		return nil, storeError(err, "carrier cnpj or email", stringer(carrier.CNPJ))
	}
	return carrier, nil
}

func (s *FleetService) SetCarrierActive(ctx context.Context, id uuid.UUID, active bool) (*model.Carrier, error) {
	carrier, err := s.carriers.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "carrier", id)
	}
	carrier.Active = active
	if err := s.carriers.Update(ctx, carrier); err != nil {
		return nil, err
	}
	return carrier, nil
}

func validateTruck(truck model.Truck) error {
	if strings.TrimSpace(truck.Plate) == "" || strings.TrimSpace(truck.Model) == "" {
		return fmt.Errorf("%w: plate and model are required", ErrInvalidInput)
	}
	if truck.MaxLoad <= 0 || truck.Length <= 0 || truck.Width <= 0 || truck.Height <= 0 {
		return fmt.Errorf("%w: capacity and dimensions must be positive", ErrInvalidInput)
	}
	if truck.CurrentKm < 0 {
		return fmt.Errorf("%w: current_km must not be negative", ErrInvalidInput)
	}
	return nil
}

func validateDriver(driver model.Driver) error {
	if strings.TrimSpace(driver.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(digitsOnly(driver.CPF)) != 11 {
		return fmt.Errorf("%w: cpf must have 11 digits", ErrInvalidInput)
	}
	return nil
}

func validateBox(box model.Box) error {
	if box.CapacityKg <= 0 || box.Height <= 0 || box.Width <= 0 || box.Depth <= 0 {
		return fmt.Errorf("%w: capacity and dimensions must be positive", ErrInvalidInput)
	}
	return nil
}

func validateClient(client model.Client) error {
	if strings.TrimSpace(client.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !strings.Contains(client.Email, "@") {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	return nil
}

func validateCarrier(carrier model.Carrier) error {
	if strings.TrimSpace(carrier.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(digitsOnly(carrier.CNPJ)) != 14 {
		return fmt.Errorf("%w: cnpj must have 14 digits", ErrInvalidInput)
	}
	for _, rate := range []*float64{carrier.RatePerKm, carrier.RatePerBox, carrier.RatePerKg} {
		if rate != nil && *rate < 0 {
			return fmt.Errorf("%w: rates must not be negative", ErrInvalidInput)
		}
	}
	return nil
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type stringer string

func (s stringer) String() string {
	return string(s)
}
