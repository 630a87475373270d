package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrBusinessRule = errors.New("business rule violation")
)

var (
	ErrDriverInactive     = ruleError("driver is not active")
	ErrDriverUnavailable  = ruleError("driver is not available")
	ErrOdometerRegression = ruleError("odometer reading is behind the current one")
	ErrShipmentStatus     = ruleError("shipment is not in the expected status")
	ErrShipmentInTrip     = ruleError("shipment is attached to a trip")
	ErrTripFinalized      = ruleError("trip is already finalized")
	ErrBoxIncompatible    = ruleError("product does not fit in the box")
	ErrNoTruckAvailable   = ruleError("no truck satisfies weight or volume requirements")
	ErrCarrierInactive    = ruleError("carrier is not active")
	ErrDuplicate          = ruleError("duplicate value")
	ErrEvaluationExists   = ruleError("shipment already evaluated")
	ErrMaintenanceKm      = ruleError("maintenance km is ahead of the truck odometer")
)

// businessError is a precondition failure that callers report as a client error.
type businessError struct {
	msg string
}

func ruleError(msg string) error {
	return &businessError{msg: msg}
}

func (e *businessError) Error() string {
	return e.msg
}

func (e *businessError) Is(target error) bool {
	return target == ErrBusinessRule
}

func notFound(entity string, id fmt.Stringer) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, entity, id)
}

// storeError maps repository errors onto service sentinels.
func storeError(err error, entity string, id fmt.Stringer) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", ErrDuplicate, entity)
	default:
		return err
	}
}
