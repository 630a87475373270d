package model

import (
	"fmt"
	"strings"
)

type DeliveryStatus string

const (
	StatusRequested  DeliveryStatus = "SOLICITADO"
	StatusPickup     DeliveryStatus = "COLETA"
	StatusProcessing DeliveryStatus = "EM_PROCESSAMENTO"
	StatusEnRoute    DeliveryStatus = "A_CAMINHO_DA_ENTREGA"
	StatusDelivered  DeliveryStatus = "ENTREGUE"
	StatusFinalized  DeliveryStatus = "FINALIZADO"
)

// statusRank is the total order used to pick the lesser-advanced side.
var statusRank = map[DeliveryStatus]int{
	StatusRequested:  0,
	StatusPickup:     1,
	StatusProcessing: 2,
	StatusEnRoute:    3,
	StatusDelivered:  4,
	StatusFinalized:  5,
}

func ParseDeliveryStatus(raw string) (DeliveryStatus, error) {
	status := DeliveryStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown delivery status %q", raw)
	}
	return status, nil
}

func (s DeliveryStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

func (s DeliveryStatus) Rank() int {
	rank, ok := statusRank[s]
	if !ok {
		return -1
	}
	return rank
}

func (s DeliveryStatus) Before(other DeliveryStatus) bool {
	return s.Rank() < other.Rank()
}

// DeriveOverall returns FINALIZADO only when both sides report ENTREGUE,
// otherwise the lesser-advanced of the two.
func DeriveOverall(driver, client DeliveryStatus) DeliveryStatus {
	if driver == StatusDelivered && client == StatusDelivered {
		return StatusFinalized
	}
	if client.Before(driver) {
		return client
	}
	return driver
}
