package entities

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const weightsTolerance = 1e-6

type DispatchWeights struct {
	Distance float64
	Rating   float64
	Workload float64
	Response float64
}

// Validate веса неотрицательны и в сумме дают 1.0 (с допуском 1e-6).
func (w DispatchWeights) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"distance", w.Distance},
		{"rating", w.Rating},
		{"workload", w.Workload},
		{"response", w.Response},
	}
	for _, weight := range weights {
		if weight.value < 0 || math.IsNaN(weight.value) || math.IsInf(weight.value, 0) {
			return fmt.Errorf("weight %s=%v: %w", weight.name, weight.value, ErrConfigInvalid)
		}
	}

	sum := w.Distance + w.Rating + w.Workload + w.Response
	if math.Abs(sum-1) > weightsTolerance {
		return fmt.Errorf("weights sum to %v, want 1.0: %w", sum, ErrConfigInvalid)
	}
	return nil
}

type DispatchSettings struct {
	Weights     DispatchWeights
	DeliveryFee decimal.Decimal
	UpdatedAt   time.Time
}

func (s DispatchSettings) Validate() error {
	if err := s.Weights.Validate(); err != nil {
		return err
	}
	if s.DeliveryFee.IsNegative() {
		return fmt.Errorf("delivery fee %s: %w", s.DeliveryFee, ErrConfigInvalid)
	}
	return nil
}

type DispatchSettingsModify struct {
	Weights     *DispatchWeights
	DeliveryFee *decimal.Decimal
}

type ScoredCourier struct {
	Courier Courier
	Score   float64
}

type DeliveryAssignment struct {
	OrderID       string
	CourierID     int64
	Score         float64
	AssignedAt    time.Time
	OfferDeadline time.Time
}

// ExpiredOffer заказ в ASSIGNED, по которому курьер не ответил вовремя.
type ExpiredOffer struct {
	OrderID    string
	CourierID  int64
	AssignedAt time.Time
	Deadline   time.Time
}

type CourierActionType string

const (
	ActionConfirm       CourierActionType = "confirm"
	ActionCheckpoint    CourierActionType = "checkpoint"
	ActionStartDelivery CourierActionType = "start_delivery"
	ActionDeliver       CourierActionType = "deliver"
	ActionComplete      CourierActionType = "complete"
	ActionReject        CourierActionType = "reject"
)

func (a CourierActionType) String() string {
	return string(a)
}

// CourierAction действие курьера из бота или приложения.
type CourierAction struct {
	OrderID   string
	CourierID int64
	Action    CourierActionType
	PhotoRef  *string
}
