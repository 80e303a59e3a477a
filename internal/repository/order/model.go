package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderDB struct {
	ID               string
	Status           string
	PaymentStatus    string
	CourierID        *int64
	Total            decimal.Decimal
	DeliveryFee      decimal.Decimal
	PickupLat        *float64
	PickupLng        *float64
	DeliveryLat      *float64
	DeliveryLng      *float64
	DeliveryPhotoRef *string
	CancelReason     *string
	AssignedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	FinishedAt       *time.Time
}

type OrderModifyDB struct {
	Status           *string
	PaymentStatus    *string
	CourierID        *int64
	DeliveryPhotoRef *string
	CancelReason     *string
	AssignedAt       *time.Time
	FinishedAt       *time.Time
	ClearCourier     bool
}
