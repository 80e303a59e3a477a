package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID               string
	Status           OrderStatusType
	PaymentStatus    PaymentStatusType
	CourierID        *int64
	Total            decimal.Decimal
	DeliveryFee      decimal.Decimal
	Pickup           *Location
	Delivery         *Location
	DeliveryPhotoRef *string
	CancelReason     *string
	AssignedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	FinishedAt       *time.Time
}

// TargetLocation точка, до которой считается расстояние от курьера:
// адрес забора, если он известен, иначе адрес доставки.
func (o *Order) TargetLocation() *Location {
	if o.Pickup != nil {
		return o.Pickup
	}
	return o.Delivery
}

func (o *Order) IsAssignedTo(courierID int64) bool {
	return o.CourierID != nil && *o.CourierID == courierID
}

type OrderStatusType string

const (
	OrderCreated    OrderStatusType = "created"
	OrderAssigned   OrderStatusType = "assigned"
	OrderProcessing OrderStatusType = "processing"
	OrderPickedUp   OrderStatusType = "picked_up"
	OrderDelivering OrderStatusType = "delivering"
	OrderDelivered  OrderStatusType = "delivered"
	OrderCompleted  OrderStatusType = "completed"
	OrderCancelled  OrderStatusType = "cancelled"
)

var orderStatuses = map[OrderStatusType]struct{}{
	OrderCreated:    {},
	OrderAssigned:   {},
	OrderProcessing: {},
	OrderPickedUp:   {},
	OrderDelivering: {},
	OrderDelivered:  {},
	OrderCompleted:  {},
	OrderCancelled:  {},
}

// ActiveOrderStatuses статусы, в которых заказ числится за курьером.
var ActiveOrderStatuses = []OrderStatusType{
	OrderAssigned,
	OrderProcessing,
	OrderPickedUp,
	OrderDelivering,
	OrderDelivered,
}

// ParseOrderStatus принимает только известные значения.
func ParseOrderStatus(raw string) (OrderStatusType, error) {
	status := OrderStatusType(raw)
	if _, ok := orderStatuses[status]; !ok {
		return "", fmt.Errorf("unknown order status %q", raw)
	}
	return status, nil
}

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type PaymentStatusType string

const (
	PaymentUnpaid PaymentStatusType = "unpaid"
	PaymentPaid   PaymentStatusType = "paid"
)

func ParsePaymentStatus(raw string) (PaymentStatusType, error) {
	switch s := PaymentStatusType(raw); s {
	case PaymentUnpaid, PaymentPaid:
		return s, nil
	default:
		return "", fmt.Errorf("unknown payment status %q", raw)
	}
}

func (s PaymentStatusType) String() string {
	return string(s)
}

// OrderModify изменение заказа при переходе между статусами.
// nil-поля не трогаются, ClearCourier снимает курьера и время назначения.
type OrderModify struct {
	Status           *OrderStatusType
	PaymentStatus    *PaymentStatusType
	CourierID        *int64
	DeliveryPhotoRef *string
	CancelReason     *string
	AssignedAt       *time.Time
	FinishedAt       *time.Time
	ClearCourier     bool
}

// NewOrder заказ, пришедший из оформления на витрине.
type NewOrder struct {
	ID       string
	Total    decimal.Decimal
	Pickup   *Location
	Delivery *Location
}
