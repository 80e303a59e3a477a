package notify

import (
	"time"
)

const (
	eventOrderOffered       = "order_offered"
	eventOrderStatusChanged = "order_status_changed"
)

type location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// courierOffer уходит в бот курьера: предложение заказа и срок ответа.
type courierOffer struct {
	EventID       string    `json:"event_id"`
	Type          string    `json:"type"`
	CourierID     int64     `json:"courier_id"`
	OrderID       string    `json:"order_id"`
	Score         float64   `json:"score"`
	DeliveryFee   string    `json:"delivery_fee"`
	Pickup        *location `json:"pickup,omitempty"`
	Delivery      *location `json:"delivery,omitempty"`
	AssignedAt    time.Time `json:"assigned_at"`
	OfferDeadline time.Time `json:"offer_deadline"`
}

type customerStatus struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
