package order_created

import "time"

// orderCreatedEvent событие оформления заказа на витрине.
type orderCreatedEvent struct {
	OrderID   string    `json:"order_id" validate:"required,max=64"`
	Total     string    `json:"total" validate:"required,numeric"`
	Pickup    *location `json:"pickup,omitempty"`
	Delivery  *location `json:"delivery" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

type location struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}
