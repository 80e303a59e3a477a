package order_created

import (
	"fmt"

	"dispatch/internal/entities"
	"github.com/shopspring/decimal"
)

func toLocation(l *location) *entities.Location {
	if l == nil {
		return nil
	}
	return &entities.Location{Lat: l.Lat, Lng: l.Lng}
}

func toNewOrder(event orderCreatedEvent) (entities.NewOrder, error) {
	total, err := decimal.NewFromString(event.Total)
	if err != nil {
		return entities.NewOrder{}, fmt.Errorf("total %q: %w", event.Total, err)
	}

	return entities.NewOrder{
		ID:       event.OrderID,
		Total:    total,
		Pickup:   toLocation(event.Pickup),
		Delivery: toLocation(event.Delivery),
	}, nil
}
