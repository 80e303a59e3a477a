package notify

import (
	"dispatch/internal/entities"
)

func toLocation(l *entities.Location) *location {
	if l == nil {
		return nil
	}
	return &location{Lat: l.Lat, Lng: l.Lng}
}

func toCourierOffer(eventID string, courierID int64, order entities.Order, assignment entities.DeliveryAssignment) courierOffer {
	return courierOffer{
		EventID:       eventID,
		Type:          eventOrderOffered,
		CourierID:     courierID,
		OrderID:       order.ID,
		Score:         assignment.Score,
		DeliveryFee:   order.DeliveryFee.StringFixed(2),
		Pickup:        toLocation(order.Pickup),
		Delivery:      toLocation(order.Delivery),
		AssignedAt:    assignment.AssignedAt,
		OfferDeadline: assignment.OfferDeadline,
	}
}
