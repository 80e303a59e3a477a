package order

import (
	"dispatch/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	return &entities.Order{
		ID:               o.ID,
		Status:           entities.OrderStatusType(o.Status),
		PaymentStatus:    entities.PaymentStatusType(o.PaymentStatus),
		CourierID:        o.CourierID,
		Total:            o.Total,
		DeliveryFee:      o.DeliveryFee,
		Pickup:           toLocation(o.PickupLat, o.PickupLng),
		Delivery:         toLocation(o.DeliveryLat, o.DeliveryLng),
		DeliveryPhotoRef: o.DeliveryPhotoRef,
		CancelReason:     o.CancelReason,
		AssignedAt:       o.AssignedAt,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		FinishedAt:       o.FinishedAt,
	}
}

func ToDomainList(ordersDB []OrderDB) []entities.Order {
	if len(ordersDB) == 0 {
		return []entities.Order{}
	}

	result := make([]entities.Order, len(ordersDB))
	for i, orderDB := range ordersDB {
		result[i] = *ToDomain(&orderDB)
	}
	return result
}

func FromDomainModify(orderModify *entities.OrderModify) *OrderModifyDB {
	if orderModify == nil {
		return nil
	}
	orderDB := &OrderModifyDB{
		CourierID:        orderModify.CourierID,
		DeliveryPhotoRef: orderModify.DeliveryPhotoRef,
		CancelReason:     orderModify.CancelReason,
		AssignedAt:       orderModify.AssignedAt,
		FinishedAt:       orderModify.FinishedAt,
		ClearCourier:     orderModify.ClearCourier,
	}

	if orderModify.Status != nil {
		status := orderModify.Status.String()
		orderDB.Status = &status
	}
	if orderModify.PaymentStatus != nil {
		paymentStatus := orderModify.PaymentStatus.String()
		orderDB.PaymentStatus = &paymentStatus
	}

	return orderDB
}

func toLocation(lat, lng *float64) *entities.Location {
	if lat == nil || lng == nil {
		return nil
	}
	return &entities.Location{Lat: *lat, Lng: *lng}
}

func fromLocation(location *entities.Location) (lat, lng *float64) {
	if location == nil {
		return nil, nil
	}
	return &location.Lat, &location.Lng
}
