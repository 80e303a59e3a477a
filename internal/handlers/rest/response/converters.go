package response

import (
	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
)

const moneyPlaces = 2

func toLocation(l *entities.Location) *dto.Location {
	if l == nil {
		return nil
	}
	return &dto.Location{Lat: l.Lat, Lng: l.Lng}
}

func Courier(c *entities.Courier) dto.Courier {
	return dto.Courier{
		ID:                 c.ID,
		Name:               c.Name,
		Phone:              c.Phone,
		Status:             dto.CourierStatus(c.Status),
		OnDuty:             c.OnDuty,
		Location:           toLocation(c.Location),
		LastLocationAt:     c.LastLocationAt,
		Rating:             c.Rating,
		TotalDeliveries:    c.TotalDeliveries,
		Tier:               dto.CourierTier(c.Tier),
		Balance:            c.Balance.StringFixed(moneyPlaces),
		IsVerified:         c.IsVerified,
		AvgResponseSeconds: c.AvgResponseSeconds,
		ActiveOrderCount:   c.ActiveOrderCount,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func CourierList(couriers []entities.Courier) []dto.Courier {
	result := make([]dto.Courier, 0, len(couriers))
	for i := range couriers {
		result = append(result, Courier(&couriers[i]))
	}
	return result
}

func Order(o *entities.Order) dto.Order {
	return dto.Order{
		ID:               o.ID,
		Status:           dto.OrderStatus(o.Status),
		PaymentStatus:    dto.OrderPaymentStatus(o.PaymentStatus),
		CourierID:        o.CourierID,
		Total:            o.Total.StringFixed(moneyPlaces),
		DeliveryFee:      o.DeliveryFee.StringFixed(moneyPlaces),
		Pickup:           toLocation(o.Pickup),
		Delivery:         toLocation(o.Delivery),
		DeliveryPhotoRef: o.DeliveryPhotoRef,
		CancelReason:     o.CancelReason,
		AssignedAt:       o.AssignedAt,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		FinishedAt:       o.FinishedAt,
	}
}

func Assignment(a *entities.DeliveryAssignment) dto.DeliveryAssignment {
	return dto.DeliveryAssignment{
		OrderID:       a.OrderID,
		CourierID:     a.CourierID,
		Score:         a.Score,
		AssignedAt:    a.AssignedAt,
		OfferDeadline: a.OfferDeadline,
	}
}

func EarningList(events []entities.EarningEvent) []dto.EarningEvent {
	result := make([]dto.EarningEvent, 0, len(events))
	for _, e := range events {
		result = append(result, dto.EarningEvent{
			ID:        e.ID,
			OrderID:   e.OrderID,
			CourierID: e.CourierID,
			Amount:    e.Amount.StringFixed(moneyPlaces),
			Type:      string(e.Type),
			Status:    dto.EarningEventStatus(e.Status),
			CreatedAt: e.CreatedAt,
		})
	}
	return result
}

func Payout(p *entities.Payout) dto.Payout {
	return dto.Payout{
		ID:           p.ID,
		CourierID:    p.CourierID,
		Amount:       p.Amount.StringFixed(moneyPlaces),
		BalanceAfter: p.BalanceAfter.StringFixed(moneyPlaces),
		SettledCount: p.SettledCount,
		CreatedAt:    p.CreatedAt,
	}
}

func DispatchSettings(s *entities.DispatchSettings) dto.DispatchSettings {
	return dto.DispatchSettings{
		Weights: dto.DispatchWeights{
			Distance: s.Weights.Distance,
			Rating:   s.Weights.Rating,
			Workload: s.Weights.Workload,
			Response: s.Weights.Response,
		},
		DeliveryFee: s.DeliveryFee.StringFixed(moneyPlaces),
		UpdatedAt:   s.UpdatedAt,
	}
}

func ExpiredOffers(offers []entities.ExpiredOffer) []dto.ExpiredOffer {
	result := make([]dto.ExpiredOffer, 0, len(offers))
	for _, o := range offers {
		result = append(result, dto.ExpiredOffer{
			OrderID:    o.OrderID,
			CourierID:  o.CourierID,
			AssignedAt: o.AssignedAt,
			Deadline:   o.Deadline,
		})
	}
	return result
}
