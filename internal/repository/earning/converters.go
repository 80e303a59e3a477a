package earning

import (
	"dispatch/internal/entities"
)

func ToDomain(e *EarningEventDB) *entities.EarningEvent {
	if e == nil {
		return nil
	}

	return &entities.EarningEvent{
		ID:        e.ID,
		OrderID:   e.OrderID,
		CourierID: e.CourierID,
		Amount:    e.Amount,
		Type:      entities.EarningType(e.Type),
		Status:    entities.EarningStatus(e.Status),
		CreatedAt: e.CreatedAt,
	}
}

func ToDomainList(eventsDB []EarningEventDB) []entities.EarningEvent {
	if len(eventsDB) == 0 {
		return []entities.EarningEvent{}
	}

	result := make([]entities.EarningEvent, len(eventsDB))
	for i, eventDB := range eventsDB {
		result[i] = *ToDomain(&eventDB)
	}
	return result
}

func PayoutToDomain(p *PayoutDB) *entities.Payout {
	if p == nil {
		return nil
	}

	return &entities.Payout{
		ID:           p.ID,
		CourierID:    p.CourierID,
		Amount:       p.Amount,
		BalanceAfter: p.BalanceAfter,
		SettledCount: p.SettledCount,
		CreatedAt:    p.CreatedAt,
	}
}
