package courier

import (
	"dispatch/internal/entities"
)

func ToDomain(c *CourierDB) *entities.Courier {
	if c == nil {
		return nil
	}

	var location *entities.Location
	if c.Lat != nil && c.Lng != nil {
		location = &entities.Location{Lat: *c.Lat, Lng: *c.Lng}
	}

	return &entities.Courier{
		ID:                 c.ID,
		Name:               c.Name,
		Phone:              c.Phone,
		Status:             entities.CourierStatusType(c.Status),
		OnDuty:             c.OnDuty,
		Location:           location,
		LastLocationAt:     c.LastLocationAt,
		Rating:             c.Rating,
		TotalDeliveries:    c.TotalDeliveries,
		Tier:               entities.CourierTier(c.Tier),
		Balance:            c.Balance,
		IsVerified:         c.IsVerified,
		AvgResponseSeconds: c.AvgResponseSeconds,
		ResponseSamples:    c.ResponseSamples,
		ActiveOrderCount:   c.ActiveOrderCount,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func FromDomainModify(courierModify *entities.CourierModify) *CourierModifyDB {
	if courierModify == nil {
		return nil
	}

	return &CourierModifyDB{
		ID:         courierModify.ID,
		Name:       courierModify.Name,
		Phone:      courierModify.Phone,
		IsVerified: courierModify.IsVerified,
	}
}

func ToDomainList(couriersDB []CourierDB) []entities.Courier {
	if len(couriersDB) == 0 {
		return []entities.Courier{}
	}

	result := make([]entities.Courier, len(couriersDB))
	for i, courierDB := range couriersDB {
		result[i] = *ToDomain(&courierDB)
	}
	return result
}
