package settings

import (
	"dispatch/internal/entities"
)

func ToDomain(s *DispatchSettingsDB) *entities.DispatchSettings {
	if s == nil {
		return nil
	}

	return &entities.DispatchSettings{
		Weights: entities.DispatchWeights{
			Distance: s.WeightDistance,
			Rating:   s.WeightRating,
			Workload: s.WeightWorkload,
			Response: s.WeightResponse,
		},
		DeliveryFee: s.DeliveryFee,
		UpdatedAt:   s.UpdatedAt,
	}
}

func FromDomain(s *entities.DispatchSettings) *DispatchSettingsDB {
	if s == nil {
		return nil
	}

	return &DispatchSettingsDB{
		WeightDistance: s.Weights.Distance,
		WeightRating:   s.Weights.Rating,
		WeightWorkload: s.Weights.Workload,
		WeightResponse: s.Weights.Response,
		DeliveryFee:    s.DeliveryFee,
		UpdatedAt:      s.UpdatedAt,
	}
}
