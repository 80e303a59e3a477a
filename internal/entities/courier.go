package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultRating = 5.0

type Courier struct {
	ID                 int64
	Name               string
	Phone              string
	Status             CourierStatusType
	OnDuty             bool
	Location           *Location
	LastLocationAt     *time.Time
	Rating             float64
	TotalDeliveries    int64
	Tier               CourierTier
	Balance            decimal.Decimal
	IsVerified         bool
	AvgResponseSeconds float64
	ResponseSamples    int64
	ActiveOrderCount   int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CourierStatusType string

const (
	CourierOffline CourierStatusType = "offline"
	CourierOnline  CourierStatusType = "online"
)

func (t CourierStatusType) String() string {
	return string(t)
}

// StatusForDuty ONLINE тогда и только тогда, когда курьер на смене.
func StatusForDuty(onDuty bool) CourierStatusType {
	if onDuty {
		return CourierOnline
	}
	return CourierOffline
}

type CourierTier string

const (
	TierBronze CourierTier = "bronze"
	TierSilver CourierTier = "silver"
	TierGold   CourierTier = "gold"
)

const (
	silverTierDeliveries = 50
	goldTierDeliveries   = 100
)

func (t CourierTier) String() string {
	return string(t)
}

// TierFor единственный способ получить уровень курьера.
func TierFor(totalDeliveries int64) CourierTier {
	switch {
	case totalDeliveries >= goldTierDeliveries:
		return TierGold
	case totalDeliveries >= silverTierDeliveries:
		return TierSilver
	default:
		return TierBronze
	}
}

type CourierModify struct {
	ID         *int64
	Name       *string
	Phone      *string
	IsVerified *bool
}

type Location struct {
	Lat float64
	Lng float64
}

// CandidateFilter условия отбора курьеров для диспетчеризации.
type CandidateFilter struct {
	FreshSince time.Time
	Exclude    []int64
}
