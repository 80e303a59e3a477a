package courier

import (
	"time"

	"github.com/shopspring/decimal"
)

type CourierDB struct {
	ID                 int64
	Name               string
	Phone              string
	Status             string
	OnDuty             bool
	Lat                *float64
	Lng                *float64
	LastLocationAt     *time.Time
	Rating             float64
	TotalDeliveries    int64
	Tier               string
	Balance            decimal.Decimal
	IsVerified         bool
	AvgResponseSeconds float64
	ResponseSamples    int64
	ActiveOrderCount   int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type CourierModifyDB struct {
	ID         *int64
	Name       *string
	Phone      *string
	IsVerified *bool
}
