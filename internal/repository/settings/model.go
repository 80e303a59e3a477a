package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

type DispatchSettingsDB struct {
	WeightDistance float64
	WeightRating   float64
	WeightWorkload float64
	WeightResponse float64
	DeliveryFee    decimal.Decimal
	UpdatedAt      time.Time
}
