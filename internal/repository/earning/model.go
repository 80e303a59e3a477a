package earning

import (
	"time"

	"github.com/shopspring/decimal"
)

type EarningEventDB struct {
	ID        int64
	OrderID   string
	CourierID int64
	Amount    decimal.Decimal
	Type      string
	Status    string
	CreatedAt time.Time
}

type PayoutDB struct {
	ID           int64
	CourierID    int64
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	SettledCount int64
	CreatedAt    time.Time
}
