package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type EarningEvent struct {
	ID        int64
	OrderID   string
	CourierID int64
	Amount    decimal.Decimal
	Type      EarningType
	Status    EarningStatus
	CreatedAt time.Time
}

type EarningType string

const EarningDeliveryFee EarningType = "delivery_fee"

type EarningStatus string

const (
	EarningPending EarningStatus = "pending"
	EarningPaid    EarningStatus = "paid"
)

type Payout struct {
	ID           int64
	CourierID    int64
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	SettledCount int64
	CreatedAt    time.Time
}

// Completion результат зачисления за завершенный заказ.
// Credited false означает, что событие уже было записано ранее.
type Completion struct {
	Courier  *Courier
	Event    *EarningEvent
	Credited bool
}
