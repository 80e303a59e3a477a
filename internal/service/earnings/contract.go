//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=earnings_test
package earnings

import (
	"context"

	"dispatch/internal/entities"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// CreateEvent возвращает false, если событие по (orderID, courierID) уже есть.
	CreateEvent(ctx context.Context, event entities.EarningEvent) (*entities.EarningEvent, bool, error)
	ListByCourier(ctx context.Context, courierID int64) ([]entities.EarningEvent, error)
	SettlePending(ctx context.Context, courierID int64, amount decimal.Decimal) (int64, error)
	CreatePayout(ctx context.Context, payout entities.Payout) (*entities.Payout, error)
}

type CourierRepository interface {
	AddBalance(ctx context.Context, courierID int64, amount decimal.Decimal) (*entities.Courier, error)
	AddDelivery(ctx context.Context, courierID int64, amount decimal.Decimal) (*entities.Courier, error)
	SetTier(ctx context.Context, courierID int64, tier entities.CourierTier) error
	DebitBalance(ctx context.Context, courierID int64, amount decimal.Decimal) (decimal.Decimal, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
