//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=lifecycle_test
package lifecycle

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
	"github.com/shopspring/decimal"
)

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

type Repository interface {
	// Create возвращает false, если заказ с таким id уже существует.
	Create(ctx context.Context, order entities.NewOrder, deliveryFee decimal.Decimal) (*entities.Order, bool, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	// UpdateStatus применяет изменение, только если статус заказа все еще from.
	UpdateStatus(ctx context.Context, id string, from entities.OrderStatusType, modify entities.OrderModify) (*entities.Order, error)
}

type Ledger interface {
	RecordCompletion(ctx context.Context, courierID int64, orderID string, fee decimal.Decimal) (*entities.Completion, error)
}

type Settings interface {
	DeliveryFee() decimal.Decimal
}

type Notifier interface {
	NotifyCustomer(ctx context.Context, orderID string, status entities.OrderStatusType) error
}

type ProofStore interface {
	Exists(ctx context.Context, ref string) (bool, error)
}

type ResponseRecorder interface {
	RecordResponse(ctx context.Context, id int64, assignedAt, respondedAt time.Time) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
