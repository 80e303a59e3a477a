//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
}

type Lifecycle interface {
	CreateOrder(ctx context.Context, newOrder entities.NewOrder) (*entities.Order, bool, error)
	GetOrder(ctx context.Context, orderID string) (*entities.Order, error)
	Confirm(ctx context.Context, orderID string, courierID int64) (*entities.Order, error)
	Checkpoint(ctx context.Context, orderID string, courierID int64) (*entities.Order, error)
	StartDelivery(ctx context.Context, orderID string, courierID int64) (*entities.Order, error)
	Deliver(ctx context.Context, orderID string, courierID int64, photoRef *string) (*entities.Order, error)
	Complete(ctx context.Context, orderID string, courierID *int64) (*entities.Order, error)
}

type Dispatcher interface {
	Assign(ctx context.Context, orderID string) (*entities.DeliveryAssignment, error)
	Reject(ctx context.Context, orderID string, courierID int64) (*entities.DeliveryAssignment, error)
}

type (
	ExecuteFn      func(ctx context.Context, action entities.CourierAction) (*entities.Order, error)
	HandlerFactory interface {
		GetHandler(action entities.CourierActionType) (ExecuteFn, error)
	}
)
