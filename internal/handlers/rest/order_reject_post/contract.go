//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_reject_post_test
package order_reject_post

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Dispatcher interface {
	Reject(ctx context.Context, orderID string, courierID int64) (*entities.DeliveryAssignment, error)
}

type Orders interface {
	GetOrder(ctx context.Context, orderID string) (*entities.Order, error)
}
