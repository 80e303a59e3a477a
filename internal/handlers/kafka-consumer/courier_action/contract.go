//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_action_test
package courier_action

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

type Service interface {
	ProcessCourierAction(ctx context.Context, action entities.CourierAction) (*entities.Order, error)
}
