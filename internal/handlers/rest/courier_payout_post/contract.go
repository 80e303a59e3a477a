//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_payout_post_test
package courier_payout_post

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
	"github.com/shopspring/decimal"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Payout(ctx context.Context, courierID int64, amount decimal.Decimal) (*entities.Payout, error)
}
