//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_sweep_test
package dispatch_sweep

import (
	"context"

	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
}

type Service interface {
	Sweep(ctx context.Context) (int, error)
}
