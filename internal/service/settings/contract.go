//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=settings_test
package settings

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	Get(ctx context.Context) (*entities.DispatchSettings, error)
	Save(ctx context.Context, settings entities.DispatchSettings) (*entities.DispatchSettings, error)
}
