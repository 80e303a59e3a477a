//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_test
package courier

import (
	"context"
	"time"

	"dispatch/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, courierModifyEntity entities.CourierModify) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Courier, error)
	GetAll(ctx context.Context) ([]entities.Courier, error)
	Update(ctx context.Context, courierModifyEntity entities.CourierModify) (*entities.Courier, error)

	UpdateLocation(ctx context.Context, id int64, location entities.Location, reportedAt time.Time) (*entities.Courier, error)
	SetDuty(ctx context.Context, id int64, onDuty bool) (*entities.Courier, error)
	GetCandidates(ctx context.Context, filter entities.CandidateFilter) ([]entities.Courier, error)
	RecordResponse(ctx context.Context, id int64, seconds float64) error
}
