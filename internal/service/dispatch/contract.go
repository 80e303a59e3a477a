//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
}

type Registry interface {
	CandidatesFor(ctx context.Context, order entities.Order, exclude ...int64) ([]entities.Courier, error)
	RecordResponse(ctx context.Context, id int64, assignedAt, respondedAt time.Time) error
}

type Scorer interface {
	Rank(candidates []entities.Courier, order entities.Order, weights entities.DispatchWeights) []entities.ScoredCourier
}

type Settings interface {
	Weights() entities.DispatchWeights
}

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	// Claim назначает курьера, только если заказ все еще CREATED без курьера,
	// а курьер на смене и верифицирован. false означает, что условие не выполнилось.
	Claim(ctx context.Context, orderID string, courierID int64, assignedAt time.Time) (bool, error)
	// Release возвращает заказ в CREATED, только если он ASSIGNED за этим курьером.
	Release(ctx context.Context, orderID string, courierID int64) (*entities.Order, error)
	ListUnassigned(ctx context.Context, limit uint64) ([]entities.Order, error)
	ListAssignedBefore(ctx context.Context, before time.Time, limit uint64) ([]entities.Order, error)
}

type Notifier interface {
	NotifyCourier(ctx context.Context, courierID int64, order entities.Order, assignment entities.DeliveryAssignment) error
	NotifyCustomer(ctx context.Context, orderID string, status entities.OrderStatusType) error
}

type OfferDeadlineFactory interface {
	CalculateDeadline(assignedAt time.Time) time.Time
	Window() time.Duration
}
