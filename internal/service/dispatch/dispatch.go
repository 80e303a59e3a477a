package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/lifecycle"
	"dispatch/pkg/logger"
)

const DefaultSweepBatchSize = 50

type Config struct {
	SweepBatchSize uint64
}

// Dispatcher единственное место, где заказ из CREATED становится ASSIGNED.
// Эксклюзивность назначения обеспечивает условный UPDATE в хранилище.
type Dispatcher struct {
	log       handlerLogger
	registry  Registry
	scorer    Scorer
	settings  Settings
	orders    OrderRepository
	notifier  Notifier
	deadlines OfferDeadlineFactory
	cfg       Config
}

func New(
	log handlerLogger,
	registry Registry,
	scorer Scorer,
	settings Settings,
	orders OrderRepository,
	notifier Notifier,
	deadlines OfferDeadlineFactory,
	cfg Config,
) *Dispatcher {
	if cfg.SweepBatchSize == 0 {
		cfg.SweepBatchSize = DefaultSweepBatchSize
	}
	return &Dispatcher{
		log:       log,
		registry:  registry,
		scorer:    scorer,
		settings:  settings,
		orders:    orders,
		notifier:  notifier,
		deadlines: deadlines,
		cfg:       cfg,
	}
}

// Assign подбирает курьера для заказа в CREATED.
// NoCourierAvailable означает, что заказ остался в CREATED и его подберет sweep.
func (d *Dispatcher) Assign(ctx context.Context, orderID string) (*entities.DeliveryAssignment, error) {
	return d.AssignExcluding(ctx, orderID)
}

// AssignExcluding то же, что Assign, но без перечисленных курьеров.
// Исключение действует только на эту попытку и нигде не сохраняется.
func (d *Dispatcher) AssignExcluding(ctx context.Context, orderID string, exclude ...int64) (*entities.DeliveryAssignment, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	assignment, result, err := d.assign(ctx, orderID, exclude)
	DispatchAttemptsTotal.WithLabelValues(result).Inc()
	return assignment, err
}

func (d *Dispatcher) assign(ctx context.Context, orderID string, exclude []int64) (*entities.DeliveryAssignment, string, error) {
	order, err := d.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, resultError, fmt.Errorf("get order: %w", err)
	}
	if order.Status == entities.OrderAssigned {
		return nil, resultLostRace, ErrOrderAlreadyAssigned
	}
	if err := lifecycle.CheckTransition(order.Status, entities.OrderAssigned); err != nil {
		return nil, resultError, err
	}

	candidates, err := d.registry.CandidatesFor(ctx, *order, exclude...)
	if err != nil {
		return nil, resultError, fmt.Errorf("find candidates: %w", err)
	}
	DispatchCandidates.Observe(float64(len(candidates)))
	if len(candidates) == 0 {
		return nil, resultNoCandidate, ErrNoCandidates
	}

	ranked := d.scorer.Rank(candidates, *order, d.settings.Weights())

	for _, candidate := range ranked {
		assignedAt := time.Now().UTC()

		claimed, err := d.orders.Claim(ctx, orderID, candidate.Courier.ID, assignedAt)
		if err != nil {
			return nil, resultError, fmt.Errorf("claim order for courier %d: %w", candidate.Courier.ID, err)
		}

		if !claimed {
			DispatchClaimConflictsTotal.Inc()

			current, err := d.orders.GetByID(ctx, orderID)
			if err != nil {
				return nil, resultError, fmt.Errorf("get order after failed claim: %w", err)
			}
			if current.Status != entities.OrderCreated {
				// заказ забрала параллельная попытка
				return nil, resultLostRace, ErrOrderAlreadyAssigned
			}
			// курьер перестал подходить, пробуем следующего
			continue
		}

		assignment := &entities.DeliveryAssignment{
			OrderID:       orderID,
			CourierID:     candidate.Courier.ID,
			Score:         candidate.Score,
			AssignedAt:    assignedAt,
			OfferDeadline: d.deadlines.CalculateDeadline(assignedAt),
		}
		DispatchWinningScore.Observe(candidate.Score)

		d.notifyAssigned(ctx, *order, *assignment)
		return assignment, resultAssigned, nil
	}

	return nil, resultAllFailed, ErrAllClaimsFailed
}

// Reject курьер отказывается от заказа: ASSIGNED -> CREATED.
// Сразу следует одна попытка переназначения без отказавшегося курьера.
// Если переназначить не удалось, заказ остается в CREATED и возвращается nil.
func (d *Dispatcher) Reject(ctx context.Context, orderID string, courierID int64) (*entities.DeliveryAssignment, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if courierID <= 0 {
		return nil, ErrInvalidCourierID
	}

	order, err := d.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := lifecycle.CheckTransition(order.Status, entities.OrderCreated); err != nil {
		return nil, err
	}
	if !order.IsAssignedTo(courierID) {
		return nil, ErrNotAssignedCourier
	}

	released, err := d.orders.Release(ctx, orderID, courierID)
	if err != nil {
		if errors.Is(err, entities.ErrConcurrentModification) {
			return nil, ErrOrderChanged
		}
		return nil, fmt.Errorf("release order: %w", err)
	}

	if order.AssignedAt != nil {
		if err := d.registry.RecordResponse(ctx, courierID, *order.AssignedAt, released.UpdatedAt); err != nil {
			d.log.Warn("record courier response",
				logger.NewField("order_id", orderID),
				logger.NewField("courier_id", courierID),
				logger.NewField("error", err),
			)
		}
	}

	if err := d.notifier.NotifyCustomer(ctx, orderID, entities.OrderCreated); err != nil {
		d.log.Warn("notify customer",
			logger.NewField("order_id", orderID),
			logger.NewField("error", err),
		)
	}

	// отказ уже зафиксирован, заказ в любом случае подберет sweep
	assignment, err := d.AssignExcluding(ctx, orderID, courierID)
	switch {
	case err == nil:
		return assignment, nil
	case errors.Is(err, entities.ErrNoCourierAvailable),
		errors.Is(err, entities.ErrConcurrentModification),
		errors.Is(err, entities.ErrInvalidTransition):
		d.log.Info("order left for next dispatch attempt",
			logger.NewField("order_id", orderID),
			logger.NewField("rejected_by", courierID),
			logger.NewField("reason", err),
		)
	default:
		d.log.Warn("redispatch after reject failed",
			logger.NewField("order_id", orderID),
			logger.NewField("rejected_by", courierID),
			logger.NewField("error", err),
		)
	}
	return nil, nil
}

// Sweep переназначает заказы в CREATED, начиная с самых старых.
// Останавливается, когда в пуле не осталось ни одного подходящего курьера.
func (d *Dispatcher) Sweep(ctx context.Context) (int, error) {
	orders, err := d.orders.ListUnassigned(ctx, d.cfg.SweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("list unassigned orders: %w", err)
	}

	assigned := 0
	for _, order := range orders {
		if ctx.Err() != nil {
			return assigned, ctx.Err()
		}

		_, err := d.AssignExcluding(ctx, order.ID)
		switch {
		case err == nil:
			assigned++
		case errors.Is(err, ErrNoCandidates):
			return assigned, nil
		case errors.Is(err, entities.ErrNoCourierAvailable),
			errors.Is(err, entities.ErrConcurrentModification),
			errors.Is(err, entities.ErrInvalidTransition):
			continue
		default:
			return assigned, fmt.Errorf("sweep order %s: %w", order.ID, err)
		}
	}

	return assigned, nil
}

// ExpiredOffers заказы в ASSIGNED, на которые курьер не ответил в срок.
// Внешний планировщик вызывает по ним Reject от имени курьера.
func (d *Dispatcher) ExpiredOffers(ctx context.Context, limit uint64) ([]entities.ExpiredOffer, error) {
	if limit == 0 {
		limit = d.cfg.SweepBatchSize
	}

	before := time.Now().UTC().Add(-d.deadlines.Window())
	orders, err := d.orders.ListAssignedBefore(ctx, before, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired offers: %w", err)
	}

	offers := make([]entities.ExpiredOffer, 0, len(orders))
	for _, order := range orders {
		if order.CourierID == nil || order.AssignedAt == nil {
			continue
		}
		offers = append(offers, entities.ExpiredOffer{
			OrderID:    order.ID,
			CourierID:  *order.CourierID,
			AssignedAt: *order.AssignedAt,
			Deadline:   d.deadlines.CalculateDeadline(*order.AssignedAt),
		})
	}
	return offers, nil
}

// уведомления не влияют на результат назначения
func (d *Dispatcher) notifyAssigned(ctx context.Context, order entities.Order, assignment entities.DeliveryAssignment) {
	if err := d.notifier.NotifyCourier(ctx, assignment.CourierID, order, assignment); err != nil {
		d.log.Warn("notify courier",
			logger.NewField("order_id", order.ID),
			logger.NewField("courier_id", assignment.CourierID),
			logger.NewField("error", err),
		)
	}
	if err := d.notifier.NotifyCustomer(ctx, order.ID, entities.OrderAssigned); err != nil {
		d.log.Warn("notify customer",
			logger.NewField("order_id", order.ID),
			logger.NewField("error", err),
		)
	}
}

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}
