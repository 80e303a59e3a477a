package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// Lifecycle машина состояний заказа. Каждый переход проверяется по текущему
// сохраненному статусу и применяется условным обновлением в хранилище.
type Lifecycle struct {
	log        handlerLogger
	repository Repository
	ledger     Ledger
	settings   Settings
	notifier   Notifier
	proofStore ProofStore
	responses  ResponseRecorder
	txManager  TxManager
}

func New(
	log handlerLogger,
	repository Repository,
	ledger Ledger,
	settings Settings,
	notifier Notifier,
	proofStore ProofStore,
	responses ResponseRecorder,
	txManager TxManager,
) *Lifecycle {
	return &Lifecycle{
		log:        log,
		repository: repository,
		ledger:     ledger,
		settings:   settings,
		notifier:   notifier,
		proofStore: proofStore,
		responses:  responses,
		txManager:  txManager,
	}
}

// CreateOrder регистрирует заказ из оформления в статусе CREATED.
// Повторная доставка того же события возвращает существующий заказ и false.
func (l *Lifecycle) CreateOrder(ctx context.Context, newOrder entities.NewOrder) (*entities.Order, bool, error) {
	if !isValidOrderID(newOrder.ID) {
		return nil, false, ErrInvalidOrderID
	}
	if newOrder.Total.IsNegative() {
		return nil, false, ErrInvalidTotal
	}

	order, created, err := l.repository.Create(ctx, newOrder, l.settings.DeliveryFee())
	if err != nil {
		return nil, false, fmt.Errorf("create order: %w", err)
	}
	if created {
		l.notifyCustomer(ctx, order)
	}
	return order, created, nil
}

func (l *Lifecycle) GetOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := l.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// Confirm курьер подтверждает, что берет заказ: ASSIGNED -> PROCESSING.
// Время ответа учитывается в статистике курьера.
func (l *Lifecycle) Confirm(ctx context.Context, orderID string, courierID int64) (*entities.Order, error) {
	order, err := l.courierTransition(ctx, orderID, courierID, entities.OrderProcessing, entities.OrderModify{})
	if err != nil {
		return nil, err
	}

	if order.AssignedAt != nil {
		if err := l.responses.RecordResponse(ctx, courierID, *order.AssignedAt, order.UpdatedAt); err != nil {
			l.log.Warn("record courier response",
				logger.NewField("order_id", orderID),
				logger.NewField("courier_id", courierID),
				logger.NewField("error", err),
			)
		}
	}
	return order, nil
}

// Checkpoint необязательная отметка PROCESSING -> PICKED_UP.
func (l *Lifecycle) Checkpoint(ctx context.Context, orderID string, courierID int64) (*entities.Order, error) {
	return l.courierTransition(ctx, orderID, courierID, entities.OrderPickedUp, entities.OrderModify{})
}

// StartDelivery PROCESSING или PICKED_UP -> DELIVERING. Фото не требуется.
func (l *Lifecycle) StartDelivery(ctx context.Context, orderID string, courierID int64) (*entities.Order, error) {
	return l.courierTransition(ctx, orderID, courierID, entities.OrderDelivering, entities.OrderModify{})
}

// Deliver DELIVERING -> DELIVERED. Ссылка на фото сохраняется тем же
// обновлением, что и статус. Без ссылки переход отклоняется с ProofRequired.
func (l *Lifecycle) Deliver(ctx context.Context, orderID string, courierID int64, photoRef *string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	current, err := l.loadForCourier(ctx, orderID, courierID, entities.OrderDelivered)
	if err != nil {
		return nil, err
	}

	if photoRef == nil || strings.TrimSpace(*photoRef) == "" {
		return nil, ErrPhotoRequired
	}
	ref := strings.TrimSpace(*photoRef)

	exists, err := l.proofStore.Exists(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("check delivery photo: %w", err)
	}
	if !exists {
		return nil, ErrPhotoNotFound
	}

	return l.apply(ctx, current, entities.OrderDelivered, entities.OrderModify{DeliveryPhotoRef: &ref})
}

// Complete DELIVERED -> COMPLETED вместе с начислением курьеру, одной транзакцией.
// courierID nil означает подтверждение администратором.
// Повторный вызов для уже завершенного заказа не ошибка: начисление
// идемпотентно по заказу, второй раз оно не выполняется.
func (l *Lifecycle) Complete(ctx context.Context, orderID string, courierID *int64) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	var (
		result       *entities.Order
		transitioned bool
	)
	err := l.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := l.repository.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if courierID != nil && !order.IsAssignedTo(*courierID) {
			return ErrWrongCourier
		}

		if order.Status != entities.OrderCompleted {
			if err := CheckTransition(order.Status, entities.OrderCompleted); err != nil {
				return err
			}

			finishedAt := time.Now().UTC()
			status := entities.OrderCompleted
			updated, err := l.repository.UpdateStatus(ctx, orderID, order.Status, entities.OrderModify{
				Status:     &status,
				FinishedAt: &finishedAt,
			})
			switch {
			case errors.Is(err, entities.ErrConcurrentModification):
				// параллельное завершение уже могло пройти
				order, err = l.repository.GetByID(ctx, orderID)
				if err != nil {
					return fmt.Errorf("get order: %w", err)
				}
				if order.Status != entities.OrderCompleted {
					return ErrOrderChanged
				}
			case err != nil:
				return fmt.Errorf("complete order: %w", err)
			default:
				order = updated
				transitioned = true
			}
		}

		if order.CourierID == nil {
			return fmt.Errorf("completed order without courier: %w", ErrTransitionNotAllowed)
		}

		if _, err := l.ledger.RecordCompletion(ctx, *order.CourierID, order.ID, order.DeliveryFee); err != nil {
			return fmt.Errorf("record completion: %w", err)
		}

		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if transitioned {
		l.notifyCustomer(ctx, result)
	}
	return result, nil
}

// Cancel переводит любой незавершенный заказ в CANCELLED и снимает курьера.
// Начислений при отмене нет.
func (l *Lifecycle) Cancel(ctx context.Context, orderID string, reason string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	current, err := l.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := CheckTransition(current.Status, entities.OrderCancelled); err != nil {
		return nil, err
	}

	finishedAt := time.Now().UTC()
	modify := entities.OrderModify{
		FinishedAt:   &finishedAt,
		ClearCourier: true,
	}
	if reason = strings.TrimSpace(reason); reason != "" {
		modify.CancelReason = &reason
	}

	return l.apply(ctx, current, entities.OrderCancelled, modify)
}

// MarkPaid выставляет флаг оплаты. Статус заказа не меняется.
func (l *Lifecycle) MarkPaid(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	current, err := l.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if current.Status.IsTerminal() {
		return nil, fmt.Errorf("mark paid in %s: %w", current.Status, ErrOrderFinished)
	}
	if current.PaymentStatus == entities.PaymentPaid {
		return current, nil
	}

	paid := entities.PaymentPaid
	updated, err := l.repository.UpdateStatus(ctx, orderID, current.Status, entities.OrderModify{PaymentStatus: &paid})
	if err != nil {
		return nil, fmt.Errorf("mark paid: %w", err)
	}
	return updated, nil
}

func (l *Lifecycle) courierTransition(
	ctx context.Context,
	orderID string,
	courierID int64,
	to entities.OrderStatusType,
	modify entities.OrderModify,
) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	current, err := l.loadForCourier(ctx, orderID, courierID, to)
	if err != nil {
		return nil, err
	}
	return l.apply(ctx, current, to, modify)
}

// loadForCourier читает заказ и проверяет, что переход допустим
// и что заказ числится за этим курьером.
func (l *Lifecycle) loadForCourier(
	ctx context.Context,
	orderID string,
	courierID int64,
	to entities.OrderStatusType,
) (*entities.Order, error) {
	if courierID <= 0 {
		return nil, ErrInvalidCourierID
	}

	current, err := l.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := CheckTransition(current.Status, to); err != nil {
		return nil, err
	}
	if !current.IsAssignedTo(courierID) {
		return nil, ErrWrongCourier
	}
	return current, nil
}

func (l *Lifecycle) apply(
	ctx context.Context,
	current *entities.Order,
	to entities.OrderStatusType,
	modify entities.OrderModify,
) (*entities.Order, error) {
	modify.Status = &to

	updated, err := l.repository.UpdateStatus(ctx, current.ID, current.Status, modify)
	if err != nil {
		return nil, fmt.Errorf("%s -> %s: %w", current.Status, to, err)
	}

	l.notifyCustomer(ctx, updated)
	return updated, nil
}

// уведомления не откатывают переход, ошибка только логируется
func (l *Lifecycle) notifyCustomer(ctx context.Context, order *entities.Order) {
	if err := l.notifier.NotifyCustomer(ctx, order.ID, order.Status); err != nil {
		l.log.Warn("notify customer",
			logger.NewField("order_id", order.ID),
			logger.NewField("status", order.Status.String()),
			logger.NewField("error", err),
		)
	}
}

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}
