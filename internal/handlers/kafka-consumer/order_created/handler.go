package order_created

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/lifecycle"
	"dispatch/pkg/logger"
	"dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
	"github.com/IBM/sarama"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	orderService             Service
	log                      handlerLogger
	validate                 *validator.Validate
	retrier                  retrier.Retrier
	messageProcessingTimeout time.Duration
}

// New timeout ограничивает одну попытку обработки, retry задает паузы и
// общий бюджет повторов при сбоях хранилища.
func New(log handlerLogger, orderService Service, timeout time.Duration, retry retrier.Config) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "order.created"),
	)

	retry.ShouldRetry = isRetryable
	retry.OnRetry = func(err error, next time.Duration) {
		handlerLog.With(
			logger.NewField("error", err),
			logger.NewField("next", next.String()),
		).Warn("order.created processing failed, retrying")
	}

	return &Handler{
		orderService:             orderService,
		log:                      handlerLog,
		validate:                 validator.New(validator.WithRequiredStructEnabled()),
		retrier:                  backoff_adapter.New(retry),
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("order.created: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			if shouldExit := h.messageProcessing(sess, message); shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("order.created: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing возвращает true, если ConsumeClaim нужно прервать.
// Сообщение в этом случае не коммитится и будет прочитано повторно.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	var event orderCreatedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("order.created handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("offset", message.Offset),
	)

	if err := h.validate.Struct(event); err != nil {
		msgLog.With(
			logger.NewField("error", err),
		).Error("order.created handler received invalid event")
		sess.MarkMessage(message, "")
		return false
	}

	newOrder, err := toNewOrder(event)
	if err != nil {
		msgLog.With(
			logger.NewField("error", err),
		).Error("order.created handler received invalid total")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("order.created processing")

	var order *entities.Order
	err = h.retrier.ExecuteWithContext(sess.Context(), func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, h.messageProcessingTimeout)
		defer cancel()

		var processErr error
		order, processErr = h.orderService.ProcessOrderCreated(attemptCtx, newOrder)
		return processErr
	})
	if err != nil {
		if isRejected(err) {
			msgLog.With(
				logger.NewField("error", err),
			).Warn("order.created handler rejected order")
			sess.MarkMessage(message, "")
			return false
		}

		msgLog.With(
			logger.NewField("error", err),
		).Error("order.created handler gave up, message will be reprocessed")
		return true
	}

	fields := []logger.Field{
		logger.NewField("status", order.Status.String()),
	}
	if order.Status == entities.OrderAssigned && order.CourierID != nil {
		fields = append(fields, logger.NewField("courier_id", *order.CourierID))
	}
	msgLog.With(fields...).Info("order.created: processed")

	sess.MarkMessage(message, "")
	return false
}

// isRejected ошибки, которые повтор не исправит: событие коммитится.
func isRejected(err error) bool {
	return errors.Is(err, lifecycle.ErrInvalidOrderID) ||
		errors.Is(err, lifecycle.ErrInvalidTotal) ||
		errors.Is(err, entities.ErrInvalidTransition) ||
		errors.Is(err, entities.ErrNotFound)
}

// isRetryable сбои хранилища, потерянные гонки и таймаут попытки.
// Отмена сессии не ретраится: идет ребаланс или остановка.
func isRetryable(err error) bool {
	return !isRejected(err) && !errors.Is(err, context.Canceled)
}
