package courier_action

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/order"
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

func New(log handlerLogger, orderService Service, timeout time.Duration, retry retrier.Config) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "courier.action"),
	)

	retry.ShouldRetry = isRetryable
	retry.OnRetry = func(err error, next time.Duration) {
		handlerLog.With(
			logger.NewField("error", err),
			logger.NewField("next", next.String()),
		).Warn("courier.action processing failed, retrying")
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
				h.log.Info("courier.action: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			if shouldExit := h.messageProcessing(sess, message); shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("courier.action: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing возвращает true, если ConsumeClaim нужно прервать.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	var event courierActionEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("courier.action handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("courier", event.CourierID),
		logger.NewField("action", event.Action),
		logger.NewField("offset", message.Offset),
	)

	if err := h.validate.Struct(event); err != nil {
		msgLog.With(
			logger.NewField("error", err),
		).Error("courier.action handler received invalid event")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("courier.action processing")

	action := entities.CourierAction{
		OrderID:   event.OrderID,
		CourierID: event.CourierID,
		Action:    entities.CourierActionType(event.Action),
		PhotoRef:  event.PhotoRef,
	}

	var processed *entities.Order
	err := h.retrier.ExecuteWithContext(sess.Context(), func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, h.messageProcessingTimeout)
		defer cancel()

		var processErr error
		processed, processErr = h.orderService.ProcessCourierAction(attemptCtx, action)
		return processErr
	})
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrInvalidTransition):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("courier.action handler transition rejected")

		case errors.Is(err, entities.ErrProofRequired):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("courier.action handler delivery proof missing")

		case errors.Is(err, entities.ErrNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("courier.action handler order not found")

		case errors.Is(err, order.ErrInvalidOrderID) || errors.Is(err, order.ErrInvalidCourierID):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("courier.action handler received invalid action")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("courier.action handler gave up, message will be reprocessed")
			return true
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("status", processed.Status.String()),
	).Info("courier.action: processed")

	sess.MarkMessage(message, "")
	return false
}

// isRejected ошибки, которые повтор не исправит: действие коммитится.
func isRejected(err error) bool {
	return errors.Is(err, entities.ErrInvalidTransition) ||
		errors.Is(err, entities.ErrProofRequired) ||
		errors.Is(err, entities.ErrNotFound) ||
		errors.Is(err, order.ErrInvalidOrderID) ||
		errors.Is(err, order.ErrInvalidCourierID)
}

// isRetryable сбои хранилища, потерянные гонки и таймаут попытки.
func isRetryable(err error) bool {
	return !isRejected(err) && !errors.Is(err, context.Canceled)
}
