package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// Service точка входа для внешних событий: оформленные заказы и действия
// курьеров приходят сюда и из Kafka, и из REST.
type Service struct {
	log           handlerLogger
	lifecycle     Lifecycle
	dispatcher    Dispatcher
	actionFactory HandlerFactory
}

func New(log handlerLogger, lifecycle Lifecycle, dispatcher Dispatcher, actionFactory HandlerFactory) *Service {
	return &Service{
		log:           log,
		lifecycle:     lifecycle,
		dispatcher:    dispatcher,
		actionFactory: actionFactory,
	}
}

// ProcessOrderCreated сохраняет заказ и делает одну попытку назначения.
// Если курьера нет, заказ остается в CREATED до следующего sweep.
// Повторное событие о том же заказе назначение не запускает.
func (s *Service) ProcessOrderCreated(ctx context.Context, newOrder entities.NewOrder) (*entities.Order, error) {
	order, created, err := s.lifecycle.CreateOrder(ctx, newOrder)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if !created {
		return order, nil
	}

	_, err = s.dispatcher.Assign(ctx, order.ID)
	switch {
	case err == nil:
	case errors.Is(err, entities.ErrNoCourierAvailable):
		s.log.Info("no courier available, order waits for sweep",
			logger.NewField("order_id", order.ID),
		)
		return order, nil
	case errors.Is(err, entities.ErrConcurrentModification):
		// заказ уже назначил sweep или администратор
	default:
		s.log.Warn("dispatch new order",
			logger.NewField("order_id", order.ID),
			logger.NewField("error", err),
		)
		return order, nil
	}

	current, err := s.lifecycle.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("get order after dispatch: %w", err)
	}
	return current, nil
}

// ProcessCourierAction выполняет действие курьера над заказом.
func (s *Service) ProcessCourierAction(ctx context.Context, action entities.CourierAction) (*entities.Order, error) {
	if strings.TrimSpace(action.OrderID) == "" {
		return nil, ErrInvalidOrderID
	}
	if action.CourierID <= 0 {
		return nil, ErrInvalidCourierID
	}

	executeFn, err := s.actionFactory.GetHandler(action.Action)
	if err != nil {
		return nil, err
	}

	order, err := executeFn(ctx, action)
	if err != nil {
		return nil, fmt.Errorf("%s order %s: %w", action.Action, action.OrderID, err)
	}
	return order, nil
}
