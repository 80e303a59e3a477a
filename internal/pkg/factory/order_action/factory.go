package order_action

import (
	"context"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/service/order"
)

// ActionHandlerFactory сопоставляет действию курьера переход машины состояний.
type ActionHandlerFactory struct {
	lifecycle  order.Lifecycle
	dispatcher order.Dispatcher
}

func NewActionHandlerFactory(lifecycle order.Lifecycle, dispatcher order.Dispatcher) *ActionHandlerFactory {
	return &ActionHandlerFactory{
		lifecycle:  lifecycle,
		dispatcher: dispatcher,
	}
}

func (f *ActionHandlerFactory) GetHandler(action entities.CourierActionType) (order.ExecuteFn, error) {
	switch action {
	case entities.ActionConfirm:
		return f.confirmHandler, nil
	case entities.ActionCheckpoint:
		return f.checkpointHandler, nil
	case entities.ActionStartDelivery:
		return f.startDeliveryHandler, nil
	case entities.ActionDeliver:
		return f.deliverHandler, nil
	case entities.ActionComplete:
		return f.completeHandler, nil
	case entities.ActionReject:
		return f.rejectHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", order.ErrUndefinedAction, action)
	}
}

func (f *ActionHandlerFactory) confirmHandler(ctx context.Context, action entities.CourierAction) (*entities.Order, error) {
	return f.lifecycle.Confirm(ctx, action.OrderID, action.CourierID)
}

func (f *ActionHandlerFactory) checkpointHandler(ctx context.Context, action entities.CourierAction) (*entities.Order, error) {
	return f.lifecycle.Checkpoint(ctx, action.OrderID, action.CourierID)
}

func (f *ActionHandlerFactory) startDeliveryHandler(ctx context.Context, action entities.CourierAction) (*entities.Order, error) {
	return f.lifecycle.StartDelivery(ctx, action.OrderID, action.CourierID)
}

func (f *ActionHandlerFactory) deliverHandler(ctx context.Context, action entities.CourierAction) (*entities.Order, error) {
	return f.lifecycle.Deliver(ctx, action.OrderID, action.CourierID, action.PhotoRef)
}

func (f *ActionHandlerFactory) completeHandler(ctx context.Context, action entities.CourierAction) (*entities.Order, error) {
	courierID := action.CourierID
	return f.lifecycle.Complete(ctx, action.OrderID, &courierID)
}

// после отказа возвращаем заказ в том виде, в каком его оставило переназначение
func (f *ActionHandlerFactory) rejectHandler(ctx context.Context, action entities.CourierAction) (*entities.Order, error) {
	if _, err := f.dispatcher.Reject(ctx, action.OrderID, action.CourierID); err != nil {
		return nil, err
	}
	return f.lifecycle.GetOrder(ctx, action.OrderID)
}
