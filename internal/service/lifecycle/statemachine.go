package lifecycle

import (
	"fmt"
	"slices"

	"dispatch/internal/entities"
)

// Допустимые переходы статусов заказа. Из COMPLETED и CANCELLED выхода нет.
// Отмена разрешена из любого незавершенного статуса.
var transitions = map[entities.OrderStatusType][]entities.OrderStatusType{
	entities.OrderCreated:    {entities.OrderAssigned, entities.OrderCancelled},
	entities.OrderAssigned:   {entities.OrderCreated, entities.OrderProcessing, entities.OrderCancelled},
	entities.OrderProcessing: {entities.OrderPickedUp, entities.OrderDelivering, entities.OrderCancelled},
	entities.OrderPickedUp:   {entities.OrderDelivering, entities.OrderCancelled},
	entities.OrderDelivering: {entities.OrderDelivered, entities.OrderCancelled},
	entities.OrderDelivered:  {entities.OrderCompleted, entities.OrderCancelled},
}

// Статус, в который переводит заказ действие курьера.
var actionTargets = map[entities.CourierActionType]entities.OrderStatusType{
	entities.ActionReject:        entities.OrderCreated,
	entities.ActionConfirm:       entities.OrderProcessing,
	entities.ActionCheckpoint:    entities.OrderPickedUp,
	entities.ActionStartDelivery: entities.OrderDelivering,
	entities.ActionDeliver:       entities.OrderDelivered,
	entities.ActionComplete:      entities.OrderCompleted,
}

func CanTransition(from, to entities.OrderStatusType) bool {
	return slices.Contains(transitions[from], to)
}

// CheckTransition возвращает типизированную ошибку, если переход запрещен.
func CheckTransition(from, to entities.OrderStatusType) error {
	if from.IsTerminal() {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrOrderFinished)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrTransitionNotAllowed)
	}
	return nil
}

// TargetFor статус, в который ведет действие курьера.
func TargetFor(action entities.CourierActionType) (entities.OrderStatusType, error) {
	to, ok := actionTargets[action]
	if !ok {
		return "", fmt.Errorf("unknown courier action %q: %w", action, entities.ErrInvalidTransition)
	}
	return to, nil
}
