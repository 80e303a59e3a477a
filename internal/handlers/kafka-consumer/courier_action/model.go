package courier_action

// courierActionEvent действие курьера из бота.
type courierActionEvent struct {
	OrderID   string  `json:"order_id" validate:"required"`
	CourierID int64   `json:"courier_id" validate:"required,gt=0"`
	Action    string  `json:"action" validate:"required,oneof=confirm checkpoint start_delivery deliver complete reject"`
	PhotoRef  *string `json:"photo_ref,omitempty" validate:"omitempty,min=1"`
}
