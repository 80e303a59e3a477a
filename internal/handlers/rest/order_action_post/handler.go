package order_action_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/lifecycle"
	"dispatch/internal/service/order"
	"github.com/gorilla/mux"
)

var errBadBody = errors.New("invalid request body")

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP действие курьера из приложения. Тот же путь, что и у событий из бота.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var actionDTO dto.CourierActionRequest
	if err := json.NewDecoder(r.Body).Decode(&actionDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadBody)
		return
	}

	action := entities.CourierAction{
		OrderID:   mux.Vars(r)["id"],
		CourierID: actionDTO.CourierID,
		Action:    entities.CourierActionType(actionDTO.Action),
		PhotoRef:  actionDTO.PhotoRef,
	}

	orderEntity, err := h.service.ProcessCourierAction(r.Context(), action)
	if err != nil {
		response.ServiceError(w, h.log, err,
			order.ErrInvalidOrderID,
			order.ErrInvalidCourierID,
			order.ErrUndefinedAction,
			lifecycle.ErrInvalidOrderID,
			lifecycle.ErrInvalidCourierID,
		)
		return
	}

	response.JSON(w, h.log, http.StatusOK, response.Order(orderEntity))
}
