package order_reject_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/generated/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/dispatch"
	"github.com/gorilla/mux"
)

var errBadBody = errors.New("invalid request body")

type Handler struct {
	log        handlerLogger
	dispatcher Dispatcher
	orders     Orders
}

func New(log handlerLogger, dispatcher Dispatcher, orders Orders) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:        handlerLog,
		dispatcher: dispatcher,
		orders:     orders,
	}
}

// ServeHTTP отказ курьера от назначения. Внешний планировщик вызывает его же
// по истекшим предложениям. В ответе заказ и новое назначение, если оно случилось.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var rejectDTO dto.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&rejectDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadBody)
		return
	}

	assignment, err := h.dispatcher.Reject(r.Context(), orderID, rejectDTO.CourierID)
	if err != nil {
		response.ServiceError(w, h.log, err,
			dispatch.ErrInvalidOrderID,
			dispatch.ErrInvalidCourierID,
		)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	result := dto.RejectResponse{Order: response.Order(order)}
	if assignment != nil {
		reassigned := response.Assignment(assignment)
		result.Reassigned = &reassigned
	}

	response.JSON(w, h.log, http.StatusOK, result)
}
