package order_dispatch_post

import (
	"net/http"

	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/dispatch"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
)

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

// ServeHTTP одна попытка назначения. Если свободных курьеров нет, отвечает 409,
// а заказ остается в CREATED до следующей попытки.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	assignment, err := h.service.Assign(r.Context(), orderID)
	if err != nil {
		response.ServiceError(w, h.log, err, dispatch.ErrInvalidOrderID)
		return
	}

	h.log.Info("order dispatched",
		logger.NewField("order_id", assignment.OrderID),
		logger.NewField("courier_id", assignment.CourierID),
		logger.NewField("score", assignment.Score),
	)

	response.JSON(w, h.log, http.StatusOK, response.Assignment(assignment))
}
