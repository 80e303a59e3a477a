package order_complete_post

import (
	"net/http"

	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/lifecycle"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
)

// Handler подтверждение доставки администратором. Курьер не проверяется,
// начисление уходит курьеру, назначенному на заказ.
type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "order.complete"),
	)

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	order, err := h.service.Complete(r.Context(), orderID, nil)
	if err != nil {
		response.ServiceError(w, h.log, err, lifecycle.ErrInvalidOrderID)
		return
	}

	h.log.Info("order completed by admin",
		logger.NewField("order_id", order.ID),
	)
	response.JSON(w, h.log, http.StatusOK, response.Order(order))
}
