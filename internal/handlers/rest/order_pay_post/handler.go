package order_pay_post

import (
	"net/http"

	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/lifecycle"
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.MarkPaid(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.ServiceError(w, h.log, err, lifecycle.ErrInvalidOrderID)
		return
	}

	response.JSON(w, h.log, http.StatusOK, response.Order(order))
}
