package order_cancel_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/generated/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/lifecycle"
	"dispatch/pkg/logger"
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var cancelDTO dto.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&cancelDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadBody)
		return
	}

	order, err := h.service.Cancel(r.Context(), orderID, cancelDTO.Reason)
	if err != nil {
		response.ServiceError(w, h.log, err, lifecycle.ErrInvalidOrderID)
		return
	}

	h.log.Info("order cancelled",
		logger.NewField("order_id", order.ID),
		logger.NewField("reason", cancelDTO.Reason),
	)

	response.JSON(w, h.log, http.StatusOK, response.Order(order))
}
