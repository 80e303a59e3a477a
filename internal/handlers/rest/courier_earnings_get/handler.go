package courier_earnings_get

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/earnings"
	"github.com/gorilla/mux"
)

var errBadID = errors.New("invalid courier id")

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
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadID)
		return
	}

	events, err := h.service.ListEarnings(r.Context(), id)
	if err != nil {
		response.ServiceError(w, h.log, err, earnings.ErrInvalidCourierID)
		return
	}

	response.JSON(w, h.log, http.StatusOK, response.EarningList(events))
}
