package courier_get

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/courier"
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
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadID)
		return
	}

	courierEntity, err := h.service.GetCourier(r.Context(), id)
	if err != nil {
		response.ServiceError(w, h.log, err, courier.ErrInvalidCourierID)
		return
	}

	response.JSON(w, h.log, http.StatusOK, response.Courier(courierEntity))
}
