package courier_duty_put

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/generated/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/courier"
	"github.com/gorilla/mux"
)

var (
	errBadID   = errors.New("invalid courier id")
	errBadBody = errors.New("invalid request body")
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
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadID)
		return
	}

	var dutyDTO dto.CourierDutyUpdate
	if err := json.NewDecoder(r.Body).Decode(&dutyDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadBody)
		return
	}

	courierEntity, err := h.service.SetDuty(r.Context(), id, dutyDTO.OnDuty)
	if err != nil {
		response.ServiceError(w, h.log, err, courier.ErrInvalidCourierID)
		return
	}

	response.JSON(w, h.log, http.StatusOK, response.Courier(courierEntity))
}
