package courier_put

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/entities"
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

// ServeHTTP меняет анкетные данные курьера. Смена, позиция и баланс
// меняются только своими операциями.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadID)
		return
	}

	var courierUpdateDTO dto.CourierUpdate
	err = json.NewDecoder(r.Body).Decode(&courierUpdateDTO)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadBody)
		return
	}

	courierModifyEntity := entities.CourierModify{
		ID:         &id,
		Name:       courierUpdateDTO.Name,
		Phone:      courierUpdateDTO.Phone,
		IsVerified: courierUpdateDTO.IsVerified,
	}

	courierEntity, err := h.service.UpdateCourier(r.Context(), courierModifyEntity)
	if err != nil {
		if errors.Is(err, courier.ErrConflict) {
			response.Error(w, h.log, http.StatusConflict, err)
			return
		}
		response.ServiceError(w, h.log, err,
			courier.ErrInvalidCourierID,
			courier.ErrMissingRequiredFields,
			courier.ErrInvalidName,
			courier.ErrInvalidPhone,
		)
		return
	}

	response.JSON(w, h.log, http.StatusOK, response.Courier(courierEntity))
}
