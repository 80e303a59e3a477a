package courier_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/courier"
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

// ServeHTTP регистрирует курьера по одобренной заявке.
// Новый курьер не на смене, рейтинг 5.0, уровень bronze, баланс 0.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var courierCreateDTO dto.CourierCreate
	err := json.NewDecoder(r.Body).Decode(&courierCreateDTO)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadBody)
		return
	}

	courierModifyEntity := entities.CourierModify{
		Name:       &courierCreateDTO.Name,
		Phone:      &courierCreateDTO.Phone,
		IsVerified: courierCreateDTO.IsVerified,
	}

	id, err := h.service.CreateCourier(r.Context(), courierModifyEntity)
	if err != nil {
		if errors.Is(err, courier.ErrConflict) {
			response.Error(w, h.log, http.StatusConflict, err)
			return
		}
		response.ServiceError(w, h.log, err,
			courier.ErrMissingRequiredFields,
			courier.ErrInvalidName,
			courier.ErrInvalidPhone,
		)
		return
	}

	response.JSON(w, h.log, http.StatusCreated, dto.CourierCreateResponse{ID: id})
}
