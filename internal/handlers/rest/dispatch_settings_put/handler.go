package dispatch_settings_put

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/pkg/logger"
	"github.com/shopspring/decimal"
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

// ServeHTTP меняет веса скоринга и/или тариф доставки. Невалидные значения
// отклоняются целиком, действующие настройки не меняются.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var updateDTO dto.DispatchSettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadBody)
		return
	}

	modify := entities.DispatchSettingsModify{}
	if updateDTO.Weights != nil {
		modify.Weights = &entities.DispatchWeights{
			Distance: updateDTO.Weights.Distance,
			Rating:   updateDTO.Weights.Rating,
			Workload: updateDTO.Weights.Workload,
			Response: updateDTO.Weights.Response,
		}
	}
	if updateDTO.DeliveryFee != nil {
		fee, err := decimal.NewFromString(*updateDTO.DeliveryFee)
		if err != nil {
			response.Error(w, h.log, http.StatusBadRequest, fmt.Errorf("delivery fee %q: %w", *updateDTO.DeliveryFee, entities.ErrConfigInvalid))
			return
		}
		modify.DeliveryFee = &fee
	}

	updated, err := h.service.Update(r.Context(), modify)
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	h.log.Info("dispatch settings updated",
		logger.NewField("weights", updated.Weights),
		logger.NewField("delivery_fee", updated.DeliveryFee.String()),
	)

	response.JSON(w, h.log, http.StatusOK, response.DispatchSettings(updated))
}
