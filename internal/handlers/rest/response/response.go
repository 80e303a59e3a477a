package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/generated/dto"
	"dispatch/pkg/logger"
)

const internalErrorMessage = "internal error"

// JSON пишет тело ответа. Ошибка кодирования только логируется: статус уже отправлен.
func JSON(w http.ResponseWriter, log handlerLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// Error отвечает ошибкой в формате dto.Error. Текст внутренних ошибок наружу не отдается.
func Error(w http.ResponseWriter, log handlerLogger, status int, err error) {
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.With(
			logger.NewField("error", err),
		).Error("request failed")
		message = internalErrorMessage
	}
	JSON(w, log, status, dto.Error{Error: message})
}

// StatusFor переводит категорию ошибки ядра в HTTP статус.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrProofRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, entities.ErrConcurrentModification),
		errors.Is(err, entities.ErrNoCourierAvailable),
		errors.Is(err, entities.ErrInsufficientBalance):
		return http.StatusConflict
	case errors.Is(err, entities.ErrConfigInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ServiceError отвечает на ошибку сервиса. badRequest перечисляет ошибки валидации
// конкретного сервиса, остальные разбираются по категориям ядра.
func ServiceError(w http.ResponseWriter, log handlerLogger, err error, badRequest ...error) {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			Error(w, log, http.StatusBadRequest, err)
			return
		}
	}
	Error(w, log, StatusFor(err), err)
}
