package dispatch_settings_get

import (
	"net/http"

	"dispatch/internal/handlers/rest/response"
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	current := h.service.Current()
	response.JSON(w, h.log, http.StatusOK, response.DispatchSettings(&current))
}
