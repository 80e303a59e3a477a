package dispatch_expired_get

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/handlers/rest/response"
)

var errBadLimit = errors.New("limit must be a positive integer")

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

// ServeHTTP без limit отдает одну пачку размером с пачку диспетчерского прохода.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			response.Error(w, h.log, http.StatusBadRequest, errBadLimit)
			return
		}
		limit = parsed
	}

	offers, err := h.service.ExpiredOffers(r.Context(), limit)
	if err != nil {
		response.ServiceError(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, response.ExpiredOffers(offers))
}
