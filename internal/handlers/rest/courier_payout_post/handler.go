package courier_payout_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/generated/dto"
	"dispatch/internal/handlers/rest/response"
	"dispatch/internal/service/earnings"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

var (
	errBadID     = errors.New("invalid courier id")
	errBadBody   = errors.New("invalid request body")
	errBadAmount = errors.New("amount must be a decimal number")
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

	var payoutDTO dto.PayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&payoutDTO); err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadBody)
		return
	}

	amount, err := decimal.NewFromString(payoutDTO.Amount)
	if err != nil {
		response.Error(w, h.log, http.StatusBadRequest, errBadAmount)
		return
	}

	payout, err := h.service.Payout(r.Context(), id, amount)
	if err != nil {
		response.ServiceError(w, h.log, err,
			earnings.ErrInvalidCourierID,
			earnings.ErrInvalidAmount,
		)
		return
	}

	h.log.Info("courier payout",
		logger.NewField("courier_id", id),
		logger.NewField("amount", payout.Amount.String()),
		logger.NewField("settled", payout.SettledCount),
	)

	response.JSON(w, h.log, http.StatusOK, response.Payout(payout))
}
