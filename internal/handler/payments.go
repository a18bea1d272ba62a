package handler

import (
	"net/http"

	"greenroots/internal/apierror"
	"greenroots/internal/dto"
	"greenroots/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PaymentsHandler bridges checkout to the payment provider. The call goes
// through the circuit breaker so a provider outage fails fast.
type PaymentsHandler struct {
	client  *infra.PaymentClient
	breaker *infra.CircuitBreaker
}

func NewPaymentsHandler(client *infra.PaymentClient, breaker *infra.CircuitBreaker) *PaymentsHandler {
	return &PaymentsHandler{client: client, breaker: breaker}
}

func (h *PaymentsHandler) CreateIntent(c *gin.Context) {
	var req dto.PaymentIntentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var intent *infra.PaymentIntent
	err := h.breaker.Execute(func() error {
		var callErr error
		intent, callErr = h.client.CreateIntent(c.Request.Context(), req.Amount, req.Currency)
		return callErr
	})
	if err != nil {
		log.Warn().Err(err).Msg("payment intent creation failed")
		c.JSON(http.StatusBadGateway, apierror.New("Payment provider unavailable"))
		return
	}

	c.JSON(http.StatusOK, dto.PaymentIntentResponse{ClientSecret: intent.ClientSecret})
}
