package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lcodev/ecom_backend/internal/apperrors"
	portssvc "github.com/lcodev/ecom_backend/internal/core/ports/services"
	"github.com/lcodev/ecom_backend/internal/dto"
	"github.com/lcodev/ecom_backend/internal/middleware"
)

type paymentHandler struct {
	paymentService portssvc.PaymentSvc
	sessions       portssvc.SessionCheckerSvc
}

func newPaymentHandler(ps portssvc.PaymentSvc, sessions portssvc.SessionCheckerSvc) *paymentHandler {
	return &paymentHandler{paymentService: ps, sessions: sessions}
}

func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvc, sessions portssvc.SessionCheckerSvc) {
	h := newPaymentHandler(paymentService, sessions)

	payment := rg.Group("/payment")
	{
		payment.GET("/gettoken/:id/:token", h.getClientToken)
		payment.POST("/process/:id/:token", h.processPayment)
	}
}

// getClientToken godoc
// @Summary Get a payment client token
// @Description Returns a gateway client token the storefront uses to tokenize a card.
// @Tags payment
// @Produce json
// @Param id path string true "User ID"
// @Param token path string true "Session token"
// @Success 200 {object} dto.ClientTokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /payment/gettoken/{id}/{token} [get]
func (h *paymentHandler) getClientToken(c *gin.Context) {
	clientToken, err := h.paymentService.GetClientToken(c.Request.Context(), c.Param("id"), c.Param("token"))
	if err != nil {
		respondError(c, err, "Failed to get client token")
		return
	}
	c.JSON(http.StatusOK, dto.ClientTokenResponse{ClientToken: clientToken, Success: true})
}

// processPayment godoc
// @Summary Charge a payment method
// @Description Submits a sale for settlement. A declined charge is final; an unavailable gateway may be retried by the client.
// @Tags payment
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "User ID"
// @Param token path string true "Session token"
// @Param paymentMethodNonce formData string true "Payment method nonce"
// @Param amount formData string true "Amount"
// @Success 200 {object} dto.ChargeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ChargeErrorResponse
// @Failure 503 {object} dto.ChargeErrorResponse
// @Router /payment/process/{id}/{token} [post]
func (h *paymentHandler) processPayment(c *gin.Context) {
	var req dto.ChargeRequest
	if err := c.ShouldBind(&req); err != nil {
		respondSessionBindError(c, h.sessions, err)
		return
	}
	req.UserID = c.Param("id")
	req.Token = c.Param("token")

	tx, err := h.paymentService.Charge(c.Request.Context(), req)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUpstream) {
			respondError(c, err, "Charge rejected")
			return
		}
		status, body := toErrorResponse(err)
		reason, _ := apperrors.DeclineReason(err)
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Charge failed",
			slog.String("error", err.Error()),
			slog.Bool("retryable", apperrors.IsRetryable(err)))
		c.JSON(status, dto.ChargeErrorResponse{
			Error:     body.Error,
			Success:   false,
			Reason:    reason,
			Retryable: apperrors.IsRetryable(err),
		})
		return
	}

	c.JSON(http.StatusOK, dto.ChargeResponse{
		Success: true,
		Transaction: dto.TransactionResponse{
			ID:     tx.ID,
			Amount: tx.Amount,
			Status: string(tx.Status),
		},
	})
}
