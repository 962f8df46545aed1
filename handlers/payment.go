package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salesnav/models"
	"salesnav/services/checkout"
	"salesnav/utils"
)

// PaymentHandler serves the consolidated checkout endpoint.
type PaymentHandler struct {
	Checkout checkout.CheckoutService
}

func NewPaymentHandler(cs checkout.CheckoutService) *PaymentHandler {
	return &PaymentHandler{Checkout: cs}
}

// ProcessPaymentHandler charges the setup fee, starts the subscription and
// records the sale. An Idempotency-Key header overrides the derived key.
func (h *PaymentHandler) ProcessPaymentHandler(c *gin.Context) {
	var req models.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := h.Checkout.ProcessPayment(c.Request.Context(), req, c.GetHeader("Idempotency-Key"))
	if err != nil {
		getLogger(c).Error("Payment processing failed", zap.String("client", req.ClientInfo.Name), zap.Error(err))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProcessPaymentResponse{
		Success: true,
		Message: "Payment processed successfully",
		Data:    res,
	})
}
