package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salesnav/models"
	"salesnav/services/proposal"
	"salesnav/utils"
)

// ProposalHandler prices, signs and pays for a session's package.
type ProposalHandler struct {
	Service proposal.ProposalService
}

func NewProposalHandler(ps proposal.ProposalService) *ProposalHandler {
	return &ProposalHandler{Service: ps}
}

type proposalInput struct {
	DiscountPercent float64 `json:"discountPercent"`
	WaiveSetupFees  bool    `json:"waiveSetupFees"`
}

type signatureInput struct {
	DataURL string `json:"dataUrl" binding:"required"`
}

func (h *ProposalHandler) QuoteHandler(c *gin.Context) {
	var in models.QuoteRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	b, err := h.Service.Quote(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *ProposalHandler) ProposeHandler(c *gin.Context) {
	var in proposalInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	terms, err := h.Service.Propose(c.Request.Context(), c.Param("id"), in.DiscountPercent, in.WaiveSetupFees)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, terms)
}

func (h *ProposalHandler) SignHandler(c *gin.Context) {
	var in signatureInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	sig, err := h.Service.Sign(c.Request.Context(), c.Param("id"), in.DataURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sig)
}

// CheckoutHandler pays for a signed proposal. Responses match the
// process-payment endpoint.
func (h *ProposalHandler) CheckoutHandler(c *gin.Context) {
	var in models.SessionCheckoutRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	res, err := h.Service.Checkout(c.Request.Context(), c.Param("id"), in.PaymentMethodID, c.GetHeader("Idempotency-Key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ProcessPaymentResponse{
		Success: true,
		Message: "Payment processed successfully",
		Data:    res,
	})
}

func (h *ProposalHandler) DraftEmailHandler(c *gin.Context) {
	draft, err := h.Service.DraftEmail(c.Request.Context(), c.Param("id"), c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}
