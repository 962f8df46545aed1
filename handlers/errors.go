package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salesnav/database/repository"
	"salesnav/services/catalog"
	"salesnav/services/checkout"
	"salesnav/services/copywriter"
	"salesnav/services/discovery"
	"salesnav/services/onboarding"
	"salesnav/services/pricing"
	"salesnav/services/proposal"
	"salesnav/services/storage"
	"salesnav/utils"
)

// statusFor maps service errors onto HTTP statuses. Anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, discovery.ErrSessionNotFound),
		errors.Is(err, onboarding.ErrUnknownStep),
		errors.Is(err, onboarding.ErrUnknownAsset),
		errors.Is(err, repository.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, discovery.ErrAnswerRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, discovery.ErrUnknownQuestion),
		errors.Is(err, discovery.ErrAnswerShape),
		errors.Is(err, catalog.ErrUnknownService),
		errors.Is(err, pricing.ErrDiscountOutOfRange),
		errors.Is(err, storage.ErrInvalidImage),
		errors.Is(err, copywriter.ErrUnknownEmailType),
		errors.Is(err, proposal.ErrMissingPaymentRef):
		return http.StatusBadRequest
	case errors.Is(err, checkout.ErrDuplicateSubmission),
		errors.Is(err, discovery.ErrSessionBusy),
		errors.Is(err, proposal.ErrPackageNotReady),
		errors.Is(err, proposal.ErrNoServices),
		errors.Is(err, proposal.ErrNoProposal),
		errors.Is(err, proposal.ErrNotSigned),
		errors.Is(err, proposal.ErrProposalStale),
		errors.Is(err, proposal.ErrAlreadyPaid):
		return http.StatusConflict
	case errors.Is(err, proposal.ErrStorageDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		getLogger(c).Error("Request failed", zap.Error(err))
	}
	utils.JSONError(c, status, err.Error())
}
