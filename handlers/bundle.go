package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Payment    *PaymentHandler
	Discovery  *DiscoveryHandler
	Proposal   *ProposalHandler
	Onboarding *OnboardingHandler
	Admin      *AdminHandler

	// Health endpoints
	Health       gin.HandlerFunc
	Dependencies gin.HandlerFunc

	AdminSecret []byte
}
