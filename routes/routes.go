package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"salesnav/handlers"
	"salesnav/middleware"
)

// RegisterPaymentRoutes registers the consolidated checkout endpoint.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/mcp")
	{
		api.POST("/process-payment", hb.Payment.ProcessPaymentHandler)
	}
}

// RegisterDiscoveryRoutes registers the wizard, package, proposal and onboarding
// endpoints, all keyed by session.
func RegisterDiscoveryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	sessions := r.Group("/api/discovery/sessions")
	{
		sessions.POST("", hb.Discovery.CreateSessionHandler)
		sessions.GET("/:id", hb.Discovery.GetSessionHandler)
		sessions.PUT("/:id/answers", hb.Discovery.AnswerHandler)
		sessions.POST("/:id/next", hb.Discovery.NextHandler)
		sessions.POST("/:id/back", hb.Discovery.BackHandler)
		sessions.POST("/:id/test-mode", hb.Discovery.TestModeHandler)
		sessions.GET("/:id/export", hb.Discovery.ExportHandler)

		// Package selection
		sessions.GET("/:id/package", hb.Discovery.PackageHandler)
		sessions.PUT("/:id/services", hb.Discovery.SelectServicesHandler)
		sessions.GET("/:id/services/:serviceId/removal-warning", hb.Discovery.RemovalWarningHandler)

		// Proposal
		sessions.POST("/:id/proposal", hb.Proposal.ProposeHandler)
		sessions.POST("/:id/signature", hb.Proposal.SignHandler)
		sessions.POST("/:id/checkout", hb.Proposal.CheckoutHandler)
		sessions.POST("/:id/emails/:type", hb.Proposal.DraftEmailHandler)

		// Onboarding
		sessions.GET("/:id/tom", hb.Onboarding.GetTOMHandler)
		sessions.PUT("/:id/tom/:stepId", hb.Onboarding.UpdateTOMStepHandler)
		sessions.GET("/:id/assets", hb.Onboarding.GetAssetsHandler)
		sessions.PUT("/:id/assets/:assetId", hb.Onboarding.UpdateAssetHandler)
	}

	r.POST("/api/proposals/quote", hb.Proposal.QuoteHandler)
}

// RegisterHealthRoute registers the health-check endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
	r.GET("/health/dependencies", hb.Dependencies)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", hb.Admin.LoginHandler)

		protected := adminGroup.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware(hb.AdminSecret))
		protected.GET("/checkouts", hb.Admin.ListCheckoutsHandler)
		protected.GET("/checkouts/:id", hb.Admin.GetCheckoutHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterDiscoveryRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
