package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-nft-ledger/internal/api/middleware"
	"github.com/feral-file/ff-nft-ledger/internal/ratelimit"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, metricsHandler http.Handler, authCfg middleware.AuthConfig, limiter *ratelimit.Limiter) {
	// Health check and metrics endpoints (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metricsHandler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Collection and account endpoints (public read access)
		v1.GET("/collection", handler.GetCollection)
		v1.GET("/accounts/:address/balance", handler.GetBalance)
		v1.GET("/accounts/:address/tokens", handler.ListTokensOfOwner)

		// Token endpoints (public read access)
		v1.GET("/tokens/:token_id", handler.GetToken)
		v1.GET("/tokens/:token_id/owner", handler.GetOwner)
		v1.GET("/tokens/:token_id/approved", handler.GetApproved)
		v1.GET("/tokens/:token_id/uri", handler.GetTokenURI)

		// Journal endpoint (public read access)
		v1.GET("/events", handler.ListEvents)

		// Ledger mutations (requires a JWT whose subject is the caller, throttled per caller)
		mutations := v1.Group("", middleware.Auth(authCfg), middleware.RequireCaller(), middleware.RateLimit(limiter))
		mutations.POST("/tokens/mint", handler.Mint)
		mutations.POST("/tokens/:token_id/approve", handler.Approve)
		mutations.POST("/tokens/:token_id/transfer", handler.Transfer)

		// Webhook endpoints (requires API key authentication only)
		v1.POST("/webhooks/clients", middleware.APIKeyAuth(authCfg), handler.CreateWebhookClient)
	}
}
