// internal/app/router.go
package app

import (
	"context"
	"net/http"
	"time"

	analyticsHandler "insurance-service/internal/handlers/analytics"
	authHandler "insurance-service/internal/handlers/auth"
	claimHandler "insurance-service/internal/handlers/claim"
	creditHandler "insurance-service/internal/handlers/credit"
	policyHandler "insurance-service/internal/handlers/policy"
	settingsHandler "insurance-service/internal/handlers/settings"
	wsHandler "insurance-service/internal/handlers/websocket"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	CreditHandler    *creditHandler.CreditHandler
	AnalyticsHandler *analyticsHandler.AnalyticsHandler
	ClaimHandler     *claimHandler.ClaimHandler
	PolicyHandler    *policyHandler.PolicyHandler
	SettingsHandler  *settingsHandler.SettingsHandler
	WSHandler        *wsHandler.WebSocketHandler
	AuthMiddleware   *middleware.AuthMiddleware
	Metrics          *middleware.Metrics
	HealthChecks     map[string]HealthCheck
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	// ==================== Metrics ====================
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", healthHandler(logger, h.HealthChecks))

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.AuthHandler.Register)
		authPublic.POST("/login", h.AuthHandler.Login)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.GET("/me", h.AuthHandler.GetMe)
	}

	// ==================== Customer Dashboard ====================
	api.GET("/dashboard", h.AuthMiddleware.Auth(), h.AnalyticsHandler.GetDashboard)

	// ==================== User Settings ====================
	settings := api.Group("/user/settings")
	settings.Use(h.AuthMiddleware.Auth())
	{
		settings.GET("", h.SettingsHandler.GetSettings)
		settings.PUT("", h.SettingsHandler.UpdateSettings)
	}

	// ==================== Claims ====================
	claims := api.Group("/claims")
	claims.Use(h.AuthMiddleware.Auth())
	{
		claims.POST("", h.ClaimHandler.CreateClaim)
		claims.GET("", h.ClaimHandler.ListClaims)
		claims.GET("/:id", h.ClaimHandler.GetClaim)
		claims.PATCH("/:id/status", h.AuthMiddleware.RequireRole("agent"), h.ClaimHandler.UpdateClaimStatus)
	}

	// ==================== Policies ====================
	policies := api.Group("/policies")
	policies.Use(h.AuthMiddleware.Auth())
	{
		policies.POST("", h.PolicyHandler.CreatePolicy)
		policies.GET("", h.PolicyHandler.ListPolicies)
		policies.POST("/quote", h.PolicyHandler.QuotePremium)
		policies.GET("/:id", h.PolicyHandler.GetPolicy)
		policies.POST("/:id/cancel", h.PolicyHandler.CancelPolicy)
		policies.PATCH("/:id/status", h.AuthMiddleware.RequireRole("agent"), h.PolicyHandler.UpdatePolicyStatus)
	}

	// ==================== Agent Routes ====================
	agent := api.Group("")
	agent.Use(h.AuthMiddleware.AgentOnly()...)
	{
		agent.GET("/credit-risk", h.CreditHandler.RiskReview)
		agent.GET("/credit/all", h.CreditHandler.ListProfiles)
		agent.POST("/credit", h.CreditHandler.Lookup)
		agent.GET("/analytics", h.AnalyticsHandler.GetAnalytics)
		agent.GET("/ws/stats", h.WSHandler.GetStats)
	}
}

func healthHandler(logger *zap.Logger, checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
				results[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "up"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{"status": overall, "checks": results})
	}
}
