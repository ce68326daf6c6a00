// internal/handlers/analytics/analytics_handler.go
package analytics

import (
	"context"
	"net/http"
	"strconv"

	"insurance-service/internal/domain/analytics"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Service interface {
	Report(ctx context.Context) (*analytics.Report, error)
	UserDashboard(ctx context.Context, userID int64) (*analytics.Dashboard, error)
}

type AnalyticsHandler struct {
	analyticsService Service
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService Service, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetAnalytics serves GET /analytics (agent only).
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	report, err := h.analyticsService.Report(c.Request.Context())
	if err != nil {
		h.logger.Error("analytics report failed", zap.Error(err))
		response.FromError(c, "failed to fetch analytics", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetDashboard serves GET /dashboard. Agents may pass ?user_id= to view a
// customer; everyone else sees their own.
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if raw := c.Query("user_id"); raw != "" && middleware.IsAgent(c) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.ValidationError(c, "invalid user ID", nil)
			return
		}
		userID = id
	}

	dashboard, err := h.analyticsService.UserDashboard(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("dashboard failed", zap.Int64("user_id", userID), zap.Error(err))
		response.FromError(c, "failed to load dashboard", err)
		return
	}

	response.Success(c, http.StatusOK, "dashboard retrieved", dashboard)
}
