// internal/handlers/settings/settings_handler.go
package settings

import (
	"context"
	"net/http"

	"insurance-service/internal/domain/user"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Service interface {
	Get(ctx context.Context, userID int64) (*user.Settings, error)
	Update(ctx context.Context, userID int64, req *user.UpdateSettingsRequest) (*user.Settings, error)
}

type SettingsHandler struct {
	settingsService Service
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService Service, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings serves GET /user/settings for the caller.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	settings, err := h.settingsService.Get(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, "failed to load settings", err)
		return
	}

	response.Success(c, http.StatusOK, "settings retrieved", settings)
}

// UpdateSettings serves PUT /user/settings. Omitted fields keep their value.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req user.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	userID := middleware.MustGetUserID(c)
	settings, err := h.settingsService.Update(c.Request.Context(), userID, &req)
	if err != nil {
		h.logger.Warn("settings update rejected", zap.Int64("user_id", userID), zap.Error(err))
		response.FromError(c, "failed to save settings", err)
		return
	}

	response.Success(c, http.StatusOK, "settings saved", settings)
}
