// internal/handlers/auth/auth_handler.go
package auth

import (
	"context"
	"net/http"

	"insurance-service/internal/domain/user"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/jwt"
	"insurance-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, req *user.RegisterRequest) (*user.LoginResponse, error)
	Login(ctx context.Context, req *user.LoginRequest) (*user.LoginResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, userID int64) (*user.UserInfo, error)
}

type AuthHandler struct {
	authService Service
	logger      *zap.Logger
}

func NewAuthHandler(authService Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// ========== Registration ==========

// Register handles customer registration (public endpoint)
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	loginResp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("registration failed",
			zap.String("email", req.Email),
			zap.Error(err),
		)
		response.FromError(c, "registration failed", err)
		return
	}

	response.Success(c, http.StatusCreated, "registration successful", loginResp)
}

// ========== Login ==========

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}
	req.IPAddress = c.ClientIP()

	loginResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.logger.Warn("login failed",
			zap.String("email", req.Email),
			zap.String("ip", req.IPAddress),
			zap.Error(err),
		)
		response.FromError(c, "login failed", err)
		return
	}

	h.logger.Info("user logged in",
		zap.Int64("user_id", loginResp.User.ID),
		zap.String("role", loginResp.User.Role),
	)

	response.Success(c, http.StatusOK, "login successful", loginResp)
}

// ========== Logout ==========

// Logout revokes the presented token (requires auth)
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.MustGetClaims(c)

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.logger.Error("logout failed",
			zap.Int64("user_id", claims.UserID),
			zap.Error(err),
		)
		response.FromError(c, "logout failed", err)
		return
	}

	response.Success(c, http.StatusOK, "logout successful", nil)
}

// GetMe returns the current account
func (h *AuthHandler) GetMe(c *gin.Context) {
	info, err := h.authService.Me(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, "failed to load account", err)
		return
	}

	response.Success(c, http.StatusOK, "account retrieved", info)
}
