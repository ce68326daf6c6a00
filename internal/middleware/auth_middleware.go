// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"insurance-service/internal/domain/user"
	"insurance-service/internal/pkg/jwt"
	"insurance-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxClaims = "claims"
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxJTI    = "jti"
)

// TokenValidator is satisfied by the auth service.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokens TokenValidator
}

func NewAuthMiddleware(tokens TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// Auth is the base authentication middleware that validates JWT tokens
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "missing authorization token")
			return
		}

		claims, err := m.tokens.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.FromError(c, "invalid or expired token", err)
			return
		}

		c.Set(ctxClaims, claims)
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxJTI, claims.ID)

		c.Next()
	}
}

// RequireRole requires one of the given roles.
// MUST be used after Auth() middleware
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetRole(c)
		if !exists {
			response.Forbidden(c, "authentication required")
			return
		}

		for _, required := range roles {
			if role == required {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "insufficient permissions", nil, map[string]interface{}{
			"required_roles": roles,
		})
	}
}

// AgentOnly returns middlewares for agent-only routes (Auth + RequireRole)
func (m *AuthMiddleware) AgentOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		m.Auth(),
		m.RequireRole(user.RoleAgent),
	}
}

// extractToken extracts Bearer token from Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return ""
}
