// internal/middleware/helpers.go
package middleware

import (
	"insurance-service/internal/domain/user"
	"insurance-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// GetUserID gets the authenticated user ID from context
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// MustGetUserID gets user ID from context or panics
func MustGetUserID(c *gin.Context) int64 {
	id, exists := GetUserID(c)
	if !exists {
		panic("user_id not found in context")
	}
	return id
}

func GetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxRole)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

// MustGetClaims returns the validated token claims or panics
func MustGetClaims(c *gin.Context) *jwt.Claims {
	v, exists := c.Get(ctxClaims)
	if !exists {
		panic("claims not found in context")
	}
	return v.(*jwt.Claims)
}

// Actor builds the service-layer identity of the caller.
func Actor(c *gin.Context) user.Actor {
	role, _ := GetRole(c)
	return user.Actor{UserID: MustGetUserID(c), Role: role}
}

// IsAgent checks if the caller is an agent
func IsAgent(c *gin.Context) bool {
	role, _ := GetRole(c)
	return role == user.RoleAgent
}
