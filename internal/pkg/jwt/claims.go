// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	roleAgent    = "agent"
	roleCustomer = "customer"
)

// Claims represents the JWT claims
type Claims struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// IsAgent reports whether the token belongs to an agent account.
func (c *Claims) IsAgent() bool {
	return c.Role == roleAgent
}
