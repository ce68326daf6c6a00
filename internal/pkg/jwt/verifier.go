// internal/pkg/jwt/verifier.go
package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotAccessToken = errors.New("token is not an access token")
	ErrUnknownRole    = errors.New("token carries an unknown role")
	ErrBadSubject     = errors.New("token subject does not match user id")
)

// clockSkew tolerated on exp/nbf between API replicas.
const clockSkew = 30 * time.Second

// Verifier checks RS256 tokens minted by Generator.
type Verifier struct {
	pub    *rsa.PublicKey
	parser *jwt.Parser
}

func NewVerifier(pub *rsa.PublicKey, issuer, audience string) *Verifier {
	return &Verifier{
		pub: pub,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

// Verify checks signature, issuer, audience and lifetime.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	if v.pub == nil {
		return nil, fmt.Errorf("jwt verifier has nil public key")
	}

	claims := &Claims{}
	if _, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.pub, nil
	}); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// VerifyAccessToken additionally requires an access-purpose token whose
// identity can back a user.Actor: a positive user id mirrored in sub and
// one of the two account roles.
func (v *Verifier) VerifyAccessToken(tokenString string) (*Claims, error) {
	claims, err := v.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Purpose != purposeAccess {
		return nil, ErrNotAccessToken
	}
	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return nil, ErrBadSubject
	}
	switch claims.Role {
	case roleAgent, roleCustomer:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, claims.Role)
	}

	return claims, nil
}
