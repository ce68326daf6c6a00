// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"
	"insurance-service/internal/pkg/jwt"
	"insurance-service/internal/pkg/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the user repository the auth flows need.
type UserStore interface {
	Create(ctx context.Context, u *user.User) error
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByID(ctx context.Context, id int64) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

var errInvalidCredentials = xerrors.Wrap(xerrors.ErrUnauthorized, "invalid email or password")

type AuthService struct {
	users       UserStore
	jwtManager  *jwt.Manager
	rateLimiter *session.RateLimiter
	revocations *session.RevocationList
	logger      *zap.Logger
	hashCost    int
}

func NewAuthService(
	users UserStore,
	jwtManager *jwt.Manager,
	rateLimiter *session.RateLimiter,
	revocations *session.RevocationList,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		jwtManager:  jwtManager,
		rateLimiter: rateLimiter,
		revocations: revocations,
		logger:      logger,
		hashCost:    bcrypt.DefaultCost,
	}
}

// ========== Registration ==========

// Register creates a customer account and logs it in.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest) (*user.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, xerrors.Unavailable(err)
	}
	if exists {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         user.RoleCustomer,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, xerrors.ErrConflict) {
			return nil, xerrors.Wrap(xerrors.ErrConflict, "email already registered")
		}
		return nil, xerrors.Unavailable(err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", u.ID), zap.String("role", u.Role))
	return s.issue(u)
}

// ========== Login ==========

// Login checks credentials. Attempts are limited per (ip, email) pair.
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest) (*user.LoginResponse, error) {
	email := normalizeEmail(req.Email)

	allowed, remaining, err := s.rateLimiter.CheckLoginAttempt(ctx, req.IPAddress, email)
	if err != nil {
		return nil, xerrors.Unavailable(err)
	}
	if !allowed {
		return nil, xerrors.Wrap(xerrors.ErrRateLimited, "too many login attempts, please try again in 15 minutes")
	}

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, xerrors.Unavailable(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login",
			zap.Int64("user_id", u.ID),
			zap.String("ip", req.IPAddress),
			zap.Int64("attempts_remaining", remaining),
		)
		return nil, errInvalidCredentials
	}

	if err := s.rateLimiter.ResetLoginAttempts(ctx, req.IPAddress, email); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}

	return s.issue(u)
}

func (s *AuthService) issue(u *user.User) (*user.LoginResponse, error) {
	tok, err := s.jwtManager.Generator.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken: tok.Value,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtManager.Generator.Ttl.Seconds()),
		ExpiresAt:   tok.ExpiresAt,
		User:        u.Info(),
	}, nil
}

// ========== Logout ==========

// Logout revokes the token until it would have expired on its own.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) error {
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if err := s.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return xerrors.Unavailable(err)
	}

	s.logger.Info("user logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

// ========== Token validation ==========

// ValidateToken verifies the signature and rejects revoked tokens.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verifier.VerifyAccessToken(token)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrUnauthorized, "invalid token")
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, xerrors.Unavailable(err)
	}
	if revoked {
		return nil, xerrors.Wrap(xerrors.ErrUnauthorized, "token has been revoked")
	}

	return claims, nil
}

// Me returns the account behind a token.
func (s *AuthService) Me(ctx context.Context, userID int64) (*user.UserInfo, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, xerrors.Unavailable(err)
	}
	info := u.Info()
	return &info, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
