// internal/service/auth/bootstrap.go
package auth

import (
	"context"
	"fmt"

	"insurance-service/internal/domain/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapAgent describes the agent account seeded on first start.
type BootstrapAgent struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// EnsureAgentExists creates the bootstrap agent if its email is not yet taken.
// An empty email disables seeding.
func (s *AuthService) EnsureAgentExists(ctx context.Context, agent BootstrapAgent) error {
	if agent.Email == "" {
		return nil
	}
	if agent.Password == "" {
		return fmt.Errorf("bootstrap agent %s has no password configured", agent.Email)
	}

	email := normalizeEmail(agent.Email)
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check bootstrap agent: %w", err)
	}
	if exists {
		s.logger.Info("bootstrap agent already exists, skipping creation", zap.String("email", email))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(agent.Password), s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    agent.FirstName,
		LastName:     agent.LastName,
		Role:         user.RoleAgent,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return fmt.Errorf("failed to create bootstrap agent: %w", err)
	}

	s.logger.Info("bootstrap agent created", zap.Int64("user_id", u.ID), zap.String("email", email))
	return nil
}
