// internal/service/settings/settings_service.go
package settings

import (
	"context"
	"errors"

	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type Repository interface {
	Get(ctx context.Context, userID int64) (*user.Settings, error)
	Upsert(ctx context.Context, s *user.Settings) error
}

type SettingsService struct {
	repo   Repository
	logger *zap.Logger
}

func NewSettingsService(repo Repository, logger *zap.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

// Get returns the saved settings, or the defaults if none were saved.
func (s *SettingsService) Get(ctx context.Context, userID int64) (*user.Settings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if errors.Is(err, xerrors.ErrNotFound) {
		return user.DefaultSettings(userID), nil
	}
	if err != nil {
		s.logger.Error("failed to load user settings", zap.Int64("user_id", userID), zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}
	return settings, nil
}

// Update merges req onto the current settings and saves the result.
func (s *SettingsService) Update(ctx context.Context, userID int64, req *user.UpdateSettingsRequest) (*user.Settings, error) {
	if req.PaymentMethod != nil && !user.ValidPaymentMethod(*req.PaymentMethod) {
		return nil, xerrors.Invalid("payment_method must be one of %s, %s, %s",
			user.PaymentCreditCard, user.PaymentBank, user.PaymentPayPal)
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	req.Apply(current)

	if err := s.repo.Upsert(ctx, current); err != nil {
		s.logger.Error("failed to save user settings", zap.Int64("user_id", userID), zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}

	s.logger.Info("user settings updated",
		zap.Int64("user_id", userID),
		zap.String("payment_method", current.PaymentMethod),
	)
	return current, nil
}
