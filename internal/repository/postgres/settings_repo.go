// internal/repository/postgres/settings_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns xerrors.ErrNotFound when the user never saved settings.
func (r *SettingsRepository) Get(ctx context.Context, userID int64) (*user.Settings, error) {
	query := `
		SELECT user_id, email_notifications, sms_notifications, auto_renew, payment_method, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var s user.Settings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.EmailNotifications, &s.SMSNotifications, &s.AutoRenew, &s.PaymentMethod, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}
	return &s, nil
}

// Upsert writes the whole row and stamps updated_at.
func (r *SettingsRepository) Upsert(ctx context.Context, s *user.Settings) error {
	query := `
		INSERT INTO user_settings (user_id, email_notifications, sms_notifications, auto_renew, payment_method)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			email_notifications = EXCLUDED.email_notifications,
			sms_notifications   = EXCLUDED.sms_notifications,
			auto_renew          = EXCLUDED.auto_renew,
			payment_method      = EXCLUDED.payment_method,
			updated_at          = NOW()
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		s.UserID, s.EmailNotifications, s.SMSNotifications, s.AutoRenew, s.PaymentMethod,
	).Scan(&s.UpdatedAt)
	if isForeignKeyViolation(err) {
		return xerrors.Invalid("user %d does not exist", s.UserID)
	}
	if err != nil {
		return fmt.Errorf("failed to save user settings: %w", err)
	}
	return nil
}
