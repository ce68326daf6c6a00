package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"
)

type fakeRepo struct {
	rows    map[int64]user.Settings
	getErr  error
	saveErr error
	saves   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]user.Settings{}}
}

func (f *fakeRepo) Get(ctx context.Context, userID int64) (*user.Settings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.rows[userID]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &s, nil
}

func (f *fakeRepo) Upsert(ctx context.Context, s *user.Settings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.rows[s.UserID] = *s
	return nil
}

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when never saved", func(t *testing.T) {
		svc := NewSettingsService(newFakeRepo(), zap.NewNop())
		s, err := svc.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, user.DefaultSettings(7), s)
		assert.True(t, s.EmailNotifications)
		assert.False(t, s.SMSNotifications)
		assert.True(t, s.AutoRenew)
		assert.Equal(t, user.PaymentCreditCard, s.PaymentMethod)
	})

	t.Run("saved row wins", func(t *testing.T) {
		repo := newFakeRepo()
		repo.rows[7] = user.Settings{UserID: 7, PaymentMethod: user.PaymentPayPal}
		s, err := NewSettingsService(repo, zap.NewNop()).Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, user.PaymentPayPal, s.PaymentMethod)
		assert.False(t, s.EmailNotifications)
	})

	t.Run("store down", func(t *testing.T) {
		repo := newFakeRepo()
		repo.getErr = errors.New("connection refused")
		_, err := NewSettingsService(repo, zap.NewNop()).Get(ctx, 7)
		assert.ErrorIs(t, err, xerrors.ErrDataUnavailable)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewSettingsService(repo, zap.NewNop())

		s, err := svc.Update(ctx, 7, &user.UpdateSettingsRequest{SMSNotifications: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, s.SMSNotifications)
		assert.True(t, s.EmailNotifications)
		assert.Equal(t, user.PaymentCreditCard, s.PaymentMethod)

		s, err = svc.Update(ctx, 7, &user.UpdateSettingsRequest{PaymentMethod: strPtr(user.PaymentBank), AutoRenew: boolPtr(false)})
		require.NoError(t, err)
		assert.True(t, s.SMSNotifications)
		assert.False(t, s.AutoRenew)
		assert.Equal(t, user.PaymentBank, repo.rows[7].PaymentMethod)
		assert.Equal(t, 2, repo.saves)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		repo := newFakeRepo()
		_, err := NewSettingsService(repo, zap.NewNop()).Update(ctx, 7, &user.UpdateSettingsRequest{PaymentMethod: strPtr("bitcoin")})
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
		assert.Zero(t, repo.saves)
	})

	t.Run("save fails", func(t *testing.T) {
		repo := newFakeRepo()
		repo.saveErr = errors.New("connection reset")
		_, err := NewSettingsService(repo, zap.NewNop()).Update(ctx, 7, &user.UpdateSettingsRequest{AutoRenew: boolPtr(false)})
		assert.ErrorIs(t, err, xerrors.ErrDataUnavailable)
	})
}
