package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"
	"insurance-service/internal/pkg/jwt"
	"insurance-service/internal/pkg/session"
)

type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*user.User
	nextID  int64
	err     error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*user.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return xerrors.ErrConflict
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id int64) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.byEmail[email]
	return ok, nil
}

func newTestService(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	manager := jwt.NewManager(key, &key.PublicKey, jwt.Config{
		Issuer:   "insurance-service",
		Audience: "insurance-users",
		TTL:      time.Hour,
	})

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := newFakeUserStore()
	svc := NewAuthService(store, manager, session.NewRateLimiter(client), session.NewRevocationList(client), zap.NewNop())
	svc.hashCost = bcrypt.MinCost
	return svc, store
}

func registerReq(email string) *user.RegisterRequest {
	return &user.RegisterRequest{Email: email, Password: "correct-horse", FirstName: " Jane ", LastName: "Doe"}
}

func TestRegister(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq("Jane@Example.com "))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "jane@example.com", resp.User.Email)
	assert.Equal(t, "Jane Doe", resp.User.Name)
	assert.Equal(t, user.RoleCustomer, resp.User.Role)

	stored, err := store.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := svc.Register(ctx, registerReq("JANE@example.com"))
		assert.ErrorIs(t, err, xerrors.ErrConflict)
	})

	t.Run("store failure is data unavailable", func(t *testing.T) {
		store.err = errors.New("connection refused")
		defer func() { store.err = nil }()

		_, err := svc.Register(ctx, registerReq("new@example.com"))
		assert.ErrorIs(t, err, xerrors.ErrDataUnavailable)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("jane@example.com"))
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, &user.LoginRequest{Email: "jane@example.com", Password: "correct-horse", IPAddress: "10.0.0.1"})
		require.NoError(t, err)

		claims, err := svc.ValidateToken(ctx, resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
		assert.Equal(t, user.RoleCustomer, claims.Role)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		_, errWrong := svc.Login(ctx, &user.LoginRequest{Email: "jane@example.com", Password: "nope", IPAddress: "10.0.0.2"})
		_, errUnknown := svc.Login(ctx, &user.LoginRequest{Email: "ghost@example.com", Password: "nope", IPAddress: "10.0.0.2"})

		assert.ErrorIs(t, errWrong, xerrors.ErrUnauthorized)
		assert.ErrorIs(t, errUnknown, xerrors.ErrUnauthorized)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("rate limited after five attempts", func(t *testing.T) {
		req := &user.LoginRequest{Email: "jane@example.com", Password: "nope", IPAddress: "10.0.0.3"}
		for i := 0; i < 5; i++ {
			_, err := svc.Login(ctx, req)
			assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
		}

		req.Password = "correct-horse"
		_, err := svc.Login(ctx, req)
		assert.ErrorIs(t, err, xerrors.ErrRateLimited)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq("jane@example.com"))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	_, err = svc.ValidateToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, xerrors.ErrUnauthorized)
}

func TestEnsureAgentExists(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAgentExists(ctx, BootstrapAgent{}))
	assert.Empty(t, store.byEmail)

	agent := BootstrapAgent{Email: "Agent@Example.com", Password: "s3cret-pass", FirstName: "Ada", LastName: "Agent"}
	require.NoError(t, svc.EnsureAgentExists(ctx, agent))
	require.NoError(t, svc.EnsureAgentExists(ctx, agent))
	assert.Len(t, store.byEmail, 1)

	u, err := store.FindByEmail(ctx, "agent@example.com")
	require.NoError(t, err)
	assert.True(t, u.IsAgent())

	err = svc.EnsureAgentExists(ctx, BootstrapAgent{Email: "x@example.com"})
	assert.Error(t, err)
}
