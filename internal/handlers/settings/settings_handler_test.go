package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"insurance-service/internal/domain/user"
	"insurance-service/internal/middleware"
	xerrors "insurance-service/internal/pkg/errors"
	"insurance-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type tokens map[string]*jwt.Claims

func (t tokens) ValidateToken(_ context.Context, token string) (*jwt.Claims, error) {
	if c, ok := t[token]; ok {
		return c, nil
	}
	return nil, xerrors.ErrUnauthorized
}

type fakeService struct {
	userID int64
	req    *user.UpdateSettingsRequest
	err    error
}

func (f *fakeService) Get(_ context.Context, userID int64) (*user.Settings, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return user.DefaultSettings(userID), nil
}

func (f *fakeService) Update(_ context.Context, userID int64, req *user.UpdateSettingsRequest) (*user.Settings, error) {
	f.userID = userID
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	s := user.DefaultSettings(userID)
	req.Apply(s)
	return s, nil
}

func newRouter(svc Service) *gin.Engine {
	auth := middleware.NewAuthMiddleware(tokens{
		"customer": {UserID: 5, Role: user.RoleCustomer},
	})
	h := NewSettingsHandler(svc, zap.NewNop())

	r := gin.New()
	r.GET("/user/settings", auth.Auth(), h.GetSettings)
	r.PUT("/user/settings", auth.Auth(), h.UpdateSettings)
	return r
}

func do(r http.Handler, method, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/user/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    user.Settings `json:"data"`
}

func TestGetSettings(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc)

	rec := do(r, http.MethodGet, "", "customer")
	require.Equal(t, http.StatusOK, rec.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(5), svc.userID)
	assert.Equal(t, user.PaymentCreditCard, body.Data.PaymentMethod)
	assert.True(t, body.Data.AutoRenew)
	assert.NotContains(t, rec.Body.String(), "user_id")

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "", "").Code)
}

func TestUpdateSettings(t *testing.T) {
	t.Run("saves for the caller", func(t *testing.T) {
		svc := &fakeService{}
		rec := do(newRouter(svc), http.MethodPut, `{"sms_notifications":true,"payment_method":"paypal"}`, "customer")
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, int64(5), svc.userID)
		require.NotNil(t, svc.req.SMSNotifications)
		assert.Nil(t, svc.req.AutoRenew)

		var body envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Data.SMSNotifications)
		assert.Equal(t, user.PaymentPayPal, body.Data.PaymentMethod)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := do(newRouter(&fakeService{}), http.MethodPut, `{"auto_renew":"yes"}`, "customer")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejected payment method", func(t *testing.T) {
		svc := &fakeService{err: xerrors.Invalid("payment_method must be one of credit_card, bank, paypal")}
		rec := do(newRouter(svc), http.MethodPut, `{"payment_method":"bitcoin"}`, "customer")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "payment_method")
	})

	t.Run("store down", func(t *testing.T) {
		svc := &fakeService{err: xerrors.Unavailable(errors.New("dial tcp"))}
		rec := do(newRouter(svc), http.MethodPut, `{}`, "customer")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "dial tcp")
	})
}
