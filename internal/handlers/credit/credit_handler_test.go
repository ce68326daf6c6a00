package credit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"insurance-service/internal/domain/credit"
	xerrors "insurance-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeService struct {
	riskReview   func(ctx context.Context) ([]credit.RiskAssessment, error)
	listProfiles func(ctx context.Context, filters credit.ListFilters) ([]credit.ProfileSummary, error)
	lookup       func(ctx context.Context, email string) (*credit.ProfileSummary, error)
	calls        int
}

func (f *fakeService) RiskReview(ctx context.Context) ([]credit.RiskAssessment, error) {
	f.calls++
	return f.riskReview(ctx)
}

func (f *fakeService) ListProfiles(ctx context.Context, filters credit.ListFilters) ([]credit.ProfileSummary, error) {
	f.calls++
	return f.listProfiles(ctx, filters)
}

func (f *fakeService) Lookup(ctx context.Context, email string) (*credit.ProfileSummary, error) {
	f.calls++
	return f.lookup(ctx, email)
}

func newRouter(svc Service) *gin.Engine {
	h := NewCreditHandler(svc, zap.NewNop())
	r := gin.New()
	r.GET("/credit-risk", h.RiskReview)
	r.GET("/credit/all", h.ListProfiles)
	r.POST("/credit", h.Lookup)
	return r
}

func serve(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRiskReview(t *testing.T) {
	t.Run("returns a bare array", func(t *testing.T) {
		svc := &fakeService{riskReview: func(context.Context) ([]credit.RiskAssessment, error) {
			return []credit.RiskAssessment{{
				ProfileSummary: credit.ProfileSummary{UserID: 3, Name: "Bo Ng", Email: "bo@example.com", CreditScore: 610, RiskLevel: "high", SuggestedMultiplier: 1.15},
				DisplayEmphasis: 1.7,
				ConcerningClaims: []credit.ConcerningClaim{
					{ClaimNumber: "CLM-2024-000004", Status: "rejected", Amount: decimal.RequireFromString("2500.00")},
				},
				ConcerningPolicies: []credit.ConcerningPolicy{},
			}}, nil
		}}

		rec := serve(newRouter(svc), http.MethodGet, "/credit-risk", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body []map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, 1.15, body[0]["suggested_multiplier"])
		assert.Equal(t, "bo@example.com", body[0]["email"])
		claims := body[0]["concerning_claims"].([]interface{})
		assert.Equal(t, 2500.0, claims[0].(map[string]interface{})["amount"])
		assert.Equal(t, []interface{}{}, body[0]["concerning_policies"])
	})

	t.Run("store failure is generic", func(t *testing.T) {
		svc := &fakeService{riskReview: func(context.Context) ([]credit.RiskAssessment, error) {
			return nil, xerrors.Unavailable(errors.New(`pq: relation "credit_profiles" does not exist`))
		}}

		rec := serve(newRouter(svc), http.MethodGet, "/credit-risk", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "credit_profiles")
		assert.Contains(t, rec.Body.String(), `"success":false`)
	})
}

func TestListProfiles(t *testing.T) {
	t.Run("passes bounds through", func(t *testing.T) {
		var got credit.ListFilters
		svc := &fakeService{listProfiles: func(_ context.Context, f credit.ListFilters) ([]credit.ProfileSummary, error) {
			got = f
			return []credit.ProfileSummary{{UserID: 1, Name: "Al Li", CreditScore: 820, RiskLevel: "low", SuggestedMultiplier: 0.95}}, nil
		}}

		rec := serve(newRouter(svc), http.MethodGet, "/credit/all?min_score=700&max_score=850", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		require.NotNil(t, got.MinScore)
		require.NotNil(t, got.MaxScore)
		assert.Equal(t, 700, *got.MinScore)
		assert.Equal(t, 850, *got.MaxScore)

		var body struct {
			Success  bool                    `json:"success"`
			Profiles []credit.ProfileSummary `json:"profiles"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Len(t, body.Profiles, 1)
	})

	t.Run("non-numeric bound is rejected before querying", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(newRouter(svc), http.MethodGet, "/credit/all?min_score=abc", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, svc.calls)
	})
}

func TestLookup(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeService{lookup: func(_ context.Context, email string) (*credit.ProfileSummary, error) {
			return &credit.ProfileSummary{UserID: 1, Email: email, CreditScore: 820, RiskLevel: "low", SuggestedMultiplier: 0.95}, nil
		}}

		rec := serve(newRouter(svc), http.MethodPost, "/credit", map[string]string{"email": "al@example.com"})
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Success bool                  `json:"success"`
			Profile credit.ProfileSummary `json:"profile"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, 0.95, body.Profile.SuggestedMultiplier)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeService{lookup: func(context.Context, string) (*credit.ProfileSummary, error) {
			return nil, xerrors.ErrNotFound
		}}

		rec := serve(newRouter(svc), http.MethodPost, "/credit", map[string]string{"email": "ghost@example.com"})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "credit profile not found", body["message"])
	})

	t.Run("malformed email", func(t *testing.T) {
		svc := &fakeService{}

		rec := serve(newRouter(svc), http.MethodPost, "/credit", map[string]string{"email": "not-an-email"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, svc.calls)
	})
}
