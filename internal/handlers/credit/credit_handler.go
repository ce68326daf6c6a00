// internal/handlers/credit/credit_handler.go
package credit

import (
	"context"
	"net/http"

	"insurance-service/internal/domain/credit"
	"insurance-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Service interface {
	RiskReview(ctx context.Context) ([]credit.RiskAssessment, error)
	ListProfiles(ctx context.Context, filters credit.ListFilters) ([]credit.ProfileSummary, error)
	Lookup(ctx context.Context, email string) (*credit.ProfileSummary, error)
}

type CreditHandler struct {
	creditService Service
	logger        *zap.Logger
}

func NewCreditHandler(creditService Service, logger *zap.Logger) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
		logger:        logger,
	}
}

// RiskReview serves GET /credit-risk as a bare array, lowest score first.
func (h *CreditHandler) RiskReview(c *gin.Context) {
	records, err := h.creditService.RiskReview(c.Request.Context())
	if err != nil {
		h.logger.Error("credit risk review failed", zap.Error(err))
		response.FromError(c, "failed to load credit risk data", err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// ListProfiles serves GET /credit/all?min_score=&max_score=
func (h *CreditHandler) ListProfiles(c *gin.Context) {
	filters, err := credit.ParseListFilters(c.Query("min_score"), c.Query("max_score"))
	if err != nil {
		response.FromError(c, "invalid score filter", err)
		return
	}

	profiles, err := h.creditService.ListProfiles(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("credit profile listing failed", zap.Error(err))
		response.FromError(c, "failed to fetch credit profiles", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"profiles": profiles,
	})
}

// Lookup serves POST /credit {email}.
func (h *CreditHandler) Lookup(c *gin.Context) {
	var req credit.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "a valid email is required", nil)
		return
	}

	profile, err := h.creditService.Lookup(c.Request.Context(), req.Email)
	if err != nil {
		response.FromError(c, "credit profile not found", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": profile,
	})
}
