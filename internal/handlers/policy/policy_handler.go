// internal/handlers/policy/policy_handler.go
package policy

import (
	"context"
	"net/http"
	"strconv"

	"insurance-service/internal/domain/policy"
	"insurance-service/internal/domain/user"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Create(ctx context.Context, actor user.Actor, req *policy.CreatePolicyRequest) (*policy.Policy, error)
	List(ctx context.Context, actor user.Actor, filters policy.ListFilters) ([]policy.Policy, error)
	Get(ctx context.Context, actor user.Actor, id int64) (*policy.Policy, error)
	UpdateStatus(ctx context.Context, id int64, status policy.Status) (*policy.Policy, error)
	Cancel(ctx context.Context, actor user.Actor, id int64) (*policy.Policy, error)
	Quote(ctx context.Context, actor user.Actor, req *policy.QuoteRequest) (*policy.PremiumQuote, error)
}

type PolicyHandler struct {
	policyService Service
}

func NewPolicyHandler(policyService Service) *PolicyHandler {
	return &PolicyHandler{
		policyService: policyService,
	}
}

// CreatePolicy opens a new active policy
func (h *PolicyHandler) CreatePolicy(c *gin.Context) {
	var req policy.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.policyService.Create(c.Request.Context(), middleware.Actor(c), &req)
	if err != nil {
		response.FromError(c, "failed to create policy", err)
		return
	}

	response.Success(c, http.StatusCreated, "policy created", result)
}

// ListPolicies retrieves policies with filters
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	var filters policy.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	policies, err := h.policyService.List(c.Request.Context(), middleware.Actor(c), filters)
	if err != nil {
		response.FromError(c, "failed to list policies", err)
		return
	}

	response.Success(c, http.StatusOK, "policies retrieved", policy.PolicyListResponse{
		Policies: policies,
		Total:    len(policies),
	})
}

// GetPolicy retrieves a policy by ID
func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.policyService.Get(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		response.FromError(c, "policy not found", err)
		return
	}

	response.Success(c, http.StatusOK, "policy retrieved", result)
}

// UpdatePolicyStatus sets any known status (agent only)
func (h *PolicyHandler) UpdatePolicyStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req policy.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.policyService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, "policy not found", err)
		return
	}

	response.Success(c, http.StatusOK, "policy status updated", result)
}

// CancelPolicy lets the owner cancel their policy
func (h *PolicyHandler) CancelPolicy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.policyService.Cancel(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		response.FromError(c, "policy not found", err)
		return
	}

	response.Success(c, http.StatusOK, "policy cancelled", result)
}

// QuotePremium returns the risk-adjusted premium for a customer
func (h *PolicyHandler) QuotePremium(c *gin.Context) {
	var req policy.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	quote, err := h.policyService.Quote(c.Request.Context(), middleware.Actor(c), &req)
	if err != nil {
		response.FromError(c, "credit profile not found", err)
		return
	}

	response.Success(c, http.StatusOK, "premium quote", quote)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, "invalid policy ID", nil)
		return 0, false
	}
	return id, true
}
