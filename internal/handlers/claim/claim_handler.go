// internal/handlers/claim/claim_handler.go
package claim

import (
	"context"
	"net/http"
	"strconv"

	"insurance-service/internal/domain/claim"
	"insurance-service/internal/domain/user"
	"insurance-service/internal/middleware"
	"insurance-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Create(ctx context.Context, actor user.Actor, req *claim.CreateClaimRequest) (*claim.Claim, error)
	List(ctx context.Context, actor user.Actor, filters claim.ListFilters) ([]claim.Claim, error)
	Get(ctx context.Context, actor user.Actor, id int64) (*claim.Claim, error)
	UpdateStatus(ctx context.Context, id int64, status claim.Status) (*claim.Claim, error)
}

type ClaimHandler struct {
	claimService Service
}

func NewClaimHandler(claimService Service) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
	}
}

// CreateClaim files a claim against one of the caller's policies
func (h *ClaimHandler) CreateClaim(c *gin.Context) {
	var req claim.CreateClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.claimService.Create(c.Request.Context(), middleware.Actor(c), &req)
	if err != nil {
		response.FromError(c, "failed to create claim", err)
		return
	}

	response.Success(c, http.StatusCreated, "claim submitted", result)
}

// ListClaims retrieves claims with filters
func (h *ClaimHandler) ListClaims(c *gin.Context) {
	var filters claim.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid query parameters", err)
		return
	}

	claims, err := h.claimService.List(c.Request.Context(), middleware.Actor(c), filters)
	if err != nil {
		response.FromError(c, "failed to list claims", err)
		return
	}

	response.Success(c, http.StatusOK, "claims retrieved", claim.ClaimListResponse{
		Claims: claims,
		Total:  len(claims),
	})
}

// GetClaim retrieves a claim by ID
func (h *ClaimHandler) GetClaim(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.claimService.Get(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		response.FromError(c, "claim not found", err)
		return
	}

	response.Success(c, http.StatusOK, "claim retrieved", result)
}

// UpdateClaimStatus approves, rejects or reopens a claim (agent only)
func (h *ClaimHandler) UpdateClaimStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req claim.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.claimService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.FromError(c, "claim not found", err)
		return
	}

	response.Success(c, http.StatusOK, "claim status updated", result)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, "invalid claim ID", nil)
		return 0, false
	}
	return id, true
}
