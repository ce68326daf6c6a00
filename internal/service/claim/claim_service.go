// internal/service/claim/claim_service.go
package claim

import (
	"context"
	"errors"
	"strings"
	"time"

	"insurance-service/internal/domain/claim"
	"insurance-service/internal/domain/policy"
	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const EventClaimStatus = "claim:status"

type Repository interface {
	Create(ctx context.Context, c *claim.Claim) error
	FindByID(ctx context.Context, id int64) (*claim.Claim, error)
	List(ctx context.Context, filters claim.ListFilters) ([]claim.Claim, error)
	UpdateStatus(ctx context.Context, id int64, status claim.Status, resolvedAt *time.Time) (*claim.Claim, error)
}

type PolicyFinder interface {
	FindByID(ctx context.Context, id int64) (*policy.Policy, error)
}

// Notifier pushes an event to every open connection of a user.
type Notifier interface {
	NotifyUser(userID int64, event string, data interface{})
}

type ClaimService struct {
	repo     Repository
	policies PolicyFinder
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewClaimService(repo Repository, policies PolicyFinder, notifier Notifier, logger *zap.Logger) *ClaimService {
	return &ClaimService{
		repo:     repo,
		policies: policies,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Create files a pending claim against one of the caller's active policies.
func (s *ClaimService) Create(ctx context.Context, actor user.Actor, req *claim.CreateClaimRequest) (*claim.Claim, error) {
	if !req.Amount.IsPositive() {
		return nil, xerrors.Invalid("amount must be greater than zero")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, xerrors.Invalid("description is required")
	}

	p, err := s.policies.FindByID(ctx, req.PolicyID)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, xerrors.Invalid("policy %d does not exist", req.PolicyID)
	}
	if err != nil {
		return nil, xerrors.Unavailable(err)
	}
	if p.UserID != actor.UserID {
		return nil, xerrors.Invalid("policy %d does not belong to the claimant", req.PolicyID)
	}
	if !p.IsActive() {
		return nil, xerrors.Invalid("policy %s is not active", p.PolicyNumber)
	}

	c := &claim.Claim{
		UserID:       actor.UserID,
		PolicyID:     p.ID,
		Amount:       req.Amount.Round(2),
		Description:  description,
		Status:       claim.StatusPending,
		PolicyNumber: p.PolicyNumber,
		PolicyType:   p.Type,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create claim", zap.Int64("user_id", actor.UserID), zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}

	s.logger.Info("claim filed",
		zap.String("claim_number", c.ClaimNumber),
		zap.Int64("user_id", c.UserID),
		zap.String("amount", c.Amount.String()),
	)
	return c, nil
}

// List returns claims newest first. Customers only ever see their own.
func (s *ClaimService) List(ctx context.Context, actor user.Actor, filters claim.ListFilters) ([]claim.Claim, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, xerrors.Invalid("unknown claim status %q", filters.Status)
	}
	if !actor.IsAgent() {
		filters.UserID = &actor.UserID
	}

	claims, err := s.repo.List(ctx, filters)
	if err != nil {
		s.logger.Error("failed to list claims", zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}
	return claims, nil
}

// Get returns one claim. Other customers' claims are reported as not found.
func (s *ClaimService) Get(ctx context.Context, actor user.Actor, id int64) (*claim.Claim, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, xerrors.Unavailable(err)
	}
	if !actor.IsAgent() && c.UserID != actor.UserID {
		return nil, xerrors.ErrNotFound
	}
	return c, nil
}

// UpdateStatus records an agent decision. The resolved date is stamped for
// approved and rejected, and cleared for any other status. Last write wins.
func (s *ClaimService) UpdateStatus(ctx context.Context, id int64, status claim.Status) (*claim.Claim, error) {
	if !status.Valid() {
		return nil, xerrors.Invalid("unknown claim status %q", status)
	}

	var resolvedAt *time.Time
	if status.Resolved() {
		now := s.now().UTC()
		resolvedAt = &now
	}

	c, err := s.repo.UpdateStatus(ctx, id, status, resolvedAt)
	if err != nil {
		if !errors.Is(err, xerrors.ErrNotFound) {
			s.logger.Error("failed to update claim status", zap.Int64("claim_id", id), zap.Error(err))
		}
		return nil, xerrors.Unavailable(err)
	}

	s.logger.Info("claim status changed",
		zap.String("claim_number", c.ClaimNumber),
		zap.String("status", string(c.Status)),
	)

	if s.notifier != nil {
		s.notifier.NotifyUser(c.UserID, EventClaimStatus, map[string]interface{}{
			"claim_id":      c.ID,
			"claim_number":  c.ClaimNumber,
			"status":        c.Status,
			"resolved_date": c.ResolvedDate,
		})
	}
	return c, nil
}
