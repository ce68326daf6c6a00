// internal/service/policy/policy_service.go
package policy

import (
	"context"
	"errors"
	"strings"
	"time"

	"insurance-service/internal/domain/credit"
	"insurance-service/internal/domain/policy"
	"insurance-service/internal/domain/user"
	xerrors "insurance-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const EventPolicyStatus = "policy:status"

type Repository interface {
	Create(ctx context.Context, p *policy.Policy) error
	FindByID(ctx context.Context, id int64) (*policy.Policy, error)
	List(ctx context.Context, filters policy.ListFilters) ([]policy.Policy, error)
	UpdateStatus(ctx context.Context, id int64, status policy.Status) (*policy.Policy, error)
}

type ProfileFinder interface {
	FindProfileByEmail(ctx context.Context, email string) (*credit.Profile, error)
	FindProfileByUserID(ctx context.Context, userID int64) (*credit.Profile, error)
}

// HolderFinder resolves the account an agent opens a policy for.
type HolderFinder interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
}

type Notifier interface {
	NotifyUser(userID int64, event string, data interface{})
}

type PolicyService struct {
	repo     Repository
	users    HolderFinder
	profiles ProfileFinder
	notifier Notifier
	logger   *zap.Logger
}

func NewPolicyService(repo Repository, users HolderFinder, profiles ProfileFinder, notifier Notifier, logger *zap.Logger) *PolicyService {
	return &PolicyService{
		repo:     repo,
		users:    users,
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
	}
}

// Create opens an active policy. Agents may name the holder; customers always
// hold the policies they create.
func (s *PolicyService) Create(ctx context.Context, actor user.Actor, req *policy.CreatePolicyRequest) (*policy.Policy, error) {
	holder := actor.UserID
	if req.UserID != nil {
		if !actor.IsAgent() && *req.UserID != actor.UserID {
			return nil, xerrors.Wrap(xerrors.ErrForbidden, "customers may only open their own policies")
		}
		holder = *req.UserID
	}

	policyType := strings.ToLower(strings.TrimSpace(req.Type))
	if policyType == "" {
		return nil, xerrors.Invalid("type is required")
	}
	if !req.CoverageAmount.IsPositive() {
		return nil, xerrors.Invalid("coverage_amount must be greater than zero")
	}
	if !req.Premium.IsPositive() {
		return nil, xerrors.Invalid("premium must be greater than zero")
	}

	start, err := time.Parse(policy.DateLayout, req.StartDate)
	if err != nil {
		return nil, xerrors.Invalid("start_date must be formatted as YYYY-MM-DD")
	}
	end, err := time.Parse(policy.DateLayout, req.EndDate)
	if err != nil {
		return nil, xerrors.Invalid("end_date must be formatted as YYYY-MM-DD")
	}
	if !end.After(start) {
		return nil, xerrors.Invalid("end_date must be after start_date")
	}

	if holder != actor.UserID {
		if _, err := s.users.FindByID(ctx, holder); err != nil {
			if errors.Is(err, xerrors.ErrNotFound) {
				return nil, xerrors.Invalid("user %d does not exist", holder)
			}
			s.logger.Error("failed to resolve policy holder", zap.Int64("user_id", holder), zap.Error(err))
			return nil, xerrors.Unavailable(err)
		}
	}

	p := &policy.Policy{
		UserID:         holder,
		Type:           policyType,
		CoverageAmount: req.CoverageAmount.Round(2),
		Premium:        req.Premium.Round(2),
		StartDate:      start,
		EndDate:        end,
		Status:         policy.StatusActive,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create policy", zap.Int64("user_id", holder), zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}

	s.logger.Info("policy created",
		zap.String("policy_number", p.PolicyNumber),
		zap.Int64("user_id", p.UserID),
		zap.Int64("created_by", actor.UserID),
	)
	return p, nil
}

// List returns policies by start date. Customers only ever see their own.
func (s *PolicyService) List(ctx context.Context, actor user.Actor, filters policy.ListFilters) ([]policy.Policy, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, xerrors.Invalid("unknown policy status %q", filters.Status)
	}
	if !actor.IsAgent() {
		filters.UserID = &actor.UserID
	}
	filters.Type = strings.ToLower(strings.TrimSpace(filters.Type))

	policies, err := s.repo.List(ctx, filters)
	if err != nil {
		s.logger.Error("failed to list policies", zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}
	return policies, nil
}

func (s *PolicyService) Get(ctx context.Context, actor user.Actor, id int64) (*policy.Policy, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, xerrors.Unavailable(err)
	}
	if !actor.IsAgent() && p.UserID != actor.UserID {
		return nil, xerrors.ErrNotFound
	}
	return p, nil
}

// UpdateStatus is the agent-side status change.
func (s *PolicyService) UpdateStatus(ctx context.Context, id int64, status policy.Status) (*policy.Policy, error) {
	if !status.Valid() {
		return nil, xerrors.Invalid("unknown policy status %q", status)
	}

	p, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if !errors.Is(err, xerrors.ErrNotFound) {
			s.logger.Error("failed to update policy status", zap.Int64("policy_id", id), zap.Error(err))
		}
		return nil, xerrors.Unavailable(err)
	}

	s.logger.Info("policy status changed",
		zap.String("policy_number", p.PolicyNumber),
		zap.String("status", string(p.Status)),
	)
	s.notify(p)
	return p, nil
}

// Cancel lets a customer cancel one of their own policies.
func (s *PolicyService) Cancel(ctx context.Context, actor user.Actor, id int64) (*policy.Policy, error) {
	p, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if p.Status == policy.StatusCancelled {
		return nil, xerrors.Invalid("policy %s is already cancelled", p.PolicyNumber)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, policy.StatusCancelled)
	if err != nil {
		return nil, xerrors.Unavailable(err)
	}

	s.logger.Info("policy cancelled", zap.String("policy_number", updated.PolicyNumber), zap.Int64("by", actor.UserID))
	s.notify(updated)
	return updated, nil
}

func (s *PolicyService) notify(p *policy.Policy) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyUser(p.UserID, EventPolicyStatus, map[string]interface{}{
		"policy_id":     p.ID,
		"policy_number": p.PolicyNumber,
		"status":        p.Status,
	})
}

// Quote prices a base premium for a customer using their risk level.
// Customers can only quote themselves.
func (s *PolicyService) Quote(ctx context.Context, actor user.Actor, req *policy.QuoteRequest) (*policy.PremiumQuote, error) {
	if !req.BasePremium.IsPositive() {
		return nil, xerrors.Invalid("base_premium must be greater than zero")
	}

	var (
		profile *credit.Profile
		err     error
	)
	email := strings.TrimSpace(req.Email)
	switch {
	case !actor.IsAgent():
		profile, err = s.profiles.FindProfileByUserID(ctx, actor.UserID)
	case req.UserID != nil && email != "":
		return nil, xerrors.Invalid("provide either user_id or email, not both")
	case req.UserID != nil:
		profile, err = s.profiles.FindProfileByUserID(ctx, *req.UserID)
	case email != "":
		profile, err = s.profiles.FindProfileByEmail(ctx, email)
	default:
		return nil, xerrors.Invalid("user_id or email is required")
	}
	if err != nil {
		return nil, xerrors.Unavailable(err)
	}

	return &policy.PremiumQuote{
		UserID:              profile.UserID,
		Email:               profile.Email,
		CreditScore:         profile.CreditScore,
		RiskLevel:           profile.RiskLevel,
		BasePremium:         req.BasePremium,
		SuggestedMultiplier: credit.SuggestedMultiplier(profile.RiskLevel),
		AdjustedPremium:     credit.AdjustPremium(req.BasePremium, profile.RiskLevel),
	}, nil
}
