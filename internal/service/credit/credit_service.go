// internal/service/credit/credit_service.go
package credit

import (
	"context"
	"errors"
	"sort"
	"strings"

	"insurance-service/internal/domain/credit"
	xerrors "insurance-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type Repository interface {
	RiskSource(ctx context.Context) (*credit.RiskSource, error)
	ListProfiles(ctx context.Context, filters credit.ListFilters) ([]credit.Profile, error)
	FindProfileByEmail(ctx context.Context, email string) (*credit.Profile, error)
}

type CreditService struct {
	repo   Repository
	logger *zap.Logger
}

func NewCreditService(repo Repository, logger *zap.Logger) *CreditService {
	return &CreditService{repo: repo, logger: logger}
}

// RiskReview builds one assessment per customer with a credit profile,
// lowest score first.
func (s *CreditService) RiskReview(ctx context.Context) ([]credit.RiskAssessment, error) {
	src, err := s.repo.RiskSource(ctx)
	if err != nil {
		s.logger.Error("failed to load risk review data", zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}
	return Assemble(src), nil
}

// Assemble groups the flat concerning-claim and cancelled-policy rows under
// their owner's profile. Each user id appears exactly once regardless of how
// many rows the source holds for it.
func Assemble(src *credit.RiskSource) []credit.RiskAssessment {
	if src == nil {
		return []credit.RiskAssessment{}
	}

	claimsByUser := make(map[int64][]credit.ConcerningClaim)
	for _, c := range src.Claims {
		claimsByUser[c.UserID] = append(claimsByUser[c.UserID], c)
	}
	policiesByUser := make(map[int64][]credit.ConcerningPolicy)
	for _, p := range src.Policies {
		policiesByUser[p.UserID] = append(policiesByUser[p.UserID], p)
	}

	seen := make(map[int64]struct{}, len(src.Profiles))
	out := make([]credit.RiskAssessment, 0, len(src.Profiles))
	for i := range src.Profiles {
		p := &src.Profiles[i]
		if _, dup := seen[p.UserID]; dup {
			continue
		}
		seen[p.UserID] = struct{}{}

		claims := claimsByUser[p.UserID]
		if claims == nil {
			claims = []credit.ConcerningClaim{}
		}
		policies := policiesByUser[p.UserID]
		if policies == nil {
			policies = []credit.ConcerningPolicy{}
		}

		out = append(out, credit.RiskAssessment{
			ProfileSummary:     p.Summarize(),
			DisplayEmphasis:    credit.DisplayEmphasis(p.RiskLevel),
			ConcerningClaims:   claims,
			ConcerningPolicies: policies,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreditScore < out[j].CreditScore
	})
	return out
}

// ListProfiles returns every profile highest score first, each with its
// billing multiplier applied.
func (s *CreditService) ListProfiles(ctx context.Context, filters credit.ListFilters) ([]credit.ProfileSummary, error) {
	profiles, err := s.repo.ListProfiles(ctx, filters)
	if err != nil {
		s.logger.Error("failed to list credit profiles", zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}

	out := make([]credit.ProfileSummary, 0, len(profiles))
	for i := range profiles {
		out = append(out, profiles[i].Summarize())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreditScore > out[j].CreditScore
	})
	return out, nil
}

// Lookup finds a single profile by email.
func (s *CreditService) Lookup(ctx context.Context, email string) (*credit.ProfileSummary, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, xerrors.Invalid("email is required")
	}

	p, err := s.repo.FindProfileByEmail(ctx, email)
	if errors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		s.logger.Error("failed to look up credit profile", zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}

	summary := p.Summarize()
	return &summary, nil
}
