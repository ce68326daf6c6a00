// internal/service/analytics/dashboard.go
package analytics

import (
	"context"
	"sort"

	"insurance-service/internal/domain/analytics"
	"insurance-service/internal/domain/claim"
	"insurance-service/internal/domain/policy"
	xerrors "insurance-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PolicyLister interface {
	List(ctx context.Context, filters policy.ListFilters) ([]policy.Policy, error)
}

type ClaimLister interface {
	List(ctx context.Context, filters claim.ListFilters) ([]claim.Claim, error)
}

// UserDashboard summarises one customer's policies and claims.
func (s *AnalyticsService) UserDashboard(ctx context.Context, userID int64) (*analytics.Dashboard, error) {
	if userID <= 0 {
		return nil, xerrors.Invalid("user id must be a positive integer")
	}

	policies, err := s.policies.List(ctx, policy.ListFilters{UserID: &userID})
	if err != nil {
		s.logger.Error("failed to load dashboard policies", zap.Int64("user_id", userID), zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}

	claims, err := s.claims.List(ctx, claim.ListFilters{UserID: &userID})
	if err != nil {
		s.logger.Error("failed to load dashboard claims", zap.Int64("user_id", userID), zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}

	return &analytics.Dashboard{
		Stats:       dashboardStats(policies, claims),
		MyPolicies:  policies,
		MyClaims:    claims,
		ClaimTrends: ClaimTrends(claims),
	}, nil
}

func dashboardStats(policies []policy.Policy, claims []claim.Claim) analytics.DashboardStats {
	stats := analytics.DashboardStats{
		MyPolicies:    len(policies),
		TotalClaims:   len(claims),
		NextPayment:   decimal.Zero,
		CoverageTotal: decimal.Zero,
	}

	for i := range policies {
		p := &policies[i]
		stats.CoverageTotal = stats.CoverageTotal.Add(p.CoverageAmount)
		if !p.IsActive() {
			continue
		}
		stats.NextPayment = stats.NextPayment.Add(p.Premium)
		if stats.NextPaymentDate == "" {
			stats.NextPaymentDate = p.StartDate.Format(policy.DateLayout)
		}
	}

	for i := range claims {
		if claims[i].Status.Open() {
			stats.ActiveClaims++
		}
	}
	return stats
}

// ClaimTrends counts claims per filed month, oldest month first. Anything not
// approved or rejected counts as pending.
func ClaimTrends(claims []claim.Claim) []analytics.ClaimTrend {
	byMonth := make(map[string]*analytics.ClaimTrend)
	for i := range claims {
		filed := claims[i].FiledDate.UTC()
		key := filed.Format("2006-01")

		t, ok := byMonth[key]
		if !ok {
			t = &analytics.ClaimTrend{Month: key, Label: filed.Format("Jan")}
			byMonth[key] = t
		}

		switch claims[i].Status {
		case claim.StatusApproved:
			t.Approved++
		case claim.StatusRejected:
			t.Rejected++
		default:
			t.Pending++
		}
	}

	out := make([]analytics.ClaimTrend, 0, len(byMonth))
	for _, t := range byMonth {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
