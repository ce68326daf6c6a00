// internal/service/analytics/analytics_service.go
package analytics

import (
	"context"
	"math"
	"sort"

	"insurance-service/internal/domain/analytics"
	"insurance-service/internal/domain/credit"
	xerrors "insurance-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type SnapshotReader interface {
	Snapshot(ctx context.Context) (*analytics.Snapshot, error)
}

type AnalyticsService struct {
	repo     SnapshotReader
	policies PolicyLister
	claims   ClaimLister
	logger   *zap.Logger
}

func NewAnalyticsService(repo SnapshotReader, policies PolicyLister, claims ClaimLister, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:     repo,
		policies: policies,
		claims:   claims,
		logger:   logger,
	}
}

// Report computes the agency-wide analytics view from a single snapshot.
func (s *AnalyticsService) Report(ctx context.Context) (*analytics.Report, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		s.logger.Error("failed to load analytics snapshot", zap.Error(err))
		return nil, xerrors.Unavailable(err)
	}
	return Shape(snap), nil
}

// Shape turns raw snapshot rows into the report, applying ordering and
// score bucketing.
func Shape(snap *analytics.Snapshot) *analytics.Report {
	r := &analytics.Report{
		ClaimsByStatus:          make([]analytics.ClaimsByStatus, 0, len(snap.ClaimsByStatus)),
		ClaimsByPolicyType:      make([]analytics.ClaimsByPolicyType, 0, len(snap.ClaimsByPolicyType)),
		PoliciesByType:          make([]analytics.PoliciesByType, 0, len(snap.PoliciesByType)),
		PoliciesByStatus:        make([]analytics.PoliciesByStatus, 0, len(snap.PoliciesByStatus)),
		CreditScoreDistribution: bucketScores(snap.ScoreCounts),
		RiskLevelDistribution:   make([]analytics.RiskLevelCount, 0, len(snap.RiskLevelCounts)),
		Summary:                 summarize(snap.Summary),
	}

	for _, row := range byCountDesc(snap.ClaimsByStatus) {
		r.ClaimsByStatus = append(r.ClaimsByStatus, analytics.ClaimsByStatus{
			Status: row.Key, Count: row.Count, TotalAmount: row.TotalAmount,
		})
	}
	for _, row := range byCountDesc(snap.ClaimsByPolicyType) {
		r.ClaimsByPolicyType = append(r.ClaimsByPolicyType, analytics.ClaimsByPolicyType{
			PolicyType: row.Key, Count: row.Count, TotalAmount: row.TotalAmount,
		})
	}

	types := append([]analytics.PolicyTypeRow(nil), snap.PoliciesByType...)
	sort.SliceStable(types, func(i, j int) bool {
		if types[i].Count != types[j].Count {
			return types[i].Count > types[j].Count
		}
		return types[i].Type < types[j].Type
	})
	for _, row := range types {
		r.PoliciesByType = append(r.PoliciesByType, analytics.PoliciesByType(row))
	}

	statuses := append([]analytics.CountRow(nil), snap.PoliciesByStatus...)
	sort.SliceStable(statuses, func(i, j int) bool {
		if statuses[i].Count != statuses[j].Count {
			return statuses[i].Count > statuses[j].Count
		}
		return statuses[i].Key < statuses[j].Key
	})
	for _, row := range statuses {
		r.PoliciesByStatus = append(r.PoliciesByStatus, analytics.PoliciesByStatus{Status: row.Key, Count: row.Count})
	}

	levels := append([]analytics.CountRow(nil), snap.RiskLevelCounts...)
	sort.SliceStable(levels, func(i, j int) bool {
		ri, rj := credit.RiskRank(levels[i].Key), credit.RiskRank(levels[j].Key)
		if ri != rj {
			return ri < rj
		}
		return levels[i].Key < levels[j].Key
	})
	for _, row := range levels {
		r.RiskLevelDistribution = append(r.RiskLevelDistribution, analytics.RiskLevelCount{Level: row.Key, Count: row.Count})
	}

	return r
}

func byCountDesc(rows []analytics.StatusAmountRow) []analytics.StatusAmountRow {
	out := append([]analytics.StatusAmountRow(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// bucketScores folds per-score counts into bands, rank order, empty bands omitted.
func bucketScores(rows []analytics.ScoreCountRow) []analytics.ScoreRange {
	counts := make(map[int]int64)
	for _, row := range rows {
		counts[credit.BucketFor(row.Score).Rank] += row.Count
	}

	out := make([]analytics.ScoreRange, 0, len(counts))
	for _, b := range credit.Buckets() {
		if n := counts[b.Rank]; n > 0 {
			out = append(out, analytics.ScoreRange{Range: b.Label, Count: n})
		}
	}
	return out
}

func summarize(row analytics.SummaryRow) analytics.Summary {
	s := analytics.Summary{
		TotalUsers:          row.TotalUsers,
		TotalPolicies:       row.TotalPolicies,
		ActivePolicies:      row.ActivePolicies,
		TotalClaims:         row.TotalClaims,
		PendingClaims:       row.PendingClaims,
		ApprovedClaims:      row.ApprovedClaims,
		RejectedClaims:      row.RejectedClaims,
		TotalClaimAmount:    row.TotalClaimAmount,
		ApprovedClaimAmount: row.ApprovedClaimAmount,
		TotalPremiumRevenue: row.TotalPremiumRevenue,
	}
	if row.AvgCreditScore != nil {
		avg := int(math.Round(*row.AvgCreditScore))
		s.AvgCreditScore = &avg
	}
	return s
}
