// internal/domain/analytics/entity.go
package analytics

import "github.com/shopspring/decimal"

// Row types as read from the store, before shaping.

type StatusAmountRow struct {
	Key         string
	Count       int64
	TotalAmount decimal.Decimal
}

type PolicyTypeRow struct {
	Type          string
	Count         int64
	TotalPremium  decimal.Decimal
	TotalCoverage decimal.Decimal
}

type CountRow struct {
	Key   string
	Count int64
}

type ScoreCountRow struct {
	Score int
	Count int64
}

type SummaryRow struct {
	TotalUsers          int64
	TotalPolicies       int64
	ActivePolicies      int64
	TotalClaims         int64
	PendingClaims       int64
	ApprovedClaims      int64
	RejectedClaims      int64
	TotalClaimAmount    decimal.Decimal
	ApprovedClaimAmount decimal.Decimal
	TotalPremiumRevenue decimal.Decimal
	AvgCreditScore      *float64
}

// Snapshot is everything the analytics view needs, read at one point in time.
type Snapshot struct {
	ClaimsByStatus     []StatusAmountRow
	ClaimsByPolicyType []StatusAmountRow
	PoliciesByType     []PolicyTypeRow
	PoliciesByStatus   []CountRow
	ScoreCounts        []ScoreCountRow
	RiskLevelCounts    []CountRow
	Summary            SummaryRow
}
