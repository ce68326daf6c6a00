// internal/domain/analytics/dto.go
package analytics

import (
	"github.com/shopspring/decimal"

	"insurance-service/internal/domain/claim"
	"insurance-service/internal/domain/policy"
)

type ClaimsByStatus struct {
	Status      string          `json:"status"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type ClaimsByPolicyType struct {
	PolicyType  string          `json:"policyType"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type PoliciesByType struct {
	Type          string          `json:"type"`
	Count         int64           `json:"count"`
	TotalPremium  decimal.Decimal `json:"totalPremium"`
	TotalCoverage decimal.Decimal `json:"totalCoverage"`
}

type PoliciesByStatus struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ScoreRange struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

type RiskLevelCount struct {
	Level string `json:"level"`
	Count int64  `json:"count"`
}

type Summary struct {
	TotalUsers          int64           `json:"totalUsers"`
	TotalPolicies       int64           `json:"totalPolicies"`
	ActivePolicies      int64           `json:"activePolicies"`
	TotalClaims         int64           `json:"totalClaims"`
	PendingClaims       int64           `json:"pendingClaims"`
	ApprovedClaims      int64           `json:"approvedClaims"`
	RejectedClaims      int64           `json:"rejectedClaims"`
	TotalClaimAmount    decimal.Decimal `json:"totalClaimAmount"`
	ApprovedClaimAmount decimal.Decimal `json:"approvedClaimAmount"`
	TotalPremiumRevenue decimal.Decimal `json:"totalPremiumRevenue"`
	AvgCreditScore      *int            `json:"avgCreditScore"`
}

type Report struct {
	ClaimsByStatus          []ClaimsByStatus     `json:"claimsByStatus"`
	ClaimsByPolicyType      []ClaimsByPolicyType `json:"claimsByPolicyType"`
	PoliciesByType          []PoliciesByType     `json:"policiesByType"`
	PoliciesByStatus        []PoliciesByStatus   `json:"policiesByStatus"`
	CreditScoreDistribution []ScoreRange         `json:"creditScoreDistribution"`
	RiskLevelDistribution   []RiskLevelCount     `json:"riskLevelDistribution"`
	Summary                 Summary              `json:"summary"`
}

// Customer dashboard

type DashboardStats struct {
	MyPolicies      int             `json:"myPolicies"`
	ActiveClaims    int             `json:"activeClaims"`
	TotalClaims     int             `json:"totalClaims"`
	NextPayment     decimal.Decimal `json:"nextPayment"`
	NextPaymentDate string          `json:"nextPaymentDate"`
	CoverageTotal   decimal.Decimal `json:"coverageTotal"`
}

type ClaimTrend struct {
	Month    string `json:"month"`
	Label    string `json:"label"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
	Pending  int    `json:"pending"`
}

type Dashboard struct {
	Stats       DashboardStats  `json:"stats"`
	MyPolicies  []policy.Policy `json:"myPolicies"`
	MyClaims    []claim.Claim   `json:"myClaims"`
	ClaimTrends []ClaimTrend    `json:"claimTrends"`
}
