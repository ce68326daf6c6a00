// internal/domain/policy/dto.go
package policy

import "github.com/shopspring/decimal"

const DateLayout = "2006-01-02"

type CreatePolicyRequest struct {
	// UserID lets an agent open a policy on behalf of a customer.
	// Customers always create policies for themselves.
	UserID         *int64          `json:"user_id" binding:"omitempty,min=1"`
	Type           string          `json:"type" binding:"required,max=50"`
	CoverageAmount decimal.Decimal `json:"coverage_amount"`
	Premium        decimal.Decimal `json:"premium"`
	StartDate      string          `json:"start_date" binding:"required"`
	EndDate        string          `json:"end_date" binding:"required"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

type ListFilters struct {
	Status Status `form:"status"`
	Type   string `form:"type"`
	UserID *int64 `form:"user_id" binding:"omitempty,min=1"`
}

type PolicyListResponse struct {
	Policies []Policy `json:"policies"`
	Total    int      `json:"total"`
}

// QuoteRequest identifies the customer by id or email.
type QuoteRequest struct {
	UserID      *int64          `json:"user_id" binding:"omitempty,min=1"`
	Email       string          `json:"email" binding:"omitempty,email"`
	BasePremium decimal.Decimal `json:"base_premium"`
}

type PremiumQuote struct {
	UserID              int64           `json:"user_id"`
	Email               string          `json:"email"`
	CreditScore         int             `json:"credit_score"`
	RiskLevel           string          `json:"risk_level"`
	BasePremium         decimal.Decimal `json:"base_premium"`
	SuggestedMultiplier float64         `json:"suggested_multiplier"`
	AdjustedPremium     decimal.Decimal `json:"adjusted_premium"`
}
