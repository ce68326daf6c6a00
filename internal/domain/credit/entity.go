// internal/domain/credit/entity.go
package credit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile is one user joined with their credit profile row.
type Profile struct {
	UserID      int64      `db:"user_id"`
	FirstName   string     `db:"first_name"`
	LastName    string     `db:"last_name"`
	Email       string     `db:"email"`
	CreditScore int        `db:"credit_score"`
	RiskLevel   string     `db:"risk_level"`
	LastChecked *time.Time `db:"last_checked"`
}

func (p *Profile) Name() string {
	return p.FirstName + " " + p.LastName
}

// ConcerningClaim is a rejected or under-review claim.
type ConcerningClaim struct {
	UserID      int64           `json:"-" db:"user_id"`
	ClaimNumber string          `json:"claim_number" db:"claim_number"`
	Status      string          `json:"status" db:"status"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
}

// ConcerningPolicy is a cancelled policy.
type ConcerningPolicy struct {
	UserID       int64  `json:"-" db:"user_id"`
	PolicyNumber string `json:"policy_number" db:"policy_number"`
	Status       string `json:"status" db:"status"`
}

// ProfileSummary is a customer's credit standing with the billing multiplier applied.
type ProfileSummary struct {
	UserID              int64      `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	CreditScore         int        `json:"credit_score"`
	RiskLevel           string     `json:"risk_level"`
	LastChecked         *time.Time `json:"last_checked"`
	SuggestedMultiplier float64    `json:"suggested_multiplier"`
}

// RiskAssessment is one row of the agent risk-review view.
type RiskAssessment struct {
	ProfileSummary
	DisplayEmphasis    float64            `json:"display_emphasis"`
	ConcerningClaims   []ConcerningClaim  `json:"concerning_claims"`
	ConcerningPolicies []ConcerningPolicy `json:"concerning_policies"`
}

// Summarize applies the billing rule to a profile row.
func (p *Profile) Summarize() ProfileSummary {
	return ProfileSummary{
		UserID:              p.UserID,
		Name:                p.Name(),
		Email:               p.Email,
		CreditScore:         p.CreditScore,
		RiskLevel:           p.RiskLevel,
		LastChecked:         p.LastChecked,
		SuggestedMultiplier: SuggestedMultiplier(p.RiskLevel),
	}
}

// RiskSource is the flat input to the risk-review aggregation, read in one snapshot.
type RiskSource struct {
	Profiles []Profile
	Claims   []ConcerningClaim
	Policies []ConcerningPolicy
}
