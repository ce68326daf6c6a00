// internal/domain/claim/entity.go
package claim

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusUnderReview Status = "under_review"
)

// ConcerningStatuses are the claim states surfaced in risk review.
var ConcerningStatuses = []Status{StatusRejected, StatusUnderReview}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusUnderReview:
		return true
	}
	return false
}

// Resolved reports whether a claim in this status carries a resolved date.
func (s Status) Resolved() bool {
	return s == StatusApproved || s == StatusRejected
}

// Open reports whether the claim still awaits a decision.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusUnderReview
}

type Claim struct {
	ID           int64           `json:"id" db:"id"`
	ClaimNumber  string          `json:"claim_number" db:"claim_number"`
	UserID       int64           `json:"user_id" db:"user_id"`
	PolicyID     int64           `json:"policy_id" db:"policy_id"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Description  string          `json:"description" db:"description"`
	Status       Status          `json:"status" db:"status"`
	FiledDate    time.Time       `json:"filed_date" db:"filed_date"`
	ResolvedDate *time.Time      `json:"resolved_date,omitempty" db:"resolved_date"`

	// Joined
	PolicyNumber string `json:"policy_number,omitempty" db:"policy_number"`
	PolicyType   string `json:"policy_type,omitempty" db:"policy_type"`
}

// FormatNumber renders a claim number such as CLM-2026-000042.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("CLM-%d-%06d", year, seq)
}
