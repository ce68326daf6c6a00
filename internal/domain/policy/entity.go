// internal/domain/policy/entity.go
package policy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusCancelled   Status = "cancelled"
	StatusUnderReview Status = "under_review"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCancelled, StatusUnderReview:
		return true
	}
	return false
}

type Policy struct {
	ID             int64           `json:"id" db:"id"`
	PolicyNumber   string          `json:"policy_number" db:"policy_number"`
	UserID         int64           `json:"user_id" db:"user_id"`
	Type           string          `json:"type" db:"type"`
	CoverageAmount decimal.Decimal `json:"coverage_amount" db:"coverage_amount"`
	Premium        decimal.Decimal `json:"premium" db:"premium"`
	StartDate      time.Time       `json:"start_date" db:"start_date"`
	EndDate        time.Time       `json:"end_date" db:"end_date"`
	Status         Status          `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

func (p *Policy) IsActive() bool {
	return p.Status == StatusActive
}

// FormatNumber renders a policy number such as POL-2026-000042.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("POL-%d-%06d", year, seq)
}
