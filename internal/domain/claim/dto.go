// internal/domain/claim/dto.go
package claim

import "github.com/shopspring/decimal"

type CreateClaimRequest struct {
	PolicyID    int64           `json:"policy_id" binding:"required,min=1"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required,max=2000"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

type ListFilters struct {
	Status Status `form:"status"`
	UserID *int64 `form:"user_id" binding:"omitempty,min=1"`
}

type ClaimListResponse struct {
	Claims []Claim `json:"claims"`
	Total  int     `json:"total"`
}
