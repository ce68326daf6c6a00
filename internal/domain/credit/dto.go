// internal/domain/credit/dto.go
package credit

import (
	"strconv"
	"strings"

	xerrors "insurance-service/internal/pkg/errors"
)

type LookupRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ListFilters narrows the profile listing by score, both bounds inclusive.
type ListFilters struct {
	MinScore *int
	MaxScore *int
}

// ParseListFilters validates raw min_score / max_score query values.
func ParseListFilters(minRaw, maxRaw string) (ListFilters, error) {
	var f ListFilters

	parse := func(name, raw string) (*int, error) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, xerrors.Invalid("%s must be an integer", name)
		}
		if n < 0 {
			return nil, xerrors.Invalid("%s must not be negative", name)
		}
		return &n, nil
	}

	var err error
	if f.MinScore, err = parse("min_score", minRaw); err != nil {
		return ListFilters{}, err
	}
	if f.MaxScore, err = parse("max_score", maxRaw); err != nil {
		return ListFilters{}, err
	}
	if f.MinScore != nil && f.MaxScore != nil && *f.MinScore > *f.MaxScore {
		return ListFilters{}, xerrors.Invalid("min_score must not exceed max_score")
	}
	return f, nil
}
