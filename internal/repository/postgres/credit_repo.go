// internal/repository/postgres/credit_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"insurance-service/internal/domain/claim"
	"insurance-service/internal/domain/credit"
	"insurance-service/internal/domain/policy"
	xerrors "insurance-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

type CreditRepository struct {
	db *DB
}

func NewCreditRepository(db *DB) *CreditRepository {
	return &CreditRepository{db: db}
}

const profileSelect = `
	SELECT u.id, u.first_name, u.last_name, u.email,
	       cp.credit_score, COALESCE(cp.risk_level, ''), cp.last_checked
	FROM users u
	JOIN credit_profiles cp ON cp.user_id = u.id
`

func scanProfile(row pgx.Row) (*credit.Profile, error) {
	var p credit.Profile
	err := row.Scan(&p.UserID, &p.FirstName, &p.LastName, &p.Email,
		&p.CreditScore, &p.RiskLevel, &p.LastChecked)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RiskSource reads profiles (score ascending) with their concerning claims and
// cancelled policies. All three reads share one snapshot.
func (r *CreditRepository) RiskSource(ctx context.Context) (*credit.RiskSource, error) {
	src := &credit.RiskSource{}

	err := r.db.ReadSnapshot(ctx, func(tx pgx.Tx) error {
		var err error
		if src.Profiles, err = queryProfiles(ctx, tx, profileSelect+` ORDER BY cp.credit_score ASC, u.id ASC`); err != nil {
			return err
		}
		if src.Claims, err = queryConcerningClaims(ctx, tx); err != nil {
			return err
		}
		src.Policies, err = queryCancelledPolicies(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return src, nil
}

// ListProfiles returns profiles ordered by score descending, optionally bounded.
func (r *CreditRepository) ListProfiles(ctx context.Context, filters credit.ListFilters) ([]credit.Profile, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filters.MinScore != nil {
		conditions = append(conditions, fmt.Sprintf("cp.credit_score >= $%d", argPos))
		args = append(args, *filters.MinScore)
		argPos++
	}
	if filters.MaxScore != nil {
		conditions = append(conditions, fmt.Sprintf("cp.credit_score <= $%d", argPos))
		args = append(args, *filters.MaxScore)
		argPos++
	}

	query := profileSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY cp.credit_score DESC, u.id ASC"

	return queryProfiles(ctx, r.db.Pool(), query, args...)
}

func (r *CreditRepository) FindProfileByEmail(ctx context.Context, email string) (*credit.Profile, error) {
	return r.findProfile(ctx, profileSelect+` WHERE LOWER(u.email) = LOWER($1)`, email)
}

func (r *CreditRepository) FindProfileByUserID(ctx context.Context, userID int64) (*credit.Profile, error) {
	return r.findProfile(ctx, profileSelect+` WHERE u.id = $1`, userID)
}

func (r *CreditRepository) findProfile(ctx context.Context, query string, arg interface{}) (*credit.Profile, error) {
	p, err := scanProfile(r.db.Pool().QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credit profile: %w", err)
	}
	return p, nil
}

func queryProfiles(ctx context.Context, q Querier, query string, args ...interface{}) ([]credit.Profile, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit profiles: %w", err)
	}
	defer rows.Close()

	profiles := []credit.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credit profiles: %w", err)
	}
	return profiles, nil
}

func queryConcerningClaims(ctx context.Context, q Querier) ([]credit.ConcerningClaim, error) {
	statuses := make([]string, 0, len(claim.ConcerningStatuses))
	for _, s := range claim.ConcerningStatuses {
		statuses = append(statuses, string(s))
	}

	query := `
		SELECT c.user_id, c.claim_number, c.status, c.amount
		FROM claims c
		JOIN credit_profiles cp ON cp.user_id = c.user_id
		WHERE c.status = ANY($1)
		ORDER BY c.user_id, c.filed_date DESC, c.id
	`

	rows, err := q.Query(ctx, query, pq.Array(statuses))
	if err != nil {
		return nil, fmt.Errorf("failed to query concerning claims: %w", err)
	}
	defer rows.Close()

	claims := []credit.ConcerningClaim{}
	for rows.Next() {
		var c credit.ConcerningClaim
		if err := rows.Scan(&c.UserID, &c.ClaimNumber, &c.Status, &c.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan concerning claim: %w", err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate concerning claims: %w", err)
	}
	return claims, nil
}

func queryCancelledPolicies(ctx context.Context, q Querier) ([]credit.ConcerningPolicy, error) {
	query := `
		SELECT p.user_id, p.policy_number, p.status
		FROM policies p
		JOIN credit_profiles cp ON cp.user_id = p.user_id
		WHERE p.status = $1
		ORDER BY p.user_id, p.created_at DESC, p.id
	`

	rows, err := q.Query(ctx, query, string(policy.StatusCancelled))
	if err != nil {
		return nil, fmt.Errorf("failed to query cancelled policies: %w", err)
	}
	defer rows.Close()

	policies := []credit.ConcerningPolicy{}
	for rows.Next() {
		var p credit.ConcerningPolicy
		if err := rows.Scan(&p.UserID, &p.PolicyNumber, &p.Status); err != nil {
			return nil, fmt.Errorf("failed to scan cancelled policy: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cancelled policies: %w", err)
	}
	return policies, nil
}
