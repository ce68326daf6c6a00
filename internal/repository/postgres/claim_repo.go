// internal/repository/postgres/claim_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"insurance-service/internal/domain/claim"
	xerrors "insurance-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type ClaimRepository struct {
	db *DB
}

func NewClaimRepository(db *DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

const claimSelect = `
	SELECT c.id, c.claim_number, c.user_id, c.policy_id, c.amount, c.description,
	       c.status, c.filed_date, c.resolved_date, p.policy_number, p.type
	FROM claims c
	JOIN policies p ON p.id = c.policy_id
`

func scanClaim(row pgx.Row) (*claim.Claim, error) {
	var c claim.Claim
	err := row.Scan(
		&c.ID, &c.ClaimNumber, &c.UserID, &c.PolicyID, &c.Amount, &c.Description,
		&c.Status, &c.FiledDate, &c.ResolvedDate, &c.PolicyNumber, &c.PolicyType,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create draws the next claim number from claim_number_seq and inserts the
// claim in the same transaction. ClaimNumber, ID and FiledDate are filled in.
func (r *ClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var seq int64
		if err := tx.QueryRow(ctx, `SELECT nextval('claim_number_seq')`).Scan(&seq); err != nil {
			return fmt.Errorf("failed to allocate claim number: %w", err)
		}

		filed := time.Now().UTC()
		c.ClaimNumber = claim.FormatNumber(filed.Year(), seq)

		query := `
			INSERT INTO claims (claim_number, user_id, policy_id, amount, description, status, filed_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, filed_date
		`
		err := tx.QueryRow(ctx, query,
			c.ClaimNumber, c.UserID, c.PolicyID, c.Amount, c.Description, c.Status, filed,
		).Scan(&c.ID, &c.FiledDate)
		if isUniqueViolation(err) {
			return xerrors.ErrConflict
		}
		if err != nil {
			return fmt.Errorf("failed to create claim: %w", err)
		}
		return nil
	})
}

func (r *ClaimRepository) FindByID(ctx context.Context, id int64) (*claim.Claim, error) {
	c, err := scanClaim(r.db.Pool().QueryRow(ctx, claimSelect+` WHERE c.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find claim: %w", err)
	}
	return c, nil
}

// List returns claims newest first, filtered by status and owner when set.
func (r *ClaimRepository) List(ctx context.Context, filters claim.ListFilters) ([]claim.Claim, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", argPos))
		args = append(args, filters.Status)
		argPos++
	}
	if filters.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("c.user_id = $%d", argPos))
		args = append(args, *filters.UserID)
		argPos++
	}

	query := claimSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.filed_date DESC, c.id DESC"

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	claims := []claim.Claim{}
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claims: %w", err)
	}
	return claims, nil
}

// UpdateStatus overwrites status and resolved_date unconditionally.
func (r *ClaimRepository) UpdateStatus(ctx context.Context, id int64, status claim.Status, resolvedAt *time.Time) (*claim.Claim, error) {
	query := `
		WITH updated AS (
			UPDATE claims SET status = $1, resolved_date = $2
			WHERE id = $3
			RETURNING *
		)
		SELECT c.id, c.claim_number, c.user_id, c.policy_id, c.amount, c.description,
		       c.status, c.filed_date, c.resolved_date, p.policy_number, p.type
		FROM updated c
		JOIN policies p ON p.id = c.policy_id
	`

	c, err := scanClaim(r.db.Pool().QueryRow(ctx, query, status, resolvedAt, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update claim status: %w", err)
	}
	return c, nil
}
