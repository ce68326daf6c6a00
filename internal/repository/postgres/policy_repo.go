// internal/repository/postgres/policy_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"insurance-service/internal/domain/policy"
	xerrors "insurance-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type PolicyRepository struct {
	db *DB
}

func NewPolicyRepository(db *DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

const policyColumns = `id, policy_number, user_id, type, coverage_amount, premium,
	start_date, end_date, status, created_at`

func scanPolicy(row pgx.Row) (*policy.Policy, error) {
	var p policy.Policy
	err := row.Scan(
		&p.ID, &p.PolicyNumber, &p.UserID, &p.Type, &p.CoverageAmount, &p.Premium,
		&p.StartDate, &p.EndDate, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create draws the next policy number from policy_number_seq and inserts the policy.
func (r *PolicyRepository) Create(ctx context.Context, p *policy.Policy) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var seq int64
		if err := tx.QueryRow(ctx, `SELECT nextval('policy_number_seq')`).Scan(&seq); err != nil {
			return fmt.Errorf("failed to allocate policy number: %w", err)
		}
		p.PolicyNumber = policy.FormatNumber(time.Now().UTC().Year(), seq)

		query := `
			INSERT INTO policies (policy_number, user_id, type, coverage_amount, premium, start_date, end_date, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at
		`
		err := tx.QueryRow(ctx, query,
			p.PolicyNumber, p.UserID, p.Type, p.CoverageAmount, p.Premium, p.StartDate, p.EndDate, p.Status,
		).Scan(&p.ID, &p.CreatedAt)
		if isUniqueViolation(err) {
			return xerrors.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return xerrors.Invalid("user %d does not exist", p.UserID)
		}
		if err != nil {
			return fmt.Errorf("failed to create policy: %w", err)
		}
		return nil
	})
}

func (r *PolicyRepository) FindByID(ctx context.Context, id int64) (*policy.Policy, error) {
	p, err := scanPolicy(r.db.Pool().QueryRow(ctx, `SELECT `+policyColumns+` FROM policies WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find policy: %w", err)
	}
	return p, nil
}

// List returns policies by start date, filtered by status, type and owner when set.
func (r *PolicyRepository) List(ctx context.Context, filters policy.ListFilters) ([]policy.Policy, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filters.Status)
		argPos++
	}
	if filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argPos))
		args = append(args, filters.Type)
		argPos++
	}
	if filters.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argPos))
		args = append(args, *filters.UserID)
		argPos++
	}

	query := `SELECT ` + policyColumns + ` FROM policies`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_date ASC, id ASC"

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	defer rows.Close()

	policies := []policy.Policy{}
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate policies: %w", err)
	}
	return policies, nil
}

func (r *PolicyRepository) UpdateStatus(ctx context.Context, id int64, status policy.Status) (*policy.Policy, error) {
	query := `UPDATE policies SET status = $1 WHERE id = $2 RETURNING ` + policyColumns

	p, err := scanPolicy(r.db.Pool().QueryRow(ctx, query, status, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update policy status: %w", err)
	}
	return p, nil
}
