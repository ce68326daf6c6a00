// internal/repository/postgres/analytics_repo.go
package postgres

import (
	"context"
	"fmt"

	"insurance-service/internal/domain/analytics"

	"github.com/jackc/pgx/v5"
)

type AnalyticsRepository struct {
	db *DB
}

func NewAnalyticsRepository(db *DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Snapshot runs every analytics read inside one read-only transaction.
// Ordering and bucketing are left to the caller.
func (r *AnalyticsRepository) Snapshot(ctx context.Context) (*analytics.Snapshot, error) {
	snap := &analytics.Snapshot{}

	err := r.db.ReadSnapshot(ctx, func(tx pgx.Tx) error {
		var err error

		snap.ClaimsByStatus, err = queryStatusAmounts(ctx, tx, `
			SELECT status, COUNT(*), COALESCE(SUM(amount), 0)
			FROM claims
			GROUP BY status
		`)
		if err != nil {
			return fmt.Errorf("failed to query claims by status: %w", err)
		}

		snap.ClaimsByPolicyType, err = queryStatusAmounts(ctx, tx, `
			SELECT p.type, COUNT(c.id), COALESCE(SUM(c.amount), 0)
			FROM claims c
			JOIN policies p ON c.policy_id = p.id
			GROUP BY p.type
		`)
		if err != nil {
			return fmt.Errorf("failed to query claims by policy type: %w", err)
		}

		if snap.PoliciesByType, err = queryPoliciesByType(ctx, tx); err != nil {
			return fmt.Errorf("failed to query policies by type: %w", err)
		}

		snap.PoliciesByStatus, err = queryCounts(ctx, tx, `
			SELECT status, COUNT(*) FROM policies GROUP BY status
		`)
		if err != nil {
			return fmt.Errorf("failed to query policies by status: %w", err)
		}

		if snap.ScoreCounts, err = queryScoreCounts(ctx, tx); err != nil {
			return fmt.Errorf("failed to query credit score counts: %w", err)
		}

		snap.RiskLevelCounts, err = queryCounts(ctx, tx, `
			SELECT COALESCE(risk_level, ''), COUNT(*) FROM credit_profiles GROUP BY COALESCE(risk_level, '')
		`)
		if err != nil {
			return fmt.Errorf("failed to query risk levels: %w", err)
		}

		if err := scanSummary(ctx, tx, &snap.Summary); err != nil {
			return fmt.Errorf("failed to query summary: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func queryStatusAmounts(ctx context.Context, q Querier, query string) ([]analytics.StatusAmountRow, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []analytics.StatusAmountRow{}
	for rows.Next() {
		var row analytics.StatusAmountRow
		if err := rows.Scan(&row.Key, &row.Count, &row.TotalAmount); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func queryPoliciesByType(ctx context.Context, q Querier) ([]analytics.PolicyTypeRow, error) {
	rows, err := q.Query(ctx, `
		SELECT type, COUNT(*), COALESCE(SUM(premium), 0), COALESCE(SUM(coverage_amount), 0)
		FROM policies
		GROUP BY type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []analytics.PolicyTypeRow{}
	for rows.Next() {
		var row analytics.PolicyTypeRow
		if err := rows.Scan(&row.Type, &row.Count, &row.TotalPremium, &row.TotalCoverage); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func queryCounts(ctx context.Context, q Querier, query string) ([]analytics.CountRow, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []analytics.CountRow{}
	for rows.Next() {
		var row analytics.CountRow
		if err := rows.Scan(&row.Key, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func queryScoreCounts(ctx context.Context, q Querier) ([]analytics.ScoreCountRow, error) {
	rows, err := q.Query(ctx, `SELECT credit_score, COUNT(*) FROM credit_profiles GROUP BY credit_score`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []analytics.ScoreCountRow{}
	for rows.Next() {
		var row analytics.ScoreCountRow
		if err := rows.Scan(&row.Score, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanSummary(ctx context.Context, q Querier, s *analytics.SummaryRow) error {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM policies),
			(SELECT COUNT(*) FROM policies WHERE status = 'active'),
			(SELECT COUNT(*) FROM claims),
			(SELECT COUNT(*) FROM claims WHERE status = 'pending'),
			(SELECT COUNT(*) FROM claims WHERE status = 'approved'),
			(SELECT COUNT(*) FROM claims WHERE status = 'rejected'),
			(SELECT COALESCE(SUM(amount), 0) FROM claims),
			(SELECT COALESCE(SUM(amount), 0) FROM claims WHERE status = 'approved'),
			(SELECT COALESCE(SUM(premium), 0) FROM policies WHERE status = 'active'),
			(SELECT AVG(credit_score)::float8 FROM credit_profiles)
	`

	return q.QueryRow(ctx, query).Scan(
		&s.TotalUsers, &s.TotalPolicies, &s.ActivePolicies,
		&s.TotalClaims, &s.PendingClaims, &s.ApprovedClaims, &s.RejectedClaims,
		&s.TotalClaimAmount, &s.ApprovedClaimAmount, &s.TotalPremiumRevenue,
		&s.AvgCreditScore,
	)
}
