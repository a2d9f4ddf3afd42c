package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/truthguard/internal/domain"
)

// VerificationRepository implements domain.VerificationRepository on PostgreSQL.
type VerificationRepository struct {
	db *sql.DB
}

const verificationColumns = `id, user_id, content, url, result, confidence, evidence, degraded, created_at`

func (r *VerificationRepository) Create(ctx context.Context, v *domain.Verification) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	v.Timestamp = v.Timestamp.UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO verifications (`+verificationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID, v.UserID, v.Content, v.URL, string(v.Result), v.Confidence, v.Evidence, v.Degraded, v.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert verification: %w", err)
	}
	return nil
}

func (r *VerificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Verification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+verificationColumns+` FROM verifications
		 WHERE user_id = $1 ORDER BY created_at DESC, seq DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list verifications by user: %w", err)
	}
	defer rows.Close()
	return scanVerifications(rows)
}

func (r *VerificationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Verification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+verificationColumns+` FROM verifications
		 ORDER BY created_at DESC, seq DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent verifications: %w", err)
	}
	defer rows.Close()
	return scanVerifications(rows)
}

func scanVerifications(rows *sql.Rows) ([]domain.Verification, error) {
	out := []domain.Verification{}
	for rows.Next() {
		var (
			v      domain.Verification
			result string
		)
		if err := rows.Scan(&v.ID, &v.UserID, &v.Content, &v.URL, &result, &v.Confidence, &v.Evidence, &v.Degraded, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scan verification: %w", err)
		}
		v.Result = domain.Verdict(result)
		out = append(out, v)
	}
	return out, rows.Err()
}
