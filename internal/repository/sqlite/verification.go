package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/truthguard/internal/domain"
)

// VerificationRepository implements domain.VerificationRepository using SQLite.
type VerificationRepository struct {
	db *sql.DB
}

// NewVerificationRepository creates a new SQLite-backed VerificationRepository.
func NewVerificationRepository(db *DB) *VerificationRepository {
	return &VerificationRepository{db: db.SQLDB}
}

func (r *VerificationRepository) Create(ctx context.Context, v *domain.Verification) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	v.Timestamp = v.Timestamp.UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO verifications (id, user_id, content, url, result, confidence, evidence, degraded, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, nullString(v.UserID), v.Content, nullString(v.URL), string(v.Result), v.Confidence, v.Evidence, v.Degraded, v.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert verification: %w", err)
	}
	return nil
}

func (r *VerificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Verification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, content, url, result, confidence, evidence, degraded, created_at
		 FROM verifications WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list verifications by user: %w", err)
	}
	defer rows.Close()
	return scanVerifications(rows)
}

func (r *VerificationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Verification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, content, url, result, confidence, evidence, degraded, created_at
		 FROM verifications
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
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
			userID sql.NullString
			url    sql.NullString
			result string
		)
		if err := rows.Scan(&v.ID, &userID, &v.Content, &url, &result, &v.Confidence, &v.Evidence, &v.Degraded, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scan verification: %w", err)
		}
		if userID.Valid {
			v.UserID = &userID.String
		}
		if url.Valid {
			v.URL = &url.String
		}
		v.Result = domain.Verdict(result)
		out = append(out, v)
	}
	return out, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
