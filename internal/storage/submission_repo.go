package storage

import (
	"context"
	"fmt"

	"paperdesk/internal/models"

	"github.com/jackc/pgx/v5"
)

const submissionsSchema = `
CREATE TABLE IF NOT EXISTS upload_submissions (
  submission_id  uuid PRIMARY KEY,
  file_names     text[] NOT NULL DEFAULT '{}',
  processed_ids  text[] NOT NULL DEFAULT '{}',
  status         text NOT NULL,
  classification text,
  detail         text,
  duration_ms    bigint NOT NULL DEFAULT 0,
  created_at     timestamptz NOT NULL DEFAULT NOW()
)`

// SubmissionRepo is the ledger of upload attempts.
type SubmissionRepo struct {
	db *DB
}

func NewSubmissionRepo(db *DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

func (r *SubmissionRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, submissionsSchema); err != nil {
		return fmt.Errorf("ensure submissions schema: %w", err)
	}
	return nil
}

func (r *SubmissionRepo) Record(ctx context.Context, s models.Submission) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO upload_submissions(submission_id, file_names, processed_ids, status, classification, detail, duration_ms, created_at)
VALUES ($1::uuid, $2, $3, $4, NULLIF($5,''), NULLIF($6,''), $7, COALESCE($8, NOW()))
ON CONFLICT (submission_id) DO NOTHING`,
		s.SubmissionID, nonNil(s.FileNames), nonNil(s.ProcessedIDs), s.Status, s.Classification, s.Detail, s.DurationMS, nullTime(s))
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepo) ListRecent(ctx context.Context, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Pool.Query(ctx, `
SELECT submission_id::text, file_names, processed_ids, status, COALESCE(classification,''),
       COALESCE(detail,''), duration_ms, created_at
FROM upload_submissions
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Submission, error) {
		var s models.Submission
		err := row.Scan(&s.SubmissionID, &s.FileNames, &s.ProcessedIDs, &s.Status, &s.Classification, &s.Detail, &s.DurationMS, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan submissions: %w", err)
	}
	return out, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nullTime(s models.Submission) any {
	if s.CreatedAt.IsZero() {
		return nil
	}
	return s.CreatedAt
}
