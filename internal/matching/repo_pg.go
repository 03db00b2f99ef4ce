package matching

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"jobmatch-backend/internal/jobs"
)

// PGHistoryRepo implements HistoryRepo using Postgres. The composite primary
// key (profile_id, job_id, profile_version) plus ON CONFLICT DO UPDATE gives
// idempotent re-scoring without read-then-write races.
type PGHistoryRepo struct {
	DB *sql.DB
}

// RecordMatch upserts the history row for the composite key.
func (r *PGHistoryRepo) RecordMatch(ctx context.Context, entry MatchHistory) error {
	const query = `
INSERT INTO match_history (
    profile_id,
    job_id,
    profile_version,
    overall_score,
    category_scores,
    mandatory_miss_count,
    insufficient_data,
    computed_at,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (profile_id, job_id, profile_version) DO UPDATE SET
    overall_score = EXCLUDED.overall_score,
    category_scores = EXCLUDED.category_scores,
    mandatory_miss_count = EXCLUDED.mandatory_miss_count,
    insufficient_data = EXCLUDED.insufficient_data,
    computed_at = EXCLUDED.computed_at`

	categoryScores, err := json.Marshal(entry.Result.CategoryScores)
	if err != nil {
		return fmt.Errorf("marshal category scores: %w", err)
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		entry.ProfileID,
		entry.JobID,
		entry.ProfileVersion,
		entry.Result.OverallScore,
		categoryScores,
		entry.Result.MandatoryMissCount,
		entry.Result.InsufficientData,
		entry.Result.ComputedAt,
		entry.CreatedAt,
	)
	return err
}

// GetTrend returns history rows for the pair ordered by profile version ascending.
func (r *PGHistoryRepo) GetTrend(ctx context.Context, profileID, jobID string) ([]MatchHistory, error) {
	const query = selectHistory + `
WHERE profile_id = $1 AND job_id = $2
ORDER BY profile_version ASC`
	return r.queryHistory(ctx, query, profileID, jobID)
}

// ListByProfile returns all recorded runs for a profile.
func (r *PGHistoryRepo) ListByProfile(ctx context.Context, profileID string) ([]MatchHistory, error) {
	const query = selectHistory + `
WHERE profile_id = $1
ORDER BY job_id, profile_version ASC`
	return r.queryHistory(ctx, query, profileID)
}

// ListByJob returns all recorded runs for a job.
func (r *PGHistoryRepo) ListByJob(ctx context.Context, jobID string) ([]MatchHistory, error) {
	const query = selectHistory + `
WHERE job_id = $1
ORDER BY profile_id, profile_version ASC`
	return r.queryHistory(ctx, query, jobID)
}

// GetLatest returns the row with the highest profile version for the pair.
func (r *PGHistoryRepo) GetLatest(ctx context.Context, profileID, jobID string) (MatchHistory, error) {
	const query = selectHistory + `
WHERE profile_id = $1 AND job_id = $2
ORDER BY profile_version DESC
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, profileID, jobID)
	entry, err := scanHistory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MatchHistory{}, ErrHistoryNotFound
		}
		return MatchHistory{}, err
	}
	return entry, nil
}

const selectHistory = `
SELECT profile_id, job_id, profile_version, overall_score, category_scores, mandatory_miss_count, insufficient_data, computed_at, created_at
FROM match_history`

func (r *PGHistoryRepo) queryHistory(ctx context.Context, query string, args ...any) ([]MatchHistory, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MatchHistory, 0)
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (MatchHistory, error) {
	var entry MatchHistory
	var categoryScores []byte
	err := row.Scan(
		&entry.ProfileID,
		&entry.JobID,
		&entry.ProfileVersion,
		&entry.Result.OverallScore,
		&categoryScores,
		&entry.Result.MandatoryMissCount,
		&entry.Result.InsufficientData,
		&entry.Result.ComputedAt,
		&entry.CreatedAt,
	)
	if err != nil {
		return MatchHistory{}, err
	}
	entry.Result.ProfileVersion = entry.ProfileVersion
	entry.Result.CategoryScores = make(map[jobs.RequirementType]float64)
	if len(categoryScores) > 0 {
		if err := json.Unmarshal(categoryScores, &entry.Result.CategoryScores); err != nil {
			return MatchHistory{}, fmt.Errorf("unmarshal category scores: %w", err)
		}
	}
	return entry, nil
}
