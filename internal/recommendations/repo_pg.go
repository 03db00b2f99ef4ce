package recommendations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// CreateBatch inserts freshly generated recommendations in one transaction.
func (r *PGRepo) CreateBatch(ctx context.Context, items []Recommendation) error {
	if len(items) == 0 {
		return nil
	}
	const query = `
INSERT INTO recommendations (
    id,
    profile_id,
    job_id,
    type,
    priority,
    related_requirement,
    action,
    weight,
    status,
    rejection_reason,
    created_at,
    resolved_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range items {
		requirement, err := json.Marshal(item.RelatedRequirement)
		if err != nil {
			return fmt.Errorf("marshal related requirement: %w", err)
		}
		if _, err := tx.ExecContext(
			ctx,
			query,
			item.ID,
			item.ProfileID,
			nullableString(item.JobID),
			string(item.Type),
			string(item.Priority),
			requirement,
			item.Action,
			item.Weight,
			string(item.Status),
			nullableString(item.RejectionReason),
			item.CreatedAt,
			item.ResolvedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetByID returns a recommendation by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Recommendation, error) {
	const query = selectRecommendation + ` WHERE id = $1 LIMIT 1`
	item, err := scanRecommendation(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Recommendation{}, ErrNotFound
		}
		return Recommendation{}, err
	}
	return item, nil
}

// ListByProfile returns recommendations for a profile.
func (r *PGRepo) ListByProfile(ctx context.Context, profileID string) ([]Recommendation, error) {
	const query = selectRecommendation + ` WHERE profile_id = $1 ORDER BY created_at, id`
	return r.queryList(ctx, query, profileID)
}

// ListByProfileAndJob returns recommendations for a profile-job pair.
func (r *PGRepo) ListByProfileAndJob(ctx context.Context, profileID, jobID string) ([]Recommendation, error) {
	const query = selectRecommendation + ` WHERE profile_id = $1 AND job_id = $2 ORDER BY created_at, id`
	return r.queryList(ctx, query, profileID, jobID)
}

// ListByType returns a profile's recommendations of the given type.
func (r *PGRepo) ListByType(ctx context.Context, profileID string, recType RecommendationType) ([]Recommendation, error) {
	const query = selectRecommendation + ` WHERE profile_id = $1 AND type = $2 ORDER BY created_at, id`
	return r.queryList(ctx, query, profileID, string(recType))
}

// ListByPriority returns a profile's recommendations of the given priority.
func (r *PGRepo) ListByPriority(ctx context.Context, profileID string, priority Priority) ([]Recommendation, error) {
	const query = selectRecommendation + ` WHERE profile_id = $1 AND priority = $2 ORDER BY created_at, id`
	return r.queryList(ctx, query, profileID, string(priority))
}

// Update replaces a recommendation row.
func (r *PGRepo) Update(ctx context.Context, item Recommendation) error {
	const query = `
UPDATE recommendations SET
    status = $2,
    rejection_reason = $3,
    resolved_at = $4
WHERE id = $1`
	res, err := r.DB.ExecContext(
		ctx,
		query,
		item.ID,
		string(item.Status),
		nullableString(item.RejectionReason),
		item.ResolvedAt,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

const selectRecommendation = `
SELECT id, profile_id, job_id, type, priority, related_requirement, action, weight, status, rejection_reason, created_at, resolved_at
FROM recommendations`

func (r *PGRepo) queryList(ctx context.Context, query string, args ...any) ([]Recommendation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Recommendation, 0)
	for rows.Next() {
		item, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecommendation(row rowScanner) (Recommendation, error) {
	var item Recommendation
	var jobID, rejectionReason sql.NullString
	var requirement []byte
	var resolvedAt sql.NullTime
	err := row.Scan(
		&item.ID,
		&item.ProfileID,
		&jobID,
		&item.Type,
		&item.Priority,
		&requirement,
		&item.Action,
		&item.Weight,
		&item.Status,
		&rejectionReason,
		&item.CreatedAt,
		&resolvedAt,
	)
	if err != nil {
		return Recommendation{}, err
	}
	item.JobID = jobID.String
	item.RejectionReason = rejectionReason.String
	if resolvedAt.Valid {
		item.ResolvedAt = &resolvedAt.Time
	}
	if len(requirement) > 0 {
		if err := json.Unmarshal(requirement, &item.RelatedRequirement); err != nil {
			return Recommendation{}, fmt.Errorf("unmarshal related requirement: %w", err)
		}
	}
	return item, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
