package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres. Requirements and the other list
// sections are stored as jsonb.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new job.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (
    id,
    user_id,
    title,
    company,
    location,
    description,
    requirements,
    responsibilities,
    benefits,
    tags,
    salary,
    last_match_score,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	requirements, responsibilities, benefits, tags, salary, err := marshalJobSections(job)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.UserID,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		requirements,
		responsibilities,
		benefits,
		tags,
		salary,
		job.LastMatchScore,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// GetByID returns a job by ID.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	const query = selectJob + ` WHERE id = $1 LIMIT 1`
	return scanJob(r.DB.QueryRowContext(ctx, query, jobID))
}

// ListByUser returns jobs saved by a user, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	const query = selectJob + ` WHERE user_id = $1 ORDER BY created_at DESC, id`
	return r.queryJobs(ctx, query, userID)
}

// Update replaces a job row.
func (r *PGRepo) Update(ctx context.Context, job Job) error {
	const query = `
UPDATE jobs SET
    title = $2,
    company = $3,
    location = $4,
    description = $5,
    requirements = $6,
    responsibilities = $7,
    benefits = $8,
    tags = $9,
    salary = $10,
    updated_at = $11
WHERE id = $1`

	requirements, responsibilities, benefits, tags, salary, err := marshalJobSections(job)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		requirements,
		responsibilities,
		benefits,
		tags,
		salary,
		job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a job.
func (r *PGRepo) Delete(ctx context.Context, jobID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchByKeywords matches any keyword against title, company, description,
// requirements and tags.
func (r *PGRepo) SearchByKeywords(ctx context.Context, userID string, keywords []string) ([]Job, error) {
	needles := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			needles = append(needles, "%"+strings.ToLower(trimmed)+"%")
		}
	}
	if len(needles) == 0 {
		return []Job{}, nil
	}

	const query = selectJob + `
WHERE user_id = $1
  AND lower(title || ' ' || company || ' ' || coalesce(description, '') || ' ' || requirements::text || ' ' || tags::text) LIKE ANY($2)
ORDER BY created_at DESC, id`
	return r.queryJobs(ctx, query, userID, needles)
}

// UpdateTags replaces a job's tags.
func (r *PGRepo) UpdateTags(ctx context.Context, jobID string, tags []string) error {
	encoded, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	res, err := r.DB.ExecContext(ctx, `UPDATE jobs SET tags = $2, updated_at = now() WHERE id = $1`, jobID, encoded)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateLastMatchScore stores the most recent overall match score.
func (r *PGRepo) UpdateLastMatchScore(ctx context.Context, jobID string, score float64) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE jobs SET last_match_score = $2, updated_at = now() WHERE id = $1`, jobID, score)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

const selectJob = `
SELECT id, user_id, title, company, location, description, requirements, responsibilities, benefits, tags, salary, last_match_score, created_at, updated_at
FROM jobs`

func (r *PGRepo) queryJobs(ctx context.Context, query string, args ...any) ([]Job, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var job Job
	var location, description sql.NullString
	var requirements, responsibilities, benefits, tags, salary []byte
	var lastScore sql.NullFloat64
	err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.Title,
		&job.Company,
		&location,
		&description,
		&requirements,
		&responsibilities,
		&benefits,
		&tags,
		&salary,
		&lastScore,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	job.Location = location.String
	job.Description = description.String
	if lastScore.Valid {
		job.LastMatchScore = &lastScore.Float64
	}
	if len(requirements) > 0 {
		if err := json.Unmarshal(requirements, &job.Requirements); err != nil {
			return Job{}, fmt.Errorf("unmarshal requirements: %w", err)
		}
	}
	if len(responsibilities) > 0 {
		if err := json.Unmarshal(responsibilities, &job.Responsibilities); err != nil {
			return Job{}, fmt.Errorf("unmarshal responsibilities: %w", err)
		}
	}
	if len(benefits) > 0 {
		if err := json.Unmarshal(benefits, &job.Benefits); err != nil {
			return Job{}, fmt.Errorf("unmarshal benefits: %w", err)
		}
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &job.Tags); err != nil {
			return Job{}, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if len(salary) > 0 && string(salary) != "null" {
		job.Salary = &Salary{}
		if err := json.Unmarshal(salary, job.Salary); err != nil {
			return Job{}, fmt.Errorf("unmarshal salary: %w", err)
		}
	}
	return job, nil
}

func marshalJobSections(job Job) (requirements, responsibilities, benefits, tags, salary []byte, err error) {
	if requirements, err = json.Marshal(job.Requirements); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal requirements: %w", err)
	}
	if responsibilities, err = json.Marshal(job.Responsibilities); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal responsibilities: %w", err)
	}
	if benefits, err = json.Marshal(job.Benefits); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal benefits: %w", err)
	}
	if tags, err = json.Marshal(job.Tags); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal tags: %w", err)
	}
	if salary, err = json.Marshal(job.Salary); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal salary: %w", err)
	}
	return requirements, responsibilities, benefits, tags, salary, nil
}
