package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Structured sections are stored as
// jsonb; version snapshots live in profile_versions keyed by
// (profile_id, version).
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new profile.
func (r *PGRepo) Create(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (
    id,
    user_id,
    version,
    resume_text,
    summary,
    skills,
    work_experience,
    education,
    languages,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	skills, experience, education, languages, err := marshalSections(profile)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.Version,
		profile.ResumeText,
		profile.Summary,
		skills,
		experience,
		education,
		languages,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

// GetByID returns a profile by ID.
func (r *PGRepo) GetByID(ctx context.Context, profileID string) (Profile, error) {
	const query = selectProfile + ` WHERE id = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, profileID))
}

// GetByUserID returns the profile owned by a user.
func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	const query = selectProfile + ` WHERE user_id = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// Update replaces the current profile row.
func (r *PGRepo) Update(ctx context.Context, profile Profile) error {
	const query = `
UPDATE profiles SET
    version = $2,
    resume_text = $3,
    summary = $4,
    skills = $5,
    work_experience = $6,
    education = $7,
    languages = $8,
    updated_at = $9
WHERE id = $1`

	skills, experience, education, languages, err := marshalSections(profile)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.Version,
		profile.ResumeText,
		profile.Summary,
		skills,
		experience,
		education,
		languages,
		profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a profile; version history rows cascade.
func (r *PGRepo) Delete(ctx context.Context, profileID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, profileID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindBySkill returns profiles whose skills mention the given name.
func (r *PGRepo) FindBySkill(ctx context.Context, skillName string) ([]Profile, error) {
	const query = selectProfile + `
WHERE EXISTS (
    SELECT 1 FROM jsonb_array_elements(skills) AS s
    WHERE lower(s->>'name') = lower($1)
)
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, skillName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Profile, 0)
	for rows.Next() {
		profile, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, profile)
	}
	return out, rows.Err()
}

// SaveVersion appends a version snapshot; an existing snapshot for the same
// version is kept untouched.
func (r *PGRepo) SaveVersion(ctx context.Context, version ProfileVersion) error {
	const query = `
INSERT INTO profile_versions (profile_id, version, snapshot, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (profile_id, version) DO NOTHING`

	snapshot, err := json.Marshal(version.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal profile snapshot: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query, version.ProfileID, version.Version, snapshot, version.CreatedAt)
	return err
}

// GetHistory returns version snapshots ordered by version ascending.
func (r *PGRepo) GetHistory(ctx context.Context, profileID string) ([]ProfileVersion, error) {
	const query = `
SELECT profile_id, version, snapshot, created_at
FROM profile_versions
WHERE profile_id = $1
ORDER BY version ASC`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ProfileVersion, 0)
	for rows.Next() {
		var pv ProfileVersion
		var snapshot []byte
		if err := rows.Scan(&pv.ProfileID, &pv.Version, &snapshot, &pv.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(snapshot, &pv.Snapshot); err != nil {
			return nil, fmt.Errorf("unmarshal profile snapshot: %w", err)
		}
		out = append(out, pv)
	}
	return out, rows.Err()
}

const selectProfile = `
SELECT id, user_id, version, resume_text, summary, skills, work_experience, education, languages, created_at, updated_at
FROM profiles`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row rowScanner) (Profile, error) {
	var profile Profile
	var resumeText, summary sql.NullString
	var skills, experience, education, languages []byte
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Version,
		&resumeText,
		&summary,
		&skills,
		&experience,
		&education,
		&languages,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	profile.ResumeText = resumeText.String
	profile.Summary = summary.String
	if err := unmarshalSections(&profile, skills, experience, education, languages); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func marshalSections(profile Profile) (skills, experience, education, languages []byte, err error) {
	if skills, err = json.Marshal(profile.Skills); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal skills: %w", err)
	}
	if experience, err = json.Marshal(profile.WorkExperience); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal work experience: %w", err)
	}
	if education, err = json.Marshal(profile.Education); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal education: %w", err)
	}
	if languages, err = json.Marshal(profile.Languages); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal languages: %w", err)
	}
	return skills, experience, education, languages, nil
}

func unmarshalSections(profile *Profile, skills, experience, education, languages []byte) error {
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &profile.Skills); err != nil {
			return fmt.Errorf("unmarshal skills: %w", err)
		}
	}
	if len(experience) > 0 {
		if err := json.Unmarshal(experience, &profile.WorkExperience); err != nil {
			return fmt.Errorf("unmarshal work experience: %w", err)
		}
	}
	if len(education) > 0 {
		if err := json.Unmarshal(education, &profile.Education); err != nil {
			return fmt.Errorf("unmarshal education: %w", err)
		}
	}
	if len(languages) > 0 {
		if err := json.Unmarshal(languages, &profile.Languages); err != nil {
			return fmt.Errorf("unmarshal languages: %w", err)
		}
	}
	return nil
}
