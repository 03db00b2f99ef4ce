package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmatch-backend/internal/shared/telemetry"
)

// Service contains business logic for profiles and their version history.
type Service struct {
	Repo   Repo
	Parser ResumeParser
}

// Create parses resume text and stores a new version-1 profile for the user.
func (s *Service) Create(ctx context.Context, userID, resumeText string) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, errors.New("userID is required")
	}
	if strings.TrimSpace(resumeText) == "" {
		return Profile{}, errors.New("resumeText is required")
	}

	parsed, err := s.parse(ctx, resumeText)
	if err != nil {
		return Profile{}, err
	}

	now := time.Now().UTC()
	profile := Profile{
		ID:             uuid.NewString(),
		UserID:         userID,
		Version:        1,
		ResumeText:     resumeText,
		Summary:        parsed.Summary,
		Skills:         parsed.Skills,
		WorkExperience: parsed.WorkExperience,
		Education:      parsed.Education,
		Languages:      parsed.Languages,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Repo.Create(ctx, profile); err != nil {
		return Profile{}, err
	}
	if err := s.snapshot(ctx, profile, now); err != nil {
		return Profile{}, err
	}

	telemetry.Info("profile.created", map[string]any{
		"profile_id": profile.ID,
		"user_id":    userID,
		"version":    profile.Version,
		"skills":     len(profile.Skills),
	})
	return profile, nil
}

// Get returns a profile by ID.
func (s *Service) Get(ctx context.Context, profileID string) (Profile, error) {
	if strings.TrimSpace(profileID) == "" {
		return Profile{}, errors.New("profileID is required")
	}
	return s.Repo.GetByID(ctx, profileID)
}

// GetByUser returns the profile owned by a user.
func (s *Service) GetByUser(ctx context.Context, userID string) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, errors.New("userID is required")
	}
	return s.Repo.GetByUserID(ctx, userID)
}

// UpdateResumeText re-parses the resume and stores the result as the next
// profile version. The superseded version stays in history untouched.
func (s *Service) UpdateResumeText(ctx context.Context, profileID, resumeText string) (Profile, error) {
	if strings.TrimSpace(resumeText) == "" {
		return Profile{}, errors.New("resumeText is required")
	}
	profile, err := s.Get(ctx, profileID)
	if err != nil {
		return Profile{}, err
	}

	parsed, err := s.parse(ctx, resumeText)
	if err != nil {
		return Profile{}, err
	}

	now := time.Now().UTC()
	profile.Version++
	profile.ResumeText = resumeText
	profile.Summary = parsed.Summary
	profile.Skills = parsed.Skills
	profile.WorkExperience = parsed.WorkExperience
	profile.Education = parsed.Education
	profile.Languages = parsed.Languages
	profile.UpdatedAt = now

	if err := s.Repo.Update(ctx, profile); err != nil {
		return Profile{}, err
	}
	if err := s.snapshot(ctx, profile, now); err != nil {
		return Profile{}, err
	}

	telemetry.Info("profile.resume_updated", map[string]any{
		"profile_id": profile.ID,
		"user_id":    profile.UserID,
		"version":    profile.Version,
	})
	return profile, nil
}

// UpdateSkills replaces the skill list. Skill edits change match outcomes,
// so they bump the version and snapshot like a resume update.
func (s *Service) UpdateSkills(ctx context.Context, profileID string, skills []Skill) (Profile, error) {
	profile, err := s.Get(ctx, profileID)
	if err != nil {
		return Profile{}, err
	}

	now := time.Now().UTC()
	profile.Version++
	profile.Skills = skills
	profile.UpdatedAt = now

	if err := s.Repo.Update(ctx, profile); err != nil {
		return Profile{}, err
	}
	if err := s.snapshot(ctx, profile, now); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Delete removes a profile and its history.
func (s *Service) Delete(ctx context.Context, profileID string) error {
	if strings.TrimSpace(profileID) == "" {
		return errors.New("profileID is required")
	}
	return s.Repo.Delete(ctx, profileID)
}

// GetHistory returns the profile's version snapshots, oldest first.
func (s *Service) GetHistory(ctx context.Context, profileID string) ([]ProfileVersion, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, errors.New("profileID is required")
	}
	if _, err := s.Repo.GetByID(ctx, profileID); err != nil {
		return nil, err
	}
	return s.Repo.GetHistory(ctx, profileID)
}

// FindBySkill returns profiles listing the given skill.
func (s *Service) FindBySkill(ctx context.Context, skillName string) ([]Profile, error) {
	if strings.TrimSpace(skillName) == "" {
		return nil, errors.New("skillName is required")
	}
	return s.Repo.FindBySkill(ctx, skillName)
}

func (s *Service) parse(ctx context.Context, resumeText string) (ParsedResume, error) {
	if s.Parser == nil {
		return ParsedResume{}, errors.New("resume parser not configured")
	}
	return s.Parser.ParseResume(ctx, resumeText)
}

func (s *Service) snapshot(ctx context.Context, profile Profile, at time.Time) error {
	return s.Repo.SaveVersion(ctx, ProfileVersion{
		ProfileID: profile.ID,
		Version:   profile.Version,
		Snapshot:  profile,
		CreatedAt: at,
	})
}
