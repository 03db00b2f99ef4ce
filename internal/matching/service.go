package matching

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobmatch-backend/internal/jobs"
	"jobmatch-backend/internal/profiles"
	"jobmatch-backend/internal/shared/metrics"
	"jobmatch-backend/internal/shared/telemetry"
)

// ProfileSource supplies profiles to the engine.
type ProfileSource interface {
	GetByID(ctx context.Context, profileID string) (profiles.Profile, error)
}

// JobSource supplies jobs to the engine and accepts the latest score.
type JobSource interface {
	GetByID(ctx context.Context, jobID string) (jobs.Job, error)
	UpdateLastMatchScore(ctx context.Context, jobID string, score float64) error
}

// Service orchestrates scoring runs: it resolves entities through the
// repository collaborators, computes the pure score and records history.
type Service struct {
	Profiles ProfileSource
	Jobs     JobSource
	History  HistoryRepo
}

// CalculateMatch scores a profile against a job, records the run in history
// and stores the score on the job.
func (s *Service) CalculateMatch(ctx context.Context, profileID, jobID string) (MatchResult, error) {
	profile, job, err := s.resolve(ctx, profileID, jobID)
	if err != nil {
		return MatchResult{}, err
	}

	started := time.Now()
	result, err := Score(profile, job)
	if err != nil {
		metrics.IncMatchFailed()
		return MatchResult{}, err
	}

	if err := s.record(ctx, profile, job, result); err != nil {
		return MatchResult{}, err
	}

	metrics.IncMatchComputed()
	metrics.ObserveMatchDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)
	telemetry.Info("match.computed", map[string]any{
		"profile_id":      profileID,
		"job_id":          jobID,
		"profile_version": profile.Version,
		"overall_score":   result.OverallScore,
		"mandatory_miss":  result.MandatoryMissCount,
	})
	return result, nil
}

// GetDetailedAnalysis scores with full per-requirement explanations and
// records the run like CalculateMatch.
func (s *Service) GetDetailedAnalysis(ctx context.Context, profileID, jobID string) (DetailedMatch, error) {
	profile, job, err := s.resolve(ctx, profileID, jobID)
	if err != nil {
		return DetailedMatch{}, err
	}

	detailed, err := Analyze(profile, job)
	if err != nil {
		metrics.IncMatchFailed()
		return DetailedMatch{}, err
	}

	if err := s.record(ctx, profile, job, detailed.MatchResult); err != nil {
		return DetailedMatch{}, err
	}
	metrics.IncMatchComputed()
	return detailed, nil
}

// GetTrend returns the score series for a pair, one point per profile
// version ever scored, ordered by version ascending.
func (s *Service) GetTrend(ctx context.Context, profileID, jobID string) ([]MatchHistory, error) {
	if strings.TrimSpace(profileID) == "" || strings.TrimSpace(jobID) == "" {
		return nil, errors.New("profileID and jobID are required")
	}
	return s.History.GetTrend(ctx, profileID, jobID)
}

// GetProfileMatchHistory returns all recorded runs for a profile across jobs.
func (s *Service) GetProfileMatchHistory(ctx context.Context, profileID string) ([]MatchHistory, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, errors.New("profileID is required")
	}
	return s.History.ListByProfile(ctx, profileID)
}

// GetJobMatchHistory returns all recorded runs for a job across profiles.
func (s *Service) GetJobMatchHistory(ctx context.Context, jobID string) ([]MatchHistory, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, errors.New("jobID is required")
	}
	return s.History.ListByJob(ctx, jobID)
}

// JobComparison pairs a job with its match result.
type JobComparison struct {
	JobID  string      `json:"jobId"`
	Result MatchResult `json:"result"`
}

// CompareJobs scores one profile against several jobs.
func (s *Service) CompareJobs(ctx context.Context, profileID string, jobIDs []string) ([]JobComparison, error) {
	out := make([]JobComparison, 0, len(jobIDs))
	for _, jobID := range jobIDs {
		result, err := s.CalculateMatch(ctx, profileID, jobID)
		if err != nil {
			return nil, err
		}
		out = append(out, JobComparison{JobID: jobID, Result: result})
	}
	return out, nil
}

// ProfileComparison pairs a profile with its match result.
type ProfileComparison struct {
	ProfileID string      `json:"profileId"`
	Result    MatchResult `json:"result"`
}

// CompareProfiles scores several profiles against one job.
func (s *Service) CompareProfiles(ctx context.Context, profileIDs []string, jobID string) ([]ProfileComparison, error) {
	out := make([]ProfileComparison, 0, len(profileIDs))
	for _, profileID := range profileIDs {
		result, err := s.CalculateMatch(ctx, profileID, jobID)
		if err != nil {
			return nil, err
		}
		out = append(out, ProfileComparison{ProfileID: profileID, Result: result})
	}
	return out, nil
}

func (s *Service) resolve(ctx context.Context, profileID, jobID string) (profiles.Profile, jobs.Job, error) {
	if strings.TrimSpace(profileID) == "" || strings.TrimSpace(jobID) == "" {
		return profiles.Profile{}, jobs.Job{}, errors.New("profileID and jobID are required")
	}
	profile, err := s.Profiles.GetByID(ctx, profileID)
	if err != nil {
		return profiles.Profile{}, jobs.Job{}, err
	}
	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return profiles.Profile{}, jobs.Job{}, err
	}
	return profile, job, nil
}

func (s *Service) record(ctx context.Context, profile profiles.Profile, job jobs.Job, result MatchResult) error {
	entry := MatchHistory{
		ProfileID:      profile.ID,
		JobID:          job.ID,
		ProfileVersion: profile.Version,
		Result:         result,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.History.RecordMatch(ctx, entry); err != nil {
		return err
	}
	if err := s.Jobs.UpdateLastMatchScore(ctx, job.ID, result.OverallScore); err != nil {
		// History is already written; a stale display score is recoverable.
		telemetry.Warn("match.last_score_update_failed", map[string]any{
			"job_id": job.ID,
			"error":  err.Error(),
		})
	}
	return nil
}
