package recommendations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmatch-backend/internal/matching"
	"jobmatch-backend/internal/shared/metrics"
	"jobmatch-backend/internal/shared/telemetry"
)

// Matcher supplies detailed match analyses to the generator.
type Matcher interface {
	GetDetailedAnalysis(ctx context.Context, profileID, jobID string) (matching.DetailedMatch, error)
}

// Service contains business logic for recommendations.
type Service struct {
	Repo    Repo
	Matcher Matcher
}

// GenerateOptions narrows options-scoped generation. Zero value keeps
// every generated recommendation.
type GenerateOptions struct {
	Types      []RecommendationType
	Priorities []Priority
	Limit      int
}

// Generate runs a detailed analysis for the pair and persists one pending
// recommendation per gap.
func (s *Service) Generate(ctx context.Context, profileID, jobID string) ([]Recommendation, error) {
	return s.GenerateWithOptions(ctx, profileID, jobID, GenerateOptions{})
}

// GenerateWithOptions generates recommendations for the pair keeping only
// those matching the requested types and priorities, capped at Limit.
func (s *Service) GenerateWithOptions(ctx context.Context, profileID, jobID string, opts GenerateOptions) ([]Recommendation, error) {
	if strings.TrimSpace(profileID) == "" || strings.TrimSpace(jobID) == "" {
		return nil, errors.New("profileID and jobID are required")
	}
	if s.Matcher == nil {
		return nil, errors.New("matcher not configured")
	}

	detailed, err := s.Matcher.GetDetailedAnalysis(ctx, profileID, jobID)
	if err != nil {
		return nil, err
	}

	items := applyOptions(Generate(detailed, profileID, jobID), opts)
	now := time.Now().UTC()
	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].CreatedAt = now
	}

	if err := s.Repo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	metrics.AddRecommendationsGenerated(len(items))
	telemetry.Info("recommendations.generated", map[string]any{
		"profile_id": profileID,
		"job_id":     jobID,
		"count":      len(items),
	})
	return items, nil
}

func applyOptions(items []Recommendation, opts GenerateOptions) []Recommendation {
	if len(opts.Types) == 0 && len(opts.Priorities) == 0 && opts.Limit <= 0 {
		return items
	}

	kept := make([]Recommendation, 0, len(items))
	for _, item := range items {
		if len(opts.Types) > 0 && !containsType(opts.Types, item.Type) {
			continue
		}
		if len(opts.Priorities) > 0 && !containsPriority(opts.Priorities, item.Priority) {
			continue
		}
		kept = append(kept, item)
	}
	if opts.Limit > 0 && len(kept) > opts.Limit {
		kept = kept[:opts.Limit]
	}
	return kept
}

func containsType(types []RecommendationType, typ RecommendationType) bool {
	for _, t := range types {
		if t == typ {
			return true
		}
	}
	return false
}

func containsPriority(priorities []Priority, priority Priority) bool {
	for _, p := range priorities {
		if p == priority {
			return true
		}
	}
	return false
}

// Get returns a recommendation by ID.
func (s *Service) Get(ctx context.Context, id string) (Recommendation, error) {
	if strings.TrimSpace(id) == "" {
		return Recommendation{}, errors.New("recommendation id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// ListForProfile returns all recommendations for a profile, prioritized.
func (s *Service) ListForProfile(ctx context.Context, profileID string) ([]Recommendation, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, errors.New("profileID is required")
	}
	items, err := s.Repo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return Prioritize(items), nil
}

// ListForProfileAndJob returns recommendations for a pair, prioritized.
func (s *Service) ListForProfileAndJob(ctx context.Context, profileID, jobID string) ([]Recommendation, error) {
	if strings.TrimSpace(profileID) == "" || strings.TrimSpace(jobID) == "" {
		return nil, errors.New("profileID and jobID are required")
	}
	items, err := s.Repo.ListByProfileAndJob(ctx, profileID, jobID)
	if err != nil {
		return nil, err
	}
	return Prioritize(items), nil
}

// ListByType returns a profile's recommendations of one type, prioritized.
func (s *Service) ListByType(ctx context.Context, profileID string, typ RecommendationType) ([]Recommendation, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, errors.New("profileID is required")
	}
	items, err := s.Repo.ListByType(ctx, profileID, typ)
	if err != nil {
		return nil, err
	}
	return Prioritize(items), nil
}

// ListByPriority returns a profile's recommendations at one priority level.
func (s *Service) ListByPriority(ctx context.Context, profileID string, priority Priority) ([]Recommendation, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, errors.New("profileID is required")
	}
	items, err := s.Repo.ListByPriority(ctx, profileID, priority)
	if err != nil {
		return nil, err
	}
	return Prioritize(items), nil
}

// MarkCompleted moves a pending recommendation to the completed state.
func (s *Service) MarkCompleted(ctx context.Context, id string) (Recommendation, error) {
	return s.resolve(ctx, id, StatusCompleted, "")
}

// MarkRejected moves a pending recommendation to the rejected state.
// A non-empty reason is required.
func (s *Service) MarkRejected(ctx context.Context, id, reason string) (Recommendation, error) {
	if strings.TrimSpace(reason) == "" {
		return Recommendation{}, fmt.Errorf("%w: rejection requires a reason", ErrInvalidOperation)
	}
	return s.resolve(ctx, id, StatusRejected, strings.TrimSpace(reason))
}

func (s *Service) resolve(ctx context.Context, id string, target Status, reason string) (Recommendation, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return Recommendation{}, err
	}
	if item.Status != StatusPending {
		return Recommendation{}, fmt.Errorf("%w: recommendation is already %s", ErrInvalidOperation, item.Status)
	}

	now := time.Now().UTC()
	item.Status = target
	item.RejectionReason = reason
	item.ResolvedAt = &now

	if err := s.Repo.Update(ctx, item); err != nil {
		return Recommendation{}, err
	}
	return item, nil
}
