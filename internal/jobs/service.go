package jobs

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmatch-backend/internal/shared/telemetry"
)

// ClassifyFunc categorizes one requirement from its text and the sentence it
// was extracted from. Wired from the matching engine's classifier.
type ClassifyFunc func(text, context string) (RequirementType, ImportanceLevel, bool)

// Service contains business logic for jobs.
type Service struct {
	Repo     Repo
	Parser   JobParser
	Classify ClassifyFunc
}

// Save parses raw posting text, classifies its requirements and stores the job.
func (s *Service) Save(ctx context.Context, userID, postingText string, tags []string) (Job, error) {
	if strings.TrimSpace(userID) == "" {
		return Job{}, errors.New("userID is required")
	}
	if strings.TrimSpace(postingText) == "" {
		return Job{}, errors.New("postingText is required")
	}
	if s.Parser == nil {
		return Job{}, errors.New("job parser not configured")
	}

	parsed, err := s.Parser.ParseJob(ctx, postingText)
	if err != nil {
		return Job{}, err
	}

	now := time.Now().UTC()
	job := Job{
		ID:               uuid.NewString(),
		UserID:           userID,
		Title:            parsed.Title,
		Company:          parsed.Company,
		Location:         parsed.Location,
		Description:      postingText,
		Requirements:     s.classifyAll(parsed.Requirements),
		Responsibilities: parsed.Responsibilities,
		Benefits:         parsed.Benefits,
		Tags:             tags,
		Salary:           parsed.Salary,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, err
	}
	telemetry.Info("job.saved", map[string]any{
		"job_id":       job.ID,
		"user_id":      userID,
		"requirements": len(job.Requirements),
	})
	return job, nil
}

// Get returns a job by ID.
func (s *Service) Get(ctx context.Context, jobID string) (Job, error) {
	if strings.TrimSpace(jobID) == "" {
		return Job{}, errors.New("jobID is required")
	}
	return s.Repo.GetByID(ctx, jobID)
}

// ListByUser returns jobs saved by a user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Update replaces job fields, re-classifying any requirements that carry no type.
func (s *Service) Update(ctx context.Context, job Job) (Job, error) {
	if strings.TrimSpace(job.ID) == "" {
		return Job{}, errors.New("job id is required")
	}
	job.Requirements = s.classifyAll(job.Requirements)
	job.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Delete removes a job.
func (s *Service) Delete(ctx context.Context, jobID string) error {
	if strings.TrimSpace(jobID) == "" {
		return errors.New("jobID is required")
	}
	return s.Repo.Delete(ctx, jobID)
}

// SearchByKeywords returns the user's jobs matching any keyword.
func (s *Service) SearchByKeywords(ctx context.Context, userID string, keywords []string) ([]Job, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.SearchByKeywords(ctx, userID, keywords)
}

// UpdateTags replaces a job's tags.
func (s *Service) UpdateTags(ctx context.Context, jobID string, tags []string) error {
	if strings.TrimSpace(jobID) == "" {
		return errors.New("jobID is required")
	}
	return s.Repo.UpdateTags(ctx, jobID, tags)
}

// UpdateLastMatchScore stores the most recent overall match score on the job.
func (s *Service) UpdateLastMatchScore(ctx context.Context, jobID string, score float64) error {
	if strings.TrimSpace(jobID) == "" {
		return errors.New("jobID is required")
	}
	return s.Repo.UpdateLastMatchScore(ctx, jobID, score)
}

// FindSimilarJobs ranks the user's other jobs by tag and requirement-text
// overlap with the given job, most similar first.
func (s *Service) FindSimilarJobs(ctx context.Context, jobID string, limit int) ([]Job, error) {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.Repo.ListByUser(ctx, job.UserID)
	if err != nil {
		return nil, err
	}

	reference := similarityTerms(job)
	type scored struct {
		job     Job
		overlap int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.ID == job.ID {
			continue
		}
		overlap := countOverlap(reference, similarityTerms(candidate))
		if overlap > 0 {
			ranked = append(ranked, scored{job: candidate, overlap: overlap})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].overlap > ranked[j].overlap })

	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]Job, 0, limit)
	for _, entry := range ranked[:limit] {
		out = append(out, entry.job)
	}
	return out, nil
}

func (s *Service) classifyAll(requirements []JobRequirement) []JobRequirement {
	if s.Classify == nil {
		return requirements
	}
	out := make([]JobRequirement, len(requirements))
	for i, req := range requirements {
		if req.Type == "" || req.Importance == "" {
			reqType, importance, mandatory := s.Classify(req.Text, req.Text)
			if req.Type == "" {
				req.Type = reqType
			}
			if req.Importance == "" {
				req.Importance = importance
				req.Mandatory = mandatory
			}
		}
		// Keep the boolean consistent with importance.
		req.Mandatory = req.Importance == ImportanceMandatory
		out[i] = req
	}
	return out
}

func similarityTerms(job Job) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, tag := range job.Tags {
		if t := strings.ToLower(strings.TrimSpace(tag)); t != "" {
			terms[t] = struct{}{}
		}
	}
	for _, req := range job.Requirements {
		for _, word := range strings.Fields(strings.ToLower(req.Text)) {
			word = strings.Trim(word, ".,;:()")
			if len(word) > 2 {
				terms[word] = struct{}{}
			}
		}
	}
	return terms
}

func countOverlap(a, b map[string]struct{}) int {
	count := 0
	for term := range a {
		if _, ok := b[term]; ok {
			count++
		}
	}
	return count
}
