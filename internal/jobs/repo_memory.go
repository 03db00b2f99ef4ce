package jobs

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Job // jobID -> job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Job)}
}

// Create stores a new job.
func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[job.ID] = job
	return nil
}

// GetByID returns a job by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.data[jobID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

// ListByUser returns jobs saved by a user, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Job, 0)
	for _, job := range r.data {
		if job.UserID == userID {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Update replaces a stored job.
func (r *MemoryRepo) Update(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[job.ID]; !ok {
		return ErrNotFound
	}
	r.data[job.ID] = job
	return nil
}

// Delete removes a job.
func (r *MemoryRepo) Delete(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[jobID]; !ok {
		return ErrNotFound
	}
	delete(r.data, jobID)
	return nil
}

// SearchByKeywords returns the user's jobs whose title, description or
// requirements mention any of the keywords, case-insensitive.
func (r *MemoryRepo) SearchByKeywords(ctx context.Context, userID string, keywords []string) ([]Job, error) {
	jobs, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	needles := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if trimmed := strings.ToLower(strings.TrimSpace(k)); trimmed != "" {
			needles = append(needles, trimmed)
		}
	}
	if len(needles) == 0 {
		return []Job{}, nil
	}

	out := make([]Job, 0)
	for _, job := range jobs {
		if jobMatchesAny(job, needles) {
			out = append(out, job)
		}
	}
	return out, nil
}

// UpdateTags replaces a job's tags.
func (r *MemoryRepo) UpdateTags(ctx context.Context, jobID string, tags []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.data[jobID]
	if !ok {
		return ErrNotFound
	}
	job.Tags = tags
	r.data[jobID] = job
	return nil
}

// UpdateLastMatchScore stores the most recent overall match score.
func (r *MemoryRepo) UpdateLastMatchScore(ctx context.Context, jobID string, score float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.data[jobID]
	if !ok {
		return ErrNotFound
	}
	job.LastMatchScore = &score
	r.data[jobID] = job
	return nil
}

func jobMatchesAny(job Job, needles []string) bool {
	haystack := strings.ToLower(job.Title + " " + job.Company + " " + job.Description)
	for _, req := range job.Requirements {
		haystack += " " + strings.ToLower(req.Text)
	}
	for _, tag := range job.Tags {
		haystack += " " + strings.ToLower(tag)
	}
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
