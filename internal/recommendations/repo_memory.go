package recommendations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Recommendation // id -> recommendation
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Recommendation)}
}

// CreateBatch stores a set of freshly generated recommendations.
func (r *MemoryRepo) CreateBatch(ctx context.Context, items []Recommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.data[item.ID] = item
	}
	return nil
}

// GetByID returns a recommendation by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return Recommendation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.data[id]
	if !ok {
		return Recommendation{}, ErrNotFound
	}
	return item, nil
}

// ListByProfile returns recommendations for a profile.
func (r *MemoryRepo) ListByProfile(ctx context.Context, profileID string) ([]Recommendation, error) {
	return r.filter(ctx, func(item Recommendation) bool { return item.ProfileID == profileID })
}

// ListByProfileAndJob returns recommendations for a profile-job pair.
func (r *MemoryRepo) ListByProfileAndJob(ctx context.Context, profileID, jobID string) ([]Recommendation, error) {
	return r.filter(ctx, func(item Recommendation) bool {
		return item.ProfileID == profileID && item.JobID == jobID
	})
}

// ListByType returns a profile's recommendations of the given type.
func (r *MemoryRepo) ListByType(ctx context.Context, profileID string, recType RecommendationType) ([]Recommendation, error) {
	return r.filter(ctx, func(item Recommendation) bool {
		return item.ProfileID == profileID && item.Type == recType
	})
}

// ListByPriority returns a profile's recommendations of the given priority.
func (r *MemoryRepo) ListByPriority(ctx context.Context, profileID string, priority Priority) ([]Recommendation, error) {
	return r.filter(ctx, func(item Recommendation) bool {
		return item.ProfileID == profileID && item.Priority == priority
	})
}

// Update replaces a stored recommendation.
func (r *MemoryRepo) Update(ctx context.Context, item Recommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[item.ID]; !ok {
		return ErrNotFound
	}
	r.data[item.ID] = item
	return nil
}

func (r *MemoryRepo) filter(ctx context.Context, keep func(Recommendation) bool) ([]Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Recommendation, 0)
	for _, item := range r.data {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
