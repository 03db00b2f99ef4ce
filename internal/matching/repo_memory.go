package matching

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryHistoryRepo is an in-memory implementation of HistoryRepo.
type MemoryHistoryRepo struct {
	mu   sync.RWMutex
	data map[string]MatchHistory // (profileID, jobID, version) -> entry
}

// NewMemoryHistoryRepo constructs a MemoryHistoryRepo.
func NewMemoryHistoryRepo() *MemoryHistoryRepo {
	return &MemoryHistoryRepo{data: make(map[string]MatchHistory)}
}

func historyKey(profileID, jobID string, version int) string {
	return fmt.Sprintf("%s|%s|%d", profileID, jobID, version)
}

// RecordMatch inserts or replaces the row for the composite key.
func (r *MemoryHistoryRepo) RecordMatch(ctx context.Context, entry MatchHistory) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[historyKey(entry.ProfileID, entry.JobID, entry.ProfileVersion)] = entry
	return nil
}

// GetTrend returns all rows for the pair ordered by profile version ascending.
func (r *MemoryHistoryRepo) GetTrend(ctx context.Context, profileID, jobID string) ([]MatchHistory, error) {
	return r.filter(ctx, func(e MatchHistory) bool {
		return e.ProfileID == profileID && e.JobID == jobID
	})
}

// ListByProfile returns all recorded runs for a profile.
func (r *MemoryHistoryRepo) ListByProfile(ctx context.Context, profileID string) ([]MatchHistory, error) {
	return r.filter(ctx, func(e MatchHistory) bool { return e.ProfileID == profileID })
}

// ListByJob returns all recorded runs for a job.
func (r *MemoryHistoryRepo) ListByJob(ctx context.Context, jobID string) ([]MatchHistory, error) {
	return r.filter(ctx, func(e MatchHistory) bool { return e.JobID == jobID })
}

// GetLatest returns the row with the highest profile version for the pair.
func (r *MemoryHistoryRepo) GetLatest(ctx context.Context, profileID, jobID string) (MatchHistory, error) {
	trend, err := r.GetTrend(ctx, profileID, jobID)
	if err != nil {
		return MatchHistory{}, err
	}
	if len(trend) == 0 {
		return MatchHistory{}, ErrHistoryNotFound
	}
	return trend[len(trend)-1], nil
}

func (r *MemoryHistoryRepo) filter(ctx context.Context, keep func(MatchHistory) bool) ([]MatchHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MatchHistory, 0)
	for _, entry := range r.data {
		if keep(entry) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ProfileID != b.ProfileID {
			return a.ProfileID < b.ProfileID
		}
		if a.JobID != b.JobID {
			return a.JobID < b.JobID
		}
		return a.ProfileVersion < b.ProfileVersion
	})
	return out, nil
}
