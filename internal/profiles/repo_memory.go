package profiles

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]Profile          // profileID -> profile
	versions map[string][]ProfileVersion // profileID -> snapshots, append order
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		profiles: make(map[string]Profile),
		versions: make(map[string][]ProfileVersion),
	}
}

// Create stores a new profile. At most one profile per user.
func (r *MemoryRepo) Create(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.UserID == profile.UserID {
			return ErrConflict
		}
	}
	r.profiles[profile.ID] = profile
	return nil
}

// GetByID returns a profile by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, profileID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[profileID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

// GetByUserID returns the profile owned by a user.
func (r *MemoryRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return Profile{}, ErrNotFound
}

// Update replaces the current profile row.
func (r *MemoryRepo) Update(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; !ok {
		return ErrNotFound
	}
	r.profiles[profile.ID] = profile
	return nil
}

// Delete removes a profile and its version history.
func (r *MemoryRepo) Delete(ctx context.Context, profileID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profileID]; !ok {
		return ErrNotFound
	}
	delete(r.profiles, profileID)
	delete(r.versions, profileID)
	return nil
}

// FindBySkill returns profiles listing the given skill name, case-insensitive.
func (r *MemoryRepo) FindBySkill(ctx context.Context, skillName string) ([]Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(skillName))
	if needle == "" {
		return []Profile{}, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Profile, 0)
	for _, profile := range r.profiles {
		for _, skill := range profile.Skills {
			if strings.ToLower(skill.Name) == needle {
				out = append(out, profile)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SaveVersion appends an immutable version snapshot. An existing snapshot
// for the same version is never overwritten.
func (r *MemoryRepo) SaveVersion(ctx context.Context, version ProfileVersion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.versions[version.ProfileID] {
		if existing.Version == version.Version {
			return nil
		}
	}
	r.versions[version.ProfileID] = append(r.versions[version.ProfileID], version)
	return nil
}

// GetHistory returns all version snapshots sorted by version ascending.
func (r *MemoryRepo) GetHistory(ctx context.Context, profileID string) ([]ProfileVersion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	stored := r.versions[profileID]
	r.mu.RUnlock()

	history := make([]ProfileVersion, len(stored))
	copy(history, stored)
	sort.Slice(history, func(i, j int) bool { return history[i].Version < history[j].Version })
	return history, nil
}
