package students

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of ProfilesRepo.
type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string]Profile)}
}

// Get returns the profile for a user.
func (r *MemoryRepo) Get(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

// Put upserts the profile for a user.
func (r *MemoryRepo) Put(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	r.profiles[profile.UserID] = profile
	r.mu.Unlock()
	return nil
}

// MemoryProgramsRepo is a map-backed ProgramsRepo.
type MemoryProgramsRepo struct {
	Programs map[string]Program
}

// Get returns the program for a major, case-insensitively.
func (r *MemoryProgramsRepo) Get(ctx context.Context, major string) (Program, error) {
	if err := ctx.Err(); err != nil {
		return Program{}, err
	}
	for key, program := range r.Programs {
		if strings.EqualFold(key, major) {
			return program, nil
		}
	}
	return Program{}, ErrNotFound
}

var (
	_ ProfilesRepo = (*MemoryRepo)(nil)
	_ ProgramsRepo = (*MemoryProgramsRepo)(nil)
)
