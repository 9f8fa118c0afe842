package catalog

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	courses map[string]Course
}

// NewMemoryRepo constructs a MemoryRepo, optionally pre-seeded.
func NewMemoryRepo(seed ...Course) *MemoryRepo {
	repo := &MemoryRepo{courses: make(map[string]Course, len(seed))}
	for _, course := range seed {
		repo.courses[NormalizeCode(course.Code)] = course
	}
	return repo
}

// ListAll returns every course in ascending code order.
func (r *MemoryRepo) ListAll(ctx context.Context) ([]Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Course, 0, len(r.courses))
	for _, course := range r.courses {
		out = append(out, course)
	}
	sort.Slice(out, func(i, j int) bool { return NormalizeCode(out[i].Code) < NormalizeCode(out[j].Code) })
	return out, nil
}

// GetByCode fetches a single course.
func (r *MemoryRepo) GetByCode(ctx context.Context, code string) (Course, error) {
	if err := ctx.Err(); err != nil {
		return Course{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	course, ok := r.courses[NormalizeCode(code)]
	if !ok {
		return Course{}, ErrNotFound
	}
	return course, nil
}

// ReplaceAll swaps the whole catalog.
func (r *MemoryRepo) ReplaceAll(ctx context.Context, courses []Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := make(map[string]Course, len(courses))
	for _, course := range courses {
		next[NormalizeCode(course.Code)] = course
	}
	r.mu.Lock()
	r.courses = next
	r.mu.Unlock()
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
