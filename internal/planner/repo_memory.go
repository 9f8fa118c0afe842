package planner

import (
	"context"
	"sort"
	"sync"

	"planner-backend/internal/catalog"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]Record // userID -> course code -> record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]map[string]Record)}
}

// Create stores a new plan entry.
func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	code := catalog.NormalizeCode(rec.CourseCode)
	if r.data[rec.UserID] == nil {
		r.data[rec.UserID] = make(map[string]Record)
	}
	if _, dup := r.data[rec.UserID][code]; dup {
		return ErrDuplicateCourse
	}
	rec.CourseCode = code
	r.data[rec.UserID][code] = rec
	return nil
}

// GetByCourse fetches the plan entry for one course.
func (r *MemoryRepo) GetByCourse(ctx context.Context, userID, courseCode string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[userID][catalog.NormalizeCode(courseCode)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// ListByUser returns every plan entry for a user in course-code order.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0, len(r.data[userID]))
	for _, rec := range r.data[userID] {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseCode < out[j].CourseCode })
	return out, nil
}

// Update rewrites an existing plan entry.
func (r *MemoryRepo) Update(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	code := catalog.NormalizeCode(rec.CourseCode)
	existing, ok := r.data[rec.UserID][code]
	if !ok {
		return ErrNotFound
	}
	existing.Status = rec.Status
	existing.Grade = rec.Grade
	existing.Semester = rec.Semester
	r.data[rec.UserID][code] = existing
	return nil
}

// Delete removes a plan entry.
func (r *MemoryRepo) Delete(ctx context.Context, userID, courseCode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	code := catalog.NormalizeCode(courseCode)
	if _, ok := r.data[userID][code]; !ok {
		return ErrNotFound
	}
	delete(r.data[userID], code)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
