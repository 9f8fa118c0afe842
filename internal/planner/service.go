package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"planner-backend/internal/catalog"
	"planner-backend/internal/semester"
)

// Service contains business logic for plan entries.
type Service struct {
	Repo Repo
}

// Add places a course on the student's plan.
func (s *Service) Add(ctx context.Context, userID, courseCode string, status Status, grade catalog.Grade, sem semester.Semester) (Record, error) {
	if userID == "" {
		return Record{}, errors.New("userID is required")
	}
	code := catalog.NormalizeCode(courseCode)
	if code == "" {
		return Record{}, fmt.Errorf("%w: courseCode is required", ErrInvalidInput)
	}
	if err := checkGrade(status, grade); err != nil {
		return Record{}, err
	}
	if sem.IsZero() {
		return Record{}, fmt.Errorf("%w: semester is required", ErrInvalidInput)
	}

	if _, err := s.Repo.GetByCourse(ctx, userID, code); err == nil {
		return Record{}, fmt.Errorf("%w: %s", ErrDuplicateCourse, code)
	} else if !errors.Is(err, ErrNotFound) {
		return Record{}, err
	}

	rec := Record{
		ID:         uuid.NewString(),
		UserID:     userID,
		CourseCode: code,
		Status:     status,
		Grade:      grade,
		Semester:   sem,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Update changes status, grade or semester of an existing entry.
func (s *Service) Update(ctx context.Context, userID, courseCode string, status Status, grade catalog.Grade, sem semester.Semester) (Record, error) {
	if userID == "" {
		return Record{}, errors.New("userID is required")
	}
	code := catalog.NormalizeCode(courseCode)
	existing, err := s.Repo.GetByCourse(ctx, userID, code)
	if err != nil {
		return Record{}, err
	}
	if err := checkGrade(status, grade); err != nil {
		return Record{}, err
	}
	existing.Status = status
	existing.Grade = grade
	if !sem.IsZero() {
		existing.Semester = sem
	}
	if err := s.Repo.Update(ctx, existing); err != nil {
		return Record{}, err
	}
	return existing, nil
}

// Remove deletes a plan entry.
func (s *Service) Remove(ctx context.Context, userID, courseCode string) error {
	if userID == "" {
		return errors.New("userID is required")
	}
	return s.Repo.Delete(ctx, userID, catalog.NormalizeCode(courseCode))
}

// List returns the student's plan entries.
func (s *Service) List(ctx context.Context, userID string) ([]Record, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Index returns the student's plan as a course-status index for the
// recommendation core.
func (s *Service) Index(ctx context.Context, userID string) (Index, error) {
	records, err := s.List(ctx, userID)
	if err != nil {
		return Index{}, err
	}
	return NewIndex(records)
}

func checkGrade(status Status, grade catalog.Grade) error {
	switch status {
	case StatusCompleted:
		if grade == "" {
			return fmt.Errorf("%w: completed entries require a grade", ErrInvalidInput)
		}
	case StatusInProgress, StatusPlanned:
		if grade != "" {
			return fmt.Errorf("%w: grade is only valid for completed entries", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return nil
}
