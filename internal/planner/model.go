package planner

import (
	"fmt"
	"strings"
	"time"

	"planner-backend/internal/catalog"
	"planner-backend/internal/semester"
)

// Status is the lifecycle state of a course on a student's plan.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusPlanned    Status = "planned"
)

// ParseStatus normalizes a plan entry status.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "completed":
		return StatusCompleted, nil
	case "in-progress", "in_progress":
		return StatusInProgress, nil
	case "planned":
		return StatusPlanned, nil
	default:
		return "", fmt.Errorf("unknown status %q", raw)
	}
}

// Record is one course on a student's plan. A course appears at most once
// per student; duplicates are a caller error.
type Record struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	CourseCode string            `json:"courseCode"`
	Status     Status            `json:"status"`
	Grade      catalog.Grade     `json:"grade,omitempty"` // set only when completed
	Semester   semester.Semester `json:"semester"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Index is a point-in-time view of a student's plan keyed by normalized
// course code. The recommendation core only reads it.
type Index struct {
	byCode map[string]Record
}

// NewIndex builds an Index, rejecting duplicate course codes.
func NewIndex(records []Record) (Index, error) {
	byCode := make(map[string]Record, len(records))
	for _, rec := range records {
		code := catalog.NormalizeCode(rec.CourseCode)
		if code == "" {
			return Index{}, fmt.Errorf("%w: empty course code", ErrInvalidInput)
		}
		if _, dup := byCode[code]; dup {
			return Index{}, fmt.Errorf("%w: %s", ErrDuplicateCourse, code)
		}
		rec.CourseCode = code
		byCode[code] = rec
	}
	return Index{byCode: byCode}, nil
}

// Lookup returns the record for a course code, if present.
func (idx Index) Lookup(code string) (Record, bool) {
	rec, ok := idx.byCode[catalog.NormalizeCode(code)]
	return rec, ok
}

// Has reports whether the plan holds the course in any status.
func (idx Index) Has(code string) bool {
	_, ok := idx.Lookup(code)
	return ok
}

// CompletedWith reports whether the course is completed and, when floor is
// non-empty, whether the recorded grade meets it.
func (idx Index) CompletedWith(code string, floor catalog.Grade) bool {
	rec, ok := idx.Lookup(code)
	if !ok || rec.Status != StatusCompleted {
		return false
	}
	if floor == "" {
		return true
	}
	return rec.Grade.AtLeast(floor)
}

// InSemester reports whether the course sits on the plan in the given
// semester with any of the accepted statuses.
func (idx Index) InSemester(code string, sem semester.Semester) bool {
	rec, ok := idx.Lookup(code)
	if !ok {
		return false
	}
	if rec.Status == StatusCompleted {
		return true
	}
	return rec.Semester.Equal(sem)
}

// EarliestSemester returns the earliest semester across all records, used
// to approximate the student's program start.
func (idx Index) EarliestSemester() (semester.Semester, bool) {
	var earliest semester.Semester
	found := false
	for _, rec := range idx.byCode {
		if rec.Semester.IsZero() {
			continue
		}
		if !found || rec.Semester.Before(earliest) {
			earliest = rec.Semester
			found = true
		}
	}
	return earliest, found
}
