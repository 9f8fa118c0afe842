package recommend

import (
	"fmt"

	"planner-backend/internal/catalog"
	"planner-backend/internal/semester"
)

// Category groups ranked suggestions for presentation.
type Category string

const (
	CategoryPrereqReady   Category = "prerequisite-ready"
	CategoryMajorRequired Category = "major-requirement"
	CategoryFoundation    Category = "foundation"
	CategoryThreadRelated Category = "thread-related"
	CategoryOther         Category = "other"
)

// Priority buckets a recommendation by its final score.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Profile is the student's declared academic identity as seen by the
// recommendation core, with the major's required set already resolved.
type Profile struct {
	Major           string
	Tracks          []string
	Minors          []string
	RequiredCourses []string
	StartedIn       semester.Semester
}

// ValidationResult is the outcome of eligibility checking for one
// (course, target semester) pair. Purely derived, recomputed per query.
type ValidationResult struct {
	CanAdd               bool                `json:"canAdd"`
	MissingPrerequisites []string            `json:"missingPrerequisites"`
	UnmetCorequisites    []string            `json:"unmetCorequisites"`
	Warnings             []string            `json:"warnings"`
	SuggestedSemesters   []semester.Semester `json:"suggestedSemesters"`
}

// Recommendation is one ranked suggestion. Constructed fresh per request
// and never mutated after creation.
type Recommendation struct {
	Course   catalog.Course `json:"course"`
	Category Category       `json:"category"`
	Priority Priority       `json:"priority"`
	Score    int            `json:"score"`
	Reasons  []string       `json:"reasons"`
}

// IntegrityError marks a course whose requirement data cannot be
// evaluated (cycle, unknown reference). It is fatal for that course only.
type IntegrityError struct {
	Code  string
	Issue string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("course %s: %s", e.Code, e.Issue)
}
