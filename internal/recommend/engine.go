package recommend

import (
	"errors"
	"sort"

	"planner-backend/internal/catalog"
	"planner-backend/internal/planner"
	"planner-backend/internal/semester"
)

// DefaultMaxCourses caps the ranked list when the caller does not ask
// for a specific size.
const DefaultMaxCourses = 20

// Options controls one recommendation run.
type Options struct {
	MaxCourses int
	Target     semester.Semester
}

// Result is one deterministic recommendation run: the capped ranked list,
// the full ranked list for category filtering, and the courses excluded
// by data-integrity errors.
type Result struct {
	Recommendations []Recommendation     `json:"recommendations"`
	Unavailable     []catalog.Diagnostic `json:"unavailable,omitempty"`

	full []Recommendation
}

// ByCategory filters the already-sorted full list, so scores and relative
// order are identical across views; it never re-scores.
func (r Result) ByCategory(category Category, limit int) []Recommendation {
	out := make([]Recommendation, 0, limit)
	for _, rec := range r.full {
		if rec.Category != category {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Engine ranks catalog courses for one student. All inputs are read-only
// snapshots, so concurrent runs need no locking.
type Engine struct {
	Weights Weights
}

// NewEngine constructs an Engine with the default scoring policy.
func NewEngine() *Engine {
	return &Engine{Weights: DefaultWeights()}
}

// Generate validates and scores every candidate catalog course and
// returns the ranked result. Identical inputs always produce identical
// ordered output.
func (e *Engine) Generate(snap *catalog.Snapshot, idx planner.Index, profile Profile, opts Options) Result {
	validator := &Validator{Snapshot: snap, Index: idx}
	scoreCtx := newScoreContext(e.Weights, profile, snap, opts.Target)

	var ranked []Recommendation
	var unavailable []catalog.Diagnostic
	for _, course := range snap.Courses() {
		if rec, on := idx.Lookup(course.Code); on {
			// Never recommend retaking without an explicit request.
			if rec.Status == planner.StatusCompleted || rec.Status == planner.StatusInProgress {
				continue
			}
		}

		validation, err := validator.Validate(course, opts.Target)
		if err != nil {
			var integrity *IntegrityError
			if errors.As(err, &integrity) {
				unavailable = append(unavailable, catalog.Diagnostic{Code: integrity.Code, Issue: integrity.Issue})
				continue
			}
			continue
		}
		ranked = append(ranked, Score(scoreCtx, course, validation))
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Course.Code < ranked[j].Course.Code
	})
	sort.Slice(unavailable, func(i, j int) bool { return unavailable[i].Code < unavailable[j].Code })

	max := opts.MaxCourses
	if max <= 0 {
		max = DefaultMaxCourses
	}
	capped := ranked
	if len(capped) > max {
		capped = capped[:max]
	}

	return Result{
		Recommendations: capped,
		Unavailable:     unavailable,
		full:            ranked,
	}
}
