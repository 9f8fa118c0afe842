package recommend

import (
	"fmt"
	"strings"

	"planner-backend/internal/catalog"
	"planner-backend/internal/semester"
)

// Weights holds every scoring constant and threshold. The values are
// tuned heuristics, not laws; callers may override them, and everything
// downstream reads them from here rather than from literals.
type Weights struct {
	Eligible             int // fully eligible, no warnings
	EligibleWithWarnings int // eligible but soft-warned
	MissingPrereqPenalty int // per missing prerequisite
	MajorRequirement     int // course in the major's required set
	TrackMatch           int // per distinct matching track, once per track
	Foundation           int // introductory-numbering tier
	EarlyOverloadPenalty int // high difficulty in the first program terms

	HighPriorityMin   int
	MediumPriorityMin int

	HighDifficulty int // difficulty rating at or above this is "high"
	EarlyTermCount int // how many leading program terms count as early

	// CategoryPrecedence picks the final category: first candidate wins.
	CategoryPrecedence []Category
}

// DefaultWeights returns the scoring policy as observed in production.
func DefaultWeights() Weights {
	return Weights{
		Eligible:             30,
		EligibleWithWarnings: 20,
		MissingPrereqPenalty: -5,
		MajorRequirement:     25,
		TrackMatch:           15,
		Foundation:           10,
		EarlyOverloadPenalty: -10,
		HighPriorityMin:      40,
		MediumPriorityMin:    15,
		HighDifficulty:       4,
		EarlyTermCount:       2,
		CategoryPrecedence: []Category{
			CategoryPrereqReady,
			CategoryMajorRequired,
			CategoryFoundation,
			CategoryThreadRelated,
			CategoryOther,
		},
	}
}

// scoreContext carries per-request facts the scorer needs beyond the
// course itself.
type scoreContext struct {
	weights        Weights
	profile        Profile
	requiredSet    map[string]bool
	deptLowestTier map[string]int
	target         semester.Semester
}

func newScoreContext(weights Weights, profile Profile, snap *catalog.Snapshot, target semester.Semester) scoreContext {
	requiredSet := make(map[string]bool, len(profile.RequiredCourses))
	for _, code := range profile.RequiredCourses {
		requiredSet[catalog.NormalizeCode(code)] = true
	}
	deptLowestTier := make(map[string]int)
	for _, course := range snap.Courses() {
		tier := numberTier(course)
		if tier == 0 {
			continue
		}
		if current, ok := deptLowestTier[course.Department]; !ok || tier < current {
			deptLowestTier[course.Department] = tier
		}
	}
	return scoreContext{
		weights:        weights,
		profile:        profile,
		requiredSet:    requiredSet,
		deptLowestTier: deptLowestTier,
		target:         target,
	}
}

// numberTier buckets a course number by its thousands digit, the usual
// curricular-level convention (1xxx intro, 4xxx senior).
func numberTier(course catalog.Course) int {
	num := course.Number()
	if num <= 0 {
		return 0
	}
	for num >= 10 {
		num /= 10
	}
	return num
}

// Score applies every additive adjustment; nothing short-circuits, so the
// adjustments are order-independent.
func Score(ctx scoreContext, course catalog.Course, validation ValidationResult) Recommendation {
	score := 0
	var reasons []string
	candidates := map[Category]bool{}

	if validation.CanAdd {
		candidates[CategoryPrereqReady] = true
		if len(validation.Warnings) == 0 {
			score += ctx.weights.Eligible
			reasons = append(reasons, "all prerequisites met")
		} else {
			score += ctx.weights.EligibleWithWarnings
			reasons = append(reasons, "prerequisites met with warnings")
		}
	}

	if n := len(validation.MissingPrerequisites); n > 0 {
		score += n * ctx.weights.MissingPrereqPenalty
		reasons = append(reasons, fmt.Sprintf("%d missing prerequisite(s)", n))
	}

	if ctx.requiredSet[course.Code] {
		score += ctx.weights.MajorRequirement
		candidates[CategoryMajorRequired] = true
		reasons = append(reasons, fmt.Sprintf("required for the %s major", ctx.profile.Major))
	}

	for _, track := range ctx.profile.Tracks {
		if matchesTrack(course, track) {
			// At most one bonus per track, however many keywords match.
			score += ctx.weights.TrackMatch
			candidates[CategoryThreadRelated] = true
			reasons = append(reasons, fmt.Sprintf("relates to the %s track", track))
		}
	}

	if tier := numberTier(course); tier > 0 && tier == ctx.deptLowestTier[course.Department] {
		score += ctx.weights.Foundation
		candidates[CategoryFoundation] = true
		reasons = append(reasons, "introductory-level course")
	}

	if course.Difficulty >= ctx.weights.HighDifficulty && ctx.isEarlyTerm() {
		score += ctx.weights.EarlyOverloadPenalty
		reasons = append(reasons, "high difficulty early in the program")
	}

	return Recommendation{
		Course:   course,
		Category: pickCategory(ctx.weights.CategoryPrecedence, candidates),
		Priority: priorityFor(ctx.weights, score),
		Score:    score,
		Reasons:  reasons,
	}
}

func (ctx scoreContext) isEarlyTerm() bool {
	if ctx.profile.StartedIn.IsZero() {
		return false
	}
	pos := ctx.target.PositionFrom(ctx.profile.StartedIn)
	return pos >= 0 && pos < ctx.weights.EarlyTermCount
}

// matchesTrack reports whether a course relates to a declared track,
// either via its track tags or a keyword hit in title/description.
func matchesTrack(course catalog.Course, track string) bool {
	needle := strings.ToLower(strings.TrimSpace(track))
	if needle == "" {
		return false
	}
	for _, tag := range course.Tracks {
		if strings.EqualFold(strings.TrimSpace(tag), needle) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(course.Title), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(course.Description), needle)
}

// pickCategory takes the first candidate in precedence order; downstream
// grouping depends on exactly one category per course.
func pickCategory(precedence []Category, candidates map[Category]bool) Category {
	for _, category := range precedence {
		if candidates[category] {
			return category
		}
	}
	return CategoryOther
}

func priorityFor(weights Weights, score int) Priority {
	switch {
	case score >= weights.HighPriorityMin:
		return PriorityHigh
	case score >= weights.MediumPriorityMin:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
