package recommend

import (
	"fmt"
	"strings"

	"planner-backend/internal/catalog"
	"planner-backend/internal/planner"
	"planner-backend/internal/semester"
)

// projectionDepthLimit bounds the prerequisite projection recursion as a
// second line of defense behind the call-stack cycle guard.
const projectionDepthLimit = 25

// suggestionWindow is how many semesters past the projected completion
// are scanned for offered terms.
const suggestionWindow = 6

// Validator checks whether courses are eligible for a target semester
// against one catalog snapshot and one plan index. It is stateless across
// calls: validating the same course twice returns identical results.
type Validator struct {
	Snapshot *catalog.Snapshot
	Index    planner.Index
}

// Validate produces the eligibility result for one (course, semester)
// pair. It returns an *IntegrityError when the course's requirement data
// is unusable; that is fatal for this course only.
func (v *Validator) Validate(course catalog.Course, target semester.Semester) (ValidationResult, error) {
	if diag, flagged := v.Snapshot.Diagnostic(course.Code); flagged {
		return ValidationResult{}, &IntegrityError{Code: diag.Code, Issue: diag.Issue}
	}

	eval := Evaluate(course.Requirement, v.Index)

	result := ValidationResult{CanAdd: eval.Satisfied}
	if !eval.Satisfied {
		result.MissingPrerequisites = eval.UnmetLeaves
	}

	for _, coreq := range course.Corequisites {
		if !v.Index.InSemester(coreq, target) {
			result.UnmetCorequisites = append(result.UnmetCorequisites, coreq)
		}
	}
	if len(result.UnmetCorequisites) > 0 {
		// Unmet corequisites block on their own, even with met prerequisites.
		result.CanAdd = false
	}

	if !course.OfferedIn(target.Term) {
		result.Warnings = append(result.Warnings, offeringWarning(course, target))
	}
	result.Warnings = append(result.Warnings, v.gradeWarnings(course)...)

	if len(result.MissingPrerequisites) > 0 {
		result.SuggestedSemesters = v.suggestSemesters(course, result.MissingPrerequisites, target)
	}

	return result, nil
}

func offeringWarning(course catalog.Course, target semester.Semester) string {
	terms := make([]string, 0, len(course.Offerings))
	for _, t := range course.Offerings {
		terms = append(terms, string(t))
	}
	return fmt.Sprintf("%s is not typically offered in %s (offered: %s)",
		course.Code, target.Term, strings.Join(terms, ", "))
}

// gradeWarnings flags contributing prerequisites completed below the
// typical recommendation of C. Soft only; never blocks. Only leaves the
// expression's satisfaction actually rests on are considered, so a weak
// grade in an unused Or alternative never taints an eligible course.
func (v *Validator) gradeWarnings(course catalog.Course) []string {
	leaves, _ := v.contributingLeaves(course.Requirement)
	var out []string
	for _, ref := range dedupeCodes(leaves) {
		if !v.lowGrade(ref) {
			continue
		}
		rec, _ := v.Index.Lookup(ref)
		out = append(out, fmt.Sprintf("%s was completed with a %s; a C or better is typically recommended", ref, rec.Grade))
	}
	return out
}

// contributingLeaves returns the references an expression's satisfaction
// rests on. A satisfied Or contributes exactly one branch, and the branch
// carrying the fewest low grades is preferred; completing an extra weak
// alternative can therefore never introduce a warning where a clean branch
// already satisfies. An unsatisfied And still contributes its satisfied
// children so advisory warnings accompany the missing-prerequisite list.
func (v *Validator) contributingLeaves(req catalog.Requirement) ([]string, bool) {
	switch node := req.(type) {
	case nil, catalog.NoneReq:
		return nil, true
	case catalog.CourseReq:
		if v.Index.CompletedWith(node.Code, node.MinGrade) {
			return []string{catalog.NormalizeCode(node.Code)}, true
		}
		return nil, false
	case catalog.AllOf:
		all := true
		var leaves []string
		for _, child := range node.Children {
			childLeaves, ok := v.contributingLeaves(child)
			if ok {
				leaves = append(leaves, childLeaves...)
			} else {
				all = false
			}
		}
		return leaves, all
	case catalog.AnyOf:
		if len(node.Children) == 0 {
			return nil, true
		}
		var best []string
		bestLow := -1
		for _, child := range node.Children {
			childLeaves, ok := v.contributingLeaves(child)
			if !ok {
				continue
			}
			low := 0
			for _, ref := range childLeaves {
				if v.lowGrade(ref) {
					low++
				}
			}
			if bestLow < 0 || low < bestLow {
				best, bestLow = childLeaves, low
			}
		}
		if bestLow < 0 {
			return nil, false
		}
		return best, true
	default:
		return nil, false
	}
}

func (v *Validator) lowGrade(ref string) bool {
	rec, ok := v.Index.Lookup(ref)
	if !ok || rec.Status != planner.StatusCompleted {
		return false
	}
	return rec.Grade != "" && !rec.Grade.AtLeast(catalog.GradeC)
}

// suggestSemesters projects when the missing prerequisites could all be
// complete and suggests the next one or two offered semesters after that.
// This is an advisory projection, not a guarantee.
func (v *Validator) suggestSemesters(course catalog.Course, missing []string, target semester.Semester) []semester.Semester {
	completeBy := target
	for _, code := range missing {
		done, ok := v.projectCompletion(code, target, map[string]bool{}, 0)
		if !ok {
			return nil
		}
		if completeBy.Before(done) {
			completeBy = done
		}
	}

	var out []semester.Semester
	candidate := completeBy.Next()
	for i := 0; i < suggestionWindow && len(out) < 2; i++ {
		if course.OfferedIn(candidate.Term) {
			out = append(out, candidate)
		}
		candidate = candidate.Next()
	}
	return out
}

// projectCompletion estimates the earliest semester in which the course
// could be completed, starting no earlier than notBefore. The stack set
// guards against requirement cycles that slipped past the snapshot
// integrity check.
func (v *Validator) projectCompletion(code string, notBefore semester.Semester, stack map[string]bool, depth int) (semester.Semester, bool) {
	code = catalog.NormalizeCode(code)
	if stack[code] || depth > projectionDepthLimit {
		return semester.Semester{}, false
	}

	if rec, ok := v.Index.Lookup(code); ok {
		switch rec.Status {
		case planner.StatusCompleted:
			return notBefore, true
		case planner.StatusInProgress, planner.StatusPlanned:
			if notBefore.Before(rec.Semester) {
				return rec.Semester, true
			}
			return notBefore, true
		}
	}

	course, ok := v.Snapshot.Lookup(code)
	if !ok {
		return semester.Semester{}, false
	}

	stack[code] = true
	defer delete(stack, code)

	start := notBefore
	eval := Evaluate(course.Requirement, v.Index)
	for _, prereq := range eval.UnmetLeaves {
		done, ok := v.projectCompletion(prereq, notBefore, stack, depth+1)
		if !ok {
			return semester.Semester{}, false
		}
		if earliest := done.Next(); start.Before(earliest) {
			start = earliest
		}
	}

	for i := 0; i < suggestionWindow; i++ {
		if course.OfferedIn(start.Term) {
			return start, true
		}
		start = start.Next()
	}
	return semester.Semester{}, false
}
