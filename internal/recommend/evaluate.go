package recommend

import (
	"planner-backend/internal/catalog"
	"planner-backend/internal/planner"
)

// EvalResult reports whether a requirement expression is satisfied and,
// when it is not, every unmet course reference.
type EvalResult struct {
	Satisfied   bool
	UnmetLeaves []string
}

// Evaluate walks a requirement expression against the student's course
// status index.
//
// For an unsatisfied Or the unmet leaves are the union across all
// branches, so callers can show every alternative rather than a single
// arbitrary branch. Unmet leaves keep first-appearance order from a
// left-to-right traversal.
func Evaluate(req catalog.Requirement, idx planner.Index) EvalResult {
	satisfied, unmet := eval(req, idx)
	return EvalResult{Satisfied: satisfied, UnmetLeaves: dedupeCodes(unmet)}
}

func eval(req catalog.Requirement, idx planner.Index) (bool, []string) {
	switch v := req.(type) {
	case nil, catalog.NoneReq:
		return true, nil
	case catalog.CourseReq:
		if idx.CompletedWith(v.Code, v.MinGrade) {
			return true, nil
		}
		return false, []string{catalog.NormalizeCode(v.Code)}
	case catalog.AllOf:
		satisfied := true
		var unmet []string
		for _, child := range v.Children {
			ok, childUnmet := eval(child, idx)
			if !ok {
				satisfied = false
				unmet = append(unmet, childUnmet...)
			}
		}
		return satisfied, unmet
	case catalog.AnyOf:
		var unmet []string
		for _, child := range v.Children {
			ok, childUnmet := eval(child, idx)
			if ok {
				return true, nil
			}
			unmet = append(unmet, childUnmet...)
		}
		if len(v.Children) == 0 {
			return true, nil
		}
		return false, unmet
	default:
		// The union is closed; an unknown node never satisfies.
		return false, nil
	}
}

func dedupeCodes(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
