package recommend

import (
	"reflect"
	"testing"

	"planner-backend/internal/catalog"
	"planner-backend/internal/planner"
)

func mustIndex(t *testing.T, records ...planner.Record) planner.Index {
	t.Helper()
	idx, err := planner.NewIndex(records)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return idx
}

func completedRec(code string, grade catalog.Grade) planner.Record {
	return planner.Record{CourseCode: code, Status: planner.StatusCompleted, Grade: grade}
}

func TestEvaluateNoneAlwaysSatisfied(t *testing.T) {
	idx := mustIndex(t)
	for _, req := range []catalog.Requirement{nil, catalog.NoneReq{}} {
		result := Evaluate(req, idx)
		if !result.Satisfied {
			t.Fatalf("expected %T satisfied", req)
		}
		if len(result.UnmetLeaves) != 0 {
			t.Fatalf("expected no unmet leaves, got %v", result.UnmetLeaves)
		}
	}
}

func TestEvaluateCourseLeaf(t *testing.T) {
	idx := mustIndex(t, completedRec("CS 1301", catalog.GradeB))

	if r := Evaluate(catalog.CourseReq{Code: "CS 1301"}, idx); !r.Satisfied {
		t.Fatalf("expected completed course to satisfy")
	}
	r := Evaluate(catalog.CourseReq{Code: "CS 1331"}, idx)
	if r.Satisfied {
		t.Fatalf("expected missing course to fail")
	}
	if !reflect.DeepEqual(r.UnmetLeaves, []string{"CS 1331"}) {
		t.Fatalf("expected unmet [CS 1331], got %v", r.UnmetLeaves)
	}
}

func TestEvaluateGradeFloor(t *testing.T) {
	idx := mustIndex(t, completedRec("MATH 1551", catalog.GradeD))

	if r := Evaluate(catalog.CourseReq{Code: "MATH 1551"}, idx); !r.Satisfied {
		t.Fatalf("expected completion without floor to satisfy")
	}
	r := Evaluate(catalog.CourseReq{Code: "MATH 1551", MinGrade: catalog.GradeC}, idx)
	if r.Satisfied {
		t.Fatalf("expected D below C floor to fail")
	}
	if !reflect.DeepEqual(r.UnmetLeaves, []string{"MATH 1551"}) {
		t.Fatalf("expected the floored course as unmet, got %v", r.UnmetLeaves)
	}
}

func TestEvaluateAllOfCollectsEveryUnmet(t *testing.T) {
	idx := mustIndex(t, completedRec("CS 1301", catalog.GradeA))

	req := catalog.AllOf{Children: []catalog.Requirement{
		catalog.CourseReq{Code: "CS 1301"},
		catalog.CourseReq{Code: "CS 1331"},
		catalog.CourseReq{Code: "MATH 1554"},
	}}
	r := Evaluate(req, idx)
	if r.Satisfied {
		t.Fatalf("expected failure with two unmet children")
	}
	if !reflect.DeepEqual(r.UnmetLeaves, []string{"CS 1331", "MATH 1554"}) {
		t.Fatalf("expected both unmet children in order, got %v", r.UnmetLeaves)
	}
}

func TestEvaluateAnyOfUnionsUnmetBranches(t *testing.T) {
	idx := mustIndex(t)

	req := catalog.AnyOf{Children: []catalog.Requirement{
		catalog.CourseReq{Code: "MATH 1551"},
		catalog.CourseReq{Code: "MATH 1552"},
	}}
	r := Evaluate(req, idx)
	if r.Satisfied {
		t.Fatalf("expected no branch to satisfy")
	}
	if !reflect.DeepEqual(r.UnmetLeaves, []string{"MATH 1551", "MATH 1552"}) {
		t.Fatalf("expected union of alternatives, got %v", r.UnmetLeaves)
	}
}

func TestEvaluateAnyOfOneBranchSuffices(t *testing.T) {
	idx := mustIndex(t, completedRec("MATH 1552", catalog.GradeC))

	req := catalog.AnyOf{Children: []catalog.Requirement{
		catalog.CourseReq{Code: "MATH 1551"},
		catalog.CourseReq{Code: "MATH 1552"},
	}}
	if r := Evaluate(req, idx); !r.Satisfied {
		t.Fatalf("expected satisfied via second branch")
	}
}

func TestEvaluateEmptyAnyOfSatisfied(t *testing.T) {
	idx := mustIndex(t)
	if r := Evaluate(catalog.AnyOf{}, idx); !r.Satisfied {
		t.Fatalf("expected empty or-group to satisfy")
	}
}

func TestEvaluateNestedExpression(t *testing.T) {
	idx := mustIndex(t,
		completedRec("CS 1331", catalog.GradeB),
		completedRec("MATH 1551", catalog.GradeC),
	)

	req := catalog.AllOf{Children: []catalog.Requirement{
		catalog.CourseReq{Code: "CS 1331", MinGrade: catalog.GradeC},
		catalog.AnyOf{Children: []catalog.Requirement{
			catalog.CourseReq{Code: "MATH 1551"},
			catalog.CourseReq{Code: "MATH 1552"},
		}},
	}}
	if r := Evaluate(req, idx); !r.Satisfied {
		t.Fatalf("expected nested expression to satisfy")
	}
}

func TestEvaluateDeduplicatesUnmetLeaves(t *testing.T) {
	idx := mustIndex(t)

	req := catalog.AllOf{Children: []catalog.Requirement{
		catalog.CourseReq{Code: "CS 2110"},
		catalog.AnyOf{Children: []catalog.Requirement{
			catalog.CourseReq{Code: "CS 2110"},
			catalog.CourseReq{Code: "CS 2200"},
		}},
	}}
	r := Evaluate(req, idx)
	if !reflect.DeepEqual(r.UnmetLeaves, []string{"CS 2110", "CS 2200"}) {
		t.Fatalf("expected deduplicated leaves, got %v", r.UnmetLeaves)
	}
}
