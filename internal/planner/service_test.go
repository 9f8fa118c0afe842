package planner

import (
	"context"
	"errors"
	"testing"

	"planner-backend/internal/catalog"
	"planner-backend/internal/semester"
)

func fall2026(t *testing.T) semester.Semester {
	t.Helper()
	sem, err := semester.Parse("fall-2026")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return sem
}

func TestServiceAddRejectsDuplicates(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()
	sem := fall2026(t)

	if _, err := svc.Add(ctx, "u1", "cs 1301", StatusPlanned, "", sem); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err := svc.Add(ctx, "u1", "CS  1301", StatusPlanned, "", sem)
	if !errors.Is(err, ErrDuplicateCourse) {
		t.Fatalf("expected ErrDuplicateCourse, got %v", err)
	}
}

func TestServiceGradeRules(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()
	sem := fall2026(t)

	if _, err := svc.Add(ctx, "u1", "CS 1301", StatusCompleted, "", sem); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("completed without grade: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "CS 1301", StatusPlanned, catalog.GradeA, sem); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("planned with grade: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Add(ctx, "u1", "CS 1301", StatusCompleted, catalog.GradeB, sem); err != nil {
		t.Fatalf("Add completed: %v", err)
	}
}

func TestServiceUpdateAndRemove(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()
	sem := fall2026(t)

	if _, err := svc.Add(ctx, "u1", "CS 1301", StatusInProgress, "", sem); err != nil {
		t.Fatalf("Add: %v", err)
	}
	rec, err := svc.Update(ctx, "u1", "CS 1301", StatusCompleted, catalog.GradeA, semester.Semester{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Status != StatusCompleted || rec.Grade != catalog.GradeA {
		t.Fatalf("unexpected record %+v", rec)
	}
	if !rec.Semester.Equal(sem) {
		t.Fatalf("zero semester in update must keep existing semester")
	}

	if err := svc.Remove(ctx, "u1", "CS 1301"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := svc.Remove(ctx, "u1", "CS 1301"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewIndexRejectsDuplicates(t *testing.T) {
	_, err := NewIndex([]Record{
		{CourseCode: "CS 1301", Status: StatusCompleted, Grade: catalog.GradeA},
		{CourseCode: "cs 1301", Status: StatusPlanned},
	})
	if !errors.Is(err, ErrDuplicateCourse) {
		t.Fatalf("expected ErrDuplicateCourse, got %v", err)
	}
}

func TestIndexCompletedWith(t *testing.T) {
	idx, err := NewIndex([]Record{
		{CourseCode: "CS 1301", Status: StatusCompleted, Grade: catalog.GradeA},
		{CourseCode: "MATH 1551", Status: StatusCompleted, Grade: catalog.GradeD},
		{CourseCode: "CS 1331", Status: StatusInProgress},
	})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	if !idx.CompletedWith("cs 1301", "") {
		t.Fatalf("completed course should satisfy no-floor check")
	}
	if !idx.CompletedWith("CS 1301", catalog.GradeC) {
		t.Fatalf("grade A should satisfy floor C")
	}
	if idx.CompletedWith("MATH 1551", catalog.GradeC) {
		t.Fatalf("grade D must not satisfy floor C")
	}
	if idx.CompletedWith("CS 1331", "") {
		t.Fatalf("in-progress course must not count as completed")
	}
	if idx.CompletedWith("CS 9999", "") {
		t.Fatalf("unknown course must not count as completed")
	}
}

func TestIndexInSemester(t *testing.T) {
	fall := semester.Semester{Term: semester.TermFall, Year: 2026}
	spring := semester.Semester{Term: semester.TermSpring, Year: 2026}

	idx, err := NewIndex([]Record{
		{CourseCode: "CS 2110", Status: StatusPlanned, Semester: fall},
		{CourseCode: "CS 1331", Status: StatusCompleted, Grade: catalog.GradeB, Semester: spring},
	})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	if !idx.InSemester("CS 2110", fall) {
		t.Fatalf("planned entry in target semester should match")
	}
	if idx.InSemester("CS 2110", spring) {
		t.Fatalf("planned entry in another semester must not match")
	}
	if !idx.InSemester("CS 1331", fall) {
		t.Fatalf("completed entry matches any target semester")
	}
}

func TestIndexEarliestSemester(t *testing.T) {
	fall25 := semester.Semester{Term: semester.TermFall, Year: 2025}
	spring26 := semester.Semester{Term: semester.TermSpring, Year: 2026}

	idx, err := NewIndex([]Record{
		{CourseCode: "CS 1331", Status: StatusPlanned, Semester: spring26},
		{CourseCode: "CS 1301", Status: StatusCompleted, Grade: catalog.GradeA, Semester: fall25},
	})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	earliest, ok := idx.EarliestSemester()
	if !ok || !earliest.Equal(fall25) {
		t.Fatalf("EarliestSemester = %v %v, want fall-2025", earliest, ok)
	}

	empty, _ := NewIndex(nil)
	if _, ok := empty.EarliestSemester(); ok {
		t.Fatalf("empty index has no earliest semester")
	}
}
