package catalog

import (
	"fmt"
	"sort"
	"time"
)

// Diagnostic flags a single course whose requirement data is unusable.
// Affected courses stay visible in an "unavailable" state instead of
// silently vanishing or silently appearing eligible.
type Diagnostic struct {
	Code  string `json:"code"`
	Issue string `json:"issue"`
}

// Snapshot is an immutable view of the catalog taken at one point in time.
// Refreshes build a new snapshot rather than mutating one in place, so a
// computation in flight never observes partial updates.
type Snapshot struct {
	FetchedAt   time.Time
	courses     []Course
	byCode      map[string]Course
	diagnostics map[string]Diagnostic
}

// NewSnapshot indexes the courses, normalizes join keys and runs the
// integrity check (unknown references, requirement cycles).
func NewSnapshot(courses []Course, fetchedAt time.Time) *Snapshot {
	snap := &Snapshot{
		FetchedAt:   fetchedAt,
		courses:     make([]Course, 0, len(courses)),
		byCode:      make(map[string]Course, len(courses)),
		diagnostics: make(map[string]Diagnostic),
	}
	for _, c := range courses {
		c.Code = NormalizeCode(c.Code)
		if c.Code == "" {
			continue
		}
		if _, dup := snap.byCode[c.Code]; dup {
			continue
		}
		for i, coreq := range c.Corequisites {
			c.Corequisites[i] = NormalizeCode(coreq)
		}
		snap.byCode[c.Code] = c
		snap.courses = append(snap.courses, c)
	}
	sort.Slice(snap.courses, func(i, j int) bool {
		return snap.courses[i].Code < snap.courses[j].Code
	})
	snap.checkIntegrity()
	return snap
}

// Courses returns all courses in ascending code order, including
// unavailable ones.
func (s *Snapshot) Courses() []Course {
	return s.courses
}

// Lookup finds a course by (unnormalized) code.
func (s *Snapshot) Lookup(code string) (Course, bool) {
	c, ok := s.byCode[NormalizeCode(code)]
	return c, ok
}

// Len returns the number of courses in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.courses)
}

// Diagnostic returns the data-integrity diagnostic for a course, if any.
func (s *Snapshot) Diagnostic(code string) (Diagnostic, bool) {
	d, ok := s.diagnostics[NormalizeCode(code)]
	return d, ok
}

// Diagnostics returns all data-integrity diagnostics in code order.
func (s *Snapshot) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, 0, len(s.diagnostics))
	for _, d := range s.diagnostics {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Expired reports whether the snapshot is older than ttl at the given time.
func (s *Snapshot) Expired(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(s.FetchedAt) > ttl
}

const (
	colorUnvisited = 0
	colorInStack   = 1
	colorDone      = 2
)

// checkIntegrity flags courses whose requirements reference unknown codes
// or participate in a reference cycle. A flagged course is a data error for
// that course only, never for the whole batch.
func (s *Snapshot) checkIntegrity() {
	for _, c := range s.courses {
		for _, ref := range References(c.Requirement) {
			if _, ok := s.byCode[ref]; !ok {
				s.flag(c.Code, fmt.Sprintf("requirement references unknown course %s", ref))
			}
		}
	}

	// Only actual cycle members are flagged. A course that merely depends
	// on a cyclic course stays usable: its own leaves still resolve
	// against the student record.
	color := make(map[string]int, len(s.courses))
	onCycle := make(map[string]bool)
	var path []string
	var visit func(code string)
	visit = func(code string) {
		color[code] = colorInStack
		path = append(path, code)
		if c, ok := s.byCode[code]; ok {
			for _, ref := range References(c.Requirement) {
				if _, known := s.byCode[ref]; !known {
					continue
				}
				switch color[ref] {
				case colorUnvisited:
					visit(ref)
				case colorInStack:
					// Back edge: everything on the path from ref down is a cycle.
					for i := len(path) - 1; i >= 0; i-- {
						onCycle[path[i]] = true
						if path[i] == ref {
							break
						}
					}
				}
			}
		}
		path = path[:len(path)-1]
		color[code] = colorDone
	}
	for _, c := range s.courses {
		if color[c.Code] == colorUnvisited {
			visit(c.Code)
		}
	}
	for _, c := range s.courses {
		if onCycle[c.Code] {
			s.flag(c.Code, "cyclic prerequisite reference")
		}
	}
}

func (s *Snapshot) flag(code, issue string) {
	if _, exists := s.diagnostics[code]; exists {
		return
	}
	s.diagnostics[code] = Diagnostic{Code: code, Issue: issue}
}
