package catalog

import (
	"strings"

	"planner-backend/internal/semester"
)

// NormalizeCode canonicalizes a course code for use as a map key:
// trimmed, inner whitespace collapsed, uppercased.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), " "))
}

// Course is one catalog entry. Immutable once loaded; the engine only ever
// holds a read-only snapshot reference.
type Course struct {
	Code          string          `json:"code"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Credits       int             `json:"credits"`
	Department    string          `json:"department"`
	College       string          `json:"college,omitempty"`
	Difficulty    int             `json:"difficulty"`
	Offerings     []semester.Term `json:"offerings"`
	Tracks        []string        `json:"tracks,omitempty"`
	Requirement   Requirement     `json:"-"`
	Corequisites  []string        `json:"corequisites,omitempty"`
}

// OfferedIn reports whether the course is offered in the given term.
// An empty offerings list means the offering pattern is unknown and the
// course is treated as offered every term.
func (c Course) OfferedIn(term semester.Term) bool {
	if len(c.Offerings) == 0 {
		return true
	}
	for _, t := range c.Offerings {
		if t == term {
			return true
		}
	}
	return false
}

// Number extracts the numeric part of the course code, e.g. 1301 from
// "CS 1301". Returns 0 when no digits are present.
func (c Course) Number() int {
	num := 0
	seen := false
	for _, r := range c.Code {
		if r >= '0' && r <= '9' {
			num = num*10 + int(r-'0')
			seen = true
		} else if seen {
			break
		}
	}
	return num
}
