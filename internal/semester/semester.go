package semester

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is an academic term within a year.
type Term string

const (
	TermSpring Term = "spring"
	TermSummer Term = "summer"
	TermFall   Term = "fall"
)

// ParseTerm normalizes a term name.
func ParseTerm(raw string) (Term, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "spring", "sp":
		return TermSpring, nil
	case "summer", "su":
		return TermSummer, nil
	case "fall", "autumn", "fa":
		return TermFall, nil
	default:
		return "", fmt.Errorf("unknown term %q", raw)
	}
}

func termOrder(t Term) int {
	switch t {
	case TermSpring:
		return 0
	case TermSummer:
		return 1
	case TermFall:
		return 2
	default:
		return -1
	}
}

// Semester identifies one academic term, e.g. fall-2026.
type Semester struct {
	Term Term
	Year int
}

// Parse reads a "<term>-<year>" identifier, case-insensitively.
func Parse(raw string) (Semester, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), "-", 2)
	if len(parts) != 2 {
		return Semester{}, fmt.Errorf("invalid semester %q, want <term>-<year>", raw)
	}
	term, err := ParseTerm(parts[0])
	if err != nil {
		return Semester{}, err
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || year < 1900 || year > 3000 {
		return Semester{}, fmt.Errorf("invalid semester year %q", parts[1])
	}
	return Semester{Term: term, Year: year}, nil
}

// String renders the canonical "<term>-<year>" form.
func (s Semester) String() string {
	return fmt.Sprintf("%s-%d", s.Term, s.Year)
}

// IsZero reports whether s is the zero value.
func (s Semester) IsZero() bool {
	return s.Term == "" && s.Year == 0
}

// Before reports whether s precedes other chronologically.
func (s Semester) Before(other Semester) bool {
	if s.Year != other.Year {
		return s.Year < other.Year
	}
	return termOrder(s.Term) < termOrder(other.Term)
}

// Equal reports whether two semesters identify the same term.
func (s Semester) Equal(other Semester) bool {
	return s.Term == other.Term && s.Year == other.Year
}

// Next returns the semester immediately following s.
func (s Semester) Next() Semester {
	switch s.Term {
	case TermSpring:
		return Semester{Term: TermSummer, Year: s.Year}
	case TermSummer:
		return Semester{Term: TermFall, Year: s.Year}
	default:
		return Semester{Term: TermSpring, Year: s.Year + 1}
	}
}

// PositionFrom counts how many terms separate s from the program start.
// Returns 0 when s is the start itself, and -1 when s precedes the start
// or either value is zero.
func (s Semester) PositionFrom(start Semester) int {
	if s.IsZero() || start.IsZero() || s.Before(start) {
		return -1
	}
	pos := 0
	cur := start
	for !cur.Equal(s) {
		cur = cur.Next()
		pos++
		if pos > 300 {
			return -1
		}
	}
	return pos
}

// MarshalText implements encoding.TextMarshaler.
func (s Semester) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Semester) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
