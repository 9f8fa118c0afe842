package catalog

import (
	"fmt"
	"strings"
)

// Grade is a letter grade on the fixed ordinal scale A > B > C > D > F.
// Withdrawals and incompletes are tracked but never satisfy a grade floor.
type Grade string

const (
	GradeA          Grade = "A"
	GradeB          Grade = "B"
	GradeC          Grade = "C"
	GradeD          Grade = "D"
	GradeF          Grade = "F"
	GradeWithdrawn  Grade = "W"
	GradeIncomplete Grade = "I"
)

// ParseGrade normalizes a letter grade.
func ParseGrade(raw string) (Grade, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "A":
		return GradeA, nil
	case "B":
		return GradeB, nil
	case "C":
		return GradeC, nil
	case "D":
		return GradeD, nil
	case "F":
		return GradeF, nil
	case "W":
		return GradeWithdrawn, nil
	case "I":
		return GradeIncomplete, nil
	default:
		return "", fmt.Errorf("unknown grade %q", raw)
	}
}

func gradeRank(g Grade) int {
	switch g {
	case GradeA:
		return 4
	case GradeB:
		return 3
	case GradeC:
		return 2
	case GradeD:
		return 1
	case GradeF:
		return 0
	default:
		return -1
	}
}

// AtLeast reports whether g meets the floor grade. W and I never do.
func (g Grade) AtLeast(floor Grade) bool {
	got := gradeRank(g)
	want := gradeRank(floor)
	if got < 0 || want < 0 {
		return false
	}
	return got >= want
}
