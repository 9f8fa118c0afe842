package students

import "time"

// Profile is a student's declared academic identity: major, optional
// specialization tracks (threads) and minors.
type Profile struct {
	UserID    string    `json:"userId"`
	Major     string    `json:"major"`
	Tracks    []string  `json:"tracks,omitempty"`
	Minors    []string  `json:"minors,omitempty"`
	StartedIn string    `json:"startedIn,omitempty"` // first program semester, e.g. fall-2025
	UpdatedAt time.Time `json:"updatedAt"`
}

// Program maps a major identifier to its required course codes. Owned by
// the external degree-program catalog; read-only here.
type Program struct {
	Major           string   `json:"major"`
	RequiredCourses []string `json:"requiredCourses"`
}
