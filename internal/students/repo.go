package students

import "context"

// ProfilesRepo defines persistence operations for student profiles.
type ProfilesRepo interface {
	Get(ctx context.Context, userID string) (Profile, error)
	Put(ctx context.Context, profile Profile) error
}

// ProgramsRepo reads degree-program requirements.
type ProgramsRepo interface {
	Get(ctx context.Context, major string) (Program, error)
}
