package students

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements ProfilesRepo and ProgramsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the profile for a user.
func (r *PGRepo) Get(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, major, tracks, minors, started_in, updated_at
FROM student_profiles
WHERE user_id = $1
LIMIT 1`
	var profile Profile
	var tracks, minors string
	var startedIn sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Major,
		&tracks,
		&minors,
		&startedIn,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	if err := json.Unmarshal([]byte(tracks), &profile.Tracks); err != nil {
		return Profile{}, fmt.Errorf("tracks parse: %w", err)
	}
	if err := json.Unmarshal([]byte(minors), &profile.Minors); err != nil {
		return Profile{}, fmt.Errorf("minors parse: %w", err)
	}
	if startedIn.Valid {
		profile.StartedIn = startedIn.String
	}
	return profile, nil
}

// Put upserts the profile for a user.
func (r *PGRepo) Put(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO student_profiles (user_id, major, tracks, minors, started_in, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE
SET major = EXCLUDED.major,
    tracks = EXCLUDED.tracks,
    minors = EXCLUDED.minors,
    started_in = EXCLUDED.started_in,
    updated_at = EXCLUDED.updated_at`

	tracks, err := json.Marshal(profile.Tracks)
	if err != nil {
		return err
	}
	minors, err := json.Marshal(profile.Minors)
	if err != nil {
		return err
	}
	var startedIn sql.NullString
	if profile.StartedIn != "" {
		startedIn = sql.NullString{String: profile.StartedIn, Valid: true}
	}
	_, err = r.DB.ExecContext(ctx, query, profile.UserID, profile.Major, string(tracks), string(minors), startedIn, profile.UpdatedAt)
	return err
}

// PGProgramsRepo reads program requirements from Postgres.
type PGProgramsRepo struct {
	DB *sql.DB
}

// Get returns the required course codes for a major.
func (r *PGProgramsRepo) Get(ctx context.Context, major string) (Program, error) {
	const query = `
SELECT major, required_courses
FROM programs
WHERE major = $1
LIMIT 1`
	var program Program
	var required string
	err := r.DB.QueryRowContext(ctx, query, major).Scan(&program.Major, &required)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Program{}, ErrNotFound
		}
		return Program{}, err
	}
	if err := json.Unmarshal([]byte(required), &program.RequiredCourses); err != nil {
		return Program{}, fmt.Errorf("required courses parse: %w", err)
	}
	return program, nil
}

var (
	_ ProfilesRepo = (*PGRepo)(nil)
	_ ProgramsRepo = (*PGProgramsRepo)(nil)
)
