package students

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"planner-backend/internal/semester"
)

// Service contains business logic for student profiles.
type Service struct {
	Profiles ProfilesRepo
	Programs ProgramsRepo
}

// Get returns the profile for a user. A student who never declared
// anything gets an empty profile rather than an error.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if userID == "" {
		return Profile{}, errors.New("userID is required")
	}
	profile, err := s.Profiles.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return Profile{UserID: userID}, nil
	}
	return profile, err
}

// Put validates and stores the profile for a user.
func (s *Service) Put(ctx context.Context, profile Profile) (Profile, error) {
	if profile.UserID == "" {
		return Profile{}, errors.New("userID is required")
	}
	profile.Major = strings.TrimSpace(profile.Major)
	profile.Tracks = trimAll(profile.Tracks)
	profile.Minors = trimAll(profile.Minors)
	if profile.StartedIn != "" {
		sem, err := semester.Parse(profile.StartedIn)
		if err != nil {
			return Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		profile.StartedIn = sem.String()
	}
	profile.UpdatedAt = time.Now().UTC()
	if err := s.Profiles.Put(ctx, profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// RequiredCourses returns the required course codes for the profile's
// major, or nil when the major is undeclared or unknown.
func (s *Service) RequiredCourses(ctx context.Context, profile Profile) ([]string, error) {
	if profile.Major == "" || s.Programs == nil {
		return nil, nil
	}
	program, err := s.Programs.Get(ctx, profile.Major)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return program.RequiredCourses, nil
}

func trimAll(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
