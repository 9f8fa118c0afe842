package catalog

import (
	"context"
	"sync/atomic"
	"time"
)

// Service serves immutable catalog snapshots with copy-on-refresh caching.
// Readers always get a complete snapshot pointer; a concurrent refresh
// swaps in a new one and never mutates a snapshot in place.
type Service struct {
	Repo Repo
	TTL  time.Duration

	now     func() time.Time
	current atomic.Pointer[Snapshot]
}

// NewService constructs a Service. A zero ttl disables expiry.
func NewService(repo Repo, ttl time.Duration) *Service {
	return &Service{Repo: repo, TTL: ttl, now: time.Now}
}

// Snapshot returns the cached snapshot, refreshing it first when missing
// or expired.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := s.current.Load(); snap != nil && !snap.Expired(s.TTL, s.clock()()) {
		return snap, nil
	}
	return s.Refresh(ctx)
}

// Refresh loads the catalog from the repo and swaps in a fresh snapshot.
func (s *Service) Refresh(ctx context.Context) (*Snapshot, error) {
	courses, err := s.Repo.ListAll(ctx)
	if err != nil {
		// Serve the stale snapshot, if any, rather than failing readers.
		if snap := s.current.Load(); snap != nil {
			return snap, nil
		}
		return nil, err
	}
	snap := NewSnapshot(courses, s.clock()())
	s.current.Store(snap)
	return snap, nil
}

// Seed replaces the stored catalog and refreshes the snapshot.
func (s *Service) Seed(ctx context.Context, courses []Course) (*Snapshot, error) {
	if err := s.Repo.ReplaceAll(ctx, courses); err != nil {
		return nil, err
	}
	return s.Refresh(ctx)
}

func (s *Service) clock() func() time.Time {
	if s.now != nil {
		return s.now
	}
	return time.Now
}
