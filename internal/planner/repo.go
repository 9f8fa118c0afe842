package planner

import "context"

// Repo defines persistence operations for plan entries.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	GetByCourse(ctx context.Context, userID, courseCode string) (Record, error)
	ListByUser(ctx context.Context, userID string) ([]Record, error)
	Update(ctx context.Context, rec Record) error
	Delete(ctx context.Context, userID, courseCode string) error
}
