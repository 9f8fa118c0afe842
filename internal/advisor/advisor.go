package advisor

import (
	"context"
	"errors"
)

// Client abstracts the external advisory service used to re-rank and
// annotate recommendation shortlists.
type Client interface {
	Rerank(ctx context.Context, input RerankInput) ([]Suggestion, error)
}

// RerankInput captures the inputs the advisory service needs.
type RerankInput struct {
	Major      string
	Tracks     []string
	Semester   string
	Candidates []Candidate
}

// Candidate is one shortlist entry presented to the advisory service.
type Candidate struct {
	Code     string   `json:"code"`
	Title    string   `json:"title"`
	Score    int      `json:"score"`
	Category string   `json:"category"`
	Reasons  []string `json:"reasons"`
}

// Suggestion is the advisory service's opinion on one candidate: its
// preferred position is the slice order, the note is an optional
// annotation.
type Suggestion struct {
	Code string `json:"code"`
	Note string `json:"note,omitempty"`
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("advisor not configured")

// PlaceholderClient is a stub implementation until provider wiring is
// configured; the pipeline falls back to the base ranking.
type PlaceholderClient struct{}

// Rerank returns ErrNotConfigured.
func (PlaceholderClient) Rerank(ctx context.Context, input RerankInput) ([]Suggestion, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}
