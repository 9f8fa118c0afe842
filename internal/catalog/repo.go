package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"planner-backend/internal/semester"
)

// Repo defines persistence operations for the course catalog.
type Repo interface {
	ListAll(ctx context.Context) ([]Course, error)
	GetByCode(ctx context.Context, code string) (Course, error)
	ReplaceAll(ctx context.Context, courses []Course) error
}

// Row codec shared by the SQL repos: list-ish columns are stored as JSON
// text so the schema stays portable between Postgres and SQLite.

func encodeTerms(terms []semester.Term) (string, error) {
	data, err := json.Marshal(terms)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeTerms(raw string) ([]semester.Term, error) {
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var out []semester.Term
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("offerings parse: %w", err)
	}
	return out, nil
}

func encodeStrings(items []string) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("string list parse: %w", err)
	}
	return out, nil
}
