package recommend

import (
	"context"
	"time"

	"planner-backend/internal/advisor"
	"planner-backend/internal/catalog"
)

// EnhanceOutcome is the explicit result of the best-effort enhancement
// stage: either the advisory re-rank was applied, or the base list was
// kept. The fallback path is a normal branch, never an error.
type EnhanceOutcome struct {
	Recommendations []Recommendation
	Enhanced        bool
	FallbackCause   error // nil when Enhanced
}

// Enhancer re-ranks a shortlist with an external advisory signal under a
// hard deadline. Any failure falls back to the input list truncated to
// the limit.
type Enhancer struct {
	Client  advisor.Client
	Timeout time.Duration
}

// Enhance applies the advisory re-rank. The input slice is never
// mutated; the outcome always carries a usable list.
func (e *Enhancer) Enhance(ctx context.Context, recs []Recommendation, profile Profile, target string, limit int) EnhanceOutcome {
	base := truncate(recs, limit)
	if e == nil || e.Client == nil {
		return EnhanceOutcome{Recommendations: base, FallbackCause: advisor.ErrNotConfigured}
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	candidates := make([]advisor.Candidate, 0, len(base))
	for _, rec := range base {
		candidates = append(candidates, advisor.Candidate{
			Code:     rec.Course.Code,
			Title:    rec.Course.Title,
			Score:    rec.Score,
			Category: string(rec.Category),
			Reasons:  rec.Reasons,
		})
	}

	suggestions, err := e.Client.Rerank(ctx, advisor.RerankInput{
		Major:      profile.Major,
		Tracks:     profile.Tracks,
		Semester:   target,
		Candidates: candidates,
	})
	if err != nil {
		return EnhanceOutcome{Recommendations: base, FallbackCause: err}
	}

	return EnhanceOutcome{Recommendations: applySuggestions(base, suggestions, limit), Enhanced: true}
}

// applySuggestions reorders the base list by the advisory ranking,
// appends notes to reasons, ignores unknown codes, and keeps any courses
// the advisor omitted in their original relative order.
func applySuggestions(base []Recommendation, suggestions []advisor.Suggestion, limit int) []Recommendation {
	byCode := make(map[string]int, len(base))
	for i, rec := range base {
		byCode[rec.Course.Code] = i
	}

	used := make([]bool, len(base))
	out := make([]Recommendation, 0, len(base))
	for _, suggestion := range suggestions {
		i, ok := byCode[catalog.NormalizeCode(suggestion.Code)]
		if !ok || used[i] {
			continue
		}
		used[i] = true
		rec := base[i]
		if suggestion.Note != "" {
			reasons := make([]string, 0, len(rec.Reasons)+1)
			reasons = append(reasons, rec.Reasons...)
			rec.Reasons = append(reasons, "advisor: "+suggestion.Note)
		}
		out = append(out, rec)
	}
	for i, rec := range base {
		if !used[i] {
			out = append(out, rec)
		}
	}
	return truncate(out, limit)
}

func truncate(recs []Recommendation, limit int) []Recommendation {
	if limit <= 0 || len(recs) <= limit {
		return recs
	}
	return recs[:limit]
}
