package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"planner-backend/internal/advisor"
	"planner-backend/internal/catalog"
)

type stubAdvisor struct {
	suggestions []advisor.Suggestion
	err         error
	gotInput    advisor.RerankInput
}

func (s *stubAdvisor) Rerank(ctx context.Context, input advisor.RerankInput) ([]advisor.Suggestion, error) {
	s.gotInput = input
	return s.suggestions, s.err
}

func baseRecs(codes ...string) []Recommendation {
	out := make([]Recommendation, 0, len(codes))
	for i, code := range codes {
		out = append(out, Recommendation{
			Course:  catalog.Course{Code: code},
			Score:   100 - i,
			Reasons: []string{"base reason"},
		})
	}
	return out
}

func recCodes(recs []Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Course.Code)
	}
	return out
}

func TestEnhanceNilClientFallsBack(t *testing.T) {
	var e *Enhancer
	base := baseRecs("CS 1301", "CS 1331")

	outcome := e.Enhance(context.Background(), base, Profile{}, "fall-2026", 10)
	if outcome.Enhanced {
		t.Fatalf("expected fallback without a client")
	}
	if !errors.Is(outcome.FallbackCause, advisor.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", outcome.FallbackCause)
	}
	if !reflect.DeepEqual(recCodes(outcome.Recommendations), []string{"CS 1301", "CS 1331"}) {
		t.Fatalf("expected base list unchanged, got %v", recCodes(outcome.Recommendations))
	}
}

func TestEnhanceClientErrorKeepsBaseOrder(t *testing.T) {
	stub := &stubAdvisor{err: errors.New("upstream unavailable")}
	e := &Enhancer{Client: stub, Timeout: time.Second}
	base := baseRecs("CS 1301", "CS 1331", "CS 1332")

	outcome := e.Enhance(context.Background(), base, Profile{}, "fall-2026", 2)
	if outcome.Enhanced {
		t.Fatalf("expected fallback on client error")
	}
	if outcome.FallbackCause == nil {
		t.Fatalf("expected fallback cause")
	}
	if !reflect.DeepEqual(recCodes(outcome.Recommendations), []string{"CS 1301", "CS 1331"}) {
		t.Fatalf("expected truncated base list, got %v", recCodes(outcome.Recommendations))
	}
}

func TestEnhanceAppliesRankingAndNotes(t *testing.T) {
	stub := &stubAdvisor{suggestions: []advisor.Suggestion{
		{Code: "CS 1332", Note: "pairs well with your current load"},
		{Code: "CS 1301"},
	}}
	e := &Enhancer{Client: stub, Timeout: time.Second}
	base := baseRecs("CS 1301", "CS 1331", "CS 1332")

	outcome := e.Enhance(context.Background(), base, Profile{Major: "CS"}, "fall-2026", 10)
	if !outcome.Enhanced {
		t.Fatalf("expected enhancement, cause: %v", outcome.FallbackCause)
	}
	// Suggested courses first in advisor order, omitted CS 1331 keeps its slot after them.
	if got := recCodes(outcome.Recommendations); !reflect.DeepEqual(got, []string{"CS 1332", "CS 1301", "CS 1331"}) {
		t.Fatalf("unexpected order %v", got)
	}
	noted := outcome.Recommendations[0]
	if len(noted.Reasons) != 2 || noted.Reasons[1] != "advisor: pairs well with your current load" {
		t.Fatalf("expected advisor note appended, got %v", noted.Reasons)
	}
	if stub.gotInput.Major != "CS" || stub.gotInput.Semester != "fall-2026" {
		t.Fatalf("expected profile and semester forwarded, got %+v", stub.gotInput)
	}
	if len(stub.gotInput.Candidates) != 3 {
		t.Fatalf("expected all candidates forwarded, got %d", len(stub.gotInput.Candidates))
	}
}

func TestEnhanceIgnoresUnknownCodes(t *testing.T) {
	stub := &stubAdvisor{suggestions: []advisor.Suggestion{
		{Code: "CS 9999", Note: "hallucinated"},
		{Code: "CS 1331"},
	}}
	e := &Enhancer{Client: stub, Timeout: time.Second}
	base := baseRecs("CS 1301", "CS 1331")

	outcome := e.Enhance(context.Background(), base, Profile{}, "fall-2026", 10)
	if !outcome.Enhanced {
		t.Fatalf("expected enhancement")
	}
	if got := recCodes(outcome.Recommendations); !reflect.DeepEqual(got, []string{"CS 1331", "CS 1301"}) {
		t.Fatalf("expected unknown code skipped, got %v", got)
	}
}

func TestEnhanceDoesNotMutateInput(t *testing.T) {
	stub := &stubAdvisor{suggestions: []advisor.Suggestion{
		{Code: "CS 1331", Note: "note"},
	}}
	e := &Enhancer{Client: stub, Timeout: time.Second}
	base := baseRecs("CS 1301", "CS 1331")

	_ = e.Enhance(context.Background(), base, Profile{}, "fall-2026", 10)
	if len(base[1].Reasons) != 1 || base[1].Reasons[0] != "base reason" {
		t.Fatalf("input slice mutated: %v", base[1].Reasons)
	}
}

func TestEnhanceRespectsContextDeadline(t *testing.T) {
	slow := advisorFunc(func(ctx context.Context, input advisor.RerankInput) ([]advisor.Suggestion, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	e := &Enhancer{Client: slow, Timeout: 5 * time.Millisecond}
	base := baseRecs("CS 1301")

	outcome := e.Enhance(context.Background(), base, Profile{}, "fall-2026", 10)
	if outcome.Enhanced {
		t.Fatalf("expected timeout fallback")
	}
	if !errors.Is(outcome.FallbackCause, context.DeadlineExceeded) {
		t.Fatalf("expected deadline cause, got %v", outcome.FallbackCause)
	}
}

type advisorFunc func(ctx context.Context, input advisor.RerankInput) ([]advisor.Suggestion, error)

func (f advisorFunc) Rerank(ctx context.Context, input advisor.RerankInput) ([]advisor.Suggestion, error) {
	return f(ctx, input)
}
