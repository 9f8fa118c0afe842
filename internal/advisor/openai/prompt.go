package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"planner-backend/internal/advisor"
)

const systemPrompt = `You are an academic advisor. You are given a ranked shortlist of
candidate courses for a student. Reorder the shortlist if you believe a
different order serves the student better, and add a short note per course
when you have one. Only use course codes from the shortlist. Respond with a
JSON object of the form {"ranking": [{"code": "...", "note": "..."}]}.`

func buildUserPrompt(input advisor.RerankInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Major: %s\n", input.Major)
	if len(input.Tracks) > 0 {
		fmt.Fprintf(&b, "Tracks: %s\n", strings.Join(input.Tracks, ", "))
	}
	if input.Semester != "" {
		fmt.Fprintf(&b, "Target semester: %s\n", input.Semester)
	}
	b.WriteString("Shortlist:\n")
	candidates, err := json.MarshalIndent(input.Candidates, "", "  ")
	if err == nil {
		b.Write(candidates)
	}
	return b.String()
}
