package screening

import (
	"strings"
	"testing"

	"screener-backend/internal/session"
)

func TestPromptsFullyInterpolated(t *testing.T) {
	snap := session.Snapshot{
		JobDescription: "Data engineer role",
		Resumes:        []session.Resume{{Name: "cv.pdf", Text: "ETL pipelines"}},
		Messages: []session.Message{
			{Sender: session.SenderRecruiter, Text: "hello"},
			{Sender: session.SenderCandidate, Text: "hi"},
		},
	}

	prompts := map[string]string{
		"fit":       buildFitPrompt(snap),
		"suggest":   buildSuggestionPrompt(snap),
		"questions": buildQuestionsPrompt(snap),
	}
	for name, prompt := range prompts {
		if strings.Contains(prompt, "{{") || strings.Contains(prompt, "}}") {
			t.Errorf("%s prompt has unreplaced placeholders:\n%s", name, prompt)
		}
		if prompt == "" {
			t.Errorf("%s prompt is empty", name)
		}
	}

	if !strings.Contains(prompts["fit"], "Recruiter: hello\nCandidate: hi") {
		t.Error("fit prompt transcript not in Sender: text form")
	}
	if !strings.Contains(prompts["suggest"], "Data engineer role") {
		t.Error("suggest prompt missing job description")
	}
	if strings.Contains(prompts["suggest"], "ETL pipelines") {
		t.Error("suggest prompt should not embed resumes")
	}
	if !strings.Contains(prompts["questions"], "ETL pipelines") {
		t.Error("questions prompt missing resume text")
	}
}
