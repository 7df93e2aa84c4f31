package screening

import (
	_ "embed"
	"strings"

	"screener-backend/internal/session"
)

var (
	//go:embed prompts/fit_v1.txt
	fitPromptV1 string
	//go:embed prompts/suggest_v1.txt
	suggestPromptV1 string
	//go:embed prompts/questions_v1.txt
	questionsPromptV1 string
)

const (
	// recentMessageWindow is how many trailing messages the suggestion
	// prompt sees.
	recentMessageWindow = 3

	fitResumeSeparator      = "\n\n---\n\n"
	questionResumeSeparator = "\n\n"
)

// buildFitPrompt fills the fit-analysis template with the job description,
// every loaded resume, and the full conversation transcript.
func buildFitPrompt(snap session.Snapshot) string {
	replacer := strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", snap.JobDescription,
		"{{RESUMES}}", snap.CombinedResumes(fitResumeSeparator),
		"{{TRANSCRIPT}}", snap.Transcript(),
	)
	return replacer.Replace(fitPromptV1)
}

// buildSuggestionPrompt fills the dynamic-suggestion template with the job
// description and only the most recent messages.
func buildSuggestionPrompt(snap session.Snapshot) string {
	replacer := strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", snap.JobDescription,
		"{{RECENT_MESSAGES}}", snap.RecentTranscript(recentMessageWindow),
	)
	return replacer.Replace(suggestPromptV1)
}

// buildQuestionsPrompt fills the question-generation template with the job
// description and every loaded resume.
func buildQuestionsPrompt(snap session.Snapshot) string {
	replacer := strings.NewReplacer(
		"{{JOB_DESCRIPTION}}", snap.JobDescription,
		"{{RESUMES}}", snap.CombinedResumes(questionResumeSeparator),
	)
	return replacer.Replace(questionsPromptV1)
}
