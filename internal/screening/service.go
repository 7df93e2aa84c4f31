package screening

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"screener-backend/internal/extract"
	"screener-backend/internal/llm"
	"screener-backend/internal/match"
	"screener-backend/internal/session"
	"screener-backend/internal/shared/metrics"
	"screener-backend/internal/shared/telemetry"
)

const (
	// minAnalyzeMessages is the shortest conversation eligible for a full
	// fit analysis.
	minAnalyzeMessages = 3
	// minSuggestMessages is the shortest conversation eligible for a
	// follow-up suggestion.
	minSuggestMessages = 2
	// suggestAfterMessages is the transcript length past which appending a
	// message also requests a fresh suggestion.
	suggestAfterMessages = 3
)

// Service contains the screening business logic: documents in, match score
// and analysis out.
type Service struct {
	Session *session.Session
	Scorer  *match.Scorer
	LLM     llm.Client
	History *History
}

func NewService(sess *session.Session, scorer *match.Scorer, client llm.Client, history *History) *Service {
	return &Service{
		Session: sess,
		Scorer:  scorer,
		LLM:     client,
		History: history,
	}
}

// ResumeStatus describes a freshly loaded resume and, when a job description
// is present, the match score against the first loaded resume.
type ResumeStatus struct {
	Name       string   `json:"name"`
	Chars      int      `json:"chars"`
	MatchScore *float64 `json:"match_score,omitempty"`
}

// AppendOutcome reports what happened to an appended chat message.
type AppendOutcome struct {
	Message    session.Message `json:"message"`
	Appended   bool            `json:"appended"`
	Suggestion string          `json:"suggestion,omitempty"`
}

// SetJobDescriptionText stores the job description, replacing any previous
// one. Returns the stored character count.
func (s *Service) SetJobDescriptionText(text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, errors.New("job description is empty")
	}
	s.Session.SetJobDescription(text)
	return len(text), nil
}

// LoadJobDescription extracts text from an uploaded document and stores it as
// the job description.
func (s *Service) LoadJobDescription(ctx context.Context, data []byte, fileName string) (int, error) {
	text, err := extract.FromBytes(ctx, data, fileName)
	if err != nil {
		return 0, err
	}
	return s.SetJobDescriptionText(text)
}

// AddResumeText appends a resume to the session. The returned status carries
// the current match score when a job description is already loaded.
func (s *Service) AddResumeText(ctx context.Context, name, text string) (ResumeStatus, error) {
	if strings.TrimSpace(text) == "" {
		return ResumeStatus{}, errors.New("resume text is empty")
	}
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("resume-%d", len(s.Session.Resumes())+1)
	}
	s.Session.AddResume(name, text)

	status := ResumeStatus{Name: name, Chars: len(text)}
	if score, err := s.Score(ctx); err == nil {
		status.MatchScore = &score
	} else if !IsPrecondition(err) {
		telemetry.Error("score.load_failed", map[string]any{
			"resume": name,
			"err":    sanitizeError(err),
		})
	}
	return status, nil
}

// LoadResume extracts text from an uploaded document and appends it as a
// resume, named after the source file.
func (s *Service) LoadResume(ctx context.Context, data []byte, fileName string) (ResumeStatus, error) {
	text, err := extract.FromBytes(ctx, data, fileName)
	if err != nil {
		return ResumeStatus{}, err
	}
	return s.AddResumeText(ctx, fileName, text)
}

// Score computes the 0-10 match score between the job description and the
// first loaded resume.
func (s *Service) Score(ctx context.Context) (float64, error) {
	snap := s.Session.Snapshot()
	if strings.TrimSpace(snap.JobDescription) == "" {
		return 0, ErrNoJobDescription
	}
	if len(snap.Resumes) == 0 {
		return 0, ErrNoResumes
	}
	if s.Scorer == nil {
		return 0, errors.New("match scorer not configured")
	}
	score, err := s.Scorer.Score(ctx, snap.JobDescription, snap.Resumes[0].Text)
	if err != nil {
		return 0, fmt.Errorf("match score: %w", err)
	}
	metrics.IncScoreComputed()
	return score, nil
}

// AppendMessage records a chat message. Whitespace-only text is a no-op, not
// an error. Once the conversation is long enough, appending also requests a
// fresh interview suggestion.
func (s *Service) AppendMessage(ctx context.Context, sender, text string) (AppendOutcome, error) {
	sender = strings.TrimSpace(sender)
	if !session.ValidSender(sender) {
		return AppendOutcome{}, fmt.Errorf("invalid sender %q", sender)
	}

	msg, appended := s.Session.Append(sender, text)
	outcome := AppendOutcome{Message: msg, Appended: appended}
	if appended && s.Session.MessageCount() > suggestAfterMessages {
		suggestion, err := s.Suggest(ctx)
		if err != nil {
			return outcome, err
		}
		outcome.Suggestion = suggestion
	}
	return outcome, nil
}

// Suggest asks the model for one follow-up interview question based on the
// recent conversation. A short conversation, missing documents, or a failed
// model call all yield an empty suggestion, never an error.
func (s *Service) Suggest(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	snap := s.Session.Snapshot()
	if len(snap.Messages) < minSuggestMessages ||
		strings.TrimSpace(snap.JobDescription) == "" ||
		len(snap.Resumes) == 0 {
		metrics.IncSuggestionSkipped()
		return "", nil
	}
	if s.LLM == nil {
		metrics.IncSuggestionSkipped()
		return "", nil
	}

	client := newRetryingLLM(s.LLM, requestIDFromContext(ctx))
	started := time.Now()
	raw, err := client.Complete(ctx, buildSuggestionPrompt(snap))
	metrics.ObserveLLMRequestDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		telemetry.Error("suggestion.failed", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"err":        sanitizeError(err),
		})
		metrics.IncSuggestionSkipped()
		return "", nil
	}

	suggestion := cleanResponse(raw)
	if suggestion == "" {
		metrics.IncSuggestionSkipped()
		return "", nil
	}
	s.Session.AddSuggestion(suggestion)
	metrics.IncSuggestionGenerated()
	return suggestion, nil
}

// Analyze runs the full candidate-fit analysis plus interview-question
// generation. Preconditions are checked before any remote call: a job
// description, at least one resume, and at least minAnalyzeMessages messages.
// On failure the session is left untouched so the operation can be retried.
func (s *Service) Analyze(ctx context.Context) (Result, error) {
	snap := s.Session.Snapshot()
	if strings.TrimSpace(snap.JobDescription) == "" {
		return Result{}, ErrNoJobDescription
	}
	if len(snap.Resumes) == 0 {
		return Result{}, ErrNoResumes
	}
	if len(snap.Messages) < minAnalyzeMessages {
		return Result{}, ErrConversationTooShort
	}
	if s.LLM == nil {
		return Result{}, fmt.Errorf("%w: no language model configured", ErrAnalysis)
	}

	requestID := requestIDFromContext(ctx)
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.started", map[string]any{
		"request_id": requestID,
		"messages":   len(snap.Messages),
		"resumes":    len(snap.Resumes),
	})

	client := newRetryingLLM(s.LLM, requestID)
	started := time.Now()

	analysis, err := s.complete(ctx, client, buildFitPrompt(snap))
	if err != nil {
		return Result{}, s.failAnalysis(requestID, started, fmt.Errorf("fit analysis: %w", err))
	}
	questions, err := s.complete(ctx, client, buildQuestionsPrompt(snap))
	if err != nil {
		return Result{}, s.failAnalysis(requestID, started, fmt.Errorf("question generation: %w", err))
	}

	result := Result{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		MessageCount: len(snap.Messages),
		Analysis:     analysis,
		Questions:    questions,
	}
	if score, err := s.Score(ctx); err == nil {
		result.MatchScore = &score
	}

	s.History.Add(result)
	elapsed := time.Since(started)
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("analysis.completed", map[string]any{
		"request_id":  requestID,
		"analysis_id": result.ID,
		"duration_ms": elapsed.Milliseconds(),
	})
	return result, nil
}

// Questions generates interview questions alone, without the fit analysis.
func (s *Service) Questions(ctx context.Context) (string, error) {
	snap := s.Session.Snapshot()
	if strings.TrimSpace(snap.JobDescription) == "" {
		return "", ErrNoJobDescription
	}
	if len(snap.Resumes) == 0 {
		return "", ErrNoResumes
	}
	if s.LLM == nil {
		return "", fmt.Errorf("%w: no language model configured", ErrAnalysis)
	}

	client := newRetryingLLM(s.LLM, requestIDFromContext(ctx))
	questions, err := s.complete(ctx, client, buildQuestionsPrompt(snap))
	if err != nil {
		return "", fmt.Errorf("question generation: %w", err)
	}
	return questions, nil
}

// Clear wipes the conversation, resumes, and suggestions while keeping the
// job description loaded.
func (s *Service) Clear() {
	s.Session.Clear()
}

// SessionStatus summarizes what has been loaded so far.
type SessionStatus struct {
	JobDescriptionLoaded bool     `json:"job_description_loaded"`
	ResumeNames          []string `json:"resumes"`
	MessageCount         int      `json:"message_count"`
	MatchScore           *float64 `json:"match_score,omitempty"`
	Status               string   `json:"status"`
}

// Status reports the loaded documents, the message count, and the match score
// once both a job description and a resume are present.
func (s *Service) Status(ctx context.Context) SessionStatus {
	snap := s.Session.Snapshot()
	status := SessionStatus{
		JobDescriptionLoaded: strings.TrimSpace(snap.JobDescription) != "",
		ResumeNames:          make([]string, 0, len(snap.Resumes)),
		MessageCount:         s.Session.MessageCount(),
	}
	for _, r := range snap.Resumes {
		status.ResumeNames = append(status.ResumeNames, r.Name)
	}

	switch {
	case status.JobDescriptionLoaded && len(snap.Resumes) > 0:
		score, err := s.Score(ctx)
		if err != nil {
			status.Status = "Job description and resume loaded"
			break
		}
		status.MatchScore = &score
		status.Status = fmt.Sprintf("Initial Resume Match: %.1f/10", score)
	case status.JobDescriptionLoaded:
		status.Status = "Job description loaded. Please load resume."
	case len(snap.Resumes) > 0:
		status.Status = "Resume loaded. Please load job description."
	default:
		status.Status = "Please load job description and resume"
	}
	return status
}

func (s *Service) complete(ctx context.Context, client llm.Client, prompt string) (string, error) {
	started := time.Now()
	raw, err := client.Complete(ctx, prompt)
	metrics.ObserveLLMRequestDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAnalysis, err)
	}
	cleaned := cleanResponse(raw)
	if cleaned == "" {
		return "", fmt.Errorf("%w: empty model response", ErrAnalysis)
	}
	return cleaned, nil
}

func (s *Service) failAnalysis(requestID string, started time.Time, err error) error {
	metrics.IncAnalysisFailed()
	telemetry.Error("analysis.failed", map[string]any{
		"request_id":  requestID,
		"duration_ms": time.Since(started).Milliseconds(),
		"err":         sanitizeError(err),
	})
	return err
}
