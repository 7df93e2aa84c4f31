package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	SenderRecruiter = "Recruiter"
	SenderCandidate = "Candidate"
)

// Message is one chat line in the screening conversation. Immutable once
// appended; the timestamp is wall-clock HH:MM:SS as shown to both parties.
type Message struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Resume pairs extracted resume text with its source file name.
type Resume struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ValidSender reports whether s is one of the two conversation roles.
func ValidSender(s string) bool {
	return s == SenderRecruiter || s == SenderCandidate
}

// NextSender returns the conventional reply role. The store itself never
// enforces alternation.
func NextSender(s string) string {
	if s == SenderRecruiter {
		return SenderCandidate
	}
	return SenderRecruiter
}

// Session owns all mutable screening state: the loaded job description, the
// resume set, the conversation log, and the suggestion history. Every
// mutation goes through the mutex, preserving single-writer semantics when
// the HTTP adapter serves concurrent requests.
type Session struct {
	mu             sync.RWMutex
	jobDescription string
	resumes        []Resume
	messages       []Message
	suggestions    []string
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Append records a message and returns it. Empty or whitespace-only text is
// a no-op, not an error: the second return is false and nothing is stored.
func (s *Session) Append(sender, text string) (Message, bool) {
	if strings.TrimSpace(text) == "" {
		return Message{}, false
	}
	msg := Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now().Format("15:04:05"),
	}

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return msg, true
}

// Messages returns the conversation in chronological order.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// MessageCount returns the number of stored messages.
func (s *Session) MessageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// SetJobDescription replaces the loaded job description wholesale.
func (s *Session) SetJobDescription(text string) {
	s.mu.Lock()
	s.jobDescription = text
	s.mu.Unlock()
}

// JobDescription returns the loaded job description, empty when not loaded.
func (s *Session) JobDescription() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.jobDescription
}

// AddResume appends a resume to the set.
func (s *Session) AddResume(name, text string) {
	s.mu.Lock()
	s.resumes = append(s.resumes, Resume{Name: name, Text: text})
	s.mu.Unlock()
}

// Resumes returns the resume set in load order.
func (s *Session) Resumes() []Resume {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Resume, len(s.resumes))
	copy(out, s.resumes)
	return out
}

// AddSuggestion records a generated follow-up question.
func (s *Session) AddSuggestion(text string) {
	s.mu.Lock()
	s.suggestions = append(s.suggestions, text)
	s.mu.Unlock()
}

// Suggestions returns the suggestion history in generation order.
func (s *Session) Suggestions() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// Clear empties the conversation, the resume set, and the suggestion
// history. The job description survives and is replaced only by a reload.
func (s *Session) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.resumes = nil
	s.suggestions = nil
	s.mu.Unlock()
}

// Snapshot is an immutable view of the session taken under one lock, used
// by analysis runs so remote calls never hold the session mutex.
type Snapshot struct {
	JobDescription string
	Resumes        []Resume
	Messages       []Message
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		JobDescription: s.jobDescription,
		Resumes:        make([]Resume, len(s.resumes)),
		Messages:       make([]Message, len(s.messages)),
	}
	copy(snap.Resumes, s.resumes)
	copy(snap.Messages, s.messages)
	return snap
}

// Transcript renders the full conversation as "Sender: text" lines.
func (snap Snapshot) Transcript() string {
	return transcriptLines(snap.Messages)
}

// RecentTranscript renders only the last n messages.
func (snap Snapshot) RecentTranscript(n int) string {
	if n <= 0 || len(snap.Messages) == 0 {
		return ""
	}
	if n > len(snap.Messages) {
		n = len(snap.Messages)
	}
	return transcriptLines(snap.Messages[len(snap.Messages)-n:])
}

// CombinedResumes joins all resume texts with sep.
func (snap Snapshot) CombinedResumes(sep string) string {
	texts := make([]string, 0, len(snap.Resumes))
	for _, r := range snap.Resumes {
		texts = append(texts, r.Text)
	}
	return strings.Join(texts, sep)
}

func transcriptLines(messages []Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.Sender)
		b.WriteString(": ")
		b.WriteString(m.Text)
	}
	return b.String()
}
