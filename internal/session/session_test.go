package session

import (
	"regexp"
	"testing"
)

var timestampRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

func TestAppend_StoresMessage(t *testing.T) {
	s := New()

	msg, ok := s.Append(SenderRecruiter, "Hello")
	if !ok {
		t.Fatal("append should store non-empty text")
	}
	if msg.ID == "" {
		t.Fatal("message should carry an id")
	}
	if !timestampRe.MatchString(msg.Timestamp) {
		t.Fatalf("timestamp not HH:MM:SS: %q", msg.Timestamp)
	}

	all := s.Messages()
	if len(all) != 1 {
		t.Fatalf("expected one message, got %d", len(all))
	}
	if all[0].Sender != SenderRecruiter || all[0].Text != "Hello" {
		t.Fatalf("unexpected stored message: %+v", all[0])
	}
}

func TestAppend_WhitespaceOnlyIsNoOp(t *testing.T) {
	s := New()

	if _, ok := s.Append(SenderCandidate, "   \n\t "); ok {
		t.Fatal("whitespace-only append must be a no-op")
	}
	if _, ok := s.Append(SenderCandidate, ""); ok {
		t.Fatal("empty append must be a no-op")
	}
	if got := s.MessageCount(); got != 0 {
		t.Fatalf("no-op appends must not store records, got %d", got)
	}
}

func TestAppend_PreservesOrder(t *testing.T) {
	s := New()
	s.Append(SenderRecruiter, "first")
	s.Append(SenderCandidate, "second")
	s.Append(SenderRecruiter, "third")

	all := s.Messages()
	if len(all) != 3 {
		t.Fatalf("expected three messages, got %d", len(all))
	}
	for i, want := range []string{"first", "second", "third"} {
		if all[i].Text != want {
			t.Fatalf("message %d out of order: got %q want %q", i, all[i].Text, want)
		}
	}
}

func TestClear_KeepsJobDescription(t *testing.T) {
	s := New()
	s.SetJobDescription("Data analyst role")
	s.AddResume("cv.pdf", "resume text")
	s.Append(SenderRecruiter, "hi")
	s.AddSuggestion("Ask about SQL window functions.")

	s.Clear()

	if s.MessageCount() != 0 {
		t.Fatal("clear must empty the conversation")
	}
	if len(s.Resumes()) != 0 {
		t.Fatal("clear must empty the resume set")
	}
	if len(s.Suggestions()) != 0 {
		t.Fatal("clear must empty the suggestion history")
	}
	if s.JobDescription() != "Data analyst role" {
		t.Fatal("clear must keep the job description")
	}
}

func TestSetJobDescription_ReplacesWholesale(t *testing.T) {
	s := New()
	s.SetJobDescription("old")
	s.SetJobDescription("new")
	if got := s.JobDescription(); got != "new" {
		t.Fatalf("expected replacement, got %q", got)
	}
}

func TestSnapshot_TranscriptFormat(t *testing.T) {
	s := New()
	s.Append(SenderRecruiter, "Tell me about your SQL work.")
	s.Append(SenderCandidate, "Mostly reporting pipelines.")

	got := s.Snapshot().Transcript()
	want := "Recruiter: Tell me about your SQL work.\nCandidate: Mostly reporting pipelines."
	if got != want {
		t.Fatalf("transcript mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestSnapshot_RecentTranscript(t *testing.T) {
	s := New()
	s.Append(SenderRecruiter, "one")
	s.Append(SenderCandidate, "two")
	s.Append(SenderRecruiter, "three")
	s.Append(SenderCandidate, "four")

	got := s.Snapshot().RecentTranscript(3)
	want := "Candidate: two\nRecruiter: three\nCandidate: four"
	if got != want {
		t.Fatalf("recent transcript mismatch:\n got %q\nwant %q", got, want)
	}

	if all := s.Snapshot().RecentTranscript(10); all != s.Snapshot().Transcript() {
		t.Fatal("recent transcript larger than log must equal full transcript")
	}
}

func TestSnapshot_CombinedResumes(t *testing.T) {
	s := New()
	s.AddResume("a.pdf", "first resume")
	s.AddResume("b.pdf", "second resume")

	got := s.Snapshot().CombinedResumes("\n\n---\n\n")
	want := "first resume\n\n---\n\nsecond resume"
	if got != want {
		t.Fatalf("combined resumes mismatch: %q", got)
	}
}

func TestSnapshot_IsolatedFromLaterMutation(t *testing.T) {
	s := New()
	s.Append(SenderRecruiter, "before")
	snap := s.Snapshot()
	s.Append(SenderCandidate, "after")

	if len(snap.Messages) != 1 {
		t.Fatalf("snapshot must not see later appends, got %d messages", len(snap.Messages))
	}
}

func TestNextSender_Alternates(t *testing.T) {
	if NextSender(SenderRecruiter) != SenderCandidate {
		t.Fatal("recruiter should hand off to candidate")
	}
	if NextSender(SenderCandidate) != SenderRecruiter {
		t.Fatal("candidate should hand off to recruiter")
	}
}

func TestValidSender(t *testing.T) {
	if !ValidSender(SenderRecruiter) || !ValidSender(SenderCandidate) {
		t.Fatal("both roles must validate")
	}
	if ValidSender("recruiter") || ValidSender("HR") {
		t.Fatal("unknown senders must not validate")
	}
}
