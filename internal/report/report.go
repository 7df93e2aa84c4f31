package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// ErrUnknownFormat indicates an unsupported report format was requested.
var ErrUnknownFormat = errors.New("unknown report format")

// Metadata carries the report header values.
type Metadata struct {
	GeneratedAt  time.Time
	MessageCount int
	MatchScore   *float64
}

// Report holds a completed analysis ready for rendering.
type Report struct {
	Analysis  string
	Questions string
	Meta      Metadata
}

// Render produces the report in the requested format, returning the bytes and
// the matching file extension.
func Render(format string, r Report) ([]byte, string, error) {
	switch format {
	case "", FormatText, "txt":
		return []byte(r.Text()), ".txt", nil
	case FormatPDF:
		data, err := r.PDF()
		return data, ".pdf", err
	case FormatDOCX:
		data, err := r.DOCX()
		return data, ".docx", err
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// body appends the interview-questions section to the analysis when one was
// generated.
func (r Report) body() string {
	if strings.TrimSpace(r.Questions) == "" {
		return r.Analysis
	}
	return r.Analysis + "\n\n--- INTERVIEW QUESTIONS ---\n\n" + r.Questions
}

// paragraphs splits the body on blank-line boundaries for the paginated
// formats, removing any leftover asterisk markers first.
func paragraphs(text string) []string {
	clean := strings.ReplaceAll(text, "*", "")
	return strings.Split(clean, "\n\n")
}
