package report

import (
	"fmt"
	"strings"
)

// Text renders the plain-text report: a metadata header followed by the
// analysis verbatim, with no paragraph splitting.
func (r Report) Text() string {
	var b strings.Builder
	b.WriteString("CANDIDATE EVALUATION REPORT\n")
	b.WriteString("Date: " + r.Meta.GeneratedAt.Format("2006-01-02 15:04") + "\n")
	fmt.Fprintf(&b, "Messages analyzed: %d\n", r.Meta.MessageCount)
	if r.Meta.MatchScore != nil {
		fmt.Fprintf(&b, "Initial resume match score: %.1f/10\n", *r.Meta.MatchScore)
	}
	b.WriteString("\n--- ANALYSIS RESULTS ---\n\n")
	b.WriteString(r.body())
	return b.String()
}
