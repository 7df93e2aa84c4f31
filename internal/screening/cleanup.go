package screening

import (
	"regexp"
	"strings"
)

// escapedEmphasisRe matches a backslash, the escaped character, and up to two
// trailing asterisks, e.g. `\*bold\*` or `\**bold\**`.
var escapedEmphasisRe = regexp.MustCompile(`\\(.?)\*{0,2}`)

// cleanResponse strips the markdown emphasis artifacts the model tends to
// emit: backslash-escaped sequences first, then any remaining literal
// asterisks, then surrounding whitespace.
func cleanResponse(raw string) string {
	cleaned := escapedEmphasisRe.ReplaceAllString(raw, "$1")
	cleaned = strings.ReplaceAll(cleaned, "*", "")
	return strings.TrimSpace(cleaned)
}
