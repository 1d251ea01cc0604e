package normalisers

import (
	"regexp"
	"strings"
)

var (
	horizontalWS = regexp.MustCompile(`[ \t]+`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
)

// NormaliseWhitespace canonicalises text for indexing: line endings
// become \n, runs of spaces and tabs collapse to a single space,
// trailing space is stripped per line, and runs of blank lines collapse
// to one. The result is trimmed.
//
// Every format normaliser routes its extracted text through here so
// chunk boundaries and query normalisation agree on one canonical form.
func NormaliseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = horizontalWS.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	s = strings.Join(lines, "\n")

	s = blankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
