// Package normalize folds question text and query strings into the plain
// ASCII form used for label matching and structural fingerprints.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	asciiFold    = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	nonAlnum     = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	nonAlnumWord = regexp.MustCompile(`[^a-zA-Z0-9_]+`)
)

// ToASCII strips combining marks after canonical decomposition, turning
// accented text into plain ASCII where possible.
func ToASCII(s string) string {
	out, _, err := transform.String(asciiFold, s)
	if err != nil {
		return s
	}
	return out
}

// Question lowercases, trims and collapses non-alphanumeric runs in a
// natural-language question or entity label.
func Question(s string) string {
	s = ToASCII(strings.ToLower(strings.TrimSpace(s)))
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SPARQL lowercases, trims and collapses non-word runs in a query string,
// keeping underscores so token boundaries survive.
func SPARQL(s string) string {
	s = ToASCII(strings.ToLower(strings.TrimSpace(s)))
	s = nonAlnumWord.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
