package template

import (
	"regexp"
	"strings"
)

// Structural fix-ups applied after slot substitution. Each is a no-op
// when its pattern finds nothing: absence of a match legitimately means
// there is nothing to fix.

// danglingTemplateTriple matches a triple that fell outside the brace
// because a whole-line substitution swallowed its leading conjunction.
// Template variant: the object is already a slot placeholder.
var danglingTemplateTriple = regexp.MustCompile(
	`}\s+(\?\w+)\s+((?:\w+:P\d+)|(?:<[\w\d_]+?>))\s+(<[\w\d_]+?>)`)

// danglingQueryTriple is the concrete-query variant of the same defect.
var danglingQueryTriple = regexp.MustCompile(
	`}\s+((?:\?\w+)|<[\w\d_]+?>|(?:wd:Q\d+))` +
		`\s+((?:(?:\w+:P\d+)|(?:\w+:\w+)|[\^+*/])+)` +
		`\s+((?:\?\w+)|<[\w\d_]+?>|(?:wd:Q\d+))`)

// FixDanglingTemplateTriple rejoins a dangling `} ?x p <obj>` fragment
// back into the brace.
func FixDanglingTemplateTriple(s string) string {
	return danglingTemplateTriple.ReplaceAllString(s, ". ${1} ${2} ${3} }")
}

// FixDanglingQueryTriple rejoins a dangling concrete triple back into
// the brace.
func FixDanglingQueryTriple(s string) string {
	return danglingQueryTriple.ReplaceAllString(s, ". ${1} ${2} ${3} }")
}

var (
	adHocX   = regexp.MustCompile(`\?X`)
	adHocSub = regexp.MustCompile(`\?sub`)
	tNoise   = regexp.MustCompile(`([=<>])\s+t(\d)`)
)

// RenameXVariable renames the ad hoc ?X variable to the canonical ?obj.
func RenameXVariable(s string) string { return adHocX.ReplaceAllString(s, "?obj") }

// RenameSubVariable renames the ad hoc ?sub variable to the canonical
// ?sbj.
func RenameSubVariable(s string) string { return adHocSub.ReplaceAllString(s, "?sbj") }

// EnsureWhereClause inserts the where keyword before the first brace of
// an aggregate query that lacks one.
func EnsureWhereClause(s string) string {
	if strings.Contains(strings.ToLower(s), "where") {
		return s
	}
	return strings.Replace(s, "{", "where {", 1)
}

// StripNumberNoise removes the stray t prefix some dataset queries carry
// in numeric comparisons.
func StripNumberNoise(s string) string {
	return tNoise.ReplaceAllString(s, "${1} ${2}")
}

var (
	stringLiteral = regexp.MustCompile(`'(.*?)'`)
	limitCount    = regexp.MustCompile(`(LIMIT|limit)(\s+\d+)`)
	freeNumber    = regexp.MustCompile(`([^_\w])([-t]?\d+(?:\.\d+)?(?:e[+-]?\d+)?)`)
)

// AbstractStringValue replaces the first quoted literal with
// <str_value> and returns the literal it held, empty when none.
func AbstractStringValue(s string) (string, string) {
	m := stringLiteral.FindStringSubmatchIndex(s)
	if m == nil {
		return s, ""
	}
	return s[:m[0]] + "<str_value>" + s[m[1]:], s[m[2]:m[3]]
}

// AbstractNumber replaces every free-standing number with <num> and
// returns the first one, empty when none. A number inside a result-size
// limiter is preserved verbatim.
func AbstractNumber(s string) (string, string) {
	var limit string
	if m := limitCount.FindStringSubmatch(s); m != nil {
		limit = m[2]
		s = limitCount.ReplaceAllString(s, "${1}<limit>")
	}
	var number string
	if m := freeNumber.FindStringSubmatch(s); m != nil {
		number = m[2]
	}
	s = freeNumber.ReplaceAllString(s, "${1}<num>")
	if limit != "" {
		s = strings.ReplaceAll(s, "<limit>", limit)
	}
	return s, number
}

var (
	filterOp   = regexp.MustCompile(`([<=>])(\s+<num>)`)
	sortOp     = regexp.MustCompile(`(ASC|DESC)`)
	slotNumber = regexp.MustCompile(`<(\w+)_\d+>`)
)

// UnifyFilterOp collapses any comparison operator before a <num> slot to
// the wildcard token.
func UnifyFilterOp(s string) string { return filterOp.ReplaceAllString(s, "[<=>]${2}") }

// UnifySortOp collapses sort directions to the wildcard token.
func UnifySortOp(s string) string { return sortOp.ReplaceAllString(s, "[ASC|DESC]") }

// stripSlotOrdinals drops ordinal suffixes from every slot, producing
// the coarse base-template form.
func stripSlotOrdinals(s string) string { return slotNumber.ReplaceAllString(s, "<${1}>") }

// replaceBounded replaces up to n occurrences of literal in s, but only
// where the occurrence is followed by '.', '}' or whitespace, the
// boundary that separates a resource from the rest of a triple. n < 0
// means no limit. Occurrences at the very end of s have no boundary
// character and are left alone.
func replaceBounded(s, literal, repl string, n int) string {
	var b strings.Builder
	rest := s
	for n != 0 {
		i := strings.Index(rest, literal)
		if i < 0 {
			break
		}
		j := i + len(literal)
		if j < len(rest) && isBoundary(rest[j]) {
			b.WriteString(rest[:i])
			b.WriteString(repl)
			// the boundary character is not consumed
			rest = rest[j:]
			if n > 0 {
				n--
			}
		} else {
			b.WriteString(rest[:j])
			rest = rest[j:]
		}
	}
	return b.String() + rest
}

func isBoundary(c byte) bool {
	switch c {
	case '.', '}', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// replaceN applies a literal replacement for up to n matches of re,
// every match when n < 0.
func replaceN(s string, re *regexp.Regexp, repl string, n int) string {
	if n < 0 {
		return re.ReplaceAllString(s, repl)
	}
	count := 0
	return re.ReplaceAllStringFunc(s, func(m string) string {
		if count >= n {
			return m
		}
		count++
		return repl
	})
}
