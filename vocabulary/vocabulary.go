// Package vocabulary defines the shared data shapes for per-graph
// vocabularies: ordered prefix tables and the ordered rewrite rules the
// tokenizer applies. The concrete tables live in the graph subpackages
// (wikidata, dbpedia) so that the resource registry, the query engine and
// the tokenizer all consult the same data.
package vocabulary

import "regexp"

// Prefix binds a short CURIE prefix to its long-form URI prefix.
type Prefix struct {
	Short string
	URI   string
}

// Table is an ordered prefix table. Order is significant: compression and
// decompression apply entries first to last, and more specific URI prefixes
// must precede their generalizations (wdt before p, for instance).
type Table []Prefix

// URI returns the long-form URI prefix for a short prefix.
func (t Table) URI(short string) (string, bool) {
	for _, p := range t {
		if p.Short == short {
			return p.URI, true
		}
	}
	return "", false
}

// LiteralRule maps a flat token to the literal query text it stands for.
type LiteralRule struct {
	Token string
	Text  string
}

// RegexRule is one (pattern, replacement) step of a rewrite pipeline.
// Replacement uses Go expansion syntax (${1}).
type RegexRule struct {
	Pattern *regexp.Regexp
	Replace string
}

// Apply runs the rule list over s in order. Order is a correctness
// invariant, not an optimization: later rules must not re-match text
// produced by earlier ones.
func Apply(s string, rules []RegexRule) string {
	for _, r := range rules {
		s = r.Pattern.ReplaceAllString(s, r.Replace)
	}
	return s
}
