// Package query wraps a graph query string together with the ordered
// prefix table of its source graph. Queries are immutable value objects:
// compression, decompression and placeholder substitution all return new
// text, never mutate the receiver.
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/kgqa/resource"
	"github.com/c360studio/kgqa/vocabulary"
)

var placeholderPattern = regexp.MustCompile(`<[\w_\d]+?>`)

// Query holds raw query text plus the prefix table and match patterns of
// its graph. Derived views (compressed text, entity list) are computed on
// demand and never stored.
type Query struct {
	text     string
	prefixes vocabulary.Table
	registry *resource.Registry

	entityPat   *regexp.Regexp
	propertyPat *regexp.Regexp

	compressRules   []vocabulary.RegexRule
	decompressRules []vocabulary.RegexRule
}

// New builds a Query over an explicit prefix table and match patterns.
// The graph constructors in graphs.go cover the common cases.
func New(text string, prefixes vocabulary.Table, entityPat, propertyPat *regexp.Regexp, registry *resource.Registry) Query {
	if registry == nil {
		registry = resource.DefaultRegistry
	}
	q := Query{
		text:        text,
		prefixes:    prefixes,
		registry:    registry,
		entityPat:   entityPat,
		propertyPat: propertyPat,
	}
	for _, p := range prefixes {
		q.compressRules = append(q.compressRules, vocabulary.RegexRule{
			Pattern: regexp.MustCompile(`<` + regexp.QuoteMeta(p.URI) + `(\S+?)>`),
			Replace: p.Short + ":${1}",
		})
		// the boundary keeps short prefixes like p from matching
		// inside the http: of an already expanded URI
		q.decompressRules = append(q.decompressRules, vocabulary.RegexRule{
			Pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(p.Short) + `:(\S+)`),
			Replace: "<" + p.URI + "${1}>",
		})
	}
	return q
}

// Raw returns the query text as constructed.
func (q Query) Raw() string { return q.text }

// IsCompressed reports whether the query uses only CURIE notation, with
// no long-form <URI> references left.
func (q Query) IsCompressed() bool {
	return !strings.Contains(q.text, ">")
}

// Compress converts every long-form URI to its prefixed representation.
func (q Query) Compress() string {
	if q.IsCompressed() {
		return q.text
	}
	return vocabulary.Apply(q.text, q.compressRules)
}

// Decompress converts every prefixed reference to its long-form URI.
func (q Query) Decompress() string {
	if !q.IsCompressed() {
		return q.text
	}
	return vocabulary.Apply(q.text, q.decompressRules)
}

// Text returns the query string, optionally compressed and optionally
// preceded by PREFIX clauses for the graph's prefix table.
func (q Query) Text(compressed, addPrefixes bool) string {
	text := q.text
	if compressed {
		text = q.Compress()
	}
	if addPrefixes {
		text = PrefixHeader(q.prefixes) + "\n" + text
	}
	return strings.TrimSpace(text)
}

// String returns the compressed query text.
func (q Query) String() string { return q.Text(true, false) }

// PrefixHeader renders PREFIX clauses for an ordered prefix table.
func PrefixHeader(prefixes vocabulary.Table) string {
	var b strings.Builder
	for _, p := range prefixes {
		fmt.Fprintf(&b, "PREFIX %s: <%s>\n", p.Short, p.URI)
	}
	return b.String()
}

// Entities returns the entity resources referenced by the query, in
// first-occurrence order over the compressed text. Duplicates are
// preserved; deduplication by canonical identity happens downstream.
func (q Query) Entities() ([]resource.Resource, error) {
	return q.scan(q.entityPat)
}

// Properties returns the property resources referenced by the query, in
// first-occurrence order over the compressed text.
func (q Query) Properties() ([]resource.Resource, error) {
	return q.scan(q.propertyPat)
}

func (q Query) scan(pattern *regexp.Regexp) ([]resource.Resource, error) {
	if pattern == nil {
		return nil, nil
	}
	var out []resource.Resource
	for _, match := range pattern.FindAllString(q.Text(true, false), -1) {
		res, err := q.registry.Classify(match)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// IsValid reports whether the query is ready to execute against a live
// store, i.e. contains no unfilled <name> placeholder.
func (q Query) IsValid() bool {
	return !placeholderPattern.MatchString(q.text)
}

// EmptyForm substitutes every entity and property occurrence with an
// ordinal placeholder (<ent_1>, <prop_1>, ...) in scan order. It is the
// untyped sibling of the template engine's output, useful as a quick
// structural fingerprint.
func (q Query) EmptyForm() (string, error) {
	text := q.Text(true, false)
	entities, err := q.Entities()
	if err != nil {
		return "", err
	}
	for idx, ent := range entities {
		text = strings.ReplaceAll(text, ent.String(), fmt.Sprintf("<ent_%d>", idx+1))
	}
	properties, err := q.Properties()
	if err != nil {
		return "", err
	}
	for idx, prop := range properties {
		text = strings.ReplaceAll(text, prop.String(), fmt.Sprintf("<prop_%d>", idx+1))
	}
	return text, nil
}
