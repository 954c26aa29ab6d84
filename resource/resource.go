// Package resource models graph resources as canonical URI/CURIE pairs.
// A Resource is immutable once classified; equality is defined on the
// long-form representation only, so compressed and decompressed spellings
// of the same resource compare equal.
package resource

import (
	"fmt"
	"regexp"
)

// Graph tags the source graph a prefix family belongs to.
type Graph string

// Known graph tags.
const (
	GraphWikidata Graph = "wikidata"
	GraphDBpedia  Graph = "dbpedia"
	GraphCommon   Graph = "common"
)

// Family describes one prefix family: the short CURIE prefix, the
// long-form URI prefix, its graph and whether its members are entities
// (as opposed to properties or ontology terms).
type Family struct {
	Graph  Graph
	Short  string
	URI    string
	Entity bool

	shortRe *regexp.Regexp
	uriRe   *regexp.Regexp
}

// NewFamily builds a Family and compiles its match patterns.
func NewFamily(graph Graph, short, uri string, entity bool) *Family {
	return &Family{
		Graph:   graph,
		Short:   short,
		URI:     uri,
		Entity:  entity,
		shortRe: regexp.MustCompile(`^` + regexp.QuoteMeta(short) + `:(\S+)$`),
		uriRe:   regexp.MustCompile(`^<?` + regexp.QuoteMeta(uri) + `([^\s>]+)>?$`),
	}
}

// localName extracts the local name from either notation, reporting
// whether the text belongs to this family at all.
func (f *Family) localName(text string) (string, bool) {
	if m := f.shortRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := f.uriRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// Resource identifies one graph element.
type Resource struct {
	family *Family
	name   string
}

// Render returns the compressed (prefix:LocalName) or decompressed
// (<FullURI>) representation.
func (r Resource) Render(compressed bool) string {
	if compressed {
		return fmt.Sprintf("%s:%s", r.family.Short, r.name)
	}
	return fmt.Sprintf("<%s%s>", r.family.URI, r.name)
}

// String returns the compressed representation.
func (r Resource) String() string { return r.Render(true) }

// Key returns the decompressed representation, the canonical identity
// used for equality, hashing and deduplication.
func (r Resource) Key() string { return r.Render(false) }

// Equal reports whether two resources share a long-form representation,
// regardless of which notation constructed them.
func (r Resource) Equal(other Resource) bool { return r.Key() == other.Key() }

// Graph returns the resource's graph tag.
func (r Resource) Graph() Graph { return r.family.Graph }

// IsEntity reports whether the resource belongs to an entity family.
func (r Resource) IsEntity() bool { return r.family.Entity }

// LocalName returns the local name without prefix.
func (r Resource) LocalName() string { return r.name }
