package resource

import (
	"fmt"

	"github.com/c360studio/kgqa/vocabulary/dbpedia"
	"github.com/c360studio/kgqa/vocabulary/wikidata"
)

// UnsupportedError reports a URI or CURIE that matches no registered
// family. It is always surfaced, never defaulted.
type UnsupportedError struct {
	Text string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("resource %q matches no registered family", e.Text)
}

// Registry classifies resource strings against an ordered list of
// families. Classification is deterministic: families are consulted in
// registration order and the first match wins. A Registry is read-only
// after construction and safe for concurrent use.
type Registry struct {
	families []*Family
}

// NewRegistry creates a registry over the given families, consulted in
// the order given.
func NewRegistry(families ...*Family) *Registry {
	return &Registry{families: families}
}

// Classify resolves a URI or CURIE string to a Resource. It returns an
// UnsupportedError when no family matches.
func (r *Registry) Classify(text string) (Resource, error) {
	for _, f := range r.families {
		if name, ok := f.localName(text); ok {
			return Resource{family: f, name: name}, nil
		}
	}
	return Resource{}, &UnsupportedError{Text: text}
}

// DefaultFamilies returns the built-in family list in priority order.
// The Wikidata property families precede the bare p family so that
// statement and qualifier URIs resolve before the generic prefix, and
// dbr precedes res for the shared DBpedia resource URI.
func DefaultFamilies() []*Family {
	wdURI := func(short string) string {
		uri, _ := wikidata.Prefixes.URI(short)
		return uri
	}
	dbURI := func(short string) string {
		uri, _ := dbpedia.Prefixes.URI(short)
		return uri
	}
	return []*Family{
		NewFamily(GraphWikidata, "wd", wdURI("wd"), true),
		NewFamily(GraphWikidata, "wdt", wdURI("wdt"), false),
		NewFamily(GraphWikidata, "ps", wdURI("ps"), false),
		NewFamily(GraphWikidata, "pq", wdURI("pq"), false),
		NewFamily(GraphWikidata, "p", wdURI("p"), false),
		NewFamily(GraphDBpedia, "dbr", dbURI("dbr"), true),
		NewFamily(GraphDBpedia, "res", dbURI("res"), true),
		NewFamily(GraphDBpedia, "dbp", dbURI("dbp"), false),
		NewFamily(GraphDBpedia, "dbo", dbURI("dbo"), false),
		NewFamily(GraphCommon, "schema", wdURI("schema"), false),
		NewFamily(GraphCommon, "rdfs", wdURI("rdfs"), false),
		NewFamily(GraphCommon, "wiki", wdURI("wiki"), false),
	}
}

// DefaultRegistry is the registry over DefaultFamilies.
var DefaultRegistry = NewRegistry(DefaultFamilies()...)
