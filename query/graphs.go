package query

import (
	"regexp"

	"github.com/c360studio/kgqa/vocabulary/dbpedia"
	"github.com/c360studio/kgqa/vocabulary/wikidata"
)

// NewWikidata builds a Query over the Wikidata prefix table and match
// patterns.
func NewWikidata(text string) Query {
	return New(text, wikidata.Prefixes, wikidata.EntityPattern, wikidata.PropertyPattern, nil)
}

// NewDBpedia builds a Query over the DBpedia prefix table and match
// patterns.
func NewDBpedia(text string) Query {
	return New(text, dbpedia.Prefixes, dbpedia.EntityPattern, dbpedia.PropertyPattern, nil)
}

// contractedTriples matches a semicolon-contracted pair of triples in
// compressed Wikidata notation.
var contractedTriples = regexp.MustCompile(
	`((?:\?\w+)|(?:wd:Q\d+))` + // shared subject
		`\s+(\w+:\w+)\s+` + // first property
		`((?:\?\w+)|(?:wd:Q\d+))` + // first object
		`\s+;\s+` +
		`(\w+:\w+)\s+` + // second property
		`((?:\?\w+)|(?:wd:Q\d+))`) // second object

// NormalizeWikidata expands every semicolon contraction into full
// triples, so each triple names its subject explicitly:
//
//	{ wd:Q123 wdt:P106 wd:Q5 ; wdt:P31 ?obj }
//	{ wd:Q123 wdt:P106 wd:Q5 . wd:Q123 wdt:P31 ?obj }
//
// The result is compressed. Template derivation depends on this form.
func NormalizeWikidata(text string) Query {
	normalized := NewWikidata(text).Text(true, false)
	for contractedTriples.MatchString(normalized) {
		normalized = contractedTriples.ReplaceAllString(normalized, "${1} ${2} ${3} . ${1} ${4} ${5}")
	}
	return NewWikidata(normalized)
}
