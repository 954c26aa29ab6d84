package wikidata

import (
	"regexp"

	"github.com/c360studio/kgqa/vocabulary"
)

// EndpointURL is the public Wikidata SPARQL query service.
const EndpointURL = "https://query.wikidata.org/sparql"

// Prefixes is the ordered Wikidata prefix table. wdt must precede p: the
// p URI prefix is a prefix of the wdt one, and compression applies entries
// in order.
var Prefixes = vocabulary.Table{
	{Short: "wd", URI: "http://www.wikidata.org/entity/"},
	{Short: "wdt", URI: "http://www.wikidata.org/prop/direct/"},
	{Short: "wiki", URI: "https://en.wikipedia.org/wiki/"},
	{Short: "wikibase", URI: "http://wikiba.se/ontology#"},
	{Short: "ps", URI: "http://www.wikidata.org/prop/statement/"},
	{Short: "pq", URI: "http://www.wikidata.org/prop/qualifier/"},
	{Short: "p", URI: "http://www.wikidata.org/prop/"},
	{Short: "rdfs", URI: "http://www.w3.org/2000/01/rdf-schema#"},
	{Short: "bd", URI: "http://www.bigdata.com/rdf#"},
	{Short: "schema", URI: "http://schema.org/"},
	{Short: "skos", URI: "http://www.w3.org/2004/02/skos/core#"},
}

// EntityPattern matches compressed Wikidata entity references.
var EntityPattern = regexp.MustCompile(`wd:[QP]\d+`)

// PropertyPattern matches compressed Wikidata property references across
// the direct, statement and qualifier prefix families.
var PropertyPattern = regexp.MustCompile(`(?:wdt|p|ps|pq):P\d+`)
