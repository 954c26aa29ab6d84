package dbpedia

import (
	"regexp"

	"github.com/c360studio/kgqa/vocabulary"
)

// EndpointURL is the public DBpedia SPARQL endpoint.
const EndpointURL = "http://dbpedia.org/sparql/"

// Prefixes is the ordered DBpedia prefix table. dbr and res share a URI;
// compression resolves that URI to dbr because it comes first.
var Prefixes = vocabulary.Table{
	{Short: "dbr", URI: "http://dbpedia.org/resource/"},
	{Short: "res", URI: "http://dbpedia.org/resource/"},
	{Short: "dbp", URI: "http://dbpedia.org/property/"},
	{Short: "dbo", URI: "http://dbpedia.org/ontology/"},
	{Short: "rdfs", URI: "http://www.w3.org/2000/01/rdf-schema#"},
	{Short: "rdf", URI: "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
}

// EntityPattern matches compressed DBpedia entity references.
var EntityPattern = regexp.MustCompile(`(?:dbr|res):\S+`)

// PropertyPattern matches compressed DBpedia property references.
var PropertyPattern = regexp.MustCompile(`(?:dbo|dbp):\w+`)
