package template

import "regexp"

// Triple is one structural (subject, predicate, object) match inside a
// query body.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// triplePattern matches a structural triple in compressed Wikidata
// notation. Subjects and objects are variables, slot placeholders or
// entity CURIEs; the predicate may be a property path.
var triplePattern = regexp.MustCompile(
	`(?P<sbj>(?:\?\w+)|<[\w\d_]+?>|(?:wd:Q\d+))` +
		`\s+` +
		`(?P<prop>(?:(?:\w+:P\d+)|(?:\w+:\w+)|[\^+*/])+)` +
		`\s+` +
		`(?P<obj>(?:\?\w+)|<[\w\d_]+?>|(?:wd:Q\d+))`)

var (
	tripleSbjIdx  = triplePattern.SubexpIndex("sbj")
	triplePropIdx = triplePattern.SubexpIndex("prop")
	tripleObjIdx  = triplePattern.SubexpIndex("obj")
)

// typeEntityPattern matches triples whose predicate is a type relation
// (instance-of P31, subclass-of P279, or P273), possibly inside a
// property path. The object group names the type resource.
var typeEntityPattern = regexp.MustCompile(
	`(?P<sbj>(?:\?\w+)|(?:wd:Q\d+))` +
		`\s+` +
		`(?:(?:wdt:P31)|(?:wdt:P279)|(?:wdt:P273)|[\^+*/])+` +
		`\s+` +
		`(?P<type>(?:\?\w+)|(?:wd:Q\d+))`)

var typeObjIdx = typeEntityPattern.SubexpIndex("type")

// findTriples returns the structural triples of a query body in scan
// order.
func findTriples(queryString string) []Triple {
	var out []Triple
	for _, m := range triplePattern.FindAllStringSubmatch(queryString, -1) {
		out = append(out, Triple{
			Subject:   m[tripleSbjIdx],
			Predicate: m[triplePropIdx],
			Object:    m[tripleObjIdx],
		})
	}
	return out
}

// typeEntities returns the objects of every type relation in the query,
// in scan order. Variables are included; callers index into the result
// to number <type_N> slots.
func typeEntities(queryString string) []string {
	var out []string
	for _, m := range typeEntityPattern.FindAllStringSubmatch(queryString, -1) {
		out = append(out, m[typeObjIdx])
	}
	return out
}
