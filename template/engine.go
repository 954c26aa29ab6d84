// Package template derives placeholder-abstracted templates from
// Wikidata queries and recovers the slot map needed to fill them back.
// Slot numbering is positional: the ordinal is the 1-based index of the
// structural triple in which a resource first occurs, scanned left to
// right, so re-deriving a template from the same query always yields
// identical slot tags.
package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/kgqa/query"
	"github.com/c360studio/kgqa/resource"
)

// Options control slot abstraction.
type Options struct {
	// RemoveProperties abstracts property resources as well as
	// entities, one slot per distinct property.
	RemoveProperties bool
	// IgnoreType disables the dedicated <type> slot for objects of
	// type relations.
	IgnoreType bool
	// Normalize produces the coarse comparison form: one substitution
	// per triple, ordinals stripped, comparison and sort operators
	// collapsed to wildcard tokens.
	Normalize bool
}

// Slot maps one original literal to its placeholder tag.
type Slot struct {
	Label string `json:"label"`
	Tag   string `json:"slot"`
}

// SlotMap is an ordered label → tag mapping. Order follows the triple
// scan, which makes it stable across runs.
type SlotMap []Slot

// Get returns the tag assigned to a label.
func (m SlotMap) Get(label string) (string, bool) {
	for _, s := range m {
		if s.Label == label {
			return s.Tag, true
		}
	}
	return "", false
}

// Engine derives templates from one query. The query is normalized on
// construction so every triple names its subject explicitly.
type Engine struct {
	query query.Query
}

// New builds an Engine over a Wikidata query string.
func New(text string) *Engine {
	return &Engine{query: query.NormalizeWikidata(text)}
}

// QueryString returns the normalized, compressed query text.
func (e *Engine) QueryString() string { return e.query.String() }

// Triples returns the structural triples of the normalized query.
func (e *Engine) Triples() []Triple { return findTriples(e.QueryString()) }

// Template derives the standard template: entities abstracted, the type
// relation kept concrete.
func (e *Engine) Template() (string, error) {
	return e.EmptyQuery(Options{IgnoreType: true})
}

// BaseTemplate derives the coarse structural form used to compare
// queries by shape: properties abstracted too (the type property maps to
// a single reserved slot), operators collapsed, ordinals stripped.
func (e *Engine) BaseTemplate() (string, error) {
	return e.EmptyQuery(Options{RemoveProperties: true, IgnoreType: true, Normalize: true})
}

// EmptyQuery walks the triples of the query and replaces each entity
// (and, with RemoveProperties, each property) with its slot, then runs
// the structural and literal fix-ups.
func (e *Engine) EmptyQuery(opts Options) (string, error) {
	entities, err := e.query.Entities()
	if err != nil {
		return "", err
	}
	properties, err := e.query.Properties()
	if err != nil {
		return "", err
	}
	work := e.QueryString()

	var types []string
	if !opts.IgnoreType {
		types = typeEntities(work)
	}

	// One substitution per triple in normalize mode, all occurrences
	// otherwise.
	count := -1
	if opts.Normalize {
		count = 1
	}

	triples := findTriples(work)
	unique := dedupe(entities)
	added := make(map[string]bool)
	addedProps := make(map[string]bool)
	propPatterns := propertyPatterns(properties)

	for idx, triple := range triples {
		n := idx + 1
		for _, ent := range unique {
			name := ent.String()
			if added[name] {
				continue
			}
			if ti := indexOf(types, name); ti >= 0 {
				tag := "<type>"
				if len(types) != 1 {
					tag = fmt.Sprintf("<type_%d>", ti+1)
				}
				work = replaceBounded(work, name, tag, count)
				if !opts.Normalize {
					added[name] = true
				}
			}
			if triple.Subject == name {
				work = replaceBounded(work, name, fmt.Sprintf("<sbj_%d>", n), count)
				if !opts.Normalize {
					added[name] = true
				}
			}
			if triple.Object == name {
				work = replaceBounded(work, name, fmt.Sprintf("<obj_%d>", n), count)
				if !opts.Normalize {
					added[name] = true
				}
			}
		}
		if !opts.RemoveProperties {
			continue
		}
		for _, prop := range properties {
			pname := prop.String()
			// The type property of a multi-triple query keeps a
			// reserved slot so it survives ordinal stripping.
			if strings.EqualFold(pname, "wdt:P31") && idx == 0 && len(triples) > 1 {
				if !strings.Contains(work, "<prop_type>") {
					work = replaceN(work, propPatterns[pname], "<prop_type> ", count)
				}
				continue
			}
			if addedProps[pname] {
				continue
			}
			if strings.Contains(triple.Predicate, pname) {
				work = replaceN(work, propPatterns[pname], fmt.Sprintf("<prop_%d> ", n), count)
				if !opts.Normalize {
					addedProps[pname] = true
				}
			}
		}
	}

	restoreCount := -1
	if opts.Normalize {
		restoreCount = 1
	}
	work = strings.Replace(work, "<prop_type>", "wdt:P31", restoreCount)
	work = FixDanglingTemplateTriple(work)
	work, _ = AbstractStringValue(work)
	work, _ = AbstractNumber(work)
	work = RenameXVariable(work)
	work = RenameSubVariable(work)
	work = EnsureWhereClause(work)
	if opts.Normalize {
		work = UnifyFilterOp(work)
		work = UnifySortOp(work)
		work = stripSlotOrdinals(work)
	}
	return work, nil
}

// Slots returns the label → slot mapping for the query, assigning
// identical tags to identical resources via the same triple scan as
// EmptyQuery. The first string literal and the first free-standing
// number contribute <str_value> and <num> entries.
func (e *Engine) Slots(ignoreType bool) (SlotMap, error) {
	entities, err := e.query.Entities()
	if err != nil {
		return nil, err
	}
	work := e.QueryString()

	var types []string
	if !ignoreType {
		types = typeEntities(work)
	}

	var slots SlotMap
	added := make(map[string]bool)
	for idx, triple := range findTriples(work) {
		n := idx + 1
		for _, ent := range entities {
			name := ent.String()
			if added[name] {
				continue
			}
			if ti := indexOf(types, name); ti >= 0 {
				tag := "<type>"
				if len(types) != 1 {
					tag = fmt.Sprintf("<type_%d>", ti+1)
				}
				work = replaceBounded(work, name, tag, -1)
				slots = append(slots, Slot{Label: name, Tag: tag})
				added[name] = true
			} else if triple.Subject == name {
				tag := fmt.Sprintf("<sbj_%d>", n)
				work = replaceBounded(work, name, tag, -1)
				slots = append(slots, Slot{Label: name, Tag: tag})
				added[name] = true
			} else if triple.Object == name {
				tag := fmt.Sprintf("<obj_%d>", n)
				work = replaceBounded(work, name, tag, -1)
				slots = append(slots, Slot{Label: name, Tag: tag})
				added[name] = true
			}
		}
	}

	work, str := AbstractStringValue(work)
	if str != "" {
		slots = append(slots, Slot{Label: str, Tag: "<str_value>"})
	}
	if _, num := AbstractNumber(work); num != "" {
		slots = append(slots, Slot{Label: num, Tag: "<num>"})
	}
	return slots, nil
}

func dedupe(rs []resource.Resource) []resource.Resource {
	seen := make(map[string]bool, len(rs))
	var out []resource.Resource
	for _, r := range rs {
		if seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		out = append(out, r)
	}
	return out
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

func propertyPatterns(props []resource.Resource) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(props))
	for _, p := range props {
		name := p.String()
		if _, ok := out[name]; !ok {
			out[name] = regexp.MustCompile(regexp.QuoteMeta(name) + `\s`)
		}
	}
	return out
}
