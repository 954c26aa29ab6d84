package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/kgqa/vocabulary/wikidata"
)

// NotFoundError reports an LC-QuAD 2 template identifier with no
// catalog entry.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template: no catalog entry for %q", e.Key)
}

// rewrite is one ordered entity-replacement rule. Rules that the
// regexp engine cannot express directly (repeated-group constraints)
// carry a function instead of a pattern.
type rewrite struct {
	pattern *regexp.Regexp
	replace string
	fn      func(string) string
}

func (r rewrite) apply(s string) string {
	if r.fn != nil {
		return r.fn(s)
	}
	return r.pattern.ReplaceAllString(s, r.replace)
}

// pairedRewrite builds a rewrite whose pattern captures the same
// syntactic shape twice and only fires when both captures are equal.
func pairedRewrite(expr string, a, b int, build func(g []string) string) rewrite {
	re := regexp.MustCompile(expr)
	return rewrite{fn: func(s string) string {
		return re.ReplaceAllStringFunc(s, func(m string) string {
			g := re.FindStringSubmatch(m)
			if g[a] != g[b] {
				return m
			}
			return build(g)
		})
	}}
}

// indexPair associates the n-th highlighted name of a normalized
// question with the n-th resource of the matching kind in the query.
// A negative Resource index counts from the end.
type indexPair struct {
	Name     int
	Resource int
}

// LCQuAD2Template is one row of the LC-QuAD 2 template catalog: the
// shape identifier, its intent, the entity rewrite rules and the index
// maps that align question names with query resources.
type LCQuAD2Template struct {
	Key       string
	Name      string
	Intent    string
	rules     []rewrite
	entityMap []indexPair
	valueMap  []indexPair
	numberMap []indexPair
	slotMap   []indexPair
	baseQuery string
	altQuery  string
	needsFix  bool
	useEngine bool
}

// LabelEntity pairs a question label with the query entity it names.
type LabelEntity struct {
	Label  string
	Entity string
}

var (
	questionNamePattern = regexp.MustCompile(`[{<]([^{]*?)[>}]`)
	anyEntityPattern    = regexp.MustCompile(`\w+:Q[0-9]+`)
	quotedValuePattern  = regexp.MustCompile(`'(.*?)'`)
	numberTokenPattern  = regexp.MustCompile(`(\d+\.?\d*)`)
	placeholderPattern  = regexp.MustCompile(`<[^<>]+?>`)
)

// Lookup resolves a template shape identifier to its catalog row. The
// identifier is matched case-insensitively with backticks stripped.
func Lookup(key string) (*LCQuAD2Template, error) {
	norm := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(key), "`", ""))
	for _, t := range Catalog {
		if t.Key == norm {
			return t, nil
		}
	}
	return nil, &NotFoundError{Key: key}
}

// LookupID resolves a numeric template identifier, used by dataset
// entries that carry no shape string.
func LookupID(id int) (*LCQuAD2Template, error) {
	return Lookup(fmt.Sprintf("empty %d", id))
}

// ReplaceEntities abstracts the entities of a query into placeholders.
// Catalog rows normally delegate to the positional Engine; rows with
// useEngine unset fall back to their own ordered rewrite rules.
func (t *LCQuAD2Template) ReplaceEntities(queryString string) (string, error) {
	if t.useEngine {
		return New(queryString).EmptyQuery(Options{IgnoreType: true})
	}
	for _, r := range t.rules {
		queryString = r.apply(queryString)
	}
	if t.needsFix {
		queryString = FixDanglingTemplateTriple(queryString)
	}
	return queryString, nil
}

// ExtractResources aligns the highlighted names of a normalized
// question with the entities, quoted values and numbers of its query.
// Value and number labels are prefixed so the three kinds never
// collide in the result.
func (t *LCQuAD2Template) ExtractResources(question, queryString string) map[string]string {
	names := findGroups(questionNamePattern, question)
	entities := anyEntityPattern.FindAllString(queryString, -1)
	values := findGroups(quotedValuePattern, queryString)
	numbers := findGroups(numberTokenPattern, queryString)

	result := make(map[string]string)
	for _, p := range t.entityMap {
		if v, ok := pick(entities, p.Resource); ok && p.Name < len(names) {
			result[names[p.Name]] = v
		}
	}
	for _, p := range t.valueMap {
		if v, ok := pick(values, p.Resource); ok && p.Name < len(names) {
			result["value_"+strings.Trim(names[p.Name], "'")] = v
		}
	}
	for _, p := range t.numberMap {
		if v, ok := pick(numbers, p.Resource); ok && p.Name < len(names) {
			result["number_"+names[p.Name]] = v
		}
	}
	return result
}

// LabelEntityList pairs question labels with Wikidata entities in
// catalog order, for dataset normalization.
func (t *LCQuAD2Template) LabelEntityList(question, queryString string) []LabelEntity {
	names := findGroups(questionNamePattern, question)
	entities := wikidata.EntityPattern.FindAllString(queryString, -1)
	var result []LabelEntity
	for _, p := range t.entityMap {
		if v, ok := pick(entities, p.Resource); ok && p.Name < len(names) {
			result = append(result, LabelEntity{Label: names[p.Name], Entity: v})
		}
	}
	return result
}

// SlotList pairs question labels with the placeholders of the
// abstracted query, in catalog order.
func (t *LCQuAD2Template) SlotList(question, queryString string) (SlotMap, error) {
	empty, err := t.ReplaceEntities(queryString)
	if err != nil {
		return nil, err
	}
	names := findGroups(questionNamePattern, question)
	placeholders := placeholderPattern.FindAllString(empty, -1)
	var result SlotMap
	for _, p := range t.slotMap {
		if v, ok := pick(placeholders, p.Resource); ok && p.Name < len(names) {
			result = append(result, Slot{
				Label: strings.Trim(names[p.Name], "'"),
				Tag:   v,
			})
		}
	}
	return result, nil
}

// BaseQuery returns the canonical query shape of the template. Rows
// with statement qualifiers have an alternative string-filter shape.
func (t *LCQuAD2Template) BaseQuery(alternative bool) string {
	if alternative && t.altQuery != "" {
		return t.altQuery
	}
	return t.baseQuery
}

func (t *LCQuAD2Template) String() string { return t.Name }

func findGroups(re *regexp.Regexp, s string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

func pick(list []string, idx int) (string, bool) {
	if idx < 0 {
		idx += len(list)
	}
	if idx < 0 || idx >= len(list) {
		return "", false
	}
	return list[idx], true
}

func rule(expr, repl string) rewrite {
	return rewrite{pattern: regexp.MustCompile(expr), replace: repl}
}

// Catalog lists every LC-QuAD 2 template shape in definition order.
var Catalog = []*LCQuAD2Template{
	{
		Key:    "<?s p o ; ?s instanceof type>",
		Name:   "<?S P O ; ?S InstanceOf Type>",
		Intent: "select_subject_instance_of_type",
		rules: []rewrite{
			rule(`(\?\w+\swdt:P31\s)\w+:Q[0-9]+`, `${1}<type>`),
			rule(`(\?\w+\s.*\s)\w+:Q[0-9]+`, `${1}<obj>`),
		},
		entityMap: []indexPair{{0, 1}, {2, 0}},
		slotMap:   []indexPair{{0, 1}, {2, 0}},
		baseQuery: "select distinct ?sbj where { ?sbj <direct_prop> <obj> . ?sbj wdt:P31 <type> }",
		useEngine: true,
	},
	{
		Key:    "<?s p o ; ?s instanceof type ; contains word >",
		Name:   "<?S P O ; ?S instanceOf Type ; contains word >",
		Intent: "select_subject_instance_of_type_contains_word",
		rules: []rewrite{
			rule(`(\?\w+\swdt:P31\s)\w+:Q[0-9]+`, `${1}<type>`),
			rule(`lcase\((.*?)'\w+'\)`, `lcase(${1}<label>)`),
		},
		entityMap: []indexPair{{0, 0}},
		valueMap:  []indexPair{{1, 0}},
		slotMap:   []indexPair{{0, 0}, {1, 1}},
		baseQuery: "select distinct ?sbj ?sbj_label where { " +
			"?sbj wdt:P31 <type> . " +
			"?sbj rdfs:label ?sbj_label ." +
			"filter(contains(lcase(?sbj_label), <label>)) . " +
			"filter (lang(?sbj_label) = 'en') } limit 25",
		useEngine: true,
	},
	{
		Key:    "<?s p o ; ?s instanceof type ; starts with character >",
		Name:   "<?S P O ; ?S instanceOf Type ; starts with character >",
		Intent: "select_subject_instance_of_type_starts_with",
		rules: []rewrite{
			rule(`(\?\w+\swdt:P31\s)\w+:Q[0-9]+`, `${1}<type>`),
			rule(`lcase\((.*?)'\w+'\)`, `lcase(${1}<letter>)`),
		},
		entityMap: []indexPair{{0, 0}},
		valueMap:  []indexPair{{1, 0}},
		slotMap:   []indexPair{{0, 0}, {1, 1}},
		baseQuery: "select distinct ?sbj ?sbj_label where { " +
			"?sbj wdt:P31 <type> . ?sbj rdfs:label ?sbj_label . " +
			"filter(strstarts(lcase(?sbj_label), <letter>)) . " +
			"filter (lang(?sbj_label) = 'en') } limit 25 ",
		useEngine: true,
	},
	{
		Key:    "<s p ?o ; ?o instanceof type>",
		Name:   "<S P ?O ; ?O instanceOf Type>",
		Intent: "select_object_instance_of_type",
		rules: []rewrite{
			rule(`(\?\w+\swdt:P31\s)\w+:Q[0-9]+`, `${1}<type>`),
			rule(`\w+:Q[0-9]+(\s.*\s\?\w+)`, `<sbj>${1}`),
		},
		entityMap: []indexPair{{0, 1}, {2, 0}},
		slotMap:   []indexPair{{0, 1}, {2, 0}},
		baseQuery: "select distinct ?obj where { <sbj> <direct_prop> ?obj . ?obj wdt:P31 <type> }",
		useEngine: true,
	},
	{
		Key:    "ask (ent-pred-obj)",
		Name:   "Ask (ent-pred-obj)",
		Intent: "ask_one_fact",
		rules: []rewrite{
			rule(`\w+:Q[0-9]+(\s.*\s)\w+:Q[0-9]+`, `<sbj>${1}<obj>`),
		},
		entityMap: []indexPair{{0, 0}, {2, 1}},
		slotMap:   []indexPair{{0, 0}, {2, 1}},
		baseQuery: "ask where { <sbj> <direct_prop> <obj> }",
		useEngine: true,
	},
	{
		Key:    "ask ?sbj ?pred ?obj filter ?obj = num",
		Name:   "ASK ?sbj ?pred ?obj filter ?obj = num",
		Intent: "ask_one_fact_with_filter",
		rules: []rewrite{
			rule(`\w+:Q[0-9]+(\s.*\s\?\w+)`, `<sbj>${1}`),
			rule(`(\?\w+)\s*([=<>])\s*(-?\d+\.?\d*)`, `${1} ${2} <num>`),
		},
		entityMap: []indexPair{{1, 0}},
		numberMap: []indexPair{{3, -1}},
		slotMap:   []indexPair{{1, 0}, {3, 1}},
		baseQuery: "ask where { <sbj> <direct_prop> ?obj filter(?obj [=|<|>] <num>) } ",
		useEngine: true,
	},
	{
		Key:    "ask (ent-pred-obj1 . ent-pred-obj2)",
		Name:   "Ask (ent-pred-obj1 . ent-pred-obj2)",
		Intent: "ask_two_facts",
		rules: []rewrite{
			rule(
				`\w+:Q[0-9]+(\s.*\s)\w+:Q[0-9]+([\s.]+)\w+:Q[0-9]+(\s.*\s)\w+:Q[0-9]+`,
				`<sbj>${1}<obj_1>${2}<sbj>${3}<obj_2>`,
			),
		},
		entityMap: []indexPair{{0, 0}, {2, 1}, {3, 3}},
		slotMap:   []indexPair{{0, 0}, {2, 1}, {3, 3}},
		baseQuery: "ask where { <sbj> <direct_prop> <obj_1> . <sbj> <direct_prop> <obj_2> }",
		useEngine: true,
	},
	{
		Key:    "e ref ?f",
		Name:   "E REF ?F",
		Intent: "select_one_fact_subject",
		rules: []rewrite{
			rule(`\w+:Q[0-9]+`, `<sbj>`),
		},
		entityMap: []indexPair{{1, 0}},
		slotMap:   []indexPair{{1, 0}},
		baseQuery: "select distinct ?answer where { <sbj> <direct_prop> ?answer}",
		useEngine: true,
	},
	{
		Key:    "?d rde e",
		Name:   "?D RDE E",
		Intent: "select_one_fact_object",
		rules: []rewrite{
			rule(`\w+:Q[0-9]+`, `<obj>`),
		},
		entityMap: []indexPair{{1, 0}},
		slotMap:   []indexPair{{1, 0}},
		baseQuery: "select distinct ?answer where { ?answer <direct_prop> <obj>}",
		useEngine: true,
	},
	{
		Key:    "select where (ent-pred-obj1 . ent-pred-obj2)",
		Name:   "select where (ent-pred-obj1 . ent-pred-obj2)",
		Intent: "select_two_answers",
		rules: []rewrite{
			rule(`\w+:Q[0-9]+`, `<sbj>`),
		},
		entityMap: []indexPair{{2, 0}},
		slotMap:   []indexPair{{2, 0}},
		baseQuery: "select ?ans_1 ?ans_2 where { <sbj> <direct_prop_1> ?ans_1 . <sbj> <direct_prop_2> ?ans_2 }",
		useEngine: true,
	},
	{
		Key:    "e ref ?f . ?f rfg g",
		Name:   "E REF ?F . ?F RFG G",
		Intent: "select_two_facts_subject_object",
		rules: []rewrite{
			pairedRewrite(
				`\w+:Q[0-9]+(\s.*\s)(\?\w+)([\s.]+)(\?\w+)(\s.*\s)\w+:Q[0-9]+`,
				2, 4,
				func(g []string) string {
					return "<sbj_1>" + g[1] + g[2] + g[3] + g[4] + g[5] + "<obj_2>"
				},
			),
		},
		entityMap: []indexPair{{1, 0}, {3, 1}},
		slotMap:   []indexPair{{1, 0}, {3, 1}},
		baseQuery: "select ?answer where { <sbj_1> <direct_prop_1> ?answer . ?answer <direct_prop_2> <obj_2>}",
		useEngine: true,
	},
	{
		Key:    "e ref xf . xf rfg ?g",
		Name:   "E REF xF . xF RFG ?G",
		Intent: "select_two_facts_right_subject",
		rules: []rewrite{
			rule(`\w+:Q[0-9]+(\s.*\s\?X)`, `<sbj_1>${1}`),
		},
		entityMap: []indexPair{{2, 0}},
		slotMap:   []indexPair{{2, 0}},
		baseQuery: "select ?answer where { <sbj_1> <direct_prop_1> ?X . ?X <direct_prop_2> ?answer}",
		useEngine: true,
	},
	{
		Key:    "c rcd xd . xd rde ?e",
		Name:   "C RCD xD . xD RDE ?E",
		Intent: "select_two_facts_left_subject",
		rules: []rewrite{
			rule(`\w+:Q[0-9]+(\s.*\s\?X)`, `<sbj_1>${1}`),
		},
		entityMap: []indexPair{{2, 0}},
		slotMap:   []indexPair{{2, 0}},
		baseQuery: "select ?answer where { <sbj_1> <direct_prop_1> ?X . ?X <direct_prop_2> ?answer}",
		useEngine: true,
	},
	{
		Key:    "count ent (ent-pred-obj)",
		Name:   "Count ent (ent-pred-obj)",
		Intent: "count_one_fact_subject",
		rules: []rewrite{
			rule(`(\?\w+\s.*\s)\w+:Q[0-9]+`, `${1}<obj>`),
		},
		entityMap: []indexPair{{1, 0}},
		slotMap:   []indexPair{{1, 0}},
		baseQuery: "select (count(?sub) AS ?value ) { ?sub <direct_prop> <obj> }",
		useEngine: true,
	},
	{
		Key:    "count obj (ent-pred-obj)",
		Name:   "Count Obj (ent-pred-obj)",
		Intent: "count_one_fact_object",
		rules: []rewrite{
			rule(`\w+:Q[0-9]+(\s.*\s\?\w+)`, `<sbj>${1}`),
		},
		entityMap: []indexPair{{1, 0}},
		slotMap:   []indexPair{{1, 0}},
		baseQuery: "select (count(?obj) AS ?value ) { <sbj> <direct_prop> ?obj }",
		useEngine: true,
	},
	{
		Key:    "(e pred ?obj ) prop value",
		Name:   "(E pred ?Obj ) prop value",
		Intent: "select_one_qualifier_value_using_one_statement_property",
		rules: []rewrite{
			pairedRewrite(
				`\w+:Q[0-9]+(\s.*?\s)(\?\w+)(.*?)(\?\w+)`,
				2, 4,
				func(g []string) string {
					return "<sbj_1>" + g[1] + g[2] + g[3] + g[4]
				},
			),
			pairedRewrite(
				`(\?\w+)(.*?)(\?\w+)(\s.*\s)\w+:Q[0-9]+`,
				1, 3,
				func(g []string) string {
					return g[1] + g[2] + g[3] + g[4] + "<obj_2>"
				},
			),
			rule(`'[\d\w\s\-.+/\\]+?'`, `<str_value>`),
		},
		entityMap: []indexPair{{1, 0}, {3, 1}},
		valueMap:  []indexPair{{3, 0}},
		slotMap:   []indexPair{{1, 0}, {3, 1}},
		baseQuery: "select ?value where { " +
			"<sbj_1> <prop_1> ?s . " +
			"?s <prop_s_1> <obj_2> . " +
			"?s <prop_q> ?value}",
		altQuery: "select ?value where { " +
			"<sbj_1> <prop_1> ?s . " +
			"?s <prop_s_1> ?x filter(contains(?x,<str_value>)) . " +
			"?s <prop_q> ?value}",
		useEngine: true,
	},
	{
		Key:    "(e pred f) prop ?value",
		Name:   "(E pred F) prop ?value",
		Intent: "select_object_using_one_statement_property",
		rules: []rewrite{
			rule(`\w+:Q[0-9]+(\s.*\s\?\w+)`, `<sbj_1>${1}`),
			rule(`(\?\w+\s.*?\s)\w+:Q[0-9]+`, `${1}<obj_3>`),
			rule(`'[\d\w\s+-.\\]+?'`, `<str_value>`),
		},
		entityMap: []indexPair{{1, 0}, {3, 1}},
		valueMap:  []indexPair{{3, 0}},
		slotMap:   []indexPair{{1, 0}, {3, 1}},
		baseQuery: "select ?obj where { <sbj_1> <prop_1> ?s . ?s <prop_s_1> ?obj . " +
			"?s <prop_q> <obj_3> }",
		altQuery: "select ?obj where { <sbj_1> <prop_1> ?s . ?s <prop_s_1> ?obj . " +
			"?s <prop_q> ?x filter(contains(?x,<str_value>)) }",
		useEngine: true,
	},
	{
		Key:    "?e is_a type, ?e pred obj  value. max/min (value)",
		Name:   "?E is_a Type, ?E pred Obj  value. MAX/MIN (value)",
		Intent: "rank_instance_of_type_one_fact",
		rules: []rewrite{
			rule(`(\?\w+\swdt:P31\s)\w+:Q[0-9]+`, `${1}<type>`),
		},
		entityMap: []indexPair{{0, 0}},
		slotMap:   []indexPair{{0, 0}},
		baseQuery: "select ?ent where { ?ent wdt:P31 <type> . ?ent <direct_prop> ?obj } order by [asc|desc](?obj)limit 5 ",
		useEngine: true,
	},
	{
		Key:    "?e is_a type. ?e pred obj. ?e-secondclause value. max (value)",
		Name:   "?E is_a Type. ?E pred Obj. ?E-secondClause value. MAX (value)",
		Intent: "rank_max_instance_of_type_two_facts",
		rules: []rewrite{
			rule(`(\?\w+\swdt:P31\s)\w+:Q[0-9]+`, `${1}<type>`),
			rule(`(\?\w+\s.*?\s)\w+:Q[0-9]+`, `${1}<obj_3>`),
		},
		entityMap: []indexPair{{0, 0}, {3, 1}},
		slotMap:   []indexPair{{0, 0}, {3, 1}},
		baseQuery: "select ?ent where { ?ent wdt:P31 <type> . ?ent <direct_prop_1> ?obj . ?ent <direct_prop_2> <obj_3> " +
			"} order by desc(?obj)limit 5 ",
		needsFix:  true,
		useEngine: true,
	},
	{
		Key:    "?e is_a type. ?e pred obj. ?e-secondclause value. min (value)",
		Name:   "?E is_a Type. ?E pred Obj. ?E-secondClause value. MIN (value)",
		Intent: "rank_min_instance_of_type_two_facts",
		rules: []rewrite{
			rule(`(\?\w+\swdt:P31\s)\w+:Q[0-9]+`, `${1}<type>`),
			rule(`(\?\w+\s.*?\s)\w+:Q[0-9]+`, `${1}<obj_3>`),
		},
		entityMap: []indexPair{{0, 0}, {3, 1}},
		slotMap:   []indexPair{{0, 0}, {3, 1}},
		baseQuery: "select ?ent where { ?ent wdt:P31 <type> . ?ent <direct_prop_1> ?obj . ?ent <direct_prop_2> <obj_3> " +
			"} order by asc(?obj)limit 5 ",
		needsFix:  true,
		useEngine: true,
	},
	{
		Key:    "empty 2",
		Name:   "(E pred ?Obj) prop value1 value2",
		Intent: "select_two_qualifier_values_using_one_statement_property",
		rules: []rewrite{
			pairedRewrite(
				`\w+:Q[0-9]+(\sp:)(P\w+\s)(\?\w+\s.*\s\?\w+\sps:)(P\w+\s)\w+:Q[0-9]+`,
				2, 4,
				func(g []string) string {
					return "<sbj_1>" + g[1] + g[2] + g[3] + g[4] + "<obj_2>"
				},
			),
		},
		entityMap: []indexPair{{2, 0}, {4, 1}},
		slotMap:   []indexPair{{2, 0}, {4, 1}},
		baseQuery: "select ?value1 ?value2 where { " +
			"<sbj_1> <prop_1> ?s . " +
			"?s <prop_s_1> <obj_2> . " +
			"?s <prop_q_1> ?value1 . " +
			"?s <prop_q_2> ?value2 }",
		useEngine: true,
	},
	{
		Key:    "empty 3",
		Name:   "(E pred F) prop value",
		Intent: "select_one_qualifier_value_and_object_using_one_statement_property",
		rules: []rewrite{
			rule(`\w+:Q[0-9]+(\s.*\s\?\w+)`, `<sbj_1>${1}`),
		},
		entityMap: []indexPair{{1, 0}},
		slotMap:   []indexPair{{1, 0}},
		baseQuery: "select ?value1 ?obj where { " +
			"<sbj_1> <prop_1> ?s . " +
			"?s <prop_s_1> ?obj . " +
			"?s <prop_q_1> ?value1 . }",
		useEngine: true,
	},
}
