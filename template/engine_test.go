package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateAssignsOrdinalSlots(t *testing.T) {
	e := New("select distinct ?sbj where { ?sbj wdt:P1376 wd:Q1195 . ?sbj wdt:P31 wd:Q515 }")

	got, err := e.Template()
	require.NoError(t, err)
	assert.Equal(t, "select distinct ?sbj where { ?sbj wdt:P1376 <obj_1> . ?sbj wdt:P31 <obj_2> }", got)
}

func TestBaseTemplateCollapsesShape(t *testing.T) {
	e := New("select distinct ?sbj where { ?sbj wdt:P1376 wd:Q1195 . ?sbj wdt:P31 wd:Q515 }")

	got, err := e.BaseTemplate()
	require.NoError(t, err)
	assert.Equal(t, "select distinct ?sbj where { ?sbj <prop> <obj> . ?sbj wdt:P31 <obj> }", got)
}

func TestTemplateAbstractsNumbers(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "integer equality",
			query: "ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj = 307) }",
			want:  "ASK WHERE { <sbj_1> wdt:P2102 ?obj filter(?obj = <num>) }",
		},
		{
			name:  "less than",
			query: "ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj < 307) }",
			want:  "ASK WHERE { <sbj_1> wdt:P2102 ?obj filter(?obj < <num>) }",
		},
		{
			name:  "greater than",
			query: "ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj > 307) }",
			want:  "ASK WHERE { <sbj_1> wdt:P2102 ?obj filter(?obj > <num>) }",
		},
		{
			name:  "negative integer",
			query: "ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj = -307) }",
			want:  "ASK WHERE { <sbj_1> wdt:P2102 ?obj filter(?obj = <num>) }",
		},
		{
			name:  "decimal",
			query: "ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj = 1.2) }",
			want:  "ASK WHERE { <sbj_1> wdt:P2102 ?obj filter(?obj = <num>) }",
		},
		{
			name:  "negative decimal",
			query: "ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj = -1.2) }",
			want:  "ASK WHERE { <sbj_1> wdt:P2102 ?obj filter(?obj = <num>) }",
		},
		{
			name:  "positive exponent",
			query: "ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj = 1e+10) }",
			want:  "ASK WHERE { <sbj_1> wdt:P2102 ?obj filter(?obj = <num>) }",
		},
		{
			name:  "negative exponent",
			query: "ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj = 1.7e-10) }",
			want:  "ASK WHERE { <sbj_1> wdt:P2102 ?obj filter(?obj = <num>) }",
		},
		{
			name:  "dataset noise prefix",
			query: "ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj = t12341231) }",
			want:  "ASK WHERE { <sbj_1> wdt:P2102 ?obj filter(?obj = <num>) }",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := New(tc.query).Template()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTemplatePreservesLimitCount(t *testing.T) {
	e := New("SELECT DISTINCT ?sbj ?sbj_label WHERE { ?sbj wdt:P31 wd:Q427626 . ?sbj rdfs:label ?sbj_label . FILTER(CONTAINS(lcase(?sbj_label), 'variety')) . FILTER (lang(?sbj_label) = 'en') } LIMIT 25")

	got, err := e.Template()
	require.NoError(t, err)
	assert.Equal(t, "SELECT DISTINCT ?sbj ?sbj_label WHERE { ?sbj wdt:P31 <obj_1> . ?sbj rdfs:label ?sbj_label . FILTER(CONTAINS(lcase(?sbj_label), <str_value>)) . FILTER (lang(?sbj_label) = 'en') } LIMIT 25", got)
}

func TestSlotsAcrossUnionBranches(t *testing.T) {
	e := New("SELECT DISTINCT ?uri WHERE { ?uri  wdt:P106 wd:Q11631 . { ?uri wdt:P27 wd:Q15180 } UNION { ?uri wdt:P27 wd:Q159 } }")

	slots, err := e.Slots(true)
	require.NoError(t, err)
	want := SlotMap{
		{Label: "wd:Q11631", Tag: "<obj_1>"},
		{Label: "wd:Q15180", Tag: "<obj_2>"},
		{Label: "wd:Q159", Tag: "<obj_3>"},
	}
	assert.Equal(t, want, slots)
}

func TestSlotsPropertyPathSubject(t *testing.T) {
	e := New("SELECT DISTINCT ?uri WHERE {  wd:Q5620660 ^pq:P453/ps:P161 ?uri }")

	slots, err := e.Slots(true)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, Slot{Label: "wd:Q5620660", Tag: "<sbj_1>"}, slots[0])
}

func TestSlotsTypeRelation(t *testing.T) {
	e := New("select distinct ?sbj where { ?sbj wdt:P1376 wd:Q1195 . ?sbj wdt:P31 wd:Q515 }")

	slots, err := e.Slots(false)
	require.NoError(t, err)
	want := SlotMap{
		{Label: "wd:Q1195", Tag: "<obj_1>"},
		{Label: "wd:Q515", Tag: "<type>"},
	}
	assert.Equal(t, want, slots)

	tag, ok := slots.Get("wd:Q515")
	require.True(t, ok)
	assert.Equal(t, "<type>", tag)
}

func TestSlotsStringAndNumberValues(t *testing.T) {
	e := New("SELECT DISTINCT ?sbj ?sbj_label WHERE { ?sbj wdt:P31 wd:Q427626 . ?sbj rdfs:label ?sbj_label . FILTER(CONTAINS(lcase(?sbj_label), 'variety')) . FILTER (lang(?sbj_label) = 'en') } LIMIT 25")

	slots, err := e.Slots(true)
	require.NoError(t, err)
	want := SlotMap{
		{Label: "wd:Q427626", Tag: "<obj_1>"},
		{Label: "variety", Tag: "<str_value>"},
	}
	assert.Equal(t, want, slots)

	e = New("ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj = 307) }")
	slots, err = e.Slots(true)
	require.NoError(t, err)
	want = SlotMap{
		{Label: "wd:Q650", Tag: "<sbj_1>"},
		{Label: "307", Tag: "<num>"},
	}
	assert.Equal(t, want, slots)
}

func TestTriples(t *testing.T) {
	e := New("select ?value where { wd:Q180589 p:P2128 ?s . ?s ps:P2128 ?x . ?s pq:P459 ?value }")

	triples := e.Triples()
	require.Len(t, triples, 3)
	assert.Equal(t, Triple{Subject: "wd:Q180589", Predicate: "p:P2128", Object: "?s"}, triples[0])
	assert.Equal(t, Triple{Subject: "?s", Predicate: "ps:P2128", Object: "?x"}, triples[1])
	assert.Equal(t, Triple{Subject: "?s", Predicate: "pq:P459", Object: "?value"}, triples[2])
}

func TestFixDanglingQueryTriple(t *testing.T) {
	query := "select ?ent where { ?ent wdt:P31 wd:Q19723451 . ?ent wdt:P4140 ?obj } ?ent wdt:P176 wd:Q16538568 ORDER BY DESC(?obj)LIMIT 5"
	want := "select ?ent where { ?ent wdt:P31 wd:Q19723451 . ?ent wdt:P4140 ?obj . ?ent wdt:P176 wd:Q16538568 } ORDER BY DESC(?obj)LIMIT 5"
	assert.Equal(t, want, FixDanglingQueryTriple(query))
}

func TestFixDanglingTemplateTriple(t *testing.T) {
	query := "select ?ent where { ?ent wdt:P31 <type> . ?ent wdt:P4140 ?obj } ?ent wdt:P176 <obj_3> ORDER BY DESC(?obj)LIMIT 5"
	want := "select ?ent where { ?ent wdt:P31 <type> . ?ent wdt:P4140 ?obj . ?ent wdt:P176 <obj_3> } ORDER BY DESC(?obj)LIMIT 5"
	assert.Equal(t, want, FixDanglingTemplateTriple(query))
}

func TestVariableRenames(t *testing.T) {
	assert.Equal(t,
		"select ?answer where { wd:Q169794 wdt:P135 ?obj . ?obj wdt:P740 ?answer}",
		RenameXVariable("select ?answer where { wd:Q169794 wdt:P135 ?X . ?X wdt:P740 ?answer}"))
	assert.Equal(t,
		"SELECT (COUNT(?sbj) AS ?value ) { ?sbj wdt:P1196 wd:Q178561 }",
		RenameSubVariable("SELECT (COUNT(?sub) AS ?value ) { ?sub wdt:P1196 wd:Q178561 }"))
}

func TestEnsureWhereClause(t *testing.T) {
	assert.Equal(t,
		"SELECT (COUNT(?obj) AS ?value ) where { wd:Q6475 wdt:P1071 ?obj }",
		EnsureWhereClause("SELECT (COUNT(?obj) AS ?value ) { wd:Q6475 wdt:P1071 ?obj }"))

	unchanged := "SELECT ?obj WHERE { wd:Q6475 wdt:P1071 ?obj }"
	assert.Equal(t, unchanged, EnsureWhereClause(unchanged))
}

func TestStripNumberNoise(t *testing.T) {
	assert.Equal(t,
		"ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj = 12341231) }",
		StripNumberNoise("ASK WHERE { wd:Q650 wdt:P2102 ?obj filter(?obj = t12341231) }"))
}

func TestAbstractStringValue(t *testing.T) {
	got, value := AbstractStringValue("filter(contains(?x,'162.0')) . filter (lang(?x) = 'en')")
	assert.Equal(t, "filter(contains(?x,<str_value>)) . filter (lang(?x) = 'en')", got)
	assert.Equal(t, "162.0", value)

	got, value = AbstractStringValue("ask where { wd:Q1 wdt:P2 wd:Q3 }")
	assert.Equal(t, "ask where { wd:Q1 wdt:P2 wd:Q3 }", got)
	assert.Empty(t, value)
}
