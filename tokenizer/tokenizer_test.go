package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/kgqa/query"
	"github.com/c360studio/kgqa/template"
)

func TestWikidataEncode(t *testing.T) {
	tok := NewWikidata()
	want := "select distinct var_uri where brack_open wd_q4072104 wdt_p184 var_uri brack_close"

	long := query.NewWikidata("SELECT DISTINCT ?uri WHERE { <http://www.wikidata.org/entity/Q4072104> <http://www.wikidata.org/prop/direct/P184> ?uri }")
	short := query.NewWikidata("SELECT DISTINCT ?uri WHERE { wd:Q4072104 wdt:P184 ?uri }")

	assert.Equal(t, want, tok.Encode(long), "long form")
	assert.Equal(t, want, tok.Encode(short), "curie form")
}

func TestWikidataDecode(t *testing.T) {
	tok := NewWikidata()
	cases := []struct {
		name   string
		tokens string
		want   string
	}{
		{
			name:   "plain select",
			tokens: "select distinct var_uri where brack_open wd_q4072104 wdt_p184 var_uri brack_close",
			want:   "select distinct ?uri where { wd:Q4072104 wdt:P184 ?uri }",
		},
		{
			name:   "casing restored for unseen ids",
			tokens: "select distinct var_uri where brack_open wd_q3025443 wdt_p86 var_uri brack_close",
			want:   "select distinct ?uri where { wd:Q3025443 wdt:P86 ?uri }",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tok.Decode(tc.tokens).Raw())
		})
	}
}

func TestWikidataStatementQueryRoundTrip(t *testing.T) {
	tok := NewWikidata()

	raw := "SELECT ?value WHERE { <x> p:P2128 ?s . ?s ps:P2128 ?x filter(contains(?x,'162.0')) . ?s pq:P459 ?value}"
	encoded := "select var_value where brack_open placeholder_x p_p2128 var_s sep_dot var_s ps_p2128 var_x filter attr_open contains attr_open var_x sep_comma apstrph_162_dot_0_apstrph attr_close attr_close sep_dot var_s pq_p459 var_value brack_close"
	decoded := "select ?value where { <x> p:P2128 ?s . ?s ps:P2128 ?x filter ( contains ( ?x , '162.0' ) ) . ?s pq:P459 ?value }"

	assert.Equal(t, encoded, tok.Encode(query.NewWikidata(raw)))
	assert.Equal(t, decoded, tok.Decode(encoded).Raw())
}

func TestWikidataNumericFilterRoundTrip(t *testing.T) {
	tok := NewWikidata()

	raw := "ASK WHERE { wd:Q658 wdt:P1108 ?obj filter(?obj < 1.2) }"
	encoded := "ask where brack_open wd_q658 wdt_p1108 var_obj filter attr_open var_obj math_lt 1_dot_2 attr_close brack_close"
	decoded := "ask where { wd:Q658 wdt:P1108 ?obj filter ( ?obj < 1.2 ) }"

	assert.Equal(t, encoded, tok.Encode(query.NewWikidata(raw)))
	assert.Equal(t, decoded, tok.Decode(encoded).Raw())
}

func TestWikidataStringFilterRoundTrip(t *testing.T) {
	tok := NewWikidata()

	raw := "SELECT DISTINCT ?sbj ?sbj_label WHERE { ?sbj wdt:P31 wd:Q427626 . ?sbj rdfs:label ?sbj_label . FILTER(CONTAINS(lcase(?sbj_label), 'variety')) . FILTER (lang(?sbj_label) = 'en') } LIMIT 25"
	encoded := "select distinct var_sbj var_sbj_label where brack_open var_sbj wdt_p31 wd_q427626 sep_dot var_sbj rdfs_label var_sbj_label sep_dot filter attr_open contains attr_open lcase attr_open var_sbj_label attr_close sep_comma apstrph_variety_apstrph attr_close attr_close sep_dot filter attr_open lang attr_open var_sbj_label attr_close math_eq apstrph_en_apstrph attr_close brack_close limit 25"
	decoded := "select distinct ?sbj ?sbj_label where { ?sbj wdt:P31 wd:Q427626 . ?sbj rdfs:label ?sbj_label . filter ( contains ( lcase ( ?sbj_label ) , 'variety' ) ) . filter ( lang ( ?sbj_label ) = 'en' ) } limit 25"

	assert.Equal(t, encoded, tok.Encode(query.NewWikidata(raw)))
	assert.Equal(t, decoded, tok.Decode(encoded).Raw())
}

func TestWikidataTemplateRoundTrip(t *testing.T) {
	tok := NewWikidata()

	raw := "SELECT DISTINCT ?sbj ?sbj_label WHERE { ?sbj wdt:P31 wd:Q427626 . ?sbj rdfs:label ?sbj_label . FILTER(CONTAINS(lcase(?sbj_label), 'variety')) . FILTER (lang(?sbj_label) = 'en') } LIMIT 25"
	derived, err := template.New(raw).Template()
	require.NoError(t, err)

	encoded := "select distinct var_sbj var_sbj_label where brack_open var_sbj wdt_p31 placeholder_obj_1 sep_dot var_sbj rdfs_label var_sbj_label sep_dot filter attr_open contains attr_open lcase attr_open var_sbj_label attr_close sep_comma placeholder_str_value attr_close attr_close sep_dot filter attr_open lang attr_open var_sbj_label attr_close math_eq apstrph_en_apstrph attr_close brack_close limit 25"
	decoded := "select distinct ?sbj ?sbj_label where { ?sbj wdt:P31 <obj_1> . ?sbj rdfs:label ?sbj_label . filter ( contains ( lcase ( ?sbj_label ) , <str_value> ) ) . filter ( lang ( ?sbj_label ) = 'en' ) } limit 25"

	assert.Equal(t, encoded, tok.Encode(query.NewWikidata(derived)))
	assert.Equal(t, decoded, tok.Decode(encoded).Raw())
}

func TestDBpediaDecode(t *testing.T) {
	tok := NewDBpedia()
	cases := []struct {
		name   string
		tokens string
		want   string
	}{
		{
			name:   "two facts",
			tokens: "ask where brack_open dbr_Island_Barn_Reservoir dbo_areaTotal var_a1 sep_dot dbr_Arab_League dbo_areaTotal var_a2 brack_close",
			want:   "ask where { dbr:Island_Barn_Reservoir dbo:areaTotal ?a1 . dbr:Arab_League dbo:areaTotal ?a2 }",
		},
		{
			name:   "parenthesized resource name",
			tokens: "SELECT DISTINCT var_uri where brack_open dbr_Mad_River_ attr_open California attr_close  dbo_city var_uri brack_close",
			want:   "SELECT DISTINCT ?uri where { dbr:Mad_River_(California) dbo:city ?uri }",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tok.Decode(tc.tokens).Raw())
		})
	}
}
