package slotfill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/kgqa/linking"
)

func TestNew(t *testing.T) {
	for _, method := range []string{"basic", "standard", "force", "Force"} {
		f, err := New(method)
		require.NoError(t, err, method)
		require.NotNil(t, f)
	}

	_, err := New("guess")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestBasicFill(t *testing.T) {
	hints := []Hint{
		{Label: "meghalaya", Slot: "<sbj>"},
	}
	mentions := []linking.Mention{
		{Label: "Meghalaya", URL: "wd:Q1195"},
	}

	got, audit := Basic{}.Fill("select distinct ?answer where { <sbj> wdt:P36 ?answer }", hints, mentions)
	assert.Equal(t, "select distinct ?answer where { wd:Q1195 wdt:P36 ?answer }", got)
	require.Len(t, audit, 1)
	assert.Equal(t, Audit{Slot: "<sbj>", Value: "wd:Q1195"}, audit[0])
}

func TestBasicFillLiteralSlots(t *testing.T) {
	hints := []Hint{
		{Label: "3 5", Slot: "<num>"},
		{Label: "vitellius", Slot: "<str_value>"},
	}

	got, audit := Basic{}.Fill("ask where { ?x wdt:P2044 ?obj filter(?obj > <num>) . filter(contains(?l, <str_value>)) }", hints, nil)
	assert.Contains(t, got, "?obj > 3.5")
	assert.Contains(t, got, "contains(?l, 'vitellius')")
	assert.Len(t, audit, 2)
}

func TestStandardFillSkipsAbsentSlots(t *testing.T) {
	hints := []Hint{
		{Label: "meghalaya", Slot: "<sbj>"},
		{Label: "india", Slot: "<obj>"}, // not in the template
	}
	mentions := []linking.Mention{
		{Label: "Meghalaya", URL: "wd:Q1195"},
		{Label: "India", URL: "wd:Q668"},
	}

	got, audit := Standard{}.Fill("select distinct ?answer where { <sbj> wdt:P36 ?answer }", hints, mentions)
	assert.Equal(t, "select distinct ?answer where { wd:Q1195 wdt:P36 ?answer }", got)
	assert.Len(t, audit, 1)
}

func TestStandardFillLeavesUnjustifiedSlots(t *testing.T) {
	hints := []Hint{
		{Label: "zanzibar", Slot: "<sbj>"},
	}
	mentions := []linking.Mention{
		{Label: "Meghalaya", URL: "wd:Q1195"},
	}

	got, audit := Standard{}.Fill("select distinct ?answer where { <sbj> wdt:P36 ?answer }", hints, mentions)
	assert.Equal(t, "select distinct ?answer where { <sbj> wdt:P36 ?answer }", got)
	assert.Empty(t, audit)
}

func TestStandardFillEachSlotOnce(t *testing.T) {
	hints := []Hint{
		{Label: "meghalaya", Slot: "<sbj>"},
		{Label: "india", Slot: "<sbj>"},
	}
	mentions := []linking.Mention{
		{Label: "Meghalaya", URL: "wd:Q1195"},
		{Label: "India", URL: "wd:Q668"},
	}

	_, audit := Standard{}.Fill("select distinct ?answer where { <sbj> wdt:P36 ?answer }", hints, mentions)
	require.Len(t, audit, 1)
	assert.Equal(t, "wd:Q1195", audit[0].Value)
}

func TestStandardFillEachMentionOnce(t *testing.T) {
	hints := []Hint{
		{Label: "berlin", Slot: "<sbj_1>"},
		{Label: "berlin", Slot: "<obj_1>"},
	}
	mentions := []linking.Mention{
		{Label: "Berlin", URL: "wd:Q64"},
	}

	got, audit := Standard{}.Fill("ask where { <sbj_1> wdt:P47 <obj_1> }", hints, mentions)
	assert.Equal(t, "ask where { wd:Q64 wdt:P47 <obj_1> }", got)
	require.Len(t, audit, 1)
	assert.Equal(t, Audit{Slot: "<sbj_1>", Value: "wd:Q64"}, audit[0])

	// A second mention with the same label still serves the second slot.
	mentions = append(mentions, linking.Mention{Label: "Berlin", URL: "wd:Q821244"})
	got, audit = Standard{}.Fill("ask where { <sbj_1> wdt:P47 <obj_1> }", hints, mentions)
	assert.Equal(t, "ask where { wd:Q64 wdt:P47 wd:Q821244 }", got)
	require.Len(t, audit, 2)
	assert.Equal(t, Audit{Slot: "<obj_1>", Value: "wd:Q821244"}, audit[1])
}

func TestForceFillExactAndFuzzy(t *testing.T) {
	hints := []Hint{
		{Label: "john f kennedy", Slot: "<sbj_1>"},
		{Label: "french", Slot: "<obj_2>"},
	}
	mentions := []linking.Mention{
		{Label: "John F Kennedy", URL: "wd:Q9696"},
		{Label: "French", URL: "wd:Q42365"},
	}

	got, audit := Force{}.Fill("ask where { <sbj_1> wdt:P103 <obj_1> }", hints, mentions)
	assert.Equal(t, "ask where { wd:Q9696 wdt:P103 wd:Q42365 }", got)
	require.Len(t, audit, 2)
	assert.Equal(t, Audit{Slot: "<sbj_1>", Value: "wd:Q9696"}, audit[0])
	assert.Equal(t, Audit{Slot: "<obj_1>", Value: "wd:Q42365"}, audit[1])
}

func TestForceFillLiteralSlots(t *testing.T) {
	hints := []Hint{
		{Label: "307", Slot: "<num>"},
		{Label: "delhi", Slot: "<sbj_1>"},
	}
	mentions := []linking.Mention{
		{Label: "Delhi", URL: "wd:Q1353"},
	}

	got, _ := Force{}.Fill("ask where { <sbj_1> wdt:P1082 ?obj filter(?obj > <num>) }", hints, mentions)
	assert.Equal(t, "ask where { wd:Q1353 wdt:P1082 ?obj filter(?obj > 307) }", got)
}

func TestForceFillFallsBackToRemainingMentions(t *testing.T) {
	mentions := []linking.Mention{
		{Label: "Hamburg", URL: "wd:Q1055"},
	}

	got, audit := Force{}.Fill("select distinct ?obj where { <sbj_1> wdt:P710 ?obj }", nil, mentions)
	assert.Equal(t, "select distinct ?obj where { wd:Q1055 wdt:P710 ?obj }", got)
	require.Len(t, audit, 1)
}

func TestForceFillStopsWithoutMentions(t *testing.T) {
	got, audit := Force{}.Fill("ask where { <sbj_1> wdt:P103 <obj_1> }", nil, nil)
	assert.Equal(t, "ask where { <sbj_1> wdt:P103 <obj_1> }", got)
	assert.Empty(t, audit)
}

func TestHintsFromTags(t *testing.T) {
	hints := HintsFromTags(
		"who is the wife of Barack Obama",
		"O O O O O B-sbj I-sbj")
	require.Len(t, hints, 1)
	assert.Equal(t, Hint{Label: "barack obama", Slot: "<sbj>"}, hints[0])
}

func TestHintsFromTagsMultipleSpans(t *testing.T) {
	hints := HintsFromTags(
		"does the Nile flow through Egypt",
		"O O B-sbj O O B-obj")
	require.Len(t, hints, 2)
	assert.Equal(t, Hint{Label: "nile", Slot: "<sbj>"}, hints[0])
	assert.Equal(t, Hint{Label: "egypt", Slot: "<obj>"}, hints[1])
}

func TestHintsFromTagsTruncatesExcessTags(t *testing.T) {
	hints := HintsFromTags("barack obama", "B-sbj I-sbj O O O")
	require.Len(t, hints, 1)
	assert.Equal(t, "barack obama", hints[0].Label)
}
