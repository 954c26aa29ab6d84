package linking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreFirstListedValue(t *testing.T) {
	n := DefaultNormalizers()
	m := Mention{
		Label: "Berlin",
		URL:   "wd:Q64",
		ScoreList: []Score{
			{Value: 0.73, FieldName: "link_probability"},
			{Value: 0.41, FieldName: "rho"},
		},
	}
	assert.Equal(t, 0.73, n.Score("TAGME", m))
}

func TestScoreDBpediaSpotlightUsesSecondRank(t *testing.T) {
	n := DefaultNormalizers()
	m := Mention{
		Label: "Berlin",
		URL:   "wd:Q64",
		ScoreList: []Score{
			{Value: 0.99, FieldName: "similarityScore"},
			{Value: 0.2, FieldName: "percentOfSecondRank"},
		},
	}
	// percentOfSecondRank: smaller means more confident
	assert.Equal(t, -0.2, n.Score("DBpedia Spotlight", m))
}

func TestScoreFallsBackToEntityID(t *testing.T) {
	n := DefaultNormalizers()

	assert.Equal(t, -42.0, n.Score("Aida", Mention{URL: "wd:Q42"}))
	// bare identifiers from older caches resolve the same way
	assert.Equal(t, -42.0, n.Score("Aida", Mention{URL: "Q42"}))
	// no scores and no identifier: neutral
	assert.Equal(t, 0.0, n.Score("Aida", Mention{URL: "?x"}))
}

func TestEntityName(t *testing.T) {
	assert.Equal(t, "wd:Q64", entityName("wd:Q64"))
	assert.Equal(t, "wd:Q64", entityName("Q64"))
	assert.True(t, isWikidataEntity("wd:Q64"))
	assert.True(t, isWikidataEntity("wd:P184"))
	assert.False(t, isWikidataEntity("wd:http://dbpedia.org/resource/Berlin"))
}
