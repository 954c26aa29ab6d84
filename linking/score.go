package linking

import (
	"regexp"
	"strconv"
)

// ScoreFunc reduces the score list of a mention to one comparable
// value. Higher is better.
type ScoreFunc func(m Mention) float64

// Normalizers maps a system name to the ScoreFunc that interprets its
// scores. Systems without an entry use the default interpretation.
type Normalizers map[string]ScoreFunc

// DefaultNormalizers covers the systems whose raw scores cannot be
// compared directly. DBpedia Spotlight reports percentOfSecondRank,
// where smaller means more confident, so its score is negated.
func DefaultNormalizers() Normalizers {
	return Normalizers{
		"DBpedia Spotlight": func(m Mention) float64 {
			if len(m.ScoreList) > 1 {
				return -m.ScoreList[1].Value
			}
			return 0
		},
	}
}

var entityID = regexp.MustCompile(`Q(\d+)`)

// Score resolves the comparable score of a mention. Without a system
// normalizer the first listed score wins; a mention with no scores at
// all falls back to its Wikidata identifier, negated so that smaller
// identifiers (more prominent entities) rank first.
func (n Normalizers) Score(system string, m Mention) float64 {
	if fn, ok := n[system]; ok {
		return fn(m)
	}
	if len(m.ScoreList) > 0 {
		return m.ScoreList[0].Value
	}
	if g := entityID.FindStringSubmatch(entityName(m.URL)); g != nil {
		if id, err := strconv.ParseFloat(g[1], 64); err == nil {
			return -id
		}
	}
	return 0
}
