// Package linking merges entity-mention annotations produced by
// independent entity linking systems into a single ranked list. Three
// policies are provided: keep everything, trust systems in precision
// order, or let the systems vote.
package linking

import (
	"regexp"
	"strings"
)

// Score is one named score a linking system attached to a mention.
type Score struct {
	Value     float64 `json:"value"`
	FieldName string  `json:"field_name"`
}

// Mention is a single entity annotation over a question: the character
// span, the surface label, the linked resource and the system scores.
type Mention struct {
	Ini       int     `json:"ini"`
	Fin       int     `json:"fin"`
	Label     string  `json:"label"`
	URL       string  `json:"url"`
	ScoreList []Score `json:"score_list"`
}

// Annotation is the full output of one linking system for a question.
type Annotation struct {
	System string    `json:"system"`
	Output []Mention `json:"output"`
}

// Bundle joins the annotations of every system for one question.
// Entities carries the gold resources when the bundle comes from an
// annotated dataset; it is only consulted in oracle mode.
type Bundle struct {
	UID         string       `json:"uid"`
	Text        string       `json:"text"`
	Annotations []Annotation `json:"annotations"`
	Entities    []string     `json:"entities,omitempty"`
}

// Anchored form: a mention only counts when its URL is a Wikidata
// entity reference from the first character.
var mentionEntity = regexp.MustCompile(`^wd:[QP]\d+`)

// entityName returns the compressed form of a mention URL.
func entityName(url string) string {
	if strings.Contains(url, "wd:") {
		return url
	}
	return "wd:" + url
}

func isWikidataEntity(name string) bool {
	return mentionEntity.MatchString(name)
}
