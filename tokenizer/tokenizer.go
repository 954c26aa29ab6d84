// Package tokenizer maps queries to and from the flattened token strings
// a sequence model consumes. Encoding and decoding are ordered rule
// pipelines over the vocabulary tables; decode additionally runs a
// graph-specific correction pass to restore casing that encoding's
// lowercasing destroyed.
package tokenizer

import (
	"strings"

	"github.com/c360studio/kgqa/query"
	"github.com/c360studio/kgqa/vocabulary"
	"github.com/c360studio/kgqa/vocabulary/dbpedia"
	"github.com/c360studio/kgqa/vocabulary/wikidata"
)

// Tokenizer holds the compiled rule tables for one graph family. It is
// read-only after construction and safe for concurrent use.
type Tokenizer struct {
	literal    []vocabulary.LiteralRule
	encode     []vocabulary.RegexRule
	decode     []vocabulary.RegexRule
	correction []vocabulary.RegexRule
	newQuery   func(string) query.Query
}

// New builds a Tokenizer from explicit rule tables. correction may be
// empty, in which case Decode returns the literal, uncorrected text;
// tokenization is always total.
func New(
	literal []vocabulary.LiteralRule,
	encode, decode, correction []vocabulary.RegexRule,
	newQuery func(string) query.Query,
) *Tokenizer {
	return &Tokenizer{
		literal:    literal,
		encode:     encode,
		decode:     decode,
		correction: correction,
		newQuery:   newQuery,
	}
}

// NewWikidata returns the tokenizer for Wikidata queries.
func NewWikidata() *Tokenizer {
	return New(wikidata.LiteralRules, wikidata.EncodeRules, wikidata.DecodeRules,
		wikidata.CorrectionRules, query.NewWikidata)
}

// NewDBpedia returns the tokenizer for DBpedia queries.
func NewDBpedia() *Tokenizer {
	return New(dbpedia.LiteralRules, dbpedia.EncodeRules, dbpedia.DecodeRules,
		dbpedia.CorrectionRules, query.NewDBpedia)
}

// Encode turns a query into the flattened token string:
//
//	SELECT DISTINCT ?uri WHERE { wd:Q4072104 wdt:P184 ?uri }
//	select distinct var_uri where brack_open wd_q4072104 wdt_p184 var_uri brack_close
//
// The regex rules run before the literal rules; the ordering across both
// lists is a correctness invariant.
func (t *Tokenizer) Encode(q query.Query) string {
	s := strings.ToLower(q.Text(true, false))
	s = vocabulary.Apply(s, t.encode)
	for _, r := range t.literal {
		s = strings.ReplaceAll(s, r.Text, r.Token)
	}
	return strings.TrimSpace(s)
}

// Decode inverts Encode and applies the correction pass, returning a
// Query over the graph family's prefix table. Decode(Encode(q))
// reproduces q up to whitespace normalization and canonical casing.
func (t *Tokenizer) Decode(tokens string) query.Query {
	s := vocabulary.Apply(tokens, t.decode)
	for _, r := range t.literal {
		s = strings.ReplaceAll(s, r.Token, r.Text)
	}
	s = vocabulary.Apply(s, t.correction)
	return t.newQuery(strings.TrimSpace(s))
}
