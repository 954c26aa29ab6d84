package wikidata

import (
	"regexp"

	"github.com/c360studio/kgqa/vocabulary"
)

// LiteralRules maps flat tokens to the query text they encode. Applied
// after EncodeRules during encoding and after DecodeRules during decoding,
// first to last. wd must stay ahead of wdt only in the prefix table; here
// the token spellings are disjoint, but order is still fixed because the
// multiword keyword rules must run before the prefix shorthands.
var LiteralRules = []vocabulary.LiteralRule{
	{Token: "brack_open", Text: "{"},
	{Token: "brack_close", Text: "}"},
	{Token: "attr_open", Text: "("},
	{Token: "attr_close", Text: ")"},
	{Token: "var_", Text: "?"},
	{Token: "sep_dot", Text: "."},
	{Token: "sep_comma", Text: ","},
	{Token: "_oba_", Text: "order by asc"},
	{Token: "_obd_", Text: "order by desc"},
	{Token: "_grb_", Text: "group by"},
	{Token: "wd_", Text: "wd:"},
	{Token: "wdt_", Text: "wdt:"},
	{Token: "rdfs_", Text: "rdfs:"},
	{Token: "rdf_", Text: "rdf:"},
	{Token: "foaf_", Text: "foaf:"},
	{Token: "p_", Text: "p:"},
	{Token: "ps_", Text: "ps:"},
	{Token: "pq_", Text: "pq:"},
	{Token: "bd_", Text: "bd:"},
}

// EncodeRules rewrites a compressed, lowercased query into token-friendly
// text: placeholder shielding, numeric and string literal markers,
// punctuation spacing, comparison operator renaming, whitespace collapse.
var EncodeRules = []vocabulary.RegexRule{
	{Pattern: regexp.MustCompile(`<([\w\d_]+)>`), Replace: "placeholder_${1}"},
	{Pattern: regexp.MustCompile(`(\d)[.](\d)`), Replace: "${1}_dot_${2}"},
	{Pattern: regexp.MustCompile(`'(.*?)'`), Replace: "apstrph_${1}_apstrph"},
	{Pattern: regexp.MustCompile(`\s*([}{)(.,><=])\s*`), Replace: " ${1} "},
	{Pattern: regexp.MustCompile(`>`), Replace: "math_gt"},
	{Pattern: regexp.MustCompile(`<`), Replace: "math_lt"},
	{Pattern: regexp.MustCompile(`=`), Replace: "math_eq"},
	{Pattern: regexp.MustCompile(`\s{2,}`), Replace: " "},
}

// DecodeRules inverts EncodeRules.
var DecodeRules = []vocabulary.RegexRule{
	{Pattern: regexp.MustCompile(`placeholder_(\w+)`), Replace: "<${1}>"},
	{Pattern: regexp.MustCompile(`(\d)_dot_(\d)`), Replace: "${1}.${2}"},
	{Pattern: regexp.MustCompile(`apstrph_(.*?)_apstrph`), Replace: "'${1}'"},
	{Pattern: regexp.MustCompile(`math_gt`), Replace: " > "},
	{Pattern: regexp.MustCompile(`math_lt`), Replace: " < "},
	{Pattern: regexp.MustCompile(`math_eq`), Replace: " = "},
}

// CorrectionRules restore canonical casing after decoding: Wikidata ids
// carry an upper-case Q or P after the prefix, which the lowercasing step
// of encoding destroys. The final rule collapses residual double spaces.
var CorrectionRules = []vocabulary.RegexRule{
	{Pattern: regexp.MustCompile(`\b(\w+):q(\d+)\b`), Replace: "${1}:Q${2}"},
	{Pattern: regexp.MustCompile(`\b(\w+):p(\d+)\b`), Replace: "${1}:P${2}"},
	{Pattern: regexp.MustCompile(`\s{2,}`), Replace: " "},
}
