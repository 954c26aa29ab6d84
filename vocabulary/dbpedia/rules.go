package dbpedia

import (
	"regexp"

	"github.com/c360studio/kgqa/vocabulary"
)

// LiteralRules maps flat tokens to DBpedia query text. The math operator
// tokens live here rather than in a regex pass because DBpedia encoding
// spaces parentheses through EncodeRules instead.
var LiteralRules = []vocabulary.LiteralRule{
	{Token: "brack_open", Text: "{"},
	{Token: "brack_close", Text: "}"},
	{Token: "var_", Text: "?"},
	{Token: "sep_dot", Text: "."},
	{Token: "_oba_", Text: "order by asc"},
	{Token: "_obd_", Text: "order by desc"},
	{Token: "dbr_", Text: "dbr:"},
	{Token: "dbo_", Text: "dbo:"},
	{Token: "rdfs_", Text: "rdfs:"},
	{Token: "rdf_", Text: "rdf:"},
	{Token: "foaf_", Text: "foaf:"},
	{Token: "dbp_", Text: "dbp:"},
	{Token: "math_gt", Text: " > "},
	{Token: "math_lt", Text: " < "},
}

// EncodeRules spaces parentheses into attr tokens and collapses runs of
// whitespace.
var EncodeRules = []vocabulary.RegexRule{
	{Pattern: regexp.MustCompile(`\s{2,}`), Replace: " "},
	{Pattern: regexp.MustCompile(`\s\(\s*`), Replace: " attr_open "},
	{Pattern: regexp.MustCompile(`\s\)\s*`), Replace: " attr_close "},
}

// DecodeRules inverts EncodeRules, reattaching parentheses that belong to
// DBpedia resource names before restoring free-standing ones.
var DecodeRules = []vocabulary.RegexRule{
	{Pattern: regexp.MustCompile(`\s{2,}`), Replace: " "},
	{Pattern: regexp.MustCompile(`dbr_(\S+?)_ attr_open (.+?) attr_close`), Replace: "dbr_${1}_(${2})"},
	{Pattern: regexp.MustCompile(`dbr_ attr_open (.+?) attr_close _(\S+?)`), Replace: "dbr_(${1})_${2}"},
	{Pattern: regexp.MustCompile(`,'`), Replace: " , '"},
	{Pattern: regexp.MustCompile(`attr_open`), Replace: " ( "},
	{Pattern: regexp.MustCompile(`attr_close`), Replace: " ) "},
	{Pattern: regexp.MustCompile(`\s{2,}`), Replace: " "},
}

// CorrectionRules is empty: DBpedia resource names keep their original
// casing inside the token stream, so decode needs no casing pass.
var CorrectionRules []vocabulary.RegexRule
