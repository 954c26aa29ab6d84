// Package dbpedia carries the DBpedia vocabulary data: prefix table,
// resource match patterns and tokenizer rule tables.
package dbpedia
