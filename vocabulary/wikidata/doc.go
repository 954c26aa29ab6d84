// Package wikidata carries the Wikidata vocabulary data: the ordered
// prefix table, the resource match patterns, and the tokenizer rule
// tables. It is data, not behavior; the resource, query and tokenizer
// packages interpret it.
package wikidata
