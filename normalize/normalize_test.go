package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToASCII(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"café", "cafe"},
		{"Kölner Dom", "Kolner Dom"},
		{"São Paulo", "Sao Paulo"},
		{"plain ascii", "plain ascii"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToASCII(tc.in), "ToASCII(%q)", tc.in)
	}
}

func TestQuestion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{" Where is Île-de-France? ", "where is ile de france"},
		{"John F. Kennedy", "john f kennedy"},
		{"sbj_label", "sbj label"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Question(tc.in), "Question(%q)", tc.in)
	}
}

func TestSPARQL(t *testing.T) {
	// underscores survive so token boundaries stay visible
	assert.Equal(t, "filter lang sbj_label en", SPARQL("FILTER (lang(?sbj_label) = 'en')"))
}
