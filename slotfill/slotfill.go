// Package slotfill turns an abstracted query template back into an
// executable query by filling its placeholders with linked entities,
// string values and numbers. Three policies trade precision for
// coverage: Basic substitutes naively, Standard only fills placeholders
// it can justify, Force guarantees a fully grounded query.
package slotfill

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/c360studio/kgqa/linking"
	"github.com/c360studio/kgqa/normalize"
)

// ErrUnknownMethod reports a fill method name with no policy.
var ErrUnknownMethod = errors.New("slotfill: unknown fill method")

// Hint associates a question span with the placeholder it should fill.
type Hint struct {
	Label string `json:"label"`
	Slot  string `json:"slot"`
}

// Audit records one substitution performed while filling a template.
type Audit struct {
	Slot  string `json:"slot"`
	Value string `json:"entity"`
}

// Filler fills the placeholders of a query template using slot hints
// and linked mentions, returning the filled query and the audit trail.
type Filler interface {
	Fill(template string, hints []Hint, mentions []linking.Mention) (string, []Audit)
}

// New resolves a fill method name to its policy.
func New(method string) (Filler, error) {
	switch strings.ToLower(method) {
	case "basic":
		return Basic{}, nil
	case "standard":
		return Standard{}, nil
	case "force":
		return Force{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
}

// Basic substitutes every hint without checking whether its
// placeholder is still present, matching mention labels by plain
// substring containment.
type Basic struct{}

// Fill implements Filler.
func (Basic) Fill(template string, hints []Hint, mentions []linking.Mention) (string, []Audit) {
	queryStr := template
	var audit []Audit
	for _, h := range hints {
		switch {
		case h.Slot == "<num>":
			value := numberValue(h.Label)
			queryStr = strings.ReplaceAll(queryStr, h.Slot, value)
			audit = append(audit, Audit{Slot: h.Slot, Value: value})
		case h.Slot == "<label>" || h.Slot == "<letter>" || h.Slot == "<str_value>":
			value := "'" + h.Label + "'"
			queryStr = strings.ReplaceAll(queryStr, h.Slot, value)
			audit = append(audit, Audit{Slot: h.Slot, Value: value})
		default:
			for _, m := range mentions {
				label := strings.ToLower(m.Label)
				if strings.Contains(label, h.Label) || strings.Contains(h.Label, label) {
					queryStr = strings.ReplaceAll(queryStr, h.Slot, m.URL)
					audit = append(audit, Audit{Slot: h.Slot, Value: m.URL})
					break
				}
			}
		}
	}
	return queryStr, audit
}

// Standard fills each placeholder at most once and only when it is
// still present in the query, comparing hint labels against normalized
// mention labels. Each mention resource is consumed at most once, so
// two placeholders never share a URL. Placeholders without a justified
// value stay unfilled.
type Standard struct{}

// Fill implements Filler.
func (Standard) Fill(template string, hints []Hint, mentions []linking.Mention) (string, []Audit) {
	queryStr := template
	var audit []Audit
	used := make(map[string]bool)
	consumed := make(map[string]bool)
	for _, h := range hints {
		if used[h.Slot] || !strings.Contains(queryStr, h.Slot) {
			continue
		}
		switch h.Slot {
		case "<num>":
			value := numberValue(h.Label)
			used[h.Slot] = true
			queryStr = strings.ReplaceAll(queryStr, h.Slot, value)
			audit = append(audit, Audit{Slot: h.Slot, Value: value})
		case "<str_value>":
			value := "'" + h.Label + "'"
			used[h.Slot] = true
			queryStr = strings.ReplaceAll(queryStr, h.Slot, value)
			audit = append(audit, Audit{Slot: h.Slot, Value: value})
		default:
			url := ""
			for _, m := range mentions {
				if consumed[m.URL] {
					continue
				}
				label := normalize.Question(m.Label)
				if strings.Contains(label, h.Label) || strings.Contains(h.Label, label) {
					url = m.URL
					break
				}
			}
			if url != "" {
				used[h.Slot] = true
				consumed[url] = true
				queryStr = strings.ReplaceAll(queryStr, h.Slot, url)
				audit = append(audit, Audit{Slot: h.Slot, Value: url})
			}
		}
	}
	return queryStr, audit
}

// Force fills every placeholder of the template: first by exact
// label matches, then by fuzzy matches against hints with a compatible
// slot shape, and finally with whatever mentions remain.
type Force struct{}

var (
	slotToken    = regexp.MustCompile(`<[\w_\d]+?>`)
	slotOrdinal  = regexp.MustCompile(`(\d+)`)
	slotPosition = regexp.MustCompile(`sbj|obj|type`)
)

// positionRank orders slot positions for the fuzzy pass.
var positionRank = map[string]int{"sbj": 0, "obj": 1, "type": 2, "other": 3}

func digit(s string) int {
	if g := slotOrdinal.FindStringSubmatch(s); g != nil {
		n, err := strconv.Atoi(g[1])
		if err == nil {
			return n
		}
	}
	return 100
}

func triplePosition(s string) string {
	if m := slotPosition.FindString(s); m != "" {
		return m
	}
	return "other"
}

// takeMention finds the first remaining mention whose normalized label
// matches and consumes it. Rejected mentions rotate to the back so the
// next search starts after the match.
func takeMention(mentions []linking.Mention, label string, flexible bool) (string, []linking.Mention, bool) {
	for i, m := range mentions {
		candidate := normalize.Question(m.Label)
		exact := !flexible && candidate == label
		fuzzy := flexible && (strings.Contains(candidate, label) || strings.Contains(label, candidate))
		if exact || fuzzy {
			rest := make([]linking.Mention, 0, len(mentions)-1)
			rest = append(rest, mentions[i+1:]...)
			rest = append(rest, mentions[:i]...)
			return m.URL, rest, true
		}
	}
	return "", mentions, false
}

// Fill implements Filler.
func (Force) Fill(template string, hints []Hint, mentions []linking.Mention) (string, []Audit) {
	queryStr := template
	var audit []Audit
	used := make(map[string]bool)
	remaining := append([]linking.Mention(nil), mentions...)

	// Pass 1: exact matches for every placeholder in the template.
	var deferred []string
	for _, slot := range slotToken.FindAllString(queryStr, -1) {
		if used[slot] {
			continue
		}
		success := false
		for _, h := range hints {
			if h.Slot != slot {
				continue
			}
			switch slot {
			case "<num>":
				value := numberValue(h.Label)
				queryStr = strings.ReplaceAll(queryStr, slot, value)
				used[slot] = true
				audit = append(audit, Audit{Slot: slot, Value: value})
				success = true
			case "<str_value>":
				value := "'" + h.Label + "'"
				queryStr = strings.ReplaceAll(queryStr, slot, value)
				used[slot] = true
				audit = append(audit, Audit{Slot: slot, Value: value})
				success = true
			default:
				if url, rest, ok := takeMention(remaining, h.Label, false); ok {
					queryStr = strings.ReplaceAll(queryStr, slot, url)
					remaining = rest
					used[slot] = true
					audit = append(audit, Audit{Slot: slot, Value: url})
					success = true
				}
			}
		}
		if !success {
			deferred = append(deferred, slot)
		}
	}

	// Pass 2: fuzzy matches for the leftovers, trying hints with the
	// same ordinal or the same triple position first.
	var pool []Hint
	for _, h := range hints {
		if !used[h.Slot] {
			pool = append(pool, h)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		di, dj := digit(pool[i].Slot), digit(pool[j].Slot)
		if di != dj {
			return di < dj
		}
		return positionRank[triplePosition(pool[i].Slot)] < positionRank[triplePosition(pool[j].Slot)]
	})

	for _, slot := range deferred {
		if len(remaining) == 0 {
			break
		}
		if len(pool) == 0 {
			url := remaining[0].URL
			remaining = remaining[1:]
			queryStr = strings.ReplaceAll(queryStr, slot, url)
			audit = append(audit, Audit{Slot: slot, Value: url})
			continue
		}
		success := false
		var skipped []Hint
		for i, h := range pool {
			if digit(slot) != digit(h.Slot) && triplePosition(slot) != triplePosition(h.Slot) {
				skipped = append(skipped, h)
				continue
			}
			if url, rest, ok := takeMention(remaining, h.Label, true); ok {
				success = true
				queryStr = strings.ReplaceAll(queryStr, slot, url)
				remaining = rest
				audit = append(audit, Audit{Slot: slot, Value: url})
				// matched hint is consumed; keep scan order rotated
				// past it for the next placeholder
				pool = append(append([]Hint(nil), pool[i+1:]...), skipped...)
				break
			}
			// compatible shape but no matching mention: hint retired
		}
		if !success {
			pool = skipped
			url := remaining[0].URL
			remaining = remaining[1:]
			queryStr = strings.ReplaceAll(queryStr, slot, url)
			audit = append(audit, Audit{Slot: slot, Value: url})
		}
	}
	return queryStr, audit
}

// numberValue rebuilds a numeric literal from a spoken span: the words
// of "3 5" are joined with a decimal point into "3.5".
func numberValue(label string) string {
	return strings.Join(strings.Split(label, " "), ".")
}
