package linking

import (
	"fmt"
	"sort"
	"strings"
)

// MaxThreshold is the default cap on merged mentions, effectively
// unbounded for real questions.
const MaxThreshold = 100

// UnknownSystemError reports an annotation from a system that the
// configured priority order does not name. Ranking such a system
// silently would put it at an arbitrary position, so the merge fails
// instead.
type UnknownSystemError struct {
	System string
}

func (e *UnknownSystemError) Error() string {
	return fmt.Sprintf("linking: system %q not in priority order", e.System)
}

// DefaultPriority orders the supported linking systems by measured
// precision, best first.
func DefaultPriority() []string {
	return []string{"Aida", "Open Tapioca", "TAGME", "DBpedia Spotlight"}
}

// Config holds the shared knobs of the ranked merge policies.
type Config struct {
	// Priority ranks system names, best first.
	Priority []string
	// Threshold caps the merged mention count when the caller does not
	// pass an expected count.
	Threshold int
	// FilterStopwords drops mentions whose label is a stop word.
	FilterStopwords bool
	// Tiebreak stops exactly at the expected count instead of letting
	// the current system finish its tied annotations.
	Tiebreak bool
	// Scores interprets per-system score lists.
	Scores Normalizers
}

// DefaultConfig mirrors the settings the merge policies were tuned
// with: default priority order, unbounded threshold, tiebreak on.
func DefaultConfig() Config {
	return Config{
		Priority:  DefaultPriority(),
		Threshold: MaxThreshold,
		Tiebreak:  true,
		Scores:    DefaultNormalizers(),
	}
}

func (c *Config) fill() {
	if c.Priority == nil {
		c.Priority = DefaultPriority()
	}
	if c.Threshold <= 0 {
		c.Threshold = MaxThreshold
	}
	if c.Scores == nil {
		c.Scores = DefaultNormalizers()
	}
}

// Merger merges the per-system annotations of one question into a
// single mention list, at most expected entries long when the policy
// honors a cap.
type Merger interface {
	Merge(b Bundle, expected int) ([]Mention, error)
}

// KeepAll returns every distinct Wikidata mention in system order. In
// oracle mode only gold entities survive and the result is padded with
// placeholder mentions up to the gold count, for upper-bound
// experiments.
type KeepAll struct {
	Oracle bool
}

// Merge implements Merger. The expected count is ignored: this policy
// is deliberately unfiltered.
func (p KeepAll) Merge(b Bundle, _ int) ([]Mention, error) {
	var summary []Mention
	found := make(map[string]bool)
	for _, a := range b.Annotations {
		for _, m := range a.Output {
			name := entityName(m.URL)
			if !isWikidataEntity(name) || found[name] {
				continue
			}
			if p.Oracle && !containsString(b.Entities, name) {
				continue
			}
			found[name] = true
			m.URL = name
			summary = append(summary, m)
		}
		if p.Oracle && len(summary) >= len(b.Entities) {
			break
		}
	}
	if p.Oracle {
		for len(summary) < len(b.Entities) {
			summary = append(summary, Mention{Label: "unknown", URL: "wd:Q0"})
		}
	}
	return summary, nil
}

// Priority trusts systems in precision order: all mentions of the
// best system are taken (best score first) before the next system is
// consulted.
type Priority struct {
	cfg       Config
	stopwords map[string]struct{}
}

// NewPriority builds the precision-priority policy. Zero-valued
// Config fields take their defaults.
func NewPriority(cfg Config) *Priority {
	cfg.fill()
	return &Priority{cfg: cfg, stopwords: EnglishStopWords()}
}

// Merge implements Merger.
func (p *Priority) Merge(b Bundle, expected int) ([]Mention, error) {
	if expected <= 0 {
		expected = p.cfg.Threshold
	}
	ranked, err := p.rank(b.Annotations)
	if err != nil {
		return nil, err
	}
	var summary []Mention
	found := make(map[string]bool)
	for _, a := range ranked {
		output := make([]Mention, len(a.Output))
		copy(output, a.Output)
		sort.SliceStable(output, func(i, j int) bool {
			return p.cfg.Scores.Score(a.System, output[i]) > p.cfg.Scores.Score(a.System, output[j])
		})
		for _, m := range output {
			name := entityName(m.URL)
			if isWikidataEntity(name) && !found[name] && p.allowLabel(m.Label) {
				found[name] = true
				m.URL = name
				summary = append(summary, m)
			}
			if p.cfg.Tiebreak && len(summary) >= expected {
				return summary, nil
			}
		}
		if len(summary) >= expected {
			break
		}
	}
	return summary, nil
}

func (p *Priority) rank(annotations []Annotation) ([]Annotation, error) {
	index := make(map[string]int, len(p.cfg.Priority))
	for i, system := range p.cfg.Priority {
		index[system] = i
	}
	for _, a := range annotations {
		if _, ok := index[a.System]; !ok {
			return nil, &UnknownSystemError{System: a.System}
		}
	}
	ranked := make([]Annotation, len(annotations))
	copy(ranked, annotations)
	sort.SliceStable(ranked, func(i, j int) bool {
		return index[ranked[i].System] < index[ranked[j].System]
	})
	return ranked, nil
}

func (p *Priority) allowLabel(label string) bool {
	if !p.cfg.FilterStopwords {
		return true
	}
	_, stop := p.stopwords[strings.ToLower(label)]
	return !stop
}

// Voting lets every system cast one vote per distinct resource it
// annotated; resources are returned by descending vote count, ties
// resolved by system priority and then score.
type Voting struct {
	cfg       Config
	stopwords map[string]struct{}
}

// NewVoting builds the voting policy. Zero-valued Config fields take
// their defaults.
func NewVoting(cfg Config) *Voting {
	cfg.fill()
	return &Voting{cfg: cfg, stopwords: EnglishStopWords()}
}

// vote is one system's endorsement of a resource, carrying the
// highest-scored mention the system produced for it.
type vote struct {
	name    string
	system  string
	score   float64
	mention Mention
}

// Merge implements Merger.
func (v *Voting) Merge(b Bundle, expected int) ([]Mention, error) {
	if expected <= 0 {
		expected = v.cfg.Threshold
	}
	index := make(map[string]int, len(v.cfg.Priority))
	for i, system := range v.cfg.Priority {
		index[system] = i
	}
	for _, a := range b.Annotations {
		if _, ok := index[a.System]; !ok {
			return nil, &UnknownSystemError{System: a.System}
		}
	}

	votes, counts := v.gatherVotes(b.Annotations)
	maxVotes := 0
	for _, n := range counts {
		if n > maxVotes {
			maxVotes = n
		}
	}

	var summary []Mention
	found := make(map[string]bool)
	for numVotes := maxVotes; numVotes >= 1; numVotes-- {
		var tier []vote
		for _, vt := range votes {
			if counts[vt.name] == numVotes {
				tier = append(tier, vt)
			}
		}
		sort.SliceStable(tier, func(i, j int) bool {
			pi, pj := index[tier[i].system], index[tier[j].system]
			if pi != pj {
				return pi < pj
			}
			return tier[i].score > tier[j].score
		})
		prevSystem := ""
		for _, vt := range tier {
			if len(summary) >= expected && (v.cfg.Tiebreak || prevSystem != vt.system) {
				return summary, nil
			}
			prevSystem = vt.system
			if found[vt.name] || !v.allowLabel(vt.mention.Label) {
				continue
			}
			found[vt.name] = true
			m := vt.mention
			m.URL = vt.name
			summary = append(summary, m)
		}
	}
	return summary, nil
}

// gatherVotes collects at most one vote per system per resource; the
// vote keeps the system's highest-scored mention of that resource.
func (v *Voting) gatherVotes(annotations []Annotation) ([]vote, map[string]int) {
	var votes []vote
	counts := make(map[string]int)
	for _, a := range annotations {
		output := make([]Mention, len(a.Output))
		copy(output, a.Output)
		sort.SliceStable(output, func(i, j int) bool {
			return v.cfg.Scores.Score(a.System, output[i]) > v.cfg.Scores.Score(a.System, output[j])
		})
		seen := make(map[string]bool)
		for _, m := range output {
			name := entityName(m.URL)
			if !isWikidataEntity(name) || seen[name] {
				continue
			}
			seen[name] = true
			counts[name]++
			votes = append(votes, vote{
				name:    name,
				system:  a.System,
				score:   v.cfg.Scores.Score(a.System, m),
				mention: m,
			})
		}
	}
	return votes, counts
}

func (v *Voting) allowLabel(label string) bool {
	if !v.cfg.FilterStopwords {
		return true
	}
	_, stop := v.stopwords[strings.ToLower(label)]
	return !stop
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
