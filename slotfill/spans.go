package slotfill

import "strings"

// HintsFromTags aligns a BIO tag sequence with the words of a question
// and extracts one Hint per tagged span. A "B-sbj I-sbj" run over
// "san francisco" yields {Label: "san francisco", Slot: "<sbj>"}.
// Excess tags beyond the question length are ignored.
func HintsFromTags(question, tagSequence string) []Hint {
	words := strings.Fields(strings.ToLower(question))
	tags := strings.Fields(tagSequence)
	if len(tags) > len(words) {
		tags = tags[:len(words)]
	}

	var hints []Hint
	inSpan := false
	label := ""
	slot := ""
	// trailing sentinel closes a span that runs to the last word
	for idx, tag := range append(tags, "X") {
		switch {
		case strings.HasPrefix(tag, "B-"):
			inSpan = true
			label = words[idx]
			slot = "<" + strings.TrimPrefix(tag, "B-") + ">"
		case strings.HasPrefix(tag, "I-") && inSpan:
			label += " " + words[idx]
		case inSpan:
			hints = append(hints, Hint{Label: label, Slot: slot})
			inSpan = false
			label = ""
			slot = ""
		}
	}
	return hints
}
