package analysis

import "strings"

const (
	// minSentenceChars is the smallest first sentence worth returning on
	// its own; shorter openers fall through to the word-count summary.
	minSentenceChars = 10
	maxSummaryWords  = 30
)

// Summarizer produces a deterministic local summary. It is total: any
// non-empty input yields a non-empty summary.
type Summarizer struct {
	minSentenceChars int
	maxWords         int
}

// NewSummarizer constructs a Summarizer with the default bounds.
func NewSummarizer() *Summarizer {
	return &Summarizer{minSentenceChars: minSentenceChars, maxWords: maxSummaryWords}
}

// Summarize returns the first sentence of text when it is substantial,
// otherwise the first 30 words. Empty or whitespace-only input yields ""
// (empty text is rejected upstream before analysis is scheduled).
func (s *Summarizer) Summarize(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	if first := firstSentence(trimmed); len(strings.TrimSpace(first)) > s.minSentenceChars {
		return strings.TrimSpace(first)
	}

	words := strings.Fields(trimmed)
	if len(words) <= s.maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:s.maxWords], " ") + "..."
}

// firstSentence returns the leading sentence-like unit, keeping its
// terminal punctuation. Without terminal punctuation the whole text is
// one unit.
func firstSentence(text string) string {
	if idx := strings.IndexAny(text, ".!?"); idx >= 0 {
		return text[:idx+1]
	}
	return text
}
