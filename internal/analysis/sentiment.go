package analysis

import (
	"regexp"
	"strings"
)

// Default keyword lists for the fallback classifier. Kept small and
// reviewable on purpose; tests and the README document the expected
// classifications.
var (
	defaultPositiveWords = []string{
		"love", "loved", "loving", "amazing", "amazed", "great", "excellent",
		"wonderful", "fantastic", "perfect", "best", "awesome", "outstanding",
		"good", "happy", "pleased", "delighted", "satisfied", "brilliant",
		"superb", "marvelous", "incredible", "beautiful", "gorgeous", "stunning",
		"fabulous", "terrific", "magnificent", "exceptional", "remarkable",
		"impressive", "delicious", "tasty", "yummy", "enjoy", "enjoyed", "enjoying",
	}
	defaultNegativeWords = []string{
		"hate", "hated", "hating", "terrible", "awful", "bad", "worst",
		"disappointed", "horrible", "poor", "disgusting", "sad", "angry",
		"frustrated", "annoyed", "upset", "disgusted", "dreadful", "pathetic",
		"useless", "worthless", "garbage", "trash", "nasty",
		"unhappy", "miserable", "depressed", "furious", "rage", "annoying",
	}
)

var wordPattern = regexp.MustCompile(`[a-z0-9']+`)

// Classifier assigns a sentiment label by counting keyword hits. The
// keyword sets are fixed at construction, which lets tests inject
// alternate vocabularies.
type Classifier struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

// NewClassifier constructs a Classifier over the given keyword lists.
// Matching is case-insensitive and token-exact.
func NewClassifier(positive, negative []string) *Classifier {
	return &Classifier{
		positive: toSet(positive),
		negative: toSet(negative),
	}
}

// DefaultClassifier returns a Classifier over the default keyword lists.
func DefaultClassifier() *Classifier {
	return NewClassifier(defaultPositiveWords, defaultNegativeWords)
}

// Classify counts positive and negative keyword tokens in text. More
// positive than negative hits yields Positive, the reverse Negative, and
// everything else (ties included) Neutral.
func (c *Classifier) Classify(text string) Sentiment {
	var positive, negative int
	for _, token := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, ok := c.positive[token]; ok {
			positive++
		}
		if _, ok := c.negative[token]; ok {
			negative++
		}
	}

	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
