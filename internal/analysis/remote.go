package analysis

import (
	"context"
	"errors"
)

// Sentiment is the label attached to analyzed content.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Valid reports whether s is one of the three known labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Source records whether a result field came from the remote service
// or a local heuristic.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Result is the outcome of one analysis invocation. Both fields are
// always populated; the sources say how each was produced.
type Result struct {
	Summary         string    `json:"summary"`
	Sentiment       Sentiment `json:"sentiment"`
	SummarySource   Source    `json:"summarySource"`
	SentimentSource Source    `json:"sentimentSource"`
}

// ErrUnavailable signals that the remote service could not produce a
// usable value: network failure, timeout, non-2xx status, or a malformed
// response body. Callers recover by falling back to local heuristics.
var ErrUnavailable = errors.New("remote analysis unavailable")

// RemoteClient abstracts the external inference service. Implementations
// make a single attempt per call and report ErrUnavailable rather than
// retrying.
type RemoteClient interface {
	Summarize(ctx context.Context, text string) (string, error)
	ClassifySentiment(ctx context.Context, text string) (Sentiment, error)
}
