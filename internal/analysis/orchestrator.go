package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"

	"content-backend/internal/shared/metrics"
	"content-backend/internal/shared/telemetry"
)

// Orchestrator composes the remote client with the local heuristics.
// Analyze never fails: every remote failure path is absorbed into a
// fallback, per field independently.
type Orchestrator struct {
	Remote     RemoteClient
	Summarizer *Summarizer
	Classifier *Classifier
}

// NewOrchestrator constructs an Orchestrator with the default heuristics.
// remote may be nil, in which case every field is served by fallback.
func NewOrchestrator(remote RemoteClient) *Orchestrator {
	return &Orchestrator{
		Remote:     remote,
		Summarizer: NewSummarizer(),
		Classifier: DefaultClassifier(),
	}
}

// Analyze produces a summary and sentiment for text. The two fields are
// resolved independently and concurrently; a remote success on one and a
// fallback on the other is a normal outcome.
func (o *Orchestrator) Analyze(ctx context.Context, text string) Result {
	var (
		result Result
		wg     sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		result.Summary, result.SummarySource = o.resolveSummary(ctx, text)
	}()
	go func() {
		defer wg.Done()
		result.Sentiment, result.SentimentSource = o.resolveSentiment(ctx, text)
	}()
	wg.Wait()

	return result
}

func (o *Orchestrator) resolveSummary(ctx context.Context, text string) (string, Source) {
	if o.Remote != nil {
		summary, err := o.Remote.Summarize(ctx, text)
		if err == nil && strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary), SourceRemote
		}
		logFallback("summary", err)
	}
	metrics.IncSummaryFallback()
	return o.Summarizer.Summarize(text), SourceFallback
}

func (o *Orchestrator) resolveSentiment(ctx context.Context, text string) (Sentiment, Source) {
	if o.Remote != nil {
		sentiment, err := o.Remote.ClassifySentiment(ctx, text)
		if err == nil && sentiment.Valid() {
			return sentiment, SourceRemote
		}
		logFallback("sentiment", err)
	}
	metrics.IncSentimentFallback()
	return o.Classifier.Classify(text), SourceFallback
}

func logFallback(field string, err error) {
	fields := map[string]any{"field": field}
	if err != nil {
		fields["error"] = err.Error()
		fields["unavailable"] = errors.Is(err, ErrUnavailable)
	}
	telemetry.Warn("analysis.fallback", fields)
}
