package analysis

import (
	"context"
	"fmt"
	"testing"
)

type stubRemote struct {
	summary      string
	summaryErr   error
	sentiment    Sentiment
	sentimentErr error
}

func (s *stubRemote) Summarize(ctx context.Context, text string) (string, error) {
	return s.summary, s.summaryErr
}

func (s *stubRemote) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	return s.sentiment, s.sentimentErr
}

func TestAnalyzeRemoteSuccess(t *testing.T) {
	o := NewOrchestrator(&stubRemote{
		summary:   "A concise model summary.",
		sentiment: SentimentPositive,
	})

	result := o.Analyze(context.Background(), "Some longer text about a product I bought.")

	if result.Summary != "A concise model summary." {
		t.Fatalf("unexpected summary %q", result.Summary)
	}
	if result.Sentiment != SentimentPositive {
		t.Fatalf("unexpected sentiment %q", result.Sentiment)
	}
	if result.SummarySource != SourceRemote || result.SentimentSource != SourceRemote {
		t.Fatalf("expected remote sources, got %q/%q", result.SummarySource, result.SentimentSource)
	}
}

func TestAnalyzeFallsBackWhenRemoteUnavailable(t *testing.T) {
	remoteErr := fmt.Errorf("%w: status 503 from model", ErrUnavailable)
	o := NewOrchestrator(&stubRemote{summaryErr: remoteErr, sentimentErr: remoteErr})

	result := o.Analyze(context.Background(), "I love this! It's amazing.")

	if result.Summary != "I love this!" {
		t.Fatalf("expected heuristic first sentence, got %q", result.Summary)
	}
	if result.Sentiment != SentimentPositive {
		t.Fatalf("expected keyword Positive, got %q", result.Sentiment)
	}
	if result.SummarySource != SourceFallback || result.SentimentSource != SourceFallback {
		t.Fatalf("expected fallback sources, got %q/%q", result.SummarySource, result.SentimentSource)
	}
}

func TestAnalyzePartialFallback(t *testing.T) {
	o := NewOrchestrator(&stubRemote{
		summaryErr: fmt.Errorf("%w: timeout", ErrUnavailable),
		sentiment:  SentimentNegative,
	})

	result := o.Analyze(context.Background(), "The packaging arrived dented but intact.")

	if result.SummarySource != SourceFallback {
		t.Fatalf("expected summary fallback, got %q", result.SummarySource)
	}
	if result.Sentiment != SentimentNegative || result.SentimentSource != SourceRemote {
		t.Fatalf("expected remote sentiment, got %q from %q", result.Sentiment, result.SentimentSource)
	}
	if result.Summary == "" {
		t.Fatal("expected non-empty fallback summary")
	}
}

func TestAnalyzeRejectsBlankRemoteSummary(t *testing.T) {
	o := NewOrchestrator(&stubRemote{
		summary:   "   ",
		sentiment: SentimentNeutral,
	})

	result := o.Analyze(context.Background(), "A perfectly ordinary sentence about nothing in particular.")

	if result.SummarySource != SourceFallback {
		t.Fatalf("blank remote summary should fall back, got source %q", result.SummarySource)
	}
	if result.Summary == "" {
		t.Fatal("expected non-empty fallback summary")
	}
}

func TestAnalyzeRejectsUnknownRemoteLabel(t *testing.T) {
	o := NewOrchestrator(&stubRemote{
		summary:   "Fine summary.",
		sentiment: Sentiment("SHRUG"),
	})

	result := o.Analyze(context.Background(), "This is amazing.")

	if result.SentimentSource != SourceFallback {
		t.Fatalf("unknown remote label should fall back, got source %q", result.SentimentSource)
	}
	if result.Sentiment != SentimentPositive {
		t.Fatalf("expected keyword Positive, got %q", result.Sentiment)
	}
}

func TestAnalyzeWithNilRemote(t *testing.T) {
	o := NewOrchestrator(nil)

	result := o.Analyze(context.Background(), "I'm really disappointed. Very poor quality.")

	if result.SummarySource != SourceFallback || result.SentimentSource != SourceFallback {
		t.Fatalf("nil remote must use fallbacks, got %q/%q", result.SummarySource, result.SentimentSource)
	}
	if result.Sentiment != SentimentNegative {
		t.Fatalf("expected Negative, got %q", result.Sentiment)
	}
}
