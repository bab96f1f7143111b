package contents

import (
	"context"
	"errors"
	"testing"
	"time"

	"content-backend/internal/analysis"
	"content-backend/internal/queue"
)

type stubAnalyzer struct {
	result analysis.Result
	calls  chan string
}

func newStubAnalyzer(result analysis.Result) *stubAnalyzer {
	return &stubAnalyzer{result: result, calls: make(chan string, 8)}
}

func (a *stubAnalyzer) Analyze(ctx context.Context, text string) analysis.Result {
	a.calls <- text
	return a.result
}

type stubQueue struct {
	messages []queue.Message
	err      error
}

func (q *stubQueue) Send(ctx context.Context, msg queue.Message) error {
	if q.err != nil {
		return q.err
	}
	q.messages = append(q.messages, msg)
	return nil
}

func waitForAnalysis(t *testing.T, repo Repo, contentID string) Content {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		content, err := repo.GetByID(context.Background(), contentID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if content.Analyzed() {
			return content
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("analysis was not applied in time")
	return Content{}
}

func TestCreateStoresRecordImmediately(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, newStubAnalyzer(analysis.Result{
		Summary:         "Summary.",
		Sentiment:       analysis.SentimentNeutral,
		SummarySource:   analysis.SourceFallback,
		SentimentSource: analysis.SourceFallback,
	}))

	content, err := svc.Create(context.Background(), "user-1", "Some text to analyze.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if content.ID == "" {
		t.Fatal("expected generated content id")
	}
	if content.Summary != nil || content.Sentiment != nil {
		t.Fatalf("analysis fields must be nil at create time, got %+v", content)
	}

	applied := waitForAnalysis(t, repo, content.ID)
	if *applied.Summary != "Summary." {
		t.Fatalf("unexpected applied summary %q", *applied.Summary)
	}
	if *applied.Sentiment != analysis.SentimentNeutral {
		t.Fatalf("unexpected applied sentiment %q", *applied.Sentiment)
	}
	if *applied.SummarySource != analysis.SourceFallback {
		t.Fatalf("unexpected summary source %q", *applied.SummarySource)
	}
}

func TestCreateRejectsEmptyText(t *testing.T) {
	svc := NewService(NewMemoryRepo(), newStubAnalyzer(analysis.Result{}))

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Create(context.Background(), "user-1", text); !errors.Is(err, ErrEmptyText) {
			t.Fatalf("expected ErrEmptyText for %q, got %v", text, err)
		}
	}
}

func TestCreateEnqueuesWhenQueueConfigured(t *testing.T) {
	repo := NewMemoryRepo()
	analyzer := newStubAnalyzer(analysis.Result{})
	q := &stubQueue{}
	svc := &Service{Repo: repo, Analyzer: analyzer, Queue: q}

	content, err := svc.Create(context.Background(), "user-1", "Queued text.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(q.messages) != 1 {
		t.Fatalf("expected 1 queued message, got %d", len(q.messages))
	}
	if q.messages[0].ContentID != content.ID {
		t.Fatalf("expected contentId %q, got %q", content.ID, q.messages[0].ContentID)
	}

	// Deferred to the worker; nothing runs in-process.
	select {
	case <-analyzer.calls:
		t.Fatal("analysis must not run in-process when queued")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCreateFallsBackToGoroutineOnEnqueueFailure(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{
		Repo: repo,
		Analyzer: newStubAnalyzer(analysis.Result{
			Summary:         "Fallback path.",
			Sentiment:       analysis.SentimentNeutral,
			SummarySource:   analysis.SourceFallback,
			SentimentSource: analysis.SourceFallback,
		}),
		Queue: &stubQueue{err: errors.New("sqs down")},
	}

	content, err := svc.Create(context.Background(), "user-1", "Text despite queue outage.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	waitForAnalysis(t, repo, content.ID)
}

func TestProcessContentAppliesResult(t *testing.T) {
	repo := NewMemoryRepo()
	content := Content{ID: "content-1", UserID: "user-1", Text: "Stored text."}
	if err := repo.Create(context.Background(), content); err != nil {
		t.Fatalf("seed content: %v", err)
	}

	svc := NewService(repo, newStubAnalyzer(analysis.Result{
		Summary:         "Applied.",
		Sentiment:       analysis.SentimentPositive,
		SummarySource:   analysis.SourceRemote,
		SentimentSource: analysis.SourceRemote,
	}))

	if err := svc.ProcessContent(context.Background(), "content-1"); err != nil {
		t.Fatalf("ProcessContent: %v", err)
	}

	stored, err := repo.GetByID(context.Background(), "content-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.Analyzed() {
		t.Fatal("expected analysis fields to be set")
	}
	if *stored.SummarySource != analysis.SourceRemote {
		t.Fatalf("unexpected summary source %q", *stored.SummarySource)
	}
}

func TestProcessContentRerunOverwrites(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.Create(context.Background(), Content{ID: "content-1", UserID: "user-1", Text: "Stored text."}); err != nil {
		t.Fatalf("seed content: %v", err)
	}

	first := NewService(repo, newStubAnalyzer(analysis.Result{
		Summary: "First.", Sentiment: analysis.SentimentNeutral,
		SummarySource: analysis.SourceFallback, SentimentSource: analysis.SourceFallback,
	}))
	if err := first.ProcessContent(context.Background(), "content-1"); err != nil {
		t.Fatalf("ProcessContent: %v", err)
	}

	second := NewService(repo, newStubAnalyzer(analysis.Result{
		Summary: "Second.", Sentiment: analysis.SentimentPositive,
		SummarySource: analysis.SourceRemote, SentimentSource: analysis.SourceRemote,
	}))
	if err := second.ProcessContent(context.Background(), "content-1"); err != nil {
		t.Fatalf("ProcessContent rerun: %v", err)
	}

	stored, err := repo.GetByID(context.Background(), "content-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *stored.Summary != "Second." {
		t.Fatalf("expected last result to win, got %q", *stored.Summary)
	}
}

func TestApplyAnalysisTwiceWithSameResultLeavesSameState(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.Create(context.Background(), Content{ID: "content-1", UserID: "user-1", Text: "Stored text."}); err != nil {
		t.Fatalf("seed content: %v", err)
	}

	result := analysis.Result{
		Summary:         "Stable summary.",
		Sentiment:       analysis.SentimentNegative,
		SummarySource:   analysis.SourceRemote,
		SentimentSource: analysis.SourceFallback,
	}

	if err := repo.ApplyAnalysis(context.Background(), "content-1", result); err != nil {
		t.Fatalf("first ApplyAnalysis: %v", err)
	}
	first, err := repo.GetByID(context.Background(), "content-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if err := repo.ApplyAnalysis(context.Background(), "content-1", result); err != nil {
		t.Fatalf("second ApplyAnalysis: %v", err)
	}
	second, err := repo.GetByID(context.Background(), "content-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if *first.Summary != *second.Summary {
		t.Fatalf("summary changed: %q vs %q", *first.Summary, *second.Summary)
	}
	if *first.Sentiment != *second.Sentiment {
		t.Fatalf("sentiment changed: %q vs %q", *first.Sentiment, *second.Sentiment)
	}
	if *first.SummarySource != *second.SummarySource || *first.SentimentSource != *second.SentimentSource {
		t.Fatalf("sources changed: %q/%q vs %q/%q",
			*first.SummarySource, *first.SentimentSource, *second.SummarySource, *second.SentimentSource)
	}
}

func TestProcessContentMissing(t *testing.T) {
	svc := NewService(NewMemoryRepo(), newStubAnalyzer(analysis.Result{}))

	if err := svc.ProcessContent(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetIsOwnerScoped(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.Create(context.Background(), Content{ID: "content-1", UserID: "user-1", Text: "t"}); err != nil {
		t.Fatalf("seed content: %v", err)
	}
	svc := NewService(repo, newStubAnalyzer(analysis.Result{}))

	if _, err := svc.Get(context.Background(), "user-2", "content-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "user-1", "content-1"); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestListNewestFirstWithTotal(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		content := Content{
			ID:        string(rune('a' + i)),
			UserID:    "user-1",
			Text:      "t",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), content); err != nil {
			t.Fatalf("seed content: %v", err)
		}
	}
	svc := NewService(repo, newStubAnalyzer(analysis.Result{}))

	contents, total, err := svc.List(context.Background(), "user-1", 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].ID != "c" || contents[1].ID != "b" {
		t.Fatalf("expected newest-first order, got %q then %q", contents[0].ID, contents[1].ID)
	}
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.Create(context.Background(), Content{ID: "content-1", UserID: "user-1", Text: "t"}); err != nil {
		t.Fatalf("seed content: %v", err)
	}
	svc := NewService(repo, newStubAnalyzer(analysis.Result{}))

	if err := svc.Delete(context.Background(), "user-2", "content-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", "content-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "content-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected content to be gone, got %v", err)
	}
}
