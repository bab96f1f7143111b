package contents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"content-backend/internal/analysis"
	"content-backend/internal/queue"
	"content-backend/internal/shared/metrics"
	"content-backend/internal/shared/telemetry"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

var ErrEmptyText = errors.New("text must not be empty")

// Analyzer produces a summary and sentiment for text. It never fails;
// unavailable backends degrade to heuristic results.
type Analyzer interface {
	Analyze(ctx context.Context, text string) analysis.Result
}

// Service contains business logic for contents. When Queue is set,
// analysis is deferred to the worker; otherwise it runs in-process.
type Service struct {
	Repo     Repo
	Analyzer Analyzer
	Queue    queue.Client
}

func NewService(repo Repo, analyzer Analyzer) *Service {
	return &Service{Repo: repo, Analyzer: analyzer}
}

// Create persists a content record and schedules exactly one analysis
// for it. The record is visible immediately with nil analysis fields.
func (s *Service) Create(ctx context.Context, userID, text string) (Content, error) {
	if s == nil || s.Repo == nil {
		return Content{}, errors.New("contents service not configured")
	}
	if userID == "" {
		return Content{}, errors.New("userID is required")
	}
	if strings.TrimSpace(text) == "" {
		return Content{}, ErrEmptyText
	}

	content := Content{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	content.UpdatedAt = content.CreatedAt

	if err := s.Repo.Create(ctx, content); err != nil {
		return Content{}, err
	}

	s.schedule(ctx, content.ID)

	return content, nil
}

// schedule hands the content to the queue when one is configured and
// falls back to an in-process goroutine otherwise, or when the enqueue
// fails. If the process dies before the goroutine runs, the record
// stays unanalyzed; there is no retry.
func (s *Service) schedule(ctx context.Context, contentID string) {
	if s.Queue != nil {
		msg := queue.Message{
			ContentID:  contentID,
			RequestID:  requestIDFromContext(ctx),
			EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    1,
		}
		err := s.Queue.Send(ctx, msg)
		if err == nil {
			return
		}
		telemetry.Error("content.enqueue_failed", map[string]any{
			"content_id": contentID,
			"request_id": msg.RequestID,
			"error":      err.Error(),
		})
	}

	go func(ctx context.Context) {
		if err := s.ProcessContent(ctx, contentID); err != nil {
			telemetry.Error("content.process_failed", map[string]any{
				"content_id": contentID,
				"request_id": requestIDFromContext(ctx),
				"error":      err.Error(),
			})
		}
	}(backgroundWithRequestID(ctx))
}

// ProcessContent runs analysis for a stored content and applies the
// result. Called from the create goroutine and from the queue worker.
func (s *Service) ProcessContent(ctx context.Context, contentID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("contents service not configured")
	}
	if contentID == "" {
		return errors.New("contentID is required")
	}

	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("content.process_panic", map[string]any{
				"content_id": contentID,
				"panic":      fmt.Sprint(r),
			})
		}
	}()

	content, err := s.Repo.GetByID(ctx, contentID)
	if err != nil {
		return fmt.Errorf("content lookup id=%s: %w", contentID, err)
	}

	metrics.IncAnalysisStarted()
	startedAt := metrics.NowMillis()
	telemetry.Info("content.analysis", map[string]any{
		"request_id": requestIDFromContext(ctx),
		"user_id":    content.UserID,
		"content_id": content.ID,
		"status":     "processing",
	})

	analyzer := s.Analyzer
	if analyzer == nil {
		analyzer = analysis.NewOrchestrator(nil)
	}
	result := analyzer.Analyze(ctx, content.Text)

	if err := s.Repo.ApplyAnalysis(ctx, contentID, result); err != nil {
		return fmt.Errorf("apply analysis id=%s: %w", contentID, err)
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(metrics.NowMillis() - startedAt)
	telemetry.Info("content.analysis", map[string]any{
		"request_id":       requestIDFromContext(ctx),
		"user_id":          content.UserID,
		"content_id":       content.ID,
		"status":           "completed",
		"summary_source":   string(result.SummarySource),
		"sentiment_source": string(result.SentimentSource),
	})
	return nil
}

// Get returns a content owned by userID.
func (s *Service) Get(ctx context.Context, userID, contentID string) (Content, error) {
	if s == nil || s.Repo == nil {
		return Content{}, errors.New("contents service not configured")
	}
	if userID == "" || contentID == "" {
		return Content{}, errors.New("userID and contentID are required")
	}
	return s.Repo.GetForUser(ctx, userID, contentID)
}

// List returns contents for a user ordered newest-first plus the total
// count of the user's contents.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Content, int, error) {
	if s == nil || s.Repo == nil {
		return nil, 0, errors.New("contents service not configured")
	}
	if userID == "" {
		return nil, 0, errors.New("userID is required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Delete removes a content owned by userID.
func (s *Service) Delete(ctx context.Context, userID, contentID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("contents service not configured")
	}
	if userID == "" || contentID == "" {
		return errors.New("userID and contentID are required")
	}
	return s.Repo.Delete(ctx, userID, contentID)
}
