package contents

import (
	"context"
	"sort"
	"sync"
	"time"

	"content-backend/internal/analysis"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	contents map[string]Content
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{contents: make(map[string]Content)}
}

func (r *MemoryRepo) Create(ctx context.Context, content Content) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	if content.CreatedAt.IsZero() {
		content.CreatedAt = now
	}
	content.UpdatedAt = content.CreatedAt
	r.contents[content.ID] = content
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, contentID string) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	content, ok := r.contents[contentID]
	if !ok {
		return Content{}, ErrNotFound
	}
	return content, nil
}

func (r *MemoryRepo) GetForUser(ctx context.Context, userID, contentID string) (Content, error) {
	content, err := r.GetByID(ctx, contentID)
	if err != nil {
		return Content{}, err
	}
	if content.UserID != userID {
		return Content{}, ErrNotFound
	}
	return content, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Content, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]Content, 0)
	for _, content := range r.contents {
		if content.UserID == userID {
			owned = append(owned, content)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID > owned[j].ID
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	total := len(owned)
	if offset >= len(owned) {
		return []Content{}, total, nil
	}
	owned = owned[offset:]
	if limit > 0 && limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, total, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, contentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	content, ok := r.contents[contentID]
	if !ok || content.UserID != userID {
		return ErrNotFound
	}
	delete(r.contents, contentID)
	return nil
}

func (r *MemoryRepo) ApplyAnalysis(ctx context.Context, contentID string, result analysis.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	content, ok := r.contents[contentID]
	if !ok {
		return ErrNotFound
	}
	summary := result.Summary
	sentiment := result.Sentiment
	summarySource := result.SummarySource
	sentimentSource := result.SentimentSource
	content.Summary = &summary
	content.Sentiment = &sentiment
	content.SummarySource = &summarySource
	content.SentimentSource = &sentimentSource
	content.UpdatedAt = time.Now().UTC()
	r.contents[contentID] = content
	return nil
}
