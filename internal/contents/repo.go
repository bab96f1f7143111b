package contents

import (
	"context"

	"content-backend/internal/analysis"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "content not found" }

// Repo defines persistence operations for contents.
type Repo interface {
	Create(ctx context.Context, content Content) error
	// GetByID is unscoped; owner checks belong to the caller.
	GetByID(ctx context.Context, contentID string) (Content, error)
	GetForUser(ctx context.Context, userID, contentID string) (Content, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Content, int, error)
	Delete(ctx context.Context, userID, contentID string) error
	// ApplyAnalysis overwrites the analysis fields; safe to run twice.
	ApplyAnalysis(ctx context.Context, contentID string, result analysis.Result) error
}
