package queue

import "context"

// Client delivers analysis jobs to a queue backend. A failed Send is
// recoverable: the contents service falls back to in-process analysis.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
