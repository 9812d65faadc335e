package repository

import "context"

// QueueRepository defines a FIFO queue of document paths waiting for ingestion.
type QueueRepository interface {
	// Push adds a path to the end of the queue.
	Push(ctx context.Context, path string) error
	// Pop removes and returns the path at the front of the queue.
	// It returns ErrNotFound when the queue is empty.
	Pop(ctx context.Context) (string, error)
	// Size returns the current number of items in the queue.
	Size(ctx context.Context) (int64, error)
}
