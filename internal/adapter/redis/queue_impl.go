package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/user/crm-service/internal/repository"
)

const ingestQueueKey = "crm:ingest:queue"

// QueueRepoImpl provides a concrete implementation for the QueueRepository interface using Redis Lists.
type QueueRepoImpl struct {
	client *redis.Client
}

// NewQueueRepo creates a new instance of QueueRepoImpl.
func NewQueueRepo(client *redis.Client) *QueueRepoImpl {
	return &QueueRepoImpl{client: client}
}

// Push adds a path to the left side of the list.
func (r *QueueRepoImpl) Push(ctx context.Context, path string) error {
	return r.client.LPush(ctx, ingestQueueKey, path).Err()
}

// Pop removes and returns a path from the right side of the list.
func (r *QueueRepoImpl) Pop(ctx context.Context) (string, error) {
	path, err := r.client.RPop(ctx, ingestQueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrNotFound
	}
	return path, err
}

// Size returns the current number of items in the queue.
func (r *QueueRepoImpl) Size(ctx context.Context) (int64, error) {
	return r.client.LLen(ctx, ingestQueueKey).Result()
}
