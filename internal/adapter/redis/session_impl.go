package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/repository"
	"github.com/user/crm-service/pkg/utils"
)

const sessionKeyPrefix = "crm:session:"

// SessionRepoImpl stores sessions as JSON values with a TTL.
type SessionRepoImpl struct {
	client *redis.Client
}

func NewSessionRepo(client *redis.Client) *SessionRepoImpl {
	return &SessionRepoImpl{client: client}
}

// generateKey hashes the token so raw tokens never appear in the keyspace.
func (r *SessionRepoImpl) generateKey(token string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, utils.HashKey(token))
}

func (r *SessionRepoImpl) Save(ctx context.Context, s *entity.Session, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.SetEx(ctx, r.generateKey(s.Token), payload, ttl).Err()
}

func (r *SessionRepoImpl) Find(ctx context.Context, token string) (*entity.Session, error) {
	payload, err := r.client.Get(ctx, r.generateKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s entity.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepoImpl) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.generateKey(token)).Err()
}
