package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/pkg/utils"
)

const searchKeyPrefix = "crm:search:"

// SearchCacheRepoImpl caches global search results keyed by the normalised query.
type SearchCacheRepoImpl struct {
	client *redis.Client
}

func NewSearchCacheRepo(client *redis.Client) *SearchCacheRepoImpl {
	return &SearchCacheRepoImpl{client: client}
}

func (r *SearchCacheRepoImpl) generateKey(query string) string {
	return searchKeyPrefix + utils.HashKey(strings.ToLower(strings.TrimSpace(query)))
}

func (r *SearchCacheRepoImpl) Get(ctx context.Context, query string) ([]entity.SearchResult, bool, error) {
	payload, err := r.client.Get(ctx, r.generateKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var results []entity.SearchResult
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, false, err
	}
	return results, true, nil
}

func (r *SearchCacheRepoImpl) Set(ctx context.Context, query string, results []entity.SearchResult, ttl time.Duration) error {
	payload, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.generateKey(query), payload, ttl).Err()
}
