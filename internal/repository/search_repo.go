package repository

import (
	"context"
	"time"

	"github.com/user/crm-service/internal/entity"
)

// SearchRepository runs the cross-entity text search.
type SearchRepository interface {
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
}

// SearchCacheRepository caches search results for a short time.
type SearchCacheRepository interface {
	// Get reports found=false on a cache miss.
	Get(ctx context.Context, query string) (results []entity.SearchResult, found bool, err error)
	Set(ctx context.Context, query string, results []entity.SearchResult, ttl time.Duration) error
}
