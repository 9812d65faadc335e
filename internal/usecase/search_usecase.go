package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/repository"
	"go.uber.org/zap"
)

// MinSearchLen is the shortest query that reaches the database.
const MinSearchLen = 2

type SearchService interface {
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
}

type searchUseCase struct {
	repo   repository.SearchRepository
	cache  repository.SearchCacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

func NewSearchUseCase(repo repository.SearchRepository, cache repository.SearchCacheRepository, ttl time.Duration, logger *zap.Logger) SearchService {
	return &searchUseCase{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Search returns an empty slice for queries shorter than MinSearchLen. Cache
// failures are logged and fall through to the database.
func (uc *searchUseCase) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinSearchLen {
		return []entity.SearchResult{}, nil
	}

	if uc.cache != nil {
		cached, found, err := uc.cache.Get(ctx, query)
		if err != nil {
			uc.logger.Warn("search cache read failed", zap.Error(err))
		} else if found {
			return cached, nil
		}
	}

	results, err := uc.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && uc.ttl > 0 {
		if err := uc.cache.Set(ctx, query, results, uc.ttl); err != nil {
			uc.logger.Warn("search cache write failed", zap.Error(err))
		}
	}
	return results, nil
}
