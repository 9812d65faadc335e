package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/crm-service/internal/entity"
	"go.uber.org/zap"
)

func TestSearch_ShortQuery(t *testing.T) {
	repo := &fakeSearchRepo{}
	uc := NewSearchUseCase(repo, nil, time.Minute, zap.NewNop())

	for _, q := range []string{"", "a", " b "} {
		res, err := uc.Search(context.Background(), q)
		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	}
	assert.Zero(t, repo.calls)
}

func TestSearch_CachesResults(t *testing.T) {
	repo := &fakeSearchRepo{results: []entity.SearchResult{{Type: entity.SearchTypeCompany, ID: 1, Title: "GreenTech"}}}
	cache := &fakeSearchCache{entries: map[string][]entity.SearchResult{}}
	uc := NewSearchUseCase(repo, cache, time.Minute, zap.NewNop())

	first, err := uc.Search(context.Background(), "Green")
	require.NoError(t, err)
	second, err := uc.Search(context.Background(), "green")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
}
