package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIngestFixture(t *testing.T) (*ingestUseCase, *fakeQueue, *fakeReportRepo) {
	t.Helper()
	repo := newFakeReportRepo()
	reports := NewReportUseCase(repo, newFakeFileStore(), fakeText{}, fakeSheets{}, &fakeRenderer{}, zap.NewNop())
	queue := &fakeQueue{}
	uc := NewIngestUseCase(queue, reports, 2, zap.NewNop()).(*ingestUseCase)
	uc.poll = 10 * time.Millisecond
	return uc, queue, repo
}

func TestProcessFromQueue_Empty(t *testing.T) {
	uc, _, _ := newIngestFixture(t)
	processed, err := uc.ProcessFromQueue(context.Background())
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestProcessFromQueue_IngestsAndRemovesSource(t *testing.T) {
	uc, _, repo := newIngestFixture(t)
	path := filepath.Join(t.TempDir(), "greentech.txt")
	require.NoError(t, os.WriteFile(path, []byte(greenTech), 0o644))

	require.NoError(t, uc.Enqueue(context.Background(), path))
	processed, err := uc.ProcessFromQueue(context.Background())
	require.NoError(t, err)
	assert.True(t, processed)

	reports, _ := repo.List(context.Background())
	require.Len(t, reports, 1)
	assert.Equal(t, "greentech.txt", reports[0].OriginalName)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestProcessFromQueue_FailureKeepsSource(t *testing.T) {
	uc, _, repo := newIngestFixture(t)
	path := filepath.Join(t.TempDir(), "scan.txt")
	require.NoError(t, os.WriteFile(path, []byte("  "), 0o644))

	require.NoError(t, uc.Enqueue(context.Background(), path))
	processed, err := uc.ProcessFromQueue(context.Background())
	assert.True(t, processed)
	assert.ErrorIs(t, err, ErrNoTextLayer)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
	reports, _ := repo.List(context.Background())
	assert.Empty(t, reports)
}

func TestIngestWorkers_StartStop(t *testing.T) {
	uc, queue, repo := newIngestFixture(t)
	dir := t.TempDir()

	paths := make(chan string)
	uc.Start(context.Background(), paths)

	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(greenTech), 0o644))
		paths <- p
	}

	require.Eventually(t, func() bool {
		reports, _ := repo.List(context.Background())
		return len(reports) == 3
	}, 5*time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		uc.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}

	size, _ := queue.Size(context.Background())
	assert.Zero(t, size)
}
