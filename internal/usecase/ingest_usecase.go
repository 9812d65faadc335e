package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/user/crm-service/internal/repository"
	"github.com/user/crm-service/pkg/metrics"
	"go.uber.org/zap"
)

const idlePoll = 2 * time.Second

// Ingestor moves documents dropped into the inbox through the upload pipeline.
type Ingestor interface {
	Enqueue(ctx context.Context, path string) error
	// ProcessFromQueue handles at most one queued document. It reports
	// false when the queue was empty.
	ProcessFromQueue(ctx context.Context) (bool, error)
	// Start launches the workers and, when paths is non-nil, a feeder that
	// enqueues everything received on it.
	Start(ctx context.Context, paths <-chan string)
	Stop()
}

type ingestUseCase struct {
	queue    repository.QueueRepository
	reports  ReportService
	workers  int
	poll     time.Duration
	logger   *zap.Logger
	readFile func(string) ([]byte, error)

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewIngestUseCase creates an ingestor running the given number of workers.
func NewIngestUseCase(queue repository.QueueRepository, reports ReportService, workers int, logger *zap.Logger) Ingestor {
	if workers <= 0 {
		workers = 1
	}
	return &ingestUseCase{
		queue:    queue,
		reports:  reports,
		workers:  workers,
		poll:     idlePoll,
		logger:   logger,
		readFile: os.ReadFile,
	}
}

func (uc *ingestUseCase) Enqueue(ctx context.Context, path string) error {
	if err := uc.queue.Push(ctx, path); err != nil {
		return fmt.Errorf("failed to push %s to ingest queue: %w", path, err)
	}
	uc.observeDepth(ctx)
	return nil
}

func (uc *ingestUseCase) ProcessFromQueue(ctx context.Context) (bool, error) {
	path, err := uc.queue.Pop(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to pop from ingest queue: %w", err)
	}
	uc.observeDepth(ctx)

	uc.logger.Info("Processing document from inbox", zap.String("path", path))
	start := time.Now()

	data, err := uc.readFile(path)
	if err != nil {
		return true, fmt.Errorf("read %s: %w", path, err)
	}

	report, err := uc.reports.Upload(ctx, UploadInput{OriginalName: filepath.Base(path), Data: data})
	if err != nil {
		return true, fmt.Errorf("ingest %s: %w", path, err)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		uc.logger.Warn("Failed to remove ingested document", zap.String("path", path), zap.Error(err))
	}
	uc.logger.Info("Document ingested",
		zap.String("path", path),
		zap.Int64("report_id", report.ID),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return true, nil
}

func (uc *ingestUseCase) observeDepth(ctx context.Context) {
	if n, err := uc.queue.Size(ctx); err == nil {
		metrics.IngestQueueDepth.Set(float64(n))
	}
}

func (uc *ingestUseCase) Start(ctx context.Context, paths <-chan string) {
	ctx, uc.cancel = context.WithCancel(ctx)

	if paths != nil {
		uc.wg.Add(1)
		go uc.feed(ctx, paths)
	}
	for i := 0; i < uc.workers; i++ {
		uc.wg.Add(1)
		go uc.worker(ctx)
	}
}

// Stop cancels the workers and waits for in-flight documents to finish.
func (uc *ingestUseCase) Stop() {
	if uc.cancel != nil {
		uc.cancel()
	}
	uc.wg.Wait()
}

func (uc *ingestUseCase) feed(ctx context.Context, paths <-chan string) {
	defer uc.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case p, ok := <-paths:
			if !ok {
				return
			}
			if err := uc.Enqueue(ctx, p); err != nil {
				uc.logger.Error("Failed to enqueue inbox document", zap.String("path", p), zap.Error(err))
			}
		}
	}
}

func (uc *ingestUseCase) worker(ctx context.Context) {
	defer uc.wg.Done()
	for {
		if ctx.Err() != nil {
			return
		}
		processed, err := uc.ProcessFromQueue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			uc.logger.Error("Inbox ingestion failed", zap.Error(err))
		}
		if processed {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(uc.poll):
		}
	}
}
