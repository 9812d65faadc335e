package chromedp_renderer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ChromedpRenderer prints HTML documents to PDF with headless Chrome.
type ChromedpRenderer struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc

	mu            sync.Mutex
	browserCtx    context.Context
	browserCancel context.CancelFunc

	slots   chan struct{}
	timeout time.Duration
	logger  *zap.Logger
}

// NewChromedpRenderer creates a renderer allowing at most maxConcurrency
// renders at once. One Chrome process is started on the first render and
// every render after that opens its own tab in it.
func NewChromedpRenderer(maxConcurrency int, timeout time.Duration, logger *zap.Logger) *ChromedpRenderer {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromedpRenderer{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		slots:       make(chan struct{}, maxConcurrency),
		timeout:     timeout,
		logger:      logger,
	}
}

// RenderPDF loads html into a blank tab and prints it.
func (c *ChromedpRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	select {
	case c.slots <- struct{}{}:
		defer func() { <-c.slots }()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	browserCtx, err := c.browser()
	if err != nil {
		return nil, err
	}

	// Create a new tab in the shared browser
	taskCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()

	// Create a timeout for the entire render task
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, c.timeout)
	defer cancelTimeout()

	// Abort the render when the caller goes away.
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	start := time.Now()
	var pdf []byte
	err = chromedp.Run(taskCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		c.logger.Error("failed to render pdf", zap.Error(err))
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	c.logger.Debug("rendered pdf", zap.Int("bytes", len(pdf)), zap.Duration("duration", time.Since(start)))
	return pdf, nil
}

// browser returns the shared browser context, launching Chrome when it is
// not running yet or the previous process went away.
func (c *ChromedpRenderer) browser() (context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.browserCtx != nil && c.browserCtx.Err() == nil {
		return c.browserCtx, nil
	}
	if c.allocCtx.Err() != nil {
		return nil, errors.New("render pdf: renderer closed")
	}

	ctx, cancel := chromedp.NewContext(c.allocCtx)
	// Run with no actions only starts the browser.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	c.browserCtx, c.browserCancel = ctx, cancel
	c.logger.Info("chrome started")
	return ctx, nil
}

// Close shuts down the browser process, if one was started. Renders after
// Close fail.
func (c *ChromedpRenderer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.browserCancel != nil {
		c.browserCancel()
		c.browserCtx, c.browserCancel = nil, nil
	}
	c.allocCancel()
}
