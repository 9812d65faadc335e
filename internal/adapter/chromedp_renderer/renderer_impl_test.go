package chromedp_renderer

import (
	"bytes"
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func requireChrome(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(bin); err == nil {
			return
		}
	}
	t.Skip("no chrome binary available")
}

func TestRenderPDF(t *testing.T) {
	requireChrome(t)

	r := NewChromedpRenderer(1, 30*time.Second, zap.NewNop())
	defer r.Close()

	pdf, err := r.RenderPDF(context.Background(), "<html><body><h1>ESG Report</h1></body></html>")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestRenderPDF_CancelledWhileWaitingForSlot(t *testing.T) {
	r := NewChromedpRenderer(1, time.Second, zap.NewNop())
	defer r.Close()

	r.slots <- struct{}{} // occupy the only slot
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RenderPDF(ctx, "<p>x</p>")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderPDF_ReusesOneBrowser(t *testing.T) {
	requireChrome(t)

	r := NewChromedpRenderer(2, 30*time.Second, zap.NewNop())
	defer r.Close()

	_, err := r.RenderPDF(context.Background(), "<p>first</p>")
	require.NoError(t, err)
	first := chromedp.FromContext(r.browserCtx).Browser

	_, err = r.RenderPDF(context.Background(), "<p>second</p>")
	require.NoError(t, err)
	assert.Same(t, first, chromedp.FromContext(r.browserCtx).Browser)
}

func TestClose_WithoutRender(t *testing.T) {
	r := NewChromedpRenderer(1, time.Second, zap.NewNop())
	r.Close()
	assert.Nil(t, r.browserCtx)

	_, err := r.RenderPDF(context.Background(), "<p>x</p>")
	assert.Error(t, err)
}
