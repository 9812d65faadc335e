package fsnotify_watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/user/crm-service/pkg/utils"
	"go.uber.org/zap"
)

// DefaultExtensions are the document types picked up from the inbox.
var DefaultExtensions = []string{"pdf", "html", "htm", "txt"}

// InboxWatcher emits paths of documents dropped into a directory.
type InboxWatcher struct {
	dir         string
	exts        map[string]struct{}
	debounce    time.Duration
	initialScan bool
	logger      *zap.Logger
}

// NewInboxWatcher watches dir (not recursively). Bursts of events for the
// same file within debounce are coalesced into one emission.
func NewInboxWatcher(dir string, debounce time.Duration, initialScan bool, logger *zap.Logger) *InboxWatcher {
	exts := make(map[string]struct{}, len(DefaultExtensions))
	for _, e := range DefaultExtensions {
		exts[e] = struct{}{}
	}
	return &InboxWatcher{
		dir:         dir,
		exts:        exts,
		debounce:    debounce,
		initialScan: initialScan,
		logger:      logger,
	}
}

func (w *InboxWatcher) allowed(path string) bool {
	_, ok := w.exts[utils.Ext(path)]
	return ok
}

// Watch starts watching until ctx is cancelled. The returned channel is
// closed when watching stops.
func (w *InboxWatcher) Watch(ctx context.Context) (<-chan string, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return nil, err
	}

	var existing []string
	if w.initialScan {
		entries, err := os.ReadDir(w.dir)
		if err != nil {
			fw.Close()
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && w.allowed(e.Name()) {
				existing = append(existing, filepath.Join(w.dir, e.Name()))
			}
		}
	}

	out := make(chan string, 64)
	go w.loop(ctx, fw, existing, out)
	return out, nil
}

func (w *InboxWatcher) loop(ctx context.Context, fw *fsnotify.Watcher, existing []string, out chan<- string) {
	defer close(out)
	defer fw.Close()

	emit := func(path string) bool {
		select {
		case out <- path:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for _, p := range existing {
		if !emit(p) {
			return
		}
	}

	pending := map[string]struct{}{}
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	flush := func() bool {
		paths := make([]string, 0, len(pending))
		for p := range pending {
			// Gone again before the debounce fired.
			if _, err := os.Stat(p); err != nil {
				continue
			}
			paths = append(paths, p)
		}
		sort.Strings(paths)
		clear(pending)
		for _, p := range paths {
			if !emit(p) {
				return false
			}
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			// Files moved into the inbox arrive as Create; Rename carries the
			// old name of a file that left it.
			if !w.allowed(ev.Name) || !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			pending[ev.Name] = struct{}{}
			if w.debounce <= 0 {
				if !flush() {
					return
				}
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			if !flush() {
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("inbox watcher error", zap.String("dir", w.dir), zap.Error(err))
		}
	}
}
