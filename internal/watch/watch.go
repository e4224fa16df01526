// Package watch auto-imports media files dropped into a watched directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/ktaka/mediavault/internal/ingest"
	"github.com/ktaka/mediavault/internal/util"
)

// defaultDebounce is how long a file must stay quiet before it is
// considered fully written and handed to the importer
const defaultDebounce = 2 * time.Second

// Watcher monitors one drop directory and ingests files once their
// writes settle. Distinct files are imported concurrently; per-digest
// serialization inside the importer keeps duplicates out.
type Watcher struct {
	importer *ingest.Importer
	dir      string
	debounce time.Duration
}

// New creates a Watcher over dir
func New(importer *ingest.Importer, dir string) *Watcher {
	return &Watcher{
		importer: importer,
		dir:      dir,
		debounce: defaultDebounce,
	}
}

// Run watches the drop directory until the context is canceled
func (w *Watcher) Run(ctx context.Context) error {
	if info, err := os.Stat(w.dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: watch directory %s", util.ErrInvalidConfig, w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	util.InfoLog("watching %s for new media", w.dir)

	// Last-write timestamps for files still being written
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			util.InfoLog("stopping watcher")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			util.WarnLog("watch error: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.debounce {
					continue
				}
				delete(pending, path)

				wg.Add(1)
				go func(path string) {
					defer wg.Done()
					w.ingestOne(path)
				}(path)
			}
		}
	}
}

func (w *Watcher) ingestOne(path string) {
	jobID := uuid.NewString()
	util.InfoLog("[job %s] importing %s", jobID, path)

	res := w.importer.Ingest(path)
	switch res.Status {
	case ingest.StatusImported:
		util.SuccessLog("[job %s] imported as record %d", jobID, res.ID)
	case ingest.StatusRejected:
		util.InfoLog("[job %s] rejected: %s", jobID, res.Reason)
	case ingest.StatusFailed:
		util.ErrorLog("[job %s] failed: %v", jobID, res.Err)
	}
}
