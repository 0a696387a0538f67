// Package photoinbox watches a directory for new product photos and turns
// each one into a listing suggestion. It never writes to the catalog; an
// admin reviews the suggestion and commits the product.
package photoinbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sssmarthaat/haat/internal/logger"
)

// DefaultSettle is how long a file must stay unchanged before it is handled.
const DefaultSettle = 500 * time.Millisecond

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Handler is called once per settled photo.
type Handler func(ctx context.Context, path string)

// Watcher reports photos written into a directory.
type Watcher struct {
	dir     string
	settle  time.Duration
	handler Handler
}

// NewWatcher creates a watcher for dir. settle <= 0 uses DefaultSettle.
func NewWatcher(dir string, settle time.Duration, handler Handler) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{dir: dir, settle: settle, handler: handler}
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run watches until ctx is cancelled. The directory is created if missing.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o700); err != nil {
		return fmt.Errorf("create inbox directory: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("photo inbox: watching %s", w.dir)

	// Editors and copy tools write in several chunks; each path is handled
	// once it has been quiet for the settle period.
	ready := make(chan string)
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			path, accepted := acceptEvent(event)
			if !accepted {
				continue
			}
			if t, exists := pending[path]; exists {
				t.Reset(w.settle)
				continue
			}
			pending[path] = time.AfterFunc(w.settle, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			if _, exists := pending[path]; !exists {
				continue
			}
			delete(pending, path)
			logger.Debug("photo inbox: %s settled", path)
			w.handler(ctx, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("photo inbox: %v", err)
		}
	}
}

// acceptEvent reports whether event is a created or written photo file.
func acceptEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return "", false
	}
	if !photoExtensions[strings.ToLower(filepath.Ext(name))] {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}
