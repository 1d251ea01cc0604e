package corpus

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits after the last change
// before triggering a rebuild. Editors produce bursts of events.
const DefaultDebounce = 2 * time.Second

// Watcher observes the corpus root and invokes a rebuild callback when
// eligible files change. Events are debounced.
type Watcher struct {
	root     string
	debounce time.Duration
	rebuild  func(context.Context) error
	log      *zap.Logger
}

// NewWatcher creates a watcher over root. rebuild is called at most
// once per quiet period after a burst of changes.
func NewWatcher(root string, rebuild func(context.Context) error, log *zap.Logger) *Watcher {
	return &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		rebuild:  rebuild,
		log:      log,
	}
}

// Run watches until ctx is cancelled. Rebuild failures are logged and
// watching continues; the previous index snapshot stays in effect.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := w.addRecursive(fw); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("corpus change detected",
				zap.String("path", event.Name),
				zap.String("op", event.Op.String()))

			// New directories need watching too.
			if event.Op.Has(fsnotify.Create) && filepath.Ext(event.Name) == "" {
				_ = w.addRecursive(fw)
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.log.Info("rebuilding index after corpus change")
			if err := w.rebuild(ctx); err != nil {
				w.log.Warn("rebuild failed, keeping previous index", zap.Error(err))
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("corpus watch error", zap.Error(err))
		}
	}
}

// relevant filters events down to eligible corpus files and directory
// creations/removals that could change the eligible set.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	if _, ok := kindByExt[ext]; ok {
		return true
	}
	// Directory events have no eligible extension but may add or remove
	// whole subtrees.
	return ext == ""
}

// addRecursive registers the root and all nested directories.
func (w *Watcher) addRecursive(fw *fsnotify.Watcher) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != w.root {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
