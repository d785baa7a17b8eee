package schema

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Holder provides thread-safe access to a service description with hot
// reload support. The held Service is swapped wholesale on reload; callers
// must treat the value returned by Get as read-only.
type Holder struct {
	mu      sync.RWMutex
	svc     Service
	path    string
	logger  zerolog.Logger
	watcher *fsnotify.Watcher
	onSwap  []func(Service)
	stopCh  chan struct{}
}

// NewHolder creates a schema holder and loads the initial service
// description from path.
func NewHolder(path string, logger zerolog.Logger) (*Holder, error) {
	svc, err := ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	h := &Holder{
		svc:    svc,
		path:   absPath,
		logger: logger,
		stopCh: make(chan struct{}),
	}

	return h, nil
}

// Get returns the current service description (thread-safe).
func (h *Holder) Get() Service {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.svc
}

// Path returns the absolute path of the schema file backing this holder.
func (h *Holder) Path() string {
	return h.path
}

// Reload re-reads the schema file from disk.
// Returns an error if parsing fails (keeps the old schema).
func (h *Holder) Reload() error {
	h.logger.Info().Str("path", h.path).Msg("reloading service schema")

	newSvc, err := ParseFile(h.path)
	if err != nil {
		h.logger.Error().Err(err).Msg("schema reload failed, keeping old schema")
		return fmt.Errorf("reload schema: %w", err)
	}

	h.mu.Lock()
	oldSvc := h.svc
	h.svc = newSvc
	h.mu.Unlock()

	// Log what changed
	h.logChanges(oldSvc, newSvc)

	// Notify listeners
	for _, fn := range h.onSwap {
		fn(newSvc)
	}

	h.logger.Info().Msg("service schema reloaded successfully")
	return nil
}

// OnSwap registers a callback to be called when the schema changes.
func (h *Holder) OnSwap(fn func(Service)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSwap = append(h.onSwap, fn)
}

// WatchFile starts watching the schema file for changes.
// Changes trigger automatic reload.
func (h *Holder) WatchFile() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	h.watcher = watcher

	// Watch the directory (more reliable for editors that do atomic saves)
	dir := filepath.Dir(h.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go h.watchLoop()

	h.logger.Info().Str("path", h.path).Msg("watching schema file for changes")
	return nil
}

// WatchSignals starts listening for SIGHUP to trigger reload.
func (h *Holder) WatchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)

	go func() {
		for {
			select {
			case <-sigCh:
				h.logger.Info().Msg("received SIGHUP, reloading schema")
				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("SIGHUP reload failed")
				}
			case <-h.stopCh:
				signal.Stop(sigCh)
				return
			}
		}
	}()

	h.logger.Info().Msg("listening for SIGHUP to reload schema")
}

// Stop stops watching for file changes and signals.
func (h *Holder) Stop() {
	close(h.stopCh)
	if h.watcher != nil {
		h.watcher.Close()
	}
}

func (h *Holder) watchLoop() {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}

			// Only react to our schema file
			if filepath.Base(event.Name) != filename {
				continue
			}

			// React to write or create (atomic save = create)
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("schema file changed")

				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) logChanges(old, new Service) {
	if old.Name != new.Name {
		h.logger.Info().
			Str("old", old.Name).
			Str("new", new.Name).
			Msg("service name changed")
	}

	added, removed := diffActionNames(old.ActionNames(), new.ActionNames())
	if len(added) > 0 || len(removed) > 0 {
		h.logger.Info().
			Strs("added", added).
			Strs("removed", removed).
			Msg("declared actions changed")
	}
}

// diffActionNames returns the names present only in new and only in old.
func diffActionNames(old, new []string) (added, removed []string) {
	had := make(map[string]bool, len(old))
	for _, name := range old {
		had[name] = true
	}

	has := make(map[string]bool, len(new))
	for _, name := range new {
		has[name] = true
		if !had[name] {
			added = append(added, name)
		}
	}

	for _, name := range old {
		if !has[name] {
			removed = append(removed, name)
		}
	}

	return added, removed
}
