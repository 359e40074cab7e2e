// Package watch re-runs document checks when watched files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet interval before a changed document is
// re-checked. Editors often emit several events per save; the debounce
// collapses them into one re-check.
const DefaultDebounce = 300 * time.Millisecond

// Run watches the given document paths and calls onChange for each path
// after its debounce interval elapses without further events. The
// parent directories are watched rather than the files themselves, so
// that save-via-rename editors keep triggering. Blocks until ctx is
// done; a nil return means a normal stop.
func Run(ctx context.Context, paths []string, debounce time.Duration, onChange func(path string)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched, err := addWatches(watcher, paths)
	if err != nil {
		return err
	}

	pending := &pendingChanges{
		debounce: debounce,
		onChange: onChange,
		timers:   make(map[string]*time.Timer),
	}
	defer pending.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			handleEvent(event, watched, pending)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			return fmt.Errorf("watch: %w", watchErr)
		}
	}
}

// addWatches registers the parent directory of every path and returns
// the cleaned path set used to filter events.
func addWatches(watcher *fsnotify.Watcher, paths []string) (map[string]bool, error) {
	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)

	for _, path := range paths {
		clean := filepath.Clean(path)
		watched[clean] = true

		dir := filepath.Dir(clean)
		if dirs[dir] {
			continue
		}

		dirs[dir] = true

		err := watcher.Add(dir)
		if err != nil {
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return watched, nil
}

// handleEvent schedules a debounced re-check for relevant events.
func handleEvent(event fsnotify.Event, watched map[string]bool, pending *pendingChanges) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	name := filepath.Clean(event.Name)
	if !watched[name] {
		return
	}

	pending.schedule(name)
}

// pendingChanges debounces change notifications per path.
type pendingChanges struct {
	mu       sync.Mutex
	debounce time.Duration
	onChange func(path string)
	timers   map[string]*time.Timer
}

// schedule arms (or re-arms) the debounce timer for path.
func (p *pendingChanges) schedule(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if timer, ok := p.timers[path]; ok {
		timer.Reset(p.debounce)

		return
	}

	p.timers[path] = time.AfterFunc(p.debounce, func() {
		p.mu.Lock()
		delete(p.timers, path)
		p.mu.Unlock()

		p.onChange(path)
	})
}

// stop cancels all armed timers.
func (p *pendingChanges) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for path, timer := range p.timers {
		timer.Stop()
		delete(p.timers, path)
	}
}
