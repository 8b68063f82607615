package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"digitalmandi/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Reload reports the outcome of reloading a catalog file.
type Reload struct {
	Path string
	At   time.Time
	// Err is set when the new contents were rejected; the previous document
	// keeps being served.
	Err error
}

// FileProvider serves a YAML catalog file and can watch it for changes.
type FileProvider struct {
	*Memory

	path    string
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	updates chan Reload
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
	// debounce collapses the burst of events editors emit on save.
	debounce time.Duration
}

// OpenFile loads and validates a catalog file.
func OpenFile(path string) (*FileProvider, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	doc, err := readFile(abs)
	if err != nil {
		return nil, err
	}
	logging.Catalog("loaded %s: %d listings, %d forecasts, %d pools", abs, len(doc.Listings), len(doc.Forecasts), len(doc.Pools))
	return &FileProvider{
		Memory:   NewMemory(*doc),
		path:     abs,
		updates:  make(chan Reload, 1),
		debounce: 200 * time.Millisecond,
	}, nil
}

// Path is the absolute path being served.
func (p *FileProvider) Path() string { return p.path }

// Updates delivers one Reload per applied or rejected change. Only the most
// recent undelivered reload is kept.
func (p *FileProvider) Updates() <-chan Reload { return p.updates }

// Watch starts reloading the file when it changes. It is non-blocking and
// stops when ctx is done or Stop is called; after either the provider can be
// watched again.
func (p *FileProvider) Watch(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := w.Add(filepath.Dir(p.path)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}

	p.watcher = w
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.running = true
	go p.run(ctx, w, p.stopCh, p.doneCh)
	logging.Catalog("watching %s", p.path)
	return nil
}

// Stop stops watching and waits for the watch loop to exit.
func (p *FileProvider) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	stopCh, doneCh, w := p.stopCh, p.doneCh, p.watcher
	p.mu.Unlock()

	close(stopCh)
	<-doneCh
	if err := w.Close(); err != nil {
		logging.CatalogWarn("close watcher: %v", err)
	}
}

// watching reports whether a watch loop is active.
func (p *FileProvider) watching() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *FileProvider) run(ctx context.Context, w *fsnotify.Watcher, stopCh chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	defer p.finish(w, stopCh)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != p.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(p.debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logging.CatalogWarn("watcher error: %v", err)
		case <-pending:
			pending = nil
			p.reload()
		}
	}
}

// finish releases the watcher when the loop ends without Stop, e.g. because
// ctx is done. Stop owns the cleanup otherwise.
func (p *FileProvider) finish(w *fsnotify.Watcher, stopCh chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running || p.stopCh != stopCh {
		return
	}
	p.running = false
	if err := w.Close(); err != nil {
		logging.CatalogWarn("close watcher: %v", err)
	}
	logging.Catalog("stopped watching %s", p.path)
}

func (p *FileProvider) reload() {
	r := Reload{Path: p.path, At: time.Now()}
	doc, err := readFile(p.path)
	if err != nil {
		r.Err = err
		logging.CatalogWarn("reload rejected, keeping previous catalog: %v", err)
	} else {
		p.Replace(*doc)
		logging.Catalog("reloaded %s: %d listings", p.path, len(doc.Listings))
	}

	select {
	case p.updates <- r:
	default:
		// Replace the stale undelivered notification.
		select {
		case <-p.updates:
		default:
		}
		select {
		case p.updates <- r:
		default:
		}
	}
}

func readFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
