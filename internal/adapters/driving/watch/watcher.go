// Package watch imports ESX documents dropped into an inbox directory.
//
// Each document is imported through the interchange service and then moved
// to processed/ or failed/ inside the inbox, so a file is only ever
// imported once. Imports are throttled by a token bucket.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
	"github.com/custodia-labs/estix-cli/internal/logger"
)

const (
	// ProcessedDir receives successfully imported documents.
	ProcessedDir = "processed"

	// FailedDir receives documents that could not be imported.
	FailedDir = "failed"

	// Extension is the suffix of documents picked up from the inbox.
	Extension = ".esx"

	// DefaultSettleDelay is how long a file must stay unchanged before it
	// is imported. Copies into the inbox emit several write events.
	DefaultSettleDelay = 250 * time.Millisecond

	queueSize = 64
)

var (
	// ErrMissingInterchangeService is returned when no importer is provided.
	ErrMissingInterchangeService = errors.New("watch: interchange service is required")

	// ErrMissingDir is returned when no inbox directory is configured.
	ErrMissingDir = errors.New("watch: inbox directory is required")
)

// Result describes one inbox document after it was handled.
type Result struct {
	// Path is where the document was found.
	Path string

	// Dest is where the document was moved.
	Dest string

	// Summary is set when the import succeeded.
	Summary *driving.ImportSummary

	// Err is set when the import failed.
	Err error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettleDelay overrides DefaultSettleDelay.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) { w.settle = d }
}

// WithResultHandler registers fn to be called after each document.
func WithResultHandler(fn func(Result)) Option {
	return func(w *Watcher) { w.onResult = fn }
}

// Watcher imports documents from an inbox directory.
type Watcher struct {
	interchange driving.InterchangeService
	dir         string
	limiter     *rate.Limiter
	settle      time.Duration
	onResult    func(Result)

	mu      sync.Mutex
	pending map[string]*time.Timer
	queue   chan string
}

// New creates a watcher for dir importing at most perSecond documents per
// second. A non-positive rate uses domain.DefaultWatchRate.
func New(interchange driving.InterchangeService, dir string, perSecond int, opts ...Option) (*Watcher, error) {
	if interchange == nil {
		return nil, ErrMissingInterchangeService
	}
	if strings.TrimSpace(dir) == "" {
		return nil, ErrMissingDir
	}
	if perSecond <= 0 {
		perSecond = domain.DefaultWatchRate
	}

	w := &Watcher{
		interchange: interchange,
		dir:         filepath.Clean(dir),
		limiter:     rate.NewLimiter(rate.Limit(perSecond), 1),
		settle:      DefaultSettleDelay,
		pending:     make(map[string]*time.Timer),
		queue:       make(chan string, queueSize),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Dir returns the inbox directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run imports documents already in the inbox, then watches for new ones
// until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	for _, sub := range []string{ProcessedDir, FailedDir} {
		if err := os.MkdirAll(filepath.Join(w.dir, sub), 0o755); err != nil {
			return fmt.Errorf("creating %s directory: %w", sub, err)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer w.stopTimers()

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.drain(ctx)
	}()

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.dir, err)
	}
	for _, entry := range entries {
		if path, ok := w.candidate(filepath.Join(w.dir, entry.Name())); ok {
			w.enqueue(ctx, path)
		}
	}

	logger.Info("Watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, ok := w.handleFsEvent(event); ok {
				w.schedule(ctx, path)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleFsEvent reports whether event concerns an inbox document.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	return w.candidate(event.Name)
}

// candidate reports whether path is a visible .esx file directly inside
// the inbox.
func (w *Watcher) candidate(path string) (string, bool) {
	path = filepath.Clean(path)
	if filepath.Dir(path) != w.dir {
		return "", false
	}
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), Extension) {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// schedule queues path once it has not changed for the settle delay.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.enqueue(ctx, path)
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) enqueue(ctx context.Context, path string) {
	select {
	case w.queue <- path:
	case <-ctx.Done():
	}
}

func (w *Watcher) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-w.queue:
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			// A path queued twice is gone after the first import.
			if _, err := os.Stat(path); err != nil {
				continue
			}
			result := w.ProcessFile(ctx, path)
			if w.onResult != nil {
				w.onResult(result)
			}
		}
	}
}

// ProcessFile imports the document at path and moves it out of the inbox.
func (w *Watcher) ProcessFile(ctx context.Context, path string) Result {
	result := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("reading %s: %w", path, err)
		logger.Warn("%v", result.Err)
		return result
	}

	result.Summary, result.Err = w.interchange.Import(ctx, data)

	sub := ProcessedDir
	if result.Err != nil {
		sub = FailedDir
		logger.Warn("Import of %s failed: %v", filepath.Base(path), result.Err)
	} else {
		logger.Info("Imported %s as %s", filepath.Base(path), result.Summary.ProjectID)
	}

	dest, err := moveFile(path, filepath.Join(w.dir, sub))
	if err != nil {
		logger.Warn("Moving %s: %v", filepath.Base(path), err)
		if result.Err == nil {
			result.Err = err
		}
		return result
	}
	result.Dest = dest
	return result
}

// moveFile moves path into dir, numbering the name when it is taken.
func moveFile(path, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	name := filepath.Base(path)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	dest := filepath.Join(dir, name)
	for n := 1; ; n++ {
		if _, err := os.Stat(dest); errors.Is(err, os.ErrNotExist) {
			break
		}
		dest = filepath.Join(dir, stem+"-"+strconv.Itoa(n)+ext)
	}

	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("moving to %s: %w", dest, err)
	}
	return dest, nil
}
