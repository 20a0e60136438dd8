// Package cleanup runs best-effort background deletion of stored image files.
// Deletions are queued, retried with backoff, and counted in metrics; failures
// are logged and never surfaced to the request that scheduled them.
package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"waypost/internal/middleware"
	"waypost/internal/observability"
)

const (
	defaultQueueSize = 256
	maxAttempts      = 3
	retryDelay       = 500 * time.Millisecond
)

// Cleaner deletes files under a fixed base directory.
type Cleaner struct {
	baseDir    string
	queue      chan string
	retryDelay time.Duration
	startOnce  sync.Once
	wg         sync.WaitGroup
}

// NewCleaner returns a Cleaner rooted at baseDir. Paths outside baseDir are
// rejected at enqueue time.
func NewCleaner(baseDir string) *Cleaner {
	return &Cleaner{
		baseDir:    baseDir,
		queue:      make(chan string, defaultQueueSize),
		retryDelay: retryDelay,
	}
}

// Start launches the worker goroutine. Subsequent calls are no-ops.
func (c *Cleaner) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.wg.Add(1)
		go c.workerLoop(ctx)
	})
}

// Wait blocks until the worker has drained and exited after context cancel.
func (c *Cleaner) Wait() {
	c.wg.Wait()
}

// Enqueue schedules deletion of the stored file referenced by relPath, which
// is interpreted relative to the base directory. Enqueue never blocks: when
// the queue is full the deletion is dropped and counted as a failure.
func (c *Cleaner) Enqueue(relPath string) {
	abs, ok := c.resolve(relPath)
	if !ok {
		observability.FileCleanups.WithLabelValues("rejected").Inc()
		return
	}
	select {
	case c.queue <- abs:
	default:
		observability.FileCleanups.WithLabelValues("failed").Inc()
		middleware.Logger.Warn("cleanup queue full, dropping deletion", "path", relPath)
	}
}

// servingPrefix is the public URL namespace under which stored files are
// referenced ("images/<name>"), independent of the configured directory.
const servingPrefix = "images/"

// resolve maps relPath to an absolute path inside the base directory,
// stripping the serving prefix the stored references carry.
func (c *Cleaner) resolve(relPath string) (string, bool) {
	p := strings.TrimSpace(relPath)
	if p == "" {
		return "", false
	}
	p = filepath.ToSlash(filepath.Clean(p))
	p = strings.TrimPrefix(p, servingPrefix)
	if p == "" || p == "." || strings.HasPrefix(p, "../") || filepath.IsAbs(p) {
		return "", false
	}
	return filepath.Join(c.baseDir, filepath.FromSlash(p)), true
}

func (c *Cleaner) workerLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			// Drain whatever is already queued before exiting.
			for {
				select {
				case path := <-c.queue:
					c.remove(context.Background(), path)
				default:
					return
				}
			}
		case path := <-c.queue:
			c.remove(ctx, path)
		}
	}
}

func (c *Cleaner) remove(ctx context.Context, path string) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := os.Remove(path)
		if err == nil {
			observability.FileCleanups.WithLabelValues("deleted").Inc()
			return
		}
		if os.IsNotExist(err) {
			observability.FileCleanups.WithLabelValues("missing").Inc()
			return
		}
		lastErr = err
		if attempt < maxAttempts && !sleepContext(ctx, c.retryDelay*time.Duration(attempt)) {
			break
		}
	}
	observability.FileCleanups.WithLabelValues("failed").Inc()
	middleware.Logger.Warn("image cleanup failed", "path", path, "error", lastErr.Error())
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
