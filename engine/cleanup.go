package engine

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
)

// cleaner is the scoped registry of a run's transient artifacts: the
// intermediate stream-copy cut, the concat manifest, and the partial output
// file. One release call at the end of Assemble covers every exit path.
// Removal failures are logged and swallowed; cleanup never overrides the
// run's primary result.
type cleaner struct {
	log *slog.Logger

	mu    sync.Mutex
	files []string
	dirs  []string
}

func newCleaner(log *slog.Logger) *cleaner {
	return &cleaner{log: log}
}

// track registers a file for removal at release time.
func (c *cleaner) track(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = append(c.files, path)
}

// trackDir registers a directory tree for removal at release time.
func (c *cleaner) trackDir(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirs = append(c.dirs, path)
}

// release removes every tracked artifact, most recent first.
func (c *cleaner) release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.files) - 1; i >= 0; i-- {
		if err := os.Remove(c.files[i]); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("cleanup: could not remove temp file", "path", c.files[i], "error", err)
		}
	}
	c.files = nil

	for i := len(c.dirs) - 1; i >= 0; i-- {
		if err := os.RemoveAll(c.dirs[i]); err != nil {
			c.log.Warn("cleanup: could not remove temp directory", "path", c.dirs[i], "error", err)
		}
	}
	c.dirs = nil
}
