package download

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Engine temp-file suffixes that identify an incomplete download
var partialSuffixes = []string{".part", ".ytdl"}

// Retry defaults for files the transcoder may still hold open right
// after cancellation
const (
	defaultSweepAttempts = 5
	defaultSweepBackoff  = 500 * time.Millisecond
)

// Sweeper removes incomplete artifacts from a destination directory.
// Sweeping is best-effort: a file that cannot be removed is logged and
// left in place, and the sweep never reports an error to its caller.
type Sweeper struct {
	Attempts int
	Backoff  time.Duration
}

// NewSweeper creates a sweeper with the default retry policy
func NewSweeper() *Sweeper {
	return &Sweeper{
		Attempts: defaultSweepAttempts,
		Backoff:  defaultSweepBackoff,
	}
}

// Sweep removes partial files among the immediate children of dir and
// returns how many were deleted. A file is partial when its name carries
// an engine temp suffix or its size is exactly zero.
func (s *Sweeper) Sweep(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("cleanup: cannot list destination directory", "dir", dir, "error", err)
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if !s.isPartial(entry.Name(), full) {
			continue
		}
		if s.tryRemove(full) {
			removed++
		}
	}
	return removed
}

func (s *Sweeper) isPartial(name, full string) bool {
	for _, suffix := range partialSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	info, err := os.Stat(full)
	if err != nil {
		return false
	}
	return info.Size() == 0
}

// tryRemove deletes a file with bounded retry, tolerating the transcoder
// process still holding a handle right after cancellation.
func (s *Sweeper) tryRemove(path string) bool {
	for attempt := 1; attempt <= s.Attempts; attempt++ {
		err := os.Remove(path)
		if err == nil {
			slog.Info("cleanup: removed partial file", "file", filepath.Base(path))
			return true
		}
		if attempt < s.Attempts {
			time.Sleep(s.Backoff)
			continue
		}
		slog.Warn("cleanup: could not remove partial file, leaving in place",
			"file", filepath.Base(path), "attempts", s.Attempts, "error", err)
	}
	return false
}
