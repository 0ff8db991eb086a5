package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/easytuber/easytuber/internal/engine"
	"github.com/easytuber/easytuber/internal/jobconfig"
	"github.com/easytuber/easytuber/internal/model"
)

const (
	// Buffered capacity of the state hand-off channel. Intermediate
	// snapshots are dropped when the consumer lags; terminal snapshots
	// are always delivered.
	updateBuffer = 64

	// Buffered capacity of the engine event channel
	eventBuffer = 32

	taskIDPrefix = "job-"
)

// ErrJobActive is returned when a download is started while another one
// is still running. One service instance executes at most one job.
var ErrJobActive = errors.New("a download job is already active")

// Service owns the cancellable background execution of search and
// download jobs. The background goroutine is the sole writer of the job
// state; consumers read snapshots from Updates.
type Service struct {
	engine  engine.Engine
	sweeper *Sweeper

	updates chan model.JobState

	mu       sync.Mutex
	active   bool
	cancelFn context.CancelFunc

	// cancelRequested is monotonic for the lifetime of one job: set from
	// any goroutine by Cancel, read by the job goroutine, reset only
	// when the next job starts.
	cancelRequested atomic.Bool

	searchMu    sync.Mutex
	lastFormats []engine.RawFormat
	lastEntries int
}

// NewService creates a download service backed by the given engine
func NewService(eng engine.Engine) *Service {
	return &Service{
		engine:  eng,
		sweeper: NewSweeper(),
		updates: make(chan model.JobState, updateBuffer),
	}
}

// Updates returns the state stream. Snapshots arrive in order; every job
// ends with exactly one snapshot in a terminal phase.
func (s *Service) Updates() <-chan model.JobState {
	return s.updates
}

// Search runs metadata extraction for a URL on a background goroutine and
// hands the result to onComplete. Extraction failures are surfaced through
// the same callback so a waiting caller is never left hanging.
func (s *Service) Search(ctx context.Context, url string, onComplete func(*model.SearchResult, error)) {
	go func() {
		meta, err := s.engine.Extract(ctx, url)
		if err != nil {
			slog.Error("search failed", "url", url, "error", err)
			onComplete(nil, err)
			return
		}

		s.searchMu.Lock()
		s.lastFormats = meta.Formats
		s.lastEntries = meta.EntryCount
		s.searchMu.Unlock()

		onComplete(newSearchResult(meta), nil)
	}()
}

// Start validates the request and launches its download on a single
// background goroutine, returning immediately. Validation failures are
// reported together and no goroutine is spawned for them.
func (s *Service) Start(req model.DownloadRequest) (string, error) {
	cfg, err := jobconfig.Build(req, s.rawFormats())
	if err != nil {
		return "", err
	}
	if cfg.Playlist {
		cfg.ExpectedItems = s.entryCount()
	}

	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return "", ErrJobActive
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.active = true
	s.cancelFn = cancel
	s.cancelRequested.Store(false)
	s.mu.Unlock()

	jobID := generateJobID()
	slog.Info("starting download", "job", jobID, "url", req.URL, "mode", req.Mode)

	go s.run(ctx, jobID, req, cfg)
	return jobID, nil
}

// Cancel requests cooperative cancellation of the active job. The engine
// is not killed outright; the request takes effect the next time the
// engine yields, so cancellation latency is bounded by the engine's own
// callback cadence.
func (s *Service) Cancel() {
	s.cancelRequested.Store(true)

	s.mu.Lock()
	cancel := s.cancelFn
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// run executes one job to its terminal phase. It is the only writer of
// the job's state.
func (s *Service) run(ctx context.Context, jobID string, req model.DownloadRequest, cfg engine.Config) {
	st := model.JobState{
		JobID:     jobID,
		Phase:     model.PhaseExtracting,
		Percent:   extractingPercent,
		Message:   "Preparing download...",
		StartedAt: time.Now(),
	}
	s.push(st, false)

	events := make(chan engine.Event, eventBuffer)
	errc := make(chan error, 1)
	go func() {
		errc <- s.engine.Download(ctx, cfg, events)
		close(events)
	}()

	for ev := range events {
		st = applyEvent(st, ev)
		s.push(st, false)
	}
	err := <-errc

	// The engine call has fully unwound here; nothing is writing to the
	// destination anymore, so sweeping is safe.
	st = s.finish(st, req, err)

	s.mu.Lock()
	s.active = false
	s.cancelFn = nil
	s.mu.Unlock()

	s.push(st, true)
}

// finish classifies the engine outcome into exactly one of the three
// terminal phases. The cancellation flag is checked before generic error
// classification so a cancelled job never reports Failed, even when the
// engine also raised. Cleanup runs only on cancellation: a genuine engine
// error may have left a resumable partial file the user still wants.
func (s *Service) finish(st model.JobState, req model.DownloadRequest, err error) model.JobState {
	st.FinishedAt = time.Now()

	switch {
	case s.cancelRequested.Load() || errors.Is(err, engine.ErrCancelled):
		st.Phase = model.PhaseCancelled
		st.Message = "Download cancelled"
		removed := s.sweeper.Sweep(req.DestinationPath)
		slog.Info("download cancelled", "job", st.JobID, "partials_removed", removed)

	case err != nil:
		st.Phase = model.PhaseFailed
		st.Percent = 0
		st.Error = err.Error()
		st.Message = "Download failed"
		slog.Error("download failed", "job", st.JobID, "error", err)

	default:
		st.Phase = model.PhaseFinished
		st.Percent = 1.0
		st.Message = "Download complete"
		slog.Info("download complete", "job", st.JobID)
	}

	return st
}

// push delivers a snapshot to the consumer. Intermediate snapshots are
// dropped when the buffer is full; terminal snapshots always block until
// delivered so the consumer sees every job end exactly once.
func (s *Service) push(st model.JobState, terminal bool) {
	if terminal {
		s.updates <- st
		return
	}
	select {
	case s.updates <- st:
	default:
	}
}

func (s *Service) rawFormats() []engine.RawFormat {
	s.searchMu.Lock()
	defer s.searchMu.Unlock()
	return s.lastFormats
}

func (s *Service) entryCount() int {
	s.searchMu.Lock()
	defer s.searchMu.Unlock()
	return s.lastEntries
}

// generateJobID returns a time-ordered unique id, falling back to a
// timestamp if UUID generation fails
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(taskIDPrefix+"%d", time.Now().UnixNano())
	}
	return taskIDPrefix + id.String()
}
