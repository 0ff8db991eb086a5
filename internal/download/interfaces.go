package download

import (
	"context"

	"github.com/easytuber/easytuber/internal/model"
)

// Orchestrator defines the surface the presentation layer consumes.
type Orchestrator interface {
	// Start launches a validated download job in the background and
	// returns its id immediately.
	Start(req model.DownloadRequest) (string, error)

	// Cancel requests cooperative cancellation of the active job.
	Cancel()

	// Search extracts metadata for a URL and delivers the result (or the
	// extraction error) through onComplete.
	Search(ctx context.Context, url string, onComplete func(*model.SearchResult, error))

	// Updates streams job state snapshots, ending each job with exactly
	// one terminal snapshot.
	Updates() <-chan model.JobState
}
