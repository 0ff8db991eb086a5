package model

import "time"

// PercentUnknown marks a job state whose completion ratio cannot be
// computed yet (e.g. the engine has not reported a total byte count).
const PercentUnknown = -1.0

// JobState is a snapshot of one running job. It is produced by the
// orchestrator's background goroutine and handed to the presentation
// layer over a channel; consumers must treat it as a value.
type JobState struct {
	JobID string
	Phase Phase

	// Percent is the completion ratio in [0,1], or PercentUnknown.
	Percent float64

	// Message is a human-readable status line.
	Message string

	// CurrentItem and TotalItems describe the playlist position
	// (1-based). Both are zero for single-item jobs or when the
	// engine has not reported a position yet.
	CurrentItem int
	TotalItems  int

	// Error carries the engine's message when Phase is PhaseFailed.
	Error string

	StartedAt  time.Time
	FinishedAt time.Time
}

// InPlaylist returns true when the state carries a usable playlist position
func (s JobState) InPlaylist() bool {
	return s.CurrentItem > 0 && s.TotalItems > 1
}

// HasPercent returns true when Percent holds a computed ratio
func (s JobState) HasPercent() bool {
	return s.Percent >= 0
}
