package engine

import "time"

// EventKind tags a progress event from the engine
type EventKind int

const (
	// EventExtracting fires when the engine starts resolving an item's metadata
	EventExtracting EventKind = iota

	// EventDownloading fires repeatedly during byte transfer
	EventDownloading

	// EventItemDone fires when the raw transfer of one item finished
	// (postprocessing may still be pending)
	EventItemDone

	// EventPostProcessed fires when the postprocessor chain finished
	EventPostProcessed

	// EventError fires when the engine reports a per-item error
	EventError
)

// Event is one typed progress notification from the engine. Byte counts
// and rates are zero when the engine did not report them; TotalBytes
// already carries the engine's estimate when no exact total exists.
type Event struct {
	Kind EventKind

	DownloadedBytes int64
	TotalBytes      int64

	// Speed is the transfer rate in bytes per second.
	Speed float64

	// ETA is the engine's estimate of the remaining transfer time.
	ETA time.Duration

	// ItemIndex is the 0-based playlist position; ItemCount is the
	// total number of entries. Both are zero outside playlist mode.
	ItemIndex int
	ItemCount int
}
