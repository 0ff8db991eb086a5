package engine

import (
	"context"
	"errors"
)

// ErrCancelled is returned by Download when the run was aborted by the
// caller's context. The orchestrator classifies it separately from
// genuine engine failures; it is never surfaced as an error to the user.
var ErrCancelled = errors.New("download cancelled")

// RawFormat is one entry of the engine's raw format list for a media item.
// Zero values stand for fields the engine did not report.
type RawFormat struct {
	ID         string  `json:"format_id"`
	Resolution string  `json:"resolution"`
	FormatNote string  `json:"format_note"`
	VideoExt   string  `json:"video_ext"`
	Ext        string  `json:"ext"`
	VCodec     string  `json:"vcodec"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
}

// Metadata is the raw info tree for one media item or playlist.
// EntryCount maps the top-level playlist_count of a playlist dump and is
// zero for single items.
type Metadata struct {
	Title      string      `json:"title"`
	Uploader   string      `json:"uploader"`
	Thumbnail  string      `json:"thumbnail"`
	Duration   float64     `json:"duration"`
	ViewCount  int64       `json:"view_count"`
	EntryCount int         `json:"playlist_count"`
	Formats    []RawFormat `json:"formats"`
}

// Engine is the external extraction/download engine, treated as a black box.
// Download blocks until the transfer is done or fails, pushing typed events
// to the given channel; it never closes the channel. Cancellation rides the
// context and surfaces as ErrCancelled.
type Engine interface {
	Extract(ctx context.Context, url string) (*Metadata, error)
	Download(ctx context.Context, cfg Config, events chan<- Event) error
}
