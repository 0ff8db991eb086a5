package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// Progress hook polling interval
const progressInterval = 500 * time.Millisecond

// Postprocessor target for transcoder arguments
const videoConvertorTarget = "VideoConvertor"

// YTDLP runs downloads through the yt-dlp binary via the go-ytdlp bindings.
type YTDLP struct{}

// NewYTDLP creates the yt-dlp backed engine
func NewYTDLP() *YTDLP {
	return &YTDLP{}
}

// Extract fetches the raw info tree for a URL without downloading anything
func (e *YTDLP) Extract(ctx context.Context, url string) (*Metadata, error) {
	dl := ytdlp.New().
		SkipDownload().
		DumpSingleJSON().
		Quiet().
		NoWarnings()

	res, err := dl.Run(ctx, url)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("metadata extraction failed: %w", err)
	}

	return parseMetadata([]byte(res.Stdout))
}

// parseMetadata decodes the engine's single-JSON info dump. Playlist dumps
// carry the entry total as a top-level playlist_count.
func parseMetadata(raw []byte) (*Metadata, error) {
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse engine metadata: %w", err)
	}
	return &meta, nil
}

// Download runs one configured download, pushing progress events to the
// given channel. It blocks until the engine call fully unwinds.
func (e *YTDLP) Download(ctx context.Context, cfg Config, events chan<- Event) error {
	dl := e.buildCommand(cfg)

	dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		if ctx.Err() != nil {
			return
		}
		select {
		case events <- progressEvent(update, cfg.ExpectedItems):
		case <-ctx.Done():
		}
	})

	_, err := dl.Run(ctx, cfg.URL)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return ErrCancelled
		}
		return fmt.Errorf("engine download failed: %w", err)
	}

	// yt-dlp runs the postprocessor chain after the raw transfer; a clean
	// exit means the chain is done.
	done := Event{Kind: EventPostProcessed, ItemCount: cfg.ExpectedItems}
	if cfg.ExpectedItems > 0 {
		done.ItemIndex = cfg.ExpectedItems - 1
	}
	select {
	case events <- done:
	case <-ctx.Done():
		return ErrCancelled
	}

	slog.Debug("engine run finished", "url", cfg.URL)
	return nil
}

// progressEvent translates one engine progress line into a typed event.
// The playlist position comes from the info dict's 1-based playlist_index,
// reported on every line of a playlist run; a merged video+audio item fires
// multiple finished lines, all carrying the same index. The count from the
// info dict wins over the expected count from a prior extraction.
func progressEvent(update ytdlp.ProgressUpdate, expectedItems int) Event {
	ev := Event{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		ItemCount:       expectedItems,
	}

	if update.Info != nil {
		if update.Info.PlaylistIndex != nil && *update.Info.PlaylistIndex > 0 {
			ev.ItemIndex = *update.Info.PlaylistIndex - 1
		}
		if update.Info.PlaylistCount != nil && *update.Info.PlaylistCount > 0 {
			ev.ItemCount = *update.Info.PlaylistCount
		}
	}

	if !update.Started.IsZero() {
		if elapsed := time.Since(update.Started); elapsed > 0 {
			ev.Speed = float64(ev.DownloadedBytes) / elapsed.Seconds()
		}
	}
	if eta := update.ETA(); eta > 0 {
		ev.ETA = eta
	}

	switch update.Status {
	case ytdlp.ProgressStatusFinished, ytdlp.ProgressStatusPostProcessing:
		ev.Kind = EventItemDone
	case ytdlp.ProgressStatusError:
		ev.Kind = EventError
	case ytdlp.ProgressStatusStarting:
		ev.Kind = EventExtracting
	default:
		ev.Kind = EventDownloading
	}

	return ev
}

// buildCommand translates the Config into yt-dlp flags
func (e *YTDLP) buildCommand(cfg Config) *ytdlp.Command {
	dl := ytdlp.New().
		Output(cfg.OutputTemplate).
		NoWarnings()

	if cfg.FFmpegLocation != "" {
		dl = dl.FFmpegLocation(cfg.FFmpegLocation)
	}
	if cfg.FormatSelector != "" {
		dl = dl.Format(cfg.FormatSelector)
	}
	if cfg.MergeOutputFormat != "" {
		dl = dl.MergeOutputFormat(cfg.MergeOutputFormat)
	}
	if cfg.ExtractAudio {
		dl = dl.ExtractAudio().AudioFormat(cfg.AudioFormat).AudioQuality(cfg.AudioQuality)
	}
	if cfg.RecodeVideo != "" {
		dl = dl.RecodeVideo(cfg.RecodeVideo)
	}
	if len(cfg.TranscoderArgs) > 0 {
		dl = dl.PostProcessorArgs(videoConvertorTarget + ":" + strings.Join(cfg.TranscoderArgs, " "))
	}

	if cfg.Playlist {
		dl = dl.YesPlaylist()
		if cfg.IgnoreErrors {
			dl = dl.IgnoreErrors()
		}
		if cfg.PlaylistItems != "" {
			dl = dl.PlaylistItems(cfg.PlaylistItems)
		}
		if cfg.PlaylistReverse {
			dl = dl.PlaylistReverse()
		}
		if cfg.PlaylistRandom {
			dl = dl.PlaylistRandom()
		}
	} else {
		dl = dl.NoPlaylist()
	}

	return dl
}
