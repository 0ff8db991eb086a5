// Package jobconfig validates download requests and translates them into
// engine configurations.
package jobconfig

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/easytuber/easytuber/internal/engine"
	"github.com/easytuber/easytuber/internal/format"
	"github.com/easytuber/easytuber/internal/model"
	"github.com/easytuber/easytuber/internal/transcode"
)

// Output path templates in the engine's template syntax
const (
	singleItemTemplate   = "%(title)s.%(ext)s"
	playlistItemTemplate = "%(playlist)s/%(playlist_autonumber)s - %(title)s.%(ext)s"
)

// Format selectors for basic mode
const (
	bestAudioSelector  = "bestaudio/best"
	bestVideoSelector  = "bestvideo[height<=%d]+bestaudio/best[height<=%d]"
	audioExtractRate   = "192" // kbps, fixed in basic mode
	bestAudioAppendFmt = "%s+bestaudio"
)

// Validation error kinds. Build collects every applicable kind instead of
// failing on the first.
var (
	ErrMissingURL               = errors.New("url is required")
	ErrMissingDestination       = errors.New("destination directory is required")
	ErrMissingTranscoder        = errors.New("transcoder path is required")
	ErrConflictingPlaylistOrder = errors.New("playlist reverse and random are mutually exclusive")
	ErrMissingFormatChoice      = errors.New("advanced mode needs a source format id or a custom format")
	ErrAmbiguousFormatChoice    = errors.New("advanced mode accepts either a source format id or a custom format, not both")
)

// Build validates the request and derives the engine configuration for it.
// Advanced custom-format requests score the given raw formats (from the
// preceding search) to choose candidate sources. All validation failures
// are returned together via errors.Join; no configuration is produced on
// failure.
func Build(req model.DownloadRequest, rawFormats []engine.RawFormat) (engine.Config, error) {
	if err := validate(req); err != nil {
		return engine.Config{}, err
	}

	cfg := engine.Config{
		URL:            req.URL,
		FFmpegLocation: req.TranscoderPath,
	}

	applyOutputTemplate(&cfg, req)

	switch req.Mode {
	case model.ModeAdvanced:
		applyAdvanced(&cfg, req, rawFormats)
	default:
		applyBasic(&cfg, req)
	}

	return cfg, nil
}

// validate collects every structural problem with the request
func validate(req model.DownloadRequest) error {
	var errs []error

	if req.URL == "" {
		errs = append(errs, ErrMissingURL)
	}
	if req.DestinationPath == "" {
		errs = append(errs, ErrMissingDestination)
	}
	if req.TranscoderPath == "" {
		errs = append(errs, ErrMissingTranscoder)
	}
	if req.Playlist.Enabled && req.Playlist.Reverse && req.Playlist.Random {
		errs = append(errs, ErrConflictingPlaylistOrder)
	}
	if req.Mode == model.ModeAdvanced {
		switch {
		case req.SourceFormatID == "" && req.CustomFormat == nil:
			errs = append(errs, ErrMissingFormatChoice)
		case req.SourceFormatID != "" && req.CustomFormat != nil:
			errs = append(errs, ErrAmbiguousFormatChoice)
		}
	}

	return errors.Join(errs...)
}

// applyOutputTemplate sets the output path template and playlist traversal.
// Playlist downloads get their own folder, auto-numbered filenames, and
// ignore per-item failures so one broken entry does not abort the batch.
func applyOutputTemplate(cfg *engine.Config, req model.DownloadRequest) {
	if req.Playlist.Enabled {
		cfg.OutputTemplate = filepath.Join(req.DestinationPath, playlistItemTemplate)
		cfg.Playlist = true
		cfg.IgnoreErrors = true
		cfg.PlaylistItems = req.Playlist.ItemSelector
		cfg.PlaylistReverse = req.Playlist.Reverse
		cfg.PlaylistRandom = req.Playlist.Random
		return
	}
	cfg.OutputTemplate = filepath.Join(req.DestinationPath, singleItemTemplate)
}

func applyBasic(cfg *engine.Config, req model.DownloadRequest) {
	if req.MediaKind == model.MediaAudio {
		cfg.FormatSelector = bestAudioSelector
		cfg.ExtractAudio = true
		cfg.AudioFormat = req.ContainerFormat
		cfg.AudioQuality = audioExtractRate
		return
	}

	cfg.FormatSelector = videoSelector(req.QualityCeiling)
	cfg.MergeOutputFormat = req.ContainerFormat
}

func applyAdvanced(cfg *engine.Config, req model.DownloadRequest, rawFormats []engine.RawFormat) {
	if req.SourceFormatID != "" {
		// The chosen id is assumed to be video-only, so a separate
		// best-audio track is always merged in.
		cfg.FormatSelector = appendBestAudio(req.SourceFormatID)
		return
	}

	spec := *req.CustomFormat
	candidates := format.ScoreCandidates(rawFormats, spec.VideoQualityHeight, spec.VideoCodec, spec.Container)
	cfg.FormatSelector = format.BuildFormatSelector(candidates)
	cfg.RecodeVideo = spec.Container
	cfg.TranscoderArgs = transcode.MapToArgs(spec)
}

// videoSelector builds the capped best-video selector for basic mode
func videoSelector(ceiling int) string {
	return fmt.Sprintf(bestVideoSelector, ceiling, ceiling)
}

// appendBestAudio pairs an explicit format id with the best audio track
func appendBestAudio(id string) string {
	return fmt.Sprintf(bestAudioAppendFmt, id)
}
