package jobconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easytuber/easytuber/internal/engine"
	"github.com/easytuber/easytuber/internal/model"
)

func validRequest() model.DownloadRequest {
	return model.DownloadRequest{
		URL:             "https://example.com/watch?v=abc",
		Mode:            model.ModeBasic,
		DestinationPath: "/downloads",
		TranscoderPath:  "/usr/bin/ffmpeg",
		MediaKind:       model.MediaVideo,
		ContainerFormat: "mp4",
		QualityCeiling:  1080,
	}
}

func TestBuildBasicVideo(t *testing.T) {
	cfg, err := Build(validRequest(), nil)

	require.NoError(t, err)
	assert.Equal(t, "bestvideo[height<=1080]+bestaudio/best[height<=1080]", cfg.FormatSelector)
	assert.Equal(t, "mp4", cfg.MergeOutputFormat)
	assert.Equal(t, filepath.Join("/downloads", "%(title)s.%(ext)s"), cfg.OutputTemplate)
	assert.Equal(t, "/usr/bin/ffmpeg", cfg.FFmpegLocation)
	assert.False(t, cfg.ExtractAudio)
	assert.False(t, cfg.Playlist)
}

func TestBuildBasicAudio(t *testing.T) {
	req := validRequest()
	req.MediaKind = model.MediaAudio
	req.ContainerFormat = "mp3"

	cfg, err := Build(req, nil)

	require.NoError(t, err)
	assert.Equal(t, "bestaudio/best", cfg.FormatSelector)
	assert.True(t, cfg.ExtractAudio)
	assert.Equal(t, "mp3", cfg.AudioFormat)
	assert.Equal(t, "192", cfg.AudioQuality)
	assert.Empty(t, cfg.MergeOutputFormat)
}

func TestBuildPlaylist(t *testing.T) {
	req := validRequest()
	req.Playlist = model.PlaylistOptions{
		Enabled:      true,
		ItemSelector: "1-5,8",
		Reverse:      true,
	}

	cfg, err := Build(req, nil)

	require.NoError(t, err)
	assert.True(t, cfg.Playlist)
	assert.True(t, cfg.IgnoreErrors)
	assert.Equal(t, "1-5,8", cfg.PlaylistItems)
	assert.True(t, cfg.PlaylistReverse)
	assert.False(t, cfg.PlaylistRandom)
	assert.Equal(t,
		filepath.Join("/downloads", "%(playlist)s/%(playlist_autonumber)s - %(title)s.%(ext)s"),
		cfg.OutputTemplate)
}

func TestBuildAdvancedSourceFormat(t *testing.T) {
	req := validRequest()
	req.Mode = model.ModeAdvanced
	req.SourceFormatID = "299"

	cfg, err := Build(req, nil)

	require.NoError(t, err)
	assert.Equal(t, "299+bestaudio", cfg.FormatSelector)
	assert.Empty(t, cfg.RecodeVideo)
	assert.Empty(t, cfg.TranscoderArgs)
}

func TestBuildAdvancedCustomFormat(t *testing.T) {
	req := validRequest()
	req.Mode = model.ModeAdvanced
	req.CustomFormat = &model.CustomFormatSpec{
		Container:          "mkv",
		VideoQualityHeight: 1080,
		VideoCodec:         model.CodecH265,
		AudioCodec:         model.AudioAAC,
		CompressionLevel:   2,
		EncodingSpeed:      2,
	}
	rawFormats := []engine.RawFormat{
		{ID: "271", Height: 1080, VCodec: "hev1.1.6.L120", Ext: "mkv"},
		{ID: "248", Height: 1080, VCodec: "vp09.00.40.08", Ext: "webm"},
	}

	cfg, err := Build(req, rawFormats)

	require.NoError(t, err)
	assert.Equal(t, "271+bestaudio/248+bestaudio/271/248/best", cfg.FormatSelector)
	assert.Equal(t, "mkv", cfg.RecodeVideo)
	assert.Equal(t, []string{
		"-codec:v", "libx265",
		"-codec:a", "aac",
		"-crf", "28",
		"-preset", "medium",
	}, cfg.TranscoderArgs)
}

func TestBuildAdvancedCustomFormatNoCandidates(t *testing.T) {
	req := validRequest()
	req.Mode = model.ModeAdvanced
	req.CustomFormat = &model.CustomFormatSpec{
		Container:          "mp4",
		VideoQualityHeight: 720,
		VideoCodec:         model.CodecH264,
		AudioCodec:         model.AudioAAC,
		CompressionLevel:   2,
		EncodingSpeed:      2,
	}

	cfg, err := Build(req, nil)

	require.NoError(t, err)
	assert.Equal(t, "best", cfg.FormatSelector)
}

// Every structural problem is reported at once, not just the first.
func TestBuildCollectsAllValidationErrors(t *testing.T) {
	req := model.DownloadRequest{
		Mode: model.ModeAdvanced,
		Playlist: model.PlaylistOptions{
			Enabled: true,
			Reverse: true,
			Random:  true,
		},
	}

	_, err := Build(req, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingURL)
	assert.ErrorIs(t, err, ErrMissingDestination)
	assert.ErrorIs(t, err, ErrMissingTranscoder)
	assert.ErrorIs(t, err, ErrConflictingPlaylistOrder)
	assert.ErrorIs(t, err, ErrMissingFormatChoice)
}

func TestBuildRejectsAmbiguousAdvancedChoice(t *testing.T) {
	req := validRequest()
	req.Mode = model.ModeAdvanced
	req.SourceFormatID = "299"
	req.CustomFormat = &model.CustomFormatSpec{}

	_, err := Build(req, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousFormatChoice)
}

func TestBuildRejectsReverseAndRandom(t *testing.T) {
	req := validRequest()
	req.Playlist = model.PlaylistOptions{Enabled: true, Reverse: true, Random: true}

	_, err := Build(req, nil)

	assert.ErrorIs(t, err, ErrConflictingPlaylistOrder)
}
