package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easytuber/easytuber/internal/engine"
)

func TestBuildPresetsFiltersAndOrders(t *testing.T) {
	formats := []engine.RawFormat{
		{ID: "140", Resolution: "audio only", VideoExt: "none", Ext: "m4a"},
		{ID: "18", Height: 360, FPS: 30, VideoExt: "mp4", VCodec: "avc1.42001E"},
		{ID: "299", Height: 1080, FPS: 60, VideoExt: "mp4", VCodec: "avc1.64002a"},
		{ID: "248", Height: 1080, FPS: 30, VideoExt: "webm", VCodec: "vp09.00.40.08"},
		{ID: "302", Height: 720, FPS: 60, VideoExt: "webm", VCodec: "vp09.00.31.08"},
		{ID: "bad", Height: 0, FPS: 30, VideoExt: "mp4", VCodec: "avc1"},
		{ID: "", Height: 480, FPS: 30, VideoExt: "mp4", VCodec: "avc1"},
	}

	presets := BuildPresets(formats)

	require.Len(t, presets, 4)
	assert.Equal(t, "299", presets[0].ID)
	assert.Equal(t, "248", presets[1].ID)
	assert.Equal(t, "302", presets[2].ID)
	assert.Equal(t, "18", presets[3].ID)
}

func TestBuildPresetsDescription(t *testing.T) {
	formats := []engine.RawFormat{
		{ID: "299", Height: 1080, FPS: 60, VideoExt: "mp4", VCodec: "avc1.64002a"},
	}

	presets := BuildPresets(formats)

	require.Len(t, presets, 1)
	assert.Equal(t, "1080p H.264 60FPS.mp4", presets[0].Description())
}

func TestCodecLabel(t *testing.T) {
	tests := []struct {
		vcodec string
		want   string
	}{
		{"vp09.00.40.08", "VP9"},
		{"avc1.64002a", "H.264"},
		{"av01.0.08M.08", "AV1"},
		{"vp8.0", "VP8"},
		{"hev1.1.6.L120", "Unknown"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CodecLabel(tt.vcodec), "vcodec %q", tt.vcodec)
	}
}

func TestDefaultAudioID(t *testing.T) {
	formats := []engine.RawFormat{
		{ID: "139", Resolution: "audio only", FormatNote: "Default, low"},
		{ID: "140", Resolution: "audio only", FormatNote: "Default, high"},
		{ID: "299", Resolution: "1920x1080", FormatNote: "1080p60"},
	}

	assert.Equal(t, "140", DefaultAudioID(formats))
}

func TestDefaultAudioIDMissing(t *testing.T) {
	formats := []engine.RawFormat{
		{ID: "299", Resolution: "1920x1080", FormatNote: "1080p60"},
	}

	assert.Empty(t, DefaultAudioID(formats))
}
