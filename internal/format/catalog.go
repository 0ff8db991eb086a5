// Package format builds human-readable preset lists from the engine's raw
// format metadata and ranks candidate source formats for custom requests.
package format

import (
	"sort"
	"strings"

	"github.com/easytuber/easytuber/internal/engine"
	"github.com/easytuber/easytuber/internal/model"
)

// Markers the engine uses for its default audio-only entry
const (
	audioOnlyResolution  = "audio only"
	defaultAudioNote     = "Default, high"
	missingVideoExtValue = "none"
)

// codecLabels maps codec id substrings to display labels. Order matters:
// the first matching entry wins.
var codecLabels = []struct {
	substr string
	label  string
}{
	{"vp09", "VP9"},
	{"avc", "H.264"},
	{"av01", "AV1"},
	{"vp8", "VP8"},
}

// UnknownCodecLabel is used when no codec substring matches
const UnknownCodecLabel = "Unknown"

// BuildPresets converts raw engine formats into the ordered preset list.
// Audio-only entries and entries missing any of id, height, extension or
// fps are skipped. The result is sorted by (height, fps) descending with
// encounter order preserved on ties.
func BuildPresets(formats []engine.RawFormat) []model.FormatPreset {
	presets := make([]model.FormatPreset, 0, len(formats))

	for _, f := range formats {
		if f.VideoExt == missingVideoExtValue || f.VideoExt == "" {
			continue
		}
		if f.ID == "" || f.Height == 0 || f.FPS == 0 {
			continue
		}

		presets = append(presets, model.FormatPreset{
			ID:         f.ID,
			HeightPx:   f.Height,
			Container:  f.VideoExt,
			VideoCodec: CodecLabel(f.VCodec),
			FPS:        int(f.FPS),
		})
	}

	sort.SliceStable(presets, func(i, j int) bool {
		if presets[i].HeightPx != presets[j].HeightPx {
			return presets[i].HeightPx > presets[j].HeightPx
		}
		return presets[i].FPS > presets[j].FPS
	})

	return presets
}

// CodecLabel derives a display label from a raw vcodec id
func CodecLabel(vcodec string) string {
	for _, c := range codecLabels {
		if strings.Contains(vcodec, c.substr) {
			return c.label
		}
	}
	return UnknownCodecLabel
}

// DefaultAudioID locates the engine's default high-quality audio-only
// format. It returns an empty string when none matches, in which case the
// configuration builder falls back to generic best-audio selection.
func DefaultAudioID(formats []engine.RawFormat) string {
	for _, f := range formats {
		if f.Resolution == audioOnlyResolution && f.FormatNote == defaultAudioNote {
			return f.ID
		}
	}
	return ""
}
