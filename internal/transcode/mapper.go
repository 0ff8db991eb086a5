// Package transcode maps user-facing quality, speed and codec selections
// into concrete ffmpeg postprocessor arguments.
package transcode

import (
	"log/slog"

	"github.com/easytuber/easytuber/internal/model"
)

// Compression levels exposed to the user
const (
	LevelHighQuality = 1
	LevelBalanced    = 2
	LevelSmallSize   = 3
)

// encoders maps user codec selections to ffmpeg encoder names
var encoders = map[model.VideoCodec]string{
	model.CodecH264: "libx264",
	model.CodecH265: "libx265",
	model.CodecVP9:  "libvpx-vp9",
	model.CodecAV1:  "libaom-av1",
}

// audioEncoders maps user audio codec selections to ffmpeg encoder names
var audioEncoders = map[model.AudioCodec]string{
	model.AudioAAC:  "aac",
	model.AudioMP3:  "libmp3lame",
	model.AudioOpus: "libopus",
	model.AudioFLAC: "flac",
}

// crfTables holds the CRF value per compression level, keyed by encoder.
// Every codec family has its own scale.
var crfTables = map[string]map[int]string{
	"libx264":    {1: "18", 2: "23", 3: "28"},
	"libx265":    {1: "22", 2: "28", 3: "32"},
	"libvpx-vp9": {1: "24", 2: "30", 3: "36"},
	"libaom-av1": {1: "23", 2: "30", 3: "37"},
}

// speedTables holds the encoding-speed value per ordinal, keyed by
// encoder. H.264/H.265 use named presets, VP9 uses deadline names, AV1
// uses cpu-used integers.
var speedTables = map[string]map[int]string{
	"libx264":    {0: "ultrafast", 1: "fast", 2: "medium", 3: "slow", 4: "veryslow"},
	"libx265":    {0: "ultrafast", 1: "fast", 2: "medium", 3: "slow", 4: "veryslow"},
	"libvpx-vp9": {0: "realtime", 1: "good", 2: "best"},
	"libaom-av1": {0: "2", 1: "3", 2: "4", 3: "6", 4: "8"},
}

// speedFlags holds the ffmpeg option that carries the speed value for
// each encoder
var speedFlags = map[string]string{
	"libx264":    "-preset",
	"libx265":    "-preset",
	"libvpx-vp9": "-deadline",
	"libaom-av1": "-cpu-used",
}

// speedDefaults is the per-encoder medium speed used when the requested
// ordinal is outside the codec's scale
var speedDefaults = map[string]string{
	"libx264":    "medium",
	"libx265":    "medium",
	"libvpx-vp9": "good",
	"libaom-av1": "4",
}

// MapToArgs resolves a custom format spec into an ordered ffmpeg argument
// list for the video-convert postprocessor. Selections outside a codec's
// table clamp to that codec's balanced/medium default with a logged
// warning rather than failing the job.
func MapToArgs(spec model.CustomFormatSpec) []string {
	encoder, ok := encoders[spec.VideoCodec]
	if !ok {
		slog.Warn("unknown video codec, falling back to H.264", "codec", spec.VideoCodec)
		encoder = encoders[model.CodecH264]
	}

	args := []string{"-codec:v", encoder}

	if audio, ok := audioEncoders[spec.AudioCodec]; ok {
		args = append(args, "-codec:a", audio)
	} else {
		slog.Warn("unknown audio codec, keeping source audio", "codec", spec.AudioCodec)
	}

	args = append(args, "-crf", crfFor(encoder, spec.CompressionLevel))
	args = append(args, speedFlags[encoder], speedFor(encoder, spec.EncodingSpeed))

	return args
}

func crfFor(encoder string, level int) string {
	table := crfTables[encoder]
	if v, ok := table[level]; ok {
		return v
	}
	slog.Warn("compression level outside codec scale, using balanced default",
		"encoder", encoder, "level", level)
	return table[LevelBalanced]
}

func speedFor(encoder string, speed int) string {
	table := speedTables[encoder]
	if v, ok := table[speed]; ok {
		return v
	}
	slog.Warn("encoding speed outside codec scale, using medium default",
		"encoder", encoder, "speed", speed)
	return speedDefaults[encoder]
}
