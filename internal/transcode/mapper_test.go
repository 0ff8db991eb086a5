package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/easytuber/easytuber/internal/model"
)

func TestMapToArgsH264(t *testing.T) {
	args := MapToArgs(model.CustomFormatSpec{
		VideoCodec:       model.CodecH264,
		AudioCodec:       model.AudioAAC,
		CompressionLevel: LevelBalanced,
		EncodingSpeed:    2,
	})

	assert.Equal(t, []string{
		"-codec:v", "libx264",
		"-codec:a", "aac",
		"-crf", "23",
		"-preset", "medium",
	}, args)
}

func TestMapToArgsVP9(t *testing.T) {
	args := MapToArgs(model.CustomFormatSpec{
		VideoCodec:       model.CodecVP9,
		AudioCodec:       model.AudioOpus,
		CompressionLevel: LevelHighQuality,
		EncodingSpeed:    2,
	})

	assert.Equal(t, []string{
		"-codec:v", "libvpx-vp9",
		"-codec:a", "libopus",
		"-crf", "24",
		"-deadline", "best",
	}, args)
}

func TestMapToArgsAV1(t *testing.T) {
	args := MapToArgs(model.CustomFormatSpec{
		VideoCodec:       model.CodecAV1,
		AudioCodec:       model.AudioFLAC,
		CompressionLevel: LevelSmallSize,
		EncodingSpeed:    4,
	})

	assert.Equal(t, []string{
		"-codec:v", "libaom-av1",
		"-codec:a", "flac",
		"-crf", "37",
		"-cpu-used", "8",
	}, args)
}

func TestMapToArgsH265MP3(t *testing.T) {
	args := MapToArgs(model.CustomFormatSpec{
		VideoCodec:       model.CodecH265,
		AudioCodec:       model.AudioMP3,
		CompressionLevel: LevelHighQuality,
		EncodingSpeed:    0,
	})

	assert.Equal(t, []string{
		"-codec:v", "libx265",
		"-codec:a", "libmp3lame",
		"-crf", "22",
		"-preset", "ultrafast",
	}, args)
}

// Selections outside a codec's scale clamp to that codec's balanced/medium
// values instead of failing the job.
func TestMapToArgsClampsOutOfRange(t *testing.T) {
	args := MapToArgs(model.CustomFormatSpec{
		VideoCodec:       model.CodecVP9,
		AudioCodec:       model.AudioOpus,
		CompressionLevel: 99,
		EncodingSpeed:    7, // VP9 only has ordinals 0..2
	})

	assert.Equal(t, []string{
		"-codec:v", "libvpx-vp9",
		"-codec:a", "libopus",
		"-crf", "30",
		"-deadline", "good",
	}, args)
}

func TestMapToArgsUnknownVideoCodecFallsBack(t *testing.T) {
	args := MapToArgs(model.CustomFormatSpec{
		VideoCodec:       model.VideoCodec("mystery"),
		AudioCodec:       model.AudioAAC,
		CompressionLevel: LevelBalanced,
		EncodingSpeed:    2,
	})

	assert.Equal(t, "-codec:v", args[0])
	assert.Equal(t, "libx264", args[1])
}

func TestMapToArgsUnknownAudioCodecOmitted(t *testing.T) {
	args := MapToArgs(model.CustomFormatSpec{
		VideoCodec:       model.CodecH264,
		AudioCodec:       model.AudioCodec("mystery"),
		CompressionLevel: LevelBalanced,
		EncodingSpeed:    2,
	})

	assert.NotContains(t, args, "-codec:a")
}
