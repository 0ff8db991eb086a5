package model

// Mode selects between the simple and the advanced request surface
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeAdvanced Mode = "advanced"
)

// MediaKind distinguishes video downloads from audio-only downloads
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// VideoCodec is a user-facing video codec family
type VideoCodec string

const (
	CodecH264 VideoCodec = "h264"
	CodecH265 VideoCodec = "h265"
	CodecVP9  VideoCodec = "vp9"
	CodecAV1  VideoCodec = "av1"
)

// AudioCodec is a user-facing audio codec selection
type AudioCodec string

const (
	AudioAAC  AudioCodec = "aac"
	AudioMP3  AudioCodec = "mp3"
	AudioOpus AudioCodec = "opus"
	AudioFLAC AudioCodec = "flac"
)

// PlaylistOptions controls playlist traversal for a request.
// Reverse and Random are mutually exclusive; the configuration builder
// rejects requests that set both.
type PlaylistOptions struct {
	Enabled      bool
	ItemSelector string // engine range syntax (e.g. "1-5,8"), passed through verbatim
	Reverse      bool
	Random       bool
}

// CustomFormatSpec describes an advanced-mode transcode target.
// EncodingSpeed is an ordinal whose valid range depends on VideoCodec:
// H.264/H.265 share one preset scale, VP9 and AV1 each have their own.
type CustomFormatSpec struct {
	Container          string
	VideoQualityHeight int
	VideoCodec         VideoCodec
	AudioCodec         AudioCodec
	CompressionLevel   int // 1 (high quality) .. 3 (small size)
	EncodingSpeed      int
}

// DownloadRequest is an immutable description of one download job.
// It is constructed once per job and never mutated in place.
type DownloadRequest struct {
	URL             string
	Mode            Mode
	DestinationPath string
	TranscoderPath  string // path to the ffmpeg executable

	// Basic mode
	MediaKind       MediaKind
	ContainerFormat string
	QualityCeiling  int // maximum height in pixels, video only
	Playlist        PlaylistOptions

	// Advanced mode: exactly one of SourceFormatID or CustomFormat is set
	SourceFormatID string
	CustomFormat   *CustomFormatSpec
}
