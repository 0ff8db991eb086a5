package engine

// Config carries the full engine configuration for one download run.
// It is derived from a DownloadRequest by the jobconfig builder and is
// not mutated afterwards.
type Config struct {
	URL string

	// OutputTemplate is the engine's output path template, already joined
	// with the destination directory.
	OutputTemplate string

	// FormatSelector is the engine's format-selection expression.
	FormatSelector string

	// MergeOutputFormat remuxes the merged download into this container.
	MergeOutputFormat string

	// ExtractAudio enables the audio-extraction postprocessor.
	ExtractAudio bool
	AudioFormat  string
	AudioQuality string // constant bitrate in kbps, e.g. "192"

	// RecodeVideo converts the download into this container with the
	// transcoder arguments below.
	RecodeVideo     string
	TranscoderArgs  []string
	FFmpegLocation  string

	// Playlist traversal.
	Playlist        bool
	PlaylistItems   string // engine range syntax, passed through verbatim
	PlaylistReverse bool
	PlaylistRandom  bool
	IgnoreErrors    bool

	// ExpectedItems is the playlist entry count from a prior metadata
	// extraction, zero when unknown. Used only for progress phrasing.
	ExpectedItems int
}
