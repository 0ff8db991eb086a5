package model

import "fmt"

// FormatPreset is a simplified, human-readable description of one source
// format detected for a media item.
type FormatPreset struct {
	ID         string
	HeightPx   int
	Container  string
	VideoCodec string
	FPS        int
}

// Description renders the preset the way it is shown to the user,
// e.g. "1080p H.264 60FPS.mp4".
func (p FormatPreset) Description() string {
	return fmt.Sprintf("%dp %s %dFPS.%s", p.HeightPx, p.VideoCodec, p.FPS, p.Container)
}

// SearchResult is the outcome of a metadata-only search. The caller owns
// the value once it is returned; the orchestrator keeps no reference.
type SearchResult struct {
	Title           string
	UploaderName    string
	ThumbnailURL    string
	DurationSeconds int
	ViewCount       int64

	// Presets are sorted by (HeightPx, FPS) descending.
	Presets []FormatPreset

	// BestAudioID is the engine's default high-quality audio format id,
	// empty when the engine reported none.
	BestAudioID string

	// EntryCount is the number of playlist entries, zero for single items.
	EntryCount int
}
