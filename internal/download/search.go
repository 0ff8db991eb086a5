package download

import (
	"github.com/easytuber/easytuber/internal/engine"
	"github.com/easytuber/easytuber/internal/format"
	"github.com/easytuber/easytuber/internal/model"
)

// newSearchResult derives the caller-facing search result from the
// engine's raw info tree. The returned value carries no reference back
// into the service.
func newSearchResult(meta *engine.Metadata) *model.SearchResult {
	return &model.SearchResult{
		Title:           meta.Title,
		UploaderName:    meta.Uploader,
		ThumbnailURL:    meta.Thumbnail,
		DurationSeconds: int(meta.Duration),
		ViewCount:       meta.ViewCount,
		Presets:         format.BuildPresets(meta.Formats),
		BestAudioID:     format.DefaultAudioID(meta.Formats),
		EntryCount:      meta.EntryCount,
	}
}
