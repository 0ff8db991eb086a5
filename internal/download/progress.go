package download

import (
	"fmt"
	"time"

	"github.com/easytuber/easytuber/internal/engine"
	"github.com/easytuber/easytuber/internal/model"
)

// Percent pinned when an item's raw transfer finished. The missing 2%
// signals that the postprocessor (remux, audio extraction) is still
// pending; only the postprocessor hook reports 1.0.
const itemDonePercent = 0.98

// Initial percent shown while the engine resolves metadata
const extractingPercent = 0.01

const bytesPerMB = 1024 * 1024

// applyEvent folds one engine event into the job state. It is a pure
// function: the background goroutine owns the state and is its only writer.
func applyEvent(st model.JobState, ev engine.Event) model.JobState {
	// Playlist position: the engine reports a 0-based autonumber and a
	// total only in playlist mode; convert to 1-based phrasing.
	if ev.ItemCount > 0 {
		st.CurrentItem = ev.ItemIndex + 1
		st.TotalItems = ev.ItemCount
	}

	switch ev.Kind {
	case engine.EventExtracting:
		st.Phase = model.PhaseExtracting
		st.Percent = extractingPercent
		if st.InPlaylist() {
			st.Message = fmt.Sprintf("Fetching info for item %d of %d...", st.CurrentItem, st.TotalItems)
		} else {
			st.Message = "Fetching video information..."
		}

	case engine.EventDownloading:
		if st.Phase != model.PhaseDownloading {
			// Until the engine reports a byte total the ratio is unknown.
			st.Percent = model.PercentUnknown
			if st.InPlaylist() {
				st.Message = fmt.Sprintf("Downloading item %d of %d...", st.CurrentItem, st.TotalItems)
			} else {
				st.Message = "Downloading..."
			}
		}
		st.Phase = model.PhaseDownloading
		if pct, ok := transferPercent(ev); ok {
			st.Percent = pct
			st.Message = downloadMessage(st, pct, ev.Speed, ev.ETA)
		}

	case engine.EventItemDone:
		st.Phase = model.PhasePostProcessing
		st.Percent = itemDonePercent
		if st.InPlaylist() {
			st.Message = fmt.Sprintf("Item %d of %d downloaded, processing...", st.CurrentItem, st.TotalItems)
		} else {
			st.Message = "Download finished, processing..."
		}

	case engine.EventPostProcessed:
		st.Phase = model.PhasePostProcessing
		st.Percent = 1.0
		if st.InPlaylist() {
			st.Message = fmt.Sprintf("Processed item %d of %d", st.CurrentItem, st.TotalItems)
		} else {
			st.Message = "Processing finished"
		}

	case engine.EventError:
		st.Percent = 0
		st.Message = "Download error"
	}

	return st
}

// transferPercent computes the completion ratio for a downloading event.
// With no reported total the ratio is unknown and the previous value
// stays untouched.
func transferPercent(ev engine.Event) (float64, bool) {
	if ev.TotalBytes <= 0 {
		return 0, false
	}
	return float64(ev.DownloadedBytes) / float64(ev.TotalBytes), true
}

// downloadMessage renders the status line in three tiers depending on what
// the engine reported: percent+speed+eta, percent+speed, or percent only.
func downloadMessage(st model.JobState, pct, speed float64, eta time.Duration) string {
	label := "Downloading"
	if st.InPlaylist() {
		label = fmt.Sprintf("Downloading item %d of %d", st.CurrentItem, st.TotalItems)
	}

	switch {
	case speed > 0 && eta > 0:
		etaSec := int(eta.Seconds())
		return fmt.Sprintf("%s: %.1f%% at %.1f MB/s, %d:%02d left",
			label, pct*100, speed/bytesPerMB, etaSec/60, etaSec%60)
	case speed > 0:
		return fmt.Sprintf("%s: %.1f%% at %.1f MB/s", label, pct*100, speed/bytesPerMB)
	default:
		return fmt.Sprintf("%s: %.1f%%", label, pct*100)
	}
}
