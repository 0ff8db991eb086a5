package format

import (
	"sort"
	"strings"

	"github.com/easytuber/easytuber/internal/engine"
	"github.com/easytuber/easytuber/internal/model"
)

// Criterion weights. Exact resolution dominates codec, codec dominates
// container, and the height bonus only breaks ties between otherwise
// equal candidates.
const (
	resolutionWeight = 100.0
	codecWeight      = 50.0
	containerWeight  = 25.0
	heightBonus      = 0.01
)

// Number of top candidates used when building the fallback selector
const selectorCandidates = 3

// Terminal fallback token of every selector expression
const selectorFallback = "best"

// codecFamilies maps a codec family to the substrings that identify it in
// a raw vcodec id.
var codecFamilies = map[model.VideoCodec][]string{
	model.CodecH264: {"avc", "h264"},
	model.CodecH265: {"hev", "h265", "hevc"},
	model.CodecVP9:  {"vp9"},
	model.CodecAV1:  {"av01", "av1"},
}

// Candidate is one scored source format
type Candidate struct {
	ID        string
	Height    int
	VCodec    string
	Container string
	Score     float64

	ResolutionMatch bool
	CodecMatch      bool
	ContainerMatch  bool
}

// ScoreCandidates ranks every raw video format against the desired
// resolution, codec family and container. Entries without a video codec or
// height are excluded; everything else is kept, however weak the match,
// so the selector always has fallbacks. The result is sorted by score
// descending (ties stable).
func ScoreCandidates(formats []engine.RawFormat, desiredHeight int, desiredCodec model.VideoCodec, desiredContainer string) []Candidate {
	terms := codecFamilies[desiredCodec]
	container := strings.ToLower(desiredContainer)

	candidates := make([]Candidate, 0, len(formats))
	for _, f := range formats {
		vcodec := strings.ToLower(f.VCodec)
		if vcodec == "" || vcodec == "none" || f.Height == 0 {
			continue
		}

		c := Candidate{
			ID:        f.ID,
			Height:    f.Height,
			VCodec:    vcodec,
			Container: strings.ToLower(f.Ext),
		}

		for _, term := range terms {
			if strings.Contains(vcodec, term) {
				c.CodecMatch = true
				break
			}
		}
		c.ResolutionMatch = f.Height == desiredHeight
		c.ContainerMatch = c.Container == container

		if c.ResolutionMatch {
			c.Score += resolutionWeight
		}
		if c.CodecMatch {
			c.Score += codecWeight
		}
		if c.ContainerMatch {
			c.Score += containerWeight
		}
		c.Score += float64(f.Height) * heightBonus

		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

// BuildFormatSelector turns the ranked candidates into the engine's
// format-selection expression. The top candidates are tried with a
// separate best-audio track first, then bare, and the expression always
// terminates in the generic fallback:
//
//	id1+bestaudio/id2+bestaudio/id3+bestaudio/id1/id2/id3/best
func BuildFormatSelector(candidates []Candidate) string {
	if len(candidates) == 0 {
		return selectorFallback
	}

	top := candidates
	if len(top) > selectorCandidates {
		top = top[:selectorCandidates]
	}

	ids := make([]string, 0, len(top))
	for _, c := range top {
		ids = append(ids, c.ID)
	}

	withAudio := strings.Join(ids, "+bestaudio/") + "+bestaudio"
	return withAudio + "/" + strings.Join(ids, "/") + "/" + selectorFallback
}
