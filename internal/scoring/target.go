package scoring

import (
	"strings"

	"funmatch/internal/library"
	"funmatch/internal/textutil"
)

// ResolveTarget picks the single video best matching a free-text query. Each
// query part found in a video name adds one point. The first video with the
// highest score wins. A part counts when it occurs case-insensitively anywhere
// in the name. ok is false when nothing matched at all.
func ResolveTarget(query string, videos []library.Entry) (library.Entry, int, bool) {
	parts := strings.Fields(query)
	if len(parts) == 0 {
		return library.Entry{}, 0, false
	}

	best := -1
	bestScore := 0
	for i, video := range videos {
		score := 0
		for _, part := range parts {
			if textutil.ContainsFold(video.DisplayName, part) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return library.Entry{}, 0, false
	}
	return videos[best], bestScore, true
}
