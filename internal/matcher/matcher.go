package matcher

import (
	"path/filepath"
	"sort"
	"strings"
)

// Pair is one unit of work for the splitter.
type Pair struct {
	Image string
	Cue   string
}

// Ambiguity records a candidate that was skipped because another file had
// already claimed the match.
type Ambiguity struct {
	Cue     string
	Image   string
	Reason  string
	Winning string
}

const (
	reasonImageTaken = "image already paired with another cue sheet"
	reasonExtraImage = "cue sheet already paired with another image"
)

// BaseName strips the final extension from path.
func BaseName(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// Match pairs every CUE sheet with the first image sharing its base name.
// An image is claimed at most once. Unmatched CUE sheets and images are
// simply absent from the result.
func Match(cues, images []string) ([]Pair, []Ambiguity) {
	cues = sortedCopy(cues)
	images = sortedCopy(images)

	claimedBy := make(map[string]string, len(images))
	var pairs []Pair
	var ambiguities []Ambiguity
	for _, cue := range cues {
		base := BaseName(cue)
		winner := ""
		for _, image := range images {
			if BaseName(image) != base {
				continue
			}
			if owner, taken := claimedBy[image]; taken {
				ambiguities = append(ambiguities, Ambiguity{Cue: cue, Image: image, Reason: reasonImageTaken, Winning: owner})
				continue
			}
			if winner != "" {
				ambiguities = append(ambiguities, Ambiguity{Cue: cue, Image: image, Reason: reasonExtraImage, Winning: winner})
				continue
			}
			winner = image
			claimedBy[image] = cue
			pairs = append(pairs, Pair{Image: image, Cue: cue})
		}
	}
	return pairs, ambiguities
}

func sortedCopy(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
