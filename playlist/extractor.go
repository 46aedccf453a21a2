package playlist

import "strings"

// trackSeparator splits artist from title in a generated track line.
const trackSeparator = " - "

var bulletMarkers = []string{"-", "•"}

// Extract returns one candidate per line that looks like "Artist - Title",
// optionally prefixed by a single bullet. Headers, BPM notes and blank lines
// are skipped.
func Extract(text string) []TrackCandidate {
	candidates := []TrackCandidate{}
	for _, line := range strings.Split(text, "\n") {
		remainder := stripBullet(strings.TrimSpace(line))
		if !strings.Contains(remainder, trackSeparator) {
			continue
		}
		candidates = append(candidates, TrackCandidate{
			OriginalLine:  strings.TrimSpace(remainder),
			SequenceIndex: len(candidates),
		})
	}
	return candidates
}

// stripBullet removes one leading marker and returns the untrimmed rest, so
// "- - Intro" still carries its separator.
func stripBullet(line string) string {
	for _, marker := range bulletMarkers {
		if rest, ok := strings.CutPrefix(line, marker); ok {
			return rest
		}
	}
	return line
}
