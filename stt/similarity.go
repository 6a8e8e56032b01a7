package stt

// Similarity scores two words by the Jaccard index of their character
// sets: |intersection| / |union|. Crude but cheap, and good enough to
// catch the typical transcription fumbles ("hedding" vs "heading"
// scores 6/7). Equal strings, including two empty ones, score 1.0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}

	seen := make(map[rune]uint8, len(a)+len(b))
	for _, r := range a {
		seen[r] |= 1
	}
	for _, r := range b {
		seen[r] |= 2
	}

	var inter, union int
	for _, m := range seen {
		union++
		if m == 3 {
			inter++
		}
	}
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}
