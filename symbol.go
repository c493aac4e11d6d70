package iconwall

// maxSymbolAttempts bounds the neighbor-avoiding draws in SelectSymbol.
const maxSymbolAttempts = 10

// SelectSymbol draws a glyph from alphabet. A draw equal to the left or top
// neighbor is rejected with probability penalty and redrawn, up to
// maxSymbolAttempts times; after that one last draw is returned as is, so
// a penalty of 1 can still repeat a neighbor. Empty neighbors are "".
func SelectSymbol(rng Rand, left, top string, alphabet []string, penalty float64) string {
	if len(alphabet) == 0 {
		return ""
	}

	for attempt := 0; attempt < maxSymbolAttempts; attempt++ {
		candidate := alphabet[rng.IntN(len(alphabet))]
		if candidate != left && candidate != top {
			return candidate
		}
		if rng.Float64() >= penalty {
			return candidate
		}
	}
	return alphabet[rng.IntN(len(alphabet))]
}
