package model

// findRanges walks chars once and calls fn with [start, end) for every
// maximal run of neighbours that are the same according to same and whose
// first element passes filter.
func findRanges(
	chars []*CharacterMetadata,
	same func(a, b *CharacterMetadata) bool,
	filter func(c *CharacterMetadata) bool,
	fn func(start, end int),
) {
	n := len(chars)
	for start := 0; start < n; {
		end := start + 1
		for end < n && (chars[end] == chars[start] || same(chars[start], chars[end])) {
			end++
		}
		if filter(chars[start]) {
			fn(start, end)
		}
		start = end
	}
}
