package transaction

import "github.com/TheWidlarzGroup/draft-js/core/model"

// blockSlice is the part [start, end) of one block covered by a selection.
type blockSlice struct {
	block      *model.ContentBlock
	start, end int
}

// selectedSlices splits r into per-block ranges: [startOffset, len) for the
// start block, [0, len) for interior blocks, [0, endOffset) for the end
// block, and [startOffset, endOffset) when both edges are in one block.
func selectedSlices(bm *model.BlockMap, r model.SelectionRange) []blockSlice {
	blocks := bm.Range(r.StartKey, r.EndKey)
	out := make([]blockSlice, 0, len(blocks))
	for _, b := range blocks {
		s := blockSlice{block: b, start: 0, end: b.Length()}
		if b.Key() == r.StartKey {
			s.start = r.StartOffset
		}
		if b.Key() == r.EndKey {
			s.end = r.EndOffset
		}
		out = append(out, s)
	}
	return out
}

// clampRange limits [start, end) to [0, length].
func clampRange(start, end, length int) (int, int) {
	start = max(0, min(start, length))
	end = max(start, min(end, length))
	return start, end
}

// mapCharacters replaces each character in [start, end) with f(character).
// The input block is returned when f leaves every character as it was.
func mapCharacters(block *model.ContentBlock, start, end int, f func(*model.CharacterMetadata) *model.CharacterMetadata) *model.ContentBlock {
	start, end = clampRange(start, end, block.Length())
	var chars []*model.CharacterMetadata
	for i := start; i < end; i++ {
		cur := block.CharacterAt(i)
		next := f(cur)
		if next == cur {
			continue
		}
		if chars == nil {
			chars = block.Characters()
		}
		chars[i] = next
	}
	if chars == nil {
		return block
	}
	return block.WithCharacters(chars)
}
