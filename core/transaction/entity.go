package transaction

import (
	"github.com/TheWidlarzGroup/draft-js/core/model"
	"github.com/TheWidlarzGroup/draft-js/internal/logging"
)

// ApplyEntityToBlock sets entityKey at layer on the characters [start, end)
// of block, interning through pool. An entityKey of "" clears the slot.
// The range is clamped to the block. block itself is returned when no
// character changed.
func ApplyEntityToBlock(pool *model.Pool, block *model.ContentBlock, start, end int, entityKey string, layer model.EntityLayer) *model.ContentBlock {
	return mapCharacters(block, start, end, func(c *model.CharacterMetadata) *model.CharacterMetadata {
		return pool.ApplyEntity(c, entityKey, layer)
	})
}

// ApplyEntity sets entityKey at layer for every character inside sel,
// across all blocks sel spans. An entityKey of "" clears the layer.
// Characters outside the selection keep their metadata pointers and
// untouched blocks are shared with cs. Both selections of the result are
// sel; the cursor does not move.
func (t *Transactor) ApplyEntity(cs *model.ContentState, sel model.SelectionState, entityKey string, layer model.EntityLayer) *model.ContentState {
	mustValidLayer(layer)
	bm := cs.BlockMap()

	var updated []*model.ContentBlock
	for _, s := range selectedSlices(bm, bm.Normalize(sel)) {
		next := t.applyBlock(s.block, s.start, s.end, entityKey, layer)
		if next != s.block {
			updated = append(updated, next)
		}
	}

	logging.Transaction(t.logger, "apply_entity", len(updated),
		"entity_key", entityKey,
		"layer", int(layer.Normalize()),
		"selection", sel.String(),
	)
	return cs.WithBlockMap(bm.Merge(updated...)).WithSelection(sel)
}
