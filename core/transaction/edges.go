package transaction

import (
	"github.com/TheWidlarzGroup/draft-js/core/model"
	"github.com/TheWidlarzGroup/draft-js/internal/logging"
)

// RemoveEntitiesAtEdges prepares cs for replacing the content at sel: for
// each selection edge and each layer, an entity run that the edge cuts
// strictly inside (the characters on both sides of the edge carry the same
// key) is cleared over the whole run unless the entity is mutable.
//
// An edge exactly at a run's first or last character never clears it. Runs
// entirely inside the selection are left for the caller's removal. The
// selections of cs are left as they are, and cs itself is returned when
// nothing changed.
func (t *Transactor) RemoveEntitiesAtEdges(cs *model.ContentState, sel model.SelectionState) *model.ContentState {
	bm := cs.BlockMap()
	r := bm.Normalize(sel)
	entities := cs.Entities()

	startBlock, ok := bm.Get(r.StartKey)
	if !ok {
		return cs
	}
	updates := []*model.ContentBlock{t.removeForBlock(entities, startBlock, r.StartOffset)}

	// The end edge sees the start edge's result when both share a block.
	endBlock, ok := bm.Get(r.EndKey)
	if r.EndKey == r.StartKey {
		endBlock = updates[0]
	}
	if ok {
		updates = append(updates, t.removeForBlock(entities, endBlock, r.EndOffset))
	}

	next := bm.Merge(updates...)
	changed := 0
	for _, key := range []string{r.StartKey, r.EndKey} {
		before, _ := bm.Get(key)
		after, _ := next.Get(key)
		if before != after {
			changed++
		}
		if r.EndKey == r.StartKey {
			break
		}
	}

	logging.Transaction(t.logger, "remove_entities_at_edges", changed, "selection", sel.String())
	if next == bm {
		return cs
	}
	return cs.WithBlockMap(next)
}

// removeForBlock clears, per layer, the non-mutable entity run that the
// position offset cuts inside block.
func (t *Transactor) removeForBlock(entities model.EntityLookup, block *model.ContentBlock, offset int) *model.ContentBlock {
	for _, layer := range model.Layers {
		start, end, key, ok := block.EntityRunAround(offset, layer)
		if !ok {
			continue
		}
		inst, found := entities.Get(key)
		if !found {
			t.logger.Debug("entity not registered", "entity_key", key, "block_key", block.Key())
			continue
		}
		if inst.Mutability == model.Mutable {
			continue
		}
		block = ApplyEntityToBlock(t.pool, block, start, end, "", layer)
	}
	return block
}
