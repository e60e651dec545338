package model

import (
	"slices"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
)

// BlockMap is an immutable, ordered sequence of blocks with a key index.
// Document order is the slice order.
type BlockMap struct {
	blocks []*ContentBlock
	index  map[string]int
}

// NewBlockMap builds a map in the given order. Block keys must be unique.
func NewBlockMap(blocks ...*ContentBlock) (*BlockMap, error) {
	index := make(map[string]int, len(blocks))
	for i, b := range blocks {
		if b == nil {
			return nil, drafterrors.NewValidation("blocks", "block must not be nil")
		}
		if _, dup := index[b.Key()]; dup {
			return nil, drafterrors.NewDuplicate("block", b.Key())
		}
		index[b.Key()] = i
	}
	return &BlockMap{blocks: slices.Clone(blocks), index: index}, nil
}

// Len returns the number of blocks.
func (m *BlockMap) Len() int { return len(m.blocks) }

// Keys returns the block keys in document order.
func (m *BlockMap) Keys() []string {
	keys := make([]string, len(m.blocks))
	for i, b := range m.blocks {
		keys[i] = b.Key()
	}
	return keys
}

// Blocks returns the blocks in document order.
func (m *BlockMap) Blocks() []*ContentBlock {
	return slices.Clone(m.blocks)
}

// Get returns the block for key.
func (m *BlockMap) Get(key string) (*ContentBlock, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.blocks[i], true
}

// Index returns the position of key in document order.
func (m *BlockMap) Index(key string) (int, bool) {
	i, ok := m.index[key]
	return i, ok
}

// At returns the block at position i.
func (m *BlockMap) At(i int) *ContentBlock {
	return m.blocks[i]
}

// First returns the first block, or nil for an empty map.
func (m *BlockMap) First() *ContentBlock {
	if len(m.blocks) == 0 {
		return nil
	}
	return m.blocks[0]
}

// Last returns the last block, or nil for an empty map.
func (m *BlockMap) Last() *ContentBlock {
	if len(m.blocks) == 0 {
		return nil
	}
	return m.blocks[len(m.blocks)-1]
}

// Range returns the blocks from startKey through endKey inclusive in
// document order. It returns nil if either key is unknown or endKey comes
// before startKey.
func (m *BlockMap) Range(startKey, endKey string) []*ContentBlock {
	from, ok := m.index[startKey]
	if !ok {
		return nil
	}
	to, ok := m.index[endKey]
	if !ok || to < from {
		return nil
	}
	return slices.Clone(m.blocks[from : to+1])
}

// Merge returns a map where every block in updates replaces the block with
// the same key. Unknown keys are ignored. Blocks not replaced are shared
// with m; if nothing changes, m itself is returned.
func (m *BlockMap) Merge(updates ...*ContentBlock) *BlockMap {
	var out []*ContentBlock
	for _, b := range updates {
		if b == nil {
			continue
		}
		i, ok := m.index[b.Key()]
		if !ok || m.blocks[i] == b {
			continue
		}
		if out == nil {
			out = slices.Clone(m.blocks)
		}
		out[i] = b
	}
	if out == nil {
		return m
	}
	// Keys and order are unchanged, so the index is shared.
	return &BlockMap{blocks: out, index: m.index}
}

// Normalize orders the anchor and focus of sel in document order. Both
// keys must exist in m.
func (m *BlockMap) Normalize(sel SelectionState) SelectionRange {
	ai := m.index[sel.AnchorKey]
	fi := m.index[sel.FocusKey]
	backward := fi < ai || (fi == ai && sel.FocusOffset < sel.AnchorOffset)
	if backward {
		return SelectionRange{
			StartKey:    sel.FocusKey,
			StartOffset: sel.FocusOffset,
			EndKey:      sel.AnchorKey,
			EndOffset:   sel.AnchorOffset,
			Backward:    true,
		}
	}
	return SelectionRange{
		StartKey:    sel.AnchorKey,
		StartOffset: sel.AnchorOffset,
		EndKey:      sel.FocusKey,
		EndOffset:   sel.FocusOffset,
	}
}
