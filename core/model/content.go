package model

import "strings"

// ContentState is one immutable version of a document: its blocks, the
// entity registry view, and the selection before and after the edit that
// produced it.
type ContentState struct {
	blockMap        *BlockMap
	entities        EntityLookup
	selectionBefore SelectionState
	selectionAfter  SelectionState
}

// NewContentState builds a document. A nil entities lookup is replaced by
// an empty EntityMap.
func NewContentState(blockMap *BlockMap, entities EntityLookup) *ContentState {
	if entities == nil {
		entities = NewEntityMap(nil)
	}
	return &ContentState{blockMap: blockMap, entities: entities}
}

// BlockMap returns the block sequence.
func (c *ContentState) BlockMap() *BlockMap { return c.blockMap }

// Entities returns the entity lookup.
func (c *ContentState) Entities() EntityLookup { return c.entities }

// SelectionBefore returns the selection before the edit.
func (c *ContentState) SelectionBefore() SelectionState { return c.selectionBefore }

// SelectionAfter returns the selection after the edit.
func (c *ContentState) SelectionAfter() SelectionState { return c.selectionAfter }

// BlockForKey returns the block with key.
func (c *ContentState) BlockForKey(key string) (*ContentBlock, bool) {
	return c.blockMap.Get(key)
}

// WithBlockMap returns a copy of c using blockMap.
func (c *ContentState) WithBlockMap(blockMap *BlockMap) *ContentState {
	next := *c
	next.blockMap = blockMap
	return &next
}

// WithEntities returns a copy of c using entities.
func (c *ContentState) WithEntities(entities EntityLookup) *ContentState {
	next := *c
	next.entities = entities
	return &next
}

// WithSelectionBefore returns a copy of c with the given selectionBefore.
func (c *ContentState) WithSelectionBefore(sel SelectionState) *ContentState {
	next := *c
	next.selectionBefore = sel
	return &next
}

// WithSelectionAfter returns a copy of c with the given selectionAfter.
func (c *ContentState) WithSelectionAfter(sel SelectionState) *ContentState {
	next := *c
	next.selectionAfter = sel
	return &next
}

// WithSelection returns a copy of c with both selections set to sel.
func (c *ContentState) WithSelection(sel SelectionState) *ContentState {
	next := *c
	next.selectionBefore = sel
	next.selectionAfter = sel
	return &next
}

// PlainText joins the block texts with newlines.
func (c *ContentState) PlainText() string {
	blocks := c.blockMap.blocks
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.Text()
	}
	return strings.Join(parts, "\n")
}
