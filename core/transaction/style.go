package transaction

import (
	"github.com/TheWidlarzGroup/draft-js/core/model"
	"github.com/TheWidlarzGroup/draft-js/internal/logging"
)

// ApplyInlineStyle adds style to every character inside sel. Both
// selections of the result are sel.
func (t *Transactor) ApplyInlineStyle(cs *model.ContentState, sel model.SelectionState, style string) *model.ContentState {
	return t.modifyInlineStyle(cs, sel, "apply_inline_style", style, func(c *model.CharacterMetadata) *model.CharacterMetadata {
		return t.pool.ApplyStyle(c, style)
	})
}

// RemoveInlineStyle removes style from every character inside sel. Both
// selections of the result are sel.
func (t *Transactor) RemoveInlineStyle(cs *model.ContentState, sel model.SelectionState, style string) *model.ContentState {
	return t.modifyInlineStyle(cs, sel, "remove_inline_style", style, func(c *model.CharacterMetadata) *model.CharacterMetadata {
		return t.pool.RemoveStyle(c, style)
	})
}

func (t *Transactor) modifyInlineStyle(cs *model.ContentState, sel model.SelectionState, op, style string, f func(*model.CharacterMetadata) *model.CharacterMetadata) *model.ContentState {
	bm := cs.BlockMap()

	var updated []*model.ContentBlock
	for _, s := range selectedSlices(bm, bm.Normalize(sel)) {
		next := mapCharacters(s.block, s.start, s.end, f)
		if next != s.block {
			updated = append(updated, next)
		}
	}

	logging.Transaction(t.logger, op, len(updated), "style", style, "selection", sel.String())
	return cs.WithBlockMap(bm.Merge(updated...)).WithSelection(sel)
}
