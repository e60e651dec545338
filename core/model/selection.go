package model

import "fmt"

// SelectionState is a cursor or range as reported by the editor surface.
// Anchor is where the selection started, focus where it ended; focus may
// come before anchor in the document.
type SelectionState struct {
	AnchorKey    string `json:"anchorKey"`
	AnchorOffset int    `json:"anchorOffset"`
	FocusKey     string `json:"focusKey"`
	FocusOffset  int    `json:"focusOffset"`
	HasFocus     bool   `json:"hasFocus,omitempty"`
}

// Collapsed returns a cursor at key and offset.
func Collapsed(key string, offset int) SelectionState {
	return SelectionState{AnchorKey: key, AnchorOffset: offset, FocusKey: key, FocusOffset: offset}
}

// Span returns a selection from the anchor position to the focus position.
func Span(anchorKey string, anchorOffset int, focusKey string, focusOffset int) SelectionState {
	return SelectionState{
		AnchorKey:    anchorKey,
		AnchorOffset: anchorOffset,
		FocusKey:     focusKey,
		FocusOffset:  focusOffset,
	}
}

// IsCollapsed reports whether anchor and focus coincide.
func (s SelectionState) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

// IsZero reports whether s is the zero selection.
func (s SelectionState) IsZero() bool {
	return s == SelectionState{}
}

func (s SelectionState) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("%s:%d", s.AnchorKey, s.AnchorOffset)
	}
	return fmt.Sprintf("%s:%d..%s:%d", s.AnchorKey, s.AnchorOffset, s.FocusKey, s.FocusOffset)
}

// SelectionRange is a selection normalized to document order.
type SelectionRange struct {
	StartKey    string
	StartOffset int
	EndKey      string
	EndOffset   int

	// Backward is true when the focus came before the anchor.
	Backward bool
}

// IsCollapsed reports whether the range is empty.
func (r SelectionRange) IsCollapsed() bool {
	return r.StartKey == r.EndKey && r.StartOffset == r.EndOffset
}
