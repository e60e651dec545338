// Package transaction implements the editing transactions that change
// character metadata over a selection.
//
// All transactions are pure: they take a ContentState and a SelectionState
// and return a new ContentState, sharing every block they did not change
// with the input. They never fail; a selection that does not match the
// document yields an unspecified but safe result.
//
//   - ApplyEntity sets or clears an entity at one layer over [start, end).
//   - RemoveEntitiesAtEdges clears non-mutable entity runs cut by the
//     selection edges, over their whole run.
//   - ApplyInlineStyle and RemoveInlineStyle add or remove a style tag.
package transaction
