// Package model provides the immutable document model of the rich-text editor.
//
// Every character of a block carries a CharacterMetadata record: a set of
// inline style tags plus one entity key per entity layer. Two layers exist so
// that two annotation systems (for example links and mentions) can overlap
// without clobbering each other.
//
// # Interning
//
// CharacterMetadata values are never built directly. A Pool interns them by
// value, so two characters with equal style and entity keys share one
// pointer. Comparing metadata pointers is therefore enough to detect change
// across a block.
//
// # Structural sharing
//
// ContentBlock, BlockMap and ContentState are immutable. Every With*/Merge
// call returns a new value and shares everything it did not touch with its
// receiver, so untouched blocks stay identical by reference between document
// versions.
//
// # Example
//
//	pool := model.NewPool()
//	a, _ := model.NewPlainBlock(pool, "a", "Hello")
//	blocks, _ := model.NewBlockMap(a)
//	content := model.NewContentState(blocks, model.NewEntityMap(nil))
//	sel := model.Collapsed("a", 2)
package model
