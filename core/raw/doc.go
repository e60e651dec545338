// Package raw converts content states to and from their serializable form.
//
// The raw form mirrors the layout editors exchange over the wire: a list of
// blocks carrying inline style and entity ranges, plus an entity map keyed
// by entity key. Offsets and lengths count runes.
package raw
