package model

import (
	"maps"
	"slices"
	"unicode/utf8"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
)

// DefaultBlockType is the type of a block without explicit type.
const DefaultBlockType = "unstyled"

// BlockConfig describes a ContentBlock to construct.
type BlockConfig struct {
	// Key identifies the block within its document; must be non-empty.
	Key string

	// Type is the block type (e.g., "unstyled", "header-one"). Defaults to DefaultBlockType.
	Type string

	// Text is the UTF-8 text. Offsets everywhere in this package count runes.
	Text string

	// Depth is the nesting depth for list items.
	Depth int

	// Characters holds one metadata record per rune of Text.
	Characters []*CharacterMetadata

	// Data contains additional block metadata.
	Data map[string]any
}

// ContentBlock is an immutable paragraph-level unit of text with a
// metadata record per character.
type ContentBlock struct {
	key       string
	blockType string
	text      string
	depth     int
	chars     []*CharacterMetadata
	data      map[string]any
}

// NewContentBlock validates cfg and builds a block. The characters slice is
// copied.
func NewContentBlock(cfg BlockConfig) (*ContentBlock, error) {
	if cfg.Key == "" {
		return nil, drafterrors.NewValidation("key", "block key must not be empty")
	}
	if n := utf8.RuneCountInString(cfg.Text); n != len(cfg.Characters) {
		return nil, &drafterrors.ValidationError{
			Field:   "characters",
			Value:   cfg.Key,
			Message: "character list must have one entry per rune of text",
		}
	}
	for _, c := range cfg.Characters {
		if c == nil {
			return nil, &drafterrors.ValidationError{
				Field:   "characters",
				Value:   cfg.Key,
				Message: "character metadata must not be nil",
			}
		}
	}
	if cfg.Depth < 0 {
		return nil, drafterrors.NewValidation("depth", "must not be negative")
	}
	blockType := cfg.Type
	if blockType == "" {
		blockType = DefaultBlockType
	}
	return &ContentBlock{
		key:       cfg.Key,
		blockType: blockType,
		text:      cfg.Text,
		depth:     cfg.Depth,
		chars:     slices.Clone(cfg.Characters),
		data:      maps.Clone(cfg.Data),
	}, nil
}

// NewPlainBlock builds an unstyled block whose characters all carry the
// pool's empty record.
func NewPlainBlock(pool *Pool, key, text string) (*ContentBlock, error) {
	chars := make([]*CharacterMetadata, utf8.RuneCountInString(text))
	empty := pool.Empty()
	for i := range chars {
		chars[i] = empty
	}
	return NewContentBlock(BlockConfig{Key: key, Text: text, Characters: chars})
}

// Key returns the block key.
func (b *ContentBlock) Key() string { return b.key }

// Type returns the block type.
func (b *ContentBlock) Type() string { return b.blockType }

// Text returns the block text.
func (b *ContentBlock) Text() string { return b.text }

// Depth returns the nesting depth.
func (b *ContentBlock) Depth() int { return b.depth }

// Length returns the number of characters (runes).
func (b *ContentBlock) Length() int { return len(b.chars) }

// Data returns a copy of the block metadata map.
func (b *ContentBlock) Data() map[string]any { return maps.Clone(b.data) }

// CharacterAt returns the metadata of the character at offset.
func (b *ContentBlock) CharacterAt(offset int) *CharacterMetadata {
	return b.chars[offset]
}

// Characters returns a copy of the character metadata list.
func (b *ContentBlock) Characters() []*CharacterMetadata {
	return slices.Clone(b.chars)
}

// EntityAt returns the entity key at offset and layer, "" if none.
func (b *ContentBlock) EntityAt(offset int, layer EntityLayer) string {
	return b.chars[offset].Entity(layer)
}

// StyleAt returns the style set at offset.
func (b *ContentBlock) StyleAt(offset int) StyleSet {
	return b.chars[offset].Style()
}

// WithCharacters returns a block sharing b's key, type, text and data with
// chars as its character list. chars must have b.Length() entries; it panics
// otherwise. The slice is owned by the new block afterwards.
func (b *ContentBlock) WithCharacters(chars []*CharacterMetadata) *ContentBlock {
	if len(chars) != len(b.chars) {
		panic("model: character list length does not match block text")
	}
	nb := *b
	nb.chars = chars
	return &nb
}

// FindEntityRanges calls fn for each maximal run of characters sharing the
// same non-empty entity key at layer.
func (b *ContentBlock) FindEntityRanges(layer EntityLayer, fn func(start, end int)) {
	slot := layer.Slot()
	findRanges(b.chars,
		func(x, y *CharacterMetadata) bool { return x.entities[slot] == y.entities[slot] },
		func(c *CharacterMetadata) bool { return c.entities[slot] != "" },
		fn)
}

// FindStyleRanges calls fn for each maximal run of characters carrying style.
func (b *ContentBlock) FindStyleRanges(style string, fn func(start, end int)) {
	findRanges(b.chars,
		func(x, y *CharacterMetadata) bool { return x.HasStyle(style) == y.HasStyle(style) },
		func(c *CharacterMetadata) bool { return c.HasStyle(style) },
		fn)
}

// EntityRunAround reports the run of characters sharing one entity key at
// layer that strictly contains offset: offset-1 and offset both belong to
// the run. Walking outward from offset while the key stays equal yields
// [start, end). ok is false when offset is at a run edge, at a block edge,
// or not on an entity.
func (b *ContentBlock) EntityRunAround(offset int, layer EntityLayer) (start, end int, key string, ok bool) {
	if offset <= 0 || offset >= len(b.chars) {
		return 0, 0, "", false
	}
	slot := layer.Slot()
	key = b.chars[offset].entities[slot]
	if key == "" || b.chars[offset-1].entities[slot] != key {
		return 0, 0, "", false
	}
	start = offset - 1
	for start > 0 && b.chars[start-1].entities[slot] == key {
		start--
	}
	end = offset + 1
	for end < len(b.chars) && b.chars[end].entities[slot] == key {
		end++
	}
	return start, end, key, true
}
