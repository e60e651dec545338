package model

import (
	"fmt"
	"strings"
)

// CharacterMetadata is the immutable style and entity record attached to
// one character. Obtain instances from a Pool; value-equal records coming
// from the same Pool are the same pointer.
type CharacterMetadata struct {
	style    StyleSet
	entities [NumLayers]string
}

// MetadataConfig describes a record to create. Omitted fields mean an empty
// style set and no entities. An entity key of "" means no entity.
type MetadataConfig struct {
	Style    StyleSet
	Entities [NumLayers]string
}

// WithEntity returns a copy of cfg with the slot for layer set to key.
func (cfg MetadataConfig) WithEntity(layer EntityLayer, key string) MetadataConfig {
	cfg.Entities[layer.Slot()] = key
	return cfg
}

// Style returns the inline style set.
func (c *CharacterMetadata) Style() StyleSet {
	return c.style
}

// HasStyle reports whether the style set contains style.
func (c *CharacterMetadata) HasStyle(style string) bool {
	return c.style.Has(style)
}

// Entity returns the entity key at layer, or "" when there is none.
func (c *CharacterMetadata) Entity(layer EntityLayer) string {
	return c.entities[layer.Slot()]
}

// HasEntity reports whether an entity is set at layer.
func (c *CharacterMetadata) HasEntity(layer EntityLayer) bool {
	return c.Entity(layer) != ""
}

// Config returns the value of c as a MetadataConfig.
func (c *CharacterMetadata) Config() MetadataConfig {
	return MetadataConfig{Style: c.style, Entities: c.entities}
}

func (c *CharacterMetadata) String() string {
	parts := make([]string, 0, NumLayers+1)
	parts = append(parts, "style=["+c.style.String()+"]")
	for i, key := range c.entities {
		if key != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", Layers[i], key))
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}

func (cfg MetadataConfig) key() metadataKey {
	return metadataKey{style: cfg.Style.key(), entities: cfg.Entities}
}
