package model

import (
	"maps"
	"slices"
	"strings"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
)

// Mutability governs how an entity reacts to edits at its edges.
type Mutability string

// Mutability constants.
const (
	// Mutable entities may be edited or partially removed freely.
	Mutable Mutability = "MUTABLE"
	// Immutable entities are removed as a whole when partially edited.
	Immutable Mutability = "IMMUTABLE"
	// Segmented entities lose whole segments when partially edited.
	Segmented Mutability = "SEGMENTED"
)

// validMutabilities is the set of valid mutabilities.
var validMutabilities = map[Mutability]bool{
	Mutable:   true,
	Immutable: true,
	Segmented: true,
}

// IsValid returns true if the mutability is known.
func (m Mutability) IsValid() bool {
	return validMutabilities[m]
}

// ParseMutability parses a mutability name, case-insensitively.
func ParseMutability(s string) (Mutability, error) {
	m := Mutability(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", &drafterrors.ValidationError{
			Field:   "mutability",
			Value:   s,
			Message: "must be MUTABLE, IMMUTABLE or SEGMENTED",
		}
	}
	return m, nil
}

// EntityInstance is a keyed annotation such as a link or mention.
// Treat instances as read-only once registered.
type EntityInstance struct {
	// Type is the entity type (e.g., "LINK", "MENTION").
	Type string `json:"type"`

	// Mutability controls edge-edit behavior.
	Mutability Mutability `json:"mutability"`

	// Layer is the layer the entity is meant to be applied at.
	Layer EntityLayer `json:"layer,omitempty"`

	// Data carries entity specific attributes (e.g., "url").
	Data map[string]any `json:"data,omitempty"`
}

// EntityLookup resolves entity keys. It is all the transactions need from
// an entity registry.
type EntityLookup interface {
	Get(key string) (*EntityInstance, bool)
}

// EntityMap is an immutable EntityLookup backed by a map.
type EntityMap struct {
	entries map[string]*EntityInstance
}

// NewEntityMap copies entries into a new EntityMap. entries may be nil.
func NewEntityMap(entries map[string]*EntityInstance) *EntityMap {
	return &EntityMap{entries: maps.Clone(entries)}
}

// Get returns the instance registered under key.
func (m *EntityMap) Get(key string) (*EntityInstance, bool) {
	inst, ok := m.entries[key]
	return inst, ok
}

// With returns a map that also has inst under key, replacing any previous one.
func (m *EntityMap) With(key string, inst *EntityInstance) *EntityMap {
	next := make(map[string]*EntityInstance, len(m.entries)+1)
	maps.Copy(next, m.entries)
	next[key] = inst
	return &EntityMap{entries: next}
}

// Keys returns the registered keys in sorted order.
func (m *EntityMap) Keys() []string {
	return slices.Sorted(maps.Keys(m.entries))
}

// Len returns the number of registered entities.
func (m *EntityMap) Len() int {
	return len(m.entries)
}
