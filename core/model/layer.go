package model

import "fmt"

// EntityLayer selects which of the independent entity slots a character
// references. The zero value selects the first slot.
type EntityLayer int

// Entity layer constants.
const (
	LayerDefault EntityLayer = 0
	Layer1       EntityLayer = 1
	Layer2       EntityLayer = 2
)

// NumLayers is the number of entity slots per character.
const NumLayers = 2

// Layers lists every addressable layer in slot order.
var Layers = [NumLayers]EntityLayer{Layer1, Layer2}

// Valid reports whether l addresses an existing slot.
func (l EntityLayer) Valid() bool {
	return l >= LayerDefault && int(l) <= NumLayers
}

// Slot returns the zero-based slot index for l. Layer1 names the first
// slot explicitly; it is not treated as "any non-zero layer" selecting the
// second one.
// It panics on an invalid layer, like an out-of-range index would.
func (l EntityLayer) Slot() int {
	if !l.Valid() {
		panic(fmt.Sprintf("model: invalid entity layer %d", int(l)))
	}
	if l == LayerDefault {
		return 0
	}
	return int(l) - 1
}

// Normalize maps LayerDefault to Layer1 and leaves other layers alone.
func (l EntityLayer) Normalize() EntityLayer {
	if l == LayerDefault {
		return Layer1
	}
	return l
}

func (l EntityLayer) String() string {
	return fmt.Sprintf("layer%d", int(l.Normalize()))
}
