package raw

import (
	"maps"
	"slices"
	"unicode/utf8"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
	"github.com/TheWidlarzGroup/draft-js/core/model"
)

// ContentState is the serializable form of a model.ContentState.
type ContentState struct {
	Blocks    []Block            `json:"blocks"`
	EntityMap map[string]*Entity `json:"entityMap"`
}

// Block is the serializable form of a model.ContentBlock.
type Block struct {
	Key               string         `json:"key"`
	Text              string         `json:"text"`
	Type              string         `json:"type"`
	Depth             int            `json:"depth"`
	InlineStyleRanges []StyleRange   `json:"inlineStyleRanges"`
	EntityRanges      []EntityRange  `json:"entityRanges"`
	Data              map[string]any `json:"data,omitempty"`
}

// StyleRange marks Length characters from Offset with Style.
type StyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

// EntityRange marks Length characters from Offset with entity Key.
// Layer 0 is the default layer.
type EntityRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Key    string `json:"key"`
	Layer  int    `json:"layer,omitempty"`
}

// Entity is the serializable form of a model.EntityInstance.
type Entity struct {
	Type       string         `json:"type"`
	Mutability string         `json:"mutability"`
	Layer      int            `json:"layer,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// keyLister is implemented by entity registries that can enumerate keys.
type keyLister interface {
	Keys() []string
}

// ToRaw converts cs. Entities referenced by some character are always
// included; when the registry can list its keys every entity is included.
func ToRaw(cs *model.ContentState) *ContentState {
	out := &ContentState{EntityMap: make(map[string]*Entity)}
	referenced := make(map[string]bool)

	for _, b := range cs.BlockMap().Blocks() {
		rb := Block{
			Key:               b.Key(),
			Text:              b.Text(),
			Type:              b.Type(),
			Depth:             b.Depth(),
			InlineStyleRanges: styleRanges(b),
			EntityRanges:      []EntityRange{},
			Data:              b.Data(),
		}
		for _, layer := range model.Layers {
			b.FindEntityRanges(layer, func(start, end int) {
				key := b.EntityAt(start, layer)
				referenced[key] = true
				rb.EntityRanges = append(rb.EntityRanges, EntityRange{
					Offset: start,
					Length: end - start,
					Key:    key,
					Layer:  rawLayer(layer),
				})
			})
		}
		out.Blocks = append(out.Blocks, rb)
	}

	keys := slices.Sorted(maps.Keys(referenced))
	if lister, ok := cs.Entities().(keyLister); ok {
		keys = lister.Keys()
	}
	for _, key := range keys {
		inst, ok := cs.Entities().Get(key)
		if !ok {
			continue
		}
		out.EntityMap[key] = &Entity{
			Type:       inst.Type,
			Mutability: string(inst.Mutability),
			Layer:      int(inst.Layer),
			Data:       maps.Clone(inst.Data),
		}
	}
	if out.Blocks == nil {
		out.Blocks = []Block{}
	}
	return out
}

func styleRanges(b *model.ContentBlock) []StyleRange {
	seen := make(map[string]bool)
	for _, c := range b.Characters() {
		for _, tag := range c.Style().Tags() {
			seen[tag] = true
		}
	}
	out := []StyleRange{}
	for _, style := range slices.Sorted(maps.Keys(seen)) {
		b.FindStyleRanges(style, func(start, end int) {
			out = append(out, StyleRange{Offset: start, Length: end - start, Style: style})
		})
	}
	return out
}

// rawLayer writes the first layer as 0 so single-layer documents carry no
// layer fields at all.
func rawLayer(layer model.EntityLayer) int {
	if layer.Normalize() == model.Layer1 {
		return 0
	}
	return int(layer)
}

// FromRaw builds a content state from r, interning metadata in pool.
// Ranges must fit inside their block text. Entity ranges may reference keys
// missing from the entity map.
func FromRaw(pool *model.Pool, r *ContentState) (*model.ContentState, error) {
	entities := make(map[string]*model.EntityInstance, len(r.EntityMap))
	for key, e := range r.EntityMap {
		if key == "" {
			return nil, drafterrors.NewValidation("entityMap", "entity key must not be empty")
		}
		if e == nil {
			return nil, &drafterrors.ValidationError{Field: "entityMap", Value: key, Message: "entity must not be null"}
		}
		mutability, err := model.ParseMutability(e.Mutability)
		if err != nil {
			return nil, drafterrors.Wrapf(err, "entity %s", key)
		}
		layer := model.EntityLayer(e.Layer)
		if !layer.Valid() {
			return nil, &drafterrors.ValidationError{Field: "layer", Value: key, Message: "entity layer out of range"}
		}
		entities[key] = &model.EntityInstance{
			Type:       e.Type,
			Mutability: mutability,
			Layer:      layer,
			Data:       maps.Clone(e.Data),
		}
	}

	blocks := make([]*model.ContentBlock, 0, len(r.Blocks))
	for _, rb := range r.Blocks {
		b, err := blockFromRaw(pool, rb)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	bm, err := model.NewBlockMap(blocks...)
	if err != nil {
		return nil, err
	}
	return model.NewContentState(bm, model.NewEntityMap(entities)), nil
}

func blockFromRaw(pool *model.Pool, rb Block) (*model.ContentBlock, error) {
	n := utf8.RuneCountInString(rb.Text)
	styles := make([][]string, n)
	configs := make([]model.MetadataConfig, n)

	for _, sr := range rb.InlineStyleRanges {
		if err := checkRange(rb.Key, sr.Offset, sr.Length, n); err != nil {
			return nil, err
		}
		for i := sr.Offset; i < sr.Offset+sr.Length; i++ {
			styles[i] = append(styles[i], sr.Style)
		}
	}
	for _, er := range rb.EntityRanges {
		if err := checkRange(rb.Key, er.Offset, er.Length, n); err != nil {
			return nil, err
		}
		layer := model.EntityLayer(er.Layer)
		if !layer.Valid() {
			return nil, &drafterrors.ValidationError{Field: "layer", Value: rb.Key, Message: "entity range layer out of range"}
		}
		for i := er.Offset; i < er.Offset+er.Length; i++ {
			configs[i] = configs[i].WithEntity(layer, er.Key)
		}
	}

	chars := make([]*model.CharacterMetadata, n)
	for i := range chars {
		cfg := configs[i]
		cfg.Style = model.NewStyleSet(styles[i]...)
		chars[i] = pool.Create(cfg)
	}
	return model.NewContentBlock(model.BlockConfig{
		Key:        rb.Key,
		Type:       rb.Type,
		Text:       rb.Text,
		Depth:      rb.Depth,
		Characters: chars,
		Data:       rb.Data,
	})
}

func checkRange(blockKey string, offset, length, blockLen int) error {
	if offset < 0 || length < 0 || offset+length > blockLen {
		return &drafterrors.RangeError{BlockKey: blockKey, Offset: offset, Length: length, BlockLen: blockLen}
	}
	return nil
}
