package markup

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
	"github.com/TheWidlarzGroup/draft-js/core/model"
)

const formatName = "XML"

var (
	rootQuery   = xpath.MustCompile("/document")
	entityQuery = xpath.MustCompile("/document/entities/entity")
	dataQuery   = xpath.MustCompile("data")
	blockQuery  = xpath.MustCompile("/document/block")
)

// Import parses an XML document into a content state, interning metadata
// in pool.
func Import(pool *model.Pool, data []byte) (*model.ContentState, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, drafterrors.NewParse(formatName, "", err.Error(), err)
	}
	if xmlquery.QuerySelector(doc, rootQuery) == nil {
		return nil, drafterrors.NewParse(formatName, "", "missing <document> root element", nil)
	}

	entities := make(map[string]*model.EntityInstance)
	for _, n := range xmlquery.QuerySelectorAll(doc, entityQuery) {
		key, inst, err := importEntity(n)
		if err != nil {
			return nil, err
		}
		if _, dup := entities[key]; dup {
			return nil, drafterrors.NewDuplicate("entity", key)
		}
		entities[key] = inst
	}

	var blocks []*model.ContentBlock
	for _, n := range xmlquery.QuerySelectorAll(doc, blockQuery) {
		b, err := importBlock(pool, n)
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

func importEntity(n *xmlquery.Node) (string, *model.EntityInstance, error) {
	key := n.SelectAttr("key")
	if key == "" {
		return "", nil, drafterrors.NewValidation("entity", "key attribute is required")
	}
	mutability, err := model.ParseMutability(n.SelectAttr("mutability"))
	if err != nil {
		return "", nil, drafterrors.Wrapf(err, "entity %s", key)
	}
	layer, err := layerAttr(n, key)
	if err != nil {
		return "", nil, err
	}
	inst := &model.EntityInstance{
		Type:       n.SelectAttr("type"),
		Mutability: mutability,
		Layer:      layer,
	}
	for _, d := range xmlquery.QuerySelectorAll(n, dataQuery) {
		if inst.Data == nil {
			inst.Data = make(map[string]any)
		}
		inst.Data[d.SelectAttr("name")] = d.InnerText()
	}
	return key, inst, nil
}

func layerAttr(n *xmlquery.Node, owner string) (model.EntityLayer, error) {
	v := n.SelectAttr("layer")
	if v == "" {
		return model.LayerDefault, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || !model.EntityLayer(i).Valid() {
		return 0, &drafterrors.ValidationError{Field: "layer", Value: owner, Message: "invalid layer " + strconv.Quote(v)}
	}
	return model.EntityLayer(i), nil
}

// blockReader accumulates text and per-character metadata while walking
// the element tree of one block.
type blockReader struct {
	key     string
	text    []byte
	configs []model.MetadataConfig
	styles  []string
	current model.MetadataConfig
}

func importBlock(pool *model.Pool, n *xmlquery.Node) (*model.ContentBlock, error) {
	r := &blockReader{key: n.SelectAttr("key")}
	depth := 0
	if v := n.SelectAttr("depth"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil {
			return nil, &drafterrors.ValidationError{Field: "depth", Value: r.key, Message: "invalid depth " + strconv.Quote(v)}
		}
		depth = d
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := r.walk(c); err != nil {
			return nil, err
		}
	}

	chars := make([]*model.CharacterMetadata, len(r.configs))
	for i, cfg := range r.configs {
		chars[i] = pool.Create(cfg)
	}
	return model.NewContentBlock(model.BlockConfig{
		Key:        r.key,
		Type:       n.SelectAttr("type"),
		Text:       string(r.text),
		Depth:      depth,
		Characters: chars,
	})
}

func (r *blockReader) walk(n *xmlquery.Node) error {
	switch n.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		r.text = append(r.text, n.Data...)
		cfg := r.current
		cfg.Style = model.NewStyleSet(r.styles...)
		for range utf8.RuneCountInString(n.Data) {
			r.configs = append(r.configs, cfg)
		}
		return nil
	case xmlquery.ElementNode:
	default:
		// Comments and processing instructions carry no text.
		return nil
	}

	saved := r.current
	savedStyles := len(r.styles)
	switch n.Data {
	case "style":
		name := n.SelectAttr("name")
		if name == "" {
			return &drafterrors.ValidationError{Field: "style", Value: r.key, Message: "name attribute is required"}
		}
		r.styles = append(r.styles, name)
	case "entity":
		key := n.SelectAttr("key")
		if key == "" {
			return &drafterrors.ValidationError{Field: "entity", Value: r.key, Message: "key attribute is required"}
		}
		layer, err := layerAttr(n, r.key)
		if err != nil {
			return err
		}
		r.current = r.current.WithEntity(layer, key)
	default:
		return drafterrors.NewUnsupported("element", "<"+n.Data+"> inside block "+r.key)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := r.walk(c); err != nil {
			return err
		}
	}
	r.current = saved
	r.styles = r.styles[:savedStyles]
	return nil
}
