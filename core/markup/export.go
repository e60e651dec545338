package markup

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/TheWidlarzGroup/draft-js/core/encoding"
	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
	"github.com/TheWidlarzGroup/draft-js/core/model"
	"github.com/TheWidlarzGroup/draft-js/core/raw"
)

// Export writes cs as an XML document. Each run of identical metadata is
// written as its own nest of style and entity elements, so Import(Export(cs))
// reproduces every character record.
func Export(cs *model.ContentState) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("<document>\n")

	if err := writeEntities(&buf, raw.ToRaw(cs).EntityMap); err != nil {
		return nil, err
	}
	for _, b := range cs.BlockMap().Blocks() {
		if err := writeBlock(&buf, b); err != nil {
			return nil, err
		}
	}

	buf.WriteString("</document>\n")
	return buf.Bytes(), nil
}

func writeEntities(buf *bytes.Buffer, entities map[string]*raw.Entity) error {
	if len(entities) == 0 {
		return nil
	}
	buf.WriteString("  <entities>\n")
	for _, key := range slices.Sorted(maps.Keys(entities)) {
		e := entities[key]
		fmt.Fprintf(buf, `    <entity key="%s" type="%s" mutability="%s"`,
			encoding.EscapeXMLAttr(key), encoding.EscapeXMLAttr(e.Type), encoding.EscapeXMLAttr(e.Mutability))
		if e.Layer != 0 {
			fmt.Fprintf(buf, ` layer="%d"`, e.Layer)
		}
		if len(e.Data) == 0 {
			buf.WriteString("/>\n")
			continue
		}
		buf.WriteString(">\n")
		for _, name := range slices.Sorted(maps.Keys(e.Data)) {
			value := fmt.Sprint(e.Data[name])
			if pos := encoding.InvalidXMLChar(value); pos >= 0 {
				return &drafterrors.ValidationError{Field: "data", Value: key, Message: "value not representable in XML"}
			}
			fmt.Fprintf(buf, `      <data name="%s">%s</data>`+"\n",
				encoding.EscapeXMLAttr(name), encoding.EscapeXMLText(value))
		}
		buf.WriteString("    </entity>\n")
	}
	buf.WriteString("  </entities>\n")
	return nil
}

func writeBlock(buf *bytes.Buffer, b *model.ContentBlock) error {
	if pos := encoding.InvalidXMLChar(b.Text()); pos >= 0 {
		return &drafterrors.ValidationError{
			Field:   "text",
			Value:   b.Key(),
			Message: "character at offset " + strconv.Itoa(pos) + " not representable in XML",
		}
	}

	fmt.Fprintf(buf, `  <block key="%s" type="%s"`, encoding.EscapeXMLAttr(b.Key()), encoding.EscapeXMLAttr(b.Type()))
	if b.Depth() != 0 {
		fmt.Fprintf(buf, ` depth="%d"`, b.Depth())
	}
	buf.WriteString(">")

	text := []rune(b.Text())
	chars := b.Characters()
	for start := 0; start < len(chars); {
		end := start + 1
		for end < len(chars) && chars[end] == chars[start] {
			end++
		}
		writeRun(buf, chars[start], string(text[start:end]))
		start = end
	}

	buf.WriteString("</block>\n")
	return nil
}

func writeRun(buf *bytes.Buffer, c *model.CharacterMetadata, text string) {
	var closers []string
	for _, tag := range c.Style().Tags() {
		fmt.Fprintf(buf, `<style name="%s">`, encoding.EscapeXMLAttr(tag))
		closers = append(closers, "</style>")
	}
	for _, layer := range model.Layers {
		key := c.Entity(layer)
		if key == "" {
			continue
		}
		if layer == model.Layer1 {
			fmt.Fprintf(buf, `<entity key="%s">`, encoding.EscapeXMLAttr(key))
		} else {
			fmt.Fprintf(buf, `<entity key="%s" layer="%d">`, encoding.EscapeXMLAttr(key), int(layer))
		}
		closers = append(closers, "</entity>")
	}
	buf.WriteString(encoding.EscapeXMLText(text))
	for i := len(closers) - 1; i >= 0; i-- {
		buf.WriteString(closers[i])
	}
}
