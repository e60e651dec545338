package model

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
)

// selectionGrammar is the participle grammar for selection expressions.
// Examples: "b:2", "a:3..c:3", "c:3..a:0" (backward)
//
//nolint:govet // participle grammar tags are not standard struct tags
type selectionGrammar struct {
	Anchor *positionPart `parser:"@@"`
	Focus  *positionPart `parser:"( \"..\" @@ )?"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type positionPart struct {
	Key    string `parser:"@(Ident | Int)"`
	Offset int    `parser:"\":\" @Int"`
}

// selectionLexer defines the lexer for selection expressions.
// Block keys may start with digits but must contain a letter or underscore
// unless they are purely numeric.
var selectionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[0-9]*[A-Za-z_][A-Za-z0-9_\-]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `\.\.|:`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var selectionParser = participle.MustBuild[selectionGrammar](
	participle.Lexer(selectionLexer),
	participle.Elide("Whitespace"),
)

// ParseSelection parses "key:offset" (a cursor) or
// "anchorKey:offset..focusKey:offset" (a range from anchor to focus).
func ParseSelection(s string) (SelectionState, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SelectionState{}, drafterrors.NewParse("selection", s, "empty selection expression", nil)
	}

	parsed, err := selectionParser.ParseString("", s)
	if err != nil {
		return SelectionState{}, drafterrors.NewParse("selection", s, "expected key:offset or key:offset..key:offset", err)
	}

	sel := Collapsed(parsed.Anchor.Key, parsed.Anchor.Offset)
	if parsed.Focus != nil {
		sel.FocusKey = parsed.Focus.Key
		sel.FocusOffset = parsed.Focus.Offset
	}
	return sel, nil
}
