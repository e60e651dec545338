// Package encoding provides the XML escaping used by markup export.
package encoding

import (
	"strings"
	"unicode/utf8"
)

// Carriage returns are escaped in element content too, since parsers
// normalize a literal CR or CRLF to a single newline.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\r", "&#xD;",
)

// Attribute values also escape quotes and whitespace control characters,
// which an XML parser would otherwise normalize to spaces.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"\n", "&#xA;",
	"\r", "&#xD;",
	"\t", "&#x9;",
)

// EscapeXMLText escapes the basic XML entities and carriage returns for
// element content. Quotes and newlines are left alone.
func EscapeXMLText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeXMLAttr escapes s for use in a double-quoted attribute value.
func EscapeXMLAttr(s string) string {
	return attrEscaper.Replace(s)
}

// IsXMLChar reports whether r may appear in an XML 1.0 document.
func IsXMLChar(r rune) bool {
	switch {
	case r == 0x9 || r == 0xA || r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// InvalidXMLChar returns the rune offset of the first character of s that
// cannot be represented in XML 1.0, or -1 if there is none. Invalid UTF-8
// counts as unrepresentable.
func InvalidXMLChar(s string) int {
	i := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if (r == utf8.RuneError && size == 1) || !IsXMLChar(r) {
			return i
		}
		s = s[size:]
		i++
	}
	return -1
}
