package store

import (
	"strings"
	"unicode"
	"unicode/utf8"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
)

// MaxDocumentIDLength is the maximum document id length in bytes.
const MaxDocumentIDLength = 255

// ValidateDocumentID checks that id can name a document. Ids are free form
// UTF-8 without control characters, and may not start with a hyphen so they
// are never mistaken for command line flags.
func ValidateDocumentID(id string) error {
	invalid := func(msg string) error {
		return &drafterrors.ValidationError{Field: "document_id", Value: id, Message: msg}
	}
	switch {
	case id == "":
		return invalid("must not be empty")
	case len(id) > MaxDocumentIDLength:
		return invalid("too long")
	case !utf8.ValidString(id):
		return invalid("must be valid UTF-8")
	case strings.HasPrefix(id, "-"):
		return invalid("must not start with a hyphen")
	case strings.IndexFunc(id, unicode.IsControl) >= 0:
		return invalid("control character not allowed")
	}
	return nil
}
