package raw

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
	"github.com/TheWidlarzGroup/draft-js/core/model"
)

// jsonMarshal is a variable to allow testing of marshal errors.
var jsonMarshal = json.Marshal

// Marshal encodes cs as raw JSON. The output is canonical: map keys are
// sorted and ranges are emitted in a fixed order.
func Marshal(cs *model.ContentState) ([]byte, error) {
	data, err := jsonMarshal(ToRaw(cs))
	if err != nil {
		return nil, drafterrors.Wrap(err, "marshal raw content")
	}
	return data, nil
}

// Unmarshal decodes raw JSON into a content state interning metadata in pool.
func Unmarshal(pool *model.Pool, data []byte) (*model.ContentState, error) {
	var r ContentState
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, drafterrors.NewParse("raw JSON", "", err.Error(), err)
	}
	return FromRaw(pool, &r)
}

// Fingerprint returns the hex BLAKE3-256 digest of the canonical raw JSON
// of cs. Content states that differ only in selection share a fingerprint.
func Fingerprint(cs *model.ContentState) (string, error) {
	data, err := Marshal(cs)
	if err != nil {
		return "", err
	}
	return HashBytes(data), nil
}

// HashBytes returns the hex BLAKE3-256 digest of data.
func HashBytes(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
