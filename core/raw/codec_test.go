package raw

import (
	"errors"
	"testing"

	"github.com/TheWidlarzGroup/draft-js/core/model"
)

func TestFingerprint(t *testing.T) {
	pool := model.NewPool()
	cs := mustUnmarshal(t, pool, sampleJSON)

	fp, err := Fingerprint(cs)
	if err != nil {
		t.Fatalf("Fingerprint() failed: %v", err)
	}
	if len(fp) != 64 {
		t.Errorf("fingerprint length = %d, want 64", len(fp))
	}

	withSel, err := Fingerprint(cs.WithSelection(model.Collapsed("a", 3)))
	if err != nil {
		t.Fatal(err)
	}
	if withSel != fp {
		t.Error("selection should not affect the fingerprint")
	}

	other := mustUnmarshal(t, pool, `{"blocks":[{"key":"a","text":"Hello world"}]}`)
	otherFP, err := Fingerprint(other)
	if err != nil {
		t.Fatal(err)
	}
	if otherFP == fp {
		t.Error("different content produced the same fingerprint")
	}
}

func TestHashBytes(t *testing.T) {
	if HashBytes([]byte("a")) != HashBytes([]byte("a")) {
		t.Error("HashBytes() is not deterministic")
	}
	if HashBytes([]byte("a")) == HashBytes([]byte("b")) {
		t.Error("different data produced the same hash")
	}
}

func TestMarshalError(t *testing.T) {
	orig := jsonMarshal
	defer func() { jsonMarshal = orig }()
	jsonMarshal = func(any) ([]byte, error) { return nil, errors.New("boom") }

	cs := mustUnmarshal(t, model.NewPool(), `{"blocks":[]}`)
	if _, err := Marshal(cs); err == nil {
		t.Error("Marshal() should report marshal errors")
	}
	if _, err := Fingerprint(cs); err == nil {
		t.Error("Fingerprint() should report marshal errors")
	}
}
