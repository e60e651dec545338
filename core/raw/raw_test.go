package raw

import (
	"errors"
	"strings"
	"testing"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
	"github.com/TheWidlarzGroup/draft-js/core/model"
)

const sampleJSON = `{
  "blocks": [
    {
      "key": "a",
      "text": "Hello world",
      "type": "unstyled",
      "depth": 0,
      "inlineStyleRanges": [{"offset": 0, "length": 5, "style": "BOLD"}],
      "entityRanges": [
        {"offset": 6, "length": 5, "key": "link"},
        {"offset": 0, "length": 11, "key": "note", "layer": 2}
      ]
    },
    {
      "key": "b",
      "text": "Grüße",
      "type": "header-one",
      "depth": 0,
      "inlineStyleRanges": [{"offset": 2, "length": 3, "style": "ITALIC"}],
      "entityRanges": []
    }
  ],
  "entityMap": {
    "link": {"type": "LINK", "mutability": "MUTABLE", "data": {"url": "https://example.com"}},
    "note": {"type": "COMMENT", "mutability": "IMMUTABLE", "layer": 2}
  }
}`

func mustUnmarshal(t *testing.T, pool *model.Pool, data string) *model.ContentState {
	t.Helper()
	cs, err := Unmarshal(pool, []byte(data))
	if err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	return cs
}

func TestUnmarshal(t *testing.T) {
	pool := model.NewPool()
	cs := mustUnmarshal(t, pool, sampleJSON)

	a, ok := cs.BlockForKey("a")
	if !ok {
		t.Fatal("block a missing")
	}
	if got := a.EntityAt(7, model.Layer1); got != "link" {
		t.Errorf("EntityAt(7, layer1) = %q, want link", got)
	}
	if got := a.EntityAt(5, model.Layer1); got != "" {
		t.Errorf("EntityAt(5, layer1) = %q, want empty", got)
	}
	if got := a.EntityAt(0, model.Layer2); got != "note" {
		t.Errorf("EntityAt(0, layer2) = %q, want note", got)
	}
	if !a.CharacterAt(4).HasStyle("BOLD") || a.CharacterAt(5).HasStyle("BOLD") {
		t.Error("BOLD range not applied to [0,5)")
	}
	if a.CharacterAt(1) != a.CharacterAt(2) {
		t.Error("equal characters should share one pooled record")
	}

	b, _ := cs.BlockForKey("b")
	if b.Length() != 5 {
		t.Errorf("block b length = %d, want 5 runes", b.Length())
	}
	if b.Type() != "header-one" {
		t.Errorf("block b type = %q", b.Type())
	}
	if !b.CharacterAt(4).HasStyle("ITALIC") {
		t.Error("ITALIC should reach the last rune")
	}

	inst, ok := cs.Entities().Get("link")
	if !ok || inst.Mutability != model.Mutable || inst.Data["url"] != "https://example.com" {
		t.Errorf("entity link = %+v", inst)
	}
	note, _ := cs.Entities().Get("note")
	if note.Layer != model.Layer2 || note.Mutability != model.Immutable {
		t.Errorf("entity note = %+v", note)
	}
}

func TestRoundTrip(t *testing.T) {
	pool := model.NewPool()
	cs := mustUnmarshal(t, pool, sampleJSON)

	data, err := Marshal(cs)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	again := mustUnmarshal(t, pool, string(data))
	for _, key := range cs.BlockMap().Keys() {
		x, _ := cs.BlockForKey(key)
		y, _ := again.BlockForKey(key)
		if x.Text() != y.Text() || x.Type() != y.Type() {
			t.Errorf("block %s header differs after round trip", key)
		}
		for i := 0; i < x.Length(); i++ {
			if x.CharacterAt(i) != y.CharacterAt(i) {
				t.Errorf("block %s character %d differs after round trip", key, i)
			}
		}
	}

	data2, err := Marshal(again)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != string(data2) {
		t.Errorf("Marshal() is not stable:\n%s\n%s", data, data2)
	}
}

func TestToRawRanges(t *testing.T) {
	pool := model.NewPool()
	cs := mustUnmarshal(t, pool, sampleJSON)
	r := ToRaw(cs)

	if len(r.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(r.Blocks))
	}
	want := []EntityRange{
		{Offset: 6, Length: 5, Key: "link"},
		{Offset: 0, Length: 11, Key: "note", Layer: 2},
	}
	got := r.Blocks[0].EntityRanges
	if len(got) != len(want) {
		t.Fatalf("entity ranges = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entity range %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if len(r.Blocks[1].EntityRanges) != 0 || r.Blocks[1].EntityRanges == nil {
		t.Error("block without entities should carry an empty, non-nil range list")
	}
	if len(r.EntityMap) != 2 {
		t.Errorf("entity map = %v", r.EntityMap)
	}
}

func TestToRawReferencedOnly(t *testing.T) {
	pool := model.NewPool()
	b, err := model.NewPlainBlock(pool, "a", "xy")
	if err != nil {
		t.Fatal(err)
	}
	b = b.WithCharacters([]*model.CharacterMetadata{
		pool.Create(model.MetadataConfig{}.WithEntity(model.Layer1, "k")),
		pool.Empty(),
	})
	bm, _ := model.NewBlockMap(b)
	cs := model.NewContentState(bm, lookupFunc(func(key string) (*model.EntityInstance, bool) {
		if key == "k" {
			return &model.EntityInstance{Type: "LINK", Mutability: model.Mutable}, true
		}
		return nil, false
	}))

	r := ToRaw(cs)
	if len(r.EntityMap) != 1 || r.EntityMap["k"] == nil {
		t.Errorf("entity map = %v, want only k", r.EntityMap)
	}
}

type lookupFunc func(key string) (*model.EntityInstance, bool)

func (f lookupFunc) Get(key string) (*model.EntityInstance, bool) { return f(key) }

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		base error
		want string
	}{
		{"malformed", `{"blocks": [`, drafterrors.ErrInvalidInput, "failed to parse raw JSON"},
		{"style past end", `{"blocks":[{"key":"a","text":"abc","inlineStyleRanges":[{"offset":2,"length":2,"style":"BOLD"}]}]}`, drafterrors.ErrInvalidInput, "range [2,4) outside block a of length 3"},
		{"negative offset", `{"blocks":[{"key":"a","text":"abc","entityRanges":[{"offset":-1,"length":1,"key":"k"}]}]}`, drafterrors.ErrInvalidInput, "outside block a"},
		{"bad layer", `{"blocks":[{"key":"a","text":"abc","entityRanges":[{"offset":0,"length":1,"key":"k","layer":3}]}]}`, drafterrors.ErrInvalidInput, "layer"},
		{"bad mutability", `{"blocks":[],"entityMap":{"k":{"type":"LINK","mutability":"FROZEN"}}}`, drafterrors.ErrInvalidInput, "mutability"},
		{"duplicate block", `{"blocks":[{"key":"a","text":""},{"key":"a","text":""}]}`, drafterrors.ErrAlreadyExists, "duplicate block: a"},
		{"empty block key", `{"blocks":[{"key":"","text":"x"}]}`, drafterrors.ErrInvalidInput, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(model.NewPool(), []byte(tt.json))
			if err == nil {
				t.Fatal("Unmarshal() succeeded, want error")
			}
			if !errors.Is(err, tt.base) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.base)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestUnmarshalDanglingEntity(t *testing.T) {
	cs := mustUnmarshal(t, model.NewPool(), `{"blocks":[{"key":"a","text":"abc","entityRanges":[{"offset":0,"length":3,"key":"ghost"}]}]}`)
	b, _ := cs.BlockForKey("a")
	if b.EntityAt(1, model.Layer1) != "ghost" {
		t.Error("dangling entity reference should be kept")
	}
	if _, ok := cs.Entities().Get("ghost"); ok {
		t.Error("ghost should not be registered")
	}
}
