package transaction

import (
	"io"
	"log/slog"
	"testing"

	"github.com/TheWidlarzGroup/draft-js/core/model"
)

func newTestTransactor(pool *model.Pool) *Transactor {
	return NewTransactor(pool, Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func mustBlock(t *testing.T, pool *model.Pool, key, text string) *model.ContentBlock {
	t.Helper()
	b, err := model.NewPlainBlock(pool, key, text)
	if err != nil {
		t.Fatalf("NewPlainBlock(%q) failed: %v", key, err)
	}
	return b
}

func mustContent(t *testing.T, entities *model.EntityMap, blocks ...*model.ContentBlock) *model.ContentState {
	t.Helper()
	bm, err := model.NewBlockMap(blocks...)
	if err != nil {
		t.Fatalf("NewBlockMap() failed: %v", err)
	}
	return model.NewContentState(bm, entities)
}

func block(t *testing.T, cs *model.ContentState, key string) *model.ContentBlock {
	t.Helper()
	b, ok := cs.BlockForKey(key)
	if !ok {
		t.Fatalf("block %q missing", key)
	}
	return b
}

// entityKeys lists the entity key of every character of b at layer.
func entityKeys(b *model.ContentBlock, layer model.EntityLayer) []string {
	keys := make([]string, b.Length())
	for i := range keys {
		keys[i] = b.EntityAt(i, layer)
	}
	return keys
}

func repeat(key string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = key
	}
	return out
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func assertKeys(t *testing.T, b *model.ContentBlock, layer model.EntityLayer, want []string) {
	t.Helper()
	got := entityKeys(b, layer)
	if len(got) != len(want) {
		t.Fatalf("block %s %s: %d characters, want %d", b.Key(), layer, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %s %s = %q, want %q", b.Key(), layer, got, want)
			return
		}
	}
}
