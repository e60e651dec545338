package model

import (
	"sync"
	"testing"
)

func TestPoolCreateIdentity(t *testing.T) {
	pool := NewPool()

	a := pool.Create(MetadataConfig{Style: NewStyleSet("BOLD", "ITALIC"), Entities: [NumLayers]string{"1", ""}})
	b := pool.Create(MetadataConfig{Style: NewStyleSet("ITALIC", "BOLD"), Entities: [NumLayers]string{"1", ""}})
	if a != b {
		t.Errorf("Create() with equal config returned different instances: %p vs %p", a, b)
	}

	c := pool.Create(MetadataConfig{Style: NewStyleSet("BOLD")})
	if a == c {
		t.Error("Create() with different config returned the same instance")
	}
}

func TestPoolCreateDefaultsToEmpty(t *testing.T) {
	pool := NewPool()
	if got := pool.Create(MetadataConfig{}); got != pool.Empty() {
		t.Errorf("Create(zero) = %v, want the empty record", got)
	}
	if got := pool.Create(MetadataConfig{Style: NewStyleSet()}); got != pool.Empty() {
		t.Errorf("Create(empty style) = %v, want the empty record", got)
	}
	if pool.Len() != 1 {
		t.Errorf("Len() = %d, want 1", pool.Len())
	}
}

func TestPoolApplyStyleIdempotent(t *testing.T) {
	pool := NewPool()
	bold := pool.ApplyStyle(pool.Empty(), "BOLD")

	if !bold.HasStyle("BOLD") {
		t.Fatal("ApplyStyle() did not add BOLD")
	}
	if again := pool.ApplyStyle(bold, "BOLD"); again != bold {
		t.Error("ApplyStyle() of an existing tag should return the same instance")
	}
	if got := pool.RemoveStyle(bold, "BOLD"); got != pool.Empty() {
		t.Errorf("RemoveStyle() = %v, want empty record", got)
	}
	if got := pool.RemoveStyle(bold, "ITALIC"); got != bold {
		t.Error("RemoveStyle() of an absent tag should return the same instance")
	}
}

func TestPoolApplyEntity(t *testing.T) {
	pool := NewPool()
	rec := pool.ApplyEntity(pool.Empty(), "7", Layer2)

	if got := rec.Entity(Layer2); got != "7" {
		t.Errorf("Entity(Layer2) = %q, want 7", got)
	}
	if got := rec.Entity(Layer1); got != "" {
		t.Errorf("Entity(Layer1) = %q, want empty", got)
	}

	before := pool.Stats()
	if same := pool.ApplyEntity(rec, "7", Layer2); same != rec {
		t.Error("ApplyEntity() no-op should return the record itself")
	}
	if after := pool.Stats(); after.Hits != before.Hits || after.Misses != before.Misses {
		t.Errorf("no-op ApplyEntity() consulted the pool: %+v -> %+v", before, after)
	}

	if cleared := pool.ApplyEntity(rec, "", Layer2); cleared != pool.Empty() {
		t.Errorf("clearing the only entity = %v, want empty record", cleared)
	}
}

func TestPoolApplyEntityDefaultLayer(t *testing.T) {
	pool := NewPool()
	viaDefault := pool.ApplyEntity(pool.Empty(), "k", LayerDefault)
	viaLayer1 := pool.ApplyEntity(pool.Empty(), "k", Layer1)
	if viaDefault != viaLayer1 {
		t.Error("LayerDefault and Layer1 should address the same slot")
	}
	if viaDefault.Entity(Layer2) != "" {
		t.Error("LayerDefault must not touch the second slot")
	}
}

func TestPoolLayersAreIndependent(t *testing.T) {
	pool := NewPool()
	both := pool.ApplyEntity(pool.ApplyEntity(pool.Empty(), "link", Layer1), "mention", Layer2)
	if both.Entity(Layer1) != "link" || both.Entity(Layer2) != "mention" {
		t.Errorf("record = %v, want link at layer1 and mention at layer2", both)
	}
	onlySecond := pool.ApplyEntity(both, "", Layer1)
	if onlySecond.Entity(Layer2) != "mention" {
		t.Error("clearing layer1 should keep layer2")
	}
}

func TestPoolStats(t *testing.T) {
	pool := NewPool()
	pool.Create(MetadataConfig{Style: NewStyleSet("BOLD")})
	pool.Create(MetadataConfig{Style: NewStyleSet("BOLD")})

	stats := pool.Stats()
	if stats.Misses != 1 || stats.Hits != 1 || stats.Size != 2 {
		t.Errorf("Stats() = %+v, want 1 miss, 1 hit, size 2", stats)
	}
}

func TestPoolConcurrentCreate(t *testing.T) {
	pool := NewPool()
	const workers = 16
	results := make([]*CharacterMetadata, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = pool.Create(MetadataConfig{
				Style:    NewStyleSet("CODE", "BOLD"),
				Entities: [NumLayers]string{"", "m1"},
			})
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatalf("worker %d got a different instance", i)
		}
	}
	if pool.Len() != 2 {
		t.Errorf("Len() = %d, want 2", pool.Len())
	}
}

func TestInvalidLayerPanics(t *testing.T) {
	pool := NewPool()
	for _, layer := range []EntityLayer{-1, 3} {
		t.Run(layer.String(), func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Entity(%d) did not panic", int(layer))
				}
			}()
			pool.Empty().Entity(layer)
		})
	}
}

func TestEntityLayer(t *testing.T) {
	tests := []struct {
		layer EntityLayer
		valid bool
		slot  int
		name  string
	}{
		{LayerDefault, true, 0, "layer1"},
		{Layer1, true, 0, "layer1"},
		{Layer2, true, 1, "layer2"},
	}
	for _, tt := range tests {
		if tt.layer.Valid() != tt.valid {
			t.Errorf("%d.Valid() = %v", int(tt.layer), !tt.valid)
		}
		if got := tt.layer.Slot(); got != tt.slot {
			t.Errorf("%d.Slot() = %d, want %d", int(tt.layer), got, tt.slot)
		}
		if got := tt.layer.String(); got != tt.name {
			t.Errorf("%d.String() = %q, want %q", int(tt.layer), got, tt.name)
		}
	}
	if EntityLayer(3).Valid() {
		t.Error("layer 3 should be invalid")
	}
}

func TestCharacterMetadataString(t *testing.T) {
	pool := NewPool()
	rec := pool.Create(MetadataConfig{Style: NewStyleSet("BOLD"), Entities: [NumLayers]string{"", "9"}})
	if got, want := rec.String(), "{style=[BOLD] layer2=9}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
