package model

import "sync"

// metadataKey is the canonical, comparable form of a MetadataConfig.
type metadataKey struct {
	style    string
	entities [NumLayers]string
}

// PoolStats contains pool statistics.
type PoolStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// Pool interns CharacterMetadata by value. It only grows: distinct
// style/entity combinations are few in practice, so nothing is evicted.
// A Pool is safe for concurrent use; insert-or-fetch is one critical
// section per call.
type Pool struct {
	mu      sync.Mutex
	entries map[metadataKey]*CharacterMetadata
	empty   *CharacterMetadata
	stats   PoolStats
}

// NewPool returns a pool holding only the empty record.
func NewPool() *Pool {
	empty := &CharacterMetadata{}
	return &Pool{
		entries: map[metadataKey]*CharacterMetadata{
			(MetadataConfig{}).key(): empty,
		},
		empty: empty,
	}
}

// Empty returns the record with no style and no entities.
func (p *Pool) Empty() *CharacterMetadata {
	return p.empty
}

// Create returns the pooled record equal to cfg, creating it on first use.
func (p *Pool) Create(cfg MetadataConfig) *CharacterMetadata {
	k := cfg.key()

	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.entries[k]; ok {
		p.stats.Hits++
		return existing
	}
	p.stats.Misses++
	rec := &CharacterMetadata{style: cfg.Style, entities: cfg.Entities}
	p.entries[k] = rec
	return rec
}

// ApplyStyle returns the pooled record equal to rec with style added.
func (p *Pool) ApplyStyle(rec *CharacterMetadata, style string) *CharacterMetadata {
	cfg := rec.Config()
	cfg.Style = cfg.Style.With(style)
	return p.Create(cfg)
}

// RemoveStyle returns the pooled record equal to rec with style removed.
func (p *Pool) RemoveStyle(rec *CharacterMetadata, style string) *CharacterMetadata {
	cfg := rec.Config()
	cfg.Style = cfg.Style.Without(style)
	return p.Create(cfg)
}

// ApplyEntity returns rec with the slot at layer set to entityKey.
// An entityKey of "" clears the slot. When the slot already holds
// entityKey, rec itself is returned and the pool is not consulted.
func (p *Pool) ApplyEntity(rec *CharacterMetadata, entityKey string, layer EntityLayer) *CharacterMetadata {
	if rec.Entity(layer) == entityKey {
		return rec
	}
	return p.Create(rec.Config().WithEntity(layer, entityKey))
}

// Len returns the number of interned records.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Stats returns pool statistics.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	s.Size = len(p.entries)
	return s
}
