package transaction

import (
	"fmt"
	"log/slog"

	"github.com/TheWidlarzGroup/draft-js/core/model"
	"github.com/TheWidlarzGroup/draft-js/internal/logging"
)

// BlockApplier applies entityKey at layer to the characters [start, end) of
// one block. It must be pure: the result differs from block only inside
// the range, and it may return block itself when nothing changed.
type BlockApplier func(block *model.ContentBlock, start, end int, entityKey string, layer model.EntityLayer) *model.ContentBlock

// Config contains transactor configuration options.
type Config struct {
	// Logger receives debug logs for each transaction. Defaults to the
	// global logger.
	Logger *slog.Logger

	// BlockApplier replaces the per-block entity primitive. Defaults to
	// ApplyEntityToBlock on the transactor's pool.
	BlockApplier BlockApplier
}

// DefaultConfig returns a default transactor configuration.
func DefaultConfig() Config {
	return Config{}
}

// Transactor runs transactions against one metadata pool.
type Transactor struct {
	pool       *model.Pool
	applyBlock BlockApplier
	logger     *slog.Logger
}

// NewTransactor creates a transactor interning metadata in pool.
func NewTransactor(pool *model.Pool, config Config) *Transactor {
	t := &Transactor{
		pool:       pool,
		applyBlock: config.BlockApplier,
		logger:     config.Logger,
	}
	if t.applyBlock == nil {
		t.applyBlock = func(block *model.ContentBlock, start, end int, entityKey string, layer model.EntityLayer) *model.ContentBlock {
			return ApplyEntityToBlock(pool, block, start, end, entityKey, layer)
		}
	}
	if t.logger == nil {
		t.logger = logging.GetLogger()
	}
	return t
}

// Pool returns the pool the transactor interns metadata in.
func (t *Transactor) Pool() *model.Pool {
	return t.pool
}

func mustValidLayer(layer model.EntityLayer) {
	if !layer.Valid() {
		panic(fmt.Sprintf("transaction: invalid entity layer %d", int(layer)))
	}
}
