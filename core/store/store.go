// Package store keeps revision histories of documents in SQLite.
//
// Every Save of a document whose content changed appends a revision. The
// payload is the canonical raw JSON of the content state, compressed with
// the configured codec and addressed by its BLAKE3 fingerprint, so saving
// unchanged content is a no-op. Decoded content states are cached by
// fingerprint.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/TheWidlarzGroup/draft-js/core/cache"
	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
	"github.com/TheWidlarzGroup/draft-js/core/model"
	"github.com/TheWidlarzGroup/draft-js/core/raw"
	"github.com/TheWidlarzGroup/draft-js/core/sqlite"
	"github.com/TheWidlarzGroup/draft-js/internal/logging"
)

// Injectable for tests.
var (
	newRevisionID = uuid.NewString
	now           = time.Now
	sqliteOpen    = sqlite.Open
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS revisions (
	id          TEXT PRIMARY KEY,
	document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	number      INTEGER NOT NULL,
	hash        TEXT NOT NULL,
	compression TEXT NOT NULL,
	size        INTEGER NOT NULL,
	payload     BLOB NOT NULL,
	created_at  INTEGER NOT NULL,
	UNIQUE (document_id, number)
);
CREATE INDEX IF NOT EXISTS revisions_hash ON revisions (hash);
`

// Config contains store configuration options.
type Config struct {
	// Path is the database file, or sqlite.MemoryPath.
	Path string

	// Compression is applied to new payloads. Existing revisions keep the
	// codec they were written with.
	Compression Compression

	// CacheSize is the number of decoded content states kept in memory
	// (0 disables caching).
	CacheSize int

	// CacheTTL bounds how long a decoded content state stays cached
	// (0 = until evicted).
	CacheTTL time.Duration
}

// DefaultConfig returns a default store configuration for path.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Compression: CompressionXZ,
		CacheSize:   64,
		CacheTTL:    10 * time.Minute,
	}
}

// Revision describes one stored version of a document.
type Revision struct {
	ID          string      `json:"id"`
	DocumentID  string      `json:"document_id"`
	Number      int         `json:"number"`
	Hash        string      `json:"hash"`
	Compression Compression `json:"compression"`
	Size        int         `json:"size"`
	StoredSize  int         `json:"stored_size"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Store is a revisioned document store. It is safe for concurrent use.
type Store struct {
	db          *sql.DB
	pool        *model.Pool
	compression Compression
	decoded     *cache.LRU[string, *model.ContentState]
}

// Open opens or creates the store described by config. Loaded content
// states intern their metadata in pool.
func Open(ctx context.Context, pool *model.Pool, config Config) (*Store, error) {
	if config.Path == "" {
		return nil, drafterrors.NewValidation("path", "store path must not be empty")
	}
	if config.Compression == "" {
		config.Compression = CompressionXZ
	}
	if _, err := ParseCompression(string(config.Compression)); err != nil {
		return nil, err
	}

	db, err := sqliteOpen(config.Path)
	if err != nil {
		return nil, drafterrors.NewIO("open", config.Path, err)
	}
	// One connection keeps the pragmas and serializes writers.
	db.SetMaxOpenConns(1)
	if err := sqlite.Configure(ctx, db); err != nil {
		db.Close()
		return nil, drafterrors.NewIO("open", config.Path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, drafterrors.NewIO("migrate", config.Path, err)
	}

	s := &Store{db: db, pool: pool, compression: config.Compression}
	if config.CacheSize > 0 {
		s.decoded = cache.New(cache.Config[string, *model.ContentState]{
			MaxSize: config.CacheSize,
			TTL:     config.CacheTTL,
			OnEvict: func(hash string, _ *model.ContentState) {
				logging.Debug("decode cache evict", "hash", hash)
			},
		})
	}
	return s, nil
}

// Close drops the decode cache and closes the underlying database.
func (s *Store) Close() error {
	if s.decoded != nil {
		s.decoded.Clear()
	}
	return s.db.Close()
}

// CacheStats returns statistics of the decode cache.
func (s *Store) CacheStats() cache.Stats {
	if s.decoded == nil {
		return cache.Stats{}
	}
	return s.decoded.Stats()
}

// Save stores cs as the next revision of documentID. When the content is
// identical to the latest revision, that revision is returned and created
// is false.
func (s *Store) Save(ctx context.Context, documentID string, cs *model.ContentState) (rev Revision, created bool, err error) {
	if err := ValidateDocumentID(documentID); err != nil {
		return Revision{}, false, err
	}
	data, err := raw.Marshal(cs)
	if err != nil {
		return Revision{}, false, err
	}
	hash := raw.HashBytes(data)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Revision{}, false, drafterrors.NewIO("save", documentID, err)
	}
	defer tx.Rollback()

	latest, err := scanRevision(tx.QueryRowContext(ctx,
		selectRevision+` WHERE document_id = ? ORDER BY number DESC LIMIT 1`, documentID))
	switch {
	case err == nil && latest.Hash == hash:
		logging.StoreEvent(ctx, "save_unchanged", documentID, "revision", latest.Number)
		return latest, false, nil
	case err != nil && !drafterrors.Is(err, sql.ErrNoRows):
		return Revision{}, false, drafterrors.NewIO("save", documentID, err)
	}

	payload, err := compress(s.compression, data)
	if err != nil {
		return Revision{}, false, err
	}
	ts := now().UTC()
	rev = Revision{
		ID:          newRevisionID(),
		DocumentID:  documentID,
		Number:      latest.Number + 1,
		Hash:        hash,
		Compression: s.compression,
		Size:        len(data),
		StoredSize:  len(payload),
		CreatedAt:   ts,
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO documents (id, created_at) VALUES (?, ?)`,
		documentID, ts.UnixNano()); err != nil {
		return Revision{}, false, drafterrors.NewIO("save", documentID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO revisions (id, document_id, number, hash, compression, size, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rev.ID, rev.DocumentID, rev.Number, rev.Hash, string(rev.Compression), rev.Size, payload, ts.UnixNano()); err != nil {
		return Revision{}, false, drafterrors.NewIO("save", documentID, err)
	}
	if err := tx.Commit(); err != nil {
		return Revision{}, false, drafterrors.NewIO("save", documentID, err)
	}

	logging.StoreEvent(ctx, "save", documentID,
		"revision", rev.Number, "hash", rev.Hash, "size", rev.Size, "stored_size", rev.StoredSize)
	return rev, true, nil
}

// Load returns the latest revision of documentID.
func (s *Store) Load(ctx context.Context, documentID string) (*model.ContentState, Revision, error) {
	return s.load(ctx, documentID,
		`WHERE document_id = ? ORDER BY number DESC LIMIT 1`, documentID)
}

// LoadRevision returns the revision with the given id.
func (s *Store) LoadRevision(ctx context.Context, revisionID string) (*model.ContentState, Revision, error) {
	return s.load(ctx, revisionID, `WHERE id = ?`, revisionID)
}

// LoadNumber returns revision number n of documentID, counting from 1.
func (s *Store) LoadNumber(ctx context.Context, documentID string, n int) (*model.ContentState, Revision, error) {
	return s.load(ctx, documentID,
		`WHERE document_id = ? AND number = ?`, documentID, n)
}

func (s *Store) load(ctx context.Context, id, where string, args ...any) (*model.ContentState, Revision, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+revisionColumns+`, payload FROM revisions `+where, args...)
	var payload []byte
	rev, err := scanRevision(row, &payload)
	if drafterrors.Is(err, sql.ErrNoRows) {
		return nil, Revision{}, drafterrors.NewNotFound("revision", id)
	}
	if err != nil {
		return nil, Revision{}, drafterrors.NewIO("load", id, err)
	}

	decode := func() (*model.ContentState, error) {
		data, err := decompress(rev.Compression, payload)
		if err != nil {
			return nil, drafterrors.NewIO("load", rev.ID, err)
		}
		if got := raw.HashBytes(data); got != rev.Hash {
			return nil, drafterrors.NewIO("load", rev.ID,
				drafterrors.Wrapf(drafterrors.ErrInternal, "payload hash %s does not match %s", got, rev.Hash))
		}
		return raw.Unmarshal(s.pool, data)
	}

	var cs *model.ContentState
	if s.decoded != nil {
		cs, err = s.decoded.GetOrLoad(rev.Hash, decode)
	} else {
		cs, err = decode()
	}
	if err != nil {
		return nil, Revision{}, err
	}
	logging.StoreEvent(ctx, "load", rev.DocumentID, "revision", rev.Number)
	return cs, rev, nil
}

// History returns every revision of documentID, oldest first.
func (s *Store) History(ctx context.Context, documentID string) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx,
		selectRevision+` WHERE document_id = ? ORDER BY number`, documentID)
	if err != nil {
		return nil, drafterrors.NewIO("history", documentID, err)
	}
	defer rows.Close()

	var revs []Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, drafterrors.NewIO("history", documentID, err)
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, drafterrors.NewIO("history", documentID, err)
	}
	if len(revs) == 0 {
		return nil, drafterrors.NewNotFound("document", documentID)
	}
	return revs, nil
}

// Documents returns the ids of all stored documents in sorted order.
func (s *Store) Documents(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM documents ORDER BY id`)
	if err != nil {
		return nil, drafterrors.NewIO("list", "", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, drafterrors.NewIO("list", "", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, drafterrors.NewIO("list", "", err)
	}
	return ids, nil
}

// Delete removes documentID and all its revisions.
func (s *Store) Delete(ctx context.Context, documentID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return drafterrors.NewIO("delete", documentID, err)
	}
	defer tx.Rollback()

	hashes, err := revisionHashes(ctx, tx, documentID)
	if err != nil {
		return drafterrors.NewIO("delete", documentID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM revisions WHERE document_id = ?`, documentID); err != nil {
		return drafterrors.NewIO("delete", documentID, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, documentID)
	if err != nil {
		return drafterrors.NewIO("delete", documentID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return drafterrors.NewNotFound("document", documentID)
	}
	if err := tx.Commit(); err != nil {
		return drafterrors.NewIO("delete", documentID, err)
	}
	if s.decoded != nil {
		// Another document may share a hash; it is decoded again on its next load.
		for _, h := range hashes {
			s.decoded.Remove(h)
		}
	}
	logging.StoreEvent(ctx, "delete", documentID, "revisions", len(hashes))
	return nil
}

func revisionHashes(ctx context.Context, tx *sql.Tx, documentID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT DISTINCT hash FROM revisions WHERE document_id = ?`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		hashes = append(hashes, h)
	}
	return hashes, rows.Err()
}

const revisionColumns = `id, document_id, number, hash, compression, size, length(payload), created_at`

const selectRevision = `SELECT ` + revisionColumns + ` FROM revisions`

type scanner interface {
	Scan(dest ...any) error
}

// scanRevision reads revisionColumns followed by any extra destinations.
func scanRevision(row scanner, extra ...any) (Revision, error) {
	var (
		rev         Revision
		compression string
		createdAt   int64
	)
	dest := append([]any{
		&rev.ID, &rev.DocumentID, &rev.Number, &rev.Hash,
		&compression, &rev.Size, &rev.StoredSize, &createdAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return Revision{}, err
	}
	rev.Compression = Compression(compression)
	rev.CreatedAt = time.Unix(0, createdAt).UTC()
	return rev, nil
}
