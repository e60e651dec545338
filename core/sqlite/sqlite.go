// Package sqlite opens SQLite databases through one of two drivers:
//
//   - Default: pure Go modernc.org/sqlite, no cgo required
//   - Tag cgo_sqlite (CGO_ENABLED=1 -tags cgo_sqlite): mattn/go-sqlite3
//
// Use Open instead of sql.Open so the compiled-in driver is picked.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// MemoryPath is the data source name of a private in-memory database.
const MemoryPath = ":memory:"

// DriverName returns the database/sql driver name in use.
func DriverName() string {
	return driverName
}

// DriverType returns "cgo" for mattn/go-sqlite3 and "purego" for
// modernc.org/sqlite.
func DriverType() string {
	return driverType
}

// IsCGO returns true if the CGO implementation is being used.
func IsCGO() bool {
	return driverType == "cgo"
}

// Open opens a SQLite database using the compiled-in driver.
func Open(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if dataSourceName == MemoryPath {
		// Every new connection to :memory: is a different database.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// OpenReadOnly opens a SQLite database in read-only mode.
func OpenReadOnly(path string) (*sql.DB, error) {
	return Open("file:" + path + "?mode=ro")
}

// pragmas are applied by Configure. Both drivers accept them as plain
// statements, unlike their driver specific DSN parameters.
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

// Configure enables foreign keys and a busy timeout on db and checks the
// connection. With more than one open connection only the connection that
// ran the statements is configured, so callers that rely on the pragmas
// keep a single connection.
func Configure(ctx context.Context, db *sql.DB) error {
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}
	return db.PingContext(ctx)
}

// Info contains information about the SQLite driver configuration.
type Info struct {
	DriverName string `json:"driver_name"`
	DriverType string `json:"driver_type"`
	IsCGO      bool   `json:"is_cgo"`
	Package    string `json:"package"`
}

// GetInfo returns information about the current SQLite configuration.
func GetInfo() Info {
	return Info{
		DriverName: driverName,
		DriverType: driverType,
		IsCGO:      IsCGO(),
		Package:    driverPackage,
	}
}
