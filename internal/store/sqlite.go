package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Catalog is a SQLite index of every commit written to the object store.
// It is derived data: the object store stays the source of truth and the
// catalog can be rebuilt from it.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog opens the catalog database and migrates its schema
func OpenCatalog(dbPath string) (*Catalog, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(1000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	return c.db.Close()
}
