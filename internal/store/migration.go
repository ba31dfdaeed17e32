package store

import (
	"database/sql"
	"errors"
	"fmt"
)

const currentCatalogVersion = 2

// migrate brings the catalog schema up to currentCatalogVersion
func (c *Catalog) migrate() error {
	version, err := c.schemaVersion()
	if err != nil {
		return err
	}
	if version > currentCatalogVersion {
		return fmt.Errorf("catalog schema version %d is newer than supported version %d", version, currentCatalogVersion)
	}

	if version < 1 {
		if err := c.migrateToV1(); err != nil {
			return fmt.Errorf("catalog migration to v1 failed: %w", err)
		}
	}

	if version < 2 {
		if err := c.migrateToV2(); err != nil {
			return fmt.Errorf("catalog migration to v2 failed: %w", err)
		}
	}

	return nil
}

// schemaVersion returns the applied schema version, 0 for a new catalog
func (c *Catalog) schemaVersion() (int, error) {
	var tableName string
	err := c.db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='catalog_schema_version'
	`).Scan(&tableName)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog schema version: %w", err)
	}

	var version int
	if err := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM catalog_schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read catalog schema version: %w", err)
	}
	return version, nil
}

// migrateToV1 creates the commits table
func (c *Catalog) migrateToV1() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS catalog_schema_version (
			version INTEGER PRIMARY KEY
		)`,

		`CREATE TABLE IF NOT EXISTS commits (
			id TEXT PRIMARY KEY,
			message TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			parent_id TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_commits_message ON commits(message)`,
	}

	for _, migration := range migrations {
		if _, err := c.db.Exec(migration); err != nil {
			return err
		}
	}

	_, err := c.db.Exec("INSERT OR REPLACE INTO catalog_schema_version (version) VALUES (?)", 1)
	return err
}

// migrateToV2 records the second parent of merge commits and indexes
// commits by time
func (c *Catalog) migrateToV2() error {
	exists, err := c.columnExists("commits", "merge_parent_id")
	if err != nil {
		return err
	}
	if !exists {
		if _, err := c.db.Exec(`ALTER TABLE commits ADD COLUMN merge_parent_id TEXT`); err != nil {
			return err
		}
	}

	if _, err := c.db.Exec(`CREATE INDEX IF NOT EXISTS idx_commits_timestamp ON commits(timestamp)`); err != nil {
		return err
	}

	_, err = c.db.Exec("INSERT OR REPLACE INTO catalog_schema_version (version) VALUES (?)", 2)
	return err
}

func (c *Catalog) columnExists(table, column string) (bool, error) {
	var count int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	return count > 0, nil
}
