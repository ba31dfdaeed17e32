package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kilupskalvis/gitlet/internal/models"
)

// CatalogEntry is one row of the commit catalog
type CatalogEntry struct {
	ID            string
	Message       string
	Timestamp     time.Time
	ParentID      string
	MergeParentID string
}

// Record inserts a commit. Recording the same commit twice is a no-op.
func (c *Catalog) Record(commit *models.Commit) error {
	_, err := c.db.Exec(`
		INSERT OR IGNORE INTO commits (id, message, timestamp, parent_id, merge_parent_id)
		VALUES (?, ?, ?, ?, ?)`,
		commit.ID, commit.Message, commit.Timestamp.UnixNano(),
		nullString(commit.Parent(0)), nullString(commit.Parent(1)),
	)
	if err != nil {
		return fmt.Errorf("record commit %s: %w", commit.ID, err)
	}
	return nil
}

// FindByMessage returns the IDs of commits whose message is exactly message,
// oldest first.
func (c *Catalog) FindByMessage(message string) ([]string, error) {
	rows, err := c.db.Query(`
		SELECT id FROM commits
		WHERE message = ?
		ORDER BY timestamp ASC, id ASC`, message)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ResolvePrefix returns the commit IDs starting with prefix. At most limit
// IDs are returned when limit is positive.
func (c *Catalog) ResolvePrefix(prefix string, limit int) ([]string, error) {
	if !models.IsHexID(prefix) {
		return nil, nil
	}

	query := `SELECT id FROM commits WHERE id LIKE ? ORDER BY id`
	args := []any{prefix + "%"}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetEntry retrieves a catalog entry by ID. Returns (nil, nil) if not found.
func (c *Catalog) GetEntry(id string) (*CatalogEntry, error) {
	var entry CatalogEntry
	var ts int64
	var parentID, mergeParentID sql.NullString

	err := c.db.QueryRow(`
		SELECT id, message, timestamp, parent_id, merge_parent_id
		FROM commits WHERE id = ?`, id).Scan(
		&entry.ID, &entry.Message, &ts, &parentID, &mergeParentID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entry.Timestamp = time.Unix(0, ts).UTC()
	if parentID.Valid {
		entry.ParentID = parentID.String
	}
	if mergeParentID.Valid {
		entry.MergeParentID = mergeParentID.String
	}
	return &entry, nil
}

// Count returns the number of recorded commits
func (c *Catalog) Count() (int, error) {
	var n int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM commits`).Scan(&n)
	return n, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
