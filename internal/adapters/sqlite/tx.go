package sqlite

import (
	"database/sql"

	"github.com/chmac/tag-summary/internal/domain"
	"github.com/chmac/tag-summary/internal/ports"
)

// cacheTx implements ports.CacheTx
type cacheTx struct {
	tx *sql.Tx
}

// Ensure cacheTx implements CacheTx
var _ ports.CacheTx = (*cacheTx)(nil)

// UpsertFile replaces the stored metadata for one file
func (t *cacheTx) UpsertFile(path string, mtime int64, meta *domain.FileMetadata) error {
	if err := t.deleteRows(path); err != nil {
		return err
	}

	if _, err := t.tx.Exec(`
		INSERT OR REPLACE INTO files (path, mtime) VALUES (?, ?)
	`, path, mtime); err != nil {
		return err
	}

	for ord, tag := range meta.Tags {
		if _, err := t.tx.Exec(`
			INSERT INTO tags (path, ord, name, start_line, end_line)
			VALUES (?, ?, ?, ?, ?)
		`, path, ord, tag.Name, tag.Start, tag.End); err != nil {
			return err
		}
	}

	for ord, item := range meta.Items {
		parent := sql.NullInt64{}
		if item.HasParent {
			parent = sql.NullInt64{Int64: int64(item.Parent), Valid: true}
		}
		if _, err := t.tx.Exec(`
			INSERT INTO list_items (path, ord, start_line, end_line, parent)
			VALUES (?, ?, ?, ?, ?)
		`, path, ord, item.Start, item.End, parent); err != nil {
			return err
		}
	}

	for ord, name := range meta.FrontmatterTags {
		if _, err := t.tx.Exec(`
			INSERT INTO frontmatter_tags (path, ord, name) VALUES (?, ?, ?)
		`, path, ord, name); err != nil {
			return err
		}
	}

	return nil
}

// DeleteFile removes a file and its metadata by path
func (t *cacheTx) DeleteFile(path string) error {
	if err := t.deleteRows(path); err != nil {
		return err
	}
	_, err := t.tx.Exec(`DELETE FROM files WHERE path = ?`, path)
	return err
}

func (t *cacheTx) deleteRows(path string) error {
	for _, stmt := range []string{
		`DELETE FROM tags WHERE path = ?`,
		`DELETE FROM list_items WHERE path = ?`,
		`DELETE FROM frontmatter_tags WHERE path = ?`,
	} {
		if _, err := t.tx.Exec(stmt, path); err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *cacheTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *cacheTx) Rollback() error {
	return t.tx.Rollback()
}
