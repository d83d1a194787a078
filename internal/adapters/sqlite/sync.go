package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chmac/tag-summary/internal/domain"
)

// SyncFull performs a complete rebuild of the cache
func (c *Cache) SyncFull() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	// Clear existing data
	for _, stmt := range []string{
		`DELETE FROM files`, `DELETE FROM tags`,
		`DELETE FROM list_items`, `DELETE FROM frontmatter_tags`,
	} {
		if _, err := c.db.Exec(stmt); err != nil {
			return nil, err
		}
	}

	err := c.walkVault(func(relPath string, mtime int64) error {
		if err := c.extractAndStore(relPath, mtime); err != nil {
			return nil // Continue on error
		}
		stats.FilesAdded++
		return nil
	}, &stats.FilesScanned)
	if err != nil {
		return stats, err
	}

	if err := c.updateMeta(); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// SyncIncremental updates only files whose mtime changed since they were
// stored, and drops entries for files that no longer exist.
func (c *Cache) SyncIncremental() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	// Snapshot stored mtimes to detect changes and deletions
	stored := make(map[string]int64)
	rows, err := c.db.Query(`SELECT path, mtime FROM files`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var path string
		var mtime int64
		rows.Scan(&path, &mtime)
		stored[path] = mtime
	}
	rows.Close()

	seen := make(map[string]bool)

	err = c.walkVault(func(relPath string, mtime int64) error {
		seen[relPath] = true

		prev, known := stored[relPath]
		if known && prev == mtime {
			return nil
		}

		if err := c.extractAndStore(relPath, mtime); err != nil {
			return nil // Continue on error
		}
		if known {
			stats.FilesUpdated++
		} else {
			stats.FilesAdded++
		}
		return nil
	}, &stats.FilesScanned)
	if err != nil {
		return stats, err
	}

	// Delete files that no longer exist
	for path := range stored {
		if !seen[path] {
			tx, err := c.BeginTx()
			if err != nil {
				continue
			}
			if err := tx.DeleteFile(path); err != nil {
				tx.Rollback()
				continue
			}
			if tx.Commit() == nil {
				stats.FilesDeleted++
			}
		}
	}

	stats.Duration = time.Since(start)
	return stats, nil
}

// walkVault visits every markdown file under the vault root, skipping
// hidden directories.
func (c *Cache) walkVault(visit func(relPath string, mtime int64) error, scanned *int) error {
	return filepath.Walk(c.vaultPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && path != c.vaultPath {
			return filepath.SkipDir
		}
		if info.IsDir() || !strings.HasSuffix(strings.ToLower(info.Name()), ".md") {
			return nil
		}

		relPath, err := filepath.Rel(c.vaultPath, path)
		if err != nil {
			return nil
		}
		*scanned++
		return visit(filepath.ToSlash(relPath), info.ModTime().Unix())
	})
}

// extractAndStore rebuilds the metadata of one file and stores it.
func (c *Cache) extractAndStore(relPath string, mtime int64) error {
	content, err := os.ReadFile(filepath.Join(c.vaultPath, filepath.FromSlash(relPath)))
	if err != nil {
		return err
	}

	meta, err := c.extractor.Extract(content)
	if err != nil {
		return err
	}

	tx, err := c.BeginTx()
	if err != nil {
		return err
	}
	if err := tx.UpsertFile(relPath, mtime, meta); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
