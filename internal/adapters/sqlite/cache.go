package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chmac/tag-summary/internal/domain"
	"github.com/chmac/tag-summary/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Cache implements ports.MetadataCache using SQLite
type Cache struct {
	db        *sql.DB
	extractor ports.MetadataExtractor
	vaultPath string
	dbPath    string
}

// Ensure Cache implements MetadataCache
var _ ports.MetadataCache = (*Cache)(nil)

// NewCache creates a new SQLite metadata cache. The extractor is used
// during sync to rebuild metadata for changed files.
func NewCache(extractor ports.MetadataExtractor) *Cache {
	return &Cache{extractor: extractor}
}

// Open initializes the cache for the given vault path
func (c *Cache) Open(vaultPath string) error {
	// Expand ~ in path
	if len(vaultPath) > 0 && vaultPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		vaultPath = filepath.Join(home, vaultPath[1:])
	}

	c.vaultPath = vaultPath
	c.dbPath = databasePath(vaultPath)

	if err := os.MkdirAll(filepath.Dir(c.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// WAL mode for concurrent readers during a build
	db, err := sql.Open("sqlite", c.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS files (
			path TEXT PRIMARY KEY,
			mtime INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS tags (
			path TEXT NOT NULL,
			ord INTEGER NOT NULL,
			name TEXT NOT NULL,
			start_line INTEGER NOT NULL,
			end_line INTEGER NOT NULL,
			PRIMARY KEY (path, ord)
		);
		CREATE TABLE IF NOT EXISTS list_items (
			path TEXT NOT NULL,
			ord INTEGER NOT NULL,
			start_line INTEGER NOT NULL,
			end_line INTEGER NOT NULL,
			parent INTEGER,
			PRIMARY KEY (path, ord)
		);
		CREATE TABLE IF NOT EXISTS frontmatter_tags (
			path TEXT NOT NULL,
			ord INTEGER NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (path, ord)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_tags_name ON tags(name);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := c.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// NeedsFullRebuild returns true if the cache should be fully rebuilt
func (c *Cache) NeedsFullRebuild() bool {
	var version, vaultHash string

	c.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	c.db.QueryRow("SELECT value FROM meta WHERE key = 'vault_path_hash'").Scan(&vaultHash)

	return version != schemaVersion || vaultHash != hashVaultPath(c.vaultPath)
}

// Lookup returns the cached metadata for path at exactly mtime, or nil on a
// miss. A stored entry with a different mtime counts as a miss.
func (c *Cache) Lookup(path string, mtime int64) (*domain.FileMetadata, error) {
	var stored int64
	err := c.db.QueryRow(`SELECT mtime FROM files WHERE path = ?`, path).Scan(&stored)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if stored != mtime {
		return nil, nil
	}

	meta := &domain.FileMetadata{}

	rows, err := c.db.Query(`
		SELECT name, start_line, end_line
		FROM tags WHERE path = ? ORDER BY ord
	`, path)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var t domain.TagOccurrence
		if err := rows.Scan(&t.Name, &t.Start, &t.End); err != nil {
			rows.Close()
			return nil, err
		}
		meta.Tags = append(meta.Tags, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = c.db.Query(`
		SELECT start_line, end_line, parent
		FROM list_items WHERE path = ? ORDER BY ord
	`, path)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var it domain.ListItem
		var parent sql.NullInt64
		if err := rows.Scan(&it.Start, &it.End, &parent); err != nil {
			rows.Close()
			return nil, err
		}
		if parent.Valid {
			it.Parent = int(parent.Int64)
			it.HasParent = true
		}
		meta.Items = append(meta.Items, it)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = c.db.Query(`
		SELECT name FROM frontmatter_tags WHERE path = ? ORDER BY ord
	`, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		meta.FrontmatterTags = append(meta.FrontmatterTags, name)
	}

	return meta, rows.Err()
}

// BeginTx starts a new transaction
func (c *Cache) BeginTx() (ports.CacheTx, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return nil, err
	}
	return &cacheTx{tx: tx}, nil
}

// databasePath returns the path for the SQLite database
func databasePath(vaultPath string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	// Hash vault path for unique DB name
	hash := hashVaultPath(vaultPath)

	return filepath.Join(dataHome, "tagsum", hash+".db")
}

// hashVaultPath returns a short hash of the vault path
func hashVaultPath(vaultPath string) string {
	h := sha256.Sum256([]byte(vaultPath))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// updateMeta updates the schema version and vault path hash
func (c *Cache) updateMeta() error {
	if _, err := c.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		return err
	}
	_, err := c.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('vault_path_hash', ?)`, hashVaultPath(c.vaultPath))
	return err
}
