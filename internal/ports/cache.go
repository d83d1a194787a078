package ports

import "github.com/chmac/tag-summary/internal/domain"

// MetadataCache provides cached access to per-file structural metadata.
// Lookups are keyed by path and modification time, so a stale entry is
// indistinguishable from a miss.
type MetadataCache interface {
	// Lifecycle
	Open(vaultPath string) error
	Close() error

	// Sync operations
	NeedsFullRebuild() bool
	SyncIncremental() (*domain.SyncStats, error)
	SyncFull() (*domain.SyncStats, error)

	// Lookup returns the cached metadata for path at exactly mtime, or nil
	// on a miss.
	Lookup(path string, mtime int64) (*domain.FileMetadata, error)

	// BeginTx starts a batch update.
	BeginTx() (CacheTx, error)
}

// CacheTx represents a transaction for atomic cache updates.
type CacheTx interface {
	UpsertFile(path string, mtime int64, meta *domain.FileMetadata) error
	DeleteFile(path string) error

	Commit() error
	Rollback() error
}
