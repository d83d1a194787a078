package commands

import (
	"context"

	"github.com/chmac/tag-summary/internal/domain"
	"github.com/chmac/tag-summary/internal/ports"
)

// SyncCommand refreshes the metadata cache for a vault
type SyncCommand struct {
	cache ports.MetadataCache
	Full  bool
}

// NewSyncCommand creates a new SyncCommand
func NewSyncCommand(cache ports.MetadataCache, full bool) *SyncCommand {
	return &SyncCommand{cache: cache, Full: full}
}

// Execute runs the sync. A full sync is forced when the cache schema or
// vault changed underneath it.
func (c *SyncCommand) Execute(ctx context.Context) (*domain.SyncStats, error) {
	if c.Full || c.cache.NeedsFullRebuild() {
		return c.cache.SyncFull()
	}
	return c.cache.SyncIncremental()
}
