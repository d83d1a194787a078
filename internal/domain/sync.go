package domain

import "time"

// SyncStats holds statistics from a metadata cache sync.
type SyncStats struct {
	FilesScanned int
	FilesAdded   int
	FilesUpdated int
	FilesDeleted int
	Duration     time.Duration
}
