package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chmac/tag-summary/internal/application/commands"
)

var syncFull bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the metadata cache",
	Long: `Refresh the structural metadata cache for the vault. By default only
files changed since the last sync are re-indexed; --full rebuilds the
cache from scratch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cache == nil {
			return fmt.Errorf("metadata cache is disabled")
		}

		syncCommand := commands.NewSyncCommand(cache, syncFull)
		stats, err := syncCommand.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Scanned %d files: %d added, %d updated, %d deleted (%s)\n",
			stats.FilesScanned, stats.FilesAdded, stats.FilesUpdated,
			stats.FilesDeleted, stats.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncFull, "full", false, "rebuild the cache from scratch")
	rootCmd.AddCommand(syncCmd)
}
