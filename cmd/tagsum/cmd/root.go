package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chmac/tag-summary/internal/adapters/markdown"
	"github.com/chmac/tag-summary/internal/adapters/sqlite"
	"github.com/chmac/tag-summary/internal/adapters/vault"
	"github.com/chmac/tag-summary/internal/config"
	"github.com/chmac/tag-summary/internal/ports"
)

var (
	vaultPath string
	verbose   bool
	noCache   bool

	cfg    config.Config
	store  ports.DocumentStore
	cache  ports.MetadataCache
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tagsum",
	Short: "Build tag-driven summaries from a markdown vault",
	Long: `tagsum scans a vault of markdown documents for tagged blocks and
aggregates the matching blocks into a single summary document.

Selectors pick blocks by tag: plain tags match any-of, a '+' prefix
requires the tag on every block, a '!' prefix excludes it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if vaultPath == "" {
			vaultPath = cfg.VaultPath()
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		extractor := markdown.NewExtractor()

		if !noCache {
			sqlCache := sqlite.NewCache(extractor)
			if err := sqlCache.Open(vaultPath); err != nil {
				logger.Warn("metadata cache unavailable, extracting live", "err", err)
			} else {
				cache = sqlCache
			}
		}

		store = vault.NewRepository(vaultPath, extractor, cache, logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cache != nil {
			cache.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultPath, "vault", "v", "", "path to the vault (default $TAGSUM_VAULT or config file)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable diagnostic logging")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "skip the metadata cache and extract live")
}
