package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmac/tag-summary/internal/adapters/markdown"
	"github.com/chmac/tag-summary/internal/adapters/sqlite"
	"github.com/chmac/tag-summary/internal/adapters/tui"
	"github.com/chmac/tag-summary/internal/adapters/vault"
	"github.com/chmac/tag-summary/internal/config"
	"github.com/chmac/tag-summary/internal/ports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Keep diagnostics off the alternate screen
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	extractor := markdown.NewExtractor()

	var cache ports.MetadataCache
	sqlCache := sqlite.NewCache(extractor)
	if err := sqlCache.Open(cfg.VaultPath()); err == nil {
		cache = sqlCache
		defer sqlCache.Close()
	}

	store := vault.NewRepository(cfg.VaultPath(), extractor, cache, logger)

	app := tui.NewApp(store, logger, cfg.Options())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
