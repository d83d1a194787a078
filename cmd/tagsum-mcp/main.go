package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/chmac/tag-summary/internal/adapters/markdown"
	mcpadapter "github.com/chmac/tag-summary/internal/adapters/mcp"
	"github.com/chmac/tag-summary/internal/adapters/sqlite"
	"github.com/chmac/tag-summary/internal/adapters/vault"
	"github.com/chmac/tag-summary/internal/config"
	"github.com/chmac/tag-summary/internal/ports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("tagsum-mcp: %v", err)
	}

	vaultFlag := flag.String("vault", cfg.VaultPath(), "path to the vault")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	extractor := markdown.NewExtractor()

	var cache ports.MetadataCache
	sqlCache := sqlite.NewCache(extractor)
	if err := sqlCache.Open(*vaultFlag); err != nil {
		logger.Warn("metadata cache unavailable, extracting live", "err", err)
	} else {
		cache = sqlCache
		defer sqlCache.Close()
	}

	store := vault.NewRepository(*vaultFlag, extractor, cache, logger)

	mcpServer := server.NewMCPServer(
		"tagsum-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, store, cfg.Options(), logger)
	if cache != nil {
		mcpadapter.RegisterSyncTool(mcpServer, cache)
	}

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("tagsum-mcp: %v", err)
	}
}
