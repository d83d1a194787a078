// Package mcp exposes summary building over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/chmac/tag-summary/internal/application/commands"
	"github.com/chmac/tag-summary/internal/domain"
	"github.com/chmac/tag-summary/internal/ports"
)

// RegisterTools adds all summary tools to the MCP server.
func RegisterTools(s *server.MCPServer, store ports.DocumentStore, opts domain.Options, log *slog.Logger) {
	s.AddTool(buildSummaryTool(), buildSummaryHandler(store, opts, log))
	s.AddTool(listTagsTool(), listTagsHandler(store))
}

// RegisterSyncTool adds the cache sync tool. Separate because the cache is
// optional.
func RegisterSyncTool(s *server.MCPServer, cache ports.MetadataCache) {
	s.AddTool(syncTool(), syncHandler(cache))
}

// --- build_summary ---

func buildSummaryTool() mcp.Tool {
	return mcp.NewTool("build_summary",
		mcp.WithDescription("Build a summary of all tagged blocks matching the given selectors. Returns markdown with a provenance link per block."),
		mcp.WithString("any",
			mcp.Description("Comma-separated tags; a block matches when it carries at least one (e.g. \"#book, #article\")."),
			mcp.Required(),
		),
		mcp.WithString("all",
			mcp.Description("Comma-separated tags every block must carry."),
		),
		mcp.WithString("none",
			mcp.Description("Comma-separated tags that exclude a block."),
		),
	)
}

func buildSummaryHandler(store ports.DocumentStore, opts domain.Options, log *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sel := domain.Selectors{
			Any:  splitTags(req.GetString("any", "")),
			All:  splitTags(req.GetString("all", "")),
			None: splitTags(req.GetString("none", "")),
		}
		if len(sel.Any) == 0 && len(sel.All) == 0 {
			return toolError(fmt.Errorf("at least one 'any' or 'all' tag is required"))
		}

		buildCommand := commands.NewBuildSummaryCommand(store, log, sel, opts)
		summary, err := buildCommand.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(summary), nil
	}
}

// --- list_tags ---

func listTagsTool() mcp.Tool {
	return mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag in the vault with the number of documents carrying it."),
	)
}

func listTagsHandler(store ports.DocumentStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tagsCommand := commands.NewListTagsCommand(store)
		counts, err := tagsCommand.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(counts) == 0 {
			return mcp.NewToolResultText("No tags found."), nil
		}

		var sb strings.Builder
		for _, tc := range counts {
			fmt.Fprintf(&sb, "%s  %d\n", tc.Name, tc.Count)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- sync ---

func syncTool() mcp.Tool {
	return mcp.NewTool("sync",
		mcp.WithDescription("Refresh the vault's structural metadata cache."),
		mcp.WithBoolean("full",
			mcp.Description("Rebuild the cache from scratch instead of incrementally."),
		),
	)
}

func syncHandler(cache ports.MetadataCache) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		syncCommand := commands.NewSyncCommand(cache, req.GetBool("full", false))
		stats, err := syncCommand.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"Scanned %d files: %d added, %d updated, %d deleted",
			stats.FilesScanned, stats.FilesAdded, stats.FilesUpdated, stats.FilesDeleted,
		)), nil
	}
}

func splitTags(input string) []string {
	var tags []string
	for _, field := range strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' }) {
		if tag := domain.NormalizeTag(field); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
