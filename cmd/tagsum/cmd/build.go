package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/chmac/tag-summary/internal/application"
	"github.com/chmac/tag-summary/internal/application/commands"
	"github.com/chmac/tag-summary/internal/domain"
)

var (
	buildAny  []string
	buildAll  []string
	buildNone []string

	buildOut       string
	buildClipboard bool
	buildWorkers   int

	noChildren    bool
	noLink        bool
	withCallout   bool
	stripTags     bool
	listParagraph bool
)

var buildCmd = &cobra.Command{
	Use:   "build [selectors...]",
	Short: "Build a summary from tag selectors",
	Long: `Build a summary of all blocks matching the given tag selectors.

Selectors can be given as positional tokens or through flags. Positional
tokens use '+' for all-of and '!' for none-of; the '#' prefix is optional.

Examples:
  tagsum build '#book'
  tagsum build book +favourite '!archived'
  tagsum build --any book --any article --none archived --clipboard`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := domain.ParseSelectors(strings.Join(args, " "))
		for _, t := range buildAny {
			if tag := domain.NormalizeTag(t); tag != "" {
				sel.Any = append(sel.Any, tag)
			}
		}
		for _, t := range buildAll {
			if tag := domain.NormalizeTag(t); tag != "" {
				sel.All = append(sel.All, tag)
			}
		}
		for _, t := range buildNone {
			if tag := domain.NormalizeTag(t); tag != "" {
				sel.None = append(sel.None, tag)
			}
		}
		if len(sel.Any) == 0 && len(sel.All) == 0 {
			return application.ErrEmptySelectors
		}

		opts := cfg.Options()
		if cmd.Flags().Changed("no-children") {
			opts.IncludeChildren = !noChildren
		}
		if cmd.Flags().Changed("no-link") {
			opts.IncludeLink = !noLink
		}
		if cmd.Flags().Changed("callout") {
			opts.IncludeCallout = withCallout
		}
		if cmd.Flags().Changed("remove-tags") {
			opts.RemoveTags = stripTags
		}
		if cmd.Flags().Changed("list-paragraph") {
			opts.ListParagraph = listParagraph
		}

		buildCommand := commands.NewBuildSummaryCommand(store, logger, sel, opts)
		buildCommand.Workers = buildWorkers

		summary, err := buildCommand.Execute(context.Background())
		if err != nil {
			return err
		}

		if buildClipboard {
			if err := clipboard.WriteAll(summary); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			fmt.Println("Summary copied to clipboard")
			return nil
		}
		if buildOut != "" {
			if err := os.WriteFile(buildOut, []byte(summary), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", buildOut, err)
			}
			fmt.Printf("Summary written to %s\n", buildOut)
			return nil
		}
		fmt.Println(summary)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringSliceVar(&buildAny, "any", nil, "include blocks carrying any of these tags")
	buildCmd.Flags().StringSliceVar(&buildAll, "all", nil, "require every one of these tags on a block")
	buildCmd.Flags().StringSliceVar(&buildNone, "none", nil, "exclude blocks carrying any of these tags")

	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "write the summary to a file instead of stdout")
	buildCmd.Flags().BoolVarP(&buildClipboard, "clipboard", "c", false, "copy the summary to the clipboard")
	buildCmd.Flags().IntVar(&buildWorkers, "workers", 0, "number of concurrent document workers (0 = default)")

	buildCmd.Flags().BoolVar(&noChildren, "no-children", false, "do not expand list items to their subtree")
	buildCmd.Flags().BoolVar(&noLink, "no-link", false, "omit source links from the output")
	buildCmd.Flags().BoolVar(&withCallout, "callout", false, "wrap each match in a callout block")
	buildCmd.Flags().BoolVar(&stripTags, "remove-tags", false, "strip tag tokens from match text")
	buildCmd.Flags().BoolVar(&listParagraph, "list-paragraph", false, "convert list bullets to paragraphs")

	rootCmd.AddCommand(buildCmd)
}
