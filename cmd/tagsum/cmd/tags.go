package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chmac/tag-summary/internal/application/commands"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag in the vault",
	Long: `List every tag found in the vault with the number of documents
carrying it, most frequent first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tagsCommand := commands.NewListTagsCommand(store)
		counts, err := tagsCommand.Execute(context.Background())
		if err != nil {
			return err
		}

		if len(counts) == 0 {
			fmt.Println("No tags found")
			return nil
		}

		for _, tc := range counts {
			fmt.Printf("%5d  %s\n", tc.Count, tc.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
