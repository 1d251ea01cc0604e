package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the knowledge index and report statistics",
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	if err := ingestService.Build(cmd.Context()); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	docs, chunks, builtAt := retrievalService.IndexStats()
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d documents into %d chunks at %s\n",
		docs, chunks, builtAt.Format("15:04:05"))
	return nil
}
