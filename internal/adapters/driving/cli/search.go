package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nautilus-labs/voxcart/internal/core/domain"
	"github.com/nautilus-labs/voxcart/internal/core/services"
)

var (
	searchTopK     int
	searchMinScore float64
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Query the knowledge index from the command line",
	Long: `Builds the index and runs one retrieval query. Useful for tuning the
corpus and settings without a dialogue engine attached.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "maximum number of passages (0 = configured default)")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", 0, "relevance floor (0 = configured default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := ingestService.Build(ctx); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	opts := domain.SearchOptions{
		TopK:     cfg.Retrieval.TopK,
		MinScore: cfg.Retrieval.MinScore,
	}
	if searchTopK > 0 {
		opts.TopK = searchTopK
	}
	if searchMinScore > 0 {
		opts.MinScore = searchMinScore
	}

	result, err := retrievalService.Search(ctx, args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), services.NewCitationFormatter().Format(result))
	return nil
}
