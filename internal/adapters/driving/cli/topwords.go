package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
)

var topWordsLimit int

var topWordsCmd = &cobra.Command{
	Use:   "top-words",
	Short: "Show the most frequent words in books from one year",
	Long: `Sums per-book term frequencies over every book published in --year
and prints the most frequent words. Stop words are not counted.`,
	Example: `  folio top-words -y 1869
  folio top-words -y 1869 -k 20`,
	Args: cobra.NoArgs,
	RunE: runTopWords,
}

func init() {
	topWordsCmd.Flags().IntVarP(&topWordsLimit, "limit", "k", 0, "number of words (default from config, 10)")
	rootCmd.AddCommand(topWordsCmd)
}

func runTopWords(cmd *cobra.Command, _ []string) error {
	if topWordsService == nil {
		return errors.New("top-words service not configured")
	}
	year, err := parseYearFlag("year", flagYear)
	if err != nil {
		return err
	}

	k := topWordsLimit
	if k == 0 {
		k = settings.Report.TopK
	}

	counts, err := topWordsService.TopWords(cmd.Context(), year, k)
	var partial *domain.PartialAggregationError
	if errors.As(err, &partial) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Term vectors failed for: %s\n", strings.Join(partial.FailedIDs(), ", "))
		return err
	}
	if err != nil {
		return err
	}

	printTopWords(cmd.OutOrStdout(), year, counts)
	return nil
}
