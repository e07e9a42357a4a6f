package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var countBooksCmd = &cobra.Command{
	Use:   "count-books-with-words <word>",
	Short: "List books whose text contains a word",
	Args:  cobra.ExactArgs(1),
	RunE:  runCountBooks,
}

var searchBooksCmd = &cobra.Command{
	Use:     "search-books <word>",
	Short:   "List books by an author whose text contains a word",
	Example: `  folio search-books war -a Tolstoy`,
	Args:    cobra.ExactArgs(1),
	RunE:    runSearchBooks,
}

var searchDatesCmd = &cobra.Command{
	Use:   "search-dates <word>",
	Short: "List books from a year range whose text does not contain a word",
	Long: `Lists books published between --from-date and --until-date (both
inclusive) whose text does not contain the word.`,
	Example: `  folio search-dates war -f 1830 -u 1840`,
	Args:    cobra.ExactArgs(1),
	RunE:    runSearchDates,
}

var calcDateCmd = &cobra.Command{
	Use:     "calc-date",
	Short:   "Print the average publication year of an author",
	Example: `  folio calc-date -a Tolstoy`,
	Args:    cobra.NoArgs,
	RunE:    runCalcDate,
}

func init() {
	rootCmd.AddCommand(countBooksCmd)
	rootCmd.AddCommand(searchBooksCmd)
	rootCmd.AddCommand(searchDatesCmd)
	rootCmd.AddCommand(calcDateCmd)
}

var errCatalogNotConfigured = errors.New("catalog service not configured")

func runCountBooks(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errCatalogNotConfigured
	}

	books, err := catalogService.BooksWithWord(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	printBooks(cmd.OutOrStdout(), books, "Not found for this word")
	return nil
}

func runSearchBooks(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errCatalogNotConfigured
	}
	if err := requireFlag("author", flagAuthor); err != nil {
		return err
	}

	books, err := catalogService.BooksByAuthorWithWord(cmd.Context(), flagAuthor, args[0])
	if err != nil {
		return err
	}
	printBooks(cmd.OutOrStdout(), books, "Not found for this word and author")
	return nil
}

func runSearchDates(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errCatalogNotConfigured
	}
	from, err := parseYearFlag("from-date", flagFrom)
	if err != nil {
		return err
	}
	until, err := parseYearFlag("until-date", flagUntil)
	if err != nil {
		return err
	}

	books, err := catalogService.BooksInRangeWithoutWord(cmd.Context(), from, until, args[0])
	if err != nil {
		return err
	}
	printBooks(cmd.OutOrStdout(), books, "Not found for this word and date range")
	return nil
}

func runCalcDate(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errCatalogNotConfigured
	}
	if err := requireFlag("author", flagAuthor); err != nil {
		return err
	}

	year, ok, err := catalogService.AverageYear(cmd.Context(), flagAuthor)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Not found for this author")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), year)
	return nil
}
