package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// errIngestFailures marks an add-books run in which at least one file failed.
var errIngestFailures = errors.New("some files could not be ingested")

var addBookCmd = &cobra.Command{
	Use:   "add-book <file>",
	Short: "Add one book file",
	Long: `Adds a single plain-text file under an explicit identity given by
--name, --author and --year. A book with the same identity is not added twice.`,
	Example: `  folio add-book ./war.txt -n "War and Peace" -a "Leo Tolstoy" -y 1869`,
	Args:    cobra.ExactArgs(1),
	RunE:    runAddBook,
}

var addBooksCmd = &cobra.Command{
	Use:   "add-books <directory>",
	Short: "Add every book file in a directory",
	Long: `Adds every file in a directory whose name follows
"<title> - <author> - <year>.<ext>". Files with other names are skipped,
books already in the index are skipped, and unreadable files are reported
without stopping the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddBooks,
}

func init() {
	rootCmd.AddCommand(addBookCmd)
	rootCmd.AddCommand(addBooksCmd)
}

func runAddBook(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if err := requireFlag("name", flagName); err != nil {
		return err
	}
	if err := requireFlag("author", flagAuthor); err != nil {
		return err
	}
	year, err := parseYearFlag("year", flagYear)
	if err != nil {
		return err
	}

	identity := domain.BookIdentity{Title: flagName, Author: flagAuthor, Year: year}
	outcome, err := ingestService.IngestOne(cmd.Context(), args[0], identity)
	if err != nil {
		return fmt.Errorf("add %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	switch outcome.Kind {
	case domain.OutcomeStored:
		fmt.Fprintf(out, "Added %s.\n", identity)
	case domain.OutcomeSkippedDuplicate:
		fmt.Fprintf(out, "Book already exists: %s\n", identity)
	}
	return nil
}

func runAddBooks(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	outcomes, err := ingestService.IngestDirectory(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	printOutcomes(cmd.OutOrStdout(), outcomes)
	if domain.Tally(outcomes).Failed > 0 {
		return errIngestFailures
	}
	return nil
}
