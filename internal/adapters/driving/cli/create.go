package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the book index",
	Long: `Creates the index with the book mapping: title and author as standard
text, year_publication as a year, and the body text with lowercase and
stop-word filtering. An existing index is left untouched.`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	created, err := indexService.Create(cmd.Context())
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Index '%s' created.\n", settings.Engine.Index)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Index '%s' already exists.\n", settings.Engine.Index)
	}
	return nil
}
