package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show the effective settings",
	Long:        `Prints the settings after applying the config file, environment and flags.`,
	Args:        cobra.NoArgs,
	RunE:        runConfig,
	Annotations: map[string]string{annotationBootstrap: bootstrapOffline},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	s := settings
	password := ""
	if s.Engine.Password != "" {
		password = "********"
	}
	dataDir := s.Journal.DataDir
	if dataDir == "" {
		dataDir = "~/.folio/data"
	}

	rows := [][]string{
		{"engine.address", s.Engine.Address()},
		{"engine.index", s.Engine.Index},
		{"engine.username", s.Engine.Username},
		{"engine.password", password},
		{"engine.timeout", s.Engine.Timeout.String()},
		{"engine.requests_per_second", strconv.FormatFloat(s.Engine.RequestsPerSecond, 'f', -1, 64)},
		{"engine.burst", strconv.Itoa(s.Engine.Burst)},
		{"ingest.workers", strconv.Itoa(s.Ingest.Workers)},
		{"search.max_results", strconv.Itoa(s.Search.MaxResults)},
		{"report.top_k", strconv.Itoa(s.Report.TopK)},
		{"analysis.language_stopwords", s.Analysis.LanguageStopwords},
		{"analysis.extra_stopwords", strings.Join(s.Analysis.ExtraStopwords, ", ")},
		{"journal.enabled", strconv.FormatBool(s.Journal.Enabled)},
		{"journal.data_dir", dataDir},
	}
	renderTable(cmd.OutOrStdout(), []string{"Setting", "Value"}, rows)
	return nil
}
