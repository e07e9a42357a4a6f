package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recent ingest runs",
	Long: `Lists recent add-book and add-books runs with their outcome counts.
Given a run ID, prints the outcome of every file in that run.`,
	Args:        cobra.MaximumNArgs(1),
	RunE:        runHistory,
	Annotations: map[string]string{annotationBootstrap: bootstrapOffline},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of runs")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		run, err := historyService.Get(cmd.Context(), args[0])
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("run %s: %w", args[0], err)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Run %s: %s into %s at %s\n", run.ID, run.Path, run.Index, formatTime(run.StartedAt))
		printOutcomes(out, run.Outcomes)
		return nil
	}

	runs, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No ingest runs recorded.")
		return nil
	}

	rows := make([][]string, len(runs))
	for i, run := range runs {
		t := run.Tally()
		rows[i] = []string{
			run.ID,
			formatTime(run.StartedAt),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
			run.Path,
			fmt.Sprintf("stored=%d duplicate=%d malformed=%d failed=%d", t.Stored, t.Duplicate, t.Malformed, t.Failed),
		}
	}
	renderTable(out, []string{"Run", "Started", "Took", "Path", "Outcomes"}, rows)
	return nil
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
