package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// theme is the colour palette for terminal output.
type theme struct {
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
}

func defaultTheme() theme {
	return theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
		Border:  lipgloss.Color("#45475A"), // Border gray
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderTable draws a bordered table on terminals and tab-separated lines elsewhere.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	if !isTerminal(w) {
		for _, row := range rows {
			for i, cell := range row {
				if i > 0 {
					fmt.Fprint(w, "\t")
				}
				fmt.Fprint(w, cell)
			}
			fmt.Fprintln(w)
		}
		return
	}

	th := defaultTheme()
	header := lipgloss.NewStyle().Bold(true).Foreground(th.Primary).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(th.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	fmt.Fprintln(w, t.Render())
}

// printBooks lists hits one per line as "title, author, year".
func printBooks(w io.Writer, books []domain.Book, notFound string) {
	if len(books) == 0 {
		fmt.Fprintln(w, notFound)
		return
	}
	fmt.Fprintf(w, "Found: %d\n", len(books))
	for _, b := range books {
		fmt.Fprintf(w, "%s, %s, %s\n", b.Identity.Title, b.Identity.Author, b.Identity.YearString())
	}
}

// printTopWords renders the ranking as a two-column table.
func printTopWords(w io.Writer, year int, counts []domain.TermCount) {
	if len(counts) == 0 {
		fmt.Fprintf(w, "Not found for year %s\n", domain.FormatYear(year))
		return
	}
	fmt.Fprintf(w, "Top %d words in books from %s:\n", len(counts), domain.FormatYear(year))
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Term, strconv.Itoa(c.Count)}
	}
	renderTable(w, []string{"Word", "Count"}, rows)
}

// outcomeLabel styles an outcome kind on terminals.
func outcomeLabel(w io.Writer, kind domain.OutcomeKind) string {
	label := string(kind)
	if !isTerminal(w) {
		return label
	}
	th := defaultTheme()
	colour := th.Muted
	switch kind {
	case domain.OutcomeStored:
		colour = th.Success
	case domain.OutcomeSkippedDuplicate:
		colour = th.Warning
	case domain.OutcomeFailed:
		colour = th.Error
	}
	return lipgloss.NewStyle().Foreground(colour).Render(label)
}

// printOutcomes prints one line per file and the final tally.
func printOutcomes(w io.Writer, outcomes []domain.IngestOutcome) {
	for _, o := range outcomes {
		line := fmt.Sprintf("%s\t%s", outcomeLabel(w, o.Kind), o.Filename)
		if o.Kind == domain.OutcomeFailed && o.Err != nil {
			line += ": " + o.Err.Error()
		}
		fmt.Fprintln(w, line)
	}
	printTally(w, domain.Tally(outcomes))
}

func printTally(w io.Writer, t domain.IngestTally) {
	fmt.Fprintf(w, "stored=%d duplicate=%d malformed=%d failed=%d\n",
		t.Stored, t.Duplicate, t.Malformed, t.Failed)
}
