package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Annotation keys controlling bootstrap per command.
const (
	annotationBootstrap = "folio/bootstrap"

	// bootstrapNone skips settings and services entirely.
	bootstrapNone = "none"
	// bootstrapOffline builds services but does not contact the engine.
	bootstrapOffline = "offline"
)

// Overrides carries flag values that take precedence over file and environment settings.
type Overrides struct {
	ConfigPath string
	Host       string
	Port       int
	Index      string
}

// Services is everything a command may drive.
type Services struct {
	Settings domain.Settings
	Index    driving.IndexService
	Ingest   driving.IngestService
	Catalog  driving.CatalogService
	TopWords driving.TopWordsService
	History  driving.HistoryService

	// Close releases engine and journal resources. May be nil.
	Close func() error
}

// BootstrapFunc resolves settings and builds services. connect is false for
// commands that never talk to the engine.
type BootstrapFunc func(ctx context.Context, o Overrides, connect bool) (*Services, error)

var (
	bootstrap BootstrapFunc
	closer    func() error

	settings        = domain.DefaultSettings()
	indexService    driving.IndexService
	ingestService   driving.IngestService
	catalogService  driving.CatalogService
	topWordsService driving.TopWordsService
	historyService  driving.HistoryService
)

// Flag values shared by every command.
var (
	flagConfig  string
	flagHost    string
	flagPort    int
	flagIndex   string
	flagVerbose bool
	flagAuthor  string
	flagYear    string
	flagName    string
	flagFrom    string
	flagUntil   string
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Full-text catalogue of plain-text books",
	Long: `folio loads plain-text books into an Elasticsearch index and answers
questions about them: which books mention a word, what an author's
average publication year is, and which words dominate a given year.

Book files are named "<title> - <author> - <year>.<ext>".`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default ~/.folio/config.toml)")
	pf.StringVarP(&flagHost, "host", "s", "", "search engine host (default localhost)")
	pf.IntVarP(&flagPort, "port", "p", 0, "search engine port (default 9200)")
	pf.StringVar(&flagIndex, "index", "", "index name (default books)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "print progress to stderr")
	pf.StringVarP(&flagAuthor, "author", "a", "", "book author")
	pf.StringVarP(&flagYear, "year", "y", "", "publication year (four digits)")
	pf.StringVarP(&flagName, "name", "n", "", "book title")
	pf.StringVarP(&flagFrom, "from-date", "f", "", "first publication year of a range")
	pf.StringVarP(&flagUntil, "until-date", "u", "", "last publication year of a range")
}

// SetBootstrap installs the function that builds services before a command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	mode := bootstrapMode(cmd)
	if mode == bootstrapNone || bootstrap == nil {
		return nil
	}

	svc, err := bootstrap(cmd.Context(), Overrides{
		ConfigPath: flagConfig,
		Host:       flagHost,
		Port:       flagPort,
		Index:      flagIndex,
	}, mode != bootstrapOffline)
	if err != nil {
		return err
	}
	useServices(svc)

	if mode == bootstrapOffline {
		return nil
	}
	if indexService == nil {
		return domain.ErrEngineUnavailable
	}
	return indexService.Ping(cmd.Context())
}

// bootstrapMode reads the annotation from the command or its nearest annotated parent.
func bootstrapMode(cmd *cobra.Command) string {
	if cmd == rootCmd || cmd.Name() == "help" || cmd.Name() == "completion" {
		return bootstrapNone
	}
	for c := cmd; c != nil; c = c.Parent() {
		if mode, ok := c.Annotations[annotationBootstrap]; ok {
			return mode
		}
	}
	return ""
}

func useServices(svc *Services) {
	settings = svc.Settings
	indexService = svc.Index
	ingestService = svc.Ingest
	catalogService = svc.Catalog
	topWordsService = svc.TopWords
	historyService = svc.History
	closer = svc.Close
}

func closeServices() {
	if closer == nil {
		return
	}
	if err := closer(); err != nil {
		logger.Warn("Closing services: %v", err)
	}
	closer = nil
}

// errUsage reports missing or invalid command arguments.
func errUsage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// requireFlag fails when a string flag was not given.
func requireFlag(name, value string) error {
	if value == "" {
		return errUsage("--%s is required", name)
	}
	return nil
}

// parseYearFlag validates a four digit year flag.
func parseYearFlag(name, value string) (int, error) {
	if err := requireFlag(name, value); err != nil {
		return 0, err
	}
	year, err := domain.ParseYear(value)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return year, nil
}
