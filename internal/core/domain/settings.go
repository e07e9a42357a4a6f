package domain

import (
	"fmt"
	"time"
)

// EngineSettings holds search engine connection configuration.
type EngineSettings struct {
	// Scheme is "http" or "https".
	Scheme string

	// Host is the engine host name.
	Host string

	// Port is the engine HTTP port.
	Port int

	// Username and Password enable basic auth when both are set.
	Username string
	Password string

	// Index names the corpus index.
	Index string

	// Timeout bounds every single engine call.
	Timeout time.Duration

	// RequestsPerSecond throttles engine calls. Zero disables throttling.
	RequestsPerSecond float64

	// Burst is the limiter bucket size.
	Burst int
}

// Address returns the engine base URL.
func (e EngineSettings) Address() string {
	return fmt.Sprintf("%s://%s:%d", e.Scheme, e.Host, e.Port)
}

// IngestSettings controls the ingestion pipeline.
type IngestSettings struct {
	// Workers bounds how many files are ingested concurrently.
	Workers int
}

// MaxResultWindow is the engine's default index.max_result_window. Larger
// search sizes are rejected by the engine.
const MaxResultWindow = 10000

// SearchSettings controls query execution.
type SearchSettings struct {
	// MaxResults is the hit count requested from the engine per query,
	// at most MaxResultWindow.
	MaxResults int
}

// ReportSettings controls the top-words report.
type ReportSettings struct {
	// TopK is the number of words reported.
	TopK int
}

// AnalysisSettings feed the index schema used by create.
type AnalysisSettings struct {
	LanguageStopwords string
	ExtraStopwords    []string
}

// Schema converts the analysis settings into an IndexSchema.
func (a AnalysisSettings) Schema() IndexSchema {
	extra := make([]string, len(a.ExtraStopwords))
	copy(extra, a.ExtraStopwords)
	return IndexSchema{LanguageStopwords: a.LanguageStopwords, ExtraStopwords: extra}
}

// JournalSettings controls the ingest run journal.
type JournalSettings struct {
	Enabled bool

	// DataDir holds the journal database. Empty means ~/.folio/data.
	DataDir string
}

// Settings holds all application settings.
type Settings struct {
	Engine   EngineSettings
	Ingest   IngestSettings
	Search   SearchSettings
	Report   ReportSettings
	Analysis AnalysisSettings
	Journal  JournalSettings
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Engine: EngineSettings{
			Scheme:  "http",
			Host:    "localhost",
			Port:    9200,
			Index:   "books",
			Timeout: 10 * time.Second,
			Burst:   1,
		},
		Ingest: IngestSettings{Workers: 4},
		Search: SearchSettings{MaxResults: MaxResultWindow},
		Report: ReportSettings{TopK: 10},
		Analysis: AnalysisSettings{
			LanguageStopwords: "_russian_",
			ExtraStopwords:    []string{"князь", "повезет", "сорок"},
		},
		Journal: JournalSettings{Enabled: true},
	}
}

// Validate rejects settings the services cannot run with.
func (s Settings) Validate() error {
	switch {
	case s.Engine.Host == "":
		return fmt.Errorf("%w: engine host is empty", ErrInvalidInput)
	case s.Engine.Port <= 0 || s.Engine.Port > 65535:
		return fmt.Errorf("%w: engine port %d", ErrInvalidInput, s.Engine.Port)
	case s.Engine.Scheme != "http" && s.Engine.Scheme != "https":
		return fmt.Errorf("%w: engine scheme %q", ErrInvalidInput, s.Engine.Scheme)
	case s.Engine.Index == "":
		return fmt.Errorf("%w: index name is empty", ErrInvalidInput)
	case s.Engine.Timeout <= 0:
		return fmt.Errorf("%w: engine timeout %s", ErrInvalidInput, s.Engine.Timeout)
	case s.Engine.RequestsPerSecond < 0:
		return fmt.Errorf("%w: requests per second %v", ErrInvalidInput, s.Engine.RequestsPerSecond)
	case s.Ingest.Workers <= 0:
		return fmt.Errorf("%w: ingest workers %d", ErrInvalidInput, s.Ingest.Workers)
	case s.Search.MaxResults <= 0 || s.Search.MaxResults > MaxResultWindow:
		return fmt.Errorf("%w: search max results %d", ErrInvalidInput, s.Search.MaxResults)
	case s.Report.TopK <= 0:
		return fmt.Errorf("%w: report top_k %d", ErrInvalidInput, s.Report.TopK)
	}
	return nil
}
