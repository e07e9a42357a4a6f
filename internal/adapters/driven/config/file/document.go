package file

import (
	"fmt"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// document mirrors domain.Settings with file-friendly types and keys.
// Absent keys keep the values the document was seeded with.
type document struct {
	Engine   engineSection   `toml:"engine" yaml:"engine"`
	Ingest   ingestSection   `toml:"ingest" yaml:"ingest"`
	Search   searchSection   `toml:"search" yaml:"search"`
	Report   reportSection   `toml:"report" yaml:"report"`
	Analysis analysisSection `toml:"analysis" yaml:"analysis"`
	Journal  journalSection  `toml:"journal" yaml:"journal"`
}

type engineSection struct {
	Scheme            string  `toml:"scheme" yaml:"scheme"`
	Host              string  `toml:"host" yaml:"host"`
	Port              int     `toml:"port" yaml:"port"`
	Username          string  `toml:"username,omitempty" yaml:"username,omitempty"`
	Password          string  `toml:"password,omitempty" yaml:"password,omitempty"`
	Index             string  `toml:"index" yaml:"index"`
	Timeout           string  `toml:"timeout" yaml:"timeout"`
	RequestsPerSecond float64 `toml:"requests_per_second" yaml:"requests_per_second"`
	Burst             int     `toml:"burst" yaml:"burst"`
}

type ingestSection struct {
	Workers int `toml:"workers" yaml:"workers"`
}

type searchSection struct {
	MaxResults int `toml:"max_results" yaml:"max_results"`
}

type reportSection struct {
	TopK int `toml:"top_k" yaml:"top_k"`
}

type analysisSection struct {
	LanguageStopwords string   `toml:"language_stopwords" yaml:"language_stopwords"`
	ExtraStopwords    []string `toml:"extra_stopwords" yaml:"extra_stopwords"`
}

type journalSection struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	DataDir string `toml:"data_dir,omitempty" yaml:"data_dir,omitempty"`
}

func fromSettings(s domain.Settings) document {
	return document{
		Engine: engineSection{
			Scheme:            s.Engine.Scheme,
			Host:              s.Engine.Host,
			Port:              s.Engine.Port,
			Username:          s.Engine.Username,
			Password:          s.Engine.Password,
			Index:             s.Engine.Index,
			Timeout:           s.Engine.Timeout.String(),
			RequestsPerSecond: s.Engine.RequestsPerSecond,
			Burst:             s.Engine.Burst,
		},
		Ingest: ingestSection{Workers: s.Ingest.Workers},
		Search: searchSection{MaxResults: s.Search.MaxResults},
		Report: reportSection{TopK: s.Report.TopK},
		Analysis: analysisSection{
			LanguageStopwords: s.Analysis.LanguageStopwords,
			ExtraStopwords:    append([]string(nil), s.Analysis.ExtraStopwords...),
		},
		Journal: journalSection{Enabled: s.Journal.Enabled, DataDir: s.Journal.DataDir},
	}
}

func (d document) settings() (domain.Settings, error) {
	timeout, err := time.ParseDuration(d.Engine.Timeout)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("%w: engine.timeout %q: %v", domain.ErrInvalidInput, d.Engine.Timeout, err)
	}

	return domain.Settings{
		Engine: domain.EngineSettings{
			Scheme:            d.Engine.Scheme,
			Host:              d.Engine.Host,
			Port:              d.Engine.Port,
			Username:          d.Engine.Username,
			Password:          d.Engine.Password,
			Index:             d.Engine.Index,
			Timeout:           timeout,
			RequestsPerSecond: d.Engine.RequestsPerSecond,
			Burst:             d.Engine.Burst,
		},
		Ingest: domain.IngestSettings{Workers: d.Ingest.Workers},
		Search: domain.SearchSettings{MaxResults: d.Search.MaxResults},
		Report: domain.ReportSettings{TopK: d.Report.TopK},
		Analysis: domain.AnalysisSettings{
			LanguageStopwords: d.Analysis.LanguageStopwords,
			ExtraStopwords:    d.Analysis.ExtraStopwords,
		},
		Journal: domain.JournalSettings{Enabled: d.Journal.Enabled, DataDir: d.Journal.DataDir},
	}, nil
}
