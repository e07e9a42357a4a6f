package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/logger"
)

// Environment variables that override file settings.
const (
	EnvHost     = "FOLIO_HOST"
	EnvPort     = "FOLIO_PORT"
	EnvIndex    = "FOLIO_INDEX"
	EnvUsername = "FOLIO_USERNAME"
	EnvPassword = "FOLIO_PASSWORD"
	EnvScheme   = "FOLIO_SCHEME"
)

// Loader resolves settings from files and the environment.
type Loader struct {
	// Path is the config file. Empty means DefaultPath, which may be absent.
	Path string

	// DotEnv is the .env file loaded before reading the environment.
	// Empty disables .env loading.
	DotEnv string

	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// NewLoader creates a loader for path with .env loading from the working directory.
func NewLoader(path string) *Loader {
	return &Loader{Path: path, DotEnv: ".env", LookupEnv: os.LookupEnv}
}

// DefaultPath returns ~/.folio/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".folio", "config.toml"), nil
}

// Load returns validated settings.
func (l *Loader) Load() (domain.Settings, error) {
	if l.DotEnv != "" {
		if err := godotenv.Load(l.DotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return domain.Settings{}, fmt.Errorf("loading %s: %w", l.DotEnv, err)
		}
	}

	settings, err := l.loadFile()
	if err != nil {
		return domain.Settings{}, err
	}

	if err := l.applyEnv(&settings); err != nil {
		return domain.Settings{}, err
	}

	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (l *Loader) loadFile() (domain.Settings, error) {
	path := l.Path
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			logger.Debug("No default config: %v", err)
			return domain.DefaultSettings(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	logger.Debug("Loading config from %s", path)

	doc := fromSettings(domain.DefaultSettings())
	if err := Decode(path, data, &doc); err != nil {
		return domain.Settings{}, fmt.Errorf("%w: parsing config %s: %v", domain.ErrInvalidInput, path, err)
	}
	return doc.settings()
}

// Decode unmarshals data as YAML for .yaml/.yml paths and TOML otherwise.
func Decode(path string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return toml.Unmarshal(data, v)
	}
}

func (l *Loader) applyEnv(s *domain.Settings) error {
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvHost); ok && v != "" {
		s.Engine.Host = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", domain.ErrInvalidInput, EnvPort, v)
		}
		s.Engine.Port = port
	}
	if v, ok := lookup(EnvIndex); ok && v != "" {
		s.Engine.Index = v
	}
	if v, ok := lookup(EnvScheme); ok && v != "" {
		s.Engine.Scheme = v
	}
	if v, ok := lookup(EnvUsername); ok {
		s.Engine.Username = v
	}
	if v, ok := lookup(EnvPassword); ok {
		s.Engine.Password = v
	}
	return nil
}
