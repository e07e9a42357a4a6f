package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func newTestLoader(path string, env map[string]string) *Loader {
	return &Loader{Path: path, LookupEnv: envMap(env)}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[engine]
host = "es.internal"
port = 9300
timeout = "3s"
requests_per_second = 20.5

[ingest]
workers = 8

[analysis]
extra_stopwords = ["foo"]
`)

	s, err := newTestLoader(path, nil).Load()
	require.NoError(t, err)

	assert.Equal(t, "es.internal", s.Engine.Host)
	assert.Equal(t, 9300, s.Engine.Port)
	assert.Equal(t, 3*time.Second, s.Engine.Timeout)
	assert.InDelta(t, 20.5, s.Engine.RequestsPerSecond, 0.001)
	assert.Equal(t, 8, s.Ingest.Workers)
	assert.Equal(t, []string{"foo"}, s.Analysis.ExtraStopwords)

	// Untouched keys keep defaults.
	defaults := domain.DefaultSettings()
	assert.Equal(t, defaults.Engine.Index, s.Engine.Index)
	assert.Equal(t, defaults.Report.TopK, s.Report.TopK)
	assert.Equal(t, defaults.Analysis.LanguageStopwords, s.Analysis.LanguageStopwords)
	assert.True(t, s.Journal.Enabled)
}

func TestLoader_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
engine:
  index: library
  scheme: https
report:
  top_k: 25
journal:
  enabled: false
`)

	s, err := newTestLoader(path, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, "library", s.Engine.Index)
	assert.Equal(t, "https", s.Engine.Scheme)
	assert.Equal(t, 25, s.Report.TopK)
	assert.False(t, s.Journal.Enabled)
	assert.Equal(t, "localhost", s.Engine.Host)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.toml", "[engine]\nhost = \"from-file\"\n")

	s, err := newTestLoader(path, map[string]string{
		EnvHost:     "from-env",
		EnvPort:     "9201",
		EnvIndex:    "novels",
		EnvUsername: "elastic",
		EnvPassword: "secret",
	}).Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", s.Engine.Host)
	assert.Equal(t, 9201, s.Engine.Port)
	assert.Equal(t, "novels", s.Engine.Index)
	assert.Equal(t, "elastic", s.Engine.Username)
	assert.Equal(t, "secret", s.Engine.Password)
}

func TestLoader_DotEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("FOLIO_INDEX=from-dotenv\n"), 0o600))
	t.Setenv(EnvIndex, "")
	require.NoError(t, os.Unsetenv(EnvIndex))

	l := &Loader{Path: writeConfig(t, "c.toml", ""), DotEnv: dotenv, LookupEnv: os.LookupEnv}
	s, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", s.Engine.Index)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		env  map[string]string
	}{
		{
			name: "explicit file missing",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.toml") },
		},
		{
			name: "invalid toml",
			path: func(t *testing.T) string { return writeConfig(t, "bad.toml", "[engine\nhost=") },
		},
		{
			name: "bad timeout",
			path: func(t *testing.T) string { return writeConfig(t, "c.toml", "[engine]\ntimeout = \"soon\"\n") },
		},
		{
			name: "invalid setting",
			path: func(t *testing.T) string { return writeConfig(t, "c.toml", "[ingest]\nworkers = 0\n") },
		},
		{
			name: "bad port env",
			path: func(t *testing.T) string { return writeConfig(t, "c.toml", "") },
			env:  map[string]string{EnvPort: "ninety"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestLoader(tt.path(t), tt.env).Load()
			assert.Error(t, err)
		})
	}
}
