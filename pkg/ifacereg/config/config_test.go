package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/ifacereg/pkg/ifacereg/config"
	"github.com/randalmurphal/ifacereg/pkg/ifacereg/journal"
)

func TestDefault(t *testing.T) {
	s := config.Default()
	assert.NoError(t, s.Validate())
	assert.False(t, s.Logging.Enabled)
	assert.False(t, s.Metrics)
	assert.Empty(t, s.Journal.Driver)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*config.Settings)
		wantErr string
	}{
		{"default ok", func(*config.Settings) {}, ""},
		{"bad level", func(s *config.Settings) { s.Logging.Level = "loud" }, "invalid logging level"},
		{"bad format", func(s *config.Settings) { s.Logging.Format = "xml" }, "invalid logging format"},
		{"bad driver", func(s *config.Settings) { s.Journal.Driver = "postgres" }, "invalid journal driver"},
		{"sqlite without path", func(s *config.Settings) { s.Journal.Driver = "sqlite" }, "requires a path"},
		{"sqlite with path", func(s *config.Settings) {
			s.Journal.Driver = "sqlite"
			s.Journal.Path = "x.db"
		}, ""},
		{"memory driver", func(s *config.Settings) { s.Journal.Driver = "memory" }, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := config.Default()
			tc.mutate(&s)
			err := s.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}

func TestFromYAML(t *testing.T) {
	s, err := config.FromYAML([]byte(`
logging:
  enabled: true
  level: debug
  format: json
metrics: true
journal:
  driver: sqlite
  path: ./registry.db
`))
	require.NoError(t, err)

	assert.True(t, s.Logging.Enabled)
	assert.Equal(t, "debug", s.Logging.Level)
	assert.Equal(t, "json", s.Logging.Format)
	assert.True(t, s.Metrics)
	assert.Equal(t, "sqlite", s.Journal.Driver)
	assert.Equal(t, "./registry.db", s.Journal.Path)
}

func TestFromYAML_Invalid(t *testing.T) {
	_, err := config.FromYAML([]byte("logging: [not a map]"))
	assert.ErrorContains(t, err, "parse yaml")

	_, err = config.FromYAML([]byte("logging:\n  level: loud\n"))
	assert.ErrorContains(t, err, "invalid logging level")
}

func TestFromJSON(t *testing.T) {
	s, err := config.FromJSON([]byte(`{"logging":{"enabled":true,"level":"warn"},"metrics":false}`))
	require.NoError(t, err)

	assert.True(t, s.Logging.Enabled)
	assert.Equal(t, "warn", s.Logging.Level)
	assert.False(t, s.Metrics)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metrics: true\n"), 0o644))

	s, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, s.Metrics)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("metrics = true"), 0o644))

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "unsupported config file extension")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestLogger(t *testing.T) {
	s := config.Default()
	assert.Nil(t, s.Logger(), "disabled logging yields no logger")

	s.Logging.Enabled = true
	s.Logging.Format = "json"
	s.Logging.Level = "debug"
	assert.NotNil(t, s.Logger())
}

func TestOpenJournal(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		store, err := config.Default().OpenJournal()
		require.NoError(t, err)
		assert.Nil(t, store)
	})

	t.Run("memory", func(t *testing.T) {
		s := config.Default()
		s.Journal.Driver = "memory"
		store, err := s.OpenJournal()
		require.NoError(t, err)
		require.NotNil(t, store)
		assert.IsType(t, &journal.MemoryStore{}, store)
		assert.NoError(t, store.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		s := config.Default()
		s.Journal.Driver = "sqlite"
		s.Journal.Path = filepath.Join(t.TempDir(), "journal.db")
		store, err := s.OpenJournal()
		require.NoError(t, err)
		require.NotNil(t, store)
		assert.IsType(t, &journal.SQLiteStore{}, store)
		assert.NoError(t, store.Close())
	})
}

func TestOptions(t *testing.T) {
	s := config.Default()
	s.Logging.Enabled = true
	s.Journal.Driver = "memory"

	opts, closeFn, err := s.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 2) // logger + journal
	assert.NoError(t, closeFn())
}

func TestOptions_InvalidSettings(t *testing.T) {
	s := config.Default()
	s.Journal.Driver = "postgres"

	_, _, err := s.Options()
	assert.ErrorContains(t, err, "invalid journal driver")
}
