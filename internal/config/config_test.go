package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".", cfg.ProjectRoot)
	assert.Equal(t, "kiro", cfg.Target)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Empty(t, cfg.Framework)
	assert.Equal(t, 2000, cfg.Analysis.MaxFiles)
	assert.Equal(t, 50, cfg.Analysis.ComponentLimit)
	assert.Equal(t, 3, cfg.Analysis.SnippetLimit)
	assert.Equal(t, "500ms", cfg.Watch.Debounce)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("target: windsurf\nanalysis:\n  max_files: 10\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "windsurf", cfg.Target)
	assert.Equal(t, 10, cfg.Analysis.MaxFiles)
	// Everything the file doesn't mention stays at the default.
	assert.Equal(t, ".", cfg.ProjectRoot)
	assert.Equal(t, 50, cfg.Analysis.ComponentLimit)
	assert.Equal(t, "500ms", cfg.Watch.Debounce)
}

func TestLoad_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	content := `project_root: ./web
target: cursor
output_dir: ./out
framework: react
analysis:
  max_files: 500
  component_limit: 20
  snippet_limit: 1
watch:
  debounce: 2s
  paths:
    - extra
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./web", cfg.ProjectRoot)
	assert.Equal(t, "cursor", cfg.Target)
	assert.Equal(t, "./out", cfg.OutputDir)
	assert.Equal(t, "react", cfg.Framework)
	assert.Equal(t, 500, cfg.Analysis.MaxFiles)
	assert.Equal(t, 20, cfg.Analysis.ComponentLimit)
	assert.Equal(t, 1, cfg.Analysis.SnippetLimit)
	assert.Equal(t, "2s", cfg.Watch.Debounce)
	assert.Equal(t, []string{"extra"}, cfg.Watch.Paths)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("target: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("override defaults", func(t *testing.T) {
		t.Setenv("STEERGEN_TARGET", "cline")
		t.Setenv("STEERGEN_OUTPUT_DIR", "/tmp/steering")
		t.Setenv("STEERGEN_FRAMEWORK", "nuxt")

		cfg, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
		require.NoError(t, err)
		assert.Equal(t, "cline", cfg.Target)
		assert.Equal(t, "/tmp/steering", cfg.OutputDir)
		assert.Equal(t, "nuxt", cfg.Framework)
	})

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("STEERGEN_TARGET", "aider")

		path := filepath.Join(t.TempDir(), DefaultFileName)
		require.NoError(t, os.WriteFile(path, []byte("target: cursor\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "aider", cfg.Target)
	})

	t.Run("empty env ignored", func(t *testing.T) {
		t.Setenv("STEERGEN_TARGET", "")

		cfg, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
		require.NoError(t, err)
		assert.Equal(t, "kiro", cfg.Target)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults pass", mutate: func(c *Config) {}},
		{name: "empty target passes", mutate: func(c *Config) { c.Target = "" }},
		{name: "every registry target passes", mutate: func(c *Config) { c.Target = "markdown" }},
		{
			name:    "unknown target",
			mutate:  func(c *Config) { c.Target = "zed" },
			wantErr: "invalid target: zed",
		},
		{
			name:    "bad debounce",
			mutate:  func(c *Config) { c.Watch.Debounce = "soon" },
			wantErr: `invalid watch debounce "soon"`,
		},
		{
			name:    "negative max files",
			mutate:  func(c *Config) { c.Analysis.MaxFiles = -1 },
			wantErr: "max_files must not be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestSave_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)

	cfg := DefaultConfig()
	cfg.Target = "copilot"
	cfg.Watch.Paths = []string{"packages"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetDebounce(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.GetDebounce())

	cfg.Watch.Debounce = "250ms"
	assert.Equal(t, 250*time.Millisecond, cfg.GetDebounce())

	cfg.Watch.Debounce = "garbage"
	assert.Equal(t, 500*time.Millisecond, cfg.GetDebounce())
}

func TestAnalysisOptions(t *testing.T) {
	cfg := &Config{}
	maxFiles, componentLimit, snippetLimit := cfg.AnalysisOptions()
	assert.Equal(t, 2000, maxFiles)
	assert.Equal(t, 50, componentLimit)
	assert.Equal(t, 3, snippetLimit)

	cfg.Analysis = AnalysisConfig{MaxFiles: 9, ComponentLimit: 8, SnippetLimit: 7}
	maxFiles, componentLimit, snippetLimit = cfg.AnalysisOptions()
	assert.Equal(t, 9, maxFiles)
	assert.Equal(t, 8, componentLimit)
	assert.Equal(t, 7, snippetLimit)
}
