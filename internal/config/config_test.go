package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Empty(t, cfg.AssetsDir)
	assert.Equal(t, "en-US", cfg.BaseLanguage)
	assert.Equal(t, ".ogg", cfg.AudioExtension)
	assert.Equal(t, 500*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, 200, cfg.MaxValueGraphemes)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "none", cfg.Telemetry.Exporter)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_FromFile(t *testing.T) {
	configYAML := `
assets_dir: /srv/fw/assets
base_language: de-DE
audio_extension: .wav
watch_debounce: 250ms
log:
  level: debug
  categories:
    - loader
    - sound
telemetry:
  exporter: stdout
`
	cfg := loadConfigFromYAML(t, configYAML)

	assert.Equal(t, "/srv/fw/assets", cfg.AssetsDir)
	assert.Equal(t, "de-DE", cfg.BaseLanguage)
	assert.Equal(t, ".wav", cfg.AudioExtension)
	assert.Equal(t, 250*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"loader", "sound"}, cfg.Log.Categories)
	assert.Equal(t, "stdout", cfg.Telemetry.Exporter)

	// Unset keys keep their defaults.
	assert.Equal(t, 200, cfg.MaxValueGraphemes)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LANGGEN_BASE_LANGUAGE", "ja-JP")
	t.Setenv("LANGGEN_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ja-JP", cfg.BaseLanguage)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "extension without dot", mutate: func(c *Config) { c.AudioExtension = "ogg" }, wantErr: true},
		{name: "empty base language", mutate: func(c *Config) { c.BaseLanguage = "" }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "unknown exporter", mutate: func(c *Config) { c.Telemetry.Exporter = "jaeger" }, wantErr: true},
		{name: "otlp without endpoint", mutate: func(c *Config) { c.Telemetry.Exporter = "otlp" }, wantErr: true},
		{name: "otlp with endpoint", mutate: func(c *Config) {
			c.Telemetry.Exporter = "otlp"
			c.Telemetry.Endpoint = "localhost:4317"
		}, wantErr: false},
		{name: "negative debounce", mutate: func(c *Config) { c.WatchDebounce = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfigTemplate_MatchesDefaults(t *testing.T) {
	// The commented template must load back to exactly the defaults.
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".langgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(DefaultConfigTemplate()), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestDefaultConfigTemplate_IsValidYAML(t *testing.T) {
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &doc))

	for _, key := range []string{"base_language", "audio_extension", "watch_debounce", "log", "telemetry"} {
		assert.Contains(t, doc, key)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".langgen.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigTemplate(), string(content))
}

// loadConfigFromYAML is a helper to load config from a YAML string.
func loadConfigFromYAML(t *testing.T, yamlBody string) Config {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(yamlBody), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	return cfg
}
