// Package config provides configuration types, defaults and loading for
// langgen.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kmarsden/langgen/internal/log"
)

// DefaultConfigFile is the config filename looked up in the working
// directory when no explicit path is given.
const DefaultConfigFile = ".langgen.yaml"

// Config holds all configuration options for langgen.
type Config struct {
	// AssetsDir is the assets root holding locales/ and common/. Empty
	// means derive it from the output path.
	AssetsDir string `mapstructure:"assets_dir"`

	// BaseLanguage is the fallback language merged under every target.
	BaseLanguage string `mapstructure:"base_language" validate:"required"`

	// AudioExtension selects which files count as audio, dot included.
	AudioExtension string `mapstructure:"audio_extension" validate:"required,startswith=."`

	// WatchDebounce is the quiet window watch mode waits for before
	// rebuilding.
	WatchDebounce time.Duration `mapstructure:"watch_debounce" validate:"min=0"`

	// MaxValueGraphemes makes validate flag string values longer than
	// this many grapheme clusters. Zero disables the lint.
	MaxValueGraphemes int `mapstructure:"max_value_graphemes" validate:"min=0"`

	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LogConfig controls the stderr diagnostic log.
type LogConfig struct {
	Level      string   `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Categories []string `mapstructure:"categories"`
}

// TelemetryConfig controls optional tracing of compile phases.
type TelemetryConfig struct {
	Exporter string `mapstructure:"exporter" validate:"oneof=none stdout otlp"`
	Endpoint string `mapstructure:"endpoint" validate:"required_if=Exporter otlp"`
}

var validate = validator.New()

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		BaseLanguage:      "en-US",
		AudioExtension:    ".ogg",
		WatchDebounce:     500 * time.Millisecond,
		MaxValueGraphemes: 200,
		Log: LogConfig{
			Level: "warn",
		},
		Telemetry: TelemetryConfig{
			Exporter: "none",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load reads configuration in precedence order: defaults, then an
// optional YAML file, then LANGGEN_* environment overrides. A missing
// default config file is fine; an explicitly named file must exist.
func Load(path string) (Config, error) {
	// Optional .env preload for local runs; absence is the normal case.
	_ = godotenv.Load()

	v := viper.New()
	defaults := Defaults()
	v.SetDefault("assets_dir", defaults.AssetsDir)
	v.SetDefault("base_language", defaults.BaseLanguage)
	v.SetDefault("audio_extension", defaults.AudioExtension)
	v.SetDefault("watch_debounce", defaults.WatchDebounce)
	v.SetDefault("max_value_graphemes", defaults.MaxValueGraphemes)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.categories", defaults.Log.Categories)
	v.SetDefault("telemetry.exporter", defaults.Telemetry.Exporter)
	v.SetDefault("telemetry.endpoint", defaults.Telemetry.Endpoint)

	v.SetEnvPrefix("LANGGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		log.Debug(log.CatConfig, "loaded config file", "path", path)
	default:
		v.SetConfigFile(DefaultConfigFile)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("reading config file %s: %w", DefaultConfigFile, err)
			}
			log.Debug(log.CatConfig, "no config file found, using defaults")
		} else {
			log.Debug(log.CatConfig, "loaded config file", "path", DefaultConfigFile)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing configuration: %w", err)
	}
	return cfg, nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# langgen configuration

# Assets root holding locales/ and common/. When unset the root is
# derived from the output path, which only suits the main/assets layout.
# assets_dir: ./main/assets

# Fallback language merged under every target language
base_language: en-US

# Files with this extension count as audio resources
audio_extension: .ogg

# Quiet window watch mode waits for before rebuilding
watch_debounce: 500ms

# validate flags string values longer than this many graphemes (0 disables)
max_value_graphemes: 200

# Diagnostic logging on stderr. Levels: debug, info, warn, error.
# Categories limit output to subsystems: loader, merge, sound, render,
# config, watch, telemetry. Empty means all categories.
log:
  level: warn
  # categories:
  #   - loader
  #   - sound

# Optional tracing of compile phases.
# exporter: none, stdout or otlp (endpoint required for otlp)
telemetry:
  exporter: none
  # endpoint: localhost:4317
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
