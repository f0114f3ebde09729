// Package sources loads the crawl target declarations from a YAML file.
// Each source describes one crawl phase: where to start, which URL subtree
// stays in scope, and the academic level tagged onto extracted records.
package sources

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/jonesrussell/feescout/internal/domain"
)

var (
	// ErrNoSources indicates no sources were found in the configuration.
	ErrNoSources = errors.New("no sources found in configuration")
	// ErrMissingRequiredField indicates a required field is missing.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidScope indicates the scope prefix does not bound the start URL.
	ErrInvalidScope = errors.New("start URL is outside the scope prefix")
)

// Config represents one crawl target loaded from the sources file.
type Config struct {
	// Name identifies the source in logs and output.
	Name string `mapstructure:"name"`
	// StartURL is the first page visited.
	StartURL string `mapstructure:"start_url"`
	// ScopePrefix bounds discovered links: only URLs starting with this
	// prefix are enqueued.
	ScopePrefix string `mapstructure:"scope_prefix"`
	// Level is "undergraduate" or "graduate"; it decides per-section
	// program tagging and the level stamped onto every record.
	Level string `mapstructure:"level"`
	// FallbackSchool is used when a page carries no usable heading or title.
	FallbackSchool string `mapstructure:"fallback_school"`
	// IncludeArchives enables crawling of archived year pages.
	IncludeArchives bool `mapstructure:"include_archives"`
}

// AcademicLevel maps the declared level string onto the domain enum.
func (c *Config) AcademicLevel() domain.Level {
	switch strings.ToLower(c.Level) {
	case "undergraduate", "undergrad", "ug":
		return domain.LevelUndergraduate
	case "graduate", "grad", "gr":
		return domain.LevelGraduate
	default:
		return domain.LevelUnknown
	}
}

// sourcesFile represents the structure of a sources YAML file.
type sourcesFile struct {
	Sources []map[string]any `yaml:"sources"`
}

// Loader handles loading and validating source configurations.
type Loader struct {
	configPath string
}

// NewLoader creates a new Loader instance.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// LoadSources loads and validates all sources from the configuration file.
// Malformed entries are skipped; an error is returned only when the file is
// unreadable or no valid source remains.
func (l *Loader) LoadSources() ([]Config, error) {
	raw, err := l.loadRawSources()
	if err != nil {
		return nil, err
	}

	configs := make([]Config, 0, len(raw))
	for _, src := range raw {
		cfg, convertErr := convertToConfig(src)
		if convertErr != nil {
			continue
		}
		if validateErr := validateConfig(&cfg); validateErr != nil {
			continue
		}
		configs = append(configs, cfg)
	}

	if len(configs) == 0 {
		return nil, ErrNoSources
	}

	return configs, nil
}

// loadRawSources reads and parses the raw source maps from the file.
func (l *Loader) loadRawSources() ([]map[string]any, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Sources) == 0 {
		return nil, ErrNoSources
	}

	return file.Sources, nil
}

// convertToConfig converts a raw source map to a Config struct.
func convertToConfig(src map[string]any) (Config, error) {
	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to create decoder: %w", err)
	}

	if decodeErr := decoder.Decode(src); decodeErr != nil {
		return Config{}, fmt.Errorf("failed to decode source: %w", decodeErr)
	}

	return cfg, nil
}

// validateConfig checks the required fields and the scope relationship.
func validateConfig(cfg *Config) error {
	if cfg.Name == "" || cfg.StartURL == "" || cfg.ScopePrefix == "" {
		return ErrMissingRequiredField
	}

	if _, err := url.ParseRequestURI(cfg.StartURL); err != nil {
		return fmt.Errorf("invalid start_url %q: %w", cfg.StartURL, err)
	}

	if !strings.HasPrefix(cfg.StartURL, cfg.ScopePrefix) {
		return ErrInvalidScope
	}

	return nil
}
