// Package config provides configuration management for the application.
// Configuration is read from a YAML file with environment-variable overrides,
// falling back to production-safe defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/feescout/internal/logger"
)

// Validation errors.
var (
	ErrInvalidMaxPages  = errors.New("crawler.max_pages must be positive")
	ErrInvalidTimeout   = errors.New("crawler.request_timeout must be positive")
	ErrInvalidThreshold = errors.New("matcher.accept_threshold must be in (0, 1]")
)

// Config is the root configuration for the application.
type Config struct {
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Matcher MatcherConfig `mapstructure:"matcher"`
	Logging logger.Config `mapstructure:"logging"`
	// SourcesFile is the path to the crawl target declarations.
	SourcesFile string `mapstructure:"sources_file"`
}

// CrawlerConfig holds crawl-specific configuration.
type CrawlerConfig struct {
	// UserAgent is sent with every request, including robots.txt fetches.
	UserAgent string `mapstructure:"user_agent"`
	// RequestTimeout bounds every network call.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// RequestDelay is the fixed pause before each page fetch.
	RequestDelay time.Duration `mapstructure:"request_delay"`
	// MaxPages caps visited pages per crawl run.
	MaxPages int `mapstructure:"max_pages"`
	// RespectRobotsTxt enables robots.txt compliance checking.
	RespectRobotsTxt bool `mapstructure:"respect_robots_txt"`
	// RobotsCacheTTL bounds how long per-host robots.txt rules are cached.
	RobotsCacheTTL time.Duration `mapstructure:"robots_cache_ttl"`
}

// MatcherConfig holds matching-specific configuration.
type MatcherConfig struct {
	// AcceptThreshold is the minimum similarity for the fuzzy tier to accept
	// a school-name candidate. Inherited from the source system's observed
	// 0.4 cutoff; boundary-sensitive, so kept tunable.
	AcceptThreshold float64 `mapstructure:"accept_threshold"`
}

// Load reads configuration from the given file (or the default search paths
// when empty), applies environment overrides, and validates the result.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(defaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType(defaultConfigType)
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		// Missing config file is fine; defaults apply.
		_ = v.ReadInConfig()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("crawler.user_agent", defaultUserAgent)
	v.SetDefault("crawler.request_timeout", defaultRequestTimeout)
	v.SetDefault("crawler.request_delay", defaultRequestDelay)
	v.SetDefault("crawler.max_pages", defaultMaxPages)
	v.SetDefault("crawler.respect_robots_txt", defaultRespectRobots)
	v.SetDefault("crawler.robots_cache_ttl", defaultRobotsCacheTTL)
	v.SetDefault("matcher.accept_threshold", defaultMatchThreshold)
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.encoding", defaultLogEncoding)
	v.SetDefault("sources_file", defaultSourcesFile)
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Crawler.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.Crawler.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Matcher.AcceptThreshold <= 0 || c.Matcher.AcceptThreshold > 1 {
		return ErrInvalidThreshold
	}
	return nil
}
