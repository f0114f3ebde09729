package config

import "time"

// Default configuration values. The crawl defaults mirror the conservative
// settings the production scraper ran with: a short fixed delay between
// requests, a hard page cap per crawl, and robots.txt respected.
const (
	defaultUserAgent      = "Mozilla/5.0 (compatible; feescout/1.0)"
	defaultRequestTimeout = 15 * time.Second
	defaultRequestDelay   = 250 * time.Millisecond
	defaultMaxPages       = 500
	defaultRespectRobots  = true
	defaultRobotsCacheTTL = 24 * time.Hour
	defaultMatchThreshold = 0.4
	defaultSourcesFile    = "sources.yml"
	defaultLogLevel       = "info"
	defaultLogEncoding    = "console"
	defaultEnvPrefix      = "FEESCOUT"
	defaultConfigName     = "config"
	defaultConfigType     = "yaml"
)
