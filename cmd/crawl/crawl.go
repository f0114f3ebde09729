// Package crawl implements the crawl command: walk every configured source
// subtree, normalize the extracted rows, and render or export the result.
package crawl

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/feescout/internal/config"
	internalcrawl "github.com/jonesrussell/feescout/internal/crawl"
	"github.com/jonesrussell/feescout/internal/domain"
	"github.com/jonesrussell/feescout/internal/fetcher"
	"github.com/jonesrussell/feescout/internal/logger"
	"github.com/jonesrussell/feescout/internal/normalize"
	"github.com/jonesrussell/feescout/internal/output"
	"github.com/jonesrussell/feescout/internal/sources"
)

// DepsFunc supplies configuration and a logger to the command.
type DepsFunc func() (*config.Config, logger.Interface, error)

// Command returns the crawl command.
func Command(deps DepsFunc) *cobra.Command {
	var (
		sourcesFile string
		outputFile  string
		showRecords bool
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl configured tuition pages into a normalized dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := deps()
			if err != nil {
				return err
			}

			if sourcesFile == "" {
				sourcesFile = cfg.SourcesFile
			}

			return run(cmd.Context(), cfg, log, sourcesFile, outputFile, showRecords)
		},
	}

	cmd.Flags().StringVar(&sourcesFile, "sources", "", "sources file (default from config)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the normalized dataset to a JSON file")
	cmd.Flags().BoolVar(&showRecords, "show", false, "render the full normalized table")

	return cmd
}

// run executes crawls for every configured source and merges the results.
func run(
	ctx context.Context,
	cfg *config.Config,
	log logger.Interface,
	sourcesFile, outputFile string,
	showRecords bool,
) error {
	targets, err := sources.NewLoader(sourcesFile).LoadSources()
	if err != nil {
		return fmt.Errorf("failed to load sources: %w", err)
	}

	fetch := buildFetcher(cfg, log)

	var (
		merged []domain.FeeRecord
		stats  []internalcrawl.Stats
	)

	for _, target := range targets {
		session := internalcrawl.NewSession(target, fetch, cfg.Crawler.MaxPages, log)

		raw, runStats, runErr := session.Run(ctx)
		if runErr != nil {
			// A cancelled crawl still yields the rows gathered so far.
			log.Warn("crawl interrupted", "source", target.Name, "error", runErr)
		}

		normalized := normalize.Records(raw)
		log.Info("source normalized",
			"source", target.Name,
			"raw_rows", len(raw),
			"normalized_rows", len(normalized),
		)

		merged = output.Merge(merged, normalized)
		stats = append(stats, runStats)

		if runErr != nil {
			break
		}
	}

	output.RenderStats(os.Stdout, stats)
	if showRecords {
		output.RenderRecords(os.Stdout, merged)
	}

	if outputFile != "" {
		if err := output.WriteJSON(outputFile, merged); err != nil {
			return err
		}
		log.Info("dataset written", "path", outputFile, "rows", len(merged))
	}

	return nil
}

// buildFetcher wires the robots policy and fetcher from configuration.
func buildFetcher(cfg *config.Config, log logger.Interface) *fetcher.Fetcher {
	var robots fetcher.RobotsPolicy
	if cfg.Crawler.RespectRobotsTxt {
		robots = fetcher.NewRobotsChecker(
			fetcher.NewHTTPClient(cfg.Crawler.RequestTimeout),
			cfg.Crawler.UserAgent,
			cfg.Crawler.RobotsCacheTTL,
		)
	}

	return fetcher.New(fetcher.Config{
		UserAgent:      cfg.Crawler.UserAgent,
		RequestTimeout: cfg.Crawler.RequestTimeout,
		RequestDelay:   cfg.Crawler.RequestDelay,
	}, robots, log.WithComponent("fetcher"))
}
