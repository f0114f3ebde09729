// Package cmd implements the command-line interface for feescout. It
// provides the root command and the subcommands for crawling tuition pages
// and matching the extracted dataset against a school query.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/feescout/cmd/crawl"
	"github.com/jonesrussell/feescout/cmd/match"
	"github.com/jonesrussell/feescout/internal/config"
	"github.com/jonesrussell/feescout/internal/logger"
)

// version is set via -ldflags at build time.
var version = "dev"

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// debug enables debug logging for all commands.
	debug bool

	// rootCmd represents the root command for the feescout CLI.
	rootCmd = &cobra.Command{
		Use:   "feescout",
		Short: "A tuition and fee crawler and matcher",
		Long: `feescout crawls an institution's published tuition/fee pages into a
normalized dataset and matches it against a student's school or program.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	// Load .env early so environment overrides are visible to viper.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("feescout version %s\n", version)
		},
	})

	rootCmd.AddCommand(crawl.Command(loadDeps))
	rootCmd.AddCommand(match.Command(loadDeps))
}

// loadDeps loads configuration and builds the logger shared by subcommands.
func loadDeps() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize configuration: %w", err)
	}

	if debug {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, nil
}
