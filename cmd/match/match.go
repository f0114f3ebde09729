// Package match implements the match command: load a crawled dataset and
// find the rows best fitting a student's school or program.
package match

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/feescout/internal/config"
	"github.com/jonesrussell/feescout/internal/logger"
	internalmatch "github.com/jonesrussell/feescout/internal/match"
	"github.com/jonesrussell/feescout/internal/output"
)

// DepsFunc supplies configuration and a logger to the command.
type DepsFunc func() (*config.Config, logger.Interface, error)

// Command returns the match command.
func Command(deps DepsFunc) *cobra.Command {
	var (
		inputFile  string
		school     string
		department string
		keyword    string
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match a crawled dataset against a school or department",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := deps()
			if err != nil {
				return err
			}

			table, err := output.ReadJSON(inputFile)
			if err != nil {
				return err
			}

			matcher := internalmatch.New(cfg.Matcher.AcceptThreshold)
			result := matcher.Match(table, school, department)

			// Keyword containment is the caller-side fallback beyond the
			// matcher's own tiers.
			if len(result) == 0 && keyword != "" {
				log.Info("no school match, trying keyword fallback", "keyword", keyword)
				result = internalmatch.KeywordFilter(table, keyword)
			}

			if len(result) == 0 {
				fmt.Println("No matching records found.")
				return nil
			}

			log.Info("match complete", "school", school, "rows", len(result))
			output.RenderRecords(os.Stdout, result)

			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "dataset JSON produced by crawl --output (required)")
	cmd.Flags().StringVarP(&school, "school", "s", "", "school name to match (required)")
	cmd.Flags().StringVarP(&department, "department", "d", "", "department fallback")
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "free-text keyword fallback against the program column")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("school")

	return cmd
}
