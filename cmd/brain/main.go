// Command brain is the CLI front end for a content-addressed Markdown
// knowledge store: every write goes through the nine-step transactional
// protocol in internal/bwt, every read through the digest-first query
// pipeline in internal/query.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/steveyegge/brain/internal/config"
	"go.uber.org/zap"
)

var (
	rootFlag   string
	jsonOutput bool
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "brain",
	Short: "A durable, reusable knowledge store for agents and their humans",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lg, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = lg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Store root (default: $BRAIN_ROOT, then ~/Brain, then nearest ancestor)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deprecateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(watchCmd)
}

func resolveRoot() (string, error) {
	return config.DiscoverRoot(rootFlag)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "brain:", err)
	os.Exit(1)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
