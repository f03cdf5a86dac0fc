// Package main provides the talent_agent command-line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talent_agent",
	Short: "Resume extraction, candidate analysis, job/course matching and interview evaluation",
	Long: "talent_agent extracts structured candidate profiles from resume documents, analyzes them, " +
		"ranks jobs and courses against them, and runs oracle-backed technical interviews.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		return writeMetrics(cmd)
	},
}

var (
	rootConfigFile  string
	rootAPIKey      string
	rootDatabaseURL string
	rootVerbose     bool
	rootMetricsFile string
	rootNoOracle    bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootConfigFile, "config", "", "Path to a JSON config file")
	flags.StringVar(&rootAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	flags.StringVar(&rootDatabaseURL, "db-url", "", "PostgreSQL URL; results are persisted when set")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Print debug logs and summary boxes to stderr")
	flags.StringVar(&rootMetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile on exit")
	flags.BoolVar(&rootNoOracle, "no-oracle", false, "Run with deterministic strategies only")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
