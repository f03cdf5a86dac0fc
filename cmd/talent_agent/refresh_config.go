package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/analysis"
	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/llm"
)

var refreshConfigCmd = &cobra.Command{
	Use:   "refresh-config",
	Short: "Refresh the analysis keyword tables and write a new analysis config",
	Long: "Ask the oracle (or the built-in tables with --static) for current skill categories, " +
		"industry keywords and emerging technologies, merge them over the existing analysis config, " +
		"and write the result. The existing file is left untouched when the refresh fails.",
	RunE: runRefreshConfig,
}

var (
	refreshConfigFile string
	refreshOutputFile string
	refreshStatic     bool
)

func init() {
	refreshConfigCmd.Flags().StringVar(&refreshConfigFile, "analysis-config", "", "Existing analysis config to refresh (default built-in)")
	refreshConfigCmd.Flags().StringVarP(&refreshOutputFile, "out", "o", "", "Output path, .json or .yaml (default: the input config)")
	refreshConfigCmd.Flags().BoolVar(&refreshStatic, "static", false, "Use the built-in keyword tables instead of the oracle")

	rootCmd.AddCommand(refreshConfigCmd)
}

func runRefreshConfig(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, func(c *config.Config) {
		if refreshConfigFile != "" {
			c.AnalysisConfig = refreshConfigFile
		}
	})
	if err != nil {
		return err
	}
	defer a.close()

	out := refreshOutputFile
	if out == "" {
		out = a.cfg.AnalysisConfig
	}
	if out == "" {
		return fmt.Errorf("an output path is required (--out or --analysis-config)")
	}

	current := analysis.DefaultConfig()
	if a.cfg.AnalysisConfig != "" {
		current, err = analysis.LoadConfigFile(a.cfg.AnalysisConfig)
		if err != nil {
			return err
		}
	}

	var source analysis.KeywordSource = analysis.StaticKeywordSource{}
	if !refreshStatic {
		oracle, err := a.oracle(llm.TierLite)
		if err != nil {
			return err
		}
		if llm.IsEnabled(oracle) {
			source = analysis.NewOracleKeywordSource(oracle)
		}
	}

	refreshed, err := analysis.Refresh(a.ctx, current, source, a.now())
	if err != nil {
		return fmt.Errorf("failed to refresh analysis config: %w", err)
	}
	if err := analysis.SaveConfigFile(refreshed, out); err != nil {
		return err
	}

	summary := refreshed.Summary()
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s from %s: %d skill categories, %d industries, %d emerging skills\n",
		out, source.Name(), summary["skill_categories"], summary["industries"], summary["emerging_skills"])
	return err
}
