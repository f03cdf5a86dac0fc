package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/analysis"
	"github.com/jonathan/talent-matcher/internal/config"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Derive insights (seniority, skill categories, marketability) from a candidate profile",
	RunE:  runAnalyze,
}

var (
	analyzeSource     profileSource
	analyzeConfigFile string
	analyzeJSON       bool
	analyzeOutputFile string
)

func init() {
	analyzeSource.register(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeConfigFile, "analysis-config", "", "YAML or JSON analysis config merged over the defaults")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print insights as JSON instead of a text report")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output file (default stdout)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	a, err := setup(cmd, func(c *config.Config) {
		if analyzeConfigFile != "" {
			c.AnalysisConfig = analyzeConfigFile
		}
	})
	if err != nil {
		return err
	}
	defer a.close()

	loaded, err := a.loadProfile(analyzeSource)
	if err != nil {
		return err
	}

	analysisCfg := analysis.DefaultConfig()
	if a.cfg.AnalysisConfig != "" {
		analysisCfg, err = analysis.LoadConfigFile(a.cfg.AnalysisConfig)
		if err != nil {
			return err
		}
	}

	insights := analysis.NewAnalyzer(analysisCfg).WithClock(a.now).Analyze(a.ctx, loaded.profile)
	if a.cfg.Verbose {
		a.printer.PrintInsights(insights)
	}

	if analyzeJSON || analyzeOutputFile != "" {
		return writeJSON(cmd, analyzeOutputFile, insights)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), analysis.Report(insights))
	return err
}
