package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-matcher/internal/config"
	"github.com/jonathan/talent-matcher/internal/llm"
	"github.com/jonathan/talent-matcher/internal/observability"
	"github.com/jonathan/talent-matcher/internal/store"
)

// app carries the per-invocation state shared by every command
type app struct {
	ctx     context.Context
	cfg     config.Config
	logger  *slog.Logger
	printer *observability.Printer
	now     func() time.Time

	store   *store.Store
	closers []func() error
}

// metricsPath is the resolved metrics textfile of the running command
var metricsPath string

// resolveConfig applies file, environment and flag values in that order,
// then fills the gaps from the defaults.
func resolveConfig() (config.Config, error) {
	var cfg config.Config
	if rootConfigFile != "" {
		loaded, err := config.LoadConfig(rootConfigFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return config.Config{}, err
	}

	if rootAPIKey != "" {
		cfg.APIKey = rootAPIKey
	}
	if rootDatabaseURL != "" {
		cfg.DatabaseURL = rootDatabaseURL
	}
	if rootMetricsFile != "" {
		cfg.MetricsFile = rootMetricsFile
	}
	if rootVerbose {
		cfg.Verbose = true
	}
	if rootNoOracle {
		cfg.OracleDisabled = true
	}

	return cfg.MergeWithDefaults(config.Defaults()), nil
}

// setup builds the app for cmd. override runs after the config is resolved
// so command flags win over every other source.
func setup(cmd *cobra.Command, override func(*config.Config)) (*app, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	observability.InitMetrics()
	metricsPath = cfg.MetricsFile
	logger := observability.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a := &app{
		ctx:     observability.ContextWithLogger(ctx, logger),
		cfg:     cfg,
		logger:  logger,
		printer: observability.NewPrinter(cmd.ErrOrStderr()),
		now:     time.Now,
	}

	if cfg.DatabaseURL != "" {
		s, err := store.Connect(a.ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(a.ctx); err != nil {
			s.Close()
			return nil, err
		}
		a.store = s
		logger.Debug("connected to database")
	}
	return a, nil
}

// oracle returns the oracle for tier, or a disabled one when no key is
// configured or the oracle is switched off.
func (a *app) oracle(tier llm.ModelTier) (llm.Oracle, error) {
	if a.cfg.OracleDisabled {
		a.logger.Debug("oracle disabled by configuration")
		return llm.Disabled(), nil
	}
	oracle, closeFn, err := llm.Connect(a.ctx, llm.DefaultConfig(), a.cfg.APIKey, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	a.closers = append(a.closers, closeFn)
	if !llm.IsEnabled(oracle) {
		a.logger.Warn("no API key configured, using deterministic strategies only")
	}
	return oracle, nil
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("failed to close client", "error", err)
		}
	}
	if a.store != nil {
		a.store.Close()
	}
}

// writeJSON writes v as indented JSON to path, or to the command's stdout
// when path is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return err
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeMetrics(_ *cobra.Command) error {
	if metricsPath == "" {
		return nil
	}
	if err := observability.WriteMetrics(metricsPath); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
