package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brianbland/gasrisk/pkg/analysis"
	"github.com/brianbland/gasrisk/pkg/logger"
	"github.com/brianbland/gasrisk/pkg/visualization"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the risk model and print the premium and expected payoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalysis(cmd, opts)
		},
	}
}

func runAnalysis(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.parser.Parse(opts.configPath)
	if err != nil {
		return err
	}

	logger.Initialize(cmd.ErrOrStderr(), cfg.Output.LogLevel, false)
	log := logger.ForComponent("analysis")

	res, err := analysis.NewAnalyzer(*cfg, nil, log).Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out := cmd.OutOrStdout()
	switch cfg.Output.Format {
	case "json":
		if err := analysis.WriteJSON(out, res); err != nil {
			return err
		}
	default:
		if err := analysis.PrintSummary(out, res); err != nil {
			return err
		}
		if cfg.Output.Details {
			if err := analysis.PrintDetails(out, res); err != nil {
				return err
			}
		}
	}

	if cfg.Output.EnableGraphs {
		paths, err := visualization.NewGenerator().GenerateAll(res, cfg.Output.Dir, cfg.Output.LogScale)
		if err != nil {
			return err
		}
		vlog := logger.ForComponent("visualization")
		for _, path := range paths {
			vlog.Info().Str("path", path).Msg("chart saved")
		}
	}

	return nil
}
