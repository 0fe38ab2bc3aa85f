package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/brianbland/gasrisk/pkg/config"
	"github.com/brianbland/gasrisk/pkg/logger"
)

type options struct {
	configPath string
	parser     *config.Parser
}

func main() {
	logger.Initialize(os.Stderr, "info", false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("gasrisk failed")
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "gasrisk",
		Short: "Gas price insurance risk model",
		Long: `gasrisk simulates a base fee history, takes the maximum fee over every
coverage window and prices a contract that pays out when the maximum
exceeds a threshold. A GEV distribution fitted to the maxima gives the
expected payoff.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalysis(cmd, opts)
		},
	}

	opts.parser = config.NewParser(root.PersistentFlags())
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML configuration file")

	root.AddCommand(newRunCmd(opts), newConfigCmd(opts))
	return root
}
