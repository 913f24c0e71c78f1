package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/allenai/mathfish/internal/infra/logger"
)

func Execute() {
	cmd, opts := newRoot()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.ExecuteContext(ctx)
	stop()
	_ = opts.close()

	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd, _ := newRoot()
	return cmd
}

func newRoot() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "mathfish",
		Short:        "mathfish: curriculum standards taxonomy tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.format {
			case formatPretty, formatJSON:
			default:
				return fmt.Errorf("unsupported format %q (expected pretty|json)", opts.format)
			}
			opts.seedSet = cmd.Flags().Changed("seed")

			// logging stays a no-op unless asked for
			if !opts.debug && opts.logFile == "" {
				return nil
			}
			cleanup, err := logger.Setup(logger.Config{Debug: opts.debug, Path: opts.logFile})
			if err != nil {
				return fmt.Errorf("setup logger: %w", err)
			}
			opts.cleanup = cleanup
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.close()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Path to mathfish.yaml (default: search upward from the working directory, then XDG config dirs)")
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&opts.logFile, "log-file", "", "Write structured logs to this file instead of stderr")
	pf.Uint64Var(&opts.seed, "seed", 0, "Override the configured random seed")
	pf.StringVar(&opts.format, "format", formatPretty, "Output format: pretty|json")

	cmd.AddCommand(
		initCmd(),
		validateCmd(opts),
		normalizeCmd(opts),
		positivesCmd(opts),
		negativesCmd(opts),
		questionsCmd(opts),
		treeCmd(opts),
		distanceCmd(opts),
		standardizeCmd(opts),
		versionCmd(),
	)
	return cmd, opts
}
