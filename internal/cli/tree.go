package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/ui/tui"
	"github.com/allenai/mathfish/internal/usecase"
)

type optionsReport struct {
	Options []string `json:"options"`
	Correct []int    `json:"correct_option_index,omitempty"`
}

func treeCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "tree",
		Short: "Browse the tagging decision tree",
	}

	c.AddCommand(
		treeDomainsCmd(opts),
		treeClustersCmd(opts),
		treeStandardsCmd(opts),
		treeRandomCmd(opts),
		treeResolveCmd(opts),
		treeBrowseCmd(opts),
	)
	return c
}

func printOptionsReport(cmd *cobra.Command, opts *rootOptions, rep optionsReport) error {
	return printOut(cmd.OutOrStdout(), opts.format, rep, func(w io.Writer) error {
		return printOptions(w, tui.DefaultTheme(), rep.Options, rep.Correct)
	})
}

func treeDomainsCmd(opts *rootOptions) *cobra.Command {
	var describe bool
	var noShuffle bool

	c := &cobra.Command{
		Use:   "domains",
		Short: "List the domain group options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := opts.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			d := ws.cfg.Tagging.DomainDescriptions
			if cmd.Flags().Changed("describe") {
				d = describe
			}
			options := ws.engine.Retriever.ListOfDomains(d, ws.cfg.Tagging.Shuffle && !noShuffle)
			return printOptionsReport(cmd, opts, optionsReport{Options: options})
		},
	}

	c.Flags().BoolVar(&describe, "describe", true, "Append each group's description (default from config)")
	c.Flags().BoolVar(&noShuffle, "no-shuffle", false, "Keep options in file order")
	return c
}

func treeClustersCmd(opts *rootOptions) *cobra.Command {
	var noShuffle bool

	c := &cobra.Command{
		Use:   "clusters GROUP",
		Short: "List the cluster options of a domain group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := opts.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			options, err := ws.engine.Retriever.PossibleClusters(args[0], ws.cfg.Tagging.Shuffle && !noShuffle)
			if err != nil {
				return err
			}
			return printOptionsReport(cmd, opts, optionsReport{Options: options})
		},
	}

	c.Flags().BoolVar(&noShuffle, "no-shuffle", false, "Keep options in file order")
	return c
}

func treeStandardsCmd(opts *rootOptions) *cobra.Command {
	var noShuffle bool

	c := &cobra.Command{
		Use:   "standards CLUSTER",
		Short: "List the standard options of a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := opts.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			options, err := ws.engine.Retriever.PossibleStandards(args[0], ws.cfg.Tagging.Shuffle && !noShuffle)
			if err != nil {
				return err
			}
			return printOptionsReport(cmd, opts, optionsReport{Options: options})
		},
	}

	c.Flags().BoolVar(&noShuffle, "no-shuffle", false, "Keep options in file order")
	return c
}

func treeRandomCmd(opts *rootOptions) *cobra.Command {
	var positives []string
	var numOptions int
	var noShuffle bool

	c := &cobra.Command{
		Use:   "random",
		Short: "Build a flat standard option list around the given positives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := opts.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			n := ws.cfg.Tagging.NumOptions
			if cmd.Flags().Changed("num-options") {
				n = numOptions
			}

			rt := ws.engine.Retriever
			options, err := rt.RandomStandards(positives, n, ws.cfg.Tagging.Shuffle && !noShuffle)
			if err != nil {
				return err
			}
			correct, err := usecase.CorrectOptionIndices(options, domain.TreeStandard, domain.NewIDSet(positives...), rt)
			if err != nil {
				return err
			}
			return printOptionsReport(cmd, opts, optionsReport{Options: options, Correct: correct})
		},
	}

	c.Flags().StringSliceVarP(&positives, "standard", "s", nil, "Positive standard id (repeatable, required)")
	c.Flags().IntVar(&numOptions, "num-options", 0, "Total options to show (default from config)")
	c.Flags().BoolVar(&noShuffle, "no-shuffle", false, "Keep positives first, then sampled options")
	_ = c.MarkFlagRequired("standard")
	return c
}

func treeResolveCmd(opts *rootOptions) *cobra.Command {
	var level string

	c := &cobra.Command{
		Use:   "resolve OPTION",
		Short: "Resolve a rendered option back to its taxonomy ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := domain.ParseTreeLevel(level)
			if err != nil {
				return err
			}
			ws, err := opts.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			b, err := ws.engine.Retriever.PointerToNextBranch(args[0], lvl)
			if err != nil {
				return err
			}
			return printOut(cmd.OutOrStdout(), opts.format, b, func(w io.Writer) error {
				for _, id := range b.IDs {
					fmt.Fprintln(w, id)
				}
				return nil
			})
		},
	}

	c.Flags().StringVar(&level, "level", string(domain.TreeStandard), "Tree level: domain|cluster|standard")
	return c
}
