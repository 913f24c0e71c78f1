package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/infra/logger"
	"github.com/allenai/mathfish/internal/ui/tui"
	"github.com/allenai/mathfish/internal/usecase"
)

type negativesReport struct {
	Positives []string          `json:"positives"`
	Strategy  domain.Strategy   `json:"strategy"`
	NSample   int               `json:"n_sample"`
	Seed      uint64            `json:"seed"`
	Negatives []domain.Negative `json:"negatives"`
}

type datasetReport struct {
	SavedID string         `json:"saved_id,omitempty"`
	Dataset domain.Dataset `json:"dataset"`
}

func negativesCmd(opts *rootOptions) *cobra.Command {
	var standards []string
	var input string
	var strategyFlag string
	var nSample int
	var relation string
	var noSave bool

	c := &cobra.Command{
		Use:   "negatives",
		Short: "Sample negative standards for given positives or for every instance in a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (len(standards) == 0) == (input == "") {
				return errors.New("pass either --standard or --instances")
			}

			ws, err := opts.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			strategy := ws.cfg.Sampling.Strategy
			if cmd.Flags().Changed("strategy") {
				if strategy, err = domain.ParseStrategy(strategyFlag); err != nil {
					return err
				}
			}
			n := ws.cfg.Sampling.NSample
			if cmd.Flags().Changed("n-sample") {
				n = nSample
			}
			filter, err := domain.ParseRelationFilter(relation)
			if err != nil {
				return err
			}
			if filter != domain.RelationAll && strategy != domain.StrategyNeighbors {
				return fmt.Errorf("--relation only applies to the %s strategy", domain.StrategyNeighbors)
			}

			if input != "" {
				return labelFile(cmd, opts, ws, input, strategy, n, noSave)
			}

			var negs []domain.Negative
			if filter == domain.RelationAll {
				negs, err = ws.engine.Sampler.Negatives(standards, strategy, n)
			} else {
				var ids []string
				ids, err = ws.engine.Sampler.ByConnections(standards, filter, n)
				for _, id := range ids {
					negs = append(negs, domain.Negative{Strategy: strategy, ID: id})
				}
			}
			if err != nil {
				return err
			}
			if negs == nil {
				negs = []domain.Negative{}
			}

			rep := negativesReport{Positives: standards, Strategy: strategy, NSample: n, Seed: ws.cfg.Seed, Negatives: negs}
			return printOut(cmd.OutOrStdout(), opts.format, rep, func(w io.Writer) error {
				th := tui.DefaultTheme()
				fmt.Fprintf(w, "%s %v\n", th.Title.Render("positives"), rep.Positives)
				fmt.Fprintln(w, th.Subtitle.Render(fmt.Sprintf("strategy=%s n=%d seed=%d", rep.Strategy, rep.NSample, rep.Seed)))
				printNegatives(w, rep.Negatives)
				return nil
			})
		},
	}

	c.Flags().StringSliceVarP(&standards, "standard", "s", nil, "Positive standard id (repeatable)")
	c.Flags().StringVarP(&input, "instances", "i", "", "Label every instance of a learning-material JSONL file")
	c.Flags().StringVar(&strategyFlag, "strategy", "", "Negative sampling strategy (default from config)")
	c.Flags().IntVarP(&nSample, "n-sample", "n", 0, "Negatives per strategy (default from config)")
	c.Flags().StringVar(&relation, "relation", string(domain.RelationAll), "Neighbor relation: all|progress to|progress from|related")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the labeled dataset under the output dir")
	return c
}

func labelFile(cmd *cobra.Command, opts *rootOptions, ws *workspaceCtx, input string, strategy domain.Strategy, n int, noSave bool) error {
	lopts := []usecase.LabelOption{
		usecase.WithSampling(strategy, n),
		usecase.WithSeed(ws.cfg.Seed),
		usecase.WithLabelLogger(logger.L()),
	}
	if !noSave {
		lopts = append(lopts, usecase.WithStore(ws.datasetStore()))
	}

	uc := usecase.NewLabelInstances(ws.instanceSource(), ws.labeler(), ws.engine.Sampler, lopts...)
	res, err := uc.Execute(cmd.Context(), input)
	if err != nil {
		return err
	}

	rep := datasetReport{SavedID: res.SavedID, Dataset: res.Dataset}
	return printOut(cmd.OutOrStdout(), opts.format, rep, func(w io.Writer) error {
		th := tui.DefaultTheme()
		for _, row := range rep.Dataset.Rows {
			fmt.Fprintln(w, th.Title.Render(row.ID))
			printList(w, "positives", row.Positives.Standards)
			printNegatives(w, row.Negatives)
		}
		fmt.Fprintln(w, th.Subtitle.Render(fmt.Sprintf("%d labeled, %d skipped", len(rep.Dataset.Rows), len(rep.Dataset.Skipped))))
		if rep.SavedID != "" {
			fmt.Fprintf(w, "Saved: %s\n", rep.SavedID)
		}
		return nil
	})
}

func printNegatives(w io.Writer, negs []domain.Negative) {
	if len(negs) == 0 {
		fmt.Fprintln(w, "  negatives: (none)")
		return
	}
	fmt.Fprintln(w, "  negatives:")
	for _, n := range negs {
		fmt.Fprintf(w, "    - %-10s %s\n", n.ID, n.Strategy)
	}
}
