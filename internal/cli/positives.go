package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/ui/tui"
)

type positivesReport struct {
	Rows    []positivesRow `json:"rows"`
	Skipped []string       `json:"skipped"`
}

type positivesRow struct {
	ID        string                  `json:"id"`
	Positives domain.PositiveLabelSet `json:"positives"`
}

func positivesCmd(opts *rootOptions) *cobra.Command {
	var input string

	c := &cobra.Command{
		Use:   "positives",
		Short: "Derive positive domain groups, clusters and standards for each instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := opts.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			insts, err := ws.instanceSource().LoadInstances(cmd.Context(), input)
			if err != nil {
				return err
			}

			labeler := ws.labeler()
			rep := positivesReport{Rows: []positivesRow{}, Skipped: []string{}}
			for _, inst := range insts {
				pos, ok, err := labeler.Label(inst)
				if err != nil {
					return fmt.Errorf("instance %q: %w", inst.ID, err)
				}
				if !ok {
					rep.Skipped = append(rep.Skipped, inst.ID)
					continue
				}
				rep.Rows = append(rep.Rows, positivesRow{ID: inst.ID, Positives: pos})
			}

			return printOut(cmd.OutOrStdout(), opts.format, rep, func(w io.Writer) error {
				th := tui.DefaultTheme()
				for _, r := range rep.Rows {
					fmt.Fprintln(w, th.Title.Render(r.ID))
					printPositives(w, r.Positives)
				}
				if len(rep.Skipped) > 0 {
					fmt.Fprintln(w, th.Subtitle.Render(fmt.Sprintf("skipped (no positive standard): %d", len(rep.Skipped))))
				}
				return nil
			})
		},
	}

	c.Flags().StringVarP(&input, "instances", "i", "", "Learning-material JSONL file (required)")
	_ = c.MarkFlagRequired("instances")
	return c
}

func printPositives(w io.Writer, p domain.PositiveLabelSet) {
	printList(w, "domain groups", p.DomainGroups)
	printList(w, "domain cats", p.DomainCats)
	printList(w, "clusters", p.Clusters)
	printList(w, "standards", p.Standards)
}
