package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/infra/logger"
	"github.com/allenai/mathfish/internal/standardize"
	"github.com/allenai/mathfish/internal/ui/tui"
)

type normalizedInstance struct {
	ID         string      `json:"id"`
	Standards  [][2]string `json:"standards"`
	Unresolved []string    `json:"unresolved,omitempty"`
}

func normalizeCmd(opts *rootOptions) *cobra.Command {
	var input string
	var keepOther bool
	var standardizeLabels bool

	c := &cobra.Command{
		Use:   "normalize",
		Short: "Lift each instance's labels to the Standard level",
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

			var std *standardize.Standardizer
			if standardizeLabels {
				std, err = standardize.New(ws.engine.Index, standardize.WithLogger(logger.L()))
				if err != nil {
					return err
				}
			}

			out := make([]normalizedInstance, 0, len(insts))
			for _, inst := range insts {
				pairs := inst.Standards
				var missed []string
				if std != nil {
					pairs, missed = std.Labels(pairs)
				}

				norm, err := ws.engine.Index.Inherit(pairs, keepOther)
				if err != nil {
					return fmt.Errorf("instance %q: %w", inst.ID, err)
				}
				domain.SortLabels(norm)

				row := normalizedInstance{ID: inst.ID, Standards: make([][2]string, 0, len(norm)), Unresolved: missed}
				for _, p := range norm {
					row.Standards = append(row.Standards, [2]string{p.Relation, p.ID})
				}
				out = append(out, row)
			}

			return printOut(cmd.OutOrStdout(), opts.format, out, func(w io.Writer) error {
				th := tui.DefaultTheme()
				for _, row := range out {
					fmt.Fprintln(w, th.Title.Render(row.ID))
					for _, p := range row.Standards {
						fmt.Fprintf(w, "  %-12s %s\n", p[0], p[1])
					}
					if len(row.Unresolved) > 0 {
						printList(w, th.Subtitle.Render("unresolved"), row.Unresolved)
					}
				}
				return nil
			})
		},
	}

	c.Flags().StringVarP(&input, "instances", "i", "", "Learning-material JSONL file (required)")
	c.Flags().BoolVar(&keepOther, "keep-other-levels", false, "Also keep domain, cluster and sub-standard labels")
	c.Flags().BoolVar(&standardizeLabels, "standardize", false, "Canonicalize loosely written ids (HSS-MD.5 -> S-MD.B.5) first")
	_ = c.MarkFlagRequired("instances")
	return c
}
