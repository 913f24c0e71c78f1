package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/allenai/mathfish/internal/domain"
)

type distanceReport struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Distance int    `json:"distance"`
	// GradeDistance is grade(to) - grade(from), omitted for ids without a grade.
	GradeDistance *int `json:"grade_distance,omitempty"`
}

func distanceCmd(opts *rootOptions) *cobra.Command {
	var directed bool

	c := &cobra.Command{
		Use:   "distance A B",
		Short: "Shortest hop count between two standards in the relation graph",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := opts.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}

			g := ws.engine.Graph
			dist := g.Distance
			if directed {
				dist = g.DirectedDistance
			}
			d, err := dist(args[0], args[1])
			if err != nil {
				return err
			}

			rep := distanceReport{From: args[0], To: args[1], Distance: d}
			if gd, _, _, err := domain.GradeLevelDistance([]string{args[0]}, args[1]); err == nil {
				rep.GradeDistance = &gd
			}

			return printOut(cmd.OutOrStdout(), opts.format, rep, func(w io.Writer) error {
				fmt.Fprintf(w, "%s -> %s: %d hop(s)\n", rep.From, rep.To, rep.Distance)
				if rep.GradeDistance != nil {
					fmt.Fprintf(w, "grade distance: %+d\n", *rep.GradeDistance)
				}
				return nil
			})
		},
	}

	c.Flags().BoolVar(&directed, "directed", false, "Follow relation direction (not supported by the undirected graph)")
	return c
}
