package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/allenai/mathfish/internal/infra/logger"
	"github.com/allenai/mathfish/internal/standardize"
	"github.com/allenai/mathfish/internal/ui/tui"
)

type standardizeResult struct {
	Label       string `json:"label"`
	ID          string `json:"id,omitempty"`
	Unchanged   bool   `json:"already_standardized"`
	Description string `json:"description,omitempty"`
	Error       string `json:"error,omitempty"`
}

func standardizeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "standardize LABEL...",
		Short: "Map loosely written standard labels onto canonical ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := opts.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			std, err := standardize.New(ws.engine.Index, standardize.WithLogger(logger.L()))
			if err != nil {
				return err
			}

			out := make([]standardizeResult, 0, len(args))
			missed := 0
			for _, label := range args {
				r := standardizeResult{Label: label, Unchanged: std.IsStandardized(label)}
				id, err := std.Standardize(label)
				if err != nil {
					r.Error = err.Error()
					missed++
				} else {
					r.ID = id
					r.Description, _ = std.Description(id)
				}
				out = append(out, r)
			}

			if err := printOut(cmd.OutOrStdout(), opts.format, out, func(w io.Writer) error {
				th := tui.DefaultTheme()
				for _, r := range out {
					if r.Error != "" {
						fmt.Fprintf(w, "%s -> %s\n", r.Label, th.Subtitle.Render("not found"))
						continue
					}
					if r.Unchanged {
						fmt.Fprintf(w, "%s  %s\n", th.Title.Render(r.ID), th.Subtitle.Render(r.Description))
						continue
					}
					fmt.Fprintf(w, "%s -> %s  %s\n", r.Label, th.Title.Render(r.ID), th.Subtitle.Render(r.Description))
				}
				return nil
			}); err != nil {
				return err
			}

			if missed > 0 {
				return fmt.Errorf("%d label(s) could not be standardized", missed)
			}
			return nil
		},
	}
}
