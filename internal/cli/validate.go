package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/allenai/mathfish/internal/infra/jsongroups"
	"github.com/allenai/mathfish/internal/infra/jsonlstandards"
	"github.com/allenai/mathfish/internal/infra/logger"
	"github.com/allenai/mathfish/internal/ui/tui"
	"github.com/allenai/mathfish/internal/usecase"
)

type validateReport struct {
	Config string `json:"config"`
	usecase.EngineSummary
}

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the standards and domain groups and check their integrity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, used, err := opts.loadConfig()
			if err != nil {
				return err
			}

			uc := usecase.NewLoadEngine(
				jsonlstandards.NewLoader(),
				jsongroups.NewLoader(),
				usecase.WithLogger(logger.L()),
			)
			s, err := uc.Validate(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			rep := validateReport{Config: used, EngineSummary: s}
			return printOut(cmd.OutOrStdout(), opts.format, rep, func(w io.Writer) error {
				th := tui.DefaultTheme()
				cfgName := rep.Config
				if cfgName == "" {
					cfgName = "(defaults)"
				}
				body := fmt.Sprintf("%s\n%s\n\nconfig:        %s\nstandards:     %s\ndomain groups: %s\n\nnodes:         %d\nstandards:     %d (%d modeling)\nconnected:     %d\ngraph nodes:   %d\ndomain groups: %d (%s)",
					th.Title.Render("OK"),
					th.Subtitle.Render("taxonomy loaded without integrity errors"),
					cfgName, rep.StandardsPath, rep.DomainGroupsPath,
					rep.Nodes, rep.Standards, rep.Modeling, rep.Connected, rep.GraphNodes, rep.DomainGroups, strings.Join(rep.GroupNames, ", "),
				)
				_, err := fmt.Fprintln(w, th.Card.Render(body))
				return err
			})
		},
	}
}
