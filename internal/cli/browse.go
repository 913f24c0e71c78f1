package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allenai/mathfish/internal/infra/logger"
	"github.com/allenai/mathfish/internal/ui/tui"
)

func treeBrowseCmd(opts *rootOptions) *cobra.Command {
	var noShuffle bool

	c := &cobra.Command{
		Use:   "browse",
		Short: "Walk the tree interactively: domains, clusters, standards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.format == formatJSON {
				return fmt.Errorf("browse is interactive; --format %s is not supported", formatJSON)
			}
			ws, err := opts.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(ws.browseDeps(noShuffle))
		},
	}

	c.Flags().BoolVar(&noShuffle, "no-shuffle", false, "Keep options in file order")
	return c
}

func (ws *workspaceCtx) browseDeps(noShuffle bool) tui.Deps {
	return tui.Deps{
		Tree:     ws.engine.Retriever,
		Groups:   ws.engine.Groups,
		Describe: ws.cfg.Tagging.DomainDescriptions,
		Shuffle:  ws.cfg.Tagging.Shuffle && !noShuffle,
		Logger:   logger.L(),
	}
}
