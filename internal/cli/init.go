package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/allenai/mathfish/internal/infra/config"
	"github.com/allenai/mathfish/internal/infra/fsworkspace"
	"github.com/allenai/mathfish/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create data/ and runs/ directories and a default mathfish.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := strings.TrimSpace(path)
			if root == "" {
				root = "."
			}
			abs, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("invalid workspace path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(abs, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized mathfish workspace in %s\n", abs)
			fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\n", filepath.Join(abs, config.FileName))
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", ".", "Workspace root")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing mathfish.yaml")
	return c
}
