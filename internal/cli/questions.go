package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/allenai/mathfish/internal/app/template"
	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/ui/tui"
	"github.com/allenai/mathfish/internal/usecase"
)

func questionsCmd(opts *rootOptions) *cobra.Command {
	var input string
	var noShuffle bool
	var promptPath string

	c := &cobra.Command{
		Use:   "questions",
		Short: "Build the domain, cluster and standard questions of every instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var prompt string
			if promptPath != "" {
				b, err := os.ReadFile(promptPath)
				if err != nil {
					return &domain.OpError{Op: "questions.prompt", Kind: domain.KindIO, Path: promptPath, Err: err}
				}
				prompt = string(b)
			}

			ws, err := opts.loadWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			insts, err := ws.instanceSource().LoadInstances(cmd.Context(), input)
			if err != nil {
				return err
			}

			labeler := ws.labeler()
			uc := usecase.NewTreeQuestions(ws.engine.Retriever,
				usecase.WithDescriptions(ws.cfg.Tagging.DomainDescriptions),
				usecase.WithShuffle(ws.cfg.Tagging.Shuffle && !noShuffle),
			)

			out := []domain.TreeQuestion{}
			for _, inst := range insts {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				pos, ok, err := labeler.Label(inst)
				if err != nil {
					return fmt.Errorf("instance %q: %w", inst.ID, err)
				}
				if !ok {
					continue
				}
				qs, err := uc.Build(inst.ID, pos)
				if err != nil {
					return err
				}
				out = append(out, qs...)
			}

			if prompt != "" {
				return printPrompts(cmd.OutOrStdout(), opts.format, prompt, out)
			}

			return printOut(cmd.OutOrStdout(), opts.format, out, func(w io.Writer) error {
				th := tui.DefaultTheme()
				for _, q := range out {
					fmt.Fprintf(w, "%s %s\n", th.Title.Render(q.ID), th.Subtitle.Render(string(q.Level)))
					if err := printOptions(w, th, q.Options, q.Correct); err != nil {
						return err
					}
					fmt.Fprintln(w)
				}
				return nil
			})
		},
	}

	c.Flags().StringVarP(&input, "instances", "i", "", "Learning-material JSONL file (required)")
	c.Flags().BoolVar(&noShuffle, "no-shuffle", false, "Keep option lists in file order")
	c.Flags().StringVar(&promptPath, "prompt-template", "", "Render each question through this {{id}}/{{level}}/{{options}}/{{answer}} template")
	_ = c.MarkFlagRequired("instances")
	return c
}

type renderedPrompt struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

func printPrompts(w io.Writer, format, tmpl string, qs []domain.TreeQuestion) error {
	rendered := make([]renderedPrompt, 0, len(qs))
	for _, q := range qs {
		p, err := template.RenderQuestion(tmpl, q)
		if err != nil {
			return fmt.Errorf("question %q: %w", q.ID, err)
		}
		rendered = append(rendered, renderedPrompt{ID: q.ID, Prompt: p})
	}

	return printOut(w, format, rendered, func(w io.Writer) error {
		for _, r := range rendered {
			fmt.Fprintln(w, r.Prompt)
		}
		return nil
	})
}
