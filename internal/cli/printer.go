package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/ui/tui"
)

const (
	formatPretty = "pretty"
	formatJSON   = "json"
)

func printOut(w io.Writer, format string, payload any, pretty func(io.Writer) error) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case formatPretty, "":
		return pretty(w)
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

// printOptions renders a lettered option list; correct options are marked.
func printOptions(w io.Writer, th tui.Theme, options []string, correct []int) error {
	letters, err := domain.OptionLetters(len(options))
	if err != nil {
		return err
	}
	marked := make(map[int]bool, len(correct))
	for _, i := range correct {
		marked[i] = true
	}
	for i, opt := range options {
		mark := "  "
		if marked[i] {
			mark = th.Correct.Render("* ")
		}
		fmt.Fprintf(w, "%s%s %s\n", mark, th.Letter.Render(letters[i]+"."), opt)
	}
	return nil
}

func printList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(w, "  %s: (none)\n", label)
		return
	}
	fmt.Fprintf(w, "  %s: %s\n", label, strings.Join(items, ", "))
}

func formatPairs(pairs []domain.LabeledStandard) []string {
	out := make([]string, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.String())
	}
	return out
}
