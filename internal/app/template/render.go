// Package template renders question prompts from plain-text templates with
// {{name}} placeholders.
package template

import (
	"fmt"
	"strings"

	"github.com/allenai/mathfish/internal/domain"
)

// RenderString replaces {{VAR}} placeholders with vars values.
// It returns an error if a variable is missing or a placeholder is malformed.
func RenderString(input string, vars map[string]string) (string, error) {
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", domain.NewError("template.render", domain.KindInvalidArgument, "unclosed template expression")
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", domain.NewError("template.render", domain.KindInvalidArgument, "empty template expression")
		}

		value, ok := vars[key]
		if !ok {
			return "", domain.NotFound("template.render", "template variable", key)
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

// QuestionVars exposes a question to a prompt template:
//
//	{{id}}       im_1_cluster_0
//	{{level}}    cluster
//	{{options}}  "A. circles\nB. squares\n"
//	{{answer}}   "A, C"
func QuestionVars(q domain.TreeQuestion) (map[string]string, error) {
	letters, err := domain.OptionLetters(len(q.Options))
	if err != nil {
		return nil, err
	}

	var opts strings.Builder
	for i, o := range q.Options {
		fmt.Fprintf(&opts, "%s. %s\n", letters[i], o)
	}

	answer := make([]string, 0, len(q.Correct))
	for _, i := range q.Correct {
		if i < 0 || i >= len(letters) {
			return nil, domain.NewError("template.question_vars", domain.KindInvalidArgument, "%s: correct index %d out of range", q.ID, i)
		}
		answer = append(answer, letters[i])
	}

	return map[string]string{
		"id":      q.ID,
		"level":   string(q.Level),
		"options": opts.String(),
		"answer":  strings.Join(answer, ", "),
	}, nil
}

// RenderQuestion renders tmpl with the variables of q.
func RenderQuestion(tmpl string, q domain.TreeQuestion) (string, error) {
	vars, err := QuestionVars(q)
	if err != nil {
		return "", err
	}
	return RenderString(tmpl, vars)
}
