// Package tui is an interactive browser over the tagging decision tree:
// domain groups, then their clusters, then the standards of a cluster.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/allenai/mathfish/internal/domain"
)

// optionItem is one option as a tagging prompt would show it, plus the ids
// it resolves to.
type optionItem struct {
	title  string
	desc   string
	option string
	ids    []string
}

func (i optionItem) Title() string       { return i.title }
func (i optionItem) Description() string { return i.desc }
func (i optionItem) FilterValue() string { return i.title + " " + i.desc }

// frame is one level of the drill-down.
type frame struct {
	level    domain.TreeLevel
	title    string
	subtitle string
	list     list.Model
}

func newFrame(level domain.TreeLevel, title, subtitle string, items []list.Item) frame {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return frame{level: level, title: title, subtitle: subtitle, list: l}
}

type model struct {
	theme Theme
	deps  Deps

	stack  []frame
	width  int
	height int

	// picked is the standard last chosen with enter.
	picked *optionItem
	toast  string
}

func Run(deps Deps) error {
	m, err := newModel(deps)
	if err != nil {
		return err
	}
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newModel(deps Deps) (model, error) {
	root, err := domainFrame(deps)
	if err != nil {
		return model{}, err
	}
	return model{
		theme: DefaultTheme(),
		deps:  deps,
		stack: []frame{root},
	}, nil
}

func (m model) Init() tea.Cmd { return nil }

func (m model) top() *frame { return &m.stack[len(m.stack)-1] }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for i := range m.stack {
			m.resize(&m.stack[i])
		}
		return m, nil

	case levelLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			logger(m.deps).Warn("tui.level_failed", zap.Error(msg.err))
			return m, nil
		}
		f := msg.frame
		m.resize(&f)
		m.stack = append(m.stack, f)
		m.toast = ""
		return m, nil

	case tea.KeyMsg:
		top := m.top()
		if top.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if len(m.stack) == 1 {
				return m, tea.Quit
			}
			m.stack = m.stack[:1]
			m.picked = nil
			m.toast = ""
			return m, nil

		case "esc", "b":
			if top.list.FilterState() == list.FilterApplied {
				break
			}
			if m.picked != nil {
				m.picked = nil
				return m, nil
			}
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
				m.toast = ""
			}
			return m, nil

		case "enter":
			it, ok := top.list.SelectedItem().(optionItem)
			if !ok {
				return m, nil
			}
			switch top.level {
			case domain.TreeDomain:
				return m, cmdLoadClusters(m.deps, it.title)
			case domain.TreeCluster:
				return m, cmdLoadStandards(m.deps, it.option, it.ids)
			default:
				m.picked = &it
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	top := m.top()
	top.list, cmd = top.list.Update(msg)
	return m, cmd
}

func (m model) resize(f *frame) {
	w, h := m.width-4, m.height-10
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	f.list.SetSize(w, h)
}

// breadcrumb is the path from the root list to the current one.
func (m model) breadcrumb() string {
	parts := make([]string, 0, len(m.stack))
	for _, f := range m.stack {
		parts = append(parts, f.title)
	}
	return strings.Join(parts, " > ")
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	top := m.stack[len(m.stack)-1]

	header := m.theme.Title.Render("mathfish") + "  " + m.theme.Subtitle.Render(m.breadcrumb()) + "\n"
	if top.subtitle != "" {
		header += m.theme.Subtitle.Render(clampString(top.subtitle, 80)) + "\n"
	}

	body := m.theme.Card.Render(top.list.View())
	if m.picked != nil {
		body += "\n" + m.theme.Card.Render(fmt.Sprintf("%s\n\n%s",
			m.theme.Title.Render(m.picked.title),
			m.picked.desc,
		))
	}
	if m.toast != "" {
		body += "\n" + m.theme.Correct.Render(m.toast)
	}

	help := "↑/↓ navigate • enter open • / search • esc/b back • q quit"
	if len(m.stack) > 1 {
		help = "↑/↓ navigate • enter open • / search • esc/b back • q top"
	}
	return wrap.Render(header + "\n" + body + "\n" + m.theme.Help.Render(help))
}
