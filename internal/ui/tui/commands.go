package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/allenai/mathfish/internal/domain"
)

// domainFrame lists every domain group, each resolved to its group name.
func domainFrame(deps Deps) (frame, error) {
	opts := deps.Tree.ListOfDomains(deps.Describe, deps.Shuffle)
	items := make([]list.Item, 0, len(opts))
	for _, opt := range opts {
		b, err := deps.Tree.PointerToNextBranch(opt, domain.TreeDomain)
		if err != nil {
			return frame{}, err
		}
		it := optionItem{title: b.ID(), option: opt, ids: b.IDs}
		if g, ok := deps.Groups.Get(b.ID()); ok {
			it.desc = g.Description
		}
		items = append(items, it)
	}
	return newFrame(domain.TreeDomain, "Domains", "", items), nil
}

func cmdLoadClusters(deps Deps, group string) tea.Cmd {
	return func() tea.Msg {
		opts, err := deps.Tree.PossibleClusters(group, deps.Shuffle)
		if err != nil {
			return levelLoadedMsg{err: err}
		}

		items := make([]list.Item, 0, len(opts))
		for _, opt := range opts {
			b, err := deps.Tree.PointerToNextBranch(opt, domain.TreeCluster)
			if err != nil {
				return levelLoadedMsg{err: err}
			}
			items = append(items, optionItem{
				title:  opt,
				desc:   strings.Join(b.IDs, ", "),
				option: opt,
				ids:    b.IDs,
			})
		}

		subtitle := ""
		if g, ok := deps.Groups.Get(group); ok {
			subtitle = g.Description
		}
		logger(deps).Debug("tui.clusters", zap.String("group", group), zap.Int("options", len(items)))
		return levelLoadedMsg{frame: newFrame(domain.TreeCluster, group, subtitle, items)}
	}
}

// cmdLoadStandards lists the standards of every cluster a cluster option
// stands for; a shared description fans out to several clusters.
func cmdLoadStandards(deps Deps, description string, clusters []string) tea.Cmd {
	return func() tea.Msg {
		var items []list.Item
		for _, c := range clusters {
			opts, err := deps.Tree.PossibleStandards(c, deps.Shuffle)
			if err != nil {
				return levelLoadedMsg{err: err}
			}
			for _, opt := range opts {
				b, err := deps.Tree.PointerToNextBranch(opt, domain.TreeStandard)
				if err != nil {
					return levelLoadedMsg{err: err}
				}
				items = append(items, optionItem{
					title:  b.ID(),
					desc:   opt,
					option: opt,
					ids:    b.IDs,
				})
			}
		}

		logger(deps).Debug("tui.standards", zap.Strings("clusters", clusters), zap.Int("options", len(items)))
		return levelLoadedMsg{frame: newFrame(domain.TreeStandard, description, strings.Join(clusters, ", "), items)}
	}
}

func logger(deps Deps) *zap.Logger {
	if deps.Logger == nil {
		return zap.NewNop()
	}
	return deps.Logger
}
