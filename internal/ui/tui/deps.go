package tui

import (
	"go.uber.org/zap"

	"github.com/allenai/mathfish/internal/domain"
)

// Tree is the drill-down the browser walks: domain options, then the
// clusters of a group, then the standards of a cluster.
type Tree interface {
	ListOfDomains(describe, shuffle bool) []string
	PossibleClusters(group string, shuffle bool) ([]string, error)
	PossibleStandards(cluster string, shuffle bool) ([]string, error)
	PointerToNextBranch(option string, level domain.TreeLevel) (domain.Branch, error)
}

type Deps struct {
	Tree   Tree
	Groups domain.DomainGroups

	Describe bool
	Shuffle  bool

	Logger *zap.Logger
}
