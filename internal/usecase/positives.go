package usecase

import (
	"strings"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/taxonomy"
)

// GroupResolver maps a domain category onto its domain group.
type GroupResolver interface {
	DomainGroupOf(cat string) (string, error)
}

// PositiveLabeler derives the positive labels of every tree level from an
// instance's raw (relation, id) annotations.
type PositiveLabeler struct {
	ix        *taxonomy.Index
	groups    GroupResolver
	relations map[string]struct{}
}

// NewPositiveLabeler keeps pairs whose relation is in relations; an empty list
// falls back to the configured defaults.
func NewPositiveLabeler(ix *taxonomy.Index, groups GroupResolver, relations []string) *PositiveLabeler {
	if len(relations) == 0 {
		relations = domain.DefaultConfig().Tagging.PositiveRelations
	}
	keep := make(map[string]struct{}, len(relations))
	for _, r := range relations {
		keep[strings.TrimSpace(r)] = struct{}{}
	}
	return &PositiveLabeler{ix: ix, groups: groups, relations: keep}
}

// Label returns ok=false when no annotation survives normalization and the
// relation filter. Unknown ids fail with KindNotFound.
func (l *PositiveLabeler) Label(inst domain.Instance) (domain.PositiveLabelSet, bool, error) {
	pairs, err := l.ix.Inherit(inst.Standards, false)
	if err != nil {
		return domain.PositiveLabelSet{}, false, err
	}

	standards := domain.IDSet{}
	for _, p := range pairs {
		if _, ok := l.relations[p.Relation]; ok {
			standards.Add(p.ID)
		}
	}
	if len(standards) == 0 {
		return domain.PositiveLabelSet{}, false, nil
	}

	cats := domain.IDSet{}
	clusters := domain.IDSet{}
	modeling := false
	for id := range standards {
		cats.Add(domain.DomainCategory(id))
		clusters.Add(domain.ClusterOf(id))
		if l.ix.IsModeling(id) {
			modeling = true
		}
	}
	if modeling {
		cats.Add(domain.ModelingCategory)
	}

	groups := domain.IDSet{}
	for cat := range cats {
		g, err := l.groups.DomainGroupOf(cat)
		if err != nil {
			return domain.PositiveLabelSet{}, false, err
		}
		groups.Add(g)
	}

	return domain.PositiveLabelSet{
		DomainCats:   cats.Sorted(),
		DomainGroups: groups.Sorted(),
		Clusters:     clusters.Sorted(),
		Standards:    standards.Sorted(),
	}, true, nil
}
