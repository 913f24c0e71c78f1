package taxonomy

import (
	"go.uber.org/zap"

	"github.com/allenai/mathfish/internal/domain"
)

// Inherit normalizes (relation, id) annotations to the Standard level.
//
// A Sub-standard also emits its parent standard. Every id then expands
// breadth-first through its descendants, so a cluster or domain label stands
// for every node below it. Pairs are deduplicated with the relation as part of
// the key. Unless keepOtherLevels is set, only Standard-level pairs are returned.
//
//	[Alignment S-IC.B]                          -> S-IC.B.3, S-IC.B.4, S-IC.B.5, S-IC.B.6
//	[Alignment F-IF.C.7e] [Alignment F-IF.C.7d] -> F-IF.C.7
//
// Output order follows first emission; callers treat it as a set.
func (ix *Index) Inherit(pairs []domain.LabeledStandard, keepOtherLevels bool) ([]domain.LabeledStandard, error) {
	seen := make(map[domain.LabeledStandard]struct{}, len(pairs))
	expanded := make(map[domain.LabeledStandard]struct{}, len(pairs))
	var emitted []domain.LabeledStandard

	emit := func(p domain.LabeledStandard) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		emitted = append(emitted, p)
	}

	for _, p := range pairs {
		n, err := ix.node(p.ID)
		if err != nil {
			return nil, err
		}
		if n.Level == domain.LevelSubStandard {
			if n.Parent == "" {
				return nil, domain.NewError("taxonomy.inherit", domain.KindIntegrity, "sub-standard %q has no parent", n.ID)
			}
			emit(domain.LabeledStandard{Relation: p.Relation, ID: n.Parent})
		}

		queue := []string{p.ID}
		for len(queue) > 0 {
			cur := domain.LabeledStandard{Relation: p.Relation, ID: queue[0]}
			queue = queue[1:]
			emit(cur)
			// each subtree is walked once per relation
			if _, done := expanded[cur]; done {
				continue
			}
			expanded[cur] = struct{}{}
			queue = append(queue, ix.nodes[ix.byID[cur.ID]].Children...)
		}
	}

	if keepOtherLevels {
		ix.log.Debug("taxonomy.inherit", zap.Int("in", len(pairs)), zap.Int("out", len(emitted)))
		return emitted, nil
	}

	out := make([]domain.LabeledStandard, 0, len(emitted))
	for _, p := range emitted {
		if ix.nodes[ix.byID[p.ID]].Level == domain.LevelStandard {
			out = append(out, p)
		}
	}
	ix.log.Debug("taxonomy.inherit", zap.Int("in", len(pairs)), zap.Int("out", len(out)))
	return out, nil
}
