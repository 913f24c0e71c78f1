// Package sampler draws negative (non-aligned) standards for a set of positive
// standards, either by filtering on grade and domain or by walking one hop of
// the relation graph.
package sampler

import (
	"math/rand/v2"
	"sort"

	"go.uber.org/zap"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/rng"
	"github.com/allenai/mathfish/internal/taxonomy"
)

// crossDomains lets an HS category match its K-8 analogue and back.
var crossDomains = map[string]string{
	"N":  "NS",
	"NS": "N",
	"A":  "OA",
	"OA": "A",
	"S":  "SP",
	"SP": "S",
}

// Sampler is not safe for concurrent use: every draw advances its generator.
type Sampler struct {
	ix  *taxonomy.Index
	rnd *rand.Rand
	log *zap.Logger
}

type Option func(*Sampler)

func WithLogger(l *zap.Logger) Option {
	return func(s *Sampler) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Sampler drawing from rnd. A nil rnd is seeded with 0.
func New(ix *taxonomy.Index, rnd *rand.Rand, opts ...Option) *Sampler {
	if rnd == nil {
		rnd = rng.New(0)
	}
	s := &Sampler{ix: ix, rnd: rnd, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Negatives samples with the named strategy and tags each result with the
// strategy that produced it. all-negative-types runs the four grade/domain
// strategies and neighbors with the same n, so it returns at most 5*n items.
func (s *Sampler) Negatives(positives []string, strategy domain.Strategy, n int) ([]domain.Negative, error) {
	strategy, err := domain.ParseStrategy(string(strategy))
	if err != nil {
		return nil, err
	}

	switch strategy {
	case domain.StrategyNeighbors:
		ids, err := s.ByConnections(positives, domain.RelationAll, n)
		if err != nil {
			return nil, err
		}
		return tag(strategy, ids), nil

	case domain.StrategyAllNegativeTypes:
		if n <= 0 {
			return nil, domain.NewError("sampler.negatives", domain.KindInvalidArgument, "%s needs n_sample > 0, got %d", strategy, n)
		}
		var out []domain.Negative
		for _, st := range domain.GradeDomainStrategies {
			ids, err := s.ByGradeAndDomain(positives, st, n)
			if err != nil {
				return nil, err
			}
			out = append(out, tag(st, ids)...)
		}
		ids, err := s.ByConnections(positives, domain.RelationAll, n)
		if err != nil {
			return nil, err
		}
		out = append(out, tag(domain.StrategyNeighbors, ids)...)
		s.log.Debug("sampler.all_negative_types", zap.Int("positives", len(positives)), zap.Int("negatives", len(out)))
		return out, nil

	default:
		ids, err := s.ByGradeAndDomain(positives, strategy, n)
		if err != nil {
			return nil, err
		}
		return tag(strategy, ids), nil
	}
}

func tag(st domain.Strategy, ids []string) []domain.Negative {
	out := make([]domain.Negative, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Negative{Strategy: st, ID: id})
	}
	return out
}

// ByGradeAndDomain keeps Standard-level ids outside positives whose grade and
// (cross-mapped) domain category satisfy the strategy's same/different
// clauses, then draws up to n of them.
func (s *Sampler) ByGradeAndDomain(positives []string, strategy domain.Strategy, n int) ([]string, error) {
	dom, grade, ok := strategy.GradeDomain()
	if !ok {
		return nil, domain.NewError("sampler.by_grade_and_domain", domain.KindInvalidArgument, "%q is not a grade/domain strategy", strategy)
	}
	if n < 0 {
		return nil, domain.NewError("sampler.by_grade_and_domain", domain.KindInvalidArgument, "n_sample must be >= 0, got %d", n)
	}

	positiveSet := domain.NewIDSet(positives...)
	grades := domain.IDSet{}
	domains := domain.IDSet{}
	for _, p := range positives {
		node, err := s.ix.Node(p)
		if err != nil {
			return nil, err
		}
		grades.Add(node.Grade)
		domains.Add(node.DomainCategory)
		if alt, ok := crossDomains[node.DomainCategory]; ok {
			domains.Add(alt)
		}
	}

	var pool []string
	for _, id := range s.ix.Standards() {
		if positiveSet.Has(id) {
			continue
		}
		node, err := s.ix.Node(id)
		if err != nil {
			return nil, err
		}
		if grades.Has(node.Grade) != (grade == domain.ClauseSame) {
			continue
		}
		if domains.Has(node.DomainCategory) != (dom == domain.ClauseSame) {
			continue
		}
		pool = append(pool, id)
	}

	out := s.draw(pool, n)
	s.log.Debug("sampler.by_grade_and_domain",
		zap.String("strategy", string(strategy)),
		zap.Int("pool", len(pool)),
		zap.Int("sampled", len(out)),
	)
	return out, nil
}

// ByConnections unions the relation-graph neighbors of every positive under
// the filter, minus the positives themselves. n <= 0 returns every neighbor.
func (s *Sampler) ByConnections(positives []string, filter domain.RelationFilter, n int) ([]string, error) {
	if _, err := domain.ParseRelationFilter(string(filter)); err != nil {
		return nil, err
	}

	positiveSet := domain.NewIDSet(positives...)
	neighbors := domain.IDSet{}
	for _, rel := range domain.Relations {
		if !filter.Includes(rel) {
			continue
		}
		for _, p := range positives {
			ids, err := s.ix.Connections(p, rel)
			if err != nil {
				return nil, err
			}
			for _, id := range ids {
				if !positiveSet.Has(id) {
					neighbors.Add(id)
				}
			}
		}
	}

	pool := neighbors.Sorted()
	if n <= 0 {
		return pool, nil
	}
	out := s.draw(pool, n)
	s.log.Debug("sampler.by_connections",
		zap.String("relation", string(filter)),
		zap.Int("pool", len(pool)),
		zap.Int("sampled", len(out)),
	)
	return out, nil
}

// draw returns the whole pool when it fits in n, otherwise n ids drawn
// without replacement. The pool is sorted first so a fixed seed always
// yields the same draw.
func (s *Sampler) draw(pool []string, n int) []string {
	sorted := append([]string(nil), pool...)
	sort.Strings(sorted)
	if len(sorted) <= n {
		return sorted
	}
	return rng.Sample(s.rnd, sorted, n)
}
