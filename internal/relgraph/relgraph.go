// Package relgraph measures hop distance over the relation graph between
// standards ("progress to", "progress from", "related") with edge direction
// discarded. It is used for post-hoc analysis of sampled negatives.
package relgraph

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/taxonomy"
)

// Graph is an undirected view of every connection in the index.
// It is read-only after New and safe for concurrent Distance calls.
type Graph struct {
	ix  *taxonomy.Index
	g   *simple.UndirectedGraph
	ids map[string]int64
	log *zap.Logger
}

type Option func(*Graph)

func WithLogger(l *zap.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.log = l
		}
	}
}

// New adds an edge from every connected standard to each neighbor listed
// under any relation kind. Self-edges are dropped.
func New(ix *taxonomy.Index, opts ...Option) (*Graph, error) {
	rg := &Graph{
		ix:  ix,
		g:   simple.NewUndirectedGraph(),
		ids: map[string]int64{},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(rg)
	}

	edges := 0
	for _, id := range ix.ConnectedIDs() {
		from := rg.node(id)
		for _, rel := range domain.Relations {
			neighbors, err := ix.Connections(id, rel)
			if err != nil {
				return nil, err
			}
			for _, n := range neighbors {
				if n == id {
					continue
				}
				to := rg.node(n)
				if !rg.g.HasEdgeBetween(from.ID(), to.ID()) {
					rg.g.SetEdge(rg.g.NewEdge(from, to))
					edges++
				}
			}
		}
	}

	rg.log.Info("relgraph.built", zap.Int("nodes", len(rg.ids)), zap.Int("edges", edges))
	return rg, nil
}

func (rg *Graph) node(id string) graph.Node {
	if nid, ok := rg.ids[id]; ok {
		return rg.g.Node(nid)
	}
	n := rg.g.NewNode()
	rg.g.AddNode(n)
	rg.ids[id] = n.ID()
	return n
}

// Len returns the number of standards that take part in at least one edge.
func (rg *Graph) Len() int { return len(rg.ids) }

// Distance returns the shortest hop count between a and b. Ids that exist in
// the taxonomy but in different components, or outside the graph entirely,
// yield a NoPath error; callers treat it as infinite distance.
func (rg *Graph) Distance(a, b string) (int, error) {
	const op = "relgraph.distance"
	for _, id := range []string{a, b} {
		if _, ok := rg.ids[id]; !ok && !rg.ix.Has(id) {
			return 0, domain.NotFound(op, "standard", id)
		}
	}
	if a == b {
		return 0, nil
	}

	from, okA := rg.ids[a]
	to, okB := rg.ids[b]
	if !okA || !okB {
		return 0, domain.NewError(op, domain.KindNoPath, "%s and %s are not connected", a, b)
	}

	dist := -1
	var bf traverse.BreadthFirst
	bf.Walk(rg.g, rg.g.Node(from), func(n graph.Node, d int) bool {
		if n.ID() == to {
			dist = d
			return true
		}
		return false
	})
	if dist < 0 {
		return 0, domain.NewError(op, domain.KindNoPath, "%s and %s are not connected", a, b)
	}
	rg.log.Debug(op, zap.String("a", a), zap.String("b", b), zap.Int("distance", dist))
	return dist, nil
}

// DirectedDistance is not offered: the graph discards edge direction.
func (rg *Graph) DirectedDistance(a, b string) (int, error) {
	return 0, domain.NewError("relgraph.directed_distance", domain.KindUnsupported, "directed distance from %s to %s", a, b)
}
