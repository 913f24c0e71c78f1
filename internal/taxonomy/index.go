package taxonomy

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/allenai/mathfish/internal/domain"
)

// Node is one taxonomy entry with its derived fields.
type Node struct {
	ID             string
	Description    string
	Level          domain.Level
	Parent         string
	Children       []string
	DomainCategory string
	Grade          string
	Modeling       bool
}

// Index is an immutable, load-once view over the standards records.
type Index struct {
	nodes []Node
	byID  map[string]int

	// relation graph, independent of the parent/children forest
	connections map[string]map[domain.Relation][]string

	standards []string
	modeling  domain.IDSet

	log *zap.Logger
}

type Option func(*Index)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(ix *Index) {
		if l != nil {
			ix.log = l
		}
	}
}

// New builds and validates an Index.
func New(records []domain.StandardRecord, opts ...Option) (*Index, error) {
	ix := &Index{
		nodes:       make([]Node, 0, len(records)),
		byID:        make(map[string]int, len(records)),
		connections: map[string]map[domain.Relation][]string{},
		modeling:    domain.IDSet{},
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ix)
	}

	standardDescriptions := map[string]string{}

	for i, r := range records {
		if strings.TrimSpace(r.ID) == "" {
			return nil, integrity("records[%d]: empty id", i)
		}
		if _, dup := ix.byID[r.ID]; dup {
			return nil, integrity("duplicate id %q", r.ID)
		}
		if _, err := domain.ParseLevel(string(r.Level)); err != nil {
			return nil, integrity("%s: %v", r.ID, err)
		}

		if r.Level == domain.LevelStandard {
			key := strings.TrimSpace(r.Description)
			if other, dup := standardDescriptions[key]; dup {
				return nil, integrity("standards %q and %q share description %q", other, r.ID, key)
			}
			standardDescriptions[key] = r.ID
			ix.standards = append(ix.standards, r.ID)
			if r.Modeling {
				ix.modeling.Add(r.ID)
			}
		}

		ix.byID[r.ID] = len(ix.nodes)
		ix.nodes = append(ix.nodes, Node{
			ID:             r.ID,
			Description:    r.Description,
			Level:          r.Level,
			Parent:         r.Parent,
			Children:       append([]string(nil), r.Children...),
			DomainCategory: domain.DomainCategory(r.ID),
			Grade:          domain.Grade(r.ID),
			Modeling:       r.Modeling,
		})

		if len(r.Connections) > 0 {
			rels := make(map[domain.Relation][]string, len(r.Connections))
			for rel, ids := range r.Connections {
				rels[rel] = append([]string(nil), ids...)
			}
			ix.connections[r.ID] = rels
		}
	}

	for _, n := range ix.nodes {
		if n.Parent != "" {
			if _, ok := ix.byID[n.Parent]; !ok {
				return nil, integrity("%s: parent %q does not exist", n.ID, n.Parent)
			}
		}
		for _, c := range n.Children {
			if _, ok := ix.byID[c]; !ok {
				return nil, integrity("%s: child %q does not exist", n.ID, c)
			}
		}
	}

	ix.log.Info("taxonomy.loaded",
		zap.Int("nodes", len(ix.nodes)),
		zap.Int("standards", len(ix.standards)),
		zap.Int("modeling", len(ix.modeling)),
		zap.Int("connected", len(ix.connections)),
	)
	return ix, nil
}

func integrity(format string, args ...any) error {
	return &domain.OpError{Op: "taxonomy.new", Kind: domain.KindIntegrity, Err: fmt.Errorf(format, args...)}
}

// Len returns the number of nodes.
func (ix *Index) Len() int { return len(ix.nodes) }

// Has reports whether id is a known node.
func (ix *Index) Has(id string) bool {
	_, ok := ix.byID[id]
	return ok
}

// Node returns a copy of the node for id.
func (ix *Index) Node(id string) (Node, error) {
	n, err := ix.node(id)
	if err != nil {
		return Node{}, err
	}
	out := *n
	out.Children = append([]string(nil), n.Children...)
	return out, nil
}

func (ix *Index) node(id string) (*Node, error) {
	i, ok := ix.byID[id]
	if !ok {
		return nil, domain.NotFound("taxonomy.node", "standard", id)
	}
	return &ix.nodes[i], nil
}

// Level returns the taxonomy level of id.
func (ix *Index) Level(id string) (domain.Level, error) {
	n, err := ix.node(id)
	if err != nil {
		return "", err
	}
	return n.Level, nil
}

// Parent returns the parent id of id, empty for roots.
func (ix *Index) Parent(id string) (string, error) {
	n, err := ix.node(id)
	if err != nil {
		return "", err
	}
	return n.Parent, nil
}

// Children returns the child ids of id in file order.
func (ix *Index) Children(id string) ([]string, error) {
	n, err := ix.node(id)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), n.Children...), nil
}

// Description returns the description of id.
func (ix *Index) Description(id string) (string, error) {
	n, err := ix.node(id)
	if err != nil {
		return "", err
	}
	return n.Description, nil
}

// DomainCategory returns the derived domain category of id.
func (ix *Index) DomainCategory(id string) (string, error) {
	n, err := ix.node(id)
	if err != nil {
		return "", err
	}
	return n.DomainCategory, nil
}

// Grade returns the derived grade of id.
func (ix *Index) Grade(id string) (string, error) {
	n, err := ix.node(id)
	if err != nil {
		return "", err
	}
	return n.Grade, nil
}

// Connections returns the neighbors of id under one relation kind. A known id
// without connections yields an empty slice.
func (ix *Index) Connections(id string, rel domain.Relation) ([]string, error) {
	if _, err := ix.node(id); err != nil {
		return nil, err
	}
	return append([]string(nil), ix.connections[id][rel]...), nil
}

// ConnectedIDs returns every id that has a non-empty connections map, in file order.
func (ix *Index) ConnectedIDs() []string {
	out := make([]string, 0, len(ix.connections))
	for _, n := range ix.nodes {
		if _, ok := ix.connections[n.ID]; ok {
			out = append(out, n.ID)
		}
	}
	return out
}

// IDs returns every node id in file order.
func (ix *Index) IDs() []string {
	out := make([]string, 0, len(ix.nodes))
	for _, n := range ix.nodes {
		out = append(out, n.ID)
	}
	return out
}

// Standards returns every Standard-level id in file order.
func (ix *Index) Standards() []string {
	return append([]string(nil), ix.standards...)
}

// NodesAt returns copies of every node at the given level, in file order.
func (ix *Index) NodesAt(level domain.Level) []Node {
	var out []Node
	for _, n := range ix.nodes {
		if n.Level == level {
			n.Children = append([]string(nil), n.Children...)
			out = append(out, n)
		}
	}
	return out
}

// IsModeling reports whether id is one of the cross-cutting Modeling standards.
func (ix *Index) IsModeling(id string) bool { return ix.modeling.Has(id) }

// ModelingStandards returns a copy of the Modeling standard set.
func (ix *Index) ModelingStandards() domain.IDSet {
	out := make(domain.IDSet, len(ix.modeling))
	for id := range ix.modeling {
		out.Add(id)
	}
	return out
}
