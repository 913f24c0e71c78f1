package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/ports"
	"github.com/allenai/mathfish/internal/relgraph"
	"github.com/allenai/mathfish/internal/retriever"
	"github.com/allenai/mathfish/internal/rng"
	"github.com/allenai/mathfish/internal/sampler"
	"github.com/allenai/mathfish/internal/taxonomy"
)

// Engine bundles the components built from one standards file and one domain
// groups file.
type Engine struct {
	Index     *taxonomy.Index
	Groups    domain.DomainGroups
	Retriever *retriever.Retriever
	Sampler   *sampler.Sampler
	Graph     *relgraph.Graph
}

// EngineSummary is what `mathfish validate` reports.
type EngineSummary struct {
	StandardsPath    string   `json:"standards_path"`
	DomainGroupsPath string   `json:"domain_groups_path"`
	Nodes            int      `json:"nodes"`
	Standards        int      `json:"standards"`
	Modeling         int      `json:"modeling"`
	Connected        int      `json:"connected"`
	GraphNodes       int      `json:"graph_nodes"`
	DomainGroups     int      `json:"domain_groups"`
	GroupNames       []string `json:"group_names"`
}

// Summary counts what the engine loaded.
func (e *Engine) Summary() EngineSummary {
	return EngineSummary{
		Nodes:        e.Index.Len(),
		Standards:    len(e.Index.Standards()),
		Modeling:     len(e.Index.ModelingStandards()),
		Connected:    len(e.Index.ConnectedIDs()),
		GraphNodes:   e.Graph.Len(),
		DomainGroups: len(e.Groups),
		GroupNames:   e.Groups.Names(),
	}
}

type LoadEngine struct {
	standards ports.StandardsSource
	groups    ports.DomainGroupSource
	log       *zap.Logger
}

type LoadOption func(*LoadEngine)

// WithLogger is handed down to every component the engine builds.
func WithLogger(l *zap.Logger) LoadOption {
	return func(uc *LoadEngine) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewLoadEngine(ss ports.StandardsSource, gs ports.DomainGroupSource, opts ...LoadOption) *LoadEngine {
	uc := &LoadEngine{
		standards: ss,
		groups:    gs,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute loads both files named by cfg and builds every component. The
// sampler and the retriever get their own generator, both seeded with
// cfg.Seed, so option lists do not depend on how many negatives were drawn.
func (uc *LoadEngine) Execute(ctx context.Context, cfg domain.Config) (*Engine, error) {
	records, err := uc.standards.LoadStandards(cfg.Paths.Standards)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	groups, err := uc.groups.LoadDomainGroups(cfg.Paths.DomainGroups)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ix, err := taxonomy.New(records, taxonomy.WithLogger(uc.log))
	if err != nil {
		return nil, err
	}

	rt, err := retriever.New(ix, groups, rng.New(cfg.Seed), retriever.WithLogger(uc.log))
	if err != nil {
		return nil, err
	}

	g, err := relgraph.New(ix, relgraph.WithLogger(uc.log))
	if err != nil {
		return nil, err
	}

	return &Engine{
		Index:     ix,
		Groups:    groups,
		Retriever: rt,
		Sampler:   sampler.New(ix, rng.New(cfg.Seed), sampler.WithLogger(uc.log)),
		Graph:     g,
	}, nil
}

// Validate loads the engine and reports what it holds without sampling
// anything.
func (uc *LoadEngine) Validate(ctx context.Context, cfg domain.Config) (EngineSummary, error) {
	e, err := uc.Execute(ctx, cfg)
	if err != nil {
		return EngineSummary{}, err
	}
	s := e.Summary()
	s.StandardsPath = cfg.Paths.Standards
	s.DomainGroupsPath = cfg.Paths.DomainGroups
	return s, nil
}
