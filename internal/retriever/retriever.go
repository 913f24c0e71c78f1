// Package retriever serves the three layers of the tagging decision tree
// (domain group, cluster, standard) as option lists and resolves a chosen
// option string back to the taxonomy node(s) it was rendered from.
//
// Shuffling never touches the retriever's own tables: every list is copied
// before it is permuted, so PointerToNextBranch resolves an option the same
// way no matter how it was shown.
package retriever

import (
	"math/rand/v2"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/rng"
	"github.com/allenai/mathfish/internal/taxonomy"
)

// descriptionSep joins a domain group name and its description in an option.
const descriptionSep = ": "

// Retriever is not safe for concurrent use: shuffles advance its generator.
type Retriever struct {
	ix     *taxonomy.Index
	groups domain.DomainGroups
	rnd    *rand.Rand
	log    *zap.Logger

	groupByName map[string]int    // trimmed group name -> index into groups
	catToGroup  map[string]string // domain category -> group name

	// domain category -> cluster descriptions in file order, and
	// (category, description) -> cluster ids
	domainClusters map[string][]string
	clusterIDs     map[string]map[string][]string

	clusterDescriptions map[string][]string // global description -> cluster ids
	clusterStandards    map[string][]string // cluster id -> standard ids

	standardDescription map[string]string // standard id -> description
	standardByDesc      map[string]string // trimmed description -> standard id
	standards           []string          // sorted
}

type Option func(*Retriever)

func WithLogger(l *zap.Logger) Option {
	return func(r *Retriever) {
		if l != nil {
			r.log = l
		}
	}
}

// New indexes clusters and standards under their domain groups. It fails with
// an integrity error when a domain category belongs to two groups, when a
// cluster's category belongs to none, or when a cluster description is reused
// across domain categories.
func New(ix *taxonomy.Index, groups domain.DomainGroups, rnd *rand.Rand, opts ...Option) (*Retriever, error) {
	if rnd == nil {
		rnd = rng.New(0)
	}
	r := &Retriever{
		ix:                  ix,
		groups:              append(domain.DomainGroups(nil), groups...),
		rnd:                 rnd,
		log:                 zap.NewNop(),
		groupByName:         map[string]int{},
		catToGroup:          map[string]string{},
		domainClusters:      map[string][]string{},
		clusterIDs:          map[string]map[string][]string{},
		clusterDescriptions: map[string][]string{},
		clusterStandards:    map[string][]string{},
		standardDescription: map[string]string{},
		standardByDesc:      map[string]string{},
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, g := range r.groups {
		name := strings.TrimSpace(g.Name)
		if _, dup := r.groupByName[name]; dup {
			return nil, integrity("duplicate domain group %q", name)
		}
		r.groupByName[name] = i
		for _, cat := range g.DomainCats {
			if other, dup := r.catToGroup[cat]; dup {
				return nil, integrity("domain category %q is in groups %q and %q", cat, other, g.Name)
			}
			r.catToGroup[cat] = g.Name
		}
	}

	descCategory := map[string]string{}
	for _, c := range ix.NodesAt(domain.LevelCluster) {
		cat := c.DomainCategory
		if _, ok := r.catToGroup[cat]; !ok {
			return nil, integrity("cluster %s: domain category %q has no domain group", c.ID, cat)
		}
		text := strings.TrimSpace(c.Description)
		if other, seen := descCategory[text]; seen && other != cat {
			return nil, integrity("cluster description %q is used by domain categories %q and %q", text, other, cat)
		}
		descCategory[text] = cat

		byDesc, ok := r.clusterIDs[cat]
		if !ok {
			byDesc = map[string][]string{}
			r.clusterIDs[cat] = byDesc
		}
		if _, ok := byDesc[text]; !ok {
			r.domainClusters[cat] = append(r.domainClusters[cat], text)
		}
		byDesc[text] = append(byDesc[text], c.ID)
		r.clusterDescriptions[text] = append(r.clusterDescriptions[text], c.ID)
	}

	for _, s := range ix.NodesAt(domain.LevelStandard) {
		r.clusterStandards[s.Parent] = append(r.clusterStandards[s.Parent], s.ID)
		r.standardDescription[s.ID] = s.Description
		// uniqueness is enforced by taxonomy.New
		r.standardByDesc[strings.TrimSpace(s.Description)] = s.ID
		r.standards = append(r.standards, s.ID)
	}
	sort.Strings(r.standards)

	r.log.Info("retriever.loaded",
		zap.Int("domain_groups", len(r.groups)),
		zap.Int("cluster_descriptions", len(r.clusterDescriptions)),
		zap.Int("standards", len(r.standards)),
	)
	return r, nil
}

func integrity(format string, args ...any) error {
	return domain.NewError("retriever.new", domain.KindIntegrity, format, args...)
}

// ListOfDomains returns one option per domain group, in file order unless
// shuffled. With describe set each option reads "name: description".
func (r *Retriever) ListOfDomains(describe, shuffle bool) []string {
	out := make([]string, 0, len(r.groups))
	for _, g := range r.groups {
		opt := strings.TrimSpace(g.Name)
		if describe {
			opt += descriptionSep + g.Description
		}
		out = append(out, opt)
	}
	if shuffle {
		rng.Shuffle(r.rnd, out)
	}
	return out
}

// PossibleClusters returns the cluster descriptions of every domain category
// in the group. A description shared by several clusters appears once.
func (r *Retriever) PossibleClusters(group string, shuffle bool) ([]string, error) {
	i, ok := r.groupByName[strings.TrimSpace(group)]
	if !ok {
		return nil, domain.NotFound("retriever.possible_clusters", "domain group", group)
	}
	var out []string
	for _, cat := range r.groups[i].DomainCats {
		out = append(out, r.domainClusters[cat]...)
	}
	if shuffle {
		rng.Shuffle(r.rnd, out)
	}
	return out, nil
}

// PossibleStandards returns the descriptions of the cluster's standards.
func (r *Retriever) PossibleStandards(cluster string, shuffle bool) ([]string, error) {
	ids, ok := r.clusterStandards[cluster]
	if !ok {
		return nil, domain.NotFound("retriever.possible_standards", "cluster", cluster)
	}
	ids = append([]string(nil), ids...)
	if shuffle {
		rng.Shuffle(r.rnd, ids)
	}
	return r.describe(ids), nil
}

// RandomStandards builds a flat option list that always draws from the
// positives. With numOptions below the positive count it down-samples them;
// above it, it adds distinct negatives drawn from every other standard, taking
// the whole pool when it is too small.
func (r *Retriever) RandomStandards(positives []string, numOptions int, shuffle bool) ([]string, error) {
	if numOptions < 0 {
		return nil, domain.NewError("retriever.random_standards", domain.KindInvalidArgument, "num_options must be >= 0, got %d", numOptions)
	}
	var labels []string
	seen := domain.IDSet{}
	for _, p := range positives {
		if _, ok := r.standardDescription[p]; !ok {
			return nil, domain.NotFound("retriever.random_standards", "standard", p)
		}
		if !seen.Has(p) {
			seen.Add(p)
			labels = append(labels, p)
		}
	}

	var ids []string
	switch {
	case numOptions == len(labels):
		ids = labels
	case numOptions < len(labels):
		ids = rng.Sample(r.rnd, labels, numOptions)
	default:
		pool := make([]string, 0, len(r.standards))
		for _, id := range r.standards {
			if !seen.Has(id) {
				pool = append(pool, id)
			}
		}
		ids = append(labels, rng.Sample(r.rnd, pool, numOptions-len(labels))...)
	}

	if shuffle {
		rng.Shuffle(r.rnd, ids)
	}
	r.log.Debug("retriever.random_standards",
		zap.Int("positives", len(labels)),
		zap.Int("requested", numOptions),
		zap.Int("options", len(ids)),
	)
	return r.describe(ids), nil
}

func (r *Retriever) describe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.standardDescription[id])
	}
	return out
}

// PointerToNextBranch resolves an option shown at level back to the node(s)
// it stands for.
//
//	domain:   "Geometry: shapes and space" -> [Geometry]
//	cluster:  "circles"                    -> [1.G.A 2.G.A]
//	standard: "descript of k.cc.a.1"       -> [K.CC.A.1]
//
// A cluster option can fan out to several ids; whether matching any of them
// counts as correct is up to the caller.
func (r *Retriever) PointerToNextBranch(option string, level domain.TreeLevel) (domain.Branch, error) {
	const op = "retriever.pointer_to_next_branch"
	if _, err := domain.ParseTreeLevel(string(level)); err != nil {
		return domain.Branch{}, err
	}

	switch level {
	case domain.TreeDomain:
		name, _, _ := strings.Cut(option, descriptionSep)
		i, ok := r.groupByName[strings.TrimSpace(name)]
		if !ok {
			return domain.Branch{}, domain.NotFound(op, "domain group", name)
		}
		return domain.Branch{Level: level, IDs: []string{r.groups[i].Name}}, nil

	case domain.TreeCluster:
		ids, ok := r.clusterDescriptions[strings.TrimSpace(option)]
		if !ok {
			return domain.Branch{}, domain.NotFound(op, "cluster description", option)
		}
		return domain.Branch{Level: level, IDs: append([]string(nil), ids...)}, nil

	default:
		id, ok := r.standardByDesc[strings.TrimSpace(option)]
		if !ok {
			return domain.Branch{}, domain.NotFound(op, "standard description", option)
		}
		return domain.Branch{Level: level, IDs: []string{id}}, nil
	}
}

// DomainGroupOf returns the group a domain category belongs to.
func (r *Retriever) DomainGroupOf(cat string) (string, error) {
	g, ok := r.catToGroup[cat]
	if !ok {
		return "", domain.NotFound("retriever.domain_group_of", "domain category", cat)
	}
	return g, nil
}

// DomainGroups returns the groups in file order.
func (r *Retriever) DomainGroups() domain.DomainGroups {
	return append(domain.DomainGroups(nil), r.groups...)
}

// StandardDescription returns the description shown for a standard option.
func (r *Retriever) StandardDescription(id string) (string, error) {
	d, ok := r.standardDescription[id]
	if !ok {
		return "", domain.NotFound("retriever.standard_description", "standard", id)
	}
	return d, nil
}

// ModelingStandards returns the cross-cutting Modeling standards.
func (r *Retriever) ModelingStandards() domain.IDSet {
	return r.ix.ModelingStandards()
}
