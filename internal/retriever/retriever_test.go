package retriever

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/fixtures"
	"github.com/allenai/mathfish/internal/rng"
	"github.com/allenai/mathfish/internal/taxonomy"
)

func newTree(t *testing.T, seed uint64) *Retriever {
	t.Helper()
	ix, err := taxonomy.New(fixtures.Tree())
	require.NoError(t, err)
	r, err := New(ix, fixtures.TreeGroups(), rng.New(seed))
	require.NoError(t, err)
	return r
}

func TestListOfDomains(t *testing.T) {
	r := newTree(t, 0)

	assert.Equal(t, []string{
		"Counting & Cardinality",
		"Operations, Algebra, & Algebraic Thinking",
		"Geometry",
	}, r.ListOfDomains(false, false))

	assert.Equal(t, []string{
		"Counting & Cardinality: descript1",
		"Operations, Algebra, & Algebraic Thinking: descript2",
		"Geometry: descript3",
	}, r.ListOfDomains(true, false))

	assert.ElementsMatch(t, r.ListOfDomains(false, false), r.ListOfDomains(false, true))
}

func TestPossibleClusters(t *testing.T) {
	r := newTree(t, 0)

	got, err := r.PossibleClusters("Geometry", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"circles", "squares"}, got)

	got, err = r.PossibleClusters("Counting & Cardinality", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"descript of k.cc.a", "descript of k.cc.b"}, got)

	got, err = r.PossibleClusters("Operations, Algebra, & Algebraic Thinking", true)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = r.PossibleClusters("Calculus", false)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestPossibleStandards(t *testing.T) {
	r := newTree(t, 0)

	got, err := r.PossibleStandards("K.CC.A", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"descript of k.cc.a.1", "descript of k.cc.a.2", "descript of k.cc.a.3"}, got)

	// shuffling works on a copy
	for i := 0; i < 10; i++ {
		_, err := r.PossibleStandards("K.CC.A", true)
		require.NoError(t, err)
	}
	again, err := r.PossibleStandards("K.CC.A", false)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	_, err = r.PossibleStandards("K.CC.Z", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPointerToNextBranch_OneToMany(t *testing.T) {
	r := newTree(t, 0)

	b, err := r.PointerToNextBranch("circles", domain.TreeCluster)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.G.A", "2.G.A"}, b.IDs)
	assert.True(t, b.Matches(domain.NewIDSet("2.G.A")))
	assert.False(t, b.Matches(domain.NewIDSet("1.G.B")))

	b, err = r.PointerToNextBranch("  squares \n", domain.TreeCluster)
	require.NoError(t, err)
	assert.Equal(t, "1.G.B", b.ID())

	b, err = r.PointerToNextBranch("Geometry: descript3", domain.TreeDomain)
	require.NoError(t, err)
	assert.Equal(t, "Geometry", b.ID())

	b, err = r.PointerToNextBranch("descript of k.cc.b.2", domain.TreeStandard)
	require.NoError(t, err)
	assert.Equal(t, "K.CC.B.2", b.ID())
}

func TestPointerToNextBranch_Errors(t *testing.T) {
	r := newTree(t, 0)

	_, err := r.PointerToNextBranch("circles", "grade")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = r.PointerToNextBranch("triangles", domain.TreeCluster)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.PointerToNextBranch("Calculus: limits", domain.TreeDomain)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.PointerToNextBranch("descript of nothing", domain.TreeStandard)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Every shown option resolves to node(s) whose description is the option,
// whatever the shuffle state.
func TestTreeRoundTrip(t *testing.T) {
	ix, err := taxonomy.New(fixtures.Tree())
	require.NoError(t, err)

	for _, seed := range []uint64{0, 1, 99} {
		r, err := New(ix, fixtures.TreeGroups(), rng.New(seed))
		require.NoError(t, err)

		for _, opt := range r.ListOfDomains(true, true) {
			b, err := r.PointerToNextBranch(opt, domain.TreeDomain)
			require.NoError(t, err)
			group, _, _ := strings.Cut(opt, ": ")
			assert.Equal(t, group, b.ID())

			clusters, err := r.PossibleClusters(b.ID(), true)
			require.NoError(t, err)
			for _, copt := range clusters {
				cb, err := r.PointerToNextBranch(copt, domain.TreeCluster)
				require.NoError(t, err)
				require.NotEmpty(t, cb.IDs)

				for _, cid := range cb.IDs {
					desc, err := ix.Description(cid)
					require.NoError(t, err)
					assert.Equal(t, copt, strings.TrimSpace(desc))

					stds, err := r.PossibleStandards(cid, true)
					require.NoError(t, err)
					for _, sopt := range stds {
						sb, err := r.PointerToNextBranch(sopt, domain.TreeStandard)
						require.NoError(t, err)
						sdesc, err := ix.Description(sb.ID())
						require.NoError(t, err)
						assert.Equal(t, sopt, sdesc)
						parent, err := ix.Parent(sb.ID())
						require.NoError(t, err)
						assert.Equal(t, cid, parent)
					}
				}
			}
		}
	}
}

func TestRandomStandards(t *testing.T) {
	r := newTree(t, 5)
	positives := []string{"K.CC.A.1", "K.CC.A.2"}
	posDescs := []string{"descript of k.cc.a.1", "descript of k.cc.a.2"}

	t.Run("exact", func(t *testing.T) {
		got, err := r.RandomStandards(positives, 2, false)
		require.NoError(t, err)
		assert.Equal(t, posDescs, got)
	})

	t.Run("fewer than positives", func(t *testing.T) {
		got, err := r.RandomStandards(positives, 1, true)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Subset(t, posDescs, got)
	})

	t.Run("more than positives", func(t *testing.T) {
		got, err := r.RandomStandards(positives, 5, true)
		require.NoError(t, err)
		require.Len(t, got, 5)
		assert.Subset(t, got, posDescs)
		assert.Len(t, domain.NewIDSet(got...), 5)
	})

	t.Run("more than exist", func(t *testing.T) {
		got, err := r.RandomStandards(positives, 100, false)
		require.NoError(t, err)
		assert.Len(t, got, 8)
		assert.Equal(t, posDescs, got[:2])
	})

	t.Run("errors", func(t *testing.T) {
		_, err := r.RandomStandards([]string{"K.CC.A"}, 3, false)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = r.RandomStandards(positives, -1, false)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestRandomStandards_SameSeedSameOptions(t *testing.T) {
	a := newTree(t, 21)
	b := newTree(t, 21)

	for i := 0; i < 3; i++ {
		x, err := a.RandomStandards([]string{"1.G.A.1"}, 4, true)
		require.NoError(t, err)
		y, err := b.RandomStandards([]string{"1.G.A.1"}, 4, true)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
}

func TestDomainGroupOfAndModeling(t *testing.T) {
	ix, err := taxonomy.New(fixtures.Family())
	require.NoError(t, err)
	r, err := New(ix, fixtures.FamilyGroups(), nil)
	require.NoError(t, err)

	g, err := r.DomainGroupOf("SP")
	require.NoError(t, err)
	assert.Equal(t, "Statistics & Probability", g)

	g, err = r.DomainGroupOf(domain.ModelingCategory)
	require.NoError(t, err)
	assert.Equal(t, domain.ModelingGroup, g)

	_, err = r.DomainGroupOf("NBT")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, []string{"S-ID.C.9"}, r.ModelingStandards().Sorted())
}

func TestNew_IntegrityViolations(t *testing.T) {
	ix, err := taxonomy.New(fixtures.Tree())
	require.NoError(t, err)

	t.Run("category in two groups", func(t *testing.T) {
		groups := append(fixtures.TreeGroups(), domain.DomainGroup{Name: "Shapes", DomainCats: []string{"G"}})
		_, err := New(ix, groups, nil)
		assert.True(t, domain.IsKind(err, domain.KindIntegrity), "got %v", err)
	})

	t.Run("cluster category without group", func(t *testing.T) {
		_, err := New(ix, fixtures.TreeGroups()[:2], nil)
		assert.True(t, domain.IsKind(err, domain.KindIntegrity), "got %v", err)
	})

	t.Run("cluster description across categories", func(t *testing.T) {
		records := append(fixtures.Tree(), domain.StandardRecord{
			ID: "K.CC.C", Description: "circles", Level: domain.LevelCluster, Parent: "K.CC",
		})
		bad, err := taxonomy.New(records)
		require.NoError(t, err)
		_, err = New(bad, fixtures.TreeGroups(), nil)
		assert.True(t, domain.IsKind(err, domain.KindIntegrity), "got %v", err)
	})
}
