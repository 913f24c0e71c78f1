package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/fixtures"
	"github.com/allenai/mathfish/internal/rng"
	"github.com/allenai/mathfish/internal/taxonomy"
)

func newSampler(t *testing.T, seed uint64) (*Sampler, *taxonomy.Index) {
	t.Helper()
	ix, err := taxonomy.New(fixtures.Family())
	require.NoError(t, err)
	return New(ix, rng.New(seed)), ix
}

func TestByGradeAndDomain(t *testing.T) {
	s, _ := newSampler(t, 0)
	positives := []string{"S-IC.B.5"}

	cases := []struct {
		strategy domain.Strategy
		want     []string
	}{
		{domain.StrategySameDomainSameGrade, []string{"S-IC.B.3", "S-IC.B.4", "S-IC.B.6", "S-ID.C.9"}},
		{domain.StrategyDifferentDomainSameGrade, []string{"F-IF.C.7"}},
		{domain.StrategySameDomainDifferentGrade, []string{"6.SP.A.2"}},
		{domain.StrategyDifferentDomainDifferentGrade, []string{"6.G.A.2"}},
	}
	for _, c := range cases {
		t.Run(string(c.strategy), func(t *testing.T) {
			got, err := s.ByGradeAndDomain(positives, c.strategy, 5)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestByGradeAndDomain_SameSameExclusivity(t *testing.T) {
	s, ix := newSampler(t, 7)
	positives := []string{"S-IC.B.3", "6.G.A.2"}

	got, err := s.ByGradeAndDomain(positives, domain.StrategySameDomainSameGrade, 10)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	for _, id := range got {
		assert.NotContains(t, positives, id)
		n, err := ix.Node(id)
		require.NoError(t, err)
		assert.Contains(t, []string{"HS", "6"}, n.Grade)
		assert.Contains(t, []string{"S", "SP", "G"}, n.DomainCategory)
	}
}

func TestByGradeAndDomain_SamplesWithoutReplacement(t *testing.T) {
	s, _ := newSampler(t, 42)
	pool := []string{"S-IC.B.3", "S-IC.B.4", "S-IC.B.6", "S-ID.C.9"}

	got, err := s.ByGradeAndDomain([]string{"S-IC.B.5"}, domain.StrategySameDomainSameGrade, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0], got[1])
	assert.Subset(t, pool, got)

	none, err := s.ByGradeAndDomain([]string{"S-IC.B.5"}, domain.StrategySameDomainSameGrade, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.ByGradeAndDomain([]string{"S-IC.B.5"}, domain.StrategySameDomainSameGrade, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestByGradeAndDomain_SameSeedSameDraw(t *testing.T) {
	a, _ := newSampler(t, 3)
	b, _ := newSampler(t, 3)

	for i := 0; i < 5; i++ {
		x, err := a.ByGradeAndDomain([]string{"S-IC.B.5"}, domain.StrategySameDomainSameGrade, 2)
		require.NoError(t, err)
		y, err := b.ByGradeAndDomain([]string{"S-IC.B.5"}, domain.StrategySameDomainSameGrade, 2)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
}

func TestByGradeAndDomain_Errors(t *testing.T) {
	s, _ := newSampler(t, 0)

	_, err := s.ByGradeAndDomain([]string{"S-IC.B.5"}, domain.StrategyNeighbors, 5)
	assert.True(t, domain.IsKind(err, domain.KindInvalidArgument))

	_, err = s.ByGradeAndDomain([]string{"Z.ZZ.Z.9"}, domain.StrategySameDomainSameGrade, 5)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestByConnections(t *testing.T) {
	s, _ := newSampler(t, 0)

	cases := []struct {
		name      string
		positives []string
		filter    domain.RelationFilter
		want      []string
	}{
		{"progress to", []string{"S-IC.B.3", "S-IC.B.4"}, domain.RelationFilter(domain.RelProgressTo), []string{"S-IC.B.6"}},
		{"progress from", []string{"S-IC.B.6"}, domain.RelationFilter(domain.RelProgressFrom), []string{"S-IC.B.3", "S-IC.B.4", "S-IC.B.5"}},
		{"related", []string{"S-IC.B.6"}, domain.RelationFilter(domain.RelRelated), []string{"S-ID.C.9"}},
		{"all", []string{"S-IC.B.6"}, domain.RelationAll, []string{"S-IC.B.3", "S-IC.B.4", "S-IC.B.5", "S-ID.C.9"}},
		{"positives excluded", []string{"S-IC.B.6", "S-IC.B.3"}, domain.RelationAll, []string{"S-IC.B.4", "S-IC.B.5", "S-ID.C.9"}},
		{"no connections", []string{"F-IF.C.7"}, domain.RelationAll, []string{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := s.ByConnections(c.positives, c.filter, 0)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	_, err := s.ByConnections([]string{"S-IC.B.6"}, "cousin", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	two, err := s.ByConnections([]string{"S-IC.B.6"}, domain.RelationAll, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
	assert.Subset(t, []string{"S-IC.B.3", "S-IC.B.4", "S-IC.B.5", "S-ID.C.9"}, two)
}

func TestNegatives_AllNegativeTypes(t *testing.T) {
	s, _ := newSampler(t, 0)

	got, err := s.Negatives([]string{"S-IC.B.5"}, domain.StrategyAllNegativeTypes, 5)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 5*5)

	byStrategy := map[domain.Strategy][]string{}
	for _, n := range got {
		byStrategy[n.Strategy] = append(byStrategy[n.Strategy], n.ID)
	}
	assert.Equal(t, map[domain.Strategy][]string{
		domain.StrategyDifferentDomainDifferentGrade: {"6.G.A.2"},
		domain.StrategySameDomainDifferentGrade:      {"6.SP.A.2"},
		domain.StrategyDifferentDomainSameGrade:      {"F-IF.C.7"},
		domain.StrategySameDomainSameGrade:           {"S-IC.B.3", "S-IC.B.4", "S-IC.B.6", "S-ID.C.9"},
		domain.StrategyNeighbors:                     {"S-IC.B.6"},
	}, byStrategy)
}

func TestNegatives_Bound(t *testing.T) {
	s, _ := newSampler(t, 11)

	got, err := s.Negatives([]string{"S-IC.B.6"}, domain.StrategyAllNegativeTypes, 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), 5)

	_, err = s.Negatives([]string{"S-IC.B.6"}, domain.StrategyAllNegativeTypes, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestNegatives_SingleStrategy(t *testing.T) {
	s, _ := newSampler(t, 0)

	got, err := s.Negatives([]string{"S-IC.B.5"}, domain.StrategyNeighbors, 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.Negative{{Strategy: domain.StrategyNeighbors, ID: "S-IC.B.6"}}, got)

	got, err = s.Negatives([]string{"S-IC.B.5"}, domain.StrategyDifferentDomainSameGrade, 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.Negative{{Strategy: domain.StrategyDifferentDomainSameGrade, ID: "F-IF.C.7"}}, got)

	_, err = s.Negatives([]string{"S-IC.B.5"}, "easiest", 3)
	assert.True(t, domain.IsKind(err, domain.KindInvalidArgument))
}

func TestNegatives_PaddedStrategyName(t *testing.T) {
	s, _ := newSampler(t, 0)

	got, err := s.Negatives([]string{"S-IC.B.5"}, " neighbors ", 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.Negative{{Strategy: domain.StrategyNeighbors, ID: "S-IC.B.6"}}, got)
}
