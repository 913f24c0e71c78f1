package standardize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/fixtures"
	"github.com/allenai/mathfish/internal/taxonomy"
)

func newStandardizer(t *testing.T) *Standardizer {
	t.Helper()
	ix, err := taxonomy.New(fixtures.Family())
	require.NoError(t, err)
	s, err := New(ix)
	require.NoError(t, err)
	return s
}

func TestStandardize(t *testing.T) {
	s := newStandardizer(t)

	cases := map[string]string{
		"S-IC.B.5":     "S-IC.B.5",
		"HSS-IC.B.5":   "S-IC.B.5",
		"S-IC.5":       "S-IC.B.5",
		"HSS-IC.5":     "S-IC.B.5",
		"HSF-IF.C.7.e": "F-IF.C.7e",
		"F.IF.C.7.E":   "F-IF.C.7e",
		"6.SP.2":       "6.SP.A.2",
		"6.sp.a.2":     "6.SP.A.2",
		"S-IC.B":       "S-IC.B",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			got, err := s.Standardize(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := s.Standardize("7.RP.A.1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLabels(t *testing.T) {
	s := newStandardizer(t)

	out, missed := s.Labels([]domain.LabeledStandard{
		{Relation: "Alignment", ID: "HSS-IC.B.5"},
		{Relation: "Addressing", ID: "7.RP.A.1"},
		{Relation: "Alignment", ID: "HSF-IF.C.7.e"},
	})
	assert.Equal(t, []domain.LabeledStandard{
		{Relation: "Alignment", ID: "S-IC.B.5"},
		{Relation: "Alignment", ID: "F-IF.C.7e"},
	}, out)
	assert.Equal(t, []string{"7.RP.A.1"}, missed)
}

func TestIsStandardizedAndDescription(t *testing.T) {
	s := newStandardizer(t)

	assert.True(t, s.IsStandardized("S-IC.B.5"))
	assert.False(t, s.IsStandardized("HSS-IC.B.5"))

	d, err := s.Description("S-IC.5")
	require.NoError(t, err)
	assert.Equal(t, "Use data from a randomized experiment to compare two treatments.", d)

	_, err = s.Description("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNew_KeyCollision(t *testing.T) {
	// Tree restarts standard numbering per cluster, so K.CC.A.1 and K.CC.B.1
	// both claim the short form K.CC.1.
	ix, err := taxonomy.New(fixtures.Tree())
	require.NoError(t, err)

	_, err = New(ix)
	assert.True(t, domain.IsKind(err, domain.KindIntegrity), "got %v", err)
}
