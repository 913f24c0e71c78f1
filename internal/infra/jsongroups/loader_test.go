package jsongroups

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/fixtures"
)

func TestLoadDomainGroups_KeepsFileOrder(t *testing.T) {
	want := fixtures.TreeGroups()
	p := fixtures.WriteGroups(t, t.TempDir(), want)

	got, err := NewLoader().LoadDomainGroups(p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []string{
		"Counting & Cardinality",
		"Operations, Algebra, & Algebraic Thinking",
		"Geometry",
	}, got.Names())
}

func TestLoadDomainGroups_NotAlphabetical(t *testing.T) {
	p := write(t, `{
  "Zeta": {"description": "last letter", "domain_cats": ["Z"]},
  "Alpha": {"description": "first letter", "domain_cats": ["A"]}
}`)
	got, err := NewLoader().LoadDomainGroups(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha"}, got.Names())
}

func TestLoadDomainGroups_Invalid(t *testing.T) {
	cases := map[string]string{
		"not an object":  `["Geometry"]`,
		"bad body":       `{"Geometry": {"domain_cats": "G"}}`,
		"no categories":  `{"Geometry": {"description": "shapes"}}`,
		"duplicate name": `{"G": {"domain_cats": ["G"]}, "G": {"domain_cats": ["G"]}}`,
		"truncated":      `{"Geometry": {"domain_cats": ["G"]}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			p := write(t, content)
			_, err := NewLoader().LoadDomainGroups(p)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidConfig), "got %v", err)
			assert.True(t, strings.Contains(err.Error(), p))
		})
	}
}

func TestLoadDomainGroups_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadDomainGroups(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func write(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "domain_groups.json")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}
