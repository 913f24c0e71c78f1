package instances

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allenai/mathfish/internal/domain"
)

func write(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "instances.jsonl")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadInstances_DefaultSelectors(t *testing.T) {
	p := write(t, `{"id": "im_1", "text": "...", "standards": [["Alignment", "S-IC.B.5"], ["Addressing", "F-IF.C.7e"]]}

{"id": 42, "standards": []}
`)

	got, err := NewLoader().LoadInstances(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []domain.Instance{
		{ID: "im_1", Standards: []domain.LabeledStandard{
			{Relation: "Alignment", ID: "S-IC.B.5"},
			{Relation: "Addressing", ID: "F-IF.C.7e"},
		}},
		{ID: "42", Standards: []domain.LabeledStandard{}},
	}, got)
}

func TestLoadInstances_NumericIDs(t *testing.T) {
	p := write(t, `{"id": 1000000, "standards": []}
{"id": 2.5, "standards": []}
{"id": [7], "standards": []}
`)

	got, err := NewLoader().LoadInstances(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "1000000", got[0].ID)
	assert.Equal(t, "2.5", got[1].ID)
	assert.Equal(t, "7", got[2].ID)
}

func TestLoadInstances_CustomSelectors(t *testing.T) {
	p := write(t, `{"meta": {"uid": "fishtank-7"}, "labels": {"ccss": [["Alignment", "6.SP.A.2"]]}}`)

	l := NewLoader(WithIDPath("$.meta.uid"), WithStandardsPath("$.labels.ccss"))
	got, err := l.LoadInstances(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fishtank-7", got[0].ID)
	assert.Equal(t, []domain.LabeledStandard{{Relation: "Alignment", ID: "6.SP.A.2"}}, got[0].Standards)
}

func TestLoadInstances_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing id":        `{"standards": [["Alignment", "K.CC.A.1"]]}`,
		"missing standards": `{"id": "x"}`,
		"bad pair":          `{"id": "x", "standards": [["Alignment"]]}`,
		"not a list":        `{"id": "x", "standards": "K.CC.A.1"}`,
		"bad json":          `{"id": `,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewLoader().LoadInstances(context.Background(), write(t, content))
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadInstances_BadSelector(t *testing.T) {
	p := write(t, `{"id": "x", "standards": []}`)
	_, err := NewLoader(WithIDPath("$[")).LoadInstances(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoadInstances_Cancelled(t *testing.T) {
	p := write(t, `{"id": "x", "standards": []}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().LoadInstances(ctx, p)
	assert.ErrorIs(t, err, context.Canceled)
}
