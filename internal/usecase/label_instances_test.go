package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/allenai/mathfish/internal/domain"
)

var fixedNow = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func familyInstances() []domain.Instance {
	return []domain.Instance{
		{ID: "im_1", Standards: pairs("Alignment", "S-IC.B.5")},
		{ID: "im_2", Standards: pairs("Building On", "F-IF.C.7")},
		{ID: "im_3", Standards: pairs("Addressing", "F-IF.C.7d")},
	}
}

func newLabelInstances(t *testing.T, src fakeInstances, opts ...LabelOption) *LabelInstances {
	t.Helper()
	e := loadFamily(t)
	labeler := NewPositiveLabeler(e.Index, e.Retriever, nil)
	opts = append([]LabelOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewLabelInstances(src, labeler, e.Sampler, opts...)
}

func TestLabelInstances_Neighbors(t *testing.T) {
	store := &fakeStore{id: "20260304T050607Z_fishtank"}
	uc := newLabelInstances(t, fakeInstances{insts: familyInstances()},
		WithSampling(domain.StrategyNeighbors, 0),
		WithSeed(11),
		WithStore(store),
	)

	res, err := uc.Execute(context.Background(), "fishtank.jsonl")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.SavedID != store.id || len(store.saved) != 1 {
		t.Fatalf("expected one saved dataset, got id=%q saved=%d", res.SavedID, len(store.saved))
	}

	want := domain.Dataset{
		Source:    "fishtank.jsonl",
		Strategy:  domain.StrategyNeighbors,
		NSample:   0,
		Seed:      11,
		CreatedAt: fixedNow,
		Rows: []domain.LabeledInstance{
			{
				ID: "im_1",
				Positives: domain.PositiveLabelSet{
					DomainCats:   []string{"S"},
					DomainGroups: []string{"Statistics & Probability"},
					Clusters:     []string{"S-IC.B"},
					Standards:    []string{"S-IC.B.5"},
				},
				Negatives: []domain.Negative{{Strategy: domain.StrategyNeighbors, ID: "S-IC.B.6"}},
			},
			{
				ID: "im_3",
				Positives: domain.PositiveLabelSet{
					DomainCats:   []string{"F"},
					DomainGroups: []string{"Functions"},
					Clusters:     []string{"F-IF.C"},
					Standards:    []string{"F-IF.C.7"},
				},
				Negatives: []domain.Negative{},
			},
		},
		Skipped: []string{"im_2"},
	}
	if diff := cmp.Diff(want, res.Dataset); diff != "" {
		t.Fatalf("dataset mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, store.saved[0]); diff != "" {
		t.Fatalf("saved dataset mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelInstances_AllNegativeTypes(t *testing.T) {
	uc := newLabelInstances(t, fakeInstances{insts: familyInstances()[:1]},
		WithSampling(domain.StrategyAllNegativeTypes, 1),
	)

	res, err := uc.Execute(context.Background(), "fishtank.jsonl")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(res.Dataset.Rows) != 1 {
		t.Fatalf("expected one row, got %d", len(res.Dataset.Rows))
	}
	if res.SavedID != "" {
		t.Fatalf("expected nothing saved without a store, got %q", res.SavedID)
	}

	got := map[domain.Strategy]int{}
	for _, n := range res.Dataset.Rows[0].Negatives {
		got[n.Strategy]++
		if n.ID == "S-IC.B.5" {
			t.Fatalf("positive sampled as negative: %+v", n)
		}
	}
	want := map[domain.Strategy]int{
		domain.StrategySameDomainSameGrade:           1,
		domain.StrategySameDomainDifferentGrade:      1,
		domain.StrategyDifferentDomainSameGrade:      1,
		domain.StrategyDifferentDomainDifferentGrade: 1,
		domain.StrategyNeighbors:                     1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("negatives per strategy mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelInstances_SamplerErrorNamesInstance(t *testing.T) {
	uc := newLabelInstances(t, fakeInstances{insts: familyInstances()},
		WithSampling(domain.StrategyAllNegativeTypes, 0),
	)

	_, err := uc.Execute(context.Background(), "fishtank.jsonl")
	if !domain.IsKind(err, domain.KindInvalidArgument) {
		t.Fatalf("expected KindInvalidArgument, got %v", err)
	}
	if !strings.Contains(err.Error(), `"im_1"`) {
		t.Fatalf("expected instance id in error, got %v", err)
	}
}

func TestLabelInstances_UnknownStandard(t *testing.T) {
	insts := []domain.Instance{{ID: "im_7", Standards: pairs("Alignment", "4.NF.Z.9")}}
	uc := newLabelInstances(t, fakeInstances{insts: insts})

	_, err := uc.Execute(context.Background(), "fishtank.jsonl")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestLabelInstances_ErrorLoadingInstances(t *testing.T) {
	loadErr := errors.New("instances missing")
	uc := newLabelInstances(t, fakeInstances{err: loadErr})

	_, err := uc.Execute(context.Background(), "fishtank.jsonl")
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected loadErr, got %v", err)
	}
}

func TestLabelInstances_StoreError(t *testing.T) {
	saveErr := errors.New("disk full")
	uc := newLabelInstances(t, fakeInstances{insts: familyInstances()},
		WithSampling(domain.StrategyNeighbors, 2),
		WithStore(&fakeStore{err: saveErr}),
	)

	_, err := uc.Execute(context.Background(), "fishtank.jsonl")
	if !errors.Is(err, saveErr) {
		t.Fatalf("expected saveErr, got %v", err)
	}
}

func TestLabelInstances_RespectsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &fakeStore{}
	uc := newLabelInstances(t, fakeInstances{insts: familyInstances()}, WithStore(store))

	_, err := uc.Execute(ctx, "fishtank.jsonl")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("expected nothing saved after cancel")
	}
}
