package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/ports"
)

// NegativeSampler draws tagged negatives for a set of positive standards.
type NegativeSampler interface {
	Negatives(positives []string, strategy domain.Strategy, n int) ([]domain.Negative, error)
}

// LabelResult is a labeled dataset plus the id it was saved under, if any.
type LabelResult struct {
	Dataset domain.Dataset
	SavedID string
}

type LabelInstances struct {
	instances ports.InstanceSource
	labeler   *PositiveLabeler
	negatives NegativeSampler
	store     ports.DatasetStore

	strategy domain.Strategy
	nSample  int
	seed     uint64
	now      func() time.Time
	log      *zap.Logger
}

type LabelOption func(*LabelInstances)

// WithSampling sets the negative strategy and per-strategy sample size.
func WithSampling(strategy domain.Strategy, n int) LabelOption {
	return func(uc *LabelInstances) {
		uc.strategy = strategy
		uc.nSample = n
	}
}

// WithSeed only records the seed on the dataset; the sampler owns the generator.
func WithSeed(seed uint64) LabelOption {
	return func(uc *LabelInstances) { uc.seed = seed }
}

// WithStore saves every dataset after labeling.
func WithStore(store ports.DatasetStore) LabelOption {
	return func(uc *LabelInstances) { uc.store = store }
}

func WithClock(now func() time.Time) LabelOption {
	return func(uc *LabelInstances) {
		if now != nil {
			uc.now = now
		}
	}
}

func WithLabelLogger(l *zap.Logger) LabelOption {
	return func(uc *LabelInstances) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewLabelInstances(src ports.InstanceSource, labeler *PositiveLabeler, negatives NegativeSampler, opts ...LabelOption) *LabelInstances {
	def := domain.DefaultConfig().Sampling
	uc := &LabelInstances{
		instances: src,
		labeler:   labeler,
		negatives: negatives,
		strategy:  def.Strategy,
		nSample:   def.NSample,
		now:       time.Now,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute labels every instance in path, in file order. Instances without a
// positive standard are listed in Dataset.Skipped instead of failing the run.
func (uc *LabelInstances) Execute(ctx context.Context, path string) (LabelResult, error) {
	insts, err := uc.instances.LoadInstances(ctx, path)
	if err != nil {
		return LabelResult{}, err
	}

	ds := domain.Dataset{
		Source:    path,
		Strategy:  uc.strategy,
		NSample:   uc.nSample,
		Seed:      uc.seed,
		CreatedAt: uc.now().UTC(),
		Rows:      make([]domain.LabeledInstance, 0, len(insts)),
	}

	for _, inst := range insts {
		if err := ctx.Err(); err != nil {
			return LabelResult{}, err
		}

		pos, ok, err := uc.labeler.Label(inst)
		if err != nil {
			return LabelResult{}, fmt.Errorf("instance %q: %w", inst.ID, err)
		}
		if !ok {
			ds.Skipped = append(ds.Skipped, inst.ID)
			uc.log.Debug("label.skipped", zap.String("id", inst.ID))
			continue
		}

		negs, err := uc.negatives.Negatives(pos.Standards, uc.strategy, uc.nSample)
		if err != nil {
			return LabelResult{}, fmt.Errorf("instance %q: %w", inst.ID, err)
		}
		if negs == nil {
			negs = []domain.Negative{}
		}

		ds.Rows = append(ds.Rows, domain.LabeledInstance{
			ID:        inst.ID,
			Positives: pos,
			Negatives: negs,
		})
	}

	uc.log.Info("label.done",
		zap.String("source", path),
		zap.String("strategy", string(uc.strategy)),
		zap.Int("rows", len(ds.Rows)),
		zap.Int("skipped", len(ds.Skipped)),
	)

	res := LabelResult{Dataset: ds}
	if uc.store != nil {
		id, err := uc.store.SaveDataset(ds)
		if err != nil {
			return LabelResult{}, err
		}
		res.SavedID = id
	}
	return res, nil
}
