// Package standardize maps loosely written standard labels from scraped
// curricula onto canonical taxonomy ids.
//
//	HSS-IC.B.5   -> S-IC.B.5
//	S-IC.5       -> S-IC.B.5
//	HSF-IF.C.7.e -> F-IF.C.7e
//	3.MD.C.7.c   -> 3.MD.C.7c
package standardize

import (
	"strings"

	"go.uber.org/zap"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/taxonomy"
)

const hsPrefix = "HS"

type Standardizer struct {
	ix   *taxonomy.Index
	keys map[string]string // punctuation-free key -> id
	log  *zap.Logger
}

type Option func(*Standardizer)

func WithLogger(l *zap.Logger) Option {
	return func(s *Standardizer) {
		if l != nil {
			s.log = l
		}
	}
}

// New indexes every taxonomy id under its punctuation-free key, and ids with
// four components also under the key without the cluster letter, so that
// 1.OA.A.1 and 1.OA.1 match. Two ids sharing a key is an integrity error.
func New(ix *taxonomy.Index, opts ...Option) (*Standardizer, error) {
	s := &Standardizer{ix: ix, keys: map[string]string{}, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	add := func(key, id string) error {
		if other, dup := s.keys[key]; dup && other != id {
			return domain.NewError("standardize.new", domain.KindIntegrity, "ids %q and %q share key %q", other, id, key)
		}
		s.keys[key] = id
		return nil
	}
	for _, id := range ix.IDs() {
		if err := add(key(id), id); err != nil {
			return nil, err
		}
		parts := strings.Split(strings.ReplaceAll(id, "-", "."), ".")
		if len(parts) == 4 {
			if err := add(key(parts[0]+parts[1]+parts[3]), id); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func key(label string) string {
	return strings.ToLower(strings.NewReplacer("-", "", ".", "").Replace(label))
}

// Standardize returns the canonical id for label.
func (s *Standardizer) Standardize(label string) (string, error) {
	if s.ix.Has(label) {
		return label, nil
	}
	if rest, ok := strings.CutPrefix(label, hsPrefix); ok && s.ix.Has(rest) {
		return rest, nil
	}
	if id, ok := s.keys[key(label)]; ok {
		return id, nil
	}
	if rest, ok := strings.CutPrefix(label, hsPrefix); ok {
		if id, ok := s.keys[key(rest)]; ok {
			return id, nil
		}
	}
	s.log.Debug("standardize.miss", zap.String("label", label))
	return "", domain.NotFound("standardize.standardize", "standard label", label)
}

// Labels standardizes the ids of every pair, dropping the ones that cannot be
// matched and returning their raw labels.
func (s *Standardizer) Labels(pairs []domain.LabeledStandard) (out []domain.LabeledStandard, missed []string) {
	out = make([]domain.LabeledStandard, 0, len(pairs))
	for _, p := range pairs {
		id, err := s.Standardize(p.ID)
		if err != nil {
			missed = append(missed, p.ID)
			continue
		}
		out = append(out, domain.LabeledStandard{Relation: p.Relation, ID: id})
	}
	if len(missed) > 0 {
		s.log.Warn("standardize.unmatched", zap.Strings("labels", missed))
	}
	return out, missed
}

// IsStandardized reports whether label is already a canonical id.
func (s *Standardizer) IsStandardized(label string) bool {
	return s.ix.Has(label)
}

// Description standardizes label and returns the matching node's description.
func (s *Standardizer) Description(label string) (string, error) {
	id, err := s.Standardize(label)
	if err != nil {
		return "", err
	}
	return s.ix.Description(id)
}
