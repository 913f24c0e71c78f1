package domain

import (
	"fmt"
	"sort"
)

// Level is the taxonomy level of a standard record.
type Level string

const (
	LevelGrade       Level = "Grade"
	LevelDomain      Level = "Domain"
	LevelHSCategory  Level = "HS Category"
	LevelCluster     Level = "Cluster"
	LevelStandard    Level = "Standard"
	LevelSubStandard Level = "Sub-standard"
)

// ParseLevel maps the level string used in the standards file to a Level.
func ParseLevel(s string) (Level, error) {
	switch l := Level(s); l {
	case LevelGrade, LevelDomain, LevelHSCategory, LevelCluster, LevelStandard, LevelSubStandard:
		return l, nil
	default:
		return "", fmt.Errorf("unsupported level %q", s)
	}
}

// Relation is an edge kind of the relation graph between standards.
type Relation string

const (
	RelProgressTo   Relation = "progress to"
	RelProgressFrom Relation = "progress from"
	RelRelated      Relation = "related"
)

// Relations lists every relation kind in a fixed order.
var Relations = []Relation{RelProgressTo, RelProgressFrom, RelRelated}

// StandardRecord is one line of the standards file.
type StandardRecord struct {
	ID          string
	Description string
	Level       Level
	Parent      string
	Children    []string
	Modeling    bool
	Connections map[Relation][]string
}

// LabeledStandard is a (relation, id) annotation attached to a learning material,
// e.g. ("Alignment", "K.CC.A.1").
type LabeledStandard struct {
	Relation string
	ID       string
}

func (l LabeledStandard) String() string {
	return fmt.Sprintf("[%s %s]", l.Relation, l.ID)
}

// SortLabels orders pairs by id, then relation.
func SortLabels(in []LabeledStandard) {
	sort.Slice(in, func(i, j int) bool {
		if in[i].ID != in[j].ID {
			return in[i].ID < in[j].ID
		}
		return in[i].Relation < in[j].Relation
	})
}

// IDSet is a set of taxonomy ids.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id string) { s[id] = struct{}{} }

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Intersects reports whether any of ids is a member.
func (s IDSet) Intersects(ids []string) bool {
	for _, id := range ids {
		if s.Has(id) {
			return true
		}
	}
	return false
}
