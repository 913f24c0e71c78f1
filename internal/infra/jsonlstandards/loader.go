package jsonlstandards

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/ports"
)

// maxLineBytes bounds a single record; standard descriptions run to a few KB.
const maxLineBytes = 1 << 20

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.StandardsSource = (*Loader)(nil)

// LoadStandards reads one standard record per line. Blank lines are skipped.
func (l *Loader) LoadStandards(path string) ([]domain.StandardRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "jsonlstandards.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	var out []domain.StandardRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		var jr jsonRecord
		if err := json.Unmarshal([]byte(raw), &jr); err != nil {
			return nil, &domain.OpError{
				Op:   "jsonlstandards.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("line %d: %w", line, err),
			}
		}

		rec, err := mapRecord(path, line, jr)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{
			Op:   "jsonlstandards.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("line %d: %w", line+1, err),
		}
	}

	return out, nil
}

type jsonRecord struct {
	ID          *string              `json:"id"`
	Description *string              `json:"description"`
	Level       *string              `json:"level"`
	Parent      *string              `json:"parent"`
	Children    *[]string            `json:"children"`
	Modeling    bool                 `json:"modeling"`
	Connections *map[string][]string `json:"connections"`
}

func mapRecord(path string, line int, jr jsonRecord) (domain.StandardRecord, error) {
	switch {
	case jr.ID == nil:
		return domain.StandardRecord{}, invalidField(path, line, "id", "id is required")
	case jr.Description == nil:
		return domain.StandardRecord{}, invalidField(path, line, "description", "description is required")
	case jr.Level == nil:
		return domain.StandardRecord{}, invalidField(path, line, "level", "level is required")
	case jr.Parent == nil:
		return domain.StandardRecord{}, invalidField(path, line, "parent", "parent is required (use \"\" for roots)")
	case jr.Children == nil:
		return domain.StandardRecord{}, invalidField(path, line, "children", "children is required (use [] for leaves)")
	case jr.Connections == nil:
		return domain.StandardRecord{}, invalidField(path, line, "connections", "connections is required (use {} when unconnected)")
	}

	level, err := domain.ParseLevel(*jr.Level)
	if err != nil {
		return domain.StandardRecord{}, invalidField(path, line, "level", err.Error())
	}

	rec := domain.StandardRecord{
		ID:          *jr.ID,
		Description: *jr.Description,
		Level:       level,
		Parent:      *jr.Parent,
		Children:    *jr.Children,
		Modeling:    jr.Modeling,
	}

	if conns := *jr.Connections; len(conns) > 0 {
		rec.Connections = make(map[domain.Relation][]string, len(conns))
		for k, ids := range conns {
			rel, err := parseRelation(k)
			if err != nil {
				return domain.StandardRecord{}, invalidField(path, line, "connections", err.Error())
			}
			if len(ids) > 0 {
				rec.Connections[rel] = ids
			}
		}
	}

	return rec, nil
}

func parseRelation(s string) (domain.Relation, error) {
	for _, r := range domain.Relations {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unsupported relation %q", s)
}

func invalidField(path string, line int, field, msg string) error {
	return &domain.OpError{
		Op:   "jsonlstandards.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("line %d: field %s: %s: %w", line, field, msg, domain.ErrInvalidConfig),
	}
}
