package jsongroups

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/ports"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.DomainGroupSource = (*Loader)(nil)

type jsonGroup struct {
	Description string   `json:"description"`
	DomainCats  []string `json:"domain_cats"`
}

// LoadDomainGroups reads {"name": {"description": ..., "domain_cats": [...]}}
// and keeps the groups in file order.
func (l *Loader) LoadDomainGroups(path string) (domain.DomainGroups, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "jsongroups.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	groups, err := decodeOrdered(b)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "jsongroups.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	seen := map[string]bool{}
	for _, g := range groups {
		if strings.TrimSpace(g.Name) == "" {
			return nil, invalidField(path, "<name>", "domain group name is required")
		}
		if seen[g.Name] {
			return nil, invalidField(path, g.Name, "duplicate domain group")
		}
		seen[g.Name] = true
		if len(g.DomainCats) == 0 {
			return nil, invalidField(path, g.Name+".domain_cats", "at least one domain category is required")
		}
	}
	return groups, nil
}

// decodeOrdered walks the top-level object token by token; a plain map would
// lose the order option lists are rendered in.
func decodeOrdered(b []byte) (domain.DomainGroups, error) {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var out domain.DomainGroups
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a group name, got %v", tok)
		}
		var g jsonGroup
		if err := dec.Decode(&g); err != nil {
			return nil, fmt.Errorf("group %q: %w", name, err)
		}
		out = append(out, domain.DomainGroup{
			Name:        name,
			Description: g.Description,
			DomainCats:  g.DomainCats,
		})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "jsongroups.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
