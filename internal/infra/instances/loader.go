package instances

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/ports"
)

const maxLineBytes = 16 << 20

// Loader reads learning-material records, one JSON object per line, and
// selects each record's id and label pairs with JSONPath expressions.
type Loader struct {
	idPath        string
	standardsPath string
}

type Option func(*Loader)

func WithIDPath(expr string) Option {
	return func(l *Loader) {
		if strings.TrimSpace(expr) != "" {
			l.idPath = expr
		}
	}
}

func WithStandardsPath(expr string) Option {
	return func(l *Loader) {
		if strings.TrimSpace(expr) != "" {
			l.standardsPath = expr
		}
	}
}

func NewLoader(opts ...Option) *Loader {
	def := domain.DefaultConfig().Instances
	l := &Loader{idPath: def.IDPath, standardsPath: def.StandardsPath}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.InstanceSource = (*Loader)(nil)

type selector = func(context.Context, any) (any, error)

func (l *Loader) LoadInstances(ctx context.Context, path string) ([]domain.Instance, error) {
	selectID, err := jsonpath.New(l.idPath)
	if err != nil {
		return nil, invalidField(path, 0, "id_path", err.Error())
	}
	selectStandards, err := jsonpath.New(l.standardsPath)
	if err != nil {
		return nil, invalidField(path, 0, "standards_path", err.Error())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "instances.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []domain.Instance
	line := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}

		var doc any
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, &domain.OpError{
				Op:   "instances.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("line %d: %w", line, err),
			}
		}

		inst, err := l.mapInstance(ctx, path, line, doc, selectID, selectStandards)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{
			Op:   "instances.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("line %d: %w", line+1, err),
		}
	}
	return out, nil
}

func (l *Loader) mapInstance(ctx context.Context, path string, line int, doc any, selectID, selectStandards selector) (domain.Instance, error) {
	idVal, err := selectID(ctx, doc)
	if err != nil || isEmpty(idVal) {
		return domain.Instance{}, invalidField(path, line, l.idPath, "no id found")
	}
	id, err := toString(idVal)
	if err != nil {
		return domain.Instance{}, invalidField(path, line, l.idPath, err.Error())
	}

	stdVal, err := selectStandards(ctx, doc)
	if err != nil {
		return domain.Instance{}, invalidField(path, line, l.standardsPath, "no standards found")
	}
	pairs, err := toPairs(stdVal)
	if err != nil {
		return domain.Instance{}, invalidField(path, line, l.standardsPath, err.Error())
	}

	return domain.Instance{ID: id, Standards: pairs}, nil
}

// toPairs accepts [[relation, id], ...]. A wildcard selector such as
// $.standards[*] yields the same shape.
func toPairs(v any) ([]domain.LabeledStandard, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of [relation, id] pairs, got %T", v)
	}
	out := make([]domain.LabeledStandard, 0, len(arr))
	for i, item := range arr {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("standards[%d]: expected [relation, id]", i)
		}
		rel, ok1 := pair[0].(string)
		id, ok2 := pair[1].(string)
		if !ok1 || !ok2 || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("standards[%d]: relation and id must be non-empty strings", i)
		}
		out = append(out, domain.LabeledStandard{Relation: rel, ID: id})
	}
	return out, nil
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	if arr, ok := v.([]any); ok {
		if len(arr) != 1 {
			return "", fmt.Errorf("expected one id, got %d", len(arr))
		}
		return toString(arr[0])
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("unsupported id type %T", v)
	}
}

func invalidField(path string, line int, field, msg string) error {
	return &domain.OpError{
		Op:   "instances.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("line %d: field %s: %s: %w", line, field, msg, domain.ErrInvalidConfig),
	}
}
