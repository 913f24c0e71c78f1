package datasetstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/ports"
)

const (
	defaultOutputDir = "runs"
	indexFile        = "index.jsonl"
)

// JSONLStore writes each dataset as <dir>/<timestamp>_<source>.jsonl, one
// labeled instance per line.
type JSONLStore struct {
	dir        string
	writeIndex bool
	now        func() time.Time
}

type Option func(*JSONLStore)

// WithIndex enables a JSONL index of saved datasets: <dir>/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONLStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONLStore) { s.now = now }
}

func NewJSONLStore(dir string, opts ...Option) *JSONLStore {
	if strings.TrimSpace(dir) == "" {
		dir = defaultOutputDir
	}
	s := &JSONLStore{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.DatasetStore = (*JSONLStore)(nil)

func (s *JSONLStore) SaveDataset(ds domain.Dataset) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "datasetstore.mkdir",
			Kind: domain.KindIO,
			Path: s.dir,
			Err:  err,
		}
	}

	ts := ds.CreatedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	slug := slugify(strings.TrimSuffix(filepath.Base(ds.Source), filepath.Ext(ds.Source)))
	if slug == "" {
		slug = "dataset"
	}

	id, path, err := s.reserve(ts.Format("20060102T150405Z") + "_" + slug)
	if err != nil {
		return "", err
	}
	filename := filepath.Base(path)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, row := range ds.Rows {
		if err := enc.Encode(row); err != nil {
			_ = os.Remove(path)
			return "", &domain.OpError{
				Op:   "datasetstore.marshal",
				Kind: domain.KindIO,
				Path: path,
				Err:  err,
			}
		}
	}

	// tmp then rename, so readers never see a partial file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		_ = os.Remove(path)
		return "", &domain.OpError{
			Op:   "datasetstore.write",
			Kind: domain.KindIO,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "datasetstore.rename",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		if err := s.appendIndex(id, filename, ts, ds); err != nil {
			return id, &domain.OpError{
				Op:   "datasetstore.index",
				Kind: domain.KindIO,
				Path: filepath.Join(s.dir, indexFile),
				Err:  err,
			}
		}
	}

	return id, nil
}

// reserve claims <base>.jsonl, or <base>_2.jsonl, <base>_3.jsonl, ... when
// an earlier save in the same second holds the name.
func (s *JSONLStore) reserve(base string) (string, string, error) {
	for n := 1; ; n++ {
		id := base
		if n > 1 {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		path := filepath.Join(s.dir, id+".jsonl")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_ = f.Close()
			return id, path, nil
		}
		if !os.IsExist(err) {
			return "", "", &domain.OpError{
				Op:   "datasetstore.reserve",
				Kind: domain.KindIO,
				Path: path,
				Err:  err,
			}
		}
	}
}

func (s *JSONLStore) appendIndex(id, filename string, ts time.Time, ds domain.Dataset) error {
	type idx struct {
		ID        string    `json:"id"`
		File      string    `json:"file"`
		Source    string    `json:"source"`
		Strategy  string    `json:"strategy"`
		NSample   int       `json:"n_sample"`
		Seed      uint64    `json:"seed"`
		Rows      int       `json:"rows"`
		Skipped   int       `json:"skipped"`
		CreatedAt time.Time `json:"created_at"`
	}
	line, err := json.Marshal(idx{
		ID:        id,
		File:      filename,
		Source:    ds.Source,
		Strategy:  string(ds.Strategy),
		NSample:   ds.NSample,
		Seed:      ds.Seed,
		Rows:      len(ds.Rows),
		Skipped:   len(ds.Skipped),
		CreatedAt: ts,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
