package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/infra/config"
	"github.com/allenai/mathfish/internal/ports"
)

// Initializer scaffolds a workspace: data and output directories, a default
// mathfish.yaml, and .gitignore entries for generated datasets.
type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init never overwrites an existing mathfish.yaml unless force is set.
func (i *Initializer) Init(root string, force bool) error {
	root = filepath.Clean(root)
	cfg := domain.DefaultConfig()

	dirs := []string{
		filepath.Join(root, filepath.Dir(cfg.Paths.Standards)),
		filepath.Join(root, filepath.Dir(cfg.Paths.DomainGroups)),
		filepath.Join(root, cfg.Paths.OutputDir),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return ioError("fsworkspace.mkdir", d, err)
		}
	}

	if err := ensureGitignore(root, cfg.Paths.OutputDir+"/"); err != nil {
		return ioError("fsworkspace.gitignore", filepath.Join(root, ".gitignore"), err)
	}

	dst := filepath.Join(root, config.FileName)
	if !force {
		if _, err := os.Stat(dst); err == nil {
			return nil
		}
	}

	b, err := config.Marshal(cfg)
	if err != nil {
		return ioError("fsworkspace.marshal", dst, err)
	}
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return ioError("fsworkspace.write", dst, err)
	}
	return nil
}

func ioError(op, path string, err error) error {
	return &domain.OpError{Op: op, Kind: domain.KindIO, Path: path, Err: err}
}

func ensureGitignore(root string, entries ...string) error {
	const header = "# mathfish"

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
