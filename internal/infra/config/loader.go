package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/ports"
)

// FileName is the config file looked up in the working tree.
const FileName = "mathfish.yaml"

// xdgRelPath is the config file under $XDG_CONFIG_HOME and $XDG_CONFIG_DIRS.
var xdgRelPath = filepath.Join("mathfish", FileName)

// Load reads a mathfish.yaml and applies it over the defaults.
func Load(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapConfig(path, y)
}

// Marshal renders cfg as a complete mathfish.yaml document.
func Marshal(cfg domain.Config) ([]byte, error) {
	return yaml.Marshal(toYAML(cfg))
}

// Finder locates mathfish.yaml by searching upward from a directory.
type Finder struct {
	ConfigFile string // defaults to FileName
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: FileName}
}

var _ ports.ConfigLocator = (*Finder)(nil)

func (f *Finder) FindConfig(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "config.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "config.find",
			Kind: domain.KindInvalidConfig,
			Path: startDir,
			Err:  err,
		}
	}

	// A file path searches from its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		p := filepath.Join(cur, f.ConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "config.find",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}

// Discover resolves the config to use: the explicit path when given, else
// mathfish.yaml in startDir or one of its parents, else the XDG config
// directories. With none of them present it returns the defaults and an
// empty path.
func Discover(explicit, startDir string) (domain.Config, string, error) {
	if strings.TrimSpace(explicit) != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}

	if p, err := NewFinder().FindConfig(startDir); err == nil {
		cfg, err := Load(p)
		return cfg, p, err
	} else if !domain.IsKind(err, domain.KindNotFound) {
		return domain.DefaultConfig(), "", err
	}

	if p, err := xdg.SearchConfigFile(xdgRelPath); err == nil {
		cfg, err := Load(p)
		return cfg, p, err
	}

	return domain.DefaultConfig(), "", nil
}
