package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/allenai/mathfish/internal/domain"
)

// mapConfig applies the parsed values on top of defaults. Relative data paths
// resolve against the directory holding the config file.
func mapConfig(path string, y yamlConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	m := y.Mathfish

	if m.Seed != nil {
		cfg.Seed = *m.Seed
	}

	if m.Paths.Standards != "" {
		cfg.Paths.Standards = m.Paths.Standards
	}
	if m.Paths.DomainGroups != "" {
		cfg.Paths.DomainGroups = m.Paths.DomainGroups
	}
	if m.Paths.OutputDir != "" {
		cfg.Paths.OutputDir = m.Paths.OutputDir
	}

	if s := strings.TrimSpace(m.Sampling.Strategy); s != "" {
		st, err := domain.ParseStrategy(s)
		if err != nil {
			return domain.Config{}, invalidField(path, "sampling.strategy", err.Error())
		}
		cfg.Sampling.Strategy = st
	}
	if m.Sampling.NSample != nil {
		if *m.Sampling.NSample < 0 {
			return domain.Config{}, invalidField(path, "sampling.n_sample", "must be >= 0")
		}
		cfg.Sampling.NSample = *m.Sampling.NSample
	}

	if m.Tagging.NumOptions != nil {
		if *m.Tagging.NumOptions < 0 {
			return domain.Config{}, invalidField(path, "tagging.num_options", "must be >= 0")
		}
		cfg.Tagging.NumOptions = *m.Tagging.NumOptions
	}
	if m.Tagging.Shuffle != nil {
		cfg.Tagging.Shuffle = *m.Tagging.Shuffle
	}
	if m.Tagging.DomainDescriptions != nil {
		cfg.Tagging.DomainDescriptions = *m.Tagging.DomainDescriptions
	}
	if len(m.Tagging.PositiveRelations) > 0 {
		for i, r := range m.Tagging.PositiveRelations {
			if strings.TrimSpace(r) == "" {
				return domain.Config{}, invalidField(path, fmt.Sprintf("tagging.positive_relations[%d]", i), "relation is empty")
			}
		}
		cfg.Tagging.PositiveRelations = append([]string(nil), m.Tagging.PositiveRelations...)
	}

	if m.Instances.IDPath != "" {
		cfg.Instances.IDPath = m.Instances.IDPath
	}
	if m.Instances.StandardsPath != "" {
		cfg.Instances.StandardsPath = m.Instances.StandardsPath
	}

	if path != "" {
		dir := filepath.Dir(path)
		cfg.Paths.Standards = resolve(dir, cfg.Paths.Standards)
		cfg.Paths.DomainGroups = resolve(dir, cfg.Paths.DomainGroups)
		cfg.Paths.OutputDir = resolve(dir, cfg.Paths.OutputDir)
	}

	return cfg, nil
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// toYAML renders cfg in the file layout, with every field set.
func toYAML(cfg domain.Config) yamlConfig {
	var y yamlConfig
	m := &y.Mathfish

	seed := cfg.Seed
	m.Seed = &seed
	m.Paths.Standards = cfg.Paths.Standards
	m.Paths.DomainGroups = cfg.Paths.DomainGroups
	m.Paths.OutputDir = cfg.Paths.OutputDir
	m.Sampling.Strategy = string(cfg.Sampling.Strategy)
	n := cfg.Sampling.NSample
	m.Sampling.NSample = &n
	opts := cfg.Tagging.NumOptions
	m.Tagging.NumOptions = &opts
	shuffle := cfg.Tagging.Shuffle
	m.Tagging.Shuffle = &shuffle
	desc := cfg.Tagging.DomainDescriptions
	m.Tagging.DomainDescriptions = &desc
	m.Tagging.PositiveRelations = append([]string(nil), cfg.Tagging.PositiveRelations...)
	m.Instances.IDPath = cfg.Instances.IDPath
	m.Instances.StandardsPath = cfg.Instances.StandardsPath
	return y
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
