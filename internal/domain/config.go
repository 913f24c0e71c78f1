package domain

// Config represents the mathfish configuration loaded from mathfish.yaml.
type Config struct {
	Seed      uint64
	Paths     PathsConfig
	Sampling  SamplingConfig
	Tagging   TaggingConfig
	Instances InstancesConfig
}

type PathsConfig struct {
	Standards    string
	DomainGroups string
	OutputDir    string
}

type SamplingConfig struct {
	Strategy Strategy
	NSample  int
}

type TaggingConfig struct {
	NumOptions         int
	Shuffle            bool
	DomainDescriptions bool
	PositiveRelations  []string
}

// InstancesConfig holds JSONPath selectors into learning-material records.
type InstancesConfig struct {
	IDPath        string
	StandardsPath string
}

// DefaultConfig provides sane defaults if mathfish.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Seed: 0,
		Paths: PathsConfig{
			Standards:    "data/standards.jsonl",
			DomainGroups: "data/domain_groups.json",
			OutputDir:    "runs",
		},
		Sampling: SamplingConfig{
			Strategy: StrategyAllNegativeTypes,
			NSample:  5,
		},
		Tagging: TaggingConfig{
			NumOptions:         15,
			Shuffle:            true,
			DomainDescriptions: true,
			PositiveRelations:  []string{"Alignment", "Addressing"},
		},
		Instances: InstancesConfig{
			IDPath:        "$.id",
			StandardsPath: "$.standards",
		},
	}
}
