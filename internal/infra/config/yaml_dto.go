package config

type yamlConfig struct {
	Mathfish yamlMathfish `yaml:"mathfish"`
}

type yamlMathfish struct {
	Seed *uint64 `yaml:"seed,omitempty"`

	Paths struct {
		Standards    string `yaml:"standards,omitempty"`
		DomainGroups string `yaml:"domain_groups,omitempty"`
		OutputDir    string `yaml:"output_dir,omitempty"`
	} `yaml:"paths"`

	Sampling struct {
		Strategy string `yaml:"strategy,omitempty"`
		NSample  *int   `yaml:"n_sample,omitempty"`
	} `yaml:"sampling"`

	Tagging struct {
		NumOptions         *int     `yaml:"num_options,omitempty"`
		Shuffle            *bool    `yaml:"shuffle,omitempty"`
		DomainDescriptions *bool    `yaml:"domain_descriptions,omitempty"`
		PositiveRelations  []string `yaml:"positive_relations,omitempty"`
	} `yaml:"tagging"`

	Instances struct {
		IDPath        string `yaml:"id_path,omitempty"`
		StandardsPath string `yaml:"standards_path,omitempty"`
	} `yaml:"instances"`
}
