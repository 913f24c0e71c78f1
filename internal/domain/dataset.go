package domain

import "time"

// LabeledInstance is one output row of the labeling pipeline.
type LabeledInstance struct {
	ID        string           `json:"id"`
	Positives PositiveLabelSet `json:"positives"`
	Negatives []Negative       `json:"negatives"`
}

// Dataset is a batch of labeled instances plus the settings that produced it.
type Dataset struct {
	Source    string            `json:"source"`
	Strategy  Strategy          `json:"strategy"`
	NSample   int               `json:"n_sample"`
	Seed      uint64            `json:"seed"`
	CreatedAt time.Time         `json:"created_at"`
	Rows      []LabeledInstance `json:"rows"`
	// Skipped holds ids of instances with no positive standard.
	Skipped []string `json:"skipped"`
}
