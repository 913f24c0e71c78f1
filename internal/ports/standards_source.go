package ports

import "github.com/allenai/mathfish/internal/domain"

// StandardsSource loads standard records from a source (e.g., a JSONL file).
type StandardsSource interface {
	LoadStandards(path string) ([]domain.StandardRecord, error)
}
