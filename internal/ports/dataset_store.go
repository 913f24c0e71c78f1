package ports

import "github.com/allenai/mathfish/internal/domain"

// DatasetStore persists labeled datasets for reproducibility.
type DatasetStore interface {
	SaveDataset(ds domain.Dataset) (id string, err error)
}
