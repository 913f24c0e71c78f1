package ports

import (
	"context"

	"github.com/allenai/mathfish/internal/domain"
)

// InstanceSource reads learning-material records and their raw labels.
type InstanceSource interface {
	LoadInstances(ctx context.Context, path string) ([]domain.Instance, error)
}
