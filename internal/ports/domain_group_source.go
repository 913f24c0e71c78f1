package ports

import "github.com/allenai/mathfish/internal/domain"

// DomainGroupSource loads the ordered domain groups.
type DomainGroupSource interface {
	LoadDomainGroups(path string) (domain.DomainGroups, error)
}
