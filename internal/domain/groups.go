package domain

// ModelingGroup is the domain group of the cross-cutting Modeling standards.
const ModelingGroup = "Modeling"

// ModelingCategory is the pseudo domain category standing in for Modeling,
// which no standard id encodes.
const ModelingCategory = "M"

// DomainGroup is a named grouping of domain categories.
type DomainGroup struct {
	Name        string
	Description string
	DomainCats  []string
}

// DomainGroups keeps the groups in file order; option lists are rendered in
// this order when not shuffled.
type DomainGroups []DomainGroup

// Get returns the group with the given name.
func (gs DomainGroups) Get(name string) (DomainGroup, bool) {
	for _, g := range gs {
		if g.Name == name {
			return g, true
		}
	}
	return DomainGroup{}, false
}

// Names returns group names in order.
func (gs DomainGroups) Names() []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		out = append(out, g.Name)
	}
	return out
}
