package domain

// TreeLevel is a layer of the tagging decision tree.
type TreeLevel string

const (
	TreeDomain   TreeLevel = "domain"
	TreeCluster  TreeLevel = "cluster"
	TreeStandard TreeLevel = "standard"
)

// ParseTreeLevel validates a decision-tree level name.
func ParseTreeLevel(s string) (TreeLevel, error) {
	switch l := TreeLevel(s); l {
	case TreeDomain, TreeCluster, TreeStandard:
		return l, nil
	default:
		return "", NewError("domain.parse_tree_level", KindInvalidArgument, "unknown tree level %q", s)
	}
}

// Branch is what a shown option points back to. A domain option resolves to
// one group name, a standard option to one standard id, and a cluster option
// to every cluster id sharing that description.
type Branch struct {
	Level TreeLevel `json:"level"`
	IDs   []string  `json:"ids"`
}

// ID returns the first id, the only one for domain and standard branches.
func (b Branch) ID() string {
	if len(b.IDs) == 0 {
		return ""
	}
	return b.IDs[0]
}

// Matches reports whether any of the branch ids is in correct.
func (b Branch) Matches(correct IDSet) bool {
	return correct.Intersects(b.IDs)
}

// Instance is one learning-material record: its id and raw label pairs.
type Instance struct {
	ID        string
	Standards []LabeledStandard
}

// PositiveLabelSet is the set of labels implied by one instance's annotations
// after normalization.
type PositiveLabelSet struct {
	DomainCats   []string `json:"domain_cats"`
	DomainGroups []string `json:"domain_groups"`
	Clusters     []string `json:"clusters"`
	Standards    []string `json:"standards"`
}

// TreeQuestion is one multiple-choice step of the tagging decision tree: the
// options shown at a level and the indices of the ones that lead to a positive.
type TreeQuestion struct {
	ID      string    `json:"id"`
	Level   TreeLevel `json:"level"`
	Options []string  `json:"options"`
	Correct []int     `json:"correct_option_index"`
}
