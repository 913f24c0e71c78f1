package domain

import "strings"

// Strategy names a negative sampling strategy.
type Strategy string

const (
	StrategySameDomainSameGrade           Strategy = "same-domain-same-grade"
	StrategySameDomainDifferentGrade      Strategy = "same-domain-different-grade"
	StrategyDifferentDomainSameGrade      Strategy = "different-domain-same-grade"
	StrategyDifferentDomainDifferentGrade Strategy = "different-domain-different-grade"
	StrategyNeighbors                     Strategy = "neighbors"
	StrategyAllNegativeTypes              Strategy = "all-negative-types"
)

// GradeDomainStrategies are the grade/domain filter strategies in the order
// all-negative-types runs them.
var GradeDomainStrategies = []Strategy{
	StrategyDifferentDomainDifferentGrade,
	StrategySameDomainDifferentGrade,
	StrategyDifferentDomainSameGrade,
	StrategySameDomainSameGrade,
}

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.TrimSpace(s)); st {
	case StrategySameDomainSameGrade,
		StrategySameDomainDifferentGrade,
		StrategyDifferentDomainSameGrade,
		StrategyDifferentDomainDifferentGrade,
		StrategyNeighbors,
		StrategyAllNegativeTypes:
		return st, nil
	default:
		return "", NewError("domain.parse_strategy", KindInvalidArgument, "unknown negative sampling strategy %q", s)
	}
}

// Clause is the same/different half of a grade/domain strategy.
type Clause string

const (
	ClauseSame      Clause = "same"
	ClauseDifferent Clause = "different"
)

// GradeDomain splits a grade/domain strategy into its domain and grade clauses.
// ok is false for neighbors and all-negative-types.
func (s Strategy) GradeDomain() (dom, grade Clause, ok bool) {
	parts := strings.Split(string(s), "-")
	if len(parts) != 4 || parts[1] != "domain" || parts[3] != "grade" {
		return "", "", false
	}
	dom, grade = Clause(parts[0]), Clause(parts[2])
	valid := func(c Clause) bool { return c == ClauseSame || c == ClauseDifferent }
	if !valid(dom) || !valid(grade) {
		return "", "", false
	}
	return dom, grade, true
}

// RelationFilter restricts neighbor lookup to one relation kind or all of them.
type RelationFilter string

const RelationAll RelationFilter = "all"

// ParseRelationFilter accepts "all" or one of the relation kinds.
func ParseRelationFilter(s string) (RelationFilter, error) {
	switch f := RelationFilter(s); f {
	case RelationAll, RelationFilter(RelProgressTo), RelationFilter(RelProgressFrom), RelationFilter(RelRelated):
		return f, nil
	default:
		return "", NewError("domain.parse_relation", KindInvalidArgument, "unknown relation type %q", s)
	}
}

// Includes reports whether the filter admits relation r.
func (f RelationFilter) Includes(r Relation) bool {
	return f == RelationAll || Relation(f) == r
}

// Negative is a sampled negative standard tagged with the strategy that produced it.
type Negative struct {
	Strategy Strategy `json:"strategy"`
	ID       string   `json:"id"`
}
