package usecase

import (
	"fmt"

	"github.com/allenai/mathfish/internal/domain"
	"github.com/allenai/mathfish/internal/retriever"
)

// BranchResolver resolves a rendered option back to taxonomy ids.
type BranchResolver interface {
	PointerToNextBranch(option string, level domain.TreeLevel) (domain.Branch, error)
}

// CorrectOptionIndices returns the indices of options whose branch reaches any
// id in correct. A cluster option shared by several clusters counts as correct
// when one of them is.
func CorrectOptionIndices(options []string, level domain.TreeLevel, correct domain.IDSet, resolver BranchResolver) ([]int, error) {
	out := []int{}
	for i, opt := range options {
		b, err := resolver.PointerToNextBranch(opt, level)
		if err != nil {
			return nil, err
		}
		if b.Matches(correct) {
			out = append(out, i)
		}
	}
	return out, nil
}

// TreeQuestions turns one instance's positive labels into the questions of
// the decision tree: one domain question, one cluster question per positive
// domain group, and one standard question per positive cluster.
type TreeQuestions struct {
	rt       *retriever.Retriever
	describe bool
	shuffle  bool
}

type QuestionOption func(*TreeQuestions)

// WithDescriptions appends each group's description to domain options.
func WithDescriptions(on bool) QuestionOption {
	return func(uc *TreeQuestions) { uc.describe = on }
}

// WithShuffle shuffles every option list.
func WithShuffle(on bool) QuestionOption {
	return func(uc *TreeQuestions) { uc.shuffle = on }
}

func NewTreeQuestions(rt *retriever.Retriever, opts ...QuestionOption) *TreeQuestions {
	uc := &TreeQuestions{rt: rt, describe: true, shuffle: true}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Build returns the questions in tree order. Modeling has no clusters of its
// own, so it never gets a cluster question.
func (uc *TreeQuestions) Build(instanceID string, pos domain.PositiveLabelSet) ([]domain.TreeQuestion, error) {
	var out []domain.TreeQuestion

	domains := uc.rt.ListOfDomains(uc.describe, uc.shuffle)
	q, err := uc.question(instanceID, domain.TreeDomain, 0, domains, pos.DomainGroups)
	if err != nil {
		return nil, err
	}
	out = append(out, q)

	for i, group := range pos.DomainGroups {
		if group == domain.ModelingGroup {
			continue
		}
		clusters, err := uc.rt.PossibleClusters(group, uc.shuffle)
		if err != nil {
			return nil, err
		}
		q, err := uc.question(instanceID, domain.TreeCluster, i, clusters, pos.Clusters)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}

	for i, cluster := range pos.Clusters {
		standards, err := uc.rt.PossibleStandards(cluster, uc.shuffle)
		if err != nil {
			return nil, err
		}
		q, err := uc.question(instanceID, domain.TreeStandard, i, standards, pos.Standards)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}

	return out, nil
}

func (uc *TreeQuestions) question(instanceID string, level domain.TreeLevel, idx int, options, correct []string) (domain.TreeQuestion, error) {
	indices, err := CorrectOptionIndices(options, level, domain.NewIDSet(correct...), uc.rt)
	if err != nil {
		return domain.TreeQuestion{}, fmt.Errorf("%s %s question: %w", instanceID, level, err)
	}
	return domain.TreeQuestion{
		ID:      fmt.Sprintf("%s_%s_%d", instanceID, level, idx),
		Level:   level,
		Options: options,
		Correct: indices,
	}, nil
}
