package domain

import (
	"strconv"
	"strings"
)

// NoDomain is the domain category of ids that carry no domain part (grades).
const NoDomain = "None"

// GradeHS is the grade of every high-school standard.
const GradeHS = "HS"

// DomainCategory returns the K-8 domain code or HS category code of an id.
//
//	S-IC.B.5 -> S
//	3.OA.A.1 -> OA
//	K        -> None
func DomainCategory(id string) string {
	if i := strings.Index(id, "-"); i >= 0 {
		return id[:i]
	}
	parts := strings.Split(id, ".")
	if len(parts) < 2 {
		return NoDomain
	}
	return parts[1]
}

// Grade returns K, 1..8 or HS for an id.
func Grade(id string) string {
	if strings.Contains(id, "-") {
		return GradeHS
	}
	return strings.Split(id, ".")[0]
}

// ClusterOf strips the last dot-delimited part of a standard id.
func ClusterOf(id string) string {
	i := strings.LastIndex(id, ".")
	if i < 0 {
		return id
	}
	return id[:i]
}

// GradeToNumber maps K..8,HS onto 0..9.
func GradeToNumber(g string) (int, error) {
	switch g {
	case "K":
		return 0, nil
	case GradeHS:
		return 9, nil
	}
	n, err := strconv.Atoi(g)
	if err != nil || n < 1 || n > 8 || strconv.Itoa(n) != g {
		return 0, NewError("domain.grade_to_number", KindInvalidArgument, "grade %q out of range", g)
	}
	return n, nil
}

// NumberToGrade is the inverse of GradeToNumber.
func NumberToGrade(n int) (string, error) {
	switch {
	case n == 0:
		return "K", nil
	case n == 9:
		return GradeHS, nil
	case n > 0 && n < 9:
		return strconv.Itoa(n), nil
	default:
		return "", NewError("domain.number_to_grade", KindInvalidArgument, "grade number %d out of range", n)
	}
}

// MaxGrade returns the highest grade number among the given standards, or 0
// for an empty list.
func MaxGrade(standards []string) (int, error) {
	highest := 0
	for _, s := range standards {
		g, err := GradeToNumber(Grade(s))
		if err != nil {
			return 0, err
		}
		if g > highest {
			highest = g
		}
	}
	return highest, nil
}

// GradeLevelDistance compares a negative standard's grade with the highest
// grade among the positives. For positives [K.OA.A.1 K.CC.A.1] and negative
// 1.NBT.A.1 it returns (1, 1, 0).
func GradeLevelDistance(positives []string, negative string) (dist, negGrade, maxPosGrade int, err error) {
	negGrade, err = GradeToNumber(Grade(negative))
	if err != nil {
		return 0, 0, 0, err
	}
	maxPosGrade, err = MaxGrade(positives)
	if err != nil {
		return 0, 0, 0, err
	}
	return negGrade - maxPosGrade, negGrade, maxPosGrade, nil
}

const maxOptionLetters = 26 + 26*26

// OptionLetters returns the first n option labels: A..Z, then AA, AB, ... ZZ.
func OptionLetters(n int) ([]string, error) {
	if n < 0 || n > maxOptionLetters {
		return nil, NewError("domain.option_letters", KindInvalidArgument, "cannot label %d options (max %d)", n, maxOptionLetters)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i < 26 {
			out = append(out, string(rune('A'+i)))
			continue
		}
		j := i - 26
		out = append(out, string([]rune{rune('A' + j/26), rune('A' + j%26)}))
	}
	return out, nil
}
