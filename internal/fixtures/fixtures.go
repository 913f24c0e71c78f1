// Package fixtures holds small hand-built taxonomies shared by package tests.
//
// Family covers high-school statistics and functions plus two grade 6 domains,
// with a relation graph around S-IC.B.6. Tree covers kindergarten counting and
// a cross-grade geometry domain whose cluster description "circles" repeats in
// grades 1 and 2.
package fixtures

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/allenai/mathfish/internal/domain"
)

func rec(id, desc string, level domain.Level, parent string, children ...string) domain.StandardRecord {
	return domain.StandardRecord{
		ID:          id,
		Description: desc,
		Level:       level,
		Parent:      parent,
		Children:    children,
	}
}

func connect(r domain.StandardRecord, rel domain.Relation, ids ...string) domain.StandardRecord {
	if r.Connections == nil {
		r.Connections = map[domain.Relation][]string{}
	}
	r.Connections[rel] = append(r.Connections[rel], ids...)
	return r
}

// Family returns the statistics/functions taxonomy.
func Family() []domain.StandardRecord {
	sicb3 := connect(rec("S-IC.B.3", "Recognize the purposes of sample surveys.", domain.LevelStandard, "S-IC.B"), domain.RelProgressTo, "S-IC.B.6")
	sicb4 := connect(rec("S-IC.B.4", "Use data from a sample survey to estimate a population mean.", domain.LevelStandard, "S-IC.B"), domain.RelProgressTo, "S-IC.B.6")
	sicb5 := connect(rec("S-IC.B.5", "Use data from a randomized experiment to compare two treatments.", domain.LevelStandard, "S-IC.B"), domain.RelProgressTo, "S-IC.B.6")
	sicb6 := rec("S-IC.B.6", "Evaluate reports based on data.", domain.LevelStandard, "S-IC.B")
	sicb6 = connect(sicb6, domain.RelProgressFrom, "S-IC.B.3", "S-IC.B.4", "S-IC.B.5")
	sicb6 = connect(sicb6, domain.RelRelated, "S-ID.C.9")
	sidc9 := connect(rec("S-ID.C.9", "Distinguish between correlation and causation.", domain.LevelStandard, "S-ID.C"), domain.RelRelated, "S-IC.B.6")
	sidc9.Modeling = true

	sp := connect(rec("6.SP.A.2", "Understand that a set of data has a distribution.", domain.LevelStandard, "6.SP.A"), domain.RelRelated, "6.G.A.2")
	g := connect(rec("6.G.A.2", "Find the volume of a right rectangular prism.", domain.LevelStandard, "6.G.A"), domain.RelRelated, "6.SP.A.2")

	return []domain.StandardRecord{
		rec("HS", "High School", domain.LevelGrade, "", "S", "F"),
		rec("S", "Statistics and Probability", domain.LevelHSCategory, "HS", "S-IC", "S-ID"),
		rec("S-IC", "Making Inferences and Justifying Conclusions", domain.LevelDomain, "S", "S-IC.B"),
		rec("S-IC.B", "Make inferences and justify conclusions from sample surveys.", domain.LevelCluster, "S-IC", "S-IC.B.3", "S-IC.B.4", "S-IC.B.5", "S-IC.B.6"),
		sicb3, sicb4, sicb5, sicb6,
		rec("S-ID", "Interpreting Categorical and Quantitative Data", domain.LevelDomain, "S", "S-ID.C"),
		rec("S-ID.C", "Interpret linear models.", domain.LevelCluster, "S-ID", "S-ID.C.9"),
		sidc9,
		rec("F", "Functions", domain.LevelHSCategory, "HS", "F-IF"),
		rec("F-IF", "Interpreting Functions", domain.LevelDomain, "F", "F-IF.C"),
		rec("F-IF.C", "Analyze functions using different representations.", domain.LevelCluster, "F-IF", "F-IF.C.7"),
		rec("F-IF.C.7", "Graph functions expressed symbolically.", domain.LevelStandard, "F-IF.C", "F-IF.C.7d", "F-IF.C.7e"),
		rec("F-IF.C.7d", "Graph rational functions.", domain.LevelSubStandard, "F-IF.C.7"),
		rec("F-IF.C.7e", "Graph exponential and logarithmic functions.", domain.LevelSubStandard, "F-IF.C.7"),
		rec("6", "Grade 6", domain.LevelGrade, "", "6.SP", "6.G"),
		rec("6.SP", "Statistics and Probability", domain.LevelDomain, "6", "6.SP.A"),
		rec("6.SP.A", "Develop understanding of statistical variability.", domain.LevelCluster, "6.SP", "6.SP.A.2"),
		sp,
		rec("6.G", "Geometry", domain.LevelDomain, "6", "6.G.A"),
		rec("6.G.A", "Solve real-world problems involving area, surface area, and volume.", domain.LevelCluster, "6.G", "6.G.A.2"),
		g,
	}
}

// FamilyGroups covers every domain category of Family plus Modeling.
func FamilyGroups() domain.DomainGroups {
	return domain.DomainGroups{
		{Name: "Statistics & Probability", Description: "data and chance", DomainCats: []string{"S", "SP"}},
		{Name: "Functions", Description: "functions and graphs", DomainCats: []string{"F"}},
		{Name: "Geometry", Description: "shapes and space", DomainCats: []string{"G"}},
		{Name: domain.ModelingGroup, Description: "mathematical modeling", DomainCats: []string{domain.ModelingCategory}},
	}
}

// Tree returns the counting/geometry taxonomy.
func Tree() []domain.StandardRecord {
	std := func(id, parent string) domain.StandardRecord {
		return rec(id, "descript of "+strings.ToLower(id), domain.LevelStandard, parent)
	}
	return []domain.StandardRecord{
		rec("K", "Kindergarten", domain.LevelGrade, "", "K.CC"),
		rec("K.CC", "Counting and Cardinality", domain.LevelDomain, "K", "K.CC.A", "K.CC.B"),
		rec("K.CC.A", "descript of k.cc.a", domain.LevelCluster, "K.CC", "K.CC.A.1", "K.CC.A.2", "K.CC.A.3"),
		std("K.CC.A.1", "K.CC.A"),
		std("K.CC.A.2", "K.CC.A"),
		std("K.CC.A.3", "K.CC.A"),
		rec("K.CC.B", "descript of k.cc.b", domain.LevelCluster, "K.CC", "K.CC.B.1", "K.CC.B.2"),
		std("K.CC.B.1", "K.CC.B"),
		std("K.CC.B.2", "K.CC.B"),
		rec("1", "Grade 1", domain.LevelGrade, "", "1.G"),
		rec("1.G", "Geometry", domain.LevelDomain, "1", "1.G.A", "1.G.B"),
		rec("1.G.A", "circles", domain.LevelCluster, "1.G", "1.G.A.1"),
		std("1.G.A.1", "1.G.A"),
		rec("1.G.B", "squares", domain.LevelCluster, "1.G", "1.G.B.1"),
		std("1.G.B.1", "1.G.B"),
		rec("2", "Grade 2", domain.LevelGrade, "", "2.G"),
		rec("2.G", "Geometry", domain.LevelDomain, "2", "2.G.A"),
		rec("2.G.A", "circles", domain.LevelCluster, "2.G", "2.G.A.1"),
		std("2.G.A.1", "2.G.A"),
	}
}

// TreeGroups is the three-group top layer for Tree.
func TreeGroups() domain.DomainGroups {
	return domain.DomainGroups{
		{Name: "Counting & Cardinality", Description: "descript1", DomainCats: []string{"CC"}},
		{Name: "Operations, Algebra, & Algebraic Thinking", Description: "descript2", DomainCats: []string{"OA", "A"}},
		{Name: "Geometry", Description: "descript3", DomainCats: []string{"G"}},
	}
}

type jsonRecord struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Level       string              `json:"level"`
	Parent      string              `json:"parent"`
	Children    []string            `json:"children"`
	Modeling    bool                `json:"modeling"`
	Connections map[string][]string `json:"connections"`
}

// WriteStandards writes records as a standards JSONL file under dir.
func WriteStandards(t testing.TB, dir string, records []domain.StandardRecord) string {
	t.Helper()
	var b strings.Builder
	for _, r := range records {
		jr := jsonRecord{
			ID:          r.ID,
			Description: r.Description,
			Level:       string(r.Level),
			Parent:      r.Parent,
			Children:    r.Children,
			Modeling:    r.Modeling,
			Connections: map[string][]string{},
		}
		if jr.Children == nil {
			jr.Children = []string{}
		}
		for rel, ids := range r.Connections {
			jr.Connections[string(rel)] = ids
		}
		line, err := json.Marshal(jr)
		if err != nil {
			t.Fatalf("marshal %s: %v", r.ID, err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return writeFile(t, dir, "standards.jsonl", b.String())
}

// WriteGroups writes groups as a domain-groups JSON object under dir,
// preserving group order.
func WriteGroups(t testing.TB, dir string, groups domain.DomainGroups) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("{\n")
	for i, g := range groups {
		name, _ := json.Marshal(g.Name)
		body, err := json.Marshal(struct {
			Description string   `json:"description"`
			DomainCats  []string `json:"domain_cats"`
		}{g.Description, g.DomainCats})
		if err != nil {
			t.Fatalf("marshal group %s: %v", g.Name, err)
		}
		b.Write(name)
		b.WriteString(": ")
		b.Write(body)
		if i < len(groups)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return writeFile(t, dir, "domain_groups.json", b.String())
}

func writeFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}
