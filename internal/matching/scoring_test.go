package matching

import (
	"reflect"
	"testing"

	"github.com/spigell/shortlister/internal/talent"
)

func TestScoreCandidatePastCurrentAndPreferred(t *testing.T) {
	t.Parallel()

	candidate := &talent.Candidate{
		ID:                "c1",
		PastCurrentDomain: "Finance, Banking",
		PreferredDomain:   "retail",
	}

	details := ScoreCandidate(candidate, domainEmployer("finance", "retail"))

	if details.TotalScore != 4 {
		t.Fatalf("expected score 4, got %d", details.TotalScore)
	}
	if details.MaxPossibleScore != 8 {
		t.Fatalf("expected max score 8, got %d", details.MaxPossibleScore)
	}
	if details.Percentage != 50 {
		t.Fatalf("expected 50%%, got %d", details.Percentage)
	}
	if len(details.Breakdown) != 1 {
		t.Fatalf("expected 1 breakdown entry, got %+v", details.Breakdown)
	}

	entry := details.Breakdown[0]
	if entry.Category != "domain" || entry.Score != 4 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if !reflect.DeepEqual(entry.PastCurrentMatches, []string{"finance"}) {
		t.Fatalf("unexpected past/current matches: %v", entry.PastCurrentMatches)
	}
	if !reflect.DeepEqual(entry.PreferredMatches, []string{"retail"}) {
		t.Fatalf("unexpected preferred matches: %v", entry.PreferredMatches)
	}
}

func TestScoreCandidateTokenOnBothLists(t *testing.T) {
	t.Parallel()

	candidate := &talent.Candidate{
		ID:                "c1",
		PastCurrentDomain: "finance",
		PreferredDomain:   " FINANCE ",
	}

	details := ScoreCandidate(candidate, domainEmployer("Finance"))
	if details.TotalScore != 4 || details.Percentage != 100 {
		t.Fatalf("expected full score, got %+v", details)
	}
	entry := details.Breakdown[0]
	if len(entry.PastCurrentMatches) != 1 || len(entry.PreferredMatches) != 1 {
		t.Fatalf("expected token on both lists, got %+v", entry)
	}
}

func TestScoreCandidateSkipsAnyAndEmptyRequirements(t *testing.T) {
	t.Parallel()

	employer := &talent.Employer{
		RequiredMatchingCriteria: map[string]talent.CategoryRequirement{
			"domain":   {Field1: "finance", Field2: "Any", Field3: ""},
			"function": {Field1: "Any", Field2: "any"},
			"role":     {},
		},
	}
	candidate := &talent.Candidate{ID: "c1", PastCurrentFunction: "any"}

	details := ScoreCandidate(candidate, employer)
	if details.MaxPossibleScore != 4 {
		t.Fatalf("expected only one required token in the ceiling, got %d", details.MaxPossibleScore)
	}
	if details.TotalScore != 0 || details.Percentage != 0 {
		t.Fatalf("expected zero score, got %+v", details)
	}
	if details.Breakdown == nil || len(details.Breakdown) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", details.Breakdown)
	}
}

func TestScoreCandidateOmitsZeroCategories(t *testing.T) {
	t.Parallel()

	employer := &talent.Employer{
		RequiredMatchingCriteria: map[string]talent.CategoryRequirement{
			"system":   {Field1: "sap"},
			"domain":   {Field1: "finance"},
			"function": {Field1: "audit"},
		},
	}
	candidate := &talent.Candidate{
		ID:                "c1",
		PastCurrentDomain: "finance",
		PreferredSystem:   "SAP",
	}

	details := ScoreCandidate(candidate, employer)
	if details.TotalScore != 4 || details.MaxPossibleScore != 12 || details.Percentage != 33 {
		t.Fatalf("unexpected details: %+v", details)
	}

	var categories []string
	for _, entry := range details.Breakdown {
		categories = append(categories, entry.Category)
	}
	if !reflect.DeepEqual(categories, []string{"domain", "system"}) {
		t.Fatalf("expected domain then system, got %v", categories)
	}
}

func TestScoreCandidateUnknownCategoryCountsTowardsCeiling(t *testing.T) {
	t.Parallel()

	employer := &talent.Employer{
		RequiredMatchingCriteria: map[string]talent.CategoryRequirement{
			"domain":    {Field1: "finance"},
			"languages": {Field1: "french"},
		},
	}
	candidate := &talent.Candidate{ID: "c1", PastCurrentDomain: "finance"}

	details := ScoreCandidate(candidate, employer)
	if details.TotalScore != 3 || details.MaxPossibleScore != 8 {
		t.Fatalf("unexpected details: %+v", details)
	}
	if details.Percentage != 38 {
		t.Fatalf("expected 38%%, got %d", details.Percentage)
	}
}

func TestScoreCandidateWithoutRequirements(t *testing.T) {
	t.Parallel()

	details := ScoreCandidate(&talent.Candidate{ID: "c1", PastCurrentDomain: "finance"}, &talent.Employer{})
	if details.TotalScore != 0 || details.MaxPossibleScore != 0 || details.Percentage != 0 {
		t.Fatalf("expected zero details, got %+v", details)
	}
}

func TestPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score, max, expect int
	}{
		{score: 0, max: 0, expect: 0},
		{score: 5, max: 0, expect: 0},
		{score: 1, max: 3, expect: 33},
		{score: 2, max: 3, expect: 67},
		{score: 1, max: 8, expect: 13},
		{score: 8, max: 8, expect: 100},
		{score: 9, max: 8, expect: 100},
	}

	for _, tt := range tests {
		if got := Percentage(tt.score, tt.max); got != tt.expect {
			t.Fatalf("Percentage(%d, %d): expected %d, got %d", tt.score, tt.max, tt.expect, got)
		}
	}
}

func TestOrderCategories(t *testing.T) {
	t.Parallel()

	requested := map[string]talent.CategoryRequirement{
		"zeta":       {},
		"role":       {},
		"alpha":      {},
		"motivation": {},
	}

	got := orderCategories(requested)
	expect := []string{"motivation", "role", "alpha", "zeta"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}
