package talent

import (
	"testing"
)

func TestIndexExclusions(t *testing.T) {
	first := &CandidateExclusion{CandidateID: "c1", Cities: []string{"Paris"}}
	second := &CandidateExclusion{CandidateID: "c1", Cities: []string{"Rome"}}

	index := IndexExclusions([]*CandidateExclusion{first, nil, {CandidateID: ""}, second})

	if len(index) != 1 {
		t.Fatalf("expected 1 record, got %d", len(index))
	}
	if index.For("c1") != second {
		t.Fatalf("expected later record to win")
	}

	var empty ExclusionIndex
	if empty.For("c1") != nil {
		t.Fatalf("expected nil record from nil index")
	}
}

func TestDecodeCriteriaWeaklyTyped(t *testing.T) {
	var criteria EliminationCriteria
	err := DecodeCriteria(map[string]any{
		"age":          "25-35",
		"max_salary":   4500,
		"availability": "1 month",
		"unknown":      true,
	}, &criteria)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if criteria.MaxSalary != "4500" {
		t.Fatalf("expected max salary 4500, got %q", criteria.MaxSalary)
	}
	if criteria.Age != "25-35" || criteria.Availability != "1 month" {
		t.Fatalf("unexpected criteria: %+v", criteria)
	}
}

func TestFindCandidate(t *testing.T) {
	candidates := []*Candidate{{ID: "a"}, nil, {ID: "b", Name: "Bea"}}

	if got := FindCandidate(candidates, "b"); got == nil || got.DisplayName() != "Bea" {
		t.Fatalf("expected to find Bea, got %+v", got)
	}
	if got := FindCandidate(candidates, "z"); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
