package matching

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/spigell/shortlister/internal/talent"
)

func rankingFixture() ([]*talent.Candidate, *talent.Employer, talent.ExclusionIndex, *talent.EmployerProfile) {
	employer := domainEmployer("finance", "retail")
	employer.EliminationCriteria = talent.EliminationCriteria{Age: "25-35"}

	candidates := []*talent.Candidate{
		{ID: "b", Age: intPtr(30), PastCurrentDomain: "finance"},
		{ID: "excluded", Age: intPtr(50), PastCurrentDomain: "finance, retail"},
		{ID: "a", Age: intPtr(30), PastCurrentDomain: "finance"},
		{ID: "old", Age: intPtr(36), PastCurrentDomain: "finance, retail"},
		{ID: "best", Age: intPtr(25), PastCurrentDomain: "finance, retail", PreferredDomain: "retail"},
		{ID: "none", Age: intPtr(35)},
	}

	exclusions := talent.IndexExclusions([]*talent.CandidateExclusion{
		{CandidateID: "excluded", Employers: []string{"acme"}},
	})

	return candidates, employer, exclusions, &talent.EmployerProfile{EmployerID: employer.ID}
}

func rankedIDs(results []MatchResult) []string {
	ids := make([]string, 0, len(results))
	for _, result := range results {
		ids = append(ids, result.Candidate.ID)
	}
	return ids
}

func TestRankCandidates(t *testing.T) {
	t.Parallel()

	candidates, employer, exclusions, profile := rankingFixture()

	results := RankCandidates(candidates, employer, exclusions, profile)

	expect := []string{"best", "b", "a", "none"}
	if got := rankedIDs(results); !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}

	for i, result := range results {
		if result.Rank != i+1 {
			t.Fatalf("expected rank %d for %s, got %d", i+1, result.Candidate.ID, result.Rank)
		}
		if result.IsEliminated || result.Outcome != OutcomeScored {
			t.Fatalf("ranked result must be scored: %+v", result)
		}
		if result.Percentage < 0 || result.Percentage > 100 {
			t.Fatalf("percentage out of bounds: %d", result.Percentage)
		}
		if result.Details == nil || result.Details.TotalScore != result.Score {
			t.Fatalf("details must carry the score: %+v", result)
		}
	}

	if results[0].Score != 7 || results[0].Percentage != 88 {
		t.Fatalf("unexpected best result: score %d, percentage %d", results[0].Score, results[0].Percentage)
	}
}

func TestRankCandidatesKeepsInputOrderOnTies(t *testing.T) {
	t.Parallel()

	employer := domainEmployer("finance")
	candidates := []*talent.Candidate{
		{ID: "B", PastCurrentDomain: "finance", PreferredDomain: "finance"},
		{ID: "A", PastCurrentDomain: "finance", PreferredDomain: "finance"},
	}

	results := RankCandidates(candidates, employer, nil, nil)
	if got := rankedIDs(results); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Fatalf("expected [B A], got %v", got)
	}
	if results[0].Rank != 1 || results[1].Rank != 2 {
		t.Fatalf("unexpected ranks: %d, %d", results[0].Rank, results[1].Rank)
	}
}

func TestRankCandidatesIsIdempotent(t *testing.T) {
	t.Parallel()

	candidates, employer, exclusions, profile := rankingFixture()

	first := RankCandidates(candidates, employer, exclusions, profile)
	second := RankCandidates(candidates, employer, exclusions, profile)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results across calls")
	}
}

func TestRankCandidatesEmpty(t *testing.T) {
	t.Parallel()

	results := RankCandidates(nil, domainEmployer("finance"), nil, nil)
	if results == nil || len(results) != 0 {
		t.Fatalf("expected empty non-nil results, got %v", results)
	}
}

func TestEvaluateExclusionTakesPrecedence(t *testing.T) {
	t.Parallel()

	employer := domainEmployer("finance")
	employer.EliminationCriteria = talent.EliminationCriteria{Age: "25-35", Nationality: "French"}
	candidate := &talent.Candidate{ID: "c1", Age: intPtr(60), Nationality: "German"}
	record := &talent.CandidateExclusion{CandidateID: "c1", Employers: []string{"Acme"}}

	verdict := Evaluate(candidate, employer, record, &talent.EmployerProfile{})

	if verdict.Outcome != OutcomeExcluded || !verdict.IsEliminated {
		t.Fatalf("expected exclusion, got %+v", verdict)
	}
	if verdict.Rank != 0 || verdict.Score != 0 || verdict.Details != nil {
		t.Fatalf("excluded verdict must not be scored: %+v", verdict)
	}
	if len(verdict.EliminationReasons) != 1 || !strings.Contains(verdict.EliminationReasons[0], "excluded by the candidate") {
		t.Fatalf("expected only the exclusion reason, got %v", verdict.EliminationReasons)
	}
}

func TestEvaluateElimination(t *testing.T) {
	t.Parallel()

	employer := domainEmployer("finance")
	employer.EliminationCriteria = talent.EliminationCriteria{Availability: "1 month"}
	candidate := &talent.Candidate{ID: "c1", Availability: "2 months", PastCurrentDomain: "finance"}

	verdict := Evaluate(candidate, employer, nil, nil)
	if verdict.Outcome != OutcomeEliminated || !verdict.IsEliminated {
		t.Fatalf("expected elimination, got %+v", verdict)
	}
	if len(verdict.EliminationReasons) == 0 || verdict.Score != 0 || verdict.Rank != 0 {
		t.Fatalf("invalid eliminated verdict: %+v", verdict)
	}
}

func TestEvaluateNilCandidate(t *testing.T) {
	t.Parallel()

	verdict := Evaluate(nil, domainEmployer("finance"), nil, nil)

	if verdict.Outcome != OutcomeEliminated || !verdict.IsEliminated {
		t.Fatalf("expected elimination, got %+v", verdict)
	}
	if verdict.Candidate != nil || verdict.Details != nil || verdict.Score != 0 {
		t.Fatalf("invalid verdict for a nil candidate: %+v", verdict)
	}
	if len(verdict.EliminationReasons) != 1 || verdict.EliminationReasons[0] != missingCandidateReason {
		t.Fatalf("unexpected reasons: %v", verdict.EliminationReasons)
	}
	if ranked := Rank([]MatchResult{verdict}); len(ranked) != 0 {
		t.Fatalf("nil candidate must not be ranked, got %+v", ranked)
	}
}

func TestRankerParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	employer := domainEmployer("finance", "retail", "health")
	employer.EliminationCriteria = talent.EliminationCriteria{Age: "20-40"}

	var candidates []*talent.Candidate
	for i := 0; i < 200; i++ {
		domains := []string{"finance", "retail", "health", "energy"}
		candidates = append(candidates, &talent.Candidate{
			ID:                fmt.Sprintf("c%03d", i),
			Age:               intPtr(18 + i%30),
			PastCurrentDomain: strings.Join(domains[:i%4], ","),
			PreferredDomain:   domains[i%4],
		})
	}
	candidates = append(candidates, nil)

	sequential := RankCandidates(candidates, employer, nil, nil)
	parallel := (&Ranker{Workers: 8}).RankCandidates(candidates, employer, nil, nil)

	if !reflect.DeepEqual(sequential, parallel) {
		t.Fatalf("parallel ranking differs from sequential ranking")
	}

	summary := Summarize((&Ranker{Workers: 8}).Evaluate(candidates, employer, nil, nil))
	if summary.Candidates != 200 || summary.Scored != len(sequential) {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Scored+summary.Eliminated+summary.Excluded != summary.Candidates {
		t.Fatalf("summary does not add up: %+v", summary)
	}
}

func TestRankDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	verdicts := []MatchResult{
		{Candidate: &talent.Candidate{ID: "low"}, Score: 1, Outcome: OutcomeScored},
		{Candidate: &talent.Candidate{ID: "gone"}, IsEliminated: true, Outcome: OutcomeEliminated, EliminationReasons: []string{"x"}},
		{Candidate: &talent.Candidate{ID: "high"}, Score: 9, Outcome: OutcomeScored},
	}

	ranked := Rank(verdicts)
	if got := rankedIDs(ranked); !reflect.DeepEqual(got, []string{"high", "low"}) {
		t.Fatalf("expected [high low], got %v", got)
	}
	for _, verdict := range verdicts {
		if verdict.Rank != 0 {
			t.Fatalf("input verdict %s was modified", verdict.Candidate.ID)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	candidates, employer, exclusions, profile := rankingFixture()

	summary := Summarize((&Ranker{}).Evaluate(candidates, employer, exclusions, profile))
	expect := Summary{Candidates: 6, Excluded: 1, Eliminated: 1, Scored: 4}
	if summary != expect {
		t.Fatalf("expected %+v, got %+v", expect, summary)
	}
}
