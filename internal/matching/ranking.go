package matching

import (
	"cmp"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/shortlister/internal/talent"
)

// Outcome is the terminal state of a candidate's evaluation.
type Outcome string

const (
	OutcomeExcluded   Outcome = "excluded"
	OutcomeEliminated Outcome = "eliminated"
	OutcomeScored     Outcome = "scored"
)

const missingCandidateReason = "candidate record is missing"

// MatchResult is the verdict for one candidate. Rank is zero until the
// candidate is ranked, and stays zero for excluded and eliminated candidates.
type MatchResult struct {
	Candidate          *talent.Candidate `json:"candidate"`
	Rank               int               `json:"rank"`
	Score              int               `json:"score"`
	Percentage         int               `json:"percentage"`
	IsEliminated       bool              `json:"is_eliminated"`
	EliminationReasons []string          `json:"elimination_reasons"`
	Outcome            Outcome           `json:"outcome"`
	Details            *MatchDetails     `json:"details,omitempty"`
}

// Evaluate runs exclusion, elimination and scoring for a single candidate,
// stopping at the first step that rejects it. A nil candidate is eliminated
// and never ranked.
func Evaluate(candidate *talent.Candidate, employer *talent.Employer, exclusion *talent.CandidateExclusion, profile *talent.EmployerProfile) MatchResult {
	if candidate == nil {
		return MatchResult{
			IsEliminated:       true,
			EliminationReasons: []string{missingCandidateReason},
			Outcome:            OutcomeEliminated,
		}
	}

	if employer == nil {
		employer = &talent.Employer{}
	}

	if verdict := CheckExclusion(candidate, employer, exclusion, profile); verdict.Excluded {
		return MatchResult{
			Candidate:          candidate,
			IsEliminated:       true,
			EliminationReasons: verdict.Reasons,
			Outcome:            OutcomeExcluded,
		}
	}

	if verdict := CheckElimination(candidate, employer); verdict.Eliminated {
		return MatchResult{
			Candidate:          candidate,
			IsEliminated:       true,
			EliminationReasons: verdict.Reasons,
			Outcome:            OutcomeEliminated,
		}
	}

	details := ScoreCandidate(candidate, employer)
	return MatchResult{
		Candidate:          candidate,
		Score:              details.TotalScore,
		Percentage:         details.Percentage,
		EliminationReasons: []string{},
		Outcome:            OutcomeScored,
		Details:            &details,
	}
}

// Rank keeps the scored verdicts, orders them by descending score and assigns
// ranks 1..N. Equal scores keep their input order. The input is not modified.
func Rank(verdicts []MatchResult) []MatchResult {
	ranked := make([]MatchResult, 0, len(verdicts))
	for _, verdict := range verdicts {
		if verdict.Outcome == OutcomeScored {
			ranked = append(ranked, verdict)
		}
	}

	slices.SortStableFunc(ranked, func(a, b MatchResult) int {
		return cmp.Compare(b.Score, a.Score)
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// Ranker evaluates candidates, optionally in parallel.
type Ranker struct {
	// Workers bounds concurrent evaluations. Zero or one evaluates sequentially.
	Workers int
}

// Evaluate returns one verdict per non-nil candidate, in input order.
func (r *Ranker) Evaluate(candidates []*talent.Candidate, employer *talent.Employer, exclusions talent.ExclusionIndex, profile *talent.EmployerProfile) []MatchResult {
	candidates = slices.DeleteFunc(slices.Clone(candidates), func(c *talent.Candidate) bool { return c == nil })
	verdicts := make([]MatchResult, len(candidates))

	if r == nil || r.Workers <= 1 || len(candidates) < 2 {
		for i, candidate := range candidates {
			verdicts[i] = Evaluate(candidate, employer, exclusions.For(candidate.ID), profile)
		}
		return verdicts
	}

	var g errgroup.Group
	g.SetLimit(r.Workers)
	for i, candidate := range candidates {
		g.Go(func() error {
			verdicts[i] = Evaluate(candidate, employer, exclusions.For(candidate.ID), profile)
			return nil
		})
	}
	// Evaluate never fails.
	_ = g.Wait()

	return verdicts
}

// RankCandidates evaluates every candidate and returns the ranked survivors.
func (r *Ranker) RankCandidates(candidates []*talent.Candidate, employer *talent.Employer, exclusions talent.ExclusionIndex, profile *talent.EmployerProfile) []MatchResult {
	return Rank(r.Evaluate(candidates, employer, exclusions, profile))
}

// RankCandidates ranks candidates sequentially. Excluded and eliminated
// candidates are not part of the result; use Evaluate to see their reasons.
func RankCandidates(candidates []*talent.Candidate, employer *talent.Employer, exclusions talent.ExclusionIndex, profile *talent.EmployerProfile) []MatchResult {
	return (&Ranker{}).RankCandidates(candidates, employer, exclusions, profile)
}

// Summary counts verdicts per outcome.
type Summary struct {
	Candidates int
	Excluded   int
	Eliminated int
	Scored     int
}

// Summarize counts the outcomes of the given verdicts.
func Summarize(verdicts []MatchResult) Summary {
	summary := Summary{Candidates: len(verdicts)}
	for _, verdict := range verdicts {
		switch verdict.Outcome {
		case OutcomeExcluded:
			summary.Excluded++
		case OutcomeEliminated:
			summary.Eliminated++
		case OutcomeScored:
			summary.Scored++
		}
	}
	return summary
}
