package matching

import (
	"math"
	"strings"

	"github.com/spigell/shortlister/internal/talent"
)

const (
	pastCurrentPoints = 3
	preferredPoints   = 1
	// Ceiling contribution of one required token: matched on both lists.
	tokenCeiling = pastCurrentPoints + preferredPoints
)

// CategoryScore is the contribution of one category to a candidate's score.
type CategoryScore struct {
	Category           string   `json:"category"`
	Score              int      `json:"score"`
	PastCurrentMatches []string `json:"past_current_matches"`
	PreferredMatches   []string `json:"preferred_matches"`
}

// MatchDetails is the scoring outcome for one candidate.
type MatchDetails struct {
	TotalScore       int             `json:"total_score"`
	MaxPossibleScore int             `json:"max_possible_score"`
	Percentage       int             `json:"percentage"`
	Breakdown        []CategoryScore `json:"breakdown"`
}

// ScoreCandidate scores the candidate against every required category of the
// employer. Only categories with a positive score appear in the breakdown.
func ScoreCandidate(candidate *talent.Candidate, employer *talent.Employer) MatchDetails {
	details := MatchDetails{Breakdown: []CategoryScore{}}
	if candidate == nil || employer == nil {
		return details
	}

	for _, name := range orderCategories(employer.RequiredMatchingCriteria) {
		required := requiredTokens(employer.RequiredMatchingCriteria[name])
		if len(required) == 0 {
			continue
		}

		entry := scoreCategory(candidate, name, required)
		details.MaxPossibleScore += len(required) * tokenCeiling
		details.TotalScore += entry.Score
		if entry.Score > 0 {
			details.Breakdown = append(details.Breakdown, entry)
		}
	}

	details.Percentage = Percentage(details.TotalScore, details.MaxPossibleScore)
	return details
}

// requiredTokens returns the trimmed tokens of the requirement, skipping empty slots and "Any".
func requiredTokens(requirement talent.CategoryRequirement) []string {
	var tokens []string
	for _, field := range requirement.Fields() {
		if c := ParseConstraint(field); c.IsSet() {
			tokens = append(tokens, c.Value())
		}
	}
	return tokens
}

func scoreCategory(candidate *talent.Candidate, name string, required []string) CategoryScore {
	pastCurrent, preferred := candidateTokens(candidate, name)
	entry := CategoryScore{
		Category:           strings.TrimSpace(name),
		PastCurrentMatches: []string{},
		PreferredMatches:   []string{},
	}

	for _, token := range required {
		if pastCurrent.has(token) {
			entry.Score += pastCurrentPoints
			entry.PastCurrentMatches = append(entry.PastCurrentMatches, token)
		}
		if preferred.has(token) {
			entry.Score += preferredPoints
			entry.PreferredMatches = append(entry.PreferredMatches, token)
		}
	}
	return entry
}

// Percentage returns round(score / maxScore * 100), clamped to [0, 100].
// A zero maximum yields 0.
func Percentage(score, maxScore int) int {
	if maxScore <= 0 {
		return 0
	}

	p := int(math.Round(float64(score) / float64(maxScore) * 100))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
