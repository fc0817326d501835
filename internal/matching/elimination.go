package matching

import (
	"fmt"

	"github.com/spigell/shortlister/internal/talent"
)

// EliminationResult is the verdict of the employer's hard requirements.
type EliminationResult struct {
	Eliminated bool
	Reasons    []string
}

type scalarField struct {
	label     string
	candidate func(*talent.Candidate) string
	employer  func(*talent.EliminationCriteria) string
}

var scalarFields = []scalarField{
	{"ethnicity", func(c *talent.Candidate) string { return c.Ethnicity }, func(e *talent.EliminationCriteria) string { return e.Ethnicity }},
	{"race", func(c *talent.Candidate) string { return c.Race }, func(e *talent.EliminationCriteria) string { return e.Race }},
	{"religion", func(c *talent.Candidate) string { return c.Religion }, func(e *talent.EliminationCriteria) string { return e.Religion }},
	{"nationality", func(c *talent.Candidate) string { return c.Nationality }, func(e *talent.EliminationCriteria) string { return e.Nationality }},
	{"birth country", func(c *talent.Candidate) string { return c.BirthCountry }, func(e *talent.EliminationCriteria) string { return e.BirthCountry }},
	{"current country", func(c *talent.Candidate) string { return c.CurrentCountry }, func(e *talent.EliminationCriteria) string { return e.CurrentCountry }},
	{"visa status", func(c *talent.Candidate) string { return c.VisaStatus }, func(e *talent.EliminationCriteria) string { return e.VisaStatus }},
	{"job arrangement", func(c *talent.Candidate) string { return c.JobArrangement }, func(e *talent.EliminationCriteria) string { return e.JobArrangement }},
}

// CheckElimination runs every hard requirement of the employer against the
// candidate and collects all failures. Malformed requirements are skipped.
func CheckElimination(candidate *talent.Candidate, employer *talent.Employer) EliminationResult {
	result := EliminationResult{Reasons: []string{}}
	if candidate == nil || employer == nil {
		return result
	}
	criteria := &employer.EliminationCriteria

	if reason, failed := checkAge(candidate, criteria); failed {
		result.Reasons = append(result.Reasons, reason)
	}

	for _, field := range scalarFields {
		required := ParseConstraint(field.employer(criteria))
		actual := field.candidate(candidate)
		if !required.Allows(actual) {
			result.Reasons = append(result.Reasons, fmt.Sprintf("%s %q does not match required %q", field.label, actual, required.Value()))
		}
	}

	if reason, failed := checkSalary(candidate, criteria); failed {
		result.Reasons = append(result.Reasons, reason)
	}
	if reason, failed := checkAvailability(candidate, criteria); failed {
		result.Reasons = append(result.Reasons, reason)
	}

	result.Eliminated = len(result.Reasons) > 0
	return result
}

// checkAge skips candidates without an age, as with any other missing field.
// Zero is a real age.
func checkAge(candidate *talent.Candidate, criteria *talent.EliminationCriteria) (string, bool) {
	required, ok := ParseRange(criteria.Age)
	if !ok || candidate.Age == nil || required.Contains(*candidate.Age) {
		return "", false
	}
	return fmt.Sprintf("age %d is outside the required range %s", *candidate.Age, required), true
}

func checkSalary(candidate *talent.Candidate, criteria *talent.EliminationCriteria) (string, bool) {
	ceiling, ok := parseCeiling(criteria.MaxSalary)
	if !ok || float64(candidate.MinimumExpectedSalary) <= ceiling {
		return "", false
	}
	return fmt.Sprintf("expected salary %d exceeds the maximum of %s", candidate.MinimumExpectedSalary, ParseConstraint(criteria.MaxSalary).Value()), true
}

// checkAvailability only eliminates when both tiers are known.
func checkAvailability(candidate *talent.Candidate, criteria *talent.EliminationCriteria) (string, bool) {
	required, ok := AvailabilityTier(criteria.Availability)
	if !ok {
		return "", false
	}
	actual, ok := AvailabilityTier(candidate.Availability)
	if !ok || actual <= required {
		return "", false
	}
	return fmt.Sprintf("availability %q is later than required %q", candidate.Availability, criteria.Availability), true
}
