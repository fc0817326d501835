package matching

import (
	"fmt"
	"strings"

	"github.com/spigell/shortlister/internal/talent"
)

// ExclusionResult is the verdict of the candidate's own exclusion rules.
type ExclusionResult struct {
	Excluded bool
	Reasons  []string
}

type exclusionRule func(employer *talent.Employer, record *talent.CandidateExclusion, profile *talent.EmployerProfile) (string, bool)

var exclusionRules = []exclusionRule{
	excludeByEmployerName,
	excludeByList("race", func(p *talent.EmployerProfile) []string { return p.Races }, func(x *talent.CandidateExclusion) []string { return x.Races }),
	excludeByList("religion", func(p *talent.EmployerProfile) []string { return p.Religions }, func(x *talent.CandidateExclusion) []string { return x.Religions }),
	excludeByList("gender", func(p *talent.EmployerProfile) []string { return p.Genders }, func(x *talent.CandidateExclusion) []string { return x.Genders }),
	excludeByList("country", func(p *talent.EmployerProfile) []string { return p.Countries }, func(x *talent.CandidateExclusion) []string { return x.Countries }),
	excludeByList("city", func(p *talent.EmployerProfile) []string { return p.Cities }, func(x *talent.CandidateExclusion) []string { return x.Cities }),
	excludeByIncorporationDate,
	excludeBySize,
}

// CheckExclusion evaluates the candidate's exclusion record against the
// employer. Both the record and the profile must be present, otherwise the
// candidate is never excluded. Every rule that fires adds a reason.
func CheckExclusion(candidate *talent.Candidate, employer *talent.Employer, record *talent.CandidateExclusion, profile *talent.EmployerProfile) ExclusionResult {
	result := ExclusionResult{Reasons: []string{}}
	if candidate == nil || record == nil || profile == nil {
		return result
	}
	if employer == nil {
		employer = &talent.Employer{}
	}

	for _, rule := range exclusionRules {
		if reason, fired := rule(employer, record, profile); fired {
			result.Reasons = append(result.Reasons, reason)
		}
	}

	result.Excluded = len(result.Reasons) > 0
	return result
}

func excludeByEmployerName(employer *talent.Employer, record *talent.CandidateExclusion, _ *talent.EmployerProfile) (string, bool) {
	name := strings.TrimSpace(employer.CompanyName)
	if name == "" || !newTokenSet(record.Employers).has(name) {
		return "", false
	}
	return fmt.Sprintf("employer %s is excluded by the candidate", name), true
}

func excludeByList(
	label string,
	declared func(*talent.EmployerProfile) []string,
	blocked func(*talent.CandidateExclusion) []string,
) exclusionRule {
	return func(_ *talent.Employer, record *talent.CandidateExclusion, profile *talent.EmployerProfile) (string, bool) {
		matched := intersect(declared(profile), blocked(record))
		if len(matched) == 0 {
			return "", false
		}
		return fmt.Sprintf("employer %s excluded by the candidate: %s", label, strings.Join(matched, ", ")), true
	}
}

func excludeByIncorporationDate(_ *talent.Employer, record *talent.CandidateExclusion, profile *talent.EmployerProfile) (string, bool) {
	date := strings.TrimSpace(profile.IncorporationDate)
	if date == "" {
		return "", false
	}
	for _, excluded := range record.IncorporationDates {
		if strings.TrimSpace(excluded) == date {
			return fmt.Sprintf("employer incorporation date %s is excluded by the candidate", date), true
		}
	}
	return "", false
}

func excludeBySize(_ *talent.Employer, record *talent.CandidateExclusion, profile *talent.EmployerProfile) (string, bool) {
	if record.SizeThreshold == nil || *record.SizeThreshold <= 0 || profile.Size == nil {
		return "", false
	}
	if *profile.Size < *record.SizeThreshold {
		return "", false
	}
	return fmt.Sprintf("employer size %d meets the candidate's exclusion threshold of %d", *profile.Size, *record.SizeThreshold), true
}
