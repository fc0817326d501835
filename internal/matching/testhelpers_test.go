package matching

import "github.com/spigell/shortlister/internal/talent"

func intPtr(v int) *int { return &v }

func domainEmployer(tokens ...string) *talent.Employer {
	requirement := talent.CategoryRequirement{}
	slots := []*string{&requirement.Field1, &requirement.Field2, &requirement.Field3}
	for i, token := range tokens {
		*slots[i] = token
	}
	return &talent.Employer{
		ID:          "e1",
		CompanyName: "Acme",
		RequiredMatchingCriteria: map[string]talent.CategoryRequirement{
			"domain": requirement,
		},
	}
}
