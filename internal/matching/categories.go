package matching

import (
	"sort"

	"github.com/spigell/shortlister/internal/talent"
)

// Category names an attribute dimension scored on both the candidate's
// past/current and preferred token lists.
type Category struct {
	Name        string
	PastCurrent func(*talent.Candidate) string
	Preferred   func(*talent.Candidate) string
}

// Categories is the fixed table of scorable categories, in breakdown order.
var Categories = []Category{
	{
		Name:        "motivation",
		PastCurrent: func(c *talent.Candidate) string { return c.PastCurrentMotivation },
		Preferred:   func(c *talent.Candidate) string { return c.PreferredMotivation },
	},
	{
		Name:        "domain",
		PastCurrent: func(c *talent.Candidate) string { return c.PastCurrentDomain },
		Preferred:   func(c *talent.Candidate) string { return c.PreferredDomain },
	},
	{
		Name:        "function",
		PastCurrent: func(c *talent.Candidate) string { return c.PastCurrentFunction },
		Preferred:   func(c *talent.Candidate) string { return c.PreferredFunction },
	},
	{
		Name:        "role",
		PastCurrent: func(c *talent.Candidate) string { return c.PastCurrentRole },
		Preferred:   func(c *talent.Candidate) string { return c.PreferredRole },
	},
	{
		Name:        "structural_skills",
		PastCurrent: func(c *talent.Candidate) string { return c.PastCurrentStructuralSkills },
		Preferred:   func(c *talent.Candidate) string { return c.PreferredStructuralSkills },
	},
	{
		Name:        "system",
		PastCurrent: func(c *talent.Candidate) string { return c.PastCurrentSystem },
		Preferred:   func(c *talent.Candidate) string { return c.PreferredSystem },
	},
}

// LookupCategory finds a category by name.
func LookupCategory(name string) (Category, bool) {
	name = normalizeToken(name)
	for _, category := range Categories {
		if category.Name == name {
			return category, true
		}
	}
	return Category{}, false
}

// candidateTokens returns the candidate's past/current and preferred tokens
// for the category. Unknown categories have none.
func candidateTokens(c *talent.Candidate, name string) (tokenSet, tokenSet) {
	category, ok := LookupCategory(name)
	if !ok {
		return tokenSet{}, tokenSet{}
	}
	return newTokenSet(splitTokens(category.PastCurrent(c))), newTokenSet(splitTokens(category.Preferred(c)))
}

// orderCategories returns the requested category names in table order,
// followed by names outside the table in alphabetical order.
func orderCategories(requested map[string]talent.CategoryRequirement) []string {
	names := make([]string, 0, len(requested))
	for name := range requested {
		names = append(names, name)
	}
	sort.Strings(names)

	ordered := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, category := range Categories {
		for _, name := range names {
			if !seen[name] && normalizeToken(name) == category.Name {
				ordered = append(ordered, name)
				seen[name] = true
			}
		}
	}

	for _, name := range names {
		if !seen[name] {
			ordered = append(ordered, name)
		}
	}
	return ordered
}
