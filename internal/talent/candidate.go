package talent

// Candidate is a candidate profile as uploaded. Category token lists are
// comma-separated strings.
type Candidate struct {
	ID                    string `json:"id"`
	Name                  string `json:"name,omitempty"`
	Age                   *int   `json:"age,omitempty"`
	Ethnicity             string `json:"ethnicity,omitempty"`
	Race                  string `json:"race,omitempty"`
	Religion              string `json:"religion,omitempty"`
	Nationality           string `json:"nationality,omitempty"`
	BirthCountry          string `json:"birth_country,omitempty"`
	CurrentCountry        string `json:"current_country,omitempty"`
	VisaStatus            string `json:"visa_status,omitempty"`
	JobArrangement        string `json:"job_arrangement,omitempty"`
	MinimumExpectedSalary int    `json:"minimum_expected_salary,omitempty"`
	Availability          string `json:"availability,omitempty"`

	PastCurrentMotivation       string `json:"past_current_motivation,omitempty"`
	PreferredMotivation         string `json:"preferred_motivation,omitempty"`
	PastCurrentDomain           string `json:"past_current_domain,omitempty"`
	PreferredDomain             string `json:"preferred_domain,omitempty"`
	PastCurrentFunction         string `json:"past_current_function,omitempty"`
	PreferredFunction           string `json:"preferred_function,omitempty"`
	PastCurrentRole             string `json:"past_current_role,omitempty"`
	PreferredRole               string `json:"preferred_role,omitempty"`
	PastCurrentStructuralSkills string `json:"past_current_structural_skills,omitempty"`
	PreferredStructuralSkills   string `json:"preferred_structural_skills,omitempty"`
	PastCurrentSystem           string `json:"past_current_system,omitempty"`
	PreferredSystem             string `json:"preferred_system,omitempty"`
}

// DisplayName returns the candidate name, falling back to the id.
func (c *Candidate) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// FindCandidate returns the candidate with the given id or nil.
func FindCandidate(candidates []*Candidate, id string) *Candidate {
	for _, c := range candidates {
		if c != nil && c.ID == id {
			return c
		}
	}
	return nil
}
