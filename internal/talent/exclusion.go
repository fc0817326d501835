package talent

// CandidateExclusion lists the employers a candidate refuses to be matched with.
type CandidateExclusion struct {
	CandidateID        string   `json:"candidate_id"`
	Employers          []string `json:"employers,omitempty"`
	Races              []string `json:"races,omitempty"`
	Religions          []string `json:"religions,omitempty"`
	Genders            []string `json:"genders,omitempty"`
	Countries          []string `json:"countries,omitempty"`
	Cities             []string `json:"cities,omitempty"`
	IncorporationDates []string `json:"incorporation_dates,omitempty"`

	// SizeThreshold excludes employers whose size is at or above it.
	SizeThreshold *int `json:"size_threshold,omitempty"`
}

// EmployerProfile describes an employer. It is only consulted for exclusions.
type EmployerProfile struct {
	EmployerID        string   `json:"employer_id"`
	Races             []string `json:"races,omitempty"`
	Religions         []string `json:"religions,omitempty"`
	Genders           []string `json:"genders,omitempty"`
	Countries         []string `json:"countries,omitempty"`
	Cities            []string `json:"cities,omitempty"`
	IncorporationDate string   `json:"incorporation_date,omitempty"`
	Size              *int     `json:"size,omitempty"`
}

// ExclusionIndex maps candidate ids to their exclusion records.
type ExclusionIndex map[string]*CandidateExclusion

// IndexExclusions indexes records by candidate id. Later records win.
func IndexExclusions(records []*CandidateExclusion) ExclusionIndex {
	index := make(ExclusionIndex, len(records))
	for _, record := range records {
		if record == nil || record.CandidateID == "" {
			continue
		}
		index[record.CandidateID] = record
	}
	return index
}

// For returns the record of the candidate, or nil when there is none.
func (x ExclusionIndex) For(candidateID string) *CandidateExclusion {
	if x == nil {
		return nil
	}
	return x[candidateID]
}
