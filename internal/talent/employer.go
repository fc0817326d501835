package talent

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Employer is a job posting with its hard and soft requirements.
type Employer struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title,omitempty"`

	EliminationCriteria EliminationCriteria `json:"elimination_criteria"`

	// RequiredMatchingCriteria maps a category name to up to three required tokens.
	RequiredMatchingCriteria map[string]CategoryRequirement `json:"required_matching_criteria,omitempty"`
}

// EliminationCriteria is the sparse set of hard requirements. Every value is
// kept as written: "Any", an empty string or a missing key all mean the field
// is not constrained. Age is a "min-max" range.
type EliminationCriteria struct {
	Age            string `mapstructure:"age" json:"age,omitempty"`
	Ethnicity      string `mapstructure:"ethnicity" json:"ethnicity,omitempty"`
	Race           string `mapstructure:"race" json:"race,omitempty"`
	Religion       string `mapstructure:"religion" json:"religion,omitempty"`
	Nationality    string `mapstructure:"nationality" json:"nationality,omitempty"`
	BirthCountry   string `mapstructure:"birth_country" json:"birth_country,omitempty"`
	CurrentCountry string `mapstructure:"current_country" json:"current_country,omitempty"`
	VisaStatus     string `mapstructure:"visa_status" json:"visa_status,omitempty"`
	JobArrangement string `mapstructure:"job_arrangement" json:"job_arrangement,omitempty"`
	MaxSalary      string `mapstructure:"max_salary" json:"max_salary,omitempty"`
	Availability   string `mapstructure:"availability" json:"availability,omitempty"`
}

// UnmarshalJSON accepts numbers where strings are expected, since uploads
// write salaries and ages both ways.
func (e *EliminationCriteria) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	return DecodeCriteria(raw, e)
}

// DecodeCriteria decodes a raw criteria mapping into out. Unknown keys are ignored.
func DecodeCriteria(raw map[string]any, out *EliminationCriteria) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decode elimination criteria: %w", err)
	}
	return nil
}

// CategoryRequirement holds the required tokens for one category.
type CategoryRequirement struct {
	Field1 string `json:"field1,omitempty"`
	Field2 string `json:"field2,omitempty"`
	Field3 string `json:"field3,omitempty"`
}

// Fields returns the three slots in order, including empty ones.
func (r CategoryRequirement) Fields() []string {
	return []string{r.Field1, r.Field2, r.Field3}
}
