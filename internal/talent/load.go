package talent

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	candidatesSchema = "schemas/candidates.json"
	employerSchema   = "schemas/employer.json"
	exclusionsSchema = "schemas/exclusions.json"
	profileSchema    = "schemas/profile.json"
)

var errEmptyFile = errors.New("file is empty")

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Document string
	Errors   []FieldError
}

// FieldError is a single violation at a field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s is invalid:\n", ve.Document))
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError reports a broken embedded schema.
type SchemaLoadError struct {
	Schema string
	Cause  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("load schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// LoadCandidates reads a JSON array of candidates. An empty file yields no candidates.
func LoadCandidates(path string) ([]*Candidate, error) {
	var candidates []*Candidate
	err := loadDocument(path, candidatesSchema, &candidates)
	if errors.Is(err, errEmptyFile) {
		return []*Candidate{}, nil
	}
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// LoadEmployer reads a single employer object.
func LoadEmployer(path string) (*Employer, error) {
	var employer Employer
	if err := loadDocument(path, employerSchema, &employer); err != nil {
		return nil, err
	}
	return &employer, nil
}

// LoadExclusions reads a JSON array of exclusion records and indexes them.
// An empty path or an empty file yields an empty index.
func LoadExclusions(path string) (ExclusionIndex, error) {
	if strings.TrimSpace(path) == "" {
		return ExclusionIndex{}, nil
	}

	var records []*CandidateExclusion
	err := loadDocument(path, exclusionsSchema, &records)
	if errors.Is(err, errEmptyFile) {
		return ExclusionIndex{}, nil
	}
	if err != nil {
		return nil, err
	}
	return IndexExclusions(records), nil
}

// LoadProfile reads an employer profile. An empty path or file yields nil.
func LoadProfile(path string) (*EmployerProfile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}

	var profile EmployerProfile
	err := loadDocument(path, profileSchema, &profile)
	if errors.Is(err, errEmptyFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func loadDocument(path, schema string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("%s: %w", path, errEmptyFile)
	}

	if err := Validate(schema, data); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.Document = path
		}
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Validate checks a document against one of the embedded schemas.
func Validate(schema string, document []byte) error {
	raw, err := schemaFS.ReadFile(schema)
	if err != nil {
		return &SchemaLoadError{Schema: schema, Cause: err}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(raw),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		// gojsonschema reports malformed documents here too.
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return fmt.Errorf("parse document: %w", err)
		}
		return &SchemaLoadError{Schema: schema, Cause: err}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Document: "document",
		Errors:   make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
