package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/shortlister/internal/matching"
)

const (
	// FieldEmployer is the structured log field key for the employer id.
	FieldEmployer = "employer_id"
	// FieldRun is the structured log field key for the ranking run id.
	FieldRun = "run_id"
	// FieldCandidate is the structured log field key for the candidate id.
	FieldCandidate = "candidate_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the fields that identify a ranking run.
func CommonFields(employerID, runID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldEmployer, Value: employerID},
		StringField{Key: FieldRun, Value: runID},
	)
}

// WithCommonFields attaches the run fields to the provided logger.
func WithCommonFields(logger *zap.Logger, employerID, runID string) *zap.Logger {
	return WithFields(logger, CommonFields(employerID, runID)...)
}

// VerdictFields describes a single candidate verdict.
func VerdictFields(result matching.MatchResult) []zap.Field {
	fields := make([]zap.Field, 0, 5)
	if result.Candidate != nil {
		fields = append(fields, zap.String(FieldCandidate, result.Candidate.ID))
	}
	fields = append(fields, zap.String("outcome", string(result.Outcome)))

	if result.IsEliminated {
		return append(fields, zap.Strings("reasons", result.EliminationReasons))
	}
	return append(fields,
		zap.Int("rank", result.Rank),
		zap.Int("score", result.Score),
		zap.Int("percentage", result.Percentage),
	)
}
