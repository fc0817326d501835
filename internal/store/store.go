// Package store persists ranking runs in SQLite and reads them back without
// recomputing any score.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/spigell/shortlister/internal/matching"
	"github.com/spigell/shortlister/internal/talent"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrRunNotFound is returned when a run id is not stored.
var ErrRunNotFound = errors.New("run not found")

// Run is one ranking run of an employer's candidates.
type Run struct {
	ID           uuid.UUID
	EmployerID   string
	EmployerName string
	CreatedAt    time.Time
	// Candidates is how many candidates were evaluated, survivors or not.
	Candidates int
	Results    []matching.MatchResult
}

// NewRun stamps a new run for the employer.
func NewRun(employer *talent.Employer, candidates int, results []matching.MatchResult) *Run {
	run := &Run{
		ID:         uuid.New(),
		CreatedAt:  time.Now().UTC(),
		Candidates: candidates,
		Results:    results,
	}
	if employer != nil {
		run.EmployerID = employer.ID
		run.EmployerName = employer.CompanyName
	}
	return run
}

// RunHeader describes a stored run without its results.
type RunHeader struct {
	ID           uuid.UUID
	EmployerID   string
	EmployerName string
	CreatedAt    time.Time
	Candidates   int
	Shortlisted  int
}

// Store is a SQLite-backed run store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and makes sure the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", filepath.Dir(path), err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	// SQLite: single writer. Also keeps an in-memory database alive.
	db.SetMaxOpenConns(1)

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id            TEXT PRIMARY KEY,
			employer_id   TEXT NOT NULL,
			employer_name TEXT,
			created_at    TEXT NOT NULL,
			candidates    INTEGER NOT NULL,
			shortlisted   INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id             TEXT NOT NULL REFERENCES runs(id),
			position           INTEGER NOT NULL,
			candidate_id       TEXT NOT NULL,
			rank               INTEGER NOT NULL,
			score              INTEGER NOT NULL,
			percentage         INTEGER NOT NULL,
			max_possible_score INTEGER NOT NULL,
			candidate          TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS breakdown (
			run_id               TEXT NOT NULL,
			result_position      INTEGER NOT NULL,
			position             INTEGER NOT NULL,
			category             TEXT NOT NULL,
			score                INTEGER NOT NULL,
			past_current_matches TEXT NOT NULL,
			preferred_matches    TEXT NOT NULL,
			PRIMARY KEY (run_id, result_position, position)
		)`,
		`CREATE INDEX IF NOT EXISTS runs_employer ON runs (employer_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores the run and its results in one transaction.
func (s *Store) SaveRun(ctx context.Context, run *Run) (err error) {
	if run == nil {
		return errors.New("store: run is required")
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, employer_id, employer_name, created_at, candidates, shortlisted)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.EmployerID, run.EmployerName,
		run.CreatedAt.UTC().Format(timeLayout), run.Candidates, len(run.Results),
	)
	if err != nil {
		return fmt.Errorf("store: insert run: %w", err)
	}

	// Candidate ids are not unique, results are keyed by their place in the run.
	for position, result := range run.Results {
		if err = insertResult(ctx, tx, run.ID, position, result); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

func insertResult(ctx context.Context, tx *sql.Tx, runID uuid.UUID, resultPosition int, result matching.MatchResult) error {
	if result.Candidate == nil {
		return errors.New("store: result without candidate")
	}

	candidate, err := json.Marshal(result.Candidate)
	if err != nil {
		return fmt.Errorf("store: marshal candidate %s: %w", result.Candidate.ID, err)
	}

	maxScore := 0
	var breakdown []matching.CategoryScore
	if result.Details != nil {
		maxScore = result.Details.MaxPossibleScore
		breakdown = result.Details.Breakdown
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO results (run_id, position, candidate_id, rank, score, percentage, max_possible_score, candidate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID.String(), resultPosition, result.Candidate.ID, result.Rank, result.Score, result.Percentage, maxScore, string(candidate),
	)
	if err != nil {
		return fmt.Errorf("store: insert result %s: %w", result.Candidate.ID, err)
	}

	for position, entry := range breakdown {
		pastCurrent, err := json.Marshal(entry.PastCurrentMatches)
		if err != nil {
			return err
		}
		preferred, err := json.Marshal(entry.PreferredMatches)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO breakdown (run_id, result_position, position, category, score, past_current_matches, preferred_matches)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID.String(), resultPosition, position, entry.Category, entry.Score, string(pastCurrent), string(preferred),
		)
		if err != nil {
			return fmt.Errorf("store: insert breakdown %s/%s: %w", result.Candidate.ID, entry.Category, err)
		}
	}
	return nil
}

// LoadRun reads a run back with its results in the order they were saved.
func (s *Store) LoadRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, employer_id, employer_name, created_at, candidates, shortlisted FROM runs WHERE id = ?`,
		id.String(),
	)
	header, err := scanHeader(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: load run: %w", err)
	}

	breakdowns, err := s.loadBreakdowns(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, candidate_id, rank, score, percentage, max_possible_score, candidate
		 FROM results WHERE run_id = ? ORDER BY position`,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("store: load results: %w", err)
	}
	defer rows.Close()

	run := &Run{
		ID:           header.ID,
		EmployerID:   header.EmployerID,
		EmployerName: header.EmployerName,
		CreatedAt:    header.CreatedAt,
		Candidates:   header.Candidates,
		Results:      make([]matching.MatchResult, 0, header.Shortlisted),
	}
	for rows.Next() {
		var (
			position    int
			candidateID string
			raw         string
			result      = matching.MatchResult{Outcome: matching.OutcomeScored, EliminationReasons: []string{}}
			details     matching.MatchDetails
		)
		if err := rows.Scan(&position, &candidateID, &result.Rank, &result.Score, &result.Percentage, &details.MaxPossibleScore, &raw); err != nil {
			return nil, fmt.Errorf("store: scan result: %w", err)
		}

		var candidate talent.Candidate
		if err := json.Unmarshal([]byte(raw), &candidate); err != nil {
			return nil, fmt.Errorf("store: decode candidate %s: %w", candidateID, err)
		}

		details.TotalScore = result.Score
		details.Percentage = result.Percentage
		details.Breakdown = breakdowns[position]
		if details.Breakdown == nil {
			details.Breakdown = []matching.CategoryScore{}
		}

		result.Candidate = &candidate
		result.Details = &details
		run.Results = append(run.Results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: read results: %w", err)
	}

	return run, nil
}

func (s *Store) loadBreakdowns(ctx context.Context, id uuid.UUID) (map[int][]matching.CategoryScore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT result_position, category, score, past_current_matches, preferred_matches
		 FROM breakdown WHERE run_id = ? ORDER BY result_position, position`,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("store: load breakdown: %w", err)
	}
	defer rows.Close()

	breakdowns := make(map[int][]matching.CategoryScore)
	for rows.Next() {
		var (
			resultPosition         int
			pastCurrent, preferred string
			entry                  matching.CategoryScore
		)
		if err := rows.Scan(&resultPosition, &entry.Category, &entry.Score, &pastCurrent, &preferred); err != nil {
			return nil, fmt.Errorf("store: scan breakdown: %w", err)
		}
		if err := json.Unmarshal([]byte(pastCurrent), &entry.PastCurrentMatches); err != nil {
			return nil, fmt.Errorf("store: decode breakdown: %w", err)
		}
		if err := json.Unmarshal([]byte(preferred), &entry.PreferredMatches); err != nil {
			return nil, fmt.Errorf("store: decode breakdown: %w", err)
		}
		breakdowns[resultPosition] = append(breakdowns[resultPosition], entry)
	}
	return breakdowns, rows.Err()
}

// ListRuns returns run headers, newest first. An empty employerID lists every
// employer. Limit defaults to 50.
func (s *Store) ListRuns(ctx context.Context, employerID string, limit int) ([]RunHeader, error) {
	if limit <= 0 {
		limit = 50
	}

	var (
		rows *sql.Rows
		err  error
	)
	if employerID != "" {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, employer_id, employer_name, created_at, candidates, shortlisted
			 FROM runs WHERE employer_id = ? ORDER BY created_at DESC LIMIT ?`,
			employerID, limit,
		)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, employer_id, employer_name, created_at, candidates, shortlisted
			 FROM runs ORDER BY created_at DESC LIMIT ?`,
			limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	headers := []RunHeader{}
	for rows.Next() {
		header, err := scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		headers = append(headers, header)
	}
	return headers, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHeader(row scanner) (RunHeader, error) {
	var (
		header    RunHeader
		id        string
		name      sql.NullString
		createdAt string
	)
	if err := row.Scan(&id, &header.EmployerID, &name, &createdAt, &header.Candidates, &header.Shortlisted); err != nil {
		return RunHeader{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return RunHeader{}, fmt.Errorf("parse run id %q: %w", id, err)
	}
	created, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return RunHeader{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}

	header.ID = parsed
	header.EmployerName = name.String
	header.CreatedAt = created
	return header, nil
}
