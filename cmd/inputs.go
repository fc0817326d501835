package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/shortlister/internal/logger"
	"github.com/spigell/shortlister/internal/matching"
	"github.com/spigell/shortlister/internal/store"
	"github.com/spigell/shortlister/internal/talent"
)

// inputs is everything a ranking run consumes.
type inputs struct {
	candidates []*talent.Candidate
	employer   *talent.Employer
	exclusions talent.ExclusionIndex
	profile    *talent.EmployerProfile
}

func loadInputs(config *InputsConfig, logger *zap.Logger) (*inputs, error) {
	candidates, err := talent.LoadCandidates(config.Candidates)
	if err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}

	employer, err := talent.LoadEmployer(config.Employer)
	if err != nil {
		return nil, fmt.Errorf("loading employer: %w", err)
	}

	exclusions, err := talent.LoadExclusions(config.Exclusions)
	if err != nil {
		return nil, fmt.Errorf("loading exclusions: %w", err)
	}

	profile, err := talent.LoadProfile(config.Profile)
	if err != nil {
		return nil, fmt.Errorf("loading employer profile: %w", err)
	}

	if profile != nil && profile.EmployerID != "" && profile.EmployerID != employer.ID {
		logger.Warn("employer profile belongs to another employer",
			zap.String("profile_employer_id", profile.EmployerID),
			zap.String("employer_id", employer.ID),
		)
	}

	logger.Info("loaded inputs",
		zap.Int("candidates", len(candidates)),
		zap.String("employer", employer.CompanyName),
		zap.Int("exclusion_records", len(exclusions)),
		zap.Bool("employer_profile", profile != nil),
	)

	return &inputs{
		candidates: candidates,
		employer:   employer,
		exclusions: exclusions,
		profile:    profile,
	}, nil
}

// evaluate returns every candidate's verdict and logs the stage counts.
func (in *inputs) evaluate(workers int, logger *zap.Logger) []matching.MatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ranker := &matching.Ranker{Workers: workers}
	verdicts := ranker.Evaluate(in.candidates, in.employer, in.exclusions, in.profile)

	summary := matching.Summarize(verdicts)
	logger.Info("evaluated candidates",
		zap.Int("initial", summary.Candidates),
		zap.Int("excluded", summary.Excluded),
		zap.Int("eliminated", summary.Eliminated),
		zap.Int("left", summary.Scored),
	)

	return verdicts
}

// setup builds the logger and the validated config shared by the commands.
func setup() (*zap.Logger, *Config) {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		lg.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	lg.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return lg, config
}

// openStore opens the configured run store. A nil store means none is configured.
func openStore(ctx context.Context, config *Config) (*store.Store, error) {
	if config.Store == nil || strings.TrimSpace(config.Store.Path) == "" {
		return nil, nil
	}
	return store.Open(ctx, config.Store.Path)
}
