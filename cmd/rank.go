package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/shortlister/internal/logger"
	"github.com/spigell/shortlister/internal/matching"
	"github.com/spigell/shortlister/internal/store"
)

const (
	PromptShowShortlist = "Show shortlist"
	PromptShowCandidate = "Show candidate breakdown"
	PromptDumpToFile    = "Dump shortlist to file"
	PromptSaveRun       = "Save run"
	PromptExit          = "Exit"
	PromptBack          = "back"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank candidates against the employer's requirements",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().IntP("workers", "w", 0, "candidates evaluated in parallel. Default is one per CPU.")
	rankCmd.Flags().IntP("limit", "l", 0, "keep only the top N candidates. Default is unset.")
	rankCmd.Flags().Int("min-percentage", 0, "drop candidates under this match percentage")
	rankCmd.Flags().BoolP("yes", "y", false, "do not ask, print the shortlist and save it if a store is configured")

	viper.BindPFlag("workers", rankCmd.Flags().Lookup("workers"))
	viper.BindPFlag("shortlist.limit", rankCmd.Flags().Lookup("limit"))
	viper.BindPFlag("shortlist.minimum-percentage", rankCmd.Flags().Lookup("min-percentage"))
}

// session is the state of one interactive ranking.
type session struct {
	ctx       context.Context
	logger    *zap.Logger
	config    *Config
	run       *store.Run
	shortlist []matching.MatchResult
	saved     bool
}

func rank(cmd *cobra.Command) {
	ctx := context.Background()

	lg, config := setup()

	lg.Info("starting the shortlister", zap.String("version", version))

	if err := config.requireInputs(); err != nil {
		lg.Fatal("checking inputs", zap.Error(err))
	}

	in, err := loadInputs(config.Inputs, lg)
	if err != nil {
		lg.Fatal("loading inputs", zap.Error(err))
	}

	verdicts := in.evaluate(config.Workers, lg)
	for _, verdict := range verdicts {
		if verdict.Outcome == matching.OutcomeScored {
			continue
		}
		lg.Debug("candidate dropped", logger.VerdictFields(verdict)...)
	}

	shortlist := applyShortlist(matching.Rank(verdicts), config.Shortlist)
	run := store.NewRun(in.employer, len(in.candidates), shortlist)
	lg = logger.WithCommonFields(lg, run.EmployerID, run.ID.String())

	if len(shortlist) == 0 {
		lg.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	s := &session{
		ctx:       ctx,
		logger:    lg,
		config:    config,
		run:       run,
		shortlist: shortlist,
	}

	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		printShortlist(os.Stdout, shortlist)
		if config.Store.Path == "" {
			return
		}
		if err := s.save(); err != nil {
			lg.Fatal("saving the run", zap.Error(err))
		}
		return
	}

	prompt := promptui.Select{
		Label: "What next?",
		Items: []string{PromptShowShortlist, PromptShowCandidate, PromptDumpToFile, PromptSaveRun, PromptExit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			lg.Fatal("exiting", zap.Error(err))
		}

		lg.Info("current shortlist", zap.Int("count", len(shortlist)))

		if err := s.handleAction(action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			lg.Fatal("exiting", zap.Error(err))
		}
	}
}

func (s *session) handleAction(action string) error {
	switch action {
	case PromptShowShortlist:
		printShortlist(os.Stdout, s.shortlist)
		return nil
	case PromptShowCandidate:
		return s.showCandidate()
	case PromptDumpToFile:
		filename, err := dumpToTmpFile("shortlist_*.json", s.shortlist)
		if err != nil {
			return fmt.Errorf("dump shortlist to file: %w", err)
		}
		s.logger.Info("dumping shortlist to file", zap.String("filename", filename))
		return nil
	case PromptSaveRun:
		return s.save()
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (s *session) showCandidate() error {
	items := make([]string, 0, len(s.shortlist)+1)
	for _, result := range s.shortlist {
		items = append(items, resultLabel(result))
	}

	candidatePrompt := promptui.Select{
		Label: "Choose a candidate and press ENTER",
		Items: append(items, PromptBack),
		Size:  10,
	}

	idx, selected, err := candidatePrompt.Run()
	if err != nil {
		return err
	}
	if selected == PromptBack {
		return nil
	}

	printDetails(os.Stdout, s.shortlist[idx])
	return nil
}

func (s *session) save() error {
	if s.saved {
		s.logger.Info("run is already saved")
		return nil
	}

	st, err := openStore(s.ctx, s.config)
	if err != nil {
		return fmt.Errorf("opening the store: %w", err)
	}
	if st == nil {
		s.logger.Warn("skipping save", zap.String("hint", "set store.path or the --store flag"))
		return nil
	}
	defer st.Close()

	if err := st.SaveRun(s.ctx, s.run); err != nil {
		return err
	}
	s.saved = true

	s.logger.Info("saved the run", zap.Int("shortlisted", len(s.run.Results)))
	return nil
}
