package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/shortlister/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved ranking runs or show one of them",
	Run: func(cmd *cobra.Command, _ []string) {
		history(cmd)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().String("run", "", "id of the run to show")
	historyCmd.Flags().String("employer-id", "", "list runs of this employer only")
	historyCmd.Flags().IntP("limit", "l", 0, "how many runs to list. Default is 50.")
}

func history(cmd *cobra.Command) {
	ctx := context.Background()

	lg, config := setup()

	st, err := openStore(ctx, config)
	if err != nil {
		lg.Fatal("opening the store", zap.Error(err))
	}
	if st == nil {
		lg.Fatal("store is not configured", zap.String("hint", "set store.path or the --store flag"))
	}
	defer st.Close()

	runID, _ := cmd.Flags().GetString("run")
	if runID != "" {
		if err := showRun(ctx, st, runID); err != nil {
			lg.Fatal("showing the run", zap.String("run_id", runID), zap.Error(err))
		}
		return
	}

	employerID, _ := cmd.Flags().GetString("employer-id")
	limit, _ := cmd.Flags().GetInt("limit")

	headers, err := st.ListRuns(ctx, employerID, limit)
	if err != nil {
		lg.Fatal("listing runs", zap.Error(err))
	}

	if len(headers) == 0 {
		lg.Info("no runs saved yet")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tEMPLOYER\tCREATED\tCANDIDATES\tSHORTLISTED")
	for _, h := range headers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			h.ID,
			h.EmployerName,
			h.CreatedAt.Local().Format(time.DateTime),
			h.Candidates,
			h.Shortlisted,
		)
	}
	w.Flush()
}

func showRun(ctx context.Context, st *store.Store, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("parsing run id: %w", err)
	}

	run, err := st.LoadRun(ctx, id)
	if errors.Is(err, store.ErrRunNotFound) {
		return fmt.Errorf("no run %s in the store", id)
	}
	if err != nil {
		return err
	}

	fmt.Printf("run %s for %s, %d candidates evaluated, created %s\n",
		run.ID, run.EmployerName, run.Candidates, run.CreatedAt.Local().Format(time.DateTime))
	for _, result := range run.Results {
		printDetails(os.Stdout, result)
	}
	return nil
}
