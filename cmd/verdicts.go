package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verdictsCmd = &cobra.Command{
	Use:   "verdicts",
	Short: "Print every candidate's verdict with the reasons it was dropped",
	Run: func(cmd *cobra.Command, _ []string) {
		verdicts(cmd)
	},
}

func init() {
	rootCmd.AddCommand(verdictsCmd)

	verdictsCmd.Flags().Bool("output-json", false, "print verdicts as JSON")
	verdictsCmd.Flags().IntP("workers", "w", 0, "candidates evaluated in parallel. Default is one per CPU.")
}

func verdicts(cmd *cobra.Command) {
	lg, config := setup()

	if err := config.requireInputs(); err != nil {
		lg.Fatal("checking inputs", zap.Error(err))
	}

	in, err := loadInputs(config.Inputs, lg)
	if err != nil {
		lg.Fatal("loading inputs", zap.Error(err))
	}

	workers := config.Workers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}

	results := in.evaluate(workers, lg)

	if asJSON, _ := cmd.Flags().GetBool("output-json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			lg.Fatal("encoding verdicts", zap.Error(err))
		}
		return
	}

	for _, verdict := range results {
		printVerdict(os.Stdout, verdict)
	}
}
