package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spigell/shortlister/internal/matching"
	"github.com/spigell/shortlister/internal/utils"
)

const maxReasonLength = 120

// applyShortlist drops results under the minimum percentage and caps the count.
// Every scored candidate shares the same maximum, so ranks stay contiguous.
func applyShortlist(results []matching.MatchResult, config *ShortlistConfig) []matching.MatchResult {
	if config == nil {
		return results
	}

	kept := make([]matching.MatchResult, 0, len(results))
	for _, result := range results {
		if result.Percentage < config.MinimumPercentage {
			continue
		}
		kept = append(kept, result)
	}

	if config.Limit > 0 && len(kept) > config.Limit {
		kept = kept[:config.Limit]
	}
	return kept
}

func resultLabel(result matching.MatchResult) string {
	name, id := "", ""
	if result.Candidate != nil {
		name, id = result.Candidate.DisplayName(), result.Candidate.ID
	}
	return utils.Label(
		strconv.Itoa(result.Rank),
		name,
		id,
		fmt.Sprintf("score %d (%d%%)", result.Score, result.Percentage),
	)
}

func printShortlist(w io.Writer, results []matching.MatchResult) {
	for _, result := range results {
		fmt.Fprintln(w, resultLabel(result))
	}
}

func printDetails(w io.Writer, result matching.MatchResult) {
	fmt.Fprintln(w, resultLabel(result))
	if result.Details == nil {
		return
	}

	fmt.Fprintf(w, "  max possible score: %d\n", result.Details.MaxPossibleScore)
	for _, entry := range result.Details.Breakdown {
		fmt.Fprintf(w, "  %s: %d (past/current: %s; preferred: %s)\n",
			entry.Category,
			entry.Score,
			listOrDash(entry.PastCurrentMatches),
			listOrDash(entry.PreferredMatches),
		)
	}
}

func printVerdict(w io.Writer, verdict matching.MatchResult) {
	id := ""
	if verdict.Candidate != nil {
		id = verdict.Candidate.ID
	}

	if !verdict.IsEliminated {
		fmt.Fprintf(w, "%s: %s, score %d (%d%%)\n", id, verdict.Outcome, verdict.Score, verdict.Percentage)
		return
	}

	fmt.Fprintf(w, "%s: %s\n", id, verdict.Outcome)
	for _, reason := range verdict.EliminationReasons {
		fmt.Fprintf(w, "  - %s\n", utils.TruncateForLog(reason, maxReasonLength))
	}
}

func listOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func dumpToTmpFile(pattern string, v any) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
