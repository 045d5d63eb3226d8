package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/adaptive"
	"github.com/abhisek/adaptiq/internal/questiongen"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend the next quiz difficulty",
	Long: "Recommend the next quiz difficulty from past scores. With --scores the\n" +
		"scores are given as score:difficulty pairs, most recent first. Without it\n" +
		"the local player's quiz history is used.",
	Example: "  adaptiq recommend --scores 92:medium,85:medium,78:easy",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("scores")
		fallback, _ := cmd.Flags().GetString("fallback")

		if raw != "" {
			recent, err := parseScores(raw)
			if err != nil {
				return err
			}
			if len(recent) > adaptive.Window {
				recent = recent[:adaptive.Window]
			}
			rec := adaptive.Analyze(recent, questiongen.Difficulty(fallback))
			fmt.Fprintf(cmd.OutOrStdout(), "Recommended: %s\nAverage:     %.1f%%\nTrend:       %s\nAttempts:    %d\n",
				rec.Difficulty, adaptive.Round1(rec.Average), rec.Trend, rec.Attempts)
			return nil
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		u, err := localUser(cmd.Context(), e.store)
		if err != nil {
			return err
		}
		rec, err := e.quiz.Recommend(cmd.Context(), u.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recommended: %s\nAverage:     %.1f%%\nTrend:       %s\nQuizzes:     %d\n",
			rec.Difficulty, rec.RecentAverage, rec.Trend, rec.TotalQuizzes)
		return nil
	},
}

// parseScores reads "85:easy,60" style lists. A missing difficulty is left
// unset so the recommender uses its fallback.
func parseScores(raw string) ([]adaptive.Attempt, error) {
	var out []adaptive.Attempt
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		scoreStr, level, _ := strings.Cut(part, ":")
		score, err := strconv.ParseFloat(strings.TrimSpace(scoreStr), 64)
		if err != nil || score < 0 || score > 100 {
			return nil, fmt.Errorf("invalid score %q: want a number between 0 and 100", scoreStr)
		}
		d := questiongen.Difficulty(strings.ToLower(strings.TrimSpace(level)))
		if d != "" && !d.Valid() {
			return nil, fmt.Errorf("invalid difficulty %q in %q", level, part)
		}
		out = append(out, adaptive.Attempt{ScorePercent: score, Difficulty: d})
	}
	return out, nil
}

func init() {
	recommendCmd.Flags().String("scores", "", "Comma-separated score:difficulty pairs, most recent first")
	recommendCmd.Flags().String("fallback", string(questiongen.Medium), "Difficulty used when none is known")
}
