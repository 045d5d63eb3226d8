package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics for the local player",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		u, err := localUser(ctx, e.store)
		if err != nil {
			return err
		}

		rec, err := e.quiz.Recommend(ctx, u.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Player:       %s\n", u.Name)
		fmt.Fprintf(out, "Streak:       %d day(s)\n", u.Streak)
		fmt.Fprintf(out, "Quizzes:      %d\n", rec.TotalQuizzes)
		fmt.Fprintf(out, "Recent avg:   %.1f%%\n", rec.RecentAverage)
		fmt.Fprintf(out, "Next level:   %s (%s)\n", rec.Difficulty, rec.Trend)

		mastery, err := e.store.Mastery().List(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("list mastery: %w", err)
		}
		if len(mastery) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Topic Mastery")
			fmt.Fprintln(out, strings.Repeat("─", 60))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, m := range mastery {
				fmt.Fprintf(tw, "%s\t%d/%d\t%.0f%%\n", truncate(m.Topic, 36), m.CorrectCount, m.TotalCount, m.Percent())
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}

		history, err := e.quiz.History(ctx, u.ID)
		if err != nil {
			return err
		}
		if len(history) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Recent Quizzes")
			fmt.Fprintln(out, strings.Repeat("─", 60))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for i, a := range history {
				if i == 10 {
					break
				}
				score := "open"
				if a.CompletedAt != nil {
					score = fmt.Sprintf("%d/%d  %.0f%%", a.CorrectCount, a.TotalQuestions, a.ScorePercent)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					a.StartedAt.Local().Format("2006-01-02 15:04"), a.Kind, a.Difficulty, score)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
		return nil
	},
}
