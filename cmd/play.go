package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/app"
	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play <file|url>",
	Short: "Take adaptive quizzes on a file or web page in the terminal",
	Long: "Load study material and open the interactive player. Quizzes default to\n" +
		"the difficulty recommended from your recent scores; missed questions are\n" +
		"kept for review.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		num, _ := cmd.Flags().GetInt("num")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		types, _ := cmd.Flags().GetStringSlice("types")
		useLLM, _ := cmd.Flags().GetBool("llm")
		reviewSize, _ := cmd.Flags().GetInt("review-size")
		noSplash, _ := cmd.Flags().GetBool("no-splash")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		source := quiz.SourceRule
		if useLLM {
			if !e.quiz.LLMEnabled() {
				return fmt.Errorf("--llm needs a configured provider: %w", llm.ErrDisabled)
			}
			source = quiz.SourceLLM
		}

		u, err := localUser(ctx, e.store)
		if err != nil {
			return err
		}

		in, err := readSource(ctx, e.cfg, args[0])
		if err != nil {
			return err
		}
		content, err := e.quiz.AddContent(ctx, u.ID, in)
		if err != nil {
			return fmt.Errorf("add content: %w", err)
		}

		return app.Run(app.Options{
			Service:      e.quiz,
			UserID:       u.ID,
			ContentTitle: content.Title,
			Request: quiz.Request{
				ContentID:    content.ID,
				NumQuestions: num,
				Difficulty:   difficulty,
				Types:        types,
				Source:       source,
			},
			ReviewSize: reviewSize,
			SkipSplash: noSplash,
		})
	},
}

func init() {
	f := playCmd.Flags()
	f.IntP("num", "n", 0, "Questions per quiz (default from config)")
	f.StringP("difficulty", "d", quiz.DifficultyAuto, "auto, mixed, easy, medium or hard")
	f.StringSliceP("types", "t", nil, "Question types: mcq, fill_blank, true_false, short_answer (default all)")
	f.Bool("llm", false, "Generate questions with the configured LLM provider")
	f.Int("review-size", 10, "Questions per mistake review")
	f.Bool("no-splash", false, "Skip the welcome animation")
}
