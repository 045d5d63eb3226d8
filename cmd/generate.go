package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/ingest"
	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/llmgen"
	"github.com/abhisek/adaptiq/internal/nlp"
	"github.com/abhisek/adaptiq/internal/questiongen"
)

type generateOutput struct {
	Source     string                 `json:"source"`
	Generator  string                 `json:"generator"`
	Difficulty string                 `json:"difficulty"`
	Questions  []questiongen.Question `json:"questions"`
}

var generateCmd = &cobra.Command{
	Use:   "generate <file|url>",
	Short: "Generate questions from a file or web page and print them as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		typeNames, _ := cmd.Flags().GetStringSlice("types")
		level, _ := cmd.Flags().GetString("difficulty")
		max, _ := cmd.Flags().GetInt("max")
		seed, _ := cmd.Flags().GetUint64("seed")
		useLLM, _ := cmd.Flags().GetBool("llm")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		types := make([]questiongen.Type, 0, len(typeNames))
		for _, name := range typeNames {
			t, ok := questiongen.ParseType(name)
			if !ok {
				return fmt.Errorf("unknown question type %q", name)
			}
			types = append(types, t)
		}

		var difficulty questiongen.Difficulty
		if level != "" && level != "mixed" {
			difficulty = questiongen.Difficulty(level)
			if !difficulty.Valid() {
				return fmt.Errorf("difficulty must be easy, medium, hard or mixed, got %q", level)
			}
		}
		if max <= 0 {
			max = cfg.Generator.DefaultMaxQuestions
		}

		in, err := readSource(ctx, cfg, args[0])
		if err != nil {
			return err
		}
		text := ingest.Clean(in.Text)

		out := generateOutput{Source: args[0], Generator: "rule", Difficulty: string(difficulty)}
		if out.Difficulty == "" {
			out.Difficulty = "mixed"
		}

		start := time.Now()
		if useLLM {
			e, err := buildEnv(ctx, cfg)
			if err != nil {
				return err
			}
			defer e.Close()
			if e.provider == nil {
				return fmt.Errorf("--llm needs a configured provider: %w", llm.ErrDisabled)
			}
			out.Generator = "llm:" + e.provider.ModelID()
			gen := llmgen.New(e.provider, llmgen.DefaultConfig())
			out.Questions, err = gen.Generate(ctx, llmgen.Input{
				Text:       text,
				Count:      max,
				Difficulty: difficulty,
				Types:      types,
			})
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
		} else {
			opts := []questiongen.Option{questiongen.WithConfig(cfg.Generator)}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, questiongen.WithSeed(seed))
			}
			gen := questiongen.New(nlp.NewProseAnalyzer(), opts...)
			out.Questions, err = gen.GenerateContext(ctx, text, questiongen.Options{
				Types:        types,
				Difficulty:   difficulty,
				MaxQuestions: max,
			})
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
		}
		slog.Debug("generated questions", "count", len(out.Questions), "elapsed", time.Since(start))

		if len(out.Questions) == 0 {
			fmt.Fprintln(os.Stderr, questiongen.ErrNoQuestions)
			out.Questions = []questiongen.Question{}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringSliceP("types", "t", nil, "Question types: mcq, fill_blank, true_false, short_answer (default all)")
	f.StringP("difficulty", "d", "mixed", "easy, medium, hard or mixed")
	f.IntP("max", "n", 0, "Maximum number of questions (default from config)")
	f.Uint64("seed", 0, "Seed for reproducible rule-based output")
	f.Bool("llm", false, "Generate with the configured LLM provider")
}
