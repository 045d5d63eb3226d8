package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "adaptiq",
	Short: "Adaptive quiz generator",
	Long: "AdaptIQ turns study material into quizzes and adapts their difficulty " +
		"to how well you have been scoring.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file")
	pf.String("env-file", ".env", "Dotenv file loaded before reading ADAPTIQ_* variables")
	pf.String("db", "", "Database DSN or SQLite file path (overrides ADAPTIQ_DB)")
	pf.String("db-driver", "", "Database driver: sqlite or postgres")
	pf.String("llm-provider", "", "LLM provider: groq, anthropic, openai, gemini, openrouter, mock or none")
	pf.Bool("log-json", false, "Write logs as JSON")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// setupLogging installs the default slog handler on stderr.
func setupLogging(cmd *cobra.Command) error {
	jsonLogs, _ := cmd.Flags().GetBool("log-json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if jsonLogs {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

// loadConfig reads configuration with the command's flags applied last.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(config.LoadOptions{
		File:    file,
		EnvFile: envFile,
		Flags:   cmd.Flags(),
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
