package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/auth"
	"github.com/abhisek/adaptiq/internal/config"
	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/llmgen"
	"github.com/abhisek/adaptiq/internal/nlp"
	"github.com/abhisek/adaptiq/internal/questiongen"
	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/store"
	"github.com/abhisek/adaptiq/internal/study"
)

// env bundles the services a command needs.
type env struct {
	cfg      *config.Config
	store    *store.Store
	quiz     *quiz.Service
	auth     *auth.Service
	provider llm.Provider
}

// Close releases the database handle.
func (e *env) Close() error {
	return e.store.Close()
}

// openEnv loads configuration, opens the store and wires the quiz service.
// The LLM provider is optional; without it only rule-based generation and
// fallback study aids are available.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return buildEnv(cmd.Context(), cfg)
}

func buildEnv(ctx context.Context, cfg *config.Config) (*env, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:   cfg,
		store: st,
		auth:  auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo())
	switch {
	case err == nil:
		e.provider = provider
		slog.Debug("llm provider ready", "provider", cfg.LLM.Provider, "model", provider.ModelID())
	case errors.Is(err, llm.ErrDisabled):
		slog.Debug("llm provider disabled")
	default:
		slog.Warn("LLM provider not configured, AI features will be unavailable", "err", err)
	}

	rules := questiongen.New(nlp.NewProseAnalyzer(), questiongen.WithConfig(cfg.Generator))
	opts := []quiz.Option{quiz.WithConfig(cfg.Quiz)}
	if e.provider != nil {
		opts = append(opts,
			quiz.WithLLMGenerator(llmgen.New(e.provider, llmgen.DefaultConfig())),
			quiz.WithStudy(study.NewService(e.provider, study.DefaultConfig())),
		)
	}
	e.quiz = quiz.NewService(quiz.ReposFrom(st), rules, opts...)
	return e, nil
}

func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if cfg.Database.Driver == store.DriverSQLite || cfg.Database.Driver == "" {
		if err := store.EnsureDir(cfg.Database.DSN); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openStoreOnly loads configuration and opens the database without
// building any services.
func openStoreOnly(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openStore(cmd.Context(), cfg)
}
