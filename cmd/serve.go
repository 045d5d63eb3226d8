package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/adaptiq/internal/api"
	"github.com/abhisek/adaptiq/internal/ingest"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		cfg := e.cfg
		if cfg.Insecure() {
			slog.Warn("tokens are signed with the built-in development secret; set ADAPTIQ_JWT_SECRET")
		}

		srv := api.New(api.Deps{
			Store:   e.store,
			Quiz:    e.quiz,
			Auth:    e.auth,
			Fetcher: cfg.Fetcher(),
			OCR:     cfg.OCR(),
			Git:     ingest.ImportGit,
		}, api.Options{
			CORSOrigins:    cfg.Server.CORSOrigins,
			RequestTimeout: cfg.Server.RequestTimeout,
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
			BcryptCost:     cfg.Auth.BcryptCost,
			Version:        version,
		})

		httpSrv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			slog.Info("listening", "addr", cfg.Server.Addr,
				"db", cfg.Database.Driver, "llm", e.quiz.LLMEnabled())
			errCh <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", ":8000", "Listen address")
	f.StringSlice("cors-origin", nil, "Allowed CORS origin (repeatable)")
	f.String("jwt-secret", "", "HMAC secret for access tokens")
	f.String("ocr-lang", "", "Tesseract language for image uploads")
}
