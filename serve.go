package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/truthguard/internal/ai"
	"github.com/msomdec/truthguard/internal/handler"
	"github.com/msomdec/truthguard/internal/newsfeed"
	"github.com/msomdec/truthguard/internal/service"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply migrations and serve the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.AI.APIKey == "" {
		slog.Warn("OPENAI_API_KEY not set; verifications will be stored as degraded")
	}
	if cfg.News.APIKey == "" {
		slog.Warn("NEWS_API_KEY not set; /api/news will fail")
	}

	aiClient := ai.New(cfg.AI)
	authService := service.NewAuthService(db.Users(),
		service.NewPasswordHasher(cfg.Auth.BcryptCost),
		service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))
	verificationService := service.NewVerificationService(db.Verifications(), aiClient)

	router := handler.NewRouter(handler.Deps{
		Auth:          authService,
		Verifications: verificationService,
		News:          newsfeed.New(cfg.News),
		Chat:          aiClient,
		DB:            db,
		CORSOrigins:   cfg.CORSOrigins,
		Logger:        slog.Default(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
