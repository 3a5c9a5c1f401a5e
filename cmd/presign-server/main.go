package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/tendant/simple-presign/pkg/api"
	"github.com/tendant/simple-presign/pkg/config"
	"github.com/tendant/simple-presign/pkg/credentials"
	"github.com/tendant/simple-presign/pkg/presign"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := credentials.Provider(ctx, cfg.Region, cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)
	if err != nil {
		logger.Error("Failed to set up credentials", "err", err)
		os.Exit(1)
	}

	signerOpts := append(cfg.SignerOptions(), presign.WithLogger(logger))
	handler := api.NewHandler(
		presign.New(signerOpts...),
		presign.NewVerifier(credentials.NewStore(provider), signerOpts...),
		provider,
		api.Defaults{
			Region:        cfg.Region,
			Bucket:        cfg.Bucket,
			Method:        cfg.Method,
			ExpirySeconds: cfg.ExpirySeconds,
		},
		logger,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Mount("/api/v1", handler.Routes())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", "err", err)
		}
	}()

	logger.Info("Starting presign server", "port", cfg.Port, "region", cfg.Region, "host", cfg.Host)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", "err", err)
		os.Exit(1)
	}
}
