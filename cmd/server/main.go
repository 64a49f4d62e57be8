package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"skillswapserver/internal/auth"
	"skillswapserver/internal/config"
	"skillswapserver/internal/httpapi"
	"skillswapserver/internal/service"
	"skillswapserver/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg)

	secret := cfg.JWTSecret
	if secret == "" {
		// Only reachable outside prod; config.Load enforces the secret there.
		logger.Warn("APP_JWT_SECRET not set, using an insecure dev secret")
		secret = "insecure-dev-secret-do-not-use-in-prod"
	}
	tokens := auth.NewTokenCodec([]byte(secret), cfg.TokenTTL)

	var (
		authSvc     *service.AuthService
		profileSvc  *service.ProfileService
		usersSvc    *service.UsersService
		swapSvc     *service.SwapService
		chatSvc     *service.ChatService
		feedbackSvc *service.FeedbackService
		dbPing      func(context.Context) error
	)

	if cfg.DBDSN != "" {
		pgPool, err := postgres.Open(context.Background(), cfg.DBDSN)
		if err != nil {
			logger.Error("db open failed", "err", err)
			os.Exit(1)
		}
		defer pgPool.Close()

		users := postgres.NewUsersStore(pgPool)
		userSearch := postgres.NewUserSearchStore(pgPool)
		swapRequests := postgres.NewSwapRequestsStore(pgPool)
		chats := postgres.NewChatsStore(pgPool)
		feedback := postgres.NewFeedbackStore(pgPool)

		authSvc = &service.AuthService{Users: users, Tokens: tokens}
		profileSvc = &service.ProfileService{Store: users}
		usersSvc = &service.UsersService{
			Users:    users,
			Search:   userSearch,
			Feedback: feedback,
		}
		swapSvc = &service.SwapService{
			Requests: swapRequests,
			Users:    users,
			Now:      time.Now,
		}
		chatSvc = &service.ChatService{
			Chats:    chats,
			Requests: swapRequests,
			Users:    users,
			Now:      time.Now,
		}
		feedbackSvc = &service.FeedbackService{Store: feedback}
		dbPing = pgPool.Ping
	}

	router := httpapi.NewRouter(httpapi.RouterOpts{
		Logger:   logger,
		IsProd:   cfg.IsProd(),
		DBPing:   dbPing,
		Auth:     authSvc,
		Profile:  profileSvc,
		Users:    usersSvc,
		Swaps:    swapSvc,
		Chats:    chatSvc,
		Feedback: feedbackSvc,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "env", cfg.Env, "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
