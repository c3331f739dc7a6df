package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dukerupert/centavo/internal/config"
	"github.com/dukerupert/centavo/internal/database"
	"github.com/dukerupert/centavo/internal/logging"
	"github.com/dukerupert/centavo/internal/push"
	"github.com/dukerupert/centavo/internal/server"
)

func main() {
	genKeys := flag.Bool("genkeys", false, "generate a VAPID key pair and exit")
	flag.Parse()

	if *genKeys {
		pub, priv, err := push.GenerateVAPIDKeys()
		if err != nil {
			fmt.Fprintf(os.Stderr, "generate VAPID keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("CENTAVO_VAPID_PUBLIC_KEY=%s\n", pub)
		fmt.Printf("CENTAVO_VAPID_PRIVATE_KEY=%s\n", priv)
		return
	}

	// Missing .env is fine; the environment may be set directly.
	godotenv.Load()

	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(db, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if sched := srv.Scheduler(); sched != nil {
		sched.Start(ctx)
		defer sched.Stop()
	}

	// Hourly housekeeping for expired sessions and rate-limit entries.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n, err := srv.SessionStore().DeleteExpired(); err != nil {
					logger.Error("session cleanup", "error", err)
				} else if n > 0 {
					logger.Debug("session cleanup", "deleted", n)
				}
				srv.RateLimiter().Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("centavo listening", "port", cfg.Port, "push", cfg.PushConfigured())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
