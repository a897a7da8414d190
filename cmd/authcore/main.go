package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"authcore/internal/audit"
	"authcore/internal/auth"
	"authcore/internal/config"
	"authcore/internal/db"
	"authcore/internal/httpserver"
	"authcore/internal/lockout"
	"authcore/internal/logging"
	"authcore/internal/metrics"
)

func main() {
	ctx := context.Background()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	metrics.Register()

	dbConn, err := db.Open(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer dbConn.Close()

	if err := db.RunMigrations(ctx, dbConn, "sql"); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	userStore := auth.NewStore(dbConn)
	if err := auth.SeedFromFile(ctx, userStore, cfg.UsersPath); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	sessionStore := auth.NewSessionStore(dbConn)
	auditStore := audit.NewStore(dbConn)
	lockoutStore := lockout.NewStore(dbConn)

	policy, err := lockout.LoadPolicy(cfg.LockoutPath)
	if err != nil {
		logger.Warn("lockout policy not loaded, using defaults", "err", err)
		policy = lockout.DefaultPolicy()
	}
	guard := lockout.NewGuard(policy, lockoutStore, auditStore, logger)

	recorder := auth.NewRecorder(512)
	authSvc := auth.NewService(userStore, sessionStore, cfg.JWTSecret,
		auth.WithGuard(guard),
		auth.WithRecorder(recorder),
		auth.WithSessionTTL(cfg.SessionTTL),
		auth.WithAccessTokenTTL(cfg.AccessTokenTTL),
	)

	loginLimit := httpserver.NewLoginLimiter(cfg.LoginRatePerSec, cfg.LoginBurst)
	handler := httpserver.NewRouter(logger, authSvc, recorder, auditStore, lockoutStore, loginLimit)
	server := httpserver.New(cfg, handler, logger)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("http server: %v", err)
		}
	}()

	// Periodic removal of expired sessions.
	sweepCtx, cancelSweep := context.WithCancel(ctx)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				n, err := authSvc.SweepExpiredSessions(sweepCtx)
				if err != nil {
					logger.Error("sweep sessions", "err", err)
				} else if n > 0 {
					logger.Debug("swept expired sessions", "count", n)
				}
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	cancelSweep()

	if err := server.Shutdown(); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
