package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-ledger-engine/config"
	httpHandler "wallet-ledger-engine/internal/adapter/http/handler"
	pgStorage "wallet-ledger-engine/internal/adapter/storage/postgres"
	redisStorage "wallet-ledger-engine/internal/adapter/storage/redis"
	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/internal/scheduler"
	"wallet-ledger-engine/internal/service"
	"wallet-ledger-engine/pkg/logger"
	"wallet-ledger-engine/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Wallet Ledger Engine")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	lockRepo := pgStorage.NewFundLockRepo(pool)
	subRepo := pgStorage.NewSubscriptionRepo(pool)
	userRepo := pgStorage.NewUserRepo(pool)
	auditRepo := pgStorage.NewAuditRepository(pool)
	reconRepo := pgStorage.NewReconciliationRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	eventCache := redisStorage.NewPaymentEventCache(rdb)
	leaseStore := redisStorage.NewLeaseStore(rdb)

	// Metrics
	m := metrics.New()

	// Initialize services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	auditTrail := service.NewAuditTrail(auditRepo, log)
	notifier := service.NewLogNotifier(logger.ForComponent(log, "notifier"))

	ledgerSvc := service.NewLedgerService(walletRepo, ledgerRepo, transactor, m, logger.ForComponent(log, "ledger"))
	lockSvc := service.NewFundLockService(walletRepo, lockRepo, transactor, m, logger.ForComponent(log, "fundlock"))
	complianceSvc := service.NewComplianceService(userRepo, walletRepo, subRepo, logger.ForComponent(log, "compliance"))
	guard := service.NewContractGuard(subRepo, walletRepo, ledgerRepo, ledgerSvc, eventCache, auditTrail, transactor, m, logger.ForComponent(log, "contract_guard"))
	withdrawalSvc := service.NewWithdrawalService(complianceSvc, lockSvc, ledgerSvc, walletRepo, ledgerRepo, lockRepo, transactor, logger.ForComponent(log, "withdrawal"))
	reconSvc := service.NewReconciliationService(walletRepo, ledgerRepo, reconRepo, notifier, m, cfg.Reconcile.BatchSize, logger.ForComponent(log, "reconcile"))

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Background jobs: every job runs under a Redis lease plus an
	// in-process no-overlap guard.
	schedCtx, stopSched := context.WithCancel(ctx)
	var runner *scheduler.Runner
	if cfg.Scheduler.Enabled {
		runner = scheduler.NewRunner(leaseStore, cfg.Scheduler.LeaseTTL, m, logger.ForComponent(log, "scheduler"))
		runner.Register(scheduler.Job{
			Name:  "balance_reconcile",
			Every: cfg.Scheduler.BalanceReconcileEvery,
			Run: func(ctx context.Context) error {
				_, err := reconSvc.ReconcileBalances(ctx, cfg.Reconcile.Alert)
				return err
			},
		})
		runner.Register(scheduler.Job{
			Name:   "wallet_reconcile",
			Every:  cfg.Scheduler.WalletReconcileEvery,
			Offset: cfg.Scheduler.WalletReconcileOffset,
			Run: func(ctx context.Context) error {
				_, err := reconSvc.WalletReconcile(ctx)
				return err
			},
		})
		runner.Register(scheduler.Job{
			Name:  "lock_expiry_sweep",
			Every: cfg.Scheduler.LockExpirySweepEvery,
			Run: func(ctx context.Context) error {
				_, err := lockSvc.ReleaseExpired(ctx)
				return err
			},
		})
		runner.Start(schedCtx)
		log.Info().Msg("Scheduler started")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		LockSvc:        lockSvc,
		ComplianceSvc:  complianceSvc,
		WithdrawalSvc:  withdrawalSvc,
		Guard:          guard,
		TokenSvc:       tokenSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Limits:         cfg.Limits,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	stopSched()
	if runner != nil {
		runner.Wait()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
