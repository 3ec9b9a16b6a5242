package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"wallet-ledger-engine/config"
	pgStorage "wallet-ledger-engine/internal/adapter/storage/postgres"
	redisStorage "wallet-ledger-engine/internal/adapter/storage/redis"
	"wallet-ledger-engine/internal/service"
	"wallet-ledger-engine/pkg/logger"
	"wallet-ledger-engine/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// jobs runs a single scheduled job once and exits. Intended for manual
// operator runs and external cron setups; the job still takes the shared
// Redis lease, so it cannot overlap the in-process scheduler.
//
// Usage: jobs [-alert] [-timeout 10m] <balance_reconcile|wallet_reconcile|lock_expiry_sweep>
//
// Exit codes: 0 clean, 1 failure, 2 discrepancies found.
func main() {
	os.Exit(run())
}

func run() int {
	alert := flag.Bool("alert", false, "notify the operator channel on discrepancies")
	timeout := flag.Duration("timeout", 10*time.Minute, "hard run deadline")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: jobs [-alert] [-timeout 10m] <balance_reconcile|wallet_reconcile|lock_expiry_sweep>")
		return 1
	}
	jobName := flag.Arg(0)

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to PostgreSQL")
		return 1
	}
	defer pool.Close()

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to Redis")
		return 1
	}
	defer rdb.Close()

	walletRepo := pgStorage.NewWalletRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	lockRepo := pgStorage.NewFundLockRepo(pool)
	reconRepo := pgStorage.NewReconciliationRepo(pool)
	transactor := pgStorage.NewTransactor(pool)
	leaseStore := redisStorage.NewLeaseStore(rdb)

	// Isolated registry; a one-shot process has no scrape endpoint.
	m := metrics.NewWith(prometheus.NewRegistry())
	notifier := service.NewLogNotifier(log)

	lockSvc := service.NewFundLockService(walletRepo, lockRepo, transactor, m, log)
	reconSvc := service.NewReconciliationService(walletRepo, ledgerRepo, reconRepo, notifier, m, cfg.Reconcile.BatchSize, log)

	token, acquired, err := leaseStore.Acquire(ctx, jobName, cfg.Scheduler.LeaseTTL)
	if err != nil {
		log.Error().Err(err).Str("job", jobName).Msg("lease acquisition failed")
		return 1
	}
	if !acquired {
		log.Error().Str("job", jobName).Msg("lease held by another node, refusing to run")
		return 1
	}
	defer func() {
		if err := leaseStore.Release(context.Background(), jobName, token); err != nil {
			log.Warn().Err(err).Str("job", jobName).Msg("lease release failed")
		}
	}()

	switch jobName {
	case "balance_reconcile":
		summary, err := reconSvc.ReconcileBalances(ctx, *alert)
		if err != nil {
			log.Error().Err(err).Msg("balance reconcile failed")
			return 1
		}
		if summary.Discrepancies > 0 {
			return 2
		}
	case "wallet_reconcile":
		summary, err := reconSvc.WalletReconcile(ctx)
		if err != nil {
			log.Error().Err(err).Msg("wallet reconcile failed")
			return 1
		}
		if summary.Discrepancies > 0 {
			return 2
		}
	case "lock_expiry_sweep":
		released, err := lockSvc.ReleaseExpired(ctx)
		if err != nil {
			log.Error().Err(err).Msg("lock expiry sweep failed")
			return 1
		}
		log.Info().Int("released", released).Msg("expiry sweep finished")
	default:
		log.Error().Str("job", jobName).Msg("unknown job")
		return 1
	}

	return 0
}
