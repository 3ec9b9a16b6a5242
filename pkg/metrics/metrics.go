package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	LedgerEntriesTotal     *prometheus.CounterVec
	ContractViolations     *prometheus.CounterVec
	ReconcileDiscrepancies prometheus.Counter
	JobRuns                *prometheus.CounterVec
	FundLocksReleased      prometheus.Counter
}

// New creates and registers all collectors on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers collectors on a caller-supplied registerer, so tests
// can use an isolated registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LedgerEntriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_engine_ledger_entries_total",
			Help: "Ledger entries committed, by entry type",
		}, []string{"entry_type"}),
		ContractViolations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_engine_contract_violations_total",
			Help: "Contract guard violations, by kind",
		}, []string{"kind"}),
		ReconcileDiscrepancies: factory.NewCounter(prometheus.CounterOpts{
			Name: "wallet_engine_reconcile_discrepancies_total",
			Help: "Balance discrepancies detected by reconciliation runs",
		}),
		JobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_engine_job_runs_total",
			Help: "Scheduled job executions, by job and outcome",
		}, []string{"job", "outcome"}),
		FundLocksReleased: factory.NewCounter(prometheus.CounterOpts{
			Name: "wallet_engine_fund_locks_released_total",
			Help: "Fund locks released by the expiry sweep",
		}),
	}
}
