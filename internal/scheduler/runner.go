package scheduler

import (
	"context"
	"sync"
	"time"

	"wallet-ledger-engine/internal/core/ports"
	"wallet-ledger-engine/pkg/metrics"

	"github.com/rs/zerolog"
)

// Job is one periodic task. Offset delays the first run so jobs sharing a
// period do not all fire together at startup.
type Job struct {
	Name   string
	Every  time.Duration
	Offset time.Duration
	Run    func(ctx context.Context) error
}

// Runner executes registered jobs on their intervals. Two guards keep runs
// serialized: an in-process flag stops a tick from overlapping a still
// running previous tick, and the shared lease store stops two nodes from
// running the same job at once.
type Runner struct {
	leases   ports.LeaseStore
	leaseTTL time.Duration
	metrics  *metrics.Metrics
	log      zerolog.Logger

	jobs    []Job
	running sync.Map
	wg      sync.WaitGroup
}

// NewRunner creates a job runner.
func NewRunner(leases ports.LeaseStore, leaseTTL time.Duration, m *metrics.Metrics, log zerolog.Logger) *Runner {
	return &Runner{
		leases:   leases,
		leaseTTL: leaseTTL,
		metrics:  m,
		log:      log,
	}
}

// Register adds a job. Must be called before Start.
func (r *Runner) Register(job Job) {
	r.jobs = append(r.jobs, job)
}

// Start launches one ticker goroutine per registered job and returns.
// Cancel ctx to stop; Wait blocks until in-flight runs finish.
func (r *Runner) Start(ctx context.Context) {
	for i := range r.jobs {
		job := r.jobs[i]
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.loop(ctx, job)
		}()
		r.log.Info().
			Str("job", job.Name).
			Dur("every", job.Every).
			Msg("scheduled job registered")
	}
}

// Wait blocks until all job goroutines have exited.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, job Job) {
	if job.Offset > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(job.Offset):
		}
	}

	ticker := time.NewTicker(job.Every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx, job)
		}
	}
}

// runOnce executes one guarded run of the job.
func (r *Runner) runOnce(ctx context.Context, job Job) {
	if _, busy := r.running.LoadOrStore(job.Name, true); busy {
		r.metrics.JobRuns.WithLabelValues(job.Name, "overlap_skipped").Inc()
		r.log.Warn().Str("job", job.Name).Msg("previous run still in progress, skipping tick")
		return
	}
	defer r.running.Delete(job.Name)

	token, acquired, err := r.leases.Acquire(ctx, job.Name, r.leaseTTL)
	if err != nil {
		r.metrics.JobRuns.WithLabelValues(job.Name, "lease_error").Inc()
		r.log.Error().Err(err).Str("job", job.Name).Msg("lease acquisition failed")
		return
	}
	if !acquired {
		r.metrics.JobRuns.WithLabelValues(job.Name, "lease_held").Inc()
		r.log.Debug().Str("job", job.Name).Msg("lease held elsewhere, skipping run")
		return
	}
	defer func() {
		if err := r.leases.Release(ctx, job.Name, token); err != nil {
			r.log.Warn().Err(err).Str("job", job.Name).Msg("lease release failed")
		}
	}()

	started := time.Now()
	if err := job.Run(ctx); err != nil {
		r.metrics.JobRuns.WithLabelValues(job.Name, "error").Inc()
		r.log.Error().Err(err).
			Str("job", job.Name).
			Dur("took", time.Since(started)).
			Msg("job run failed")
		return
	}

	r.metrics.JobRuns.WithLabelValues(job.Name, "success").Inc()
	r.log.Info().
		Str("job", job.Name).
		Dur("took", time.Since(started)).
		Msg("job run finished")
}
