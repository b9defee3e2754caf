package boardroom

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/strtupify/simkit/pkg/logging"
	"github.com/strtupify/simkit/pkg/oracle"
)

// MeetingJob describes one independent meeting to run.
type MeetingJob struct {
	ID             string
	Participants   []Participant
	Directive      string
	CompanyContext string
	MaxTurns       int
}

// MeetingResult is the terminal state of one job.
type MeetingResult struct {
	JobID string
	State *MeetingState
	Err   error
}

// RunnerConfig configures the concurrent meeting runner.
type RunnerConfig struct {
	// MaxConcurrent bounds how many meetings run at once.
	MaxConcurrent int
	// Seed derives each job's random source, keeping runs reproducible.
	Seed int64
}

// DefaultRunnerConfig returns a config suitable for interactive use.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{MaxConcurrent: 4, Seed: 1}
}

// Runner executes independent meetings concurrently. Each job gets its own
// orchestrator and random source; no state is shared between meetings, so
// the only coordination is the concurrency limit.
type Runner struct {
	oracle  oracle.Oracle
	log     logging.Logger
	config  RunnerConfig
	metrics *Metrics

	completed atomic.Int64
	failed    atomic.Int64
}

// NewRunner creates a runner over the shared oracle.
func NewRunner(o oracle.Oracle, log logging.Logger, config RunnerConfig, metrics *Metrics) *Runner {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 1
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Runner{oracle: o, log: log, config: config, metrics: metrics}
}

// RunAll runs every job to completion and returns results in job order.
func (r *Runner) RunAll(ctx context.Context, jobs []MeetingJob) []MeetingResult {
	results := make([]MeetingResult, len(jobs))
	sem := make(chan struct{}, r.config.MaxConcurrent)
	var wg sync.WaitGroup

	for i, job := range jobs {
		if job.ID == "" {
			job.ID = uuid.New().String()
		}
		wg.Add(1)
		go func(idx int, job MeetingJob) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rng := rand.New(rand.NewSource(r.config.Seed + int64(idx)))
			orch := NewOrchestrator(r.oracle, rng, r.log, WithMetrics(r.metrics))
			state, err := orch.Run(ctx, job.Participants, job.Directive, job.CompanyContext, job.MaxTurns)
			if err != nil {
				r.failed.Add(1)
			} else {
				r.completed.Add(1)
			}
			results[idx] = MeetingResult{JobID: job.ID, State: state, Err: err}
		}(i, job)
	}

	wg.Wait()
	return results
}

// Completed returns how many meetings finished successfully.
func (r *Runner) Completed() int64 { return r.completed.Load() }

// Failed returns how many meetings aborted with a fatal error.
func (r *Runner) Failed() int64 { return r.failed.Load() }
