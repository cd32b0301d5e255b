package tasks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/desertthunder/cioprune/internal/models"
	"github.com/desertthunder/cioprune/internal/services"
	"github.com/desertthunder/cioprune/internal/shared"
	"golang.org/x/time/rate"
)

// OutcomeRecorder persists outcomes as they are aggregated.
//
// Optional audit hook; it is called from the single aggregation goroutine, so
// implementations need no locking. Recording errors are swallowed to avoid
// disrupting a run (see repositories.AuditAdapter).
type OutcomeRecorder interface {
	RecordOutcome(runID string, outcome models.Outcome) error
}

// PurgeOpts contains configuration for a purge run.
type PurgeOpts struct {
	Workers       int           // Concurrent workers (default: 10, max: 25)
	JitterMin     time.Duration // Lower bound of the pre-request sleep (no sleep when zero)
	JitterMax     time.Duration // Upper bound of the pre-request sleep
	ProgressEvery int           // Emit a progress line every N completions (default: 500)
	RateLimit     float64       // Requests per second ceiling, 0 disables
	FlatDelay     time.Duration // Sequential pacing: pause after every BatchSize targets
	BatchSize     int           // Sequential pacing batch size (default: 10)
	RunID         string        // Identifier attached to audit rows
	Recorder      OutcomeRecorder
}

// withDefaults fills unset options and clamps the worker count.
// A flat delay implies the sequential variant, which runs exactly one worker.
func (o PurgeOpts) withDefaults() PurgeOpts {
	if o.Workers <= 0 {
		o.Workers = 10
	}
	if o.Workers > 25 {
		o.Workers = 25
	}
	if o.JitterMin < 0 {
		o.JitterMin = 0
	}
	if o.JitterMax < o.JitterMin {
		o.JitterMax = o.JitterMin
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = 500
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 10
	}
	if o.FlatDelay > 0 {
		o.Workers = 1
	}
	return o
}

// PurgeResult contains all data from a completed purge run.
type PurgeResult struct {
	Stats    RunStats         // Final counters
	Failures []models.Outcome // Every failed outcome, in completion order
	Elapsed  time.Duration    // Wall time of the run
}

// Engine defines bulk deletion operations.
type Engine interface {
	// Purge deletes every target through the configured deleter, bounding
	// in-flight requests to the worker count and reporting progress.
	Purge(ctx context.Context, progress chan<- ProgressUpdate, targets []models.Target, opts PurgeOpts) (*PurgeResult, error)
}

// PurgeEngine implements Engine on top of a [services.Deleter].
type PurgeEngine struct {
	deleter services.Deleter
}

// NewPurgeEngine creates a new PurgeEngine with the provided deleter.
func NewPurgeEngine(deleter services.Deleter) *PurgeEngine {
	return &PurgeEngine{deleter: deleter}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PurgeEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Purge deletes all targets and aggregates one outcome per target.
//
// Individual deletion failures are recorded, never retried, and never abort
// the run. The only error paths are a missing deleter and context
// cancellation; on cancellation the partial result is still returned.
func (e *PurgeEngine) Purge(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	targets []models.Target,
	opts PurgeOpts,
) (*PurgeResult, error) {
	if e.deleter == nil {
		return nil, fmt.Errorf("%w: deleter not initialized", shared.ErrServiceUnavailable)
	}

	opts = opts.withDefaults()
	total := len(targets)
	stats := NewRunStats(total, time.Now())
	result := &PurgeResult{}

	e.sendProgress(progress, startingUpdate(total, opts.Workers))

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	jobs := make(chan models.Target)
	outcomes := make(chan models.Outcome, opts.Workers)

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go e.worker(ctx, &wg, jobs, outcomes, limiter, opts)
	}

	go func() {
		defer close(jobs)
		for i, target := range targets {
			if opts.FlatDelay > 0 && i > 0 && i%opts.BatchSize == 0 {
				e.sendProgress(progress, pacingUpdate(i, total, opts.FlatDelay))
				if !sleepCtx(ctx, opts.FlatDelay) {
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case jobs <- target:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	// Single-consumer aggregation: this loop is the only writer to the
	// counters and the failure list.
	for outcome := range outcomes {
		stats.Record(outcome)
		if !outcome.Success {
			result.Failures = append(result.Failures, outcome)
		}

		if opts.Recorder != nil {
			// Audit failures must not disrupt the run
			_ = opts.Recorder.RecordOutcome(opts.RunID, outcome)
		}

		if stats.Processed%opts.ProgressEvery == 0 || stats.Processed == total {
			e.sendProgress(progress, progressUpdate(stats.Snapshot(time.Now())))
		}
	}

	result.Stats = *stats
	result.Elapsed = time.Since(stats.StartedAt)
	e.sendProgress(progress, completedUpdate(finalSnapshot(stats, result.Elapsed)))

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("purge interrupted: %w", err)
	}
	return result, nil
}

// worker processes targets from the jobs channel until it closes.
// Each unit of work is: rate-limiter wait, jitter sleep, one delete call.
func (e *PurgeEngine) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan models.Target,
	outcomes chan<- models.Outcome,
	limiter *rate.Limiter,
	opts PurgeOpts,
) {
	defer wg.Done()

	for target := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
		}

		if !sleepCtx(ctx, jitter(opts.JitterMin, opts.JitterMax)) {
			return
		}

		outcomes <- e.deleteOne(ctx, target)
	}
}

// deleteOne attempts a single deletion and captures the result as a value.
func (e *PurgeEngine) deleteOne(ctx context.Context, target models.Target) models.Outcome {
	if err := e.deleter.Delete(ctx, target.Identifier); err != nil {
		return models.Outcome{Target: target, Success: false, Error: err.Error()}
	}
	return models.Outcome{Target: target, Success: true}
}

// finalSnapshot builds the completion snapshot without advancing interval state.
func finalSnapshot(stats *RunStats, elapsed time.Duration) ProgressSnapshot {
	snap := ProgressSnapshot{
		Processed: stats.Processed,
		Total:     stats.Total,
		Succeeded: stats.Succeeded,
		Failed:    stats.Failed,
		Elapsed:   elapsed,
	}
	if stats.Total > 0 {
		snap.Percent = float64(stats.Processed) / float64(stats.Total) * 100
	}
	if elapsed > 0 {
		snap.AvgPerMin = float64(stats.Processed) / elapsed.Seconds() * 60
	}
	return snap
}

// jitter returns a random duration in [min, max].
func jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int64N(int64(max-min)))
}

// sleepCtx sleeps for d unless the context is cancelled first.
// Reports whether the full sleep completed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
