// Package scheduler runs periodic read-only refreshes on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Job is one refresh. Errors are logged and the schedule keeps running.
type Job func(ctx context.Context) error

// Watch runs a Job on a cron schedule until its context ends. Runs never
// overlap: a tick that fires while the previous run is still going is
// skipped.
type Watch struct {
	spec   string
	job    Job
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	runs    int
}

// NewWatch validates spec ("@every 5m", "*/10 * * * *", ...) and returns a
// Watch for job.
func NewWatch(spec string, job Job, logger *slog.Logger) (*Watch, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watch{spec: spec, job: job, logger: logger}, nil
}

// Run executes the job once immediately, then on every tick until ctx is
// done. It returns the first run's error, if any, without scheduling.
func (w *Watch) Run(ctx context.Context) error {
	if err := w.tick(ctx); err != nil {
		return err
	}

	c := cron.New()
	if _, err := c.AddFunc(w.spec, func() {
		if err := w.tick(ctx); err != nil {
			w.logger.WarnContext(ctx, "scheduled refresh failed", "schedule", w.spec, "error", err)
		}
	}); err != nil {
		return fmt.Errorf("scheduling %q: %w", w.spec, err)
	}
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

// Runs reports how many times the job has run.
func (w *Watch) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}

func (w *Watch) tick(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		w.logger.DebugContext(ctx, "refresh skipped, previous run still going", "schedule", w.spec)
		return nil
	}
	w.running = true
	w.mu.Unlock()

	err := w.job(ctx)

	w.mu.Lock()
	w.running = false
	w.runs++
	w.mu.Unlock()
	return err
}
