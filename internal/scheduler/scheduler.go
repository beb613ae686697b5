// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"newshub/internal/logger"
	"newshub/internal/metrics"
)

// Job is a unit of background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobFunc adapts a function into a Job.
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

func (j JobFunc) Name() string                  { return j.JobName }
func (j JobFunc) Run(ctx context.Context) error { return j.Fn(ctx) }

// Scheduler wraps a cron runner. Overlapping runs of the same job are skipped
// and panics are recovered.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	entries map[string]cron.EntryID
}

// New creates a Scheduler. Each run gets its own context bounded by timeout.
func New(timeout time.Duration) *Scheduler {
	cl := cronLogger{l: logger.Default()}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		entries: make(map[string]cron.EntryID),
	}
}

// Add registers job under spec, e.g. "@every 1m" or "*/5 * * * *".
func (s *Scheduler) Add(spec string, job Job) error {
	id, err := s.cron.AddJob(spec, s.wrap(job))
	if err != nil {
		return fmt.Errorf("schedule job %s: %w", job.Name(), err)
	}
	s.entries[job.Name()] = id
	return nil
}

// Next returns the next activation time of the named job.
func (s *Scheduler) Next(name string) (time.Time, bool) {
	id, ok := s.entries[name]
	if !ok {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Next, true
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started", slog.Int("jobs", len(s.entries)))
}

// Stop prevents new runs and waits for running jobs, or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Warn("Scheduler stop timed out, cancelling running jobs")
	}
	s.cancel()
}

// RunNow executes job once in the caller's goroutine with the same
// logging and metrics as a scheduled run.
func (s *Scheduler) RunNow(job Job) {
	s.wrap(job).Run()
}

func (s *Scheduler) wrap(job Job) cron.Job {
	name := job.Name()
	return cron.FuncJob(func() {
		ctx := s.ctx
		var cancel context.CancelFunc
		if s.timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}

		timer := metrics.NewTimer()
		err := job.Run(ctx)
		if err != nil {
			metrics.ObserveJob(name, metrics.ResultError, timer.Seconds())
			logger.Error("Scheduled job failed",
				slog.String("job", name),
				slog.String("error", err.Error()))
			return
		}
		metrics.ObserveJob(name, metrics.ResultSuccess, timer.Seconds())
		logger.Debug("Scheduled job completed",
			slog.String("job", name),
			slog.Float64("duration_seconds", timer.Seconds()))
	})
}

// cronLogger routes cron's internal logging through slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
