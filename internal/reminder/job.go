package reminder

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/metrics"
	"github.com/campuswellness/weekplan/internal/notifier"
)

// UserLister returns the usernames a cycle should scan.
type UserLister func() ([]string, error)

type JobOptions struct {
	Service *Service
	Sink    notifier.Sink
	Users   UserLister
	Metrics *metrics.Metrics
	// Now defaults to time.Now.
	Now func() time.Time
	// Location is the configured timezone. Each cycle reads the wall clock
	// in it so class times and suggestion dates line up with settings.
	Location *time.Location
	// Timeout bounds delivery of a single reminder.
	Timeout time.Duration
}

// Job scans users on a cron schedule and hands reminders to a sink.
type Job struct {
	opts JobOptions
	log  *log.Logger
}

func NewJob(opts JobOptions) *Job {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Job{opts: opts, log: logger.Component("reminder-job")}
}

// Run schedules the job with spec and blocks until ctx is cancelled. It
// waits for a running cycle to finish before returning.
func (j *Job) Run(ctx context.Context, spec string) error {
	cl := cronLogger{j.log}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := c.AddFunc(spec, func() { j.cycle(ctx) }); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	c.Start()
	j.log.Info("reminder job started", "schedule", spec)

	<-ctx.Done()
	<-c.Stop().Done()
	j.log.Info("reminder job stopped")
	return nil
}

// cycle never propagates failure; a failed cycle is logged and the next
// scheduled one runs as usual.
func (j *Job) cycle(ctx context.Context) {
	sent, err := j.RunOnce(ctx)
	j.opts.Metrics.Cycle(err == nil)
	if err != nil {
		j.log.Error("reminder cycle failed, skipping", "err", err, "sent", sent)
		return
	}
	j.log.Debug("reminder cycle complete", "sent", sent)
}

// RunOnce scans every user once and returns how many reminders were
// delivered. Per-user and per-delivery failures are collected; the scan
// continues past them.
func (j *Job) RunOnce(ctx context.Context) (int, error) {
	users, err := j.opts.Users()
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	now := j.opts.Now()
	if j.opts.Location != nil {
		now = now.In(j.opts.Location)
	}
	sent := 0
	var errs []error

	for _, username := range users {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}

		reminders, err := j.opts.Service.Check(username, now)
		if err != nil {
			if errors.IsNotFound(err) {
				j.log.Warn("skipping user without profile", "user", username)
				continue
			}
			errs = append(errs, fmt.Errorf("user %s: %w", username, err))
			continue
		}

		for _, r := range reminders {
			j.opts.Metrics.Reminder(string(r.Kind))
			dctx, cancel := context.WithTimeout(ctx, j.opts.Timeout)
			err := j.opts.Sink.Deliver(dctx, r)
			cancel()
			if err != nil {
				errs = append(errs, fmt.Errorf("deliver to %s: %w", username, err))
				continue
			}
			sent++
		}
	}

	return sent, stderrors.Join(errs...)
}

// cronLogger adapts the charmbracelet logger to cron.Logger.
type cronLogger struct {
	l *log.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, append(keysAndValues, "err", err)...)
}
