package system

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/config"
	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/metrics"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/reminder"
	"github.com/campuswellness/weekplan/internal/server"
	"github.com/campuswellness/weekplan/internal/storage"
)

type ServeCmd struct {
	Listen      string `help:"Address for the HTTP API (overrides the config file)."`
	NoReminders bool   `help:"Serve the API without the reminder job."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.LoadConfig()
	if err != nil {
		return err
	}
	if c.Listen != "" {
		cfg.Listen = c.Listen
	}

	clock, err := ctx.Clock()
	if err != nil {
		return err
	}
	settings := applyGridOverride(clock.Settings, cfg.Grid)
	sched, err := ctx.SchedulerFor(settings)
	if err != nil {
		return err
	}

	m := metrics.New()
	srv := server.New(server.Options{
		Store:     ctx.Store,
		Scheduler: sched,
		Metrics:   m,
		Now:       ctx.Now,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		runErrs []error
	)
	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		runErrs = append(runErrs, err)
		mu.Unlock()
		// One failing component brings the other down.
		stop()
	}

	log := logger.Component("serve")

	if !c.NoReminders && settings.RemindersEnabled {
		sinks := cli.BuildSinks(cfg, m)
		defer func() {
			if err := sinks.Close(); err != nil {
				log.Warn("failed to close sinks", "err", err)
			}
		}()

		job := reminder.NewJob(reminder.JobOptions{
			Service:  reminder.NewService(ctx.Store, reminder.WindowFromSettings(settings)),
			Sink:     sinks,
			Users:    userLister(ctx.Store, cfg.Users),
			Metrics:  m,
			Now:      ctx.CurrentTime,
			Location: clock.Location,
			Timeout:  time.Duration(cfg.Sinks.TimeoutSec) * time.Second,
		})
		wg.Add(1)
		go func() {
			defer wg.Done()
			record(job.Run(runCtx, cfg.ReminderSchedule))
		}()
	} else {
		log.Info("reminders disabled")
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		record(srv.ListenAndServe(runCtx, cfg.Listen))
	}()

	fmt.Fprintf(ctx.Stdout(), "Serving weekplan API on %s\n", cfg.Listen)
	wg.Wait()
	return stderrors.Join(runErrs...)
}

// applyGridOverride lets the daemon config replace the stored grid bounds.
func applyGridOverride(settings models.Settings, grid *config.GridConfig) models.Settings {
	if grid == nil {
		return settings
	}
	if grid.DayStart != "" {
		settings.DayStart = grid.DayStart
	}
	if grid.DayEnd != "" {
		settings.DayEnd = grid.DayEnd
	}
	if grid.IntervalMin > 0 {
		settings.SlotIntervalMin = grid.IntervalMin
	}
	return settings
}

// userLister scans the configured users, or every profile when none are
// configured.
func userLister(store storage.Provider, configured []string) reminder.UserLister {
	return func() ([]string, error) {
		if len(configured) > 0 {
			return configured, nil
		}
		profiles, err := store.GetAllProfiles()
		if err != nil {
			return nil, err
		}
		users := make([]string, 0, len(profiles))
		for _, p := range profiles {
			users = append(users, p.Username)
		}
		return users, nil
	}
}
