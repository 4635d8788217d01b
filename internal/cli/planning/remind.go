package planning

import (
	"context"
	"fmt"
	"time"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/metrics"
	"github.com/campuswellness/weekplan/internal/notifier"
	"github.com/campuswellness/weekplan/internal/reminder"
	"github.com/campuswellness/weekplan/internal/utils"
)

type RemindCmd struct {
	At     string `help:"Check as of this instant (RFC 3339 or YYYY-MM-DDTHH:MM:SS); defaults to now."`
	DryRun bool   `help:"Print due reminders without delivering them."`
}

// sinkFor is swapped out in tests.
var sinkFor = func(ctx *cli.Context) (notifier.Sink, func(), error) {
	cfg, err := ctx.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	multi := cli.BuildSinks(cfg, metrics.New())
	return multi, func() { _ = multi.Close() }, nil
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	username, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	clock, err := ctx.Clock()
	if err != nil {
		return err
	}
	now := clock.Now
	if c.At != "" {
		if now, err = utils.ResolveInstant(c.At, clock.Settings); err != nil {
			return err
		}
	}

	svc := reminder.NewService(ctx.Store, reminder.WindowFromSettings(clock.Settings))
	reminders, err := svc.Check(username, now)
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	if len(reminders) == 0 {
		fmt.Fprintln(out, "No reminders due.")
		return nil
	}
	for _, r := range reminders {
		fmt.Fprintf(out, "[%s] %s\n", r.Kind, r.Message)
	}

	if c.DryRun {
		return nil
	}
	if !clock.Settings.RemindersEnabled {
		fmt.Fprintln(out, "Reminders are disabled in settings; nothing delivered.")
		return nil
	}

	sink, closeSink, err := sinkFor(ctx)
	if err != nil {
		return err
	}
	defer closeSink()

	delivered := 0
	var lastErr error
	for _, r := range reminders {
		dctx, cancel := context.WithTimeout(context.Background(), constants.DefaultSinkTimeoutSec*time.Second)
		err := sink.Deliver(dctx, r)
		cancel()
		if err != nil {
			fmt.Fprintf(out, "⚠ delivery failed: %v\n", err)
			lastErr = err
			continue
		}
		delivered++
	}
	fmt.Fprintf(out, "Delivered %d of %d reminder(s).\n", delivered, len(reminders))
	if delivered == 0 {
		return fmt.Errorf("no reminders delivered: %w", lastErr)
	}
	return nil
}
