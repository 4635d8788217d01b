package calendar

import (
	"fmt"
	"io"
	"os"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/ics"
	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/storage"
)

type CalendarCmd struct {
	Import CalendarImportCmd `cmd:"" help:"Import events from an .ics file."`
	Export CalendarExportCmd `cmd:"" help:"Export the week as an .ics calendar."`
}

type CalendarImportCmd struct {
	File    string `arg:"" help:"Path to the .ics file, or - for stdin."`
	Days    int    `help:"Expand recurring events this many days ahead (defaults to the week horizon)."`
	Replace bool   `help:"Remove previously imported events first."`
}

func (c *CalendarImportCmd) Run(ctx *cli.Context) error {
	username, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	if _, err := ctx.Store.GetProfile(username); err != nil {
		return err
	}
	clock, err := ctx.Clock()
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			return fmt.Errorf("failed to open calendar file: %w", err)
		}
		defer f.Close()
		r = f
	}

	days := c.Days
	if days <= 0 {
		days = clock.Settings.WeekHorizonDays
	}
	res, err := ics.Parse(r, ics.ImportOptions{
		Username:    username,
		From:        clock.Now,
		HorizonDays: days,
	})
	if err != nil {
		return err
	}

	if c.Replace {
		if err := ctx.Store.ClearCalendarEvents(username); err != nil {
			return fmt.Errorf("failed to clear imported events: %w", err)
		}
	}
	inserted, err := ctx.Store.AddCalendarEvents(username, res.Events)
	if err != nil {
		return fmt.Errorf("failed to store events: %w", err)
	}

	out := ctx.Stdout()
	fmt.Fprintf(out, "Imported %d event(s)", inserted)
	if dup := len(res.Events) - inserted; dup > 0 {
		fmt.Fprintf(out, ", %d already present", dup)
	}
	fmt.Fprintln(out)
	if len(res.Skipped) > 0 {
		fmt.Fprintf(out, "⚠ Skipped %d unreadable component(s):\n", len(res.Skipped))
		for _, err := range res.Skipped {
			fmt.Fprintf(out, "  %v\n", err)
		}
	}
	return nil
}

type CalendarExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout."`
}

func (c *CalendarExportCmd) Run(ctx *cli.Context) error {
	username, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	clock, err := ctx.Clock()
	if err != nil {
		return err
	}
	data, err := storage.LoadUserData(ctx.Store, username)
	if err != nil {
		return err
	}

	feed := ics.Feed{
		Username:    username,
		Now:         clock.Now,
		HorizonDays: clock.Settings.WeekHorizonDays,
		Sessions:    data.Sessions,
		Assignments: data.Assignments,
		Events:      data.Events,
	}
	var skipped []error
	feed.Suggestions, skipped = storage.LoadSuggestions(ctx.Store, username, clock.Now, clock.Settings.WeekHorizonDays)
	for _, err := range skipped {
		logger.Warn("skipping stored suggestion", "user", username, "err", err)
	}

	if c.Output == "" {
		return ics.Write(ctx.Stdout(), feed)
	}
	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Output, err)
	}
	if err := ics.Write(f, feed); err != nil {
		f.Close()
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout(), "Wrote calendar for %s to %s\n", username, c.Output)
	return nil
}
