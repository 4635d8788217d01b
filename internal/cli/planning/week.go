package planning

import (
	"encoding/json"
	"fmt"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/scheduler"
	"github.com/campuswellness/weekplan/internal/storage"
	"github.com/campuswellness/weekplan/internal/tui/components/agenda"
)

type WeekCmd struct {
	Days   int  `help:"Number of days to plan (defaults to the week horizon setting)."`
	NoSave bool `help:"Do not save the daily suggestions."`
	JSON   bool `help:"Print the events as JSON."`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
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
	sched, err := ctx.SchedulerFor(clock.Settings)
	if err != nil {
		return err
	}

	days := c.Days
	if days <= 0 {
		days = clock.Settings.WeekHorizonDays
	}
	var saver scheduler.SuggestionSaver
	if !c.NoSave {
		saver = ctx.Store
	}
	view, err := sched.Week(saver, scheduler.WeekInput{
		Username:    username,
		Today:       clock.Now,
		Days:        days,
		Sessions:    data.Sessions,
		Assignments: data.Assignments,
		Imported:    data.Events,
	})
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	if c.JSON {
		b, err := json.MarshalIndent(view.Events, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	}
	fmt.Fprint(out, agenda.Format(view.Start, days, view.Events))
	if saver != nil {
		fmt.Fprintf(out, "\nSaved suggestions for %d days.\n", len(view.Days))
	}
	return nil
}
