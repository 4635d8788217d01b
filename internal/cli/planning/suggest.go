package planning

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/scheduler"
	"github.com/campuswellness/weekplan/internal/utils"
)

type SuggestCmd struct {
	Date   string `arg:"" optional:"" help:"Date to plan (YYYY-MM-DD); defaults to today."`
	DryRun bool   `help:"Compute the suggestion without saving it."`
	JSON   bool   `help:"Print the stored record as JSON."`
}

func (c *SuggestCmd) Run(ctx *cli.Context) error {
	username, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	clock, err := ctx.Clock()
	if err != nil {
		return err
	}
	date := clock.Today
	if c.Date != "" && c.Date != "today" {
		if date, err = utils.ResolveDate(c.Date, clock.Settings); err != nil {
			return err
		}
	}
	if _, err := ctx.Store.GetProfile(username); err != nil {
		return err
	}
	sessions, err := ctx.Store.GetClassSessions(username)
	if err != nil {
		return err
	}
	sched, err := ctx.SchedulerFor(clock.Settings)
	if err != nil {
		return err
	}

	var plan scheduler.DayPlan
	if c.DryRun {
		plan, err = sched.PlanDay(username, date, sessions)
	} else {
		plan, err = sched.Suggest(ctx.Store, username, date, sessions)
	}
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	if c.JSON {
		b, err := json.MarshalIndent(plan.Suggestion.Record(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	}
	printPlan(out, plan)
	if !c.DryRun {
		fmt.Fprintln(out, "Saved.")
	}
	return nil
}

var categories = []struct {
	label string
	cat   constants.SuggestionCategory
}{
	{"Breakfast", constants.CategoryBreakfast},
	{"Lunch", constants.CategoryLunch},
	{"Dinner", constants.CategoryDinner},
	{"Exercise", constants.CategoryExercise},
}

func printPlan(out io.Writer, plan scheduler.DayPlan) {
	s := plan.Suggestion
	fmt.Fprintf(out, "Suggestions for %s on %s:\n", s.Username, plan.Date.Format("Monday 2006-01-02"))
	for _, c := range categories {
		fmt.Fprintf(out, "  %-11s %s\n", c.label, slot(s.Category(c.cat)))
	}
	work := make([]string, 0, len(s.AssignmentSlots))
	for _, t := range s.AssignmentSlots {
		work = append(work, t.String())
	}
	if len(work) == 0 {
		work = append(work, "none")
	}
	fmt.Fprintf(out, "  %-11s %s\n", "Assignments", strings.Join(work, ", "))
	fmt.Fprintf(out, "  %d of %d grid slots free\n", len(plan.Availability.Free), len(plan.Availability.Grid))
}

func slot(t *models.TimeOfDay) string {
	if t == nil {
		return "no free slot"
	}
	return t.String()
}

