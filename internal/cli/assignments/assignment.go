package assignments

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/utils"
)

type AssignmentCmd struct {
	Add      AssignmentAddCmd      `cmd:"" help:"Add an assignment with a due date."`
	List     AssignmentListCmd     `cmd:"" help:"List late and upcoming assignments."`
	Complete AssignmentCompleteCmd `cmd:"" help:"Mark assignments done by name, removing them."`
}

type AssignmentAddCmd struct {
	Name string `arg:"" help:"Assignment name."`
	Due  string `short:"d" required:"" help:"Due date (YYYY-MM-DD, 'today' or 'tomorrow')."`
}

func (c *AssignmentAddCmd) Run(ctx *cli.Context) error {
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

	due, err := resolveDue(c.Due, clock)
	if err != nil {
		return err
	}
	a := models.Assignment{
		ID:        uuid.New().String(),
		Username:  username,
		Name:      strings.TrimSpace(c.Name),
		DueDate:   due,
		CreatedAt: clock.Now,
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddAssignment(a); err != nil {
		return fmt.Errorf("failed to add assignment: %w", err)
	}

	fmt.Fprintf(ctx.Stdout(), "Added assignment %s due %s\n", a.Name, a.DueDate)
	return nil
}

// resolveDue accepts the relative words the CLI offers on top of YYYY-MM-DD.
func resolveDue(s string, clock cli.Clock) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return utils.FormatDate(clock.Today), nil
	case "tomorrow":
		return utils.FormatDate(clock.Today.AddDate(0, 0, 1)), nil
	}
	d, err := models.ParseDate(s, clock.Location)
	if err != nil {
		return "", err
	}
	return utils.FormatDate(d), nil
}

type AssignmentListCmd struct {
	Late     bool `help:"Only show late assignments."`
	Upcoming bool `help:"Only show upcoming assignments."`
}

func (c *AssignmentListCmd) Run(ctx *cli.Context) error {
	username, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	clock, err := ctx.Clock()
	if err != nil {
		return err
	}
	list, err := ctx.Store.GetAssignments(username)
	if err != nil {
		return err
	}
	groups, invalid := models.GroupAssignments(list, clock.Today)

	out := ctx.Stdout()
	showAll := !c.Late && !c.Upcoming
	if showAll || c.Late {
		printGroup(out, "Late", groups.Late)
	}
	if showAll || c.Upcoming {
		printGroup(out, "Upcoming", groups.Upcoming)
	}
	if len(invalid) > 0 {
		fmt.Fprintf(out, "\n⚠ %d assignment(s) have an unreadable due date:\n", len(invalid))
		for _, a := range invalid {
			fmt.Fprintf(out, "  %q due %q\n", a.Name, a.DueDate)
		}
	}
	return nil
}

func printGroup(out io.Writer, title string, list []models.Assignment) {
	fmt.Fprintf(out, "%s (%d)\n", title, len(list))
	for _, a := range list {
		fmt.Fprintf(out, "  %s  %s\n", a.DueDate, a.Name)
	}
}

type AssignmentCompleteCmd struct {
	Names []string `arg:"" help:"Names of the assignments to remove."`
}

func (c *AssignmentCompleteCmd) Run(ctx *cli.Context) error {
	username, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	list, err := ctx.Store.GetAssignments(username)
	if err != nil {
		return err
	}
	remaining, removed := models.RemoveAssignments(list, c.Names)
	out := ctx.Stdout()
	if removed == 0 {
		fmt.Fprintln(out, "No matching assignments.")
		return nil
	}
	if err := ctx.Store.ReplaceAssignments(username, remaining); err != nil {
		return fmt.Errorf("failed to update assignments: %w", err)
	}
	fmt.Fprintf(out, "Completed %d assignment(s), %d remaining\n", removed, len(remaining))
	return nil
}
