package classes

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/tui"
	"github.com/campuswellness/weekplan/internal/validation"
)

type ClassCmd struct {
	Add    ClassAddCmd    `cmd:"" help:"Add a class that meets on two weekdays."`
	List   ClassListCmd   `cmd:"" help:"List classes."`
	Remove ClassRemoveCmd `cmd:"" help:"Remove a class by ID or name."`
}

// runForm is swapped out in tests.
var runForm = func(fm *tui.ClassFormModel) error {
	return tui.NewClassForm(fm).Run()
}

type ClassAddCmd struct {
	Name        string `arg:"" optional:"" help:"Class name."`
	Days        string `short:"d" help:"Two weekdays, e.g. mon,wed."`
	Start       string `short:"s" help:"Start time (HH:MM)."`
	End         string `short:"e" help:"End time (HH:MM)."`
	From        string `short:"f" help:"Date of the first class (YYYY-MM-DD); defaults to today."`
	Interactive bool   `short:"i" help:"Fill in the class with a form."`
}

func (c *ClassAddCmd) Run(ctx *cli.Context) error {
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

	fm := &tui.ClassFormModel{Name: c.Name, Days: c.Days, Start: c.Start, End: c.End, From: c.From}
	if c.Interactive {
		if err := runForm(fm); err != nil {
			return fmt.Errorf("class form cancelled: %w", err)
		}
	}

	session, err := fm.Session(username, clock.Location, clock.Today)
	if err != nil {
		return err
	}
	session.ID = uuid.New().String()
	session.CreatedAt = clock.Now

	existing, err := ctx.Store.GetClassSessions(username)
	if err != nil {
		return err
	}
	if err := ctx.Store.AddClassSession(session); err != nil {
		return fmt.Errorf("failed to add class: %w", err)
	}

	out := ctx.Stdout()
	fmt.Fprintf(out, "Added class %s (%s %s-%s, from %s)\n",
		session.Name, session.FormatDays(), session.Start, session.End, session.FirstDate.Format("2006-01-02"))

	// Overlaps and duplicate names are allowed but worth pointing out.
	result := validation.New().ValidateClasses(append(existing, session))
	for _, conflict := range result.Conflicts {
		for _, id := range conflict.IDs {
			if id == session.ID {
				fmt.Fprintf(out, "⚠ %s\n", conflict.Description)
				break
			}
		}
	}
	return nil
}

type ClassListCmd struct{}

func (c *ClassListCmd) Run(ctx *cli.Context) error {
	username, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	sessions, err := ctx.Store.GetClassSessions(username)
	if err != nil {
		return err
	}
	out := ctx.Stdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No classes yet. Add one with 'weekplan class add'.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDAYS\tTIME\tFROM")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s-%s\t%s\n",
			shortID(s.ID), s.Name, s.FormatDays(), s.Start, s.End, s.FirstDate.Format("2006-01-02"))
	}
	return w.Flush()
}

type ClassRemoveCmd struct {
	Class string `arg:"" help:"Class ID, ID prefix or name."`
}

func (c *ClassRemoveCmd) Run(ctx *cli.Context) error {
	username, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	sessions, err := ctx.Store.GetClassSessions(username)
	if err != nil {
		return err
	}
	target, err := find(sessions, c.Class)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteClassSession(username, target.ID); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Stdout(), "Removed class %s\n", target.Name)
	return nil
}

// find matches an exact ID first, then a unique ID prefix or name.
func find(sessions []models.ClassSession, key string) (models.ClassSession, error) {
	var matches []models.ClassSession
	for _, s := range sessions {
		if s.ID == key {
			return s, nil
		}
		if s.Name == key || (len(key) >= 4 && len(s.ID) >= len(key) && s.ID[:len(key)] == key) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return models.ClassSession{}, errors.NewNotFoundError("class", key)
	case 1:
		return matches[0], nil
	default:
		return models.ClassSession{}, fmt.Errorf("%q matches %d classes; use the ID from 'weekplan class list'", key, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
