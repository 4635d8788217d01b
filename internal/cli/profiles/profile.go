package profiles

import (
	"fmt"
	"text/tabwriter"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/tui"
)

type ProfileCmd struct {
	Create ProfileCreateCmd `cmd:"" help:"Create a profile for --user."`
	Show   ProfileShowCmd   `cmd:"" help:"Show the profile for --user."`
	Edit   ProfileEditCmd   `cmd:"" help:"Edit the profile for --user."`
	List   ProfileListCmd   `cmd:"" help:"List all profiles."`
}

// ProfileFlags are the onboarding answers accepted on the command line.
type ProfileFlags struct {
	Email             *string `help:"Contact email."`
	SleepHabit        *string `help:"Sleep habit (early bird, night owl, irregular)."`
	SportsInterest    *string `help:"Favourite sport or activity."`
	DietaryPreference *string `help:"Dietary preference."`
	ExerciseFrequency *string `help:"How often you exercise."`
}

func (f ProfileFlags) empty() bool {
	return f.Email == nil && f.SleepHabit == nil && f.SportsInterest == nil &&
		f.DietaryPreference == nil && f.ExerciseFrequency == nil
}

func (f ProfileFlags) apply(fm *tui.ProfileFormModel) {
	if f.Email != nil {
		fm.Email = *f.Email
	}
	if f.SleepHabit != nil {
		fm.SleepHabit = *f.SleepHabit
	}
	if f.SportsInterest != nil {
		fm.SportsInterest = *f.SportsInterest
	}
	if f.DietaryPreference != nil {
		fm.DietaryPreference = *f.DietaryPreference
	}
	if f.ExerciseFrequency != nil {
		fm.ExerciseFrequency = *f.ExerciseFrequency
	}
}

// runForm is swapped out in tests.
var runForm = func(fm *tui.ProfileFormModel) error {
	return tui.NewProfileForm(fm).Run()
}

type ProfileCreateCmd struct {
	ProfileFlags
	Interactive bool `short:"i" help:"Answer the onboarding questions interactively."`
}

func (c *ProfileCreateCmd) Run(ctx *cli.Context) error {
	username, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	if _, err := ctx.Store.GetProfile(username); err == nil {
		return fmt.Errorf("profile %q already exists; use 'weekplan profile edit'", username)
	} else if !errors.IsNotFound(err) {
		return err
	}

	fm := &tui.ProfileFormModel{}
	c.ProfileFlags.apply(fm)
	if c.Interactive {
		if err := runForm(fm); err != nil {
			return fmt.Errorf("profile form cancelled: %w", err)
		}
	}

	p := fm.Apply(models.Profile{Username: username, CreatedAt: ctx.CurrentTime()})
	if err := p.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddProfile(p); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	fmt.Fprintf(ctx.Stdout(), "Created profile %s\n", username)
	return nil
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	username, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	p, err := ctx.Store.GetProfile(username)
	if err != nil {
		return err
	}
	out := ctx.Stdout()
	fmt.Fprintf(out, "Profile: %s\n", p.Username)
	fmt.Fprintf(out, "  Email:              %s\n", orDash(p.Email))
	fmt.Fprintf(out, "  Sleep habit:        %s\n", orDash(p.SleepHabit))
	fmt.Fprintf(out, "  Sports interest:    %s\n", orDash(p.SportsInterest))
	fmt.Fprintf(out, "  Dietary preference: %s\n", orDash(p.DietaryPreference))
	fmt.Fprintf(out, "  Exercise frequency: %s\n", orDash(p.ExerciseFrequency))
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(out, "  Created:            %s\n", p.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

type ProfileEditCmd struct {
	ProfileFlags
	Interactive bool `short:"i" help:"Edit the answers interactively."`
}

func (c *ProfileEditCmd) Run(ctx *cli.Context) error {
	username, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	p, err := ctx.Store.GetProfile(username)
	if err != nil {
		return err
	}

	if c.ProfileFlags.empty() && !c.Interactive {
		fmt.Fprintln(ctx.Stdout(), "No changes specified. Pass flags or --interactive to edit the profile.")
		return nil
	}

	fm := tui.ProfileFormFrom(p)
	c.ProfileFlags.apply(fm)
	if c.Interactive {
		if err := runForm(fm); err != nil {
			return fmt.Errorf("profile form cancelled: %w", err)
		}
	}

	p = fm.Apply(p)
	if err := p.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.UpdateProfile(p); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	fmt.Fprintf(ctx.Stdout(), "Updated profile %s\n", username)
	return nil
}

type ProfileListCmd struct{}

func (c *ProfileListCmd) Run(ctx *cli.Context) error {
	profiles, err := ctx.Store.GetAllProfiles()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	out := ctx.Stdout()
	if len(profiles) == 0 {
		fmt.Fprintln(out, "No profiles yet. Create one with 'weekplan --user NAME profile create'.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tEMAIL\tEXERCISE")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Username, orDash(p.Email), orDash(p.ExerciseFrequency))
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
