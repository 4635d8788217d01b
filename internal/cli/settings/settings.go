package settings

import (
	"fmt"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/scheduler"
	"github.com/campuswellness/weekplan/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DayStart       *string `help:"First grid point of the day (HH:MM)."`
	DayEnd         *string `help:"Last grid point of the day (HH:MM)."`
	Interval       *int    `help:"Grid step in minutes."`
	Reminders      *bool   `help:"Enable or disable reminder delivery."`
	ReminderWindow *int    `help:"Minutes ahead of a class start that trigger a reminder."`
	Horizon        *int    `help:"Days covered by the week view."`
	Timezone       *string `help:"IANA timezone name, or Local."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	out := ctx.Stdout()

	if c.List {
		fmt.Fprintln(out, "Current Settings:")
		fmt.Fprintf(out, "  Day Start:        %s\n", settings.DayStart)
		fmt.Fprintf(out, "  Day End:          %s\n", settings.DayEnd)
		fmt.Fprintf(out, "  Slot Interval:    %d min\n", settings.SlotIntervalMin)
		fmt.Fprintf(out, "  Week Horizon:     %d days\n", settings.WeekHorizonDays)
		fmt.Fprintf(out, "  Timezone:         %s\n", settings.Timezone)
		fmt.Fprintln(out, "\nReminder Settings:")
		fmt.Fprintf(out, "  Reminders Enabled: %v\n", settings.RemindersEnabled)
		fmt.Fprintf(out, "  Reminder Window:   %d min\n", settings.ReminderWindowMin)
		return nil
	}

	updated := false
	if c.DayStart != nil {
		settings.DayStart = *c.DayStart
		updated = true
	}
	if c.DayEnd != nil {
		settings.DayEnd = *c.DayEnd
		updated = true
	}
	if c.Interval != nil {
		settings.SlotIntervalMin = *c.Interval
		updated = true
	}
	if c.Reminders != nil {
		settings.RemindersEnabled = *c.Reminders
		updated = true
	}
	if c.ReminderWindow != nil {
		if *c.ReminderWindow <= 0 {
			return errors.NewValidationError("reminder-window", "reminder window must be positive, got %d minutes", *c.ReminderWindow)
		}
		settings.ReminderWindowMin = *c.ReminderWindow
		updated = true
	}
	if c.Horizon != nil {
		if *c.Horizon <= 0 {
			return errors.NewValidationError("horizon", "week horizon must be positive, got %d days", *c.Horizon)
		}
		settings.WeekHorizonDays = *c.Horizon
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return errors.NewValidationError("timezone", "unknown timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}

	if !updated {
		fmt.Fprintln(out, "No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if _, err := scheduler.GridConfigFromSettings(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(out, "Settings updated successfully.")
	return nil
}
