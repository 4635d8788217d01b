package system

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/storage"
	"github.com/campuswellness/weekplan/internal/utils"
)

type DebugCmd struct {
	DBPath         *DebugDBPathCmd         `cmd:"" help:"Show database path."`
	DumpUser       *DebugDumpUserCmd       `cmd:"" help:"Dump a user's profile, classes, assignments and events as JSON."`
	DumpSuggestion *DebugDumpSuggestionCmd `cmd:"" help:"Dump a stored suggestion as JSON."`
	DumpSettings   *DebugDumpSettingsCmd   `cmd:"" help:"Dump settings data as JSON."`
}

func writeJSON(w io.Writer, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(w, string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return writeJSON(ctx.Stdout(), map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpUserCmd struct {
	Username string `arg:"" help:"Username to dump."`
}

func (cmd *DebugDumpUserCmd) Run(ctx *cli.Context) error {
	data, err := storage.LoadUserData(ctx.Store, cmd.Username)
	if err != nil {
		if errors.IsNotFound(err) {
			return fmt.Errorf("user not found: %s", cmd.Username)
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	return writeJSON(ctx.Stdout(), data)
}

type DebugDumpSuggestionCmd struct {
	Username string `arg:"" help:"Username."`
	Date     string `arg:"" help:"Date of the suggestion (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpSuggestionCmd) Run(ctx *cli.Context) error {
	clock, err := ctx.Clock()
	if err != nil {
		return err
	}
	date := cmd.Date
	if date == "today" {
		date = utils.FormatDate(clock.Today)
	}
	if _, err := utils.ResolveDate(date, clock.Settings); err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", date)
	}

	rec, err := ctx.Store.GetSuggestion(cmd.Username, date)
	if err != nil {
		if errors.IsNotFound(err) {
			return fmt.Errorf("no suggestion found for %s on %s", cmd.Username, date)
		}
		return fmt.Errorf("failed to get suggestion: %w", err)
	}
	return writeJSON(ctx.Stdout(), rec)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return writeJSON(ctx.Stdout(), settings)
}
