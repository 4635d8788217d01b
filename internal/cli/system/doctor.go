package system

import (
	"fmt"
	"io"
	"time"

	"github.com/campuswellness/weekplan/internal/backup"
	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/migration"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/scheduler"
	"github.com/campuswellness/weekplan/internal/storage"
	"github.com/campuswellness/weekplan/internal/utils"
	"github.com/campuswellness/weekplan/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	// warnOnly failures do not fail the command.
	warnOnly bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := runChecks(ctx, out, checks)

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func runChecks(ctx *cli.Context, out io.Writer, list []check) bool {
	hasError := false
	dbReachable := true
	for i, c := range list {
		if c.needsDB && !dbReachable {
			fmt.Fprintf(out, "⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(out, "✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Fprintf(out, "⚠ %s: WARNING\n", c.name)
			fmt.Fprintf(out, "   %v\n", err)
		default:
			fmt.Fprintf(out, "❌ %s: FAIL\n", c.name)
			fmt.Fprintf(out, "   Error: %v\n", err)
			hasError = true
			if i == 0 {
				dbReachable = false
			}
		}
	}
	return hasError
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	p, ok := ctx.Store.(interface {
		PendingMigrations() ([]migration.Migration, error)
	})
	if !ok {
		return nil
	}
	pending, err := p.PendingMigrations()
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		return fmt.Errorf("%d pending migration(s), run 'weekplan migrate'", len(pending))
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	_, err = scheduler.GridConfigFromSettings(settings)
	return err
}

func checkValidation(ctx *cli.Context) error {
	profiles, err := ctx.Store.GetAllProfiles()
	if err != nil {
		return err
	}
	validator := validation.New()
	failed := 0
	for _, p := range profiles {
		data, err := storage.LoadUserData(ctx.Store, p.Username)
		if err != nil {
			return err
		}
		result := validator.Validate(data.Sessions, data.Assignments)
		if result.HasErrors() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d user(s) have invalid data, run 'weekplan validate --user NAME'", failed)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !cli.IsFileStore(ctx.Store) {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'weekplan backup create'")
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

// checkClockTimezone uses the stored timezone when the store is readable.
func checkClockTimezone(ctx *cli.Context) error {
	tz := models.DefaultSettings().Timezone
	if settings, err := ctx.Store.GetSettings(); err == nil && settings.Timezone != "" {
		tz = settings.Timezone
	}
	now, err := utils.NowInTimezone(tz)
	if err != nil {
		return err
	}
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}
