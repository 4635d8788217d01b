package system

import (
	"fmt"

	"github.com/campuswellness/weekplan/internal/cli"
)

type migrator interface {
	Migrate(logFn func(string)) (int, error)
}

type MigrateCmd struct {
	NoBackup bool `help:"Skip the automatic backup taken before migrating." name:"no-backup"`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("store does not support migrations")
	}

	if !c.NoBackup {
		ctx.PerformAutomaticBackup()
	}

	count, err := m.Migrate(func(msg string) {
		fmt.Fprintln(out, msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Fprintln(out, "No migrations to apply. Database is up to date.")
	} else {
		fmt.Fprintf(out, "\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
