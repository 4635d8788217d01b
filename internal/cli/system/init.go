package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/storage"
	"github.com/campuswellness/weekplan/internal/storage/postgres"
	"github.com/campuswellness/weekplan/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()

	if c.Force && cli.IsFileStore(ctx.Store) {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Fprintf(out, "Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized weekplan storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Fprintf(out, "Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Fprintln(out, "Migration completed successfully!")
	}

	return nil
}

func openSource(sourcePath string) (storage.Provider, error) {
	if postgres.IsConnString(sourcePath) {
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(sourcePath), nil
	}
	return sqlite.NewStore(sourcePath), nil
}

// copyData copies settings and every profile with its classes, assignments
// and imported events. Suggestions are recomputed on demand and not copied.
func (c *InitCmd) copyData(ctx *cli.Context, sourcePath string) error {
	out := ctx.Stdout()
	source, err := openSource(sourcePath)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	fmt.Fprintln(out, "  Copying settings...")
	settings, err := source.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Fprintln(out, "  Copying profiles...")
	profiles, err := source.GetAllProfiles()
	if err != nil {
		return fmt.Errorf("failed to get profiles from source: %w", err)
	}
	for _, p := range profiles {
		data, err := storage.LoadUserData(source, p.Username)
		if err != nil {
			return fmt.Errorf("failed to read user %s: %w", p.Username, err)
		}
		if err := ctx.Store.AddProfile(p); err != nil {
			return fmt.Errorf("failed to add profile %s: %w", p.Username, err)
		}
		for _, s := range data.Sessions {
			if err := ctx.Store.AddClassSession(s); err != nil {
				return fmt.Errorf("failed to add class %s: %w", s.ID, err)
			}
		}
		if err := ctx.Store.ReplaceAssignments(p.Username, data.Assignments); err != nil {
			return fmt.Errorf("failed to add assignments for %s: %w", p.Username, err)
		}
		if _, err := ctx.Store.AddCalendarEvents(p.Username, data.Events); err != nil {
			return fmt.Errorf("failed to add events for %s: %w", p.Username, err)
		}
		fmt.Fprintf(out, "    %s: %d classes, %d assignments, %d events\n",
			p.Username, len(data.Sessions), len(data.Assignments), len(data.Events))
	}
	fmt.Fprintf(out, "    Copied %d profiles\n", len(profiles))

	return nil
}
