package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/cli/assignments"
	"github.com/campuswellness/weekplan/internal/cli/backups"
	"github.com/campuswellness/weekplan/internal/cli/calendar"
	"github.com/campuswellness/weekplan/internal/cli/classes"
	"github.com/campuswellness/weekplan/internal/cli/planning"
	"github.com/campuswellness/weekplan/internal/cli/profiles"
	"github.com/campuswellness/weekplan/internal/cli/settings"
	"github.com/campuswellness/weekplan/internal/cli/system"
	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/keyring"
	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/storage"
	"github.com/campuswellness/weekplan/internal/storage/postgres"
	"github.com/campuswellness/weekplan/internal/storage/sqlite"
)

var CLI struct {
	Version    kong.VersionFlag
	Config     string `help:"Database file path or PostgreSQL connection string. Credentials must NOT be embedded in the connection string; use the OS keyring or WEEKPLAN_DB_CONNECTION instead." type:"string" default:"${default_config}"`
	ConfigFile string `help:"Daemon YAML config (defaults to weekplan.yaml next to the database)." type:"path"`
	User       string `short:"u" help:"Profile to act on." env:"WEEKPLAN_USER"`
	Verbose    bool   `short:"v" help:"Enable debug logging."`

	Init       system.InitCmd            `cmd:"" help:"Initialize weekplan storage."`
	Migrate    system.MigrateCmd         `cmd:"" help:"Run database migrations."`
	Doctor     system.DoctorCmd          `cmd:"" help:"Run health checks and diagnostics."`
	Debug      system.DebugCmd           `cmd:"" help:"Debug commands for troubleshooting."`
	Keyring    system.KeyringCmd         `cmd:"" help:"Manage credentials in the OS keyring."`
	Validate   system.ValidateCmd        `cmd:"" help:"Validate classes and assignments for conflicts."`
	Tui        system.TuiCmd             `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Serve      system.ServeCmd           `cmd:"" help:"Serve the HTTP API and run scheduled reminders."`
	Backup     backups.BackupCmd         `cmd:"" help:"Manage database backups."`
	Profile    profiles.ProfileCmd       `cmd:"" help:"Manage student profiles."`
	Class      classes.ClassCmd          `cmd:"" help:"Manage weekly class sessions."`
	Assignment assignments.AssignmentCmd `cmd:"" help:"Manage assignments."`
	Calendar   calendar.CalendarCmd      `cmd:"" help:"Import and export iCalendar files."`
	Suggest    planning.SuggestCmd       `cmd:"" help:"Suggest meal, exercise and study times for a day."`
	Week       planning.WeekCmd          `cmd:"" help:"Show the week ahead."`
	Remind     planning.RemindCmd        `cmd:"" help:"Check and deliver due reminders."`
	Settings   settings.SettingsCmd      `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Campus week planner: classes, assignments and wellness suggestions"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)
	command := strings.Fields(ctx.Command())[0]

	store, err := openStore(CLI.Config, ctx.Flags())
	if err != nil {
		errors.Fatal(err)
	}

	configDir := defaultConfigDir()
	if cli.IsFileStore(store) {
		configDir = filepath.Dir(store.GetConfigPath())
	}
	if err := logger.Init(logger.Config{
		Debug:      CLI.Verbose,
		ConfigDir:  configDir,
		Foreground: command == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := &cli.Context{
		Store:      store,
		ConfigFile: CLI.ConfigFile,
		Username:   CLI.User,
	}

	// init creates the database and keyring never touches it.
	if command != "init" && command != "keyring" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Debug("failed to close store", "error", closeErr)
	}
	errors.Fatal(err)
}

// openStore picks PostgreSQL for connection strings, from --config, the
// keyring or the environment in that order, and SQLite otherwise.
func openStore(config string, flags []*kong.Flag) (storage.Provider, error) {
	if !explicit(flags, "config") {
		conn, err := keyring.GetConnectionString()
		if err != nil && !stderrors.Is(err, keyring.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Warning: keyring unavailable: %v\n", err)
		}
		if conn == "" {
			conn = os.Getenv(constants.DBConnectionEnvVar)
		}
		if conn != "" {
			config = conn
		}
	}

	if postgres.IsConnString(config) || strings.Contains(config, "host=") {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w; store the password in the OS keyring (weekplan keyring set database ...) or ~/.pgpass", err)
			}
			return nil, err
		}
		return postgres.New(config), nil
	}
	return sqlite.NewStore(expandHome(config)), nil
}

func explicit(flags []*kong.Flag, name string) bool {
	for _, f := range flags {
		if f.Name == name {
			return f.Set
		}
	}
	return false
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func defaultConfigDir() string {
	return filepath.Dir(expandHome(constants.DefaultConfigPath))
}
