package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/campuswellness/weekplan/internal/backup"
	"github.com/campuswellness/weekplan/internal/config"
	"github.com/campuswellness/weekplan/internal/constants"
	"github.com/campuswellness/weekplan/internal/errors"
	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/models"
	"github.com/campuswellness/weekplan/internal/scheduler"
	"github.com/campuswellness/weekplan/internal/storage"
	"github.com/campuswellness/weekplan/internal/storage/sqlite"
	"github.com/campuswellness/weekplan/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	// ConfigFile is the daemon YAML file read by serve.
	ConfigFile string
	// Username is the profile most commands act on (--user).
	Username string
	// Out receives command output; nil means stdout.
	Out io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// CurrentTime reads the context clock.
func (c *Context) CurrentTime() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// RequireUser fails with a configuration error when no --user was given.
func (c *Context) RequireUser() (string, error) {
	if c.Username == "" {
		return "", errors.NewConfigurationError("no user selected; pass --user or set WEEKPLAN_USER")
	}
	return c.Username, nil
}

// Clock holds the stored settings with defaults applied and the current
// instant read in the configured timezone.
type Clock struct {
	Settings models.Settings
	Location *time.Location
	Now      time.Time
	Today    time.Time
}

// Clock reads the settings and resolves the current time in their timezone.
func (c *Context) Clock() (Clock, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return Clock{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return Clock{}, errors.NewConfigurationError("invalid timezone %q: %v", settings.Timezone, err)
	}
	now := c.CurrentTime().In(loc)
	return Clock{
		Settings: settings,
		Location: loc,
		Now:      now,
		Today:    models.DateOf(now),
	}, nil
}

// SchedulerFor returns the context's scheduler when one was supplied and
// otherwise builds one whose grid follows settings.
func (c *Context) SchedulerFor(settings models.Settings) (*scheduler.Scheduler, error) {
	if c.Scheduler != nil {
		return c.Scheduler, nil
	}
	grid, err := scheduler.GridConfigFromSettings(settings)
	if err != nil {
		return nil, err
	}
	return scheduler.NewWithGrid(grid)
}

// LoadConfig reads the daemon configuration next to the database unless a
// file was given explicitly.
func (c *Context) LoadConfig() (*config.Config, error) {
	path := c.ConfigFile
	if path == "" {
		path = filepath.Join(filepath.Dir(c.Store.GetConfigPath()), constants.DefaultConfigFile)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, errors.NewConfigurationError("failed to load %s: %v", path, err)
	}
	return cfg, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !IsFileStore(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// IsFileStore reports whether the store is a local SQLite file.
func IsFileStore(p storage.Provider) bool {
	_, ok := p.(*sqlite.Store)
	return ok
}
