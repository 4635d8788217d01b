package system

import (
	"fmt"

	"github.com/campuswellness/weekplan/internal/cli"
	"github.com/campuswellness/weekplan/internal/storage"
	"github.com/campuswellness/weekplan/internal/validation"
)

type ValidateCmd struct {
	All    bool `help:"Validate every profile instead of --user."`
	Strict bool `help:"Exit with an error when any error-level conflict is found."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	out := ctx.Stdout()

	var usernames []string
	if cmd.All {
		profiles, err := ctx.Store.GetAllProfiles()
		if err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}
		for _, p := range profiles {
			usernames = append(usernames, p.Username)
		}
	} else {
		username, err := ctx.RequireUser()
		if err != nil {
			return err
		}
		usernames = []string{username}
	}

	validator := validation.New()
	failed := false
	for _, username := range usernames {
		data, err := storage.LoadUserData(ctx.Store, username)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Validating %s (%d classes, %d assignments)...\n",
			username, len(data.Sessions), len(data.Assignments))
		result := validator.Validate(data.Sessions, data.Assignments)
		fmt.Fprintln(out, result.FormatReport())
		if result.HasErrors() {
			failed = true
		}
	}

	if failed && cmd.Strict {
		return fmt.Errorf("validation found errors")
	}
	return nil
}
