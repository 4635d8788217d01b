package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/campuswellness/weekplan/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint suggests the command that usually resolves err, or "".
func Hint(err error) string {
	var nf *NotFoundError
	switch {
	case stderrors.As(err, &nf) && nf.Kind == "profile":
		return fmt.Sprintf("create it with: weekplan --user %s profile create", nf.Key)
	case stderrors.As(err, &nf) && nf.Kind == "suggestion":
		return "compute it with: weekplan suggest <date>"
	case stderrors.Is(err, ErrConfiguration):
		return "review settings with: weekplan settings --list"
	}
	return ""
}

func report(w io.Writer, err error) {
	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(w, "       %s\n", hint)
	}
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		report(os.Stderr, err)
		os.Exit(1)
	}
}
