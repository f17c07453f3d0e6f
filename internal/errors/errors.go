// Package errors prints command failures for the terminal, with a next step
// when the failure is one the user can fix.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/streakly/internal/lock"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/storage"
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Format prefixes err with "Error: ". A nil error formats as "".
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

func Formatf(format string, args ...any) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests what to run next for errors with a known fix.
func Hint(err error) string {
	switch {
	case stderrors.Is(err, storage.ErrSchemaOutdated):
		return "Run 'streakly migrate' to update the database."
	case stderrors.Is(err, storage.ErrNotInitialized):
		return "Run 'streakly init' to create your habit data."
	case stderrors.Is(err, lock.ErrLocked):
		return "Close the other streakly session (usually the TUI) and try again."
	}
	return ""
}

// Fatal prints err with its hint and exits with code 1. A nil error is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("streakly command failed", "error", err)
	fmt.Fprintln(stderr, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintln(stderr, "       "+hint)
	}
	exit(1)
}

func Fatalf(format string, args ...any) {
	logger.Error("streakly command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(stderr, Formatf(format, args...))
	exit(1)
}
