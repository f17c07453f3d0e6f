package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	// Read straight from the store; the tracker would substitute samples
	habits, err := ctx.Store.LoadHabits(constants.HabitsKey)
	if errors.Is(err, storage.ErrNotFound) {
		ctx.println("No habits saved yet.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}

	ctx.printf("Validating %d habit(s)...\n\n", len(habits))
	result := validation.New().ValidateHabits(habits)
	ctx.println(result.FormatReport())

	// Conflicts are reported, not treated as a command failure
	return nil
}
