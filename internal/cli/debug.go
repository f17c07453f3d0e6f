package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/streakly/internal/constants"
)

type DebugCmd struct {
	DBPath      DebugDBPathCmd      `cmd:"" help:"Show database path."`
	DumpHabit   DebugDumpHabitCmd   `cmd:"" help:"Dump a stored habit as JSON."`
	DumpUnlocks DebugDumpUnlocksCmd `cmd:"" help:"Dump the achievement unlock ledger as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	// Output in machine-readable format
	return ctx.printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpHabitCmd struct {
	Habit string `arg:"" help:"ID or name of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	habits, err := ctx.Store.LoadHabits(constants.HabitsKey)
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	for _, h := range habits {
		if h.ID == cmd.Habit || h.Name == cmd.Habit {
			return ctx.printJSON(h)
		}
	}
	return fmt.Errorf("habit not found: %s", cmd.Habit)
}

type DebugDumpUnlocksCmd struct{}

type unlockEntry struct {
	Achievement string    `json:"achievement"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

func (cmd *DebugDumpUnlocksCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	unlocks, err := ctx.Store.LoadUnlocks()
	if err != nil {
		return fmt.Errorf("failed to load unlocks: %w", err)
	}
	entries := make([]unlockEntry, 0, len(unlocks))
	for id, at := range unlocks {
		entries = append(entries, unlockEntry{Achievement: id, UnlockedAt: at})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Achievement < entries[j].Achievement
	})
	return ctx.printJSON(entries)
}

func (c *Context) printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(jsonBytes))
	return nil
}
