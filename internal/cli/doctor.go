package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/streakly/internal/backup"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false

	report := func(name string, err error) {
		if err != nil {
			ctx.printf("❌ %s: FAIL\n", name)
			ctx.printf("   Error: %v\n", err)
			hasError = true
			return
		}
		ctx.printf("✓ %s: OK\n", name)
	}

	reachErr := checkStoreReachable(ctx)
	report("Storage reachable", reachErr)

	if reachErr == nil {
		report("Schema version", checkSchemaVersion(ctx))
		report("Data validation", checkValidation(ctx))
	} else {
		ctx.println("⊘ Schema version: SKIPPED (storage not reachable)")
		ctx.println("⊘ Data validation: SKIPPED (storage not reachable)")
	}

	// warning only
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.println("⚠ Backups present: WARNING")
		ctx.printf("   %v\n", err)
	} else {
		ctx.println("✓ Backups present: OK")
	}

	report("Clock/timezone", checkClockTimezone(ctx))

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		// JSON store doesn't have a schema version
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d), upgrade streakly", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d, run 'streakly migrate'", current, latest)
	}
	return nil
}

func checkValidation(ctx *Context) error {
	habits, err := ctx.Store.LoadHabits(constants.HabitsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	result := validation.New().ValidateHabits(habits)
	if result.HasConflicts() {
		return fmt.Errorf("%d problem(s) found, run 'streakly validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	if !canBackup(ctx.Store) {
		return fmt.Errorf("not checked for remote storage")
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'streakly backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	// day keys follow the local zone, so a UTC default is worth a note
	if now.Location() == time.UTC {
		ctx.println("   Note: timezone is UTC")
	}
	return nil
}
