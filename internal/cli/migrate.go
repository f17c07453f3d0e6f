package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/streakly/internal/backup"
	"github.com/julianstephens/streakly/internal/storage"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		ctx.println("JSON storage has no schema. Nothing to migrate.")
		return nil
	}

	err := storage.CheckSchema(m)
	if err == nil {
		current, _, _ := m.SchemaVersion()
		ctx.printf("No migrations to apply. Database is up to date (version %d).\n", current)
		return nil
	}
	if !errors.Is(err, storage.ErrSchemaOutdated) {
		return err
	}

	// Keep a copy of the old schema in case a migration goes wrong
	if canBackup(ctx.Store) {
		path, err := backup.NewManager(ctx.Store.GetConfigPath()).CreateBackup()
		if err != nil {
			return fmt.Errorf("failed to back up before migrating: %w", err)
		}
		ctx.printf("Backup created: %s\n", path)
	}

	count, err := m.Migrate(func(msg string) {
		ctx.println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	ctx.printf("\n✓ Successfully applied %d migration(s).\n", count)
	return nil
}
