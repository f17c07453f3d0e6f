package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/streakly/internal/backup"
	"github.com/julianstephens/streakly/internal/storage/postgres"
)

func TestBackupCommands(t *testing.T) {
	for _, ext := range backends {
		t.Run(ext, func(t *testing.T) {
			pinClock(t)
			ctx, out := setupTestContext(t, ext)

			if err := (&InitCmd{}).Run(ctx); err != nil {
				t.Fatal(err)
			}

			out.Reset()
			if err := (&BackupListCmd{}).Run(ctx); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), "No backups found.") {
				t.Errorf("unexpected list output: %q", out.String())
			}

			out.Reset()
			if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
				t.Fatalf("backup create failed: %v", err)
			}
			if !strings.Contains(out.String(), "✓ Backup created: streakly-") {
				t.Errorf("unexpected create output: %q", out.String())
			}

			out.Reset()
			if err := (&BackupListCmd{}).Run(ctx); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), "Available backups (1 total, keeping most recent 14)") {
				t.Errorf("unexpected list output: %q", out.String())
			}
			if !strings.Contains(out.String(), ext) {
				t.Errorf("backup should keep the %s extension: %q", ext, out.String())
			}
		})
	}
}

func TestBackupRestoreCmd(t *testing.T) {
	pinClock(t)
	ctx, out := setupTestContext(t, ".json")
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	if err := (&AddCmd{Name: "Walk", Category: "fitness", Time: "morning"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	t.Run("declined", func(t *testing.T) {
		out.Reset()
		ctx.In = strings.NewReader("n\n")
		if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(ctx); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out.String(), "Restore cancelled.") {
			t.Errorf("unexpected output: %q", out.String())
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		out.Reset()
		ctx.In = strings.NewReader("yes\n")
		if err := (&BackupRestoreCmd{BackupFile: filepath.Base(backupPath)}).Run(ctx); err != nil {
			t.Fatalf("restore failed: %v", err)
		}
		if !strings.Contains(out.String(), "✓ Habits restored successfully!") {
			t.Errorf("unexpected output: %q", out.String())
		}
		if !strings.Contains(out.String(), "Previous data saved as: ") {
			t.Errorf("expected the pre-restore backup to be reported: %q", out.String())
		}

		restored, _ := contextAt(t, ctx.Store.GetConfigPath())
		if err := restored.Open(); err != nil {
			t.Fatal(err)
		}
		if got := len(restored.Tracker.Habits()); got != 2 {
			t.Errorf("restored store has %d habits, want the 2 samples", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		err := (&BackupRestoreCmd{BackupFile: "nope.json", Yes: true}).Run(ctx)
		if err == nil || !strings.Contains(err.Error(), "backup file not found") {
			t.Errorf("restore of missing file = %v", err)
		}
	})
}

func TestBackupCmd_RemoteStore(t *testing.T) {
	ctx := NewContext(postgres.New("postgres://streakly@localhost/streakly"))
	ctx.Out = os.Stdout

	if err := (&BackupListCmd{}).Run(ctx); err == nil {
		t.Error("backups should be refused for PostgreSQL storage")
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("backups should be refused for PostgreSQL storage")
	}
}
