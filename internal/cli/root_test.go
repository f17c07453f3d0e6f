package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/streakly/internal/motivation"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/utils"
)

var testNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.Local)

func pinClock(t *testing.T) {
	t.Helper()
	t.Cleanup(utils.SetNowFunc(func() time.Time { return testNow }))
}

func newStore(path string) storage.Provider {
	if filepath.Ext(path) == ".json" {
		return storage.NewJSONStore(path)
	}
	return storage.NewSQLiteStore(path)
}

// setupTestContext returns a context over a fresh store in a temp dir.
// ext selects the backend: ".db" or ".json".
func setupTestContext(t *testing.T, ext string) (*Context, *bytes.Buffer) {
	t.Helper()
	return contextAt(t, filepath.Join(t.TempDir(), "streakly"+ext))
}

func contextAt(t *testing.T, path string) (*Context, *bytes.Buffer) {
	t.Helper()
	n := 0
	store := newStore(path)
	ctx := NewContext(store,
		tracker.WithIDFunc(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		tracker.WithSelector(motivation.NewSeededSelector(1)),
	)
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.In = strings.NewReader("")

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return ctx, out
}

var backends = []string{".db", ".json"}

func TestOpen_InitializesOnFirstUse(t *testing.T) {
	for _, ext := range backends {
		t.Run(ext, func(t *testing.T) {
			pinClock(t)
			ctx, _ := setupTestContext(t, ext)

			if err := ctx.Open(); err != nil {
				t.Fatalf("Open() failed: %v", err)
			}
			if !ctx.Tracker.UsingSamples() {
				t.Error("fresh store should start from the sample habits")
			}
			// second call is a no-op
			if err := ctx.Open(); err != nil {
				t.Fatalf("second Open() failed: %v", err)
			}
		})
	}
}

func TestInitCmd_SeedsSamples(t *testing.T) {
	for _, ext := range backends {
		t.Run(ext, func(t *testing.T) {
			pinClock(t)
			ctx, out := setupTestContext(t, ext)

			if err := (&InitCmd{}).Run(ctx); err != nil {
				t.Fatalf("init command failed: %v", err)
			}
			if !strings.Contains(out.String(), "Initialized streakly storage at: ") {
				t.Errorf("unexpected output: %q", out.String())
			}
			if !strings.Contains(out.String(), "Added sample habits") {
				t.Errorf("expected sample habits to be saved, got %q", out.String())
			}

			saved, err := ctx.Store.LoadHabits("habits")
			if err != nil {
				t.Fatalf("LoadHabits() after init failed: %v", err)
			}
			if len(saved) != 2 {
				t.Errorf("init saved %d habits, want 2", len(saved))
			}
		})
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	pinClock(t)
	path := filepath.Join(t.TempDir(), "streakly.db")

	first, _ := contextAt(t, path)
	if err := (&InitCmd{}).Run(first); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := (&AddCmd{Name: "Walk", Category: "fitness", Time: "morning"}).Run(first); err != nil {
		t.Fatal(err)
	}

	second, out := contextAt(t, path)
	if err := (&InitCmd{}).Run(second); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if strings.Contains(out.String(), "Added sample habits") {
		t.Error("second init must not reseed samples")
	}
	if got := len(second.Tracker.Habits()); got != 3 {
		t.Errorf("habits after re-init = %d, want 3", got)
	}
}

func TestCanBackup(t *testing.T) {
	if !canBackup(storage.NewSQLiteStore("x.db")) || !canBackup(storage.NewJSONStore("x.json")) {
		t.Error("local stores should support backups")
	}
}
