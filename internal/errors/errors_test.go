package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/streakly/internal/lock"
	"github.com/julianstephens/streakly/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("habit not found"), expected: "Error: habit not found"},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("toggle: %w", errors.New("database is locked")),
			expected: "Error: toggle: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("unknown category %q", "gardening")
	want := `Error: unknown category "gardening"`
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "outdated schema", err: fmt.Errorf("open: %w", storage.ErrSchemaOutdated), want: "streakly migrate"},
		{name: "not initialized", err: storage.ErrNotInitialized, want: "streakly init"},
		{name: "locked", err: lock.ErrLocked, want: "other streakly session"},
		{name: "other", err: errors.New("disk full"), want: ""},
		{name: "nil", err: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" && got != "" {
				t.Errorf("Hint(%v) = %q, want none", tt.err, got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint(%v) = %q, want to mention %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestFatal_PrintsHint(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	oldStderr, oldExit := stderr, exit
	stderr, exit = &buf, func(c int) { code = c }
	t.Cleanup(func() { stderr, exit = oldStderr, oldExit })

	Fatal(fmt.Errorf("load habits: %w", storage.ErrSchemaOutdated))

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Error: load habits: database schema is out of date") {
		t.Errorf("unexpected first line: %q", out)
	}
	if !strings.Contains(out, "Run 'streakly migrate'") {
		t.Errorf("hint missing: %q", out)
	}
}

func runHelper(t *testing.T, name, env string) (*exec.ExitError, string, error) {
	t.Helper()
	cmd := exec.Command(os.Args[0], "-test.run=^"+name+"$")
	cmd.Env = append(os.Environ(), env+"=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr, stderr.String(), nil
	}
	return nil, stderr.String(), err
}

func TestFatal(t *testing.T) {
	if os.Getenv("STREAKLY_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	exitErr, stderr, err := runHelper(t, "TestFatal", "STREAKLY_TEST_FATAL")
	if exitErr == nil {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Fatal() exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr, "Error: test error") {
		t.Errorf("Fatal() stderr = %q, want to contain %q", stderr, "Error: test error")
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("STREAKLY_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	exitErr, _, err := runHelper(t, "TestFatal_NilError", "STREAKLY_TEST_FATAL_NIL")
	if exitErr != nil || err != nil {
		t.Errorf("Fatal(nil) should not exit, got exit=%v err=%v", exitErr, err)
	}
}

func TestFatalf(t *testing.T) {
	if os.Getenv("STREAKLY_TEST_FATALF") == "1" {
		Fatalf("no habit matches %q", "walk")
		return
	}

	exitErr, stderr, err := runHelper(t, "TestFatalf", "STREAKLY_TEST_FATALF")
	if exitErr == nil {
		t.Fatalf("Fatalf() did not exit with error: %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("Fatalf() exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr, `Error: no habit matches "walk"`) {
		t.Errorf("Fatalf() stderr = %q", stderr)
	}
}
