package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/streakly/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/streakly?sslmode=disable"

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("   "); err == nil {
		t.Error("SetConnectionString with blank input should return an error")
	}
}

func TestGetConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("host=localhost dbname=streakly"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestKeyringUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus not running"))
	t.Cleanup(gokeyring.MockInit)

	if _, err := GetConnectionString(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrKeyringUnavailable)
	}
	if IsAvailable() {
		t.Error("IsAvailable() = true with a failing keyring")
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	t.Run("environment wins", func(t *testing.T) {
		t.Setenv(constants.EnvDBConnection, "host=envhost dbname=streakly")
		if err := SetConnectionString("host=keyhost dbname=streakly"); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = DeleteConnectionString() })

		got, src, err := ResolveConnectionString()
		if err != nil {
			t.Fatalf("ResolveConnectionString() failed: %v", err)
		}
		if got != "host=envhost dbname=streakly" || src != SourceEnv {
			t.Errorf("ResolveConnectionString() = %q, %s", got, src)
		}
	})

	t.Run("keyring fallback", func(t *testing.T) {
		t.Setenv(constants.EnvDBConnection, "")
		if err := SetConnectionString("host=keyhost dbname=streakly"); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = DeleteConnectionString() })

		got, src, err := ResolveConnectionString()
		if err != nil {
			t.Fatalf("ResolveConnectionString() failed: %v", err)
		}
		if got != "host=keyhost dbname=streakly" || src != SourceKeyring {
			t.Errorf("ResolveConnectionString() = %q, %s", got, src)
		}
	})

	t.Run("nothing configured", func(t *testing.T) {
		t.Setenv(constants.EnvDBConnection, "")
		if _, _, err := ResolveConnectionString(); !errors.Is(err, ErrNotFound) {
			t.Errorf("ResolveConnectionString() error = %v, want %v", err, ErrNotFound)
		}
	})
}
