package cli

import (
	"strings"
	"testing"
)

func TestSettingsCmd_List(t *testing.T) {
	pinClock(t)
	for _, ext := range backends {
		t.Run(ext, func(t *testing.T) {
			ctx, out := setupTestContext(t, ext)

			if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
				t.Fatalf("settings list failed: %v", err)
			}
			for _, want := range []string{"Graph Days:     7", "Overview Limit: 5", "Log Days:       14"} {
				if !strings.Contains(out.String(), want) {
					t.Errorf("settings list missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	pinClock(t)
	for _, ext := range backends {
		t.Run(ext, func(t *testing.T) {
			ctx, out := setupTestContext(t, ext)

			logDays := 3
			if err := (&SettingsCmd{LogDays: &logDays}).Run(ctx); err != nil {
				t.Fatalf("settings update failed: %v", err)
			}
			if !strings.Contains(out.String(), "Settings updated successfully.") {
				t.Errorf("unexpected output: %q", out.String())
			}

			stored, err := ctx.Store.GetSettings()
			if err != nil {
				t.Fatal(err)
			}
			if stored.LogDays != 3 || stored.GraphDays != 7 {
				t.Errorf("stored settings = %+v", stored)
			}

			out.Reset()
			if err := (&LogCmd{}).Run(ctx); err != nil {
				t.Fatalf("log command failed: %v", err)
			}
			if !strings.Contains(out.String(), "Last 3 days") {
				t.Errorf("log should use the saved default:\n%s", out.String())
			}
		})
	}
}

func TestSettingsCmd_RejectsInvalid(t *testing.T) {
	pinClock(t)
	ctx, _ := setupTestContext(t, ".json")

	graphDays := 0
	if err := (&SettingsCmd{GraphDays: &graphDays}).Run(ctx); err == nil {
		t.Error("expected an error for graph days 0")
	}
	stored, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if stored.GraphDays != 7 {
		t.Errorf("invalid update was saved: %+v", stored)
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	pinClock(t)
	ctx, out := setupTestContext(t, ".json")

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No changes specified.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
