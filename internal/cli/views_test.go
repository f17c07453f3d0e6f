package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/streakly/internal/achievements"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/overview"
)

func TestPrintOverview_BarWidth(t *testing.T) {
	bars := []overview.Bar{
		{Name: "A", Streak: 10, Fraction: 1},
		{Name: "B", Streak: 5, Fraction: 0.5},
	}

	tests := []struct {
		name      string
		termWidth int
		full      int
		half      int
	}{
		{"wide terminal caps the bar", 200, 30, 15},
		{"medium terminal", 47, 30, 15},
		{"narrow terminal keeps a minimum", 20, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			printOverview(&out, bars, tt.termWidth)
			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			if len(lines) != 3 {
				t.Fatalf("got %d lines, want 3:\n%s", len(lines), out.String())
			}
			if got := strings.Count(lines[1], "█"); got != tt.full {
				t.Errorf("full bar has %d blocks, want %d", got, tt.full)
			}
			if got := strings.Count(lines[2], "█"); got != tt.half {
				t.Errorf("half bar has %d blocks, want %d", got, tt.half)
			}
			if !strings.HasSuffix(lines[1], "10 days") || !strings.HasSuffix(lines[2], "5 days") {
				t.Errorf("labels missing:\n%s", out.String())
			}
		})
	}
}

func TestPrintOverview_Empty(t *testing.T) {
	var out bytes.Buffer
	printOverview(&out, nil, 80)
	if !strings.Contains(out.String(), "No active habits") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestLogCmd(t *testing.T) {
	pinClock(t)
	ctx, out := setupTestContext(t, ".json")

	if err := (&DoneCmd{Habit: "Read 30 minutes"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()

	if err := (&LogCmd{Habit: "Read 30 minutes", Days: 3}).Run(ctx); err != nil {
		t.Fatalf("log command failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Last 3 days (2024-05-18 to 2024-05-20)") {
		t.Errorf("missing range header:\n%s", got)
	}
	// 2024-05-18 is a Saturday
	if !strings.Contains(got, "S S M") {
		t.Errorf("missing weekday header:\n%s", got)
	}
	if !strings.Contains(got, "Read 30 minutes  · · ■  1 day") {
		t.Errorf("missing habit row:\n%s", got)
	}
}

func TestLogCmd_Errors(t *testing.T) {
	pinClock(t)
	ctx, _ := setupTestContext(t, ".json")

	if err := (&LogCmd{Days: -1}).Run(ctx); err == nil {
		t.Error("expected an error for --days -1")
	}
	if err := (&LogCmd{Habit: "missing", Days: 7}).Run(ctx); err == nil {
		t.Error("expected an error for an unknown habit")
	}
}

func TestQuoteCmd(t *testing.T) {
	pinClock(t)
	ctx, out := setupTestContext(t, ".json")

	if err := (&QuoteCmd{Category: "fitness"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	want := "\"The only bad workout is the one that didn't happen.\"\n  - Unknown\n"
	if out.String() != want {
		t.Errorf("quote output = %q, want %q", out.String(), want)
	}
}

func TestAchievementsCmd(t *testing.T) {
	pinClock(t)
	ctx, out := setupTestContext(t, ".json")

	if err := (&AchievementsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	header := fmt.Sprintf("Achievements (0/%d):", len(achievements.Catalog()))
	if !strings.Contains(out.String(), header) {
		t.Errorf("missing %q in:\n%s", header, out.String())
	}
	if strings.Count(out.String(), "🔒") != len(achievements.Catalog()) {
		t.Errorf("every achievement should be locked:\n%s", out.String())
	}
}

func TestInsightsCmd(t *testing.T) {
	pinClock(t)
	ctx, out := setupTestContext(t, ".json")

	if err := (&InsightsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "⚠ You have 2 habits left to complete today.") {
		t.Errorf("unexpected insights:\n%s", out.String())
	}
}

func TestPrintInsights_Empty(t *testing.T) {
	var out bytes.Buffer
	printInsights(&out, []models.Insight{})
	if !strings.Contains(out.String(), "Nothing to report yet") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestDashboardCmd(t *testing.T) {
	pinClock(t)
	ctx, out := setupTestContext(t, ".db")

	if err := (&DoneCmd{Habit: "Morning Meditation"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&DashboardCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Today: 2024-05-20  (1/2 done)",
		"Buddha",
		"Streak overview:",
		"Achievements (",
		"Insights:",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("dashboard missing %q:\n%s", want, out.String())
		}
	}
}

func TestReportCmd(t *testing.T) {
	pinClock(t)
	ctx, out := setupTestContext(t, ".json")
	path := filepath.Join(t.TempDir(), "report.pdf")

	if err := (&ReportCmd{Out: path, Days: 7}).Run(ctx); err != nil {
		t.Fatalf("report command failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("report is not a PDF")
	}
	if !strings.Contains(out.String(), "✓ Report written to") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := (&ReportCmd{Out: path, Days: -3}).Run(ctx); err == nil {
		t.Error("expected an error for --days -3")
	}
}
