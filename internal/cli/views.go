package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/overview"
	"github.com/julianstephens/streakly/internal/tracker"
)

type OverviewCmd struct{}

func (c *OverviewCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	printOverview(ctx.Out, ctx.Tracker.Dashboard().Overview, terminalWidth())
	return nil
}

type LogCmd struct {
	Habit string `arg:"" optional:"" help:"Only show this habit (name or ID)."`
	Days  int    `short:"d" help:"Number of days to show (defaults to the log days setting)."`
}

func (c *LogCmd) Run(ctx *Context) error {
	if c.Days < 0 {
		return fmt.Errorf("--days must be at least 1")
	}
	if err := ctx.Open(); err != nil {
		return err
	}
	if c.Days == 0 {
		c.Days = ctx.Tracker.Settings().LogDays
	}

	habits := ctx.Tracker.Active()
	if c.Habit != "" {
		h, err := ctx.Tracker.Find(c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	}
	if len(habits) == 0 {
		ctx.println("No habits to show")
		return nil
	}

	width := nameWidth(habits)
	var rows [][]overview.Cell
	for _, h := range habits {
		cells, err := ctx.Tracker.Graph(h.ID, c.Days)
		if err != nil {
			return err
		}
		rows = append(rows, cells)
	}

	first := rows[0]
	ctx.printf("Last %d days (%s to %s)\n\n", c.Days, first[0].Day, first[len(first)-1].Day)
	var header strings.Builder
	for _, cell := range first {
		header.WriteString(cell.Weekday[:1])
		header.WriteByte(' ')
	}
	ctx.printf("  %-*s  %s\n", width, "", strings.TrimRight(header.String(), " "))
	for i, h := range habits {
		var line strings.Builder
		for _, cell := range rows[i] {
			if cell.Done {
				line.WriteString("■ ")
			} else {
				line.WriteString("· ")
			}
		}
		ctx.printf("  %-*s  %s  %s\n", width, h.Name, strings.TrimRight(line.String(), " "), overview.DaysLabel(h.Streak))
	}
	return nil
}

type InsightsCmd struct{}

func (c *InsightsCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	printInsights(ctx.Out, ctx.Tracker.Dashboard().Insights)
	return nil
}

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	d := ctx.Tracker.Dashboard()
	printAchievements(ctx.Out, d.Unlocked, d.Locked)
	return nil
}

type QuoteCmd struct {
	Category string `short:"c" help:"Pick a quote for this category instead of your top streak's."`
}

func (c *QuoteCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	printQuote(ctx.Out, ctx.Tracker.Quote(models.Category(c.Category)))
	return nil
}

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	printDashboard(ctx.Out, ctx.Tracker.Dashboard(), terminalWidth())
	return nil
}

func printDashboard(w io.Writer, d tracker.Dashboard, termWidth int) {
	fmt.Fprintf(w, "Today: %s  (%d/%d done)\n\n", d.Today, d.CompletedToday, len(d.Active))
	printQuote(w, d.Quote)
	fmt.Fprintln(w)
	printOverview(w, d.Overview, termWidth)
	fmt.Fprintln(w)
	printAchievements(w, d.Unlocked, d.Locked)
	fmt.Fprintln(w)
	printInsights(w, d.Insights)
}

func printQuote(w io.Writer, q models.Quote) {
	fmt.Fprintf(w, "\"%s\"\n  - %s\n", q.Text, q.Author)
}

func printOverview(w io.Writer, bars []overview.Bar, termWidth int) {
	fmt.Fprintln(w, "Streak overview:")
	if len(bars) == 0 {
		fmt.Fprintln(w, "  No active habits")
		return
	}

	names := 0
	for _, b := range bars {
		if n := len([]rune(b.Name)); n > names {
			names = n
		}
	}
	// two-space indent, gaps and the "NN days" label
	barWidth := min(constants.OverviewBarWidth, termWidth-names-16)
	barWidth = max(barWidth, 10)

	for _, b := range bars {
		filled := int(math.Round(b.Fraction * float64(barWidth)))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		fmt.Fprintf(w, "  %-*s  %s  %s\n", names, b.Name, bar, b.Label())
	}
}

func printAchievements(w io.Writer, unlocked, locked []models.Achievement) {
	fmt.Fprintf(w, "Achievements (%d/%d):\n", len(unlocked), len(unlocked)+len(locked))
	for _, a := range unlocked {
		since := ""
		if a.UnlockedAt != nil {
			since = fmt.Sprintf(" (since %s)", a.UnlockedAt.Format(constants.DateFormat))
		}
		fmt.Fprintf(w, "  %s %s - %s%s\n", a.Icon, a.Title, a.Description, since)
	}
	for _, a := range locked {
		fmt.Fprintf(w, "  🔒 %s - %s\n", a.Title, a.Description)
	}
}

func printInsights(w io.Writer, insights []models.Insight) {
	fmt.Fprintln(w, "Insights:")
	if len(insights) == 0 {
		fmt.Fprintln(w, "  Nothing to report yet. Keep going!")
		return
	}
	for _, in := range insights {
		fmt.Fprintf(w, "  %s %s\n", insightIcon(in.Type), in.Message)
	}
}

func insightIcon(t models.InsightType) string {
	switch t {
	case models.InsightSuccess:
		return "✓"
	case models.InsightWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}
