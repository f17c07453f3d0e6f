package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/overview"
	"github.com/julianstephens/streakly/internal/tracker"
)

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	quoteStyle   = lipgloss.NewStyle().
			Italic(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	tipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

const (
	maxNameWidth    = 24
	insightsWidth   = 48
	narrowViewWidth = 90
)

type Model struct {
	dashboard tracker.Dashboard
	width     int
	height    int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

func (m *Model) SetDashboard(d tracker.Dashboard) {
	m.dashboard = d
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	d := m.dashboard
	left := lipgloss.JoinVertical(lipgloss.Left,
		m.viewQuote(d.Quote),
		"",
		sectionStyle.Render(fmt.Sprintf("Today %s  %d/%d done", d.Today, d.CompletedToday, len(d.Active))),
		viewGraph(d.Active, d.GraphDays),
		"",
		sectionStyle.Render("Streak overview"),
		m.viewOverview(d.Overview),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		sectionStyle.Render("Achievements"),
		viewAchievements(d.Unlocked, d.Locked),
		"",
		sectionStyle.Render("Insights"),
		viewInsights(d.Insights, insightsWidth),
	)

	if m.width > 0 && m.width < narrowViewWidth {
		return lipgloss.JoinVertical(lipgloss.Left, left, "", right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
}

func (m Model) viewQuote(q models.Quote) string {
	width := 50
	if m.width > 0 && m.width < 60 {
		width = max(m.width-6, 20)
	}
	return quoteStyle.Width(width).Render(fmt.Sprintf("%q\n- %s", q.Text, q.Author))
}

func (m Model) viewOverview(bars []overview.Bar) string {
	if len(bars) == 0 {
		return mutedStyle.Render("No active habits")
	}
	names := 0
	for _, b := range bars {
		names = max(names, min(ansi.StringWidth(b.Name), maxNameWidth))
	}
	width := constants.OverviewBarWidth
	var lines []string
	for _, b := range bars {
		filled := int(math.Round(b.Fraction * float64(width)))
		bar := barStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
		lines = append(lines, fmt.Sprintf("%s %s %s", padName(b.Name, names), bar, b.Label()))
	}
	return strings.Join(lines, "\n")
}

func viewGraph(active []models.Habit, days int) string {
	if len(active) == 0 {
		return mutedStyle.Render("No active habits")
	}
	names := 0
	for _, h := range active {
		names = max(names, min(ansi.StringWidth(h.Name), maxNameWidth))
	}

	var lines []string
	var header strings.Builder
	for _, c := range overview.Graph(active[0], days) {
		header.WriteString(c.Weekday[:1] + " ")
	}
	lines = append(lines, mutedStyle.Render(padName("", names)+" "+header.String()))
	for _, h := range active {
		var row strings.Builder
		for _, c := range overview.Graph(h, days) {
			if c.Done {
				row.WriteString(successStyle.Render("■") + " ")
			} else {
				row.WriteString(mutedStyle.Render("□") + " ")
			}
		}
		lines = append(lines, padName(h.Name, names)+" "+row.String())
	}
	return strings.Join(lines, "\n")
}

func viewAchievements(unlocked, locked []models.Achievement) string {
	var lines []string
	for _, a := range unlocked {
		lines = append(lines, fmt.Sprintf("%s %s", a.Icon, a.Title))
	}
	for _, a := range locked {
		lines = append(lines, mutedStyle.Render("🔒 "+a.Title+" - "+a.Description))
	}
	return strings.Join(lines, "\n")
}

// padName fits name into width terminal cells, truncating long names.
func padName(name string, width int) string {
	name = ansi.Truncate(name, width, "…")
	return name + strings.Repeat(" ", max(width-ansi.StringWidth(name), 0))
}

func viewInsights(insights []models.Insight, width int) string {
	if len(insights) == 0 {
		return mutedStyle.Render("Nothing to report yet")
	}
	var lines []string
	for _, in := range insights {
		switch in.Type {
		case models.InsightSuccess:
			lines = append(lines, successStyle.Render(ansi.Wrap("✓ "+in.Message, width, "")))
		case models.InsightWarning:
			lines = append(lines, warningStyle.Render(ansi.Wrap("⚠ "+in.Message, width, "")))
		default:
			lines = append(lines, tipStyle.Render(ansi.Wrap("ℹ "+in.Message, width, "")))
		}
	}
	return strings.Join(lines, "\n")
}
