// Package report renders the dashboard as a printable PDF.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/overview"
	"github.com/julianstephens/streakly/internal/tracker"
)

const (
	barMaxWidth = 100.0 // mm
	lineHeight  = 7.0
)

// Render writes the PDF for d to w. graphDays controls the width of the
// per-habit completion grid.
func Render(w io.Writer, d tracker.Dashboard, graphDays int) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("%s report %s", constants.AppName, d.Today), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Habit Report: %s", d.Today)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "I", 11)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf("\"%s\" - %s", d.Quote.Text, d.Quote.Author)), "", "", false)
	pdf.Ln(4)

	heading(pdf, "Today")
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, lineHeight, fmt.Sprintf("%d of %d active habits completed", d.CompletedToday, len(d.Active)))
	pdf.Ln(lineHeight + 3)

	heading(pdf, "Streak Overview")
	pdf.SetFont("Arial", "", 11)
	if len(d.Overview) == 0 {
		pdf.Cell(0, lineHeight, "No active habits.")
		pdf.Ln(lineHeight)
	}
	for _, b := range d.Overview {
		drawBar(pdf, tr, b)
	}
	pdf.Ln(3)

	heading(pdf, "Achievements")
	pdf.SetFont("Arial", "", 11)
	for _, a := range d.Unlocked {
		since := ""
		if a.UnlockedAt != nil {
			since = " (since " + a.UnlockedAt.Format(constants.DateFormat) + ")"
		}
		pdf.Cell(0, lineHeight, tr(fmt.Sprintf("[x] %s - %s%s", a.Title, a.Description, since)))
		pdf.Ln(lineHeight - 1)
	}
	for _, a := range d.Locked {
		pdf.Cell(0, lineHeight, tr(fmt.Sprintf("[ ] %s - %s", a.Title, a.Description)))
		pdf.Ln(lineHeight - 1)
	}
	pdf.Ln(4)

	heading(pdf, "Insights")
	pdf.SetFont("Arial", "", 11)
	if len(d.Insights) == 0 {
		pdf.Cell(0, lineHeight, "Nothing to report.")
		pdf.Ln(lineHeight)
	}
	for _, in := range d.Insights {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s: %s", strings.ToUpper(string(in.Type)), in.Message)), "", "", false)
	}
	pdf.Ln(4)

	heading(pdf, fmt.Sprintf("Last %d Days", graphDays))
	pdf.SetFont("Courier", "", 10)
	for _, h := range d.Active {
		cells := overview.Graph(h, graphDays)
		var sb strings.Builder
		for _, c := range cells {
			if c.Done {
				sb.WriteString("#")
			} else {
				sb.WriteString(".")
			}
		}
		pdf.Cell(0, 6, tr(fmt.Sprintf("%-24.24s %s  %s", h.Name, sb.String(), overview.DaysLabel(h.Streak))))
		pdf.Ln(5)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build PDF: %w", err)
	}
	return pdf.Output(w)
}

// WriteFile renders the report to path.
func WriteFile(path string, d tracker.Dashboard, graphDays int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := Render(f, d, graphDays); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func heading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, title)
	pdf.Ln(9)
}

func drawBar(pdf *fpdf.Fpdf, tr func(string) string, b overview.Bar) {
	x, y := pdf.GetXY()
	pdf.CellFormat(50, lineHeight, tr(truncate(b.Name, 24)), "", 0, "L", false, 0, "")

	pdf.SetFillColor(230, 230, 230)
	pdf.Rect(x+52, y+1.5, barMaxWidth, lineHeight-3, "F")
	if b.Fraction > 0 {
		pdf.SetFillColor(242, 140, 40)
		pdf.Rect(x+52, y+1.5, barMaxWidth*b.Fraction, lineHeight-3, "F")
	}
	pdf.SetXY(x+52+barMaxWidth+3, y)
	pdf.CellFormat(0, lineHeight, b.Label(), "", 1, "L", false, 0, "")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
