package cli

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/report"
)

type ReportCmd struct {
	Out  string `short:"o" type:"path" default:"streakly-report.pdf" help:"Where to write the PDF."`
	Days int    `short:"d" help:"Days shown in the completion grid (defaults to the graph days setting)."`
}

func (c *ReportCmd) Run(ctx *Context) error {
	if c.Days < 0 {
		return fmt.Errorf("--days must be at least 1")
	}
	if err := ctx.Open(); err != nil {
		return err
	}
	if c.Days == 0 {
		c.Days = ctx.Tracker.Settings().GraphDays
	}
	if err := report.WriteFile(c.Out, ctx.Tracker.Dashboard(), c.Days); err != nil {
		return err
	}
	ctx.printf("✓ Report written to %s\n", c.Out)
	return nil
}
