package cli

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/overview"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/utils"
)

type AddCmd struct {
	Name     string `arg:"" help:"Name of the habit."`
	Category string `short:"c" default:"productivity" enum:"health,productivity,mindfulness,fitness,creativity,learning,social,finance,selfcare,nutrition" help:"Category (${enum})."`
	Time     string `short:"t" default:"anytime" enum:"morning,afternoon,evening,anytime" help:"Preferred time of day (${enum})."`
}

func (c *AddCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	h, err := ctx.Tracker.Add(c.Name, models.Category(c.Category), models.TimeOfDay(c.Time))
	if err != nil {
		return err
	}
	ctx.printf("✓ Added habit: %s (%s, %s)\n", h.Name, h.Category, h.TimeOfDay)
	return nil
}

type ListCmd struct {
	Archived bool `help:"Show archived habits instead of active ones."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}

	habits := ctx.Tracker.Active()
	title := "Habits"
	if c.Archived {
		habits = ctx.Tracker.Archived()
		title = "Archived habits"
	}
	if len(habits) == 0 {
		if c.Archived {
			ctx.println("No archived habits")
		} else {
			ctx.println("No habits yet. Add one with 'streakly add <name>'.")
		}
		return nil
	}

	today := utils.TodayKey()
	width := nameWidth(habits)
	ctx.printf("%s:\n", title)
	for _, h := range habits {
		ctx.printf("  %s %-*s  %-12s  %-9s  %s\n",
			checkbox(h.CompletedOn(today)), width, h.Name, h.Category, h.TimeOfDay, overview.DaysLabel(h.Streak))
	}
	if ctx.Tracker.UsingSamples() {
		ctx.println("\nShowing sample habits; they are saved on your first change.")
	}
	return nil
}

type DoneCmd struct {
	Habit string `arg:"" help:"Name or ID of the habit."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	h, err := ctx.Tracker.Toggle(c.Habit)
	if err != nil {
		return err
	}
	if h.CompletedOn(utils.TodayKey()) {
		ctx.printf("✓ %s done for today (streak: %s)\n", h.Name, overview.DaysLabel(h.Streak))
	} else {
		ctx.printf("%s unmarked for today (streak: %s)\n", h.Name, overview.DaysLabel(h.Streak))
	}
	return nil
}

type EditCmd struct {
	Habit    string `arg:"" help:"Name or ID of the habit."`
	Name     string `help:"New name."`
	Category string `short:"c" help:"New category."`
	Time     string `short:"t" help:"New preferred time of day."`
}

func (c *EditCmd) Run(ctx *Context) error {
	var u tracker.Update
	if c.Name != "" {
		u.Name = &c.Name
	}
	if c.Category != "" {
		cat := models.Category(c.Category)
		u.Category = &cat
	}
	if c.Time != "" {
		tod := models.TimeOfDay(c.Time)
		u.TimeOfDay = &tod
	}
	if u.Name == nil && u.Category == nil && u.TimeOfDay == nil {
		return fmt.Errorf("nothing to change, pass --name, --category or --time")
	}

	if err := ctx.Open(); err != nil {
		return err
	}
	h, err := ctx.Tracker.Edit(c.Habit, u)
	if err != nil {
		return err
	}
	ctx.printf("✓ Updated habit: %s (%s, %s)\n", h.Name, h.Category, h.TimeOfDay)
	return nil
}

type ArchiveCmd struct {
	Habit   string `arg:"" help:"Name or ID of the habit."`
	Restore bool   `help:"Move the habit back to the active list."`
}

func (c *ArchiveCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	h, err := ctx.Tracker.SetArchived(c.Habit, !c.Restore)
	if err != nil {
		return err
	}
	if h.Archived {
		ctx.printf("✓ Archived habit: %s\n", h.Name)
	} else {
		ctx.printf("✓ Restored habit: %s\n", h.Name)
	}
	return nil
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func nameWidth(habits []models.Habit) int {
	w := 0
	for _, h := range habits {
		if n := len([]rune(h.Name)); n > w {
			w = n
		}
	}
	return w
}
