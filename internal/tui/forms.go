package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakly/internal/models"
)

// newHabitForm builds the add/edit form bound to fm.
func newHabitForm(title string, fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Prompt("Name: ").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(huh.NewOptions(models.Categories()...)...).
				Value(&fm.Category),
			huh.NewSelect[models.TimeOfDay]().
				Title("Time of day").
				Options(huh.NewOptions(models.TimesOfDay()...)...).
				Value(&fm.TimeOfDay),
		),
	).WithTheme(huh.ThemeDracula())
}
