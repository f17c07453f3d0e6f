package cli

type SettingsCmd struct {
	List bool `help:"List current settings."`

	GraphDays     *int `help:"Days shown in the dashboard completion grid."`
	OverviewLimit *int `help:"Habits shown in the streak overview."`
	LogDays       *int `help:"Default number of days shown by 'streakly log'."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	settings := ctx.Tracker.Settings()

	if c.List {
		ctx.println("Current Settings:")
		ctx.printf("  Graph Days:     %d\n", settings.GraphDays)
		ctx.printf("  Overview Limit: %d\n", settings.OverviewLimit)
		ctx.printf("  Log Days:       %d\n", settings.LogDays)
		return nil
	}

	updated := false
	if c.GraphDays != nil {
		settings.GraphDays = *c.GraphDays
		updated = true
	}
	if c.OverviewLimit != nil {
		settings.OverviewLimit = *c.OverviewLimit
		updated = true
	}
	if c.LogDays != nil {
		settings.LogDays = *c.LogDays
		updated = true
	}

	if !updated {
		ctx.println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := ctx.Tracker.UpdateSettings(settings); err != nil {
		return err
	}
	ctx.println("Settings updated successfully.")
	return nil
}
