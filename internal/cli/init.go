package cli

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := ctx.Tracker.Load(); err != nil {
		return err
	}
	if ctx.Tracker.UsingSamples() {
		if err := ctx.Tracker.Save(); err != nil {
			return err
		}
		ctx.println("Added sample habits to get you started.")
	}
	ctx.opened = true
	ctx.printf("Initialized streakly storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
