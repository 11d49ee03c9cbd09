package gekko

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemFn) *Commands {
	cmd.app.UseSystem(System(system))
	return cmd
}

// Exit stops the run loop after the current tick.
func (cmd *Commands) Exit() {
	cmd.app.requestExit()
}

// Abort records a startup failure; Build reports it once the current module returns.
func (cmd *Commands) Abort(err error) {
	cmd.app.abort(err)
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
