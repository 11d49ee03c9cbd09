// Command labs opens a window and runs one graphics exercise.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	gekko "github.com/gekko3d/gekko-labs"
	"github.com/gekko3d/gekko-labs/labs"
)

func init() {
	// GLFW must be driven from the main thread
	runtime.LockOSThread()
}

func main() {
	var (
		labName    = flag.String("lab", "showcase", "lab to run, see -list")
		configPath = flag.String("config", "labs.yaml", "YAML config file; missing is fine")
		assetsDir  = flag.String("assets", "", "asset directory, overrides assets_dir")
		debug      = flag.Bool("debug", false, "log at debug level, overrides log_level")
		list       = flag.Bool("list", false, "list labs and exit")
	)
	flag.Parse()

	if *list {
		for _, name := range labs.Names() {
			lab, _ := labs.Lookup(name)
			fmt.Printf("%-18s %s\n", name, lab.Description)
		}
		return
	}

	if err := run(*labName, *configPath, *assetsDir, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "labs: %v\n", err)
		os.Exit(1)
	}
}

func run(labName, configPath, assetsDir string, debug bool) error {
	lab, ok := labs.Lookup(labName)
	if !ok {
		return fmt.Errorf("unknown lab %q (have %s)", labName, strings.Join(labs.Names(), ", "))
	}

	cfg, err := gekko.LoadConfig(configPath, configPath == "labs.yaml")
	if err != nil {
		return err
	}
	if assetsDir != "" {
		cfg.AssetsDir = assetsDir
	}
	if debug {
		cfg.LogLevel = gekko.LogDebug
	}

	app, err := gekko.NewAppBuilder().
		UseModule(
			gekko.LoggingModule{Prefix: lab.Name, Level: cfg.LogLevel},
			gekko.TimeModule{},
			gekko.NewPlatformWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title+" - "+lab.Name),
			gekko.GpuModule{},
			gekko.InputModule{},
			gekko.AssetServerModule{Root: cfg.AssetsDir},
			configModule{cfg},
			gekko.HudModule{Title: lab.Name + ": " + lab.Description},
			lab.New(cfg),
		).
		Build()
	defer shutdown(app)
	if err != nil {
		app.Logger().Errorf("%v", err)
		return err
	}

	app.Run()
	return nil
}

// configModule publishes the loaded config as a resource.
type configModule struct {
	cfg gekko.Config
}

func (m configModule) Install(app *gekko.App, cmd *gekko.Commands) {
	cfg := m.cfg
	cmd.AddResources(&cfg)
}

func shutdown(app *gekko.App) {
	if app == nil {
		return
	}
	if gpu, ok := gekko.Resource[gekko.GpuState](app); ok {
		gpu.Release()
	}
	if window, ok := gekko.Resource[gekko.WindowState](app); ok {
		window.Close()
	}
}
