package gekko

import (
	"fmt"
	"reflect"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	// framebuffer size in pixels; differs from the window size on HiDPI displays
	FramebufferWidth  int
	FramebufferHeight int
	Resized           bool

	pendingWidth, pendingHeight int
	pendingResize               bool
}

// Aspect is the framebuffer width over height, 1 when minimized.
func (s *WindowState) Aspect() float32 {
	if s.FramebufferWidth <= 0 || s.FramebufferHeight <= 0 {
		return 1
	}
	return float32(s.FramebufferWidth) / float32(s.FramebufferHeight)
}

func (s *WindowState) Minimized() bool {
	return s.FramebufferWidth <= 0 || s.FramebufferHeight <= 0
}

// PlatformWindowModule creates the single GLFW window (WindowState) shared by
// the GPU and input modules. Install is a no-op if a WindowState already exists.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Gekko Labs"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	t := reflect.TypeOf((*WindowState)(nil)).Elem()
	if app.hasResource(t) {
		return
	}

	ws, err := createWindowState(m.Width, m.Height, m.Title)
	if err != nil {
		cmd.Abort(err)
		return
	}
	app.addResources(ws)
	app.UseSystem(
		System(windowEventsSystem).
			InStage(PreUpdate),
	)
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) (*WindowState, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // wgpu owns the surface, no GL context
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	fbw, fbh := win.GetFramebufferSize()
	s := &WindowState{
		windowGlfw:        win,
		WindowWidth:       windowWidth,
		WindowHeight:      windowHeight,
		windowTitle:       windowTitle,
		FramebufferWidth:  fbw,
		FramebufferHeight: fbh,
	}
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		s.pendingWidth = width
		s.pendingHeight = height
		s.pendingResize = true
	})
	return s, nil
}

func windowEventsSystem(s *WindowState, cmd *Commands) {
	glfw.PollEvents()
	applyPendingResize(s)
	s.WindowWidth, s.WindowHeight = s.windowGlfw.GetSize()
	if s.windowGlfw.ShouldClose() {
		cmd.Exit()
	}
}

func applyPendingResize(s *WindowState) {
	s.Resized = false
	if !s.pendingResize {
		return
	}
	s.pendingResize = false
	if s.pendingWidth == s.FramebufferWidth && s.pendingHeight == s.FramebufferHeight {
		return
	}
	s.FramebufferWidth = s.pendingWidth
	s.FramebufferHeight = s.pendingHeight
	s.Resized = true
}

// Close destroys the window and terminates GLFW.
func (s *WindowState) Close() {
	if s.windowGlfw != nil {
		s.windowGlfw.Destroy()
		s.windowGlfw = nil
	}
	glfw.Terminate()
}
