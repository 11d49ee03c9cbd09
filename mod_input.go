package gekko

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyA int = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyMinus
	KeyEqual
	KeyKPPlus
	KeyKPMinus
	KeyShift
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle

	keyCount
)

// Click is a mouse press in framebuffer pixels, origin top-left.
type Click struct {
	X, Y   float64
	Button int
	Shift  bool
}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY float64

	// drained by the lab that consumes them
	Clicks []Click

	Width, Height int

	callbacksSet bool
	pending      []Click
}

// ShiftHeld reports either shift key.
func (input *Input) ShiftHeld() bool {
	return input.Pressed[KeyShift]
}

// DrainClicks returns and clears the clicks gathered this frame.
func (input *Input) DrainClicks() []Click {
	clicks := input.Clicks
	input.Clicks = nil
	return clicks
}

// PixelToNDC maps a cursor position to clip space with y up.
func PixelToNDC(px, py float64, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	x := 2*px/float64(width) - 1
	y := 2*(float64(height)-py)/float64(height) - 1
	return float32(x), float32(y)
}

// InputModule tracks key and mouse state; Escape requests exit unless
// KeepEscape is set.
type InputModule struct {
	KeepEscape bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
	if !mod.KeepEscape {
		app.UseSystem(
			System(escapeExitSystem).
				InStage(Update),
		)
	}
}

func inputSystem(s *WindowState, input *Input) {
	if !input.callbacksSet {
		// registered once; GLFW replaces the previous callback on each call
		s.windowGlfw.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
			if action != glfw.Press {
				return
			}
			btn, ok := glfwToMouse[button]
			if !ok {
				return
			}
			x, y := w.GetCursorPos()
			input.pending = append(input.pending, Click{
				X:      x * framebufferScale(w),
				Y:      y * framebufferScale(w),
				Button: btn,
				Shift:  mods&glfw.ModShift != 0,
			})
		})
		input.callbacksSet = true
	}

	for key, glfwKey := range keyToGlfw {
		pressed := glfw.Press == s.windowGlfw.GetKey(glfwKey)
		if key == KeyShift {
			pressed = pressed || glfw.Press == s.windowGlfw.GetKey(glfw.KeyRightShift)
		}
		updateKey(input, key, pressed)
	}
	for btn, glfwBtn := range mouseToGlfw {
		updateKey(input, btn, glfw.Press == s.windowGlfw.GetMouseButton(glfwBtn))
	}

	mx, my := s.windowGlfw.GetCursorPos()
	scale := framebufferScale(s.windowGlfw)
	input.MouseX = mx * scale
	input.MouseY = my * scale
	input.Width, input.Height = s.FramebufferWidth, s.FramebufferHeight

	input.Clicks = append(input.Clicks, input.pending...)
	input.pending = input.pending[:0]
}

func updateKey(input *Input, key int, pressed bool) {
	input.JustPressed[key] = pressed && !input.Pressed[key]
	input.JustReleased[key] = !pressed && input.Pressed[key]
	input.Pressed[key] = pressed
}

// framebufferScale converts window coordinates into framebuffer pixels.
func framebufferScale(w *glfw.Window) float64 {
	ww, _ := w.GetSize()
	fw, _ := w.GetFramebufferSize()
	if ww <= 0 {
		return 1
	}
	return float64(fw) / float64(ww)
}

func escapeExitSystem(input *Input, cmd *Commands) {
	if input.JustPressed[KeyEscape] {
		cmd.Exit()
	}
}

var mouseToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}

var glfwToMouse = map[glfw.MouseButton]int{
	glfw.MouseButtonLeft:   MouseButtonLeft,
	glfw.MouseButtonRight:  MouseButtonRight,
	glfw.MouseButtonMiddle: MouseButtonMiddle,
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:         glfw.KeyA,
	KeyB:         glfw.KeyB,
	KeyC:         glfw.KeyC,
	KeyD:         glfw.KeyD,
	KeyE:         glfw.KeyE,
	KeyF:         glfw.KeyF,
	KeyG:         glfw.KeyG,
	KeyH:         glfw.KeyH,
	KeyI:         glfw.KeyI,
	KeyJ:         glfw.KeyJ,
	KeyK:         glfw.KeyK,
	KeyL:         glfw.KeyL,
	KeyM:         glfw.KeyM,
	KeyN:         glfw.KeyN,
	KeyO:         glfw.KeyO,
	KeyP:         glfw.KeyP,
	KeyQ:         glfw.KeyQ,
	KeyR:         glfw.KeyR,
	KeyS:         glfw.KeyS,
	KeyT:         glfw.KeyT,
	KeyU:         glfw.KeyU,
	KeyV:         glfw.KeyV,
	KeyW:         glfw.KeyW,
	KeyX:         glfw.KeyX,
	KeyY:         glfw.KeyY,
	KeyZ:         glfw.KeyZ,
	Key0:         glfw.Key0,
	Key1:         glfw.Key1,
	Key2:         glfw.Key2,
	Key3:         glfw.Key3,
	Key4:         glfw.Key4,
	Key5:         glfw.Key5,
	Key6:         glfw.Key6,
	Key7:         glfw.Key7,
	Key8:         glfw.Key8,
	Key9:         glfw.Key9,
	KeySpace:     glfw.KeySpace,
	KeyEnter:     glfw.KeyEnter,
	KeyEscape:    glfw.KeyEscape,
	KeyBackspace: glfw.KeyBackspace,
	KeyRight:     glfw.KeyRight,
	KeyLeft:      glfw.KeyLeft,
	KeyDown:      glfw.KeyDown,
	KeyUp:        glfw.KeyUp,
	KeyMinus:     glfw.KeyMinus,
	KeyEqual:     glfw.KeyEqual,
	KeyKPPlus:    glfw.KeyKPAdd,
	KeyKPMinus:   glfw.KeyKPSubtract,
	KeyShift:     glfw.KeyLeftShift,
}
