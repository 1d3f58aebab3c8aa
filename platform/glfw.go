// platform/glfw.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package platform provides a GLFW window for hosting the UI bridge
// outside of a Vulkan engine. Window events are forwarded to an
// EventSink in the same form a native host would deliver them.
package platform

import (
	"runtime"

	"github.com/vkengine/uibridge/log"
	"github.com/vkengine/uibridge/ui"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// EventSink receives input events; *bridge.Engine implements it.
type EventSink interface {
	HandleMouseEvent(x, y float32, buttons uint32, pressed bool)
	HandleKeyEvent(key uint32, pressed bool, modifiers uint32)
}

type Config struct {
	InitialWindowSize     [2]int
	InitialWindowPosition [2]int
	Title                 string

	EnableMSAA bool
}

type Platform struct {
	window *glfw.Window
	config *Config
	sink   EventSink
	lg     *log.Logger

	buttons                uint32
	anyEvents              bool
	lastMouseX, lastMouseY float64
	multisample            bool
	windowTitle            string
	cursors                map[ui.CursorIcon]*glfw.Cursor
	currentCursor          ui.CursorIcon
	inputCharacters        string
}

// New opens a window with an OpenGL 2.1 context made current on the
// calling thread.
func New(config *Config, sink EventSink, lg *log.Logger) (*Platform, error) {
	lg.Info("Starting GLFW initialization")
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize glfw")
	}
	lg.Infof("GLFW: %s", glfw.GetVersionString())

	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	vm := glfw.GetPrimaryMonitor().GetVideoMode()
	if config.InitialWindowSize[0] == 0 || config.InitialWindowSize[1] == 0 {
		if runtime.GOOS == "windows" {
			config.InitialWindowSize = [2]int{vm.Width - 200, vm.Height - 300}
		} else {
			config.InitialWindowSize = [2]int{vm.Width - 150, vm.Height - 150}
		}
	}
	// If window position is out of bounds, create the window at (100, 100)
	if config.InitialWindowPosition[0] < 0 || config.InitialWindowPosition[1] < 0 ||
		config.InitialWindowPosition[0] > vm.Width || config.InitialWindowPosition[1] > vm.Height {
		config.InitialWindowPosition = [2]int{100, 100}
	}
	if config.Title == "" {
		config.Title = "uibridge"
	}

	// Start with an invisible window so that we can position it first
	glfw.WindowHint(glfw.Visible, 0)
	if config.EnableMSAA {
		glfw.WindowHint(glfw.Samples, 4)
	}
	window, err := glfw.CreateWindow(config.InitialWindowSize[0], config.InitialWindowSize[1], config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "failed to create window")
	}
	window.SetPos(config.InitialWindowPosition[0], config.InitialWindowPosition[1])
	window.Show()
	window.MakeContextCurrent()

	p := &Platform{
		window:      window,
		config:      config,
		sink:        sink,
		lg:          lg,
		multisample: config.EnableMSAA,
		windowTitle: config.Title,
		cursors: map[ui.CursorIcon]*glfw.Cursor{
			ui.CursorDefault:      glfw.CreateStandardCursor(glfw.ArrowCursor),
			ui.CursorPointingHand: glfw.CreateStandardCursor(glfw.HandCursor),
			ui.CursorText:         glfw.CreateStandardCursor(glfw.IBeamCursor),
		},
	}
	p.installCallbacks()
	p.EnableVSync(true)

	lg.Info("Finished GLFW initialization")
	return p, nil
}

func (p *Platform) installCallbacks() {
	p.window.SetCursorPosCallback(p.cursorMoved)
	p.window.SetMouseButtonCallback(p.mouseButtonChange)
	p.window.SetKeyCallback(p.keyChange)
	p.window.SetCharCallback(p.charChange)
}

func (p *Platform) cursorMoved(window *glfw.Window, x, y float64) {
	p.anyEvents = true
	p.sink.HandleMouseEvent(float32(x), float32(y), p.buttons, p.buttons != 0)
}

func (p *Platform) mouseButtonChange(window *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	bit, ok := buttonBit(button)
	if !ok {
		return
	}
	p.anyEvents = true

	pressed := action == glfw.Press
	if pressed {
		p.buttons |= bit
	} else {
		p.buttons &^= bit
	}
	x, y := window.GetCursorPos()
	p.sink.HandleMouseEvent(float32(x), float32(y), bit, pressed)
}

func (p *Platform) keyChange(window *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	p.anyEvents = true
	if key == glfw.KeyUnknown {
		return
	}
	// Repeats are reported as presses.
	p.sink.HandleKeyEvent(uint32(key), action != glfw.Release, modifierBits(mods))
}

func (p *Platform) charChange(window *glfw.Window, char rune) {
	p.anyEvents = true
	p.inputCharacters += string(char)
}

// ProcessEvents polls for window events and returns true if there were
// any.
func (p *Platform) ProcessEvents() bool {
	p.inputCharacters = ""
	p.anyEvents = false

	glfw.PollEvents()

	if p.anyEvents {
		return true
	}
	x, y := p.window.GetCursorPos()
	if x != p.lastMouseX || y != p.lastMouseY {
		p.lastMouseX, p.lastMouseY = x, y
		return true
	}
	return false
}

// InputCharacters returns the text entered since the last call to
// ProcessEvents.
func (p *Platform) InputCharacters() string {
	return p.inputCharacters
}

// NewFrame applies per-frame window state: the cursor the UI last asked
// for and multisampling.
func (p *Platform) NewFrame(out *ui.Output) {
	if p.multisample {
		gl.Enable(gl.MULTISAMPLE)
	}
	if out != nil {
		p.SetCursor(out.Platform.Cursor)
		if out.Platform.CopiedText != "" {
			p.window.SetClipboardString(out.Platform.CopiedText)
		}
	}
}

func (p *Platform) SetCursor(c ui.CursorIcon) {
	if c == p.currentCursor {
		return
	}
	cursor, ok := p.cursors[c]
	if !ok {
		cursor = p.cursors[ui.CursorDefault]
	}
	p.window.SetCursor(cursor)
	p.currentCursor = c
}

func (p *Platform) PostRender() {
	p.window.SwapBuffers()
}

func (p *Platform) EnableVSync(sync bool) {
	if sync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
}

func (p *Platform) ShouldStop() bool {
	return p.window.ShouldClose()
}

func (p *Platform) SetWindowTitle(text string) {
	if text != p.windowTitle {
		p.window.SetTitle(text)
		p.windowTitle = text
	}
}

func (p *Platform) DisplaySize() [2]float32 {
	w, h := p.window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

func (p *Platform) FramebufferSize() [2]float32 {
	w, h := p.window.GetFramebufferSize()
	return [2]float32{float32(w), float32(h)}
}

// DPIScale returns the ratio of framebuffer pixels to window
// coordinates.
func (p *Platform) DPIScale() float32 {
	if runtime.GOOS == "windows" {
		sx, sy := p.window.GetContentScale()
		return float32(int((sx + sy) / 2))
	}
	if ds := p.DisplaySize(); ds[0] > 0 {
		return p.FramebufferSize()[0] / ds[0]
	}
	return 1
}

// Time returns seconds since GLFW was initialized.
func (p *Platform) Time() float64 {
	return glfw.GetTime()
}

func (p *Platform) Dispose() {
	for _, c := range p.cursors {
		c.Destroy()
	}
	p.window.Destroy()
	glfw.Terminate()
}
