// bridge/events.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bridge

// HandleMouseEvent records the pointer position for the next frame.
// Button state is accepted but not yet forwarded to the UI.
func (e *Engine) HandleMouseEvent(x, y float32, buttons uint32, pressed bool) {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	s := e.state
	if s == nil {
		return
	}
	s.pointer = &[2]float32{x, y}
	if buttons != 0 {
		e.lg.Debug("mouse buttons", "buttons", buttons, "pressed", pressed)
	}
}

// HandleKeyEvent accepts keyboard input; keys are not yet forwarded to
// the UI.
func (e *Engine) HandleKeyEvent(key uint32, pressed bool, modifiers uint32) {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	if e.state != nil {
		e.lg.Debug("key", "key", key, "pressed", pressed, "modifiers", modifiers)
	}
}

// HandleEvent is retained for older hosts and does nothing.
//
// Deprecated: use HandleMouseEvent and HandleKeyEvent.
func (e *Engine) HandleEvent(kind uint32, x, y float32) {}
