// ui/input.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"github.com/vkengine/uibridge/math"
)

type ViewportID uint64

// RootViewport is the id of the single viewport the host renders into.
const RootViewport ViewportID = 0

type ViewportInfo struct {
	NativePixelsPerPoint *float32
	MonitorSize          *[2]float32
}

// RawInput is everything the host reports for a frame.
type RawInput struct {
	ViewportID ViewportID
	Viewports  map[ViewportID]ViewportInfo
	// Logical area available to the UI; if empty, the monitor size of
	// the active viewport is used.
	ScreenRect math.Extent2D
	// Seconds since some fixed point in time; nil if unknown.
	Time   *float64
	Events []Event
}

// Event is one of PointerMoved, PointerButton, PointerGone, KeyEvent, or
// TextEvent.
type Event interface {
	isEvent()
}

type PointerMoved struct {
	Pos [2]float32
}

type MouseButton int

const (
	MouseButtonPrimary MouseButton = iota
	MouseButtonSecondary
	MouseButtonTertiary
	MouseButtonCount
)

type PointerButton struct {
	Pos       [2]float32
	Button    MouseButton
	Pressed   bool
	Modifiers Modifiers
}

type PointerGone struct{}

type Modifiers struct {
	Alt, Ctrl, Shift, Command bool
}

type Key int

const (
	KeyUnknown Key = iota
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyUpArrow
	KeyDownArrow
	KeyLeftArrow
	KeyRightArrow
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

type KeyEvent struct {
	Key       Key
	Pressed   bool
	Modifiers Modifiers
}

type TextEvent struct {
	Text string
}

func (PointerMoved) isEvent()  {}
func (PointerButton) isEvent() {}
func (PointerGone) isEvent()   {}
func (KeyEvent) isEvent()      {}
func (TextEvent) isEvent()     {}

type MouseState struct {
	Pos      [2]float32
	DeltaPos [2]float32
	// Valid is false if the pointer is not over the viewport.
	Valid    bool
	Down     [MouseButtonCount]bool
	Clicked  [MouseButtonCount]bool
	Released [MouseButtonCount]bool
}

type KeyboardState struct {
	Input string
	// A key shows up here once each time it is pressed.
	Pressed   map[Key]interface{}
	Modifiers Modifiers
}

func (k *KeyboardState) WasPressed(key Key) bool {
	_, ok := k.Pressed[key]
	return ok
}

// InputState is the processed input for the current frame.
type InputState struct {
	Mouse      MouseState
	Keyboard   KeyboardState
	ScreenRect math.Extent2D
	Time       float64
	DeltaTime  float32
}

// update processes the events in raw, carrying persistent state over
// from the previous frame.
func (in *InputState) update(raw RawInput) {
	prevPos, prevValid := in.Mouse.Pos, in.Mouse.Valid
	in.Mouse.DeltaPos = [2]float32{}
	in.Mouse.Clicked = [MouseButtonCount]bool{}
	in.Mouse.Released = [MouseButtonCount]bool{}
	in.Keyboard.Input = ""
	in.Keyboard.Pressed = make(map[Key]interface{})

	if !raw.ScreenRect.IsEmpty() {
		in.ScreenRect = raw.ScreenRect
	} else if vp, ok := raw.Viewports[raw.ViewportID]; ok && vp.MonitorSize != nil {
		in.ScreenRect = math.Extent2D{P1: *vp.MonitorSize}
	}

	if raw.Time != nil {
		if in.Time != 0 {
			in.DeltaTime = float32(*raw.Time - in.Time)
		}
		in.Time = *raw.Time
	}

	for _, ev := range raw.Events {
		switch e := ev.(type) {
		case PointerMoved:
			in.Mouse.Pos = e.Pos
			in.Mouse.Valid = true
		case PointerButton:
			in.Mouse.Pos = e.Pos
			in.Mouse.Valid = true
			if e.Button >= 0 && e.Button < MouseButtonCount {
				if e.Pressed && !in.Mouse.Down[e.Button] {
					in.Mouse.Clicked[e.Button] = true
				} else if !e.Pressed && in.Mouse.Down[e.Button] {
					in.Mouse.Released[e.Button] = true
				}
				in.Mouse.Down[e.Button] = e.Pressed
			}
			in.Keyboard.Modifiers = e.Modifiers
		case PointerGone:
			in.Mouse.Valid = false
		case KeyEvent:
			if e.Pressed {
				in.Keyboard.Pressed[e.Key] = nil
			}
			in.Keyboard.Modifiers = e.Modifiers
		case TextEvent:
			in.Keyboard.Input += e.Text
		}
	}

	if prevValid && in.Mouse.Valid {
		in.Mouse.DeltaPos = math.Sub2f(in.Mouse.Pos, prevPos)
	}
}
