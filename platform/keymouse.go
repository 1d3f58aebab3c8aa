// platform/keymouse.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Button bits as passed to EventSink.HandleMouseEvent.
const (
	ButtonPrimary uint32 = 1 << iota
	ButtonSecondary
	ButtonTertiary
)

// Modifier bits as passed to EventSink.HandleKeyEvent.
const (
	ModShift uint32 = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

var glfwButtonBits = map[glfw.MouseButton]uint32{
	glfw.MouseButton1: ButtonPrimary,
	glfw.MouseButton2: ButtonSecondary,
	glfw.MouseButton3: ButtonTertiary,
}

func buttonBit(b glfw.MouseButton) (uint32, bool) {
	bit, ok := glfwButtonBits[b]
	return bit, ok
}

func modifierBits(mods glfw.ModifierKey) uint32 {
	var bits uint32
	if mods&glfw.ModShift != 0 {
		bits |= ModShift
	}
	if mods&glfw.ModControl != 0 {
		bits |= ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		bits |= ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		bits |= ModSuper
	}
	return bits
}
