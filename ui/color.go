// ui/color.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"github.com/vkengine/uibridge/math"
)

// Color32 is an 8-bit per channel, non-premultiplied RGBA color.
type Color32 [4]uint8

var (
	Transparent = Color32{0, 0, 0, 0}
	Black       = Color32{0, 0, 0, 255}
	White       = Color32{255, 255, 255, 255}
	Gray        = Color32{160, 160, 160, 255}
	DarkGray    = Color32{96, 96, 96, 255}
	LightGray   = Color32{220, 220, 220, 255}
	Red         = Color32{255, 0, 0, 255}
	Green       = Color32{0, 255, 0, 255}
	Blue        = Color32{0, 0, 255, 255}
)

func RGB(r, g, b uint8) Color32 {
	return Color32{r, g, b, 255}
}

func RGBA(r, g, b, a uint8) Color32 {
	return Color32{r, g, b, a}
}

// ColorFromHex converts a packed integer color value to a Color32 where
// the low 8 bits give blue, the next 8 give green, and then the next 8
// give red.
func ColorFromHex(c int) Color32 {
	return Color32{uint8((c >> 16) & 255), uint8((c >> 8) & 255), uint8(c & 255), 255}
}

func (c Color32) R() uint8 { return c[0] }
func (c Color32) G() uint8 { return c[1] }
func (c Color32) B() uint8 { return c[2] }
func (c Color32) A() uint8 { return c[3] }

func (c Color32) IsTransparent() bool { return c[3] == 0 }

// Packed returns the color as a 32-bit value with red in the low byte,
// then green, blue, and alpha in the high byte.
func (c Color32) Packed() uint32 {
	return uint32(c[3])<<24 | uint32(c[2])<<16 | uint32(c[1])<<8 | uint32(c[0])
}

// UnpackColor is the inverse of Color32.Packed.
func UnpackColor(v uint32) Color32 {
	return Color32{uint8(v), uint8(v >> 8), uint8(v >> 16), uint8(v >> 24)}
}

// MultiplyAlpha returns the color with its alpha scaled by f in [0,1].
func (c Color32) MultiplyAlpha(f float32) Color32 {
	c[3] = uint8(math.Clamp(float32(c[3])*f+0.5, 0, 255))
	return c
}

// LerpColor linearly interpolates x of the way between a and b.
func LerpColor(x float32, a, b Color32) Color32 {
	var c Color32
	for i := range c {
		c[i] = uint8(math.Clamp(math.Lerp(x, float32(a[i]), float32(b[i]))+0.5, 0, 255))
	}
	return c
}

// Stroke describes the width and color of outlines and lines.
type Stroke struct {
	Width float32
	Color Color32
}

func (s Stroke) IsEmpty() bool {
	return s.Width <= 0 || s.Color.IsTransparent()
}
