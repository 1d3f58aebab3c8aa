// math/view.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

// OrthoProjection maps window coordinates, with the origin at the upper
// left and y increasing downward, to clip space.
func OrthoProjection(displaySize [2]float32) mgl32.Mat4 {
	return mgl32.Ortho2D(0, displaySize[0], displaySize[1], 0)
}

// ScissorRect converts a window-space rectangle to x, y, width, height
// in framebuffer pixels with the origin at the lower left.
func ScissorRect(e Extent2D, displaySize, framebufferSize [2]float32) [4]int32 {
	sx, sy := float32(1), float32(1)
	if displaySize[0] > 0 && displaySize[1] > 0 {
		sx, sy = framebufferSize[0]/displaySize[0], framebufferSize[1]/displaySize[1]
	}
	x0, y0 := e.P0[0]*sx, e.P0[1]*sy
	x1, y1 := e.P1[0]*sx, e.P1[1]*sy
	return [4]int32{int32(x0), int32(framebufferSize[1] - y1), int32(x1 - x0), int32(y1 - y0)}
}
