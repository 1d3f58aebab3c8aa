// renderer/renderer.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package renderer draws the geometry exported by the UI bridge. It
// stands in for the Vulkan host when the bridge is exercised through
// the standalone viewer.
package renderer

import (
	"fmt"
	"log/slog"

	"github.com/vkengine/uibridge/bridge"
)

// Renderer consumes the views exported by a bridge.Engine.
type Renderer interface {
	// SetFontTexture uploads the font atlas if it differs from the one
	// most recently uploaded.
	SetFontTexture(fv bridge.FontView)

	// Draw clears the framebuffer and draws the frame's triangle list
	// with the font atlas bound. displaySize is in window coordinates and
	// framebufferSize in pixels.
	Draw(rv bridge.RenderView, displaySize, framebufferSize [2]float32) RendererStats

	// Dispose releases resources allocated by the renderer.
	Dispose()
}

// RendererStats encapsulates assorted statistics from rendering.
type RendererStats struct {
	nDrawCalls   int
	nVertices    int
	nTriangles   int
	textureBytes int
}

func (rs *RendererStats) String() string {
	return fmt.Sprintf("%d draw calls: %d vertices, %d tris, %.2f MiB of textures",
		rs.nDrawCalls, rs.nVertices, rs.nTriangles, float32(rs.textureBytes)/(1024*1024))
}

func (rs *RendererStats) Merge(s RendererStats) {
	rs.nDrawCalls += s.nDrawCalls
	rs.nVertices += s.nVertices
	rs.nTriangles += s.nTriangles
	rs.textureBytes = max(rs.textureBytes, s.textureBytes)
}

func (rs RendererStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("draw_calls", rs.nDrawCalls),
		slog.Int("vertices", rs.nVertices),
		slog.Int("tris", rs.nTriangles),
		slog.Int("texture_memory", rs.textureBytes),
	)
}
