// bridge/geometry.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bridge

import (
	"github.com/vkengine/uibridge/math"
	"github.com/vkengine/uibridge/ui"
)

// UIVertex matches the C UIVertex layout: 20 bytes, color packed with
// red in the low byte.
type UIVertex struct {
	Pos      [2]float32
	TexCoord [2]float32
	Color    uint32
}

// GeometryBuffer holds the current frame's vertices and triangle list
// indices. It is cleared and refilled each frame.
type GeometryBuffer struct {
	Vertices []UIVertex
	Indices  []uint32

	// Per-mesh mapping from source vertex index to buffer index, or -1
	// if the vertex was discarded. Reused across meshes.
	remap []int32
}

func (g *GeometryBuffer) Reset() {
	g.Vertices = g.Vertices[:0]
	g.Indices = g.Indices[:0]
}

func (g *GeometryBuffer) IsEmpty() bool {
	return len(g.Vertices) == 0
}

// vertexFilter decides which tessellated vertices are worth sending to
// the GPU.
type vertexFilter struct {
	bounds math.Extent2D
}

func makeVertexFilter(width, height, margin float32) vertexFilter {
	return vertexFilter{bounds: math.Extent2D{
		P0: [2]float32{-margin, -margin},
		P1: [2]float32{width + margin, height + margin},
	}}
}

func (f vertexFilter) keep(v ui.Vertex) bool {
	x, y := v.Pos[0], v.Pos[1]
	if !math.IsFinite(x) || !math.IsFinite(y) || !f.bounds.Inside(v.Pos) {
		return false
	}
	// Invisible geometry is emitted as fully transparent vertices at the
	// origin.
	return !(math.Abs(x) < 1 && math.Abs(y) < 1 && v.Color.A() == 0)
}

// AppendMesh adds the vertices of m that pass the filter along with the
// triangles whose three vertices all survived. Indices are rewritten to
// refer to the vertices' positions in the buffer.
func (g *GeometryBuffer) AppendMesh(m *ui.Mesh, f vertexFilter, stats *FrameStats) {
	if cap(g.remap) < len(m.Vertices) {
		g.remap = make([]int32, len(m.Vertices))
	}
	g.remap = g.remap[:len(m.Vertices)]

	for i, v := range m.Vertices {
		if !f.keep(v) {
			g.remap[i] = -1
			stats.DroppedVertices++
			continue
		}
		g.remap[i] = int32(len(g.Vertices))
		g.Vertices = append(g.Vertices, UIVertex{
			Pos:      v.Pos,
			TexCoord: v.UV,
			Color:    v.Color.Packed(),
		})
	}

	lookup := func(idx uint32) int32 {
		if int(idx) >= len(g.remap) {
			return -1
		}
		return g.remap[idx]
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := lookup(m.Indices[i]), lookup(m.Indices[i+1]), lookup(m.Indices[i+2])
		if a < 0 || b < 0 || c < 0 {
			stats.DroppedTris++
			continue
		}
		g.Indices = append(g.Indices, uint32(a), uint32(b), uint32(c))
	}
	stats.Meshes++
}
