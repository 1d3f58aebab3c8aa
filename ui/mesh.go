// ui/mesh.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"github.com/cockroachdb/errors"

	"github.com/vkengine/uibridge/math"
)

// Vertex is a tessellated vertex: position in pixels (points, for a
// MeshShape), normalized texture coordinates, and color.
type Vertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color Color32
}

// Mesh is an indexed triangle list that samples a single texture.
type Mesh struct {
	Indices   []uint32
	Vertices  []Vertex
	TextureID TextureID
}

// Primitive is either a *Mesh or a *PaintCallback.
type Primitive interface {
	isPrimitive()
}

func (*Mesh) isPrimitive()          {}
func (*PaintCallback) isPrimitive() {}

// ClippedPrimitive is the unit of tessellator output: everything in
// Primitive should be drawn with the scissor rectangle set to ClipRect
// (in pixels).
type ClippedPrimitive struct {
	ClipRect  math.Extent2D
	Primitive Primitive
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0 && len(m.Vertices) == 0
}

// Validate checks that every index refers to an existing vertex and that
// the indices form whole triangles.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return errors.Newf("%d indices: not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return errors.Newf("index %d: %d out of range (%d vertices)", i, idx, len(m.Vertices))
		}
	}
	return nil
}

func (m *Mesh) Bounds() math.Extent2D {
	e := math.EmptyExtent2D()
	for _, v := range m.Vertices {
		e = math.Union(e, v.Pos)
	}
	return e
}

// addVertex returns the index of the new vertex.
func (m *Mesh) addVertex(p [2]float32, uv [2]float32, c Color32) uint32 {
	m.Vertices = append(m.Vertices, Vertex{Pos: p, UV: uv, Color: c})
	return uint32(len(m.Vertices) - 1)
}

func (m *Mesh) addTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// AddRectWithUV adds a quad covering rect that maps to uv.
func (m *Mesh) AddRectWithUV(rect math.Extent2D, uv math.Extent2D, c Color32) {
	base := uint32(len(m.Vertices))
	m.addVertex(rect.P0, uv.P0, c)
	m.addVertex([2]float32{rect.P1[0], rect.P0[1]}, [2]float32{uv.P1[0], uv.P0[1]}, c)
	m.addVertex(rect.P1, uv.P1, c)
	m.addVertex([2]float32{rect.P0[0], rect.P1[1]}, [2]float32{uv.P0[0], uv.P1[1]}, c)
	m.addTriangle(base, base+1, base+2)
	m.addTriangle(base, base+2, base+3)
}

// Append adds the contents of other, which must use the same texture.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}
