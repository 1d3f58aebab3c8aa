// ui/tessellate_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"testing"

	"github.com/vkengine/uibridge/math"
)

func clipped(shapes ...Shape) []ClippedShape {
	var cs []ClippedShape
	for _, s := range shapes {
		cs = append(cs, ClippedShape{ClipRect: math.EverythingExtent2D(), Shape: s})
	}
	return cs
}

func meshes(t *testing.T, prims []ClippedPrimitive) []*Mesh {
	t.Helper()
	var m []*Mesh
	for _, p := range prims {
		if mesh, ok := p.Primitive.(*Mesh); ok {
			if err := mesh.Validate(); err != nil {
				t.Errorf("invalid mesh: %v", err)
			}
			m = append(m, mesh)
		}
	}
	return m
}

func TestTessellateShapes(t *testing.T) {
	rect := math.Extent2D{P0: [2]float32{10, 10}, P1: [2]float32{110, 60}}
	red := RGB(255, 0, 0)

	for _, test := range []struct {
		name      string
		shape     Shape
		nvertices int
		nindices  int
	}{
		{name: "filled rect", shape: &RectShape{Rect: rect, Fill: red}, nvertices: 4, nindices: 6},
		{name: "stroked rect", shape: &RectShape{Rect: rect, Stroke: Stroke{Width: 1, Color: red}},
			nvertices: 16, nindices: 24},
		{name: "line", shape: &LineSegmentShape{P0: [2]float32{0, 0}, P1: [2]float32{10, 0},
			Stroke: Stroke{Width: 2, Color: red}}, nvertices: 4, nindices: 6},
		{name: "circle", shape: &CircleShape{Center: [2]float32{50, 50}, Radius: 10, Fill: red},
			nvertices: 10, nindices: 24},
		{name: "convex path", shape: &PathShape{Points: [][2]float32{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
			Closed: true, Fill: red}, nvertices: 4, nindices: 6},
		{name: "concave path", shape: &PathShape{
			Points: [][2]float32{{0, 0}, {20, 0}, {20, 10}, {10, 10}, {10, 20}, {0, 20}},
			Closed: true, Fill: red}, nvertices: 12, nindices: 12},
		{name: "open path", shape: &PathShape{Points: [][2]float32{{0, 0}, {10, 0}, {10, 10}},
			Stroke: Stroke{Width: 1, Color: red}}, nvertices: 8, nindices: 12},
		{name: "transparent rect", shape: &RectShape{Rect: rect, Fill: Transparent}},
	} {
		t.Run(test.name, func(t *testing.T) {
			prims := NewTessellator(1, nil).Tessellate(clipped(test.shape))
			ms := meshes(t, prims)
			nv, ni := 0, 0
			for _, m := range ms {
				nv += len(m.Vertices)
				ni += len(m.Indices)
			}
			if nv != test.nvertices || ni != test.nindices {
				t.Errorf("got %d vertices/%d indices, expected %d/%d", nv, ni, test.nvertices, test.nindices)
			}
		})
	}
}

func TestTessellateRoundedRect(t *testing.T) {
	r := &RectShape{
		Rect:     math.Extent2D{P0: [2]float32{0, 0}, P1: [2]float32{100, 40}},
		Rounding: 8,
		Fill:     White,
		Stroke:   Stroke{Width: 1, Color: Black},
	}
	ms := meshes(t, NewTessellator(1, nil).Tessellate(clipped(r)))
	if len(ms) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(ms))
	}
	if len(ms[0].Vertices) <= 4 {
		t.Errorf("expected rounded corners to add vertices, got %d", len(ms[0].Vertices))
	}
	for _, v := range ms[0].Vertices {
		if !r.Rect.Expand(1).Inside(v.Pos) {
			t.Errorf("vertex %v outside of rect %v", v.Pos, r.Rect)
		}
	}
}

func TestTessellateMerging(t *testing.T) {
	a := &RectShape{Rect: math.Extent2D{P1: [2]float32{10, 10}}, Fill: White}
	b := &RectShape{Rect: math.Extent2D{P0: [2]float32{20, 20}, P1: [2]float32{30, 30}}, Fill: White}
	clip := math.Extent2D{P1: [2]float32{100, 100}}

	prims := NewTessellator(1, nil).Tessellate(clipped(a, b))
	if len(prims) != 1 {
		t.Errorf("same clip: expected 1 primitive, got %d", len(prims))
	}
	if m := prims[0].Primitive.(*Mesh); len(m.Vertices) != 8 || len(m.Indices) != 12 {
		t.Errorf("merged mesh: got %d vertices %d indices", len(m.Vertices), len(m.Indices))
	} else if m.Indices[6] != 4 {
		t.Errorf("second rect indices not offset: %v", m.Indices)
	}

	shapes := []ClippedShape{
		{ClipRect: math.EverythingExtent2D(), Shape: a},
		{ClipRect: clip, Shape: b},
	}
	if prims := NewTessellator(1, nil).Tessellate(shapes); len(prims) != 2 {
		t.Errorf("different clips: expected 2 primitives, got %d", len(prims))
	}

	cb := &CallbackShape{PaintCallback{Rect: clip, Callback: "custom"}}
	prims = NewTessellator(1, nil).Tessellate(clipped(a, cb, b))
	if len(prims) != 3 {
		t.Fatalf("callback: expected 3 primitives, got %d", len(prims))
	}
	if pc, ok := prims[1].Primitive.(*PaintCallback); !ok || pc.Callback != "custom" {
		t.Errorf("expected paint callback in the middle, got %T", prims[1].Primitive)
	}

	m := &Mesh{TextureID: 5}
	m.AddRectWithUV(clip, math.Extent2D{P1: [2]float32{1, 1}}, White)
	prims = NewTessellator(1, nil).Tessellate(clipped(a, &MeshShape{Mesh: m}))
	if len(prims) != 2 {
		t.Fatalf("texture change: expected 2 primitives, got %d", len(prims))
	}
	if tex := prims[1].Primitive.(*Mesh).TextureID; tex != 5 {
		t.Errorf("expected texture 5, got %d", tex)
	}

	// Appended meshes keep their own index base and are scaled to pixels.
	prims = NewTessellator(2, nil).Tessellate(clipped(&MeshShape{Mesh: m}, &MeshShape{Mesh: m}))
	if len(prims) != 1 {
		t.Fatalf("mesh append: expected 1 primitive, got %d", len(prims))
	}
	out := prims[0].Primitive.(*Mesh)
	if len(out.Vertices) != 8 || len(out.Indices) != 12 {
		t.Fatalf("mesh append: got %d vertices, %d indices", len(out.Vertices), len(out.Indices))
	}
	if out.Indices[6] != m.Indices[0]+4 {
		t.Errorf("second mesh index %d not rebased", out.Indices[6])
	}
	if p, want := out.Vertices[4].Pos, math.Scale2f(m.Vertices[0].Pos, 2); p != want {
		t.Errorf("vertex %v, expected %v", p, want)
	}
	if m.Vertices[0].Pos != clip.P0 {
		t.Errorf("source mesh modified: %v", m.Vertices[0].Pos)
	}
}

func TestTessellateCullingAndScale(t *testing.T) {
	r := &RectShape{Rect: math.Extent2D{P0: [2]float32{200, 200}, P1: [2]float32{210, 210}}, Fill: White}
	shapes := []ClippedShape{{ClipRect: math.Extent2D{P1: [2]float32{100, 100}}, Shape: r}}
	if prims := NewTessellator(1, nil).Tessellate(shapes); len(prims) != 0 {
		t.Errorf("expected culled shape to produce no primitives, got %d", len(prims))
	}

	prims := NewTessellator(2, nil).Tessellate(clipped(r))
	m := meshes(t, prims)[0]
	if m.Vertices[0].Pos != [2]float32{400, 400} || m.Vertices[2].Pos != [2]float32{420, 420} {
		t.Errorf("expected positions scaled by 2: %v %v", m.Vertices[0].Pos, m.Vertices[2].Pos)
	}
}

func TestTessellateText(t *testing.T) {
	fonts, err := NewFonts(DefaultFontDefinitions())
	if err != nil {
		t.Fatal(err)
	}
	g := fonts.Layout("Hi there", BodyFont, 0)
	prims := NewTessellator(1, fonts).Tessellate(clipped(&TextShape{Pos: [2]float32{5, 5}, Galley: g, Color: White}))
	ms := meshes(t, prims)
	if len(ms) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(ms))
	}
	// One quad per visible glyph; the space has none.
	if len(ms[0].Vertices) != 4*7 {
		t.Errorf("expected %d vertices, got %d", 4*7, len(ms[0].Vertices))
	}
	for _, v := range ms[0].Vertices {
		if v.UV[0] < 0 || v.UV[0] > 1 || v.UV[1] < 0 || v.UV[1] > 1 {
			t.Errorf("uv %v not normalized", v.UV)
		}
	}
}
