// ui/shape.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"github.com/vkengine/uibridge/math"
)

// Shape is one of the drawing primitives that widgets emit. Shapes are
// positioned in logical points; the tessellator converts them to pixels.
type Shape interface {
	// Bounds returns a conservative bounding box of the shape.
	Bounds() math.Extent2D
	isShape()
}

// RectShape is an axis-aligned rectangle with optionally rounded corners.
type RectShape struct {
	Rect     math.Extent2D
	Rounding float32
	Fill     Color32
	Stroke   Stroke
}

func (r *RectShape) Bounds() math.Extent2D { return r.Rect.Expand(r.Stroke.Width / 2) }
func (*RectShape) isShape()                {}

type CircleShape struct {
	Center [2]float32
	Radius float32
	Fill   Color32
	Stroke Stroke
}

func (c *CircleShape) Bounds() math.Extent2D {
	r := c.Radius + c.Stroke.Width/2
	return math.Extent2D{P0: [2]float32{c.Center[0] - r, c.Center[1] - r},
		P1: [2]float32{c.Center[0] + r, c.Center[1] + r}}
}
func (*CircleShape) isShape() {}

type LineSegmentShape struct {
	P0, P1 [2]float32
	Stroke Stroke
}

func (l *LineSegmentShape) Bounds() math.Extent2D {
	return math.Extent2DFromPoints([][2]float32{l.P0, l.P1}).Expand(l.Stroke.Width / 2)
}
func (*LineSegmentShape) isShape() {}

// PathShape is a polyline or, if Closed, a polygon. Closed paths may be
// filled; concave polygons are supported.
type PathShape struct {
	Points [][2]float32
	Closed bool
	Fill   Color32
	Stroke Stroke
}

func (p *PathShape) Bounds() math.Extent2D {
	return math.Extent2DFromPoints(p.Points).Expand(p.Stroke.Width / 2)
}
func (*PathShape) isShape() {}

// TextShape draws a laid-out Galley with its upper-left corner at Pos.
type TextShape struct {
	Pos    [2]float32
	Galley *Galley
	Color  Color32
}

func (t *TextShape) Bounds() math.Extent2D {
	return math.Extent2DFromMinSize(t.Pos, t.Galley.Size[0], t.Galley.Size[1])
}
func (*TextShape) isShape() {}

// MeshShape passes an already-tessellated mesh through; its positions are
// in points.
type MeshShape struct {
	Mesh *Mesh
}

func (m *MeshShape) Bounds() math.Extent2D { return m.Mesh.Bounds() }
func (*MeshShape) isShape()                {}

// PaintCallback lets the host draw custom content inside Rect; the ui
// package never interprets Callback.
type PaintCallback struct {
	Rect     math.Extent2D
	Callback any
}

type CallbackShape struct {
	PaintCallback
}

func (c *CallbackShape) Bounds() math.Extent2D { return c.Rect }
func (*CallbackShape) isShape()                {}

// ClippedShape associates a Shape with the clip rectangle that was active
// when it was emitted.
type ClippedShape struct {
	ClipRect math.Extent2D
	Shape    Shape
}
