// ui/painter.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"github.com/vkengine/uibridge/math"
)

// Painter adds shapes to the current frame, clipped to a stack of clip
// rectangles.
type Painter struct {
	ctx       *Context
	clip      math.Extent2D
	clipStack []math.Extent2D
}

// ClipRect returns the current clip rectangle.
func (p *Painter) ClipRect() math.Extent2D {
	return p.clip
}

// PushClipRect intersects the current clip rectangle with r; it must be
// balanced with a call to PopClipRect.
func (p *Painter) PushClipRect(r math.Extent2D) {
	p.clipStack = append(p.clipStack, p.clip)
	p.clip = math.Intersect(p.clip, r)
}

func (p *Painter) PopClipRect() {
	if n := len(p.clipStack); n > 0 {
		p.clip = p.clipStack[n-1]
		p.clipStack = p.clipStack[:n-1]
	}
}

// WithClipRect returns a new painter whose clip rectangle is the
// intersection of the current one with r.
func (p *Painter) WithClipRect(r math.Extent2D) *Painter {
	return &Painter{ctx: p.ctx, clip: math.Intersect(p.clip, r)}
}

func (p *Painter) Add(s Shape) {
	p.ctx.addShape(p.clip, s)
}

func (p *Painter) Rect(r math.Extent2D, rounding float32, fill Color32, stroke Stroke) {
	p.Add(&RectShape{Rect: r, Rounding: rounding, Fill: fill, Stroke: stroke})
}

func (p *Painter) RectFilled(r math.Extent2D, rounding float32, fill Color32) {
	p.Rect(r, rounding, fill, Stroke{})
}

func (p *Painter) RectStroke(r math.Extent2D, rounding float32, stroke Stroke) {
	p.Rect(r, rounding, Transparent, stroke)
}

func (p *Painter) Line(p0, p1 [2]float32, stroke Stroke) {
	p.Add(&LineSegmentShape{P0: p0, P1: p1, Stroke: stroke})
}

// HLine draws a horizontal line from x0 to x1 at y.
func (p *Painter) HLine(x0, x1, y float32, stroke Stroke) {
	p.Line([2]float32{x0, y}, [2]float32{x1, y}, stroke)
}

// VLine draws a vertical line from y0 to y1 at x.
func (p *Painter) VLine(x, y0, y1 float32, stroke Stroke) {
	p.Line([2]float32{x, y0}, [2]float32{x, y1}, stroke)
}

func (p *Painter) Circle(center [2]float32, radius float32, fill Color32, stroke Stroke) {
	p.Add(&CircleShape{Center: center, Radius: radius, Fill: fill, Stroke: stroke})
}

func (p *Painter) Path(pts [][2]float32, closed bool, fill Color32, stroke Stroke) {
	p.Add(&PathShape{Points: pts, Closed: closed, Fill: fill, Stroke: stroke})
}

// Text draws the given string with its upper-left corner at pos and
// returns the size of the laid-out text.
func (p *Painter) Text(pos [2]float32, text string, font FontID, color Color32) [2]float32 {
	return p.TextWrapped(pos, text, font, 0, color)
}

// TextWrapped is like Text but wraps lines at wrapWidth.
func (p *Painter) TextWrapped(pos [2]float32, text string, font FontID, wrapWidth float32, color Color32) [2]float32 {
	fonts := p.ctx.fonts
	if fonts == nil || text == "" {
		return [2]float32{}
	}
	g := fonts.Layout(text, font, wrapWidth)
	p.Galley(pos, g, color)
	return g.Size
}

func (p *Painter) Galley(pos [2]float32, g *Galley, color Color32) {
	p.Add(&TextShape{Pos: pos, Galley: g, Color: color})
}

func (p *Painter) Mesh(m *Mesh) {
	p.Add(&MeshShape{Mesh: m})
}

// Callback reserves rect for custom host drawing.
func (p *Painter) Callback(rect math.Extent2D, callback any) {
	p.Add(&CallbackShape{PaintCallback{Rect: rect, Callback: callback}})
}
