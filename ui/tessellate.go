// ui/tessellate.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"github.com/vkengine/uibridge/math"

	"github.com/mmp/earcut-go"
)

// Tessellator converts shapes in points into pixel-space triangle meshes.
// Consecutive shapes that share a clip rectangle and a texture are
// merged into a single mesh. No anti-aliasing feathering is added, so a
// plain filled rectangle becomes exactly four vertices and six indices.
type Tessellator struct {
	pixelsPerPoint float32
	// Font atlas size in pixels, for normalizing texture coordinates.
	atlasSize [2]float32
	whiteUV   [2]float32

	prims    []ClippedPrimitive
	mesh     *Mesh
	meshClip math.Extent2D
}

// NewTessellator returns a Tessellator for the given pixel density. fonts
// provides the atlas that text and solid fills sample; it may be nil if
// neither is drawn.
func NewTessellator(pixelsPerPoint float32, fonts *Fonts) *Tessellator {
	t := &Tessellator{pixelsPerPoint: pixelsPerPoint}
	if pixelsPerPoint <= 0 {
		t.pixelsPerPoint = 1
	}
	if fonts != nil {
		sz := fonts.AtlasSize()
		t.atlasSize = [2]float32{float32(sz[0]), float32(sz[1])}
		w := fonts.WhiteUV()
		t.whiteUV = [2]float32{w[0] / t.atlasSize[0], w[1] / t.atlasSize[1]}
	}
	return t
}

// Tessellate returns the clipped primitives for the given shapes, in
// order.
func (t *Tessellator) Tessellate(shapes []ClippedShape) []ClippedPrimitive {
	t.prims = nil
	t.mesh = nil

	for _, cs := range shapes {
		clip := cs.ClipRect.Scale(t.pixelsPerPoint)
		if clip.Width() <= 0 || clip.Height() <= 0 {
			continue
		}
		if !math.Overlaps(cs.Shape.Bounds().Scale(t.pixelsPerPoint), clip) {
			continue
		}

		switch s := cs.Shape.(type) {
		case *CallbackShape:
			t.flush()
			t.prims = append(t.prims, ClippedPrimitive{
				ClipRect: clip,
				Primitive: &PaintCallback{
					Rect:     s.Rect.Scale(t.pixelsPerPoint),
					Callback: s.Callback,
				},
			})

		case *MeshShape:
			m := t.target(clip, s.Mesh.TextureID)
			base := len(m.Vertices)
			m.Append(s.Mesh)
			for i := base; i < len(m.Vertices); i++ {
				m.Vertices[i].Pos = math.Scale2f(m.Vertices[i].Pos, t.pixelsPerPoint)
			}

		default:
			t.tessellateShape(t.target(clip, FontTextureID), cs.Shape)
		}
	}
	t.flush()

	return t.prims
}

// target returns the mesh that a shape with the given clip rectangle and
// texture should be added to.
func (t *Tessellator) target(clip math.Extent2D, tex TextureID) *Mesh {
	if t.mesh != nil && (t.meshClip != clip || t.mesh.TextureID != tex) {
		t.flush()
	}
	if t.mesh == nil {
		t.mesh = &Mesh{TextureID: tex}
		t.meshClip = clip
	}
	return t.mesh
}

func (t *Tessellator) flush() {
	if t.mesh != nil && !t.mesh.IsEmpty() {
		t.prims = append(t.prims, ClippedPrimitive{ClipRect: t.meshClip, Primitive: t.mesh})
	}
	t.mesh = nil
}

func (t *Tessellator) tessellateShape(m *Mesh, shape Shape) {
	ppp := t.pixelsPerPoint

	switch s := shape.(type) {
	case *RectShape:
		rect := s.Rect.Scale(ppp)
		rounding := min(s.Rounding*ppp, min(rect.Width(), rect.Height())/2)
		if rounding <= 0 {
			if !s.Fill.IsTransparent() {
				white := math.Extent2D{P0: t.whiteUV, P1: t.whiteUV}
				m.AddRectWithUV(rect, white, s.Fill)
			}
			if !s.Stroke.IsEmpty() {
				pts := [][2]float32{rect.P0, {rect.P1[0], rect.P0[1]}, rect.P1, {rect.P0[0], rect.P1[1]}}
				t.strokePath(m, pts, true, s.Stroke)
			}
		} else {
			pts := roundedRectPoints(rect, rounding)
			if !s.Fill.IsTransparent() {
				t.fillConvex(m, pts, s.Fill)
			}
			if !s.Stroke.IsEmpty() {
				t.strokePath(m, pts, true, s.Stroke)
			}
		}

	case *CircleShape:
		r := s.Radius * ppp
		if r <= 0 {
			return
		}
		center := math.Scale2f(s.Center, ppp)
		nsegs := math.Clamp(int(math.Ceil(r)), 8, 64)
		pts := make([][2]float32, 0, nsegs)
		for _, p := range math.CirclePoints(nsegs) {
			pts = append(pts, math.Add2f(center, math.Scale2f(p, r)))
		}
		if !s.Fill.IsTransparent() {
			t.fillConvex(m, pts, s.Fill)
		}
		if !s.Stroke.IsEmpty() {
			t.strokePath(m, pts, true, s.Stroke)
		}

	case *LineSegmentShape:
		if !s.Stroke.IsEmpty() {
			t.strokePath(m, [][2]float32{math.Scale2f(s.P0, ppp), math.Scale2f(s.P1, ppp)}, false, s.Stroke)
		}

	case *PathShape:
		pts := make([][2]float32, len(s.Points))
		for i, p := range s.Points {
			pts[i] = math.Scale2f(p, ppp)
		}
		if s.Closed && len(pts) >= 3 && !s.Fill.IsTransparent() {
			if math.IsConvex(pts) {
				t.fillConvex(m, pts, s.Fill)
			} else {
				t.fillConcave(m, pts, s.Fill)
			}
		}
		if !s.Stroke.IsEmpty() {
			t.strokePath(m, pts, s.Closed, s.Stroke)
		}

	case *TextShape:
		if s.Galley == nil || s.Color.IsTransparent() || t.atlasSize[0] == 0 {
			return
		}
		for _, g := range s.Galley.Glyphs {
			rect := g.Rect.Offset(s.Pos).Scale(ppp)
			uv := math.Extent2D{
				P0: [2]float32{g.UV.P0[0] / t.atlasSize[0], g.UV.P0[1] / t.atlasSize[1]},
				P1: [2]float32{g.UV.P1[0] / t.atlasSize[0], g.UV.P1[1] / t.atlasSize[1]},
			}
			m.AddRectWithUV(rect, uv, s.Color)
		}
	}
}

// fillConvex adds a triangle fan for the convex polygon pts.
func (t *Tessellator) fillConvex(m *Mesh, pts [][2]float32, c Color32) {
	if len(pts) < 3 {
		return
	}
	base := uint32(len(m.Vertices))
	for _, p := range pts {
		m.addVertex(p, t.whiteUV, c)
	}
	for i := uint32(1); i+1 < uint32(len(pts)); i++ {
		m.addTriangle(base, base+i, base+i+1)
	}
}

func (t *Tessellator) fillConcave(m *Mesh, pts [][2]float32, c Color32) {
	vertices := make([]earcut.Vertex, len(pts))
	for i, v := range pts {
		vertices[i].P = [2]float64{float64(v[0]), float64(v[1])}
	}

	for _, tri := range earcut.Triangulate(earcut.Polygon{Rings: [][]earcut.Vertex{vertices}}) {
		base := uint32(len(m.Vertices))
		for _, v64 := range tri.Vertices {
			m.addVertex([2]float32{float32(v64.P[0]), float32(v64.P[1])}, t.whiteUV, c)
		}
		m.addTriangle(base, base+1, base+2)
	}
}

// strokePath adds a quad of the stroke's width for each segment of the
// path.
func (t *Tessellator) strokePath(m *Mesh, pts [][2]float32, closed bool, s Stroke) {
	hw := s.Width * t.pixelsPerPoint / 2
	n := len(pts)
	if !closed {
		n--
	}
	for i := 0; i < n; i++ {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		d := math.Sub2f(p1, p0)
		if d == [2]float32{} {
			continue
		}
		off := math.Scale2f(math.Perp2f(math.Normalize2f(d)), hw)

		base := uint32(len(m.Vertices))
		m.addVertex(math.Add2f(p0, off), t.whiteUV, s.Color)
		m.addVertex(math.Add2f(p1, off), t.whiteUV, s.Color)
		m.addVertex(math.Sub2f(p1, off), t.whiteUV, s.Color)
		m.addVertex(math.Sub2f(p0, off), t.whiteUV, s.Color)
		m.addTriangle(base, base+1, base+2)
		m.addTriangle(base, base+2, base+3)
	}
}

// roundedRectPoints returns the outline of rect with corners rounded by
// radius r, going clockwise from the upper-left corner.
func roundedRectPoints(rect math.Extent2D, r float32) [][2]float32 {
	nsegs := math.Clamp(int(r/2)+2, 2, 16)
	corners := [4]struct {
		center [2]float32
		start  float32
	}{
		{[2]float32{rect.P0[0] + r, rect.P0[1] + r}, 180},
		{[2]float32{rect.P1[0] - r, rect.P0[1] + r}, 270},
		{[2]float32{rect.P1[0] - r, rect.P1[1] - r}, 0},
		{[2]float32{rect.P0[0] + r, rect.P1[1] - r}, 90},
	}

	pts := make([][2]float32, 0, 4*(nsegs+1))
	for _, c := range corners {
		for i := 0; i <= nsegs; i++ {
			a := math.Radians(c.start + 90*float32(i)/float32(nsegs))
			pts = append(pts, [2]float32{c.center[0] + r*math.Cos(a), c.center[1] + r*math.Sin(a)})
		}
	}
	return pts
}
