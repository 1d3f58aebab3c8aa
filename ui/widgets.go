// ui/widgets.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"github.com/vkengine/uibridge/math"
	"github.com/vkengine/uibridge/util"
)

type Style struct {
	Font        FontID
	HeadingFont FontID

	Text       Color32
	WeakText   Color32
	PanelFill  Color32
	WindowFill Color32
	Button     Color32
	ButtonHot  Color32
	ButtonDown Color32
	Separator  Color32
	Accent     Color32

	Spacing  [2]float32
	Padding  [2]float32
	Rounding float32
}

func DefaultStyle() Style {
	return Style{
		Font:        BodyFont,
		HeadingFont: HeadingFont,
		Text:        RGB(210, 210, 210),
		WeakText:    RGB(140, 140, 140),
		PanelFill:   RGB(27, 27, 27),
		WindowFill:  RGB(36, 36, 36),
		Button:      RGB(60, 60, 60),
		ButtonHot:   RGB(75, 75, 75),
		ButtonDown:  RGB(95, 95, 95),
		Separator:   RGB(60, 60, 60),
		Accent:      RGB(90, 170, 255),
		Spacing:     [2]float32{8, 4},
		Padding:     [2]float32{6, 3},
		Rounding:    3,
	}
}

// Response reports how the user interacted with a widget this frame.
type Response struct {
	Rect    math.Extent2D
	Hovered bool
	Clicked bool
	Changed bool
}

// Ui lays out widgets inside a rectangle, top to bottom or (inside
// Horizontal) left to right.
type Ui struct {
	ctx        *Context
	painter    *Painter
	rect       math.Extent2D
	cursor     [2]float32
	horizontal bool
	rowHeight  float32
	// Bounds of everything allocated so far.
	used math.Extent2D
	id   string
}

func (c *Context) newUi(rect math.Extent2D, id string) *Ui {
	return &Ui{
		ctx:     c,
		painter: c.Painter().WithClipRect(rect),
		rect:    rect,
		cursor:  rect.P0,
		used:    math.EmptyExtent2D(),
		id:      id,
	}
}

func (u *Ui) Painter() *Painter         { return u.painter }
func (u *Ui) Style() *Style             { return &u.ctx.style }
func (u *Ui) Context() *Context         { return u.ctx }
func (u *Ui) MaxRect() math.Extent2D    { return u.rect }
func (u *Ui) UsedRect() math.Extent2D   { return u.used }
func (u *Ui) AvailableWidth() float32   { return u.rect.P1[0] - u.cursor[0] }
func (u *Ui) AvailableHeight() float32  { return u.rect.P1[1] - u.cursor[1] }
func (u *Ui) Cursor() [2]float32        { return u.cursor }
func (u *Ui) AddSpace(amount float32)   { u.advance(amount, amount) }
func (u *Ui) IsHorizontal() bool        { return u.horizontal }
func (u *Ui) TextColor() Color32        { return u.ctx.style.Text }
func (u *Ui) ID(suffix string) string   { return u.id + "/" + suffix }
func (u *Ui) Fonts() *Fonts             { return u.ctx.fonts }
func (u *Ui) Input() *InputState        { return &u.ctx.input }
func (u *Ui) ScreenRect() math.Extent2D { return u.ctx.input.ScreenRect }

// Allocate reserves a w x h region at the cursor and advances it.
func (u *Ui) Allocate(w, h float32) math.Extent2D {
	r := math.Extent2DFromMinSize(u.cursor, w, h)
	u.used = math.Union(math.Union(u.used, r.P0), r.P1)
	if u.horizontal {
		u.rowHeight = max(u.rowHeight, h)
		u.cursor[0] += w + u.ctx.style.Spacing[0]
	} else {
		u.cursor[1] += h + u.ctx.style.Spacing[1]
	}
	return r
}

func (u *Ui) advance(dx, dy float32) {
	if u.horizontal {
		u.cursor[0] += dx
	} else {
		u.cursor[1] += dy
	}
}

// interact computes hover and click state for a widget covering r.
func (u *Ui) interact(r math.Extent2D) Response {
	m := &u.ctx.input.Mouse
	resp := Response{Rect: r}
	resp.Hovered = m.Valid && r.Inside(m.Pos) && u.painter.clip.Inside(m.Pos)
	resp.Clicked = resp.Hovered && m.Released[MouseButtonPrimary]
	if resp.Hovered {
		u.ctx.setCursor(CursorPointingHand)
	}
	return resp
}

func (u *Ui) textWidget(text string, font FontID, color Color32) Response {
	var size [2]float32
	var g *Galley
	if fonts := u.ctx.fonts; fonts != nil {
		// Text laid out horizontally isn't wrapped.
		g = fonts.Layout(text, font, util.Select(u.horizontal, 0, u.AvailableWidth()))
		size = g.Size
	}
	r := u.Allocate(size[0], size[1])
	if g != nil {
		u.painter.Galley(r.P0, g, color)
	}
	return Response{Rect: r}
}

func (u *Ui) Label(text string) Response {
	return u.textWidget(text, u.ctx.style.Font, u.ctx.style.Text)
}

func (u *Ui) WeakLabel(text string) Response {
	return u.textWidget(text, u.ctx.style.Font, u.ctx.style.WeakText)
}

func (u *Ui) ColoredLabel(text string, color Color32) Response {
	return u.textWidget(text, u.ctx.style.Font, color)
}

func (u *Ui) Monospace(text string) Response {
	return u.textWidget(text, MonoFont, u.ctx.style.Text)
}

func (u *Ui) Heading(text string) Response {
	return u.textWidget(text, u.ctx.style.HeadingFont, u.ctx.style.Text)
}

func (u *Ui) Button(text string) Response {
	st := &u.ctx.style
	var size [2]float32
	if u.ctx.fonts != nil {
		size = u.ctx.fonts.Measure(text, st.Font)
	}
	r := u.Allocate(size[0]+2*st.Padding[0], size[1]+2*st.Padding[1])
	resp := u.interact(r)

	fill := st.Button
	if resp.Hovered {
		fill = st.ButtonHot
		if u.ctx.input.Mouse.Down[MouseButtonPrimary] {
			fill = st.ButtonDown
		}
	}
	u.painter.RectFilled(r, st.Rounding, fill)
	u.painter.Text(math.Add2f(r.P0, st.Padding), text, st.Font, st.Text)
	return resp
}

// SelectableLabel is a label that is highlighted when selected or hovered.
func (u *Ui) SelectableLabel(selected bool, text string) Response {
	st := &u.ctx.style
	var size [2]float32
	if u.ctx.fonts != nil {
		size = u.ctx.fonts.Measure(text, st.Font)
	}
	r := u.Allocate(size[0]+2*st.Padding[0], size[1]+2*st.Padding[1])
	resp := u.interact(r)
	if selected {
		u.painter.RectFilled(r, st.Rounding, st.Accent.MultiplyAlpha(0.5))
	} else if resp.Hovered {
		u.painter.RectFilled(r, st.Rounding, st.ButtonHot)
	}
	u.painter.Text(math.Add2f(r.P0, st.Padding), text, st.Font, st.Text)
	return resp
}

func (u *Ui) Checkbox(label string, value *bool) Response {
	st := &u.ctx.style
	var size [2]float32
	if u.ctx.fonts != nil {
		size = u.ctx.fonts.Measure(label, st.Font)
	}
	box := size[1]
	r := u.Allocate(box+st.Spacing[0]+size[0], size[1])
	resp := u.interact(r)
	if resp.Clicked && value != nil {
		*value = !*value
		resp.Changed = true
	}

	boxRect := math.Extent2DFromMinSize(r.P0, box, box).Expand(-2)
	u.painter.RectFilled(boxRect, st.Rounding, util.Select(resp.Hovered, st.ButtonHot, st.Button))
	if value != nil && *value {
		inner := boxRect.Expand(-3)
		u.painter.Path([][2]float32{
			{inner.P0[0], inner.Center()[1]},
			{inner.Center()[0], inner.P1[1]},
			{inner.P1[0], inner.P0[1]},
		}, false, Transparent, Stroke{Width: 2, Color: st.Text})
	}
	u.painter.Text([2]float32{r.P0[0] + box + st.Spacing[0], r.P0[1]}, label, st.Font, st.Text)
	return resp
}

// Separator draws a line across the available width (or height, when
// laid out horizontally).
func (u *Ui) Separator() {
	st := &u.ctx.style
	stroke := Stroke{Width: 1, Color: st.Separator}
	if u.horizontal {
		h := u.rowHeight
		if u.ctx.fonts != nil {
			h = max(h, u.ctx.fonts.RowHeight(st.Font))
		}
		r := u.Allocate(1, h)
		u.painter.VLine(r.P0[0], r.P0[1], r.P1[1], stroke)
	} else {
		r := u.Allocate(u.rect.P1[0]-u.cursor[0], 1)
		u.painter.HLine(r.P0[0], r.P1[0], r.P0[1], stroke)
	}
}

// Horizontal lays out the widgets added by fn from left to right.
func (u *Ui) Horizontal(fn func(*Ui)) Response {
	child := &Ui{
		ctx:        u.ctx,
		painter:    u.painter,
		rect:       math.Extent2D{P0: u.cursor, P1: u.rect.P1},
		cursor:     u.cursor,
		horizontal: true,
		used:       math.EmptyExtent2D(),
		id:         u.id,
	}
	fn(child)
	h := max(child.rowHeight, 0)
	w := max(child.used.P1[0]-u.cursor[0], 0)
	return Response{Rect: u.Allocate(w, h)}
}

// Indent lays out the widgets added by fn with an increased left margin.
func (u *Ui) Indent(fn func(*Ui)) {
	indent := 2 * u.ctx.style.Spacing[0]
	child := u.ctx.newUi(math.Extent2D{P0: [2]float32{u.cursor[0] + indent, u.cursor[1]}, P1: u.rect.P1}, u.id)
	child.painter = u.painter
	fn(child)
	if !child.used.IsEmpty() {
		u.Allocate(child.used.P1[0]-u.cursor[0], child.used.P1[1]-u.cursor[1])
	}
}

// CollapsingHeader shows a clickable header; fn is called to add the
// body while the header is open. The open state persists across frames.
func (u *Ui) CollapsingHeader(label string, defaultOpen bool, fn func(*Ui)) Response {
	id := u.ID(label)
	open, ok := u.ctx.open[id]
	if !ok {
		open = defaultOpen
	}

	st := &u.ctx.style
	var size [2]float32
	if u.ctx.fonts != nil {
		size = u.ctx.fonts.Measure(label, st.Font)
	}
	arrow := size[1]
	r := u.Allocate(u.rect.P1[0]-u.cursor[0], size[1]+2*st.Padding[1])
	resp := u.interact(r)
	if resp.Clicked {
		open = !open
		resp.Changed = true
	}
	u.ctx.open[id] = open

	if resp.Hovered {
		u.painter.RectFilled(r, st.Rounding, st.ButtonHot)
	}
	// Triangle pointing right when closed and down when open.
	c := [2]float32{r.P0[0] + st.Padding[0] + arrow/2, r.Center()[1]}
	s := arrow / 4
	var tri [][2]float32
	if open {
		tri = [][2]float32{{c[0] - s, c[1] - s/2}, {c[0] + s, c[1] - s/2}, {c[0], c[1] + s}}
	} else {
		tri = [][2]float32{{c[0] - s/2, c[1] - s}, {c[0] + s, c[1]}, {c[0] - s/2, c[1] + s}}
	}
	u.painter.Path(tri, true, st.Text, Stroke{})
	u.painter.Text([2]float32{r.P0[0] + 2*st.Padding[0] + arrow, r.P0[1] + st.Padding[1]}, label, st.Font, st.Text)

	if open && fn != nil {
		sub := *u
		sub.id = id
		sub.Indent(fn)
		u.cursor, u.used = sub.cursor, sub.used
	}
	return resp
}

// Group draws a frame around the widgets added by fn.
func (u *Ui) Group(fn func(*Ui)) Response {
	st := &u.ctx.style
	start := u.cursor
	idx := len(u.ctx.shapes)
	// Reserve a slot for the background so that it is drawn beneath the
	// contents.
	u.painter.RectFilled(math.Extent2D{}, 0, Transparent)

	inner := u.ctx.newUi(math.Extent2D{P0: math.Add2f(start, st.Padding), P1: math.Sub2f(u.rect.P1, st.Padding)}, u.id)
	inner.painter = u.painter
	fn(inner)

	p1 := start
	if !inner.used.IsEmpty() {
		p1 = math.Add2f(inner.used.P1, st.Padding)
	}
	r := math.Extent2D{P0: start, P1: [2]float32{u.rect.P1[0], p1[1]}}
	u.ctx.shapes[idx].Shape = &RectShape{Rect: r, Rounding: st.Rounding, Fill: st.WindowFill,
		Stroke: Stroke{Width: 1, Color: st.Separator}}
	return Response{Rect: u.Allocate(r.Width(), r.Height())}
}

///////////////////////////////////////////////////////////////////////////
// Panels

type PanelSide int

const (
	PanelTop PanelSide = iota
	PanelBottom
	PanelLeft
	PanelRight
)

// Panel claims a strip of the given size along one side of the remaining
// screen area, fills it with the panel background, and calls fn to add
// its contents.
func (c *Context) Panel(id string, side PanelSide, size float32, fn func(*Ui)) math.Extent2D {
	a := c.available
	var r math.Extent2D
	switch side {
	case PanelTop:
		size = min(size, a.Height())
		r = math.Extent2D{P0: a.P0, P1: [2]float32{a.P1[0], a.P0[1] + size}}
		c.available.P0[1] += size
	case PanelBottom:
		size = min(size, a.Height())
		r = math.Extent2D{P0: [2]float32{a.P0[0], a.P1[1] - size}, P1: a.P1}
		c.available.P1[1] -= size
	case PanelLeft:
		size = min(size, a.Width())
		r = math.Extent2D{P0: a.P0, P1: [2]float32{a.P0[0] + size, a.P1[1]}}
		c.available.P0[0] += size
	case PanelRight:
		size = min(size, a.Width())
		r = math.Extent2D{P0: [2]float32{a.P1[0] - size, a.P0[1]}, P1: a.P1}
		c.available.P1[0] -= size
	}
	c.fillPanel(id, r, fn)
	return r
}

// CentralPanel uses whatever screen area the other panels left.
func (c *Context) CentralPanel(fn func(*Ui)) math.Extent2D {
	r := c.available
	c.available = math.Extent2D{P0: r.P1, P1: r.P1}
	c.fillPanel("central", r, fn)
	return r
}

func (c *Context) fillPanel(id string, r math.Extent2D, fn func(*Ui)) {
	if r.IsEmpty() {
		return
	}
	st := &c.style
	c.Painter().RectFilled(r, 0, st.PanelFill)
	u := c.newUi(r.Expand(-st.Spacing[0]), id)
	if fn != nil {
		fn(u)
	}
}

// AvailableRect returns the screen area not yet claimed by panels.
func (c *Context) AvailableRect() math.Extent2D {
	return c.available
}
