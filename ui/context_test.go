// ui/context_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"testing"

	"github.com/vkengine/uibridge/math"
)

func rawInput(w, h float32, events ...Event) RawInput {
	ppp := float32(1)
	return RawInput{
		ViewportID: RootViewport,
		Viewports: map[ViewportID]ViewportInfo{
			RootViewport: {NativePixelsPerPoint: &ppp, MonitorSize: &[2]float32{w, h}},
		},
		Events: events,
	}
}

func TestContextFrames(t *testing.T) {
	c := NewContext(nil)
	if err := c.SetFonts(DefaultFontDefinitions()); err != nil {
		t.Fatal(err)
	}

	c.BeginFrame(rawInput(800, 600))
	if sr := c.ScreenRect(); sr.P1 != [2]float32{800, 600} {
		t.Errorf("screen rect %v", sr)
	}
	c.Painter().RectFilled(math.Extent2D{P0: [2]float32{100, 100}, P1: [2]float32{200, 200}}, 0, Red)
	out := c.EndFrame()

	if len(out.Shapes) != 1 {
		t.Errorf("expected 1 shape, got %d", len(out.Shapes))
	}
	if out.PixelsPerPoint != 1 {
		t.Errorf("pixels per point %f", out.PixelsPerPoint)
	}
	if len(out.TexturesDelta.Set) != 1 || out.TexturesDelta.Set[0].ID != FontTextureID ||
		!out.TexturesDelta.Set[0].Delta.IsWhole() {
		t.Errorf("expected whole font atlas delta in first frame: %+v", out.TexturesDelta.Set)
	}

	prims := c.Tessellate(out.Shapes, out.PixelsPerPoint)
	if len(prims) != 1 {
		t.Fatalf("expected 1 primitive, got %d", len(prims))
	}
	if m := prims[0].Primitive.(*Mesh); len(m.Vertices) != 4 || len(m.Indices) != 6 {
		t.Errorf("got %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}

	c.BeginFrame(rawInput(800, 600))
	out = c.EndFrame()
	if !out.TexturesDelta.IsEmpty() {
		t.Errorf("expected no texture changes in second frame: %+v", out.TexturesDelta)
	}
	if len(out.Shapes) != 0 {
		t.Errorf("shapes carried over: %d", len(out.Shapes))
	}
	if c.FrameNumber() != 2 {
		t.Errorf("frame number %d", c.FrameNumber())
	}
}

func TestContextDefaultFonts(t *testing.T) {
	c := NewContext(nil)
	c.BeginFrame(rawInput(100, 100))
	out := c.EndFrame()
	if c.Fonts() == nil {
		t.Fatalf("expected default fonts to be installed")
	}
	if len(out.TexturesDelta.Set) == 0 {
		t.Errorf("expected font atlas delta")
	}
}

func TestContextTextures(t *testing.T) {
	c := NewContext(nil)
	c.BeginFrame(rawInput(100, 100))
	c.EndFrame()

	c.BeginFrame(rawInput(100, 100))
	id := c.LoadTexture(&ColorImage{Width: 2, Height: 1, Pixels: []Color32{Red, Blue}})
	if id == FontTextureID {
		t.Errorf("user texture got the font texture id")
	}
	out := c.EndFrame()
	if len(out.TexturesDelta.Set) != 1 || out.TexturesDelta.Set[0].ID != id {
		t.Errorf("unexpected delta %+v", out.TexturesDelta)
	}

	c.BeginFrame(rawInput(100, 100))
	c.FreeTexture(id)
	c.FreeTexture(id)
	out = c.EndFrame()
	if len(out.TexturesDelta.Free) != 1 || out.TexturesDelta.Free[0] != id {
		t.Errorf("expected %s to be freed once: %v", id, out.TexturesDelta.Free)
	}
}

func TestInputClicks(t *testing.T) {
	var in InputState
	p := [2]float32{10, 20}

	in.update(RawInput{Events: []Event{PointerMoved{Pos: p}}})
	if !in.Mouse.Valid || in.Mouse.Pos != p {
		t.Errorf("mouse %+v", in.Mouse)
	}

	in.update(RawInput{Events: []Event{PointerButton{Pos: p, Button: MouseButtonPrimary, Pressed: true}}})
	if !in.Mouse.Clicked[MouseButtonPrimary] || !in.Mouse.Down[MouseButtonPrimary] {
		t.Errorf("expected click: %+v", in.Mouse)
	}

	in.update(RawInput{Events: []Event{PointerMoved{Pos: [2]float32{15, 20}}}})
	if in.Mouse.Clicked[MouseButtonPrimary] || !in.Mouse.Down[MouseButtonPrimary] {
		t.Errorf("expected button held: %+v", in.Mouse)
	}
	if in.Mouse.DeltaPos != [2]float32{5, 0} {
		t.Errorf("delta %v", in.Mouse.DeltaPos)
	}

	in.update(RawInput{Events: []Event{PointerButton{Pos: p, Button: MouseButtonPrimary, Pressed: false},
		KeyEvent{Key: KeyEnter, Pressed: true}, TextEvent{Text: "ab"}}})
	if !in.Mouse.Released[MouseButtonPrimary] || in.Mouse.Down[MouseButtonPrimary] {
		t.Errorf("expected release: %+v", in.Mouse)
	}
	if !in.Keyboard.WasPressed(KeyEnter) || in.Keyboard.Input != "ab" {
		t.Errorf("keyboard %+v", in.Keyboard)
	}

	in.update(RawInput{Events: []Event{PointerGone{}}})
	if in.Mouse.Valid || in.Keyboard.WasPressed(KeyEnter) {
		t.Errorf("expected pointer gone and no keys: %+v %+v", in.Mouse, in.Keyboard)
	}
}

func TestWidgets(t *testing.T) {
	c := NewContext(nil)
	checked := false
	var button, box, header Response
	bodyShown := false

	frame := func(events ...Event) {
		c.BeginFrame(rawInput(640, 480, events...))
		c.Panel("top", PanelTop, 30, func(u *Ui) {
			u.Horizontal(func(u *Ui) {
				u.Label("File")
				u.Separator()
				u.Label("Edit")
			})
		})
		c.CentralPanel(func(u *Ui) {
			u.Heading("Title")
			button = u.Button("Press")
			box = u.Checkbox("Check", &checked)
			bodyShown = false
			header = u.CollapsingHeader("More", false, func(u *Ui) {
				bodyShown = true
				u.Label("body")
			})
			u.Group(func(u *Ui) { u.Label("grouped") })
		})
		c.EndFrame()
	}

	frame()
	if button.Clicked || button.Hovered {
		t.Errorf("unexpected button interaction %+v", button)
	}
	if button.Rect.P0[1] < 30 {
		t.Errorf("central panel content overlaps top panel: %v", button.Rect)
	}
	if bodyShown {
		t.Errorf("collapsed header body shown")
	}

	click := func(r math.Extent2D) {
		frame(PointerButton{Pos: r.Center(), Button: MouseButtonPrimary, Pressed: true})
		frame(PointerButton{Pos: r.Center(), Button: MouseButtonPrimary, Pressed: false})
	}

	click(button.Rect)
	if !button.Clicked {
		t.Errorf("expected button click")
	}

	click(box.Rect)
	if !checked || !box.Changed {
		t.Errorf("expected checkbox toggle: %v %+v", checked, box)
	}

	click(header.Rect)
	frame()
	if !bodyShown {
		t.Errorf("expected header body after click")
	}
}
