// ui/context.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"github.com/vkengine/uibridge/log"
	"github.com/vkengine/uibridge/math"
)

type CursorIcon int

const (
	CursorDefault CursorIcon = iota
	CursorPointingHand
	CursorText
)

// PlatformOutput holds requests from the UI to the host windowing system.
type PlatformOutput struct {
	Cursor     CursorIcon
	CopiedText string
}

// Output is the result of a frame: what the host must do with its
// textures and the shapes to be tessellated and drawn.
type Output struct {
	Platform       PlatformOutput
	TexturesDelta  TexturesDelta
	Shapes         []ClippedShape
	PixelsPerPoint float32
}

// Context holds all of the state of the immediate-mode UI across frames.
// A frame is bracketed by BeginFrame and EndFrame; in between, content
// is added through Painter and the widgets returned by the panel
// functions. A Context is not safe for concurrent use.
type Context struct {
	lg *log.Logger

	fonts          *Fonts
	pixelsPerPoint float32
	textures       textureManager
	input          InputState
	style          Style

	inFrame  bool
	frameNum uint64
	shapes   []ClippedShape
	platform PlatformOutput
	// Screen area not yet claimed by panels this frame.
	available math.Extent2D
	// Persistent per-widget state (e.g., whether a collapsing header is
	// open), keyed by widget id.
	open map[string]bool
}

func NewContext(lg *log.Logger) *Context {
	return &Context{
		lg:             lg,
		pixelsPerPoint: 1,
		textures:       makeTextureManager(),
		style:          DefaultStyle(),
		open:           make(map[string]bool),
	}
}

// SetFonts replaces the fonts used by the context. The new atlas is sent
// to the host as a whole in the next frame's output.
func (c *Context) SetFonts(defs FontDefinitions) error {
	fonts, err := NewFonts(defs)
	if err != nil {
		c.lg.Errorf("SetFonts: %v", err)
		return err
	}
	c.fonts = fonts
	return nil
}

func (c *Context) Fonts() *Fonts {
	return c.fonts
}

func (c *Context) SetPixelsPerPoint(ppp float32) {
	if ppp > 0 {
		c.pixelsPerPoint = ppp
	}
}

func (c *Context) PixelsPerPoint() float32 {
	return c.pixelsPerPoint
}

func (c *Context) Style() *Style {
	return &c.style
}

func (c *Context) Input() *InputState {
	return &c.input
}

func (c *Context) FrameNumber() uint64 {
	return c.frameNum
}

// ScreenRect returns the logical area of the screen in points.
func (c *Context) ScreenRect() math.Extent2D {
	return c.input.ScreenRect
}

// LoadTexture registers a new texture with the host; its contents are
// included in the next frame's TexturesDelta.
func (c *Context) LoadTexture(img ImageData) TextureID {
	return c.textures.alloc(img)
}

func (c *Context) FreeTexture(id TextureID) {
	c.textures.free(id)
}

// BeginFrame starts a new frame with the given input.
func (c *Context) BeginFrame(raw RawInput) {
	if c.inFrame {
		c.lg.Warn("BeginFrame called without EndFrame; discarding previous frame")
	}
	if c.fonts == nil {
		// Nothing installed fonts; fall back to the defaults.
		if err := c.SetFonts(DefaultFontDefinitions()); err != nil {
			c.lg.Errorf("unable to install default fonts: %v", err)
		}
	}

	if vp, ok := raw.Viewports[raw.ViewportID]; ok && vp.NativePixelsPerPoint != nil {
		c.SetPixelsPerPoint(*vp.NativePixelsPerPoint)
	}

	c.input.update(raw)
	c.inFrame = true
	c.frameNum++
	c.shapes = c.shapes[:0]
	c.platform = PlatformOutput{}
	c.available = c.input.ScreenRect
}

// EndFrame finishes the current frame and returns its output. The font
// atlas delta, if any, precedes the user texture changes.
func (c *Context) EndFrame() Output {
	if !c.inFrame {
		c.lg.Warn("EndFrame called without BeginFrame")
	}
	c.inFrame = false

	var delta TexturesDelta
	if c.fonts != nil {
		if fd, ok := c.fonts.takeDelta(); ok {
			delta.Set = append(delta.Set, TextureDeltaEntry{ID: FontTextureID, Delta: fd})
		}
	}
	delta.Append(c.textures.take())

	out := Output{
		Platform:       c.platform,
		TexturesDelta:  delta,
		Shapes:         c.shapes,
		PixelsPerPoint: c.pixelsPerPoint,
	}
	// The caller owns the returned shapes.
	c.shapes = nil
	return out
}

// Tessellate converts shapes to pixel-space clipped primitives.
func (c *Context) Tessellate(shapes []ClippedShape, pixelsPerPoint float32) []ClippedPrimitive {
	return NewTessellator(pixelsPerPoint, c.fonts).Tessellate(shapes)
}

// Painter returns a painter that draws over the whole screen.
func (c *Context) Painter() *Painter {
	return &Painter{ctx: c, clip: math.EverythingExtent2D()}
}

func (c *Context) addShape(clip math.Extent2D, s Shape) {
	c.shapes = append(c.shapes, ClippedShape{ClipRect: clip, Shape: s})
}

func (c *Context) setCursor(cursor CursorIcon) {
	c.platform.Cursor = cursor
}
