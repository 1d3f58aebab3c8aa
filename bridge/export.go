// bridge/export.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bridge

import (
	"github.com/brunoga/deep"
	"github.com/cockroachdb/errors"
)

var (
	ErrNotInitialized = errors.New("ui engine not initialized")
	ErrEmptyFrame     = errors.New("no geometry in the current frame")
	ErrNoFontAtlas    = errors.New("font atlas not yet available")
)

// RenderView is a view of the current frame's geometry. Its slices alias
// the engine's buffers and are only valid until the next call to
// NewFrame or Render; use Clone to retain the data.
type RenderView struct {
	Vertices []UIVertex
	Indices  []uint32
	// Number of textures referenced by the vertices; always 1, the font
	// atlas.
	TexturesCount uint32
}

func (v RenderView) Clone() RenderView {
	return deep.MustCopy(v)
}

// FontView is a view of the latched font atlas as RGBA8 pixels, row
// major. The pixels must not be modified.
type FontView struct {
	Pixels        []byte
	Width, Height uint32
}

func (v FontView) Clone() FontView {
	return deep.MustCopy(v)
}

// RenderData returns the current frame's geometry; it returns false if
// the engine isn't initialized or the frame produced no vertices.
func (e *Engine) RenderData() (RenderView, bool) {
	v, err := e.RenderDataErr()
	return v, err == nil
}

// RenderDataErr is like RenderData but reports why no geometry is
// available.
func (e *Engine) RenderDataErr() (RenderView, error) {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	s := e.state
	if s == nil {
		return RenderView{}, ErrNotInitialized
	}
	if s.geometry.IsEmpty() {
		return RenderView{}, ErrEmptyFrame
	}
	return RenderView{
		Vertices:      s.geometry.Vertices,
		Indices:       s.geometry.Indices,
		TexturesCount: 1,
	}, nil
}

// FontTexture returns the font atlas; it returns false until a frame has
// produced one.
func (e *Engine) FontTexture() (FontView, bool) {
	v, err := e.FontTextureErr()
	return v, err == nil
}

func (e *Engine) FontTextureErr() (FontView, error) {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	s := e.state
	if s == nil {
		return FontView{}, ErrNotInitialized
	}
	if !s.atlas.Present() {
		return FontView{}, ErrNoFontAtlas
	}
	return FontView{Pixels: s.atlas.Pixels, Width: s.atlas.Width, Height: s.atlas.Height}, nil
}
