// ui/texture.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"fmt"
)

// TextureID identifies a texture that the host renderer must keep
// resident. The font atlas is always FontTextureID; user textures are
// allocated above it.
type TextureID uint64

const FontTextureID TextureID = 0

func (id TextureID) String() string {
	if id == FontTextureID {
		return "font-atlas"
	}
	return fmt.Sprintf("tex-%d", uint64(id))
}

// ImageData is either a *FontImage or a *ColorImage.
type ImageData interface {
	// Size returns the image's width and height in pixels.
	Size() [2]int
	isImageData()
}

// FontImage is a single-channel coverage image; each value is in [0,1].
type FontImage struct {
	Width, Height int
	Pixels        []float32
}

func (f *FontImage) Size() [2]int { return [2]int{f.Width, f.Height} }
func (*FontImage) isImageData()   {}

// ColorImage stores non-premultiplied RGBA pixels in row-major order.
type ColorImage struct {
	Width, Height int
	Pixels        []Color32
}

func (c *ColorImage) Size() [2]int { return [2]int{c.Width, c.Height} }
func (*ColorImage) isImageData()   {}

// ImageDelta describes new contents for (part of) a texture. A nil Pos
// means that Image replaces the whole texture; otherwise Image is written
// with its upper-left corner at Pos.
type ImageDelta struct {
	Image ImageData
	Pos   *[2]int
}

// IsWhole returns true if the delta replaces the entire texture.
func (d ImageDelta) IsWhole() bool {
	return d.Pos == nil
}

type TextureDeltaEntry struct {
	ID    TextureID
	Delta ImageDelta
}

// TexturesDelta lists the texture changes produced by a frame. Set is
// kept in the order the changes were made; textures in Free should be
// released after the frame has been drawn.
type TexturesDelta struct {
	Set  []TextureDeltaEntry
	Free []TextureID
}

func (t *TexturesDelta) IsEmpty() bool {
	return len(t.Set) == 0 && len(t.Free) == 0
}

// Append adds the changes in other after the ones already in t.
func (t *TexturesDelta) Append(other TexturesDelta) {
	t.Set = append(t.Set, other.Set...)
	t.Free = append(t.Free, other.Free...)
}

// textureManager hands out ids for user textures and accumulates the
// deltas for the current frame.
type textureManager struct {
	nextID TextureID
	live   map[TextureID][2]int
	delta  TexturesDelta
}

func makeTextureManager() textureManager {
	return textureManager{
		nextID: FontTextureID + 1,
		live:   make(map[TextureID][2]int),
	}
}

func (tm *textureManager) alloc(img ImageData) TextureID {
	id := tm.nextID
	tm.nextID++
	tm.live[id] = img.Size()
	tm.delta.Set = append(tm.delta.Set, TextureDeltaEntry{ID: id, Delta: ImageDelta{Image: img}})
	return id
}

func (tm *textureManager) free(id TextureID) {
	if _, ok := tm.live[id]; ok {
		delete(tm.live, id)
		tm.delta.Free = append(tm.delta.Free, id)
	}
}

func (tm *textureManager) take() TexturesDelta {
	d := tm.delta
	tm.delta = TexturesDelta{}
	return d
}
