// bridge/atlas.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bridge

import (
	"github.com/vkengine/uibridge/math"
	"github.com/vkengine/uibridge/ui"
)

// FontAtlasCache holds the font atlas as RGBA8 pixels. The first atlas
// found in a frame's texture deltas is kept for the rest of the cache's
// lifetime; later atlases are ignored.
type FontAtlasCache struct {
	Pixels        []byte
	Width, Height uint32
	present       bool
}

func (c *FontAtlasCache) Present() bool {
	return c.present
}

func (c *FontAtlasCache) Reset() {
	*c = FontAtlasCache{}
}

// Latch scans the texture deltas in order and caches the first image
// with a nonzero size. It returns true if the cache was filled by this
// call. Once filled, later atlas updates are ignored until Reset; the
// ui atlas stops growing once sent, so the cached size stays valid.
func (c *FontAtlasCache) Latch(delta ui.TexturesDelta) bool {
	if c.present {
		return false
	}

	for _, set := range delta.Set {
		if pix, w, h, ok := rgbaPixels(set.Delta.Image); ok {
			c.Pixels, c.Width, c.Height = pix, uint32(w), uint32(h)
			c.present = true
			return true
		}
	}
	return false
}

// rgbaPixels converts an image to RGBA8. Coverage images become white
// with the coverage in alpha.
func rgbaPixels(img ui.ImageData) ([]byte, int, int, bool) {
	switch im := img.(type) {
	case *ui.FontImage:
		if im.Width == 0 || im.Height == 0 || len(im.Pixels) < im.Width*im.Height {
			return nil, 0, 0, false
		}
		pix := make([]byte, 0, 4*im.Width*im.Height)
		for _, a := range im.Pixels[:im.Width*im.Height] {
			pix = append(pix, 255, 255, 255, uint8(math.Clamp(a*255, 0, 255)))
		}
		return pix, im.Width, im.Height, true

	case *ui.ColorImage:
		if im.Width == 0 || im.Height == 0 || len(im.Pixels) < im.Width*im.Height {
			return nil, 0, 0, false
		}
		pix := make([]byte, 0, 4*im.Width*im.Height)
		for _, c := range im.Pixels[:im.Width*im.Height] {
			pix = append(pix, c[0], c[1], c[2], c[3])
		}
		return pix, im.Width, im.Height, true

	default:
		return nil, 0, 0, false
	}
}
