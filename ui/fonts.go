// ui/fonts.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"image"
	"image/draw"
	"sync"

	"github.com/vkengine/uibridge/math"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type FontFamily int

const (
	Proportional FontFamily = iota
	Monospace
)

func (f FontFamily) String() string {
	switch f {
	case Proportional:
		return "Proportional"
	case Monospace:
		return "Monospace"
	default:
		return "Unknown"
	}
}

// FontID identifies a (family, size) combination; each one gets its own
// set of glyphs in the atlas.
type FontID struct {
	Family FontFamily
	Size   float32
}

var (
	SmallFont   = FontID{Family: Proportional, Size: 11}
	BodyFont    = FontID{Family: Proportional, Size: 14}
	HeadingFont = FontID{Family: Proportional, Size: 18}
	MonoFont    = FontID{Family: Monospace, Size: 13}
)

// FontDefinitions gives the font file contents for each family and the
// fonts whose printable ASCII glyphs are rasterized up front.
type FontDefinitions struct {
	Data    map[FontFamily][]byte
	Preload []FontID
}

// DefaultFontDefinitions uses the Go fonts for both families.
func DefaultFontDefinitions() FontDefinitions {
	return FontDefinitions{
		Data: map[FontFamily][]byte{
			Proportional: goregular.TTF,
			Monospace:    gomono.TTF,
		},
		Preload: []FontID{SmallFont, BodyFont, HeadingFont, MonoFont},
	}
}

const (
	atlasWidth         = 1024
	initialAtlasHeight = 256
	maxAtlasHeight     = 8192
	atlasPadding       = 1
	galleyCacheSize    = 2048
)

// While the following could be found via the font.Face interface each
// time a character is drawn, that is slow enough to matter, so we cache
// the information we need to draw each one here.
type Glyph struct {
	// Quad corners relative to the pen position at the top of the line.
	X0, Y0, X1, Y1 float32
	// Texture coordinates in the font atlas, in pixels.
	U0, V0, U1, V1 float32
	// Distance to advance in x after the character.
	AdvanceX float32
	// Is it a visible character (i.e., not space, tab, CR, ...)
	Visible bool
}

func (g *Glyph) Width() float32 {
	return g.X1 - g.X0
}

func (g *Glyph) Height() float32 {
	return g.Y1 - g.Y0
}

// Each installed (family,size) combination is represented by (surprise)
// a Font.
type Font struct {
	// Glyphs for the commonly-used ASCII range can be looked up using a
	// directly-mapped array, for efficiency.
	lowGlyphs [128]*Glyph
	// The remaining glyphs are stored in a map.
	glyphs map[rune]*Glyph

	ID         FontID
	Ascent     float32
	LineHeight float32

	face  font.Face
	fonts *Fonts
}

// Fonts owns the glyph atlas shared by all fonts along with a cache of
// laid-out text.
type Fonts struct {
	mu sync.Mutex

	parsed map[FontFamily]*opentype.Font
	fonts  map[FontID]*Font

	atlas     *image.Alpha
	cursor    image.Point
	rowHeight int
	whiteUV   [2]float32
	// Region of the atlas updated since the last delta was taken.
	dirty image.Rectangle
	// Set once the whole atlas has been sent; its size is fixed from
	// then on, since texture coordinates are normalized against it.
	sentWhole bool

	galleys *lru.Cache[galleyKey, *Galley]
}

// NewFonts parses the provided font data and rasterizes the preloaded
// fonts into a new atlas.
func NewFonts(defs FontDefinitions) (*Fonts, error) {
	if len(defs.Data) == 0 {
		return nil, errors.New("no font data provided")
	}

	galleys, err := lru.New[galleyKey, *Galley](galleyCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "galley cache")
	}

	f := &Fonts{
		parsed:  make(map[FontFamily]*opentype.Font),
		fonts:   make(map[FontID]*Font),
		atlas:   image.NewAlpha(image.Rect(0, 0, atlasWidth, initialAtlasHeight)),
		galleys: galleys,
	}

	for family, data := range defs.Data {
		ft, err := opentype.Parse(data)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: parse font", family)
		}
		f.parsed[family] = ft
	}

	// A small opaque block at the origin gives solid shapes a texture
	// coordinate that samples full coverage.
	p, _ := f.allocate(3, 3)
	for y := p.Y; y < p.Y+3; y++ {
		for x := p.X; x < p.X+3; x++ {
			f.atlas.Pix[f.atlas.PixOffset(x, y)] = 0xff
		}
	}
	f.whiteUV = [2]float32{float32(p.X) + 1.5, float32(p.Y) + 1.5}
	f.markDirty(image.Rect(p.X, p.Y, p.X+3, p.Y+3))

	for _, id := range defs.Preload {
		fnt, err := f.font(id)
		if err != nil {
			return nil, err
		}
		for ch := rune(32); ch < 127; ch++ {
			fnt.lookupGlyph(ch)
		}
	}

	return f, nil
}

// font returns the Font for the given id, creating it if needed. f.mu
// must be held or f must not yet be shared.
func (f *Fonts) font(id FontID) (*Font, error) {
	if fnt, ok := f.fonts[id]; ok {
		return fnt, nil
	}

	ft, ok := f.parsed[id.Family]
	if !ok {
		// Fall back to whichever family we have.
		for _, p := range f.parsed {
			ft = p
			break
		}
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    float64(id.Size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s %.1f: new face", id.Family, id.Size)
	}

	m := face.Metrics()
	fnt := &Font{
		glyphs:     make(map[rune]*Glyph),
		ID:         id,
		Ascent:     float32(m.Ascent.Ceil()),
		LineHeight: float32(m.Height.Ceil()),
		face:       face,
		fonts:      f,
	}
	f.fonts[id] = fnt
	return fnt, nil
}

// LookupGlyph returns the Glyph for the specified rune.
func (fnt *Font) lookupGlyph(ch rune) *Glyph {
	if ch >= 0 && int(ch) < len(fnt.lowGlyphs) {
		if g := fnt.lowGlyphs[ch]; g != nil {
			return g
		}
		g := fnt.createGlyph(ch)
		fnt.lowGlyphs[ch] = g
		return g
	} else if g, ok := fnt.glyphs[ch]; ok {
		return g
	} else {
		g = fnt.createGlyph(ch)
		fnt.glyphs[ch] = g
		return g
	}
}

// Internal: rasterize the glyph for a rune into the atlas and record the
// information needed to draw it.
func (fnt *Font) createGlyph(ch rune) *Glyph {
	dot := fixed.P(0, int(fnt.Ascent))
	dr, mask, maskp, advance, ok := fnt.face.Glyph(dot, ch)
	if !ok {
		if ch != '?' {
			return fnt.lookupGlyph('?')
		}
		// Last resort: return a zero-width invisible glyph
		return &Glyph{}
	}

	g := &Glyph{AdvanceX: float32(advance.Round())}
	if dr.Empty() {
		return g
	}

	p, ok := fnt.fonts.allocate(dr.Dx(), dr.Dy())
	if !ok {
		// The atlas is full; the glyph still advances the pen.
		return g
	}
	target := image.Rect(p.X, p.Y, p.X+dr.Dx(), p.Y+dr.Dy())
	draw.Draw(fnt.fonts.atlas, target, mask, maskp, draw.Src)
	fnt.fonts.markDirty(target)

	g.X0, g.Y0 = float32(dr.Min.X), float32(dr.Min.Y)
	g.X1, g.Y1 = float32(dr.Max.X), float32(dr.Max.Y)
	g.U0, g.V0 = float32(target.Min.X), float32(target.Min.Y)
	g.U1, g.V1 = float32(target.Max.X), float32(target.Max.Y)
	g.Visible = true
	return g
}

// allocate finds space for a w x h region in the atlas using a simple
// shelf packer, growing the atlas vertically if necessary and still
// possible.
func (f *Fonts) allocate(w, h int) (image.Point, bool) {
	if w+atlasPadding > atlasWidth {
		return image.Point{}, false
	}
	if f.cursor.X+w+atlasPadding > atlasWidth {
		f.cursor.X = 0
		f.cursor.Y += f.rowHeight + atlasPadding
		f.rowHeight = 0
	}
	for f.cursor.Y+h+atlasPadding > f.atlas.Bounds().Dy() {
		if !f.growAtlas() {
			return image.Point{}, false
		}
	}

	p := f.cursor
	f.cursor.X += w + atlasPadding
	f.rowHeight = max(f.rowHeight, h)
	return p, true
}

func (f *Fonts) growAtlas() bool {
	h := 2 * f.atlas.Bounds().Dy()
	if f.sentWhole || h > maxAtlasHeight {
		return false
	}
	n := image.NewAlpha(image.Rect(0, 0, atlasWidth, h))
	// Same stride, so the existing rows are a prefix of the new pixels.
	copy(n.Pix, f.atlas.Pix)
	f.atlas = n
	return true
}

func (f *Fonts) markDirty(r image.Rectangle) {
	f.dirty = f.dirty.Union(r)
}

// AtlasSize returns the current atlas dimensions in pixels.
func (f *Fonts) AtlasSize() [2]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return [2]int{f.atlas.Bounds().Dx(), f.atlas.Bounds().Dy()}
}

// WhiteUV returns the atlas pixel coordinates of a fully opaque texel.
func (f *Fonts) WhiteUV() [2]float32 {
	return f.whiteUV
}

// takeDelta returns the atlas changes since the last call. The whole
// atlas is sent the first time, after which the atlas no longer grows
// and only updated regions are sent.
func (f *Fonts) takeDelta() (ImageDelta, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	defer func() { f.dirty = image.Rectangle{} }()

	if !f.sentWhole {
		f.sentWhole = true
		return ImageDelta{Image: alphaToFontImage(f.atlas, f.atlas.Bounds())}, true
	}
	if f.dirty.Empty() {
		return ImageDelta{}, false
	}
	pos := [2]int{f.dirty.Min.X, f.dirty.Min.Y}
	return ImageDelta{Image: alphaToFontImage(f.atlas, f.dirty), Pos: &pos}, true
}

func alphaToFontImage(a *image.Alpha, r image.Rectangle) *FontImage {
	img := &FontImage{Width: r.Dx(), Height: r.Dy(), Pixels: make([]float32, 0, r.Dx()*r.Dy())}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := a.Pix[a.PixOffset(r.Min.X, y):a.PixOffset(r.Max.X, y)]
		for _, v := range row {
			img.Pixels = append(img.Pixels, float32(v)/255)
		}
	}
	return img
}

///////////////////////////////////////////////////////////////////////////
// Text layout

type galleyKey struct {
	text  string
	font  FontID
	wrapW float32
}

// GalleyGlyph is a single positioned glyph quad; Rect is relative to the
// galley's upper-left corner and UV is in atlas pixels.
type GalleyGlyph struct {
	Rect math.Extent2D
	UV   math.Extent2D
}

// Galley is a laid-out piece of text. Galleys are shared through a cache
// and must not be modified.
type Galley struct {
	Text   string
	Font   FontID
	Glyphs []GalleyGlyph
	Size   [2]float32
	Rows   int
}

// Layout lays out text in the given font, wrapping lines at spaces so
// that they are no wider than wrapWidth when it is positive.
func (f *Fonts) Layout(text string, id FontID, wrapWidth float32) *Galley {
	key := galleyKey{text: text, font: id, wrapW: max(wrapWidth, 0)}
	if g, ok := f.galleys.Get(key); ok {
		return g
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	g := &Galley{Text: text, Font: id, Rows: 1}
	fnt, err := f.font(id)
	if err != nil {
		return g
	}

	var px, py, xmax float32
	newline := func() {
		px = 0
		py += fnt.LineHeight
		g.Rows++
	}

	for _, word := range splitWords(text) {
		if word == "\n" {
			newline()
			continue
		}
		if wrapWidth > 0 && px > 0 && px+fnt.measure(word) > wrapWidth && word != " " {
			newline()
		}
		if px == 0 && word == " " && g.Rows > 1 {
			// Don't start a wrapped line with a space.
			continue
		}
		for _, ch := range word {
			glyph := fnt.lookupGlyph(ch)
			if glyph.Visible {
				g.Glyphs = append(g.Glyphs, GalleyGlyph{
					Rect: math.Extent2D{
						P0: [2]float32{px + glyph.X0, py + glyph.Y0},
						P1: [2]float32{px + glyph.X1, py + glyph.Y1},
					},
					UV: math.Extent2D{
						P0: [2]float32{glyph.U0, glyph.V0},
						P1: [2]float32{glyph.U1, glyph.V1},
					},
				})
			}
			px += glyph.AdvanceX
			xmax = max(xmax, px)
		}
	}

	g.Size = [2]float32{math.Ceil(xmax), py + fnt.LineHeight}
	f.galleys.Add(key, g)
	return g
}

// Measure returns the size of the given text when laid out without
// wrapping.
func (f *Fonts) Measure(text string, id FontID) [2]float32 {
	return f.Layout(text, id, 0).Size
}

// RowHeight returns the line height of the given font.
func (f *Fonts) RowHeight(id FontID) float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fnt, err := f.font(id); err == nil {
		return fnt.LineHeight
	}
	return id.Size
}

func (fnt *Font) measure(s string) float32 {
	var w float32
	for _, ch := range s {
		w += fnt.lookupGlyph(ch).AdvanceX
	}
	return w
}

// splitWords splits s into runs of non-space characters, single spaces,
// and newlines.
func splitWords(s string) []string {
	var words []string
	start := -1
	for i, ch := range s {
		if ch == ' ' || ch == '\n' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			words = append(words, string(ch))
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}
