// ui/fonts_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ui

import (
	"slices"
	"testing"
)

func TestNewFontsErrors(t *testing.T) {
	if _, err := NewFonts(FontDefinitions{}); err == nil {
		t.Errorf("expected error with no font data")
	}
	bad := FontDefinitions{Data: map[FontFamily][]byte{Proportional: []byte("not a font")}}
	if _, err := NewFonts(bad); err == nil {
		t.Errorf("expected error with invalid font data")
	}
}

func TestFontAtlasDeltas(t *testing.T) {
	fonts, err := NewFonts(DefaultFontDefinitions())
	if err != nil {
		t.Fatal(err)
	}

	sz := fonts.AtlasSize()
	if sz[0] != atlasWidth {
		t.Errorf("atlas width %d, expected %d", sz[0], atlasWidth)
	}

	d, ok := fonts.takeDelta()
	if !ok || !d.IsWhole() {
		t.Fatalf("expected whole atlas delta first")
	}
	img, ok := d.Image.(*FontImage)
	if !ok {
		t.Fatalf("expected *FontImage, got %T", d.Image)
	}
	if img.Width != sz[0] || img.Height != sz[1] || len(img.Pixels) != img.Width*img.Height {
		t.Errorf("atlas image %dx%d with %d pixels, expected %v", img.Width, img.Height, len(img.Pixels), sz)
	}
	w := fonts.WhiteUV()
	if c := img.Pixels[int(w[1])*img.Width+int(w[0])]; c != 1 {
		t.Errorf("white texel coverage %f", c)
	}

	if _, ok := fonts.takeDelta(); ok {
		t.Errorf("expected no delta without new glyphs")
	}

	// Preloaded glyphs don't change the atlas.
	fonts.Layout("Hello", BodyFont, 0)
	if _, ok := fonts.takeDelta(); ok {
		t.Errorf("expected no delta for preloaded glyphs")
	}

	fonts.Layout("Big", FontID{Family: Proportional, Size: 40}, 0)
	d, ok = fonts.takeDelta()
	if !ok {
		t.Fatalf("expected delta after rasterizing new glyphs")
	}
	if d.IsWhole() {
		t.Errorf("expected partial delta")
	} else {
		img := d.Image.(*FontImage)
		if d.Pos[0]+img.Width > sz[0] || d.Pos[1]+img.Height > fonts.AtlasSize()[1] {
			t.Errorf("partial delta at %v size %dx%d outside atlas", *d.Pos, img.Width, img.Height)
		}
	}
}

func TestLayout(t *testing.T) {
	fonts, err := NewFonts(DefaultFontDefinitions())
	if err != nil {
		t.Fatal(err)
	}

	g := fonts.Layout("hello world", BodyFont, 0)
	if g2 := fonts.Layout("hello world", BodyFont, 0); g2 != g {
		t.Errorf("expected cached galley")
	}
	if g.Rows != 1 || g.Size[0] <= 0 || g.Size[1] <= 0 {
		t.Errorf("unexpected galley rows %d size %v", g.Rows, g.Size)
	}
	if g.Size[1] != fonts.RowHeight(BodyFont) {
		t.Errorf("single row height %f, expected %f", g.Size[1], fonts.RowHeight(BodyFont))
	}

	wrapped := fonts.Layout("hello world", BodyFont, g.Size[0]/2)
	if wrapped.Rows != 2 {
		t.Errorf("expected 2 rows when wrapped, got %d", wrapped.Rows)
	}
	if wrapped.Size[0] >= g.Size[0] {
		t.Errorf("wrapped width %f not less than %f", wrapped.Size[0], g.Size[0])
	}

	nl := fonts.Layout("a\nb\nc", MonoFont, 0)
	if nl.Rows != 3 {
		t.Errorf("expected 3 rows, got %d", nl.Rows)
	}

	mono := fonts.Measure("iiii", MonoFont)
	if mw := fonts.Measure("MMMM", MonoFont); mw[0] != mono[0] {
		t.Errorf("monospace widths differ: %f vs %f", mw[0], mono[0])
	}

	if empty := fonts.Layout("", BodyFont, 0); len(empty.Glyphs) != 0 || empty.Size[0] != 0 {
		t.Errorf("empty text: %d glyphs, size %v", len(empty.Glyphs), empty.Size)
	}
}

func TestSplitWords(t *testing.T) {
	for _, test := range []struct {
		s     string
		words []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"ab cd", []string{"ab", " ", "cd"}},
		{"  x\n", []string{" ", " ", "x", "\n"}},
	} {
		if w := splitWords(test.s); !slices.Equal(w, test.words) {
			t.Errorf("%q: got %q, expected %q", test.s, w, test.words)
		}
	}
}

func TestAtlasSizeFixedOnceSent(t *testing.T) {
	for _, send := range []bool{false, true} {
		fonts, err := NewFonts(DefaultFontDefinitions())
		if err != nil {
			t.Fatal(err)
		}
		sz := fonts.AtlasSize()
		if send {
			if _, ok := fonts.takeDelta(); !ok {
				t.Fatalf("expected initial delta")
			}
		}

		for size := float32(40); size <= 96; size += 8 {
			fonts.Layout("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789",
				FontID{Family: Proportional, Size: size}, 0)
		}

		grown := fonts.AtlasSize()[1] > sz[1]
		if send && grown {
			t.Errorf("atlas grew from %v to %v after being sent", sz, fonts.AtlasSize())
		} else if !send && !grown {
			t.Errorf("atlas did not grow before being sent")
		}
	}
}
