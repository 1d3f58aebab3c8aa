// math/view_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestOrthoProjection(t *testing.T) {
	p := OrthoProjection([2]float32{800, 600})
	for _, test := range []struct {
		win, clip [2]float32
	}{
		{[2]float32{0, 0}, [2]float32{-1, 1}},
		{[2]float32{800, 600}, [2]float32{1, -1}},
		{[2]float32{400, 300}, [2]float32{0, 0}},
	} {
		v := p.Mul4x1(mgl32.Vec4{test.win[0], test.win[1], 0, 1})
		if !mgl32.FloatEqual(v[0], test.clip[0]) || !mgl32.FloatEqual(v[1], test.clip[1]) {
			t.Errorf("%v: got %v, expected %v", test.win, v, test.clip)
		}
	}
}

func TestScissorRect(t *testing.T) {
	for _, test := range []struct {
		e           Extent2D
		display, fb [2]float32
		expected    [4]int32
	}{
		{Extent2D{P1: [2]float32{800, 600}}, [2]float32{800, 600}, [2]float32{800, 600}, [4]int32{0, 0, 800, 600}},
		{Extent2D{P0: [2]float32{10, 20}, P1: [2]float32{110, 70}}, [2]float32{800, 600}, [2]float32{800, 600},
			[4]int32{10, 530, 100, 50}},
		{Extent2D{P0: [2]float32{10, 20}, P1: [2]float32{110, 70}}, [2]float32{800, 600}, [2]float32{1600, 1200},
			[4]int32{20, 1060, 200, 100}},
	} {
		if s := ScissorRect(test.e, test.display, test.fb); s != test.expected {
			t.Errorf("%v: got %v, expected %v", test.e, s, test.expected)
		}
	}
}
