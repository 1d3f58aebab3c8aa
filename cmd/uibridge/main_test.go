// cmd/uibridge/main_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/vkengine/uibridge/bridge"
	"github.com/vkengine/uibridge/log"
	"github.com/vkengine/uibridge/math"
	"github.com/vkengine/uibridge/ui"
)

// initLibrary initializes the library with a logger writing to a
// temporary directory and arranges for egui_cleanup to run at the end
// of the test.
func initLibrary(t *testing.T) {
	t.Helper()

	lib.mu.Lock()
	lib.lg = log.New("error", t.TempDir())
	lib.config = bridge.DefaultConfig()
	lib.mu.Unlock()

	if !egui_init(nil, nil) {
		t.Fatalf("egui_init failed")
	}
	t.Cleanup(egui_cleanup)
}

func renderFrame(t *testing.T, draw func(*ui.Context)) bool {
	t.Helper()
	egui_new_frame()
	if !engine().Build(draw) {
		t.Fatalf("Build failed")
	}
	state := _Ctype_EngineState{fps: 60, frame_time: 1.0 / 60, frame_count: 1}
	return bool(egui_render(&state, nil))
}

func drawRects(rects ...math.Extent2D) func(*ui.Context) {
	return func(c *ui.Context) {
		for _, r := range rects {
			c.Painter().RectFilled(r, 0, ui.RGB(200, 100, 50))
		}
	}
}

func rect(x0, y0, x1, y1 float32) math.Extent2D {
	return math.Extent2D{P0: [2]float32{x0, y0}, P1: [2]float32{x1, y1}}
}

func cVertices(rd *_Ctype_RenderData) []bridge.UIVertex {
	return unsafe.Slice((*bridge.UIVertex)(unsafe.Pointer(rd.vertices_ptr)), int(rd.vertices_count))
}

func cIndices(rd *_Ctype_RenderData) []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(rd.indices_ptr)), int(rd.indices_count))
}

func TestUninitialized(t *testing.T) {
	if egui_is_initialized() {
		t.Fatalf("initialized before egui_init")
	}

	egui_set_screen_size(800, 600)
	egui_new_frame()
	egui_show_demo()
	egui_handle_mouse_event(1, 2, 1, true)
	egui_handle_key_event(65, true, 0)
	egui_handle_event(0, 1, 2)

	if egui_render(nil, nil) {
		t.Errorf("egui_render succeeded without a context")
	}
	var rd _Ctype_RenderData
	if egui_get_render_data(&rd) {
		t.Errorf("render data available without a context")
	}
	var ft _Ctype_FontTextureData
	if bool(egui_get_font_texture_data(&ft)) || bool(ft.has_data) {
		t.Errorf("font texture available without a context")
	}
	egui_cleanup()
}

func TestRectangleScenario(t *testing.T) {
	initLibrary(t)
	egui_set_screen_size(800, 600)

	if !renderFrame(t, drawRects(rect(100, 100, 300, 200))) {
		t.Fatalf("egui_render returned false")
	}

	var rd _Ctype_RenderData
	if !egui_get_render_data(&rd) {
		t.Fatalf("no render data")
	}
	if rd.vertices_count != 4 || rd.indices_count != 6 || rd.textures_count != 1 {
		t.Fatalf("got %d vertices, %d indices, %d textures", rd.vertices_count, rd.indices_count, rd.textures_count)
	}
	verts := cVertices(&rd)
	if verts[0].Pos != [2]float32{100, 100} || verts[2].Pos != [2]float32{300, 200} {
		t.Errorf("unexpected vertex positions %v %v", verts[0].Pos, verts[2].Pos)
	}
	if c := ui.UnpackColor(verts[0].Color); c != ui.RGB(200, 100, 50) {
		t.Errorf("vertex color %v", c)
	}
	for _, idx := range cIndices(&rd) {
		if idx >= 4 {
			t.Errorf("index %d out of range", idx)
		}
	}

	var ft _Ctype_FontTextureData
	if !bool(egui_get_font_texture_data(&ft)) || !bool(ft.has_data) {
		t.Fatalf("no font texture")
	}
	fv, _ := engine().FontTexture()
	if uint32(ft.width) != fv.Width || uint32(ft.height) != fv.Height {
		t.Errorf("font texture %dx%d, engine has %dx%d", ft.width, ft.height, fv.Width, fv.Height)
	}
	pixels := unsafe.Slice((*byte)(unsafe.Pointer(ft.pixels_ptr)), int(ft.width)*int(ft.height)*4)
	if !bytes.Equal(pixels, fv.Pixels) {
		t.Errorf("font texture pixels differ from the engine's atlas")
	}

	// The atlas is copied once and then reused.
	p := ft.pixels_ptr
	if !egui_get_font_texture_data(&ft) || ft.pixels_ptr != p {
		t.Errorf("font texture copied again")
	}
}

func TestVertexOnlyFrame(t *testing.T) {
	initLibrary(t)
	egui_set_screen_size(800, 600)

	// The far vertex is culled, taking the only triangle with it.
	mesh := &ui.Mesh{
		Vertices: []ui.Vertex{
			{Pos: [2]float32{10, 10}, Color: ui.White},
			{Pos: [2]float32{50, 10}, Color: ui.White},
			{Pos: [2]float32{5000, 50}, Color: ui.White},
		},
		Indices: []uint32{0, 1, 2},
	}
	if !renderFrame(t, func(c *ui.Context) { c.Painter().Mesh(mesh) }) {
		t.Fatalf("egui_render returned false")
	}
	if v, ok := engine().RenderData(); !ok || len(v.Vertices) != 2 || len(v.Indices) != 0 {
		t.Fatalf("engine render data %v: %d vertices, %d indices", ok, len(v.Vertices), len(v.Indices))
	}

	var rd _Ctype_RenderData
	if !egui_get_render_data(&rd) {
		t.Fatalf("egui_get_render_data returned false for a frame with vertices")
	}
	if rd.vertices_count != 2 || rd.indices_count != 0 || rd.indices_ptr != nil {
		t.Errorf("got %d vertices, %d indices at %p", rd.vertices_count, rd.indices_count, rd.indices_ptr)
	}
	if verts := cVertices(&rd); verts[1].Pos != [2]float32{50, 10} {
		t.Errorf("unexpected vertex %v", verts[1].Pos)
	}
}

func TestBufferGrowth(t *testing.T) {
	initLibrary(t)
	egui_set_screen_size(800, 600)

	var rd _Ctype_RenderData
	renderFrame(t, drawRects(rect(0, 0, 10, 10)))
	if !egui_get_render_data(&rd) || rd.vertices_count != 4 {
		t.Fatalf("first frame: %d vertices", rd.vertices_count)
	}

	var many []math.Extent2D
	for y := float32(0); y < 10; y++ {
		for x := float32(0); x < 10; x++ {
			many = append(many, rect(x*50, y*50, x*50+40, y*50+40))
		}
	}
	renderFrame(t, drawRects(many...))
	if !egui_get_render_data(&rd) || rd.vertices_count != 400 || rd.indices_count != 600 {
		t.Fatalf("second frame: %d vertices, %d indices", rd.vertices_count, rd.indices_count)
	}
	v, _ := engine().RenderData()
	verts, indices := cVertices(&rd), cIndices(&rd)
	for i := range v.Vertices {
		if verts[i] != v.Vertices[i] {
			t.Fatalf("vertex %d: %+v, expected %+v", i, verts[i], v.Vertices[i])
		}
	}
	for i := range v.Indices {
		if indices[i] != v.Indices[i] {
			t.Fatalf("index %d: %d, expected %d", i, indices[i], v.Indices[i])
		}
	}
	grown := lib.vertices.cap

	// Smaller frames reuse the existing allocation.
	renderFrame(t, drawRects(rect(20, 20, 30, 30)))
	if !egui_get_render_data(&rd) || rd.vertices_count != 4 {
		t.Fatalf("third frame: %d vertices", rd.vertices_count)
	}
	if lib.vertices.cap != grown {
		t.Errorf("vertex buffer reallocated from %d to %d bytes", grown, lib.vertices.cap)
	}
	if verts := cVertices(&rd); verts[0].Pos != [2]float32{20, 20} {
		t.Errorf("stale vertex %v", verts[0].Pos)
	}
}

func TestCleanupAndReinit(t *testing.T) {
	initLibrary(t)
	egui_set_screen_size(800, 600)
	renderFrame(t, drawRects(rect(100, 100, 300, 200)))

	var rd _Ctype_RenderData
	var ft _Ctype_FontTextureData
	if !egui_get_render_data(&rd) || !egui_get_font_texture_data(&ft) {
		t.Fatalf("no data before cleanup")
	}

	egui_cleanup()
	if egui_is_initialized() {
		t.Errorf("initialized after egui_cleanup")
	}
	if lib.vertices.ptr != nil || lib.indices.ptr != nil || lib.pixels.ptr != nil {
		t.Errorf("buffers not freed")
	}
	if egui_render(nil, nil) || egui_get_render_data(&rd) || egui_get_font_texture_data(&ft) {
		t.Errorf("data available after egui_cleanup")
	}
	egui_cleanup()

	initLibrary(t)
	if !egui_is_initialized() {
		t.Fatalf("not initialized after second egui_init")
	}
	if sz, ok := engine().ScreenSize(); !ok || sz != [2]float32{1920, 1080} {
		t.Errorf("screen size %v not reset", sz)
	}
	if egui_get_font_texture_data(&ft) {
		t.Errorf("font texture available before the first frame")
	}

	renderFrame(t, drawRects(rect(10, 10, 20, 20)))
	if !egui_get_render_data(&rd) || rd.vertices_count != 4 {
		t.Errorf("after reinit: %d vertices", rd.vertices_count)
	}
	if !bool(egui_get_font_texture_data(&ft)) || !bool(ft.has_data) || ft.pixels_ptr == nil {
		t.Errorf("font texture not copied after reinit")
	}
}

func TestNilOutputs(t *testing.T) {
	initLibrary(t)
	renderFrame(t, drawRects(rect(10, 10, 20, 20)))

	if egui_get_render_data(nil) {
		t.Errorf("egui_get_render_data(NULL) returned true")
	}
	if egui_get_font_texture_data(nil) {
		t.Errorf("egui_get_font_texture_data(NULL) returned true")
	}
}

type panicRecorder struct{}

func (panicRecorder) RecordFrame(*bridge.FrameRecord) error {
	panic("recorder failure")
}

func TestPanicRecovery(t *testing.T) {
	initLibrary(t)

	lib.mu.Lock()
	lib.engine = bridge.NewEngine(lib.lg, lib.config, bridge.WithRecorder(panicRecorder{}))
	lib.mu.Unlock()
	if !egui_init(nil, nil) {
		t.Fatalf("egui_init failed")
	}

	egui_set_screen_size(800, 600)
	if renderFrame(t, drawRects(rect(10, 10, 20, 20))) {
		t.Errorf("egui_render returned true after a panic")
	}

	// The engine is still usable afterward.
	if !egui_is_initialized() {
		t.Errorf("not initialized after a recovered panic")
	}
	var rd _Ctype_RenderData
	if !egui_get_render_data(&rd) || rd.vertices_count != 4 {
		t.Errorf("render data after a recovered panic: %d vertices", rd.vertices_count)
	}

	crashes, _ := filepath.Glob(filepath.Join(lib.lg.LogDir, "crash-*.txt"))
	if len(crashes) == 0 {
		t.Errorf("no crash report written")
	}
}
