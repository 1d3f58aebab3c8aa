// cmd/uibridge/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// uibridge is built with -buildmode=c-shared and exposes a bridge.Engine
// to native hosts through a flat C ABI. The exported names and structs
// match engine_ui_ffi.h, so existing hosts link against it unchanged.
// Geometry and the font atlas are copied into C-heap buffers owned by
// the library; they remain valid until the next call to
// egui_get_render_data, egui_get_font_texture_data, or egui_cleanup.
package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

typedef struct EngineState {
    float fps;
    float frame_time;
    uint64_t frame_count;
    float total_time;
} EngineState;

typedef struct UIVertex {
    float pos[2];
    float tex_coord[2];
    uint32_t color;
} UIVertex;

typedef struct RenderData {
    const UIVertex* vertices_ptr;
    size_t vertices_count;
    const uint32_t* indices_ptr;
    size_t indices_count;
    size_t textures_count;
} RenderData;

typedef struct FontTextureData {
    const uint8_t* pixels_ptr;
    uint32_t width;
    uint32_t height;
    bool has_data;
} FontTextureData;
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/vkengine/uibridge/bridge"
	"github.com/vkengine/uibridge/capture"
	"github.com/vkengine/uibridge/log"
)

// cBuffer is a C-heap allocation that grows as needed and is reused
// across frames.
type cBuffer struct {
	ptr unsafe.Pointer
	cap int
}

func (b *cBuffer) copyFrom(src unsafe.Pointer, n int) unsafe.Pointer {
	if n == 0 {
		return nil
	}
	if n > b.cap {
		p := C.realloc(b.ptr, C.size_t(n))
		if p == nil {
			return nil
		}
		b.ptr, b.cap = p, n
	}
	C.memcpy(b.ptr, src, C.size_t(n))
	return b.ptr
}

func (b *cBuffer) free() {
	C.free(b.ptr)
	b.ptr, b.cap = nil, 0
}

var lib struct {
	mu       sync.Mutex
	lg       *log.Logger
	config   *bridge.Config
	engine   *bridge.Engine
	recorder *capture.Recorder

	vertices, indices, pixels cBuffer

	// Size of the atlas held in pixels.
	atlasSize [2]uint32
}

// setup loads the configuration and opens the log the first time the
// library is used. lib.mu must be held.
func setup() {
	if lib.lg != nil {
		return
	}
	config, err := bridge.LoadConfig(bridge.ConfigFilePath())
	lib.config = config
	lib.lg = log.New(config.LogLevel, config.LogDir)
	if err != nil {
		lib.lg.Errorf("%v", err)
	}
}

// engine returns the live engine, or nil before egui_init and after
// egui_cleanup.
func engine() *bridge.Engine {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	return lib.engine
}

//export egui_init
func egui_init(surface, backend unsafe.Pointer) (ok C.bool) {
	lib.mu.Lock()
	defer lib.mu.Unlock()

	setup()
	defer lib.lg.CatchAndReportCrash()

	if lib.engine == nil {
		var opts []bridge.Option
		if lib.config.CapturePath != "" {
			if r, err := capture.Create(lib.config.CapturePath, lib.lg); err != nil {
				lib.lg.Errorf("%s: %v", lib.config.CapturePath, err)
			} else {
				lib.recorder = r
				opts = append(opts, bridge.WithRecorder(r))
			}
		}
		lib.engine = bridge.NewEngine(lib.lg, lib.config, opts...)
	}
	return C.bool(lib.engine.Init(bridge.Handle(surface), bridge.Handle(backend)))
}

//export egui_set_screen_size
func egui_set_screen_size(width, height C.float) {
	if e := engine(); e != nil {
		defer lib.lg.CatchAndReportCrash()
		e.SetScreenSize(float32(width), float32(height))
	}
}

//export egui_new_frame
func egui_new_frame() {
	if e := engine(); e != nil {
		defer lib.lg.CatchAndReportCrash()
		e.NewFrame()
	}
}

//export egui_show_demo
func egui_show_demo() {
	if e := engine(); e != nil {
		defer lib.lg.CatchAndReportCrash()
		e.ShowDemo()
	}
}

// egui_render ends the frame and prepares its geometry. The command buffer
// is accepted for compatibility; recording draw commands is left to the
// host.
//
//export egui_render
func egui_render(state *C.EngineState, commandBuffer unsafe.Pointer) (ok C.bool) {
	e := engine()
	if e == nil {
		return false
	}
	defer lib.lg.CatchAndReportCrash()

	var s *bridge.EngineState
	if state != nil {
		s = &bridge.EngineState{
			FPS:        float32(state.fps),
			FrameTime:  float32(state.frame_time),
			FrameCount: uint64(state.frame_count),
			TotalTime:  float32(state.total_time),
		}
	}
	return C.bool(e.Render(s))
}

//export egui_get_render_data
func egui_get_render_data(out *C.RenderData) (ok C.bool) {
	e := engine()
	if e == nil || out == nil {
		return false
	}
	defer lib.lg.CatchAndReportCrash()

	v, found := e.RenderData()
	if !found {
		return false
	}

	lib.mu.Lock()
	defer lib.mu.Unlock()

	nv := len(v.Vertices) * int(unsafe.Sizeof(v.Vertices[0]))
	vp := lib.vertices.copyFrom(unsafe.Pointer(&v.Vertices[0]), nv)
	if vp == nil {
		lib.lg.Errorf("unable to allocate %d bytes for vertices", nv)
		return false
	}
	// Every triangle may have been culled, leaving vertices but no
	// indices.
	var ip unsafe.Pointer
	if len(v.Indices) > 0 {
		if ip = lib.indices.copyFrom(unsafe.Pointer(&v.Indices[0]), 4*len(v.Indices)); ip == nil {
			lib.lg.Errorf("unable to allocate %d bytes for indices", 4*len(v.Indices))
			return false
		}
	}

	*out = C.RenderData{
		vertices_ptr:   (*C.UIVertex)(vp),
		vertices_count: C.size_t(len(v.Vertices)),
		indices_ptr:    (*C.uint32_t)(ip),
		indices_count:  C.size_t(len(v.Indices)),
		textures_count: C.size_t(v.TexturesCount),
	}
	return true
}

//export egui_get_font_texture_data
func egui_get_font_texture_data(out *C.FontTextureData) (ok C.bool) {
	e := engine()
	if e == nil || out == nil {
		return false
	}
	defer lib.lg.CatchAndReportCrash()

	fv, found := e.FontTexture()
	if !found {
		*out = C.FontTextureData{}
		return false
	}

	lib.mu.Lock()
	defer lib.mu.Unlock()

	// The atlas is latched once, so it only needs to be copied once.
	if sz := [2]uint32{fv.Width, fv.Height}; sz != lib.atlasSize || lib.pixels.ptr == nil {
		if lib.pixels.copyFrom(unsafe.Pointer(&fv.Pixels[0]), len(fv.Pixels)) == nil {
			lib.lg.Errorf("unable to allocate %d bytes for the font atlas", len(fv.Pixels))
			return false
		}
		lib.atlasSize = sz
	}

	*out = C.FontTextureData{
		pixels_ptr: (*C.uint8_t)(lib.pixels.ptr),
		width:      C.uint32_t(fv.Width),
		height:     C.uint32_t(fv.Height),
		has_data:   true,
	}
	return true
}

//export egui_handle_mouse_event
func egui_handle_mouse_event(x, y C.float, buttons C.uint, pressed C.bool) {
	if e := engine(); e != nil {
		defer lib.lg.CatchAndReportCrash()
		e.HandleMouseEvent(float32(x), float32(y), uint32(buttons), bool(pressed))
	}
}

//export egui_handle_key_event
func egui_handle_key_event(key C.uint, pressed C.bool, modifiers C.uint) {
	if e := engine(); e != nil {
		defer lib.lg.CatchAndReportCrash()
		e.HandleKeyEvent(uint32(key), bool(pressed), uint32(modifiers))
	}
}

// egui_handle_event is deprecated; use egui_handle_mouse_event and
// egui_handle_key_event.
//
//export egui_handle_event
func egui_handle_event(kind C.uint, x, y C.float) {
	if e := engine(); e != nil {
		e.HandleEvent(uint32(kind), float32(x), float32(y))
	}
}

//export egui_cleanup
func egui_cleanup() {
	lib.mu.Lock()
	defer lib.mu.Unlock()

	if lib.engine == nil {
		return
	}
	defer lib.lg.CatchAndReportCrash()

	lib.engine.Cleanup()
	lib.engine = nil
	if lib.recorder != nil {
		if err := lib.recorder.Close(); err != nil {
			lib.lg.Errorf("capture: %v", err)
		}
		lib.recorder = nil
	}

	lib.vertices.free()
	lib.indices.free()
	lib.pixels.free()
	lib.atlasSize = [2]uint32{}
}

//export egui_is_initialized
func egui_is_initialized() C.bool {
	e := engine()
	return C.bool(e != nil && e.IsInitialized())
}

func main() {}
