// bridge/engine.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package bridge drives a ui.Context on behalf of a host renderer: it
// manages the context's lifetime, turns host input into frames, and
// converts each frame's output into a single vertex/index buffer and an
// RGBA font atlas that the host can upload.
package bridge

import (
	"github.com/vkengine/uibridge/demo"
	"github.com/vkengine/uibridge/log"
	"github.com/vkengine/uibridge/ui"
	"github.com/vkengine/uibridge/util"
)

// Handle is an opaque host pointer (a surface or rendering backend). It
// is recorded but never dereferenced.
type Handle uintptr

// EngineState is per-frame timing information from the host.
type EngineState struct {
	FPS        float32
	FrameTime  float32
	FrameCount uint64
	TotalTime  float32
}

// FrameRecorder receives each rendered frame.
type FrameRecorder interface {
	RecordFrame(*FrameRecord) error
}

// FrameRecord is everything produced by one call to Render.
type FrameRecord struct {
	Frame      uint64
	Time       float64
	ScreenSize [2]float32
	State      EngineState
	Vertices   []UIVertex
	Indices    []uint32
	Stats      FrameStats
	AtlasSize  [2]uint32
}

// Engine owns a single UI context and the buffers exported from it. All
// methods may be called from any goroutine, though frames must be driven
// from one goroutine: NewFrame, content construction, Render, and then
// the export accessors, in that order.
type Engine struct {
	mu     util.LoggingMutex
	lg     *log.Logger
	config *Config

	recorder       FrameRecorder
	recordedFrames int

	// nil when uninitialized.
	state *readyState
}

// readyState is the state of an initialized Engine.
type readyState struct {
	ctx              *ui.Context
	surface, backend Handle

	width, height float32
	// Last reported pointer position, if any.
	pointer *[2]float32
	inFrame bool
	// Number of frames rendered since initialization.
	frames     uint64
	lastOutput *ui.Output

	geometry GeometryBuffer
	atlas    FontAtlasCache
	stats    FrameStats

	// Created on the first call to ShowDemo.
	editor *demo.Editor
}

type Option func(*Engine)

// WithRecorder causes each rendered frame to be passed to r.
func WithRecorder(r FrameRecorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// NewEngine returns an uninitialized Engine. A nil config gives the
// default configuration.
func NewEngine(lg *log.Logger, config *Config, opts ...Option) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	e := &Engine{lg: lg, config: config}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init creates the UI context if it doesn't already exist. It returns
// false only if the context could not be created, in which case it may
// be called again.
func (e *Engine) Init(surface, backend Handle) bool {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	if e.state != nil {
		return true
	}

	ctx := ui.NewContext(e.lg)
	if err := ctx.SetFonts(ui.DefaultFontDefinitions()); err != nil {
		e.lg.Errorf("unable to initialize fonts: %v", err)
		return false
	}
	ctx.SetPixelsPerPoint(pixelsPerPoint)

	e.state = &readyState{
		ctx:     ctx,
		surface: surface,
		backend: backend,
		width:   e.config.InitialSize[0],
		height:  e.config.InitialSize[1],
	}
	e.recordedFrames = 0
	e.lg.Info("ui context initialized", "width", e.state.width, "height", e.state.height,
		"surface", uintptr(surface), "backend", uintptr(backend))

	return true
}

// SetScreenSize sets the logical size used for subsequent frames.
func (e *Engine) SetScreenSize(width, height float32) {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	if s := e.state; s != nil {
		s.width, s.height = width, height
	}
}

// ScreenSize returns the current logical size; it returns false if the
// engine is not initialized.
func (e *Engine) ScreenSize() ([2]float32, bool) {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	if s := e.state; s != nil {
		return [2]float32{s.width, s.height}, true
	}
	return [2]float32{}, false
}

// Cleanup releases the UI context and all exported data. It is safe to
// call multiple times.
func (e *Engine) Cleanup() {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	if e.state != nil {
		e.lg.Info("ui context released", "frames", e.state.frames)
	}
	e.state = nil
}

func (e *Engine) IsInitialized() bool {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	return e.state != nil
}

// Config returns the engine's configuration; it must not be modified.
func (e *Engine) Config() *Config {
	return e.config
}
