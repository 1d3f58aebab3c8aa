// bridge/frame.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bridge

import (
	"log/slog"
	"time"

	"github.com/vkengine/uibridge/demo"
	"github.com/vkengine/uibridge/ui"
)

// Text is rasterized at its natural size and frames are tessellated
// without scaling.
const pixelsPerPoint = 1

// Per-frame statistics are logged at info level for this many frames
// and at debug level afterward.
const verboseFrames = 5

// NewFrame begins a frame, reporting the current screen size and pointer
// position to the UI.
func (e *Engine) NewFrame() {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	s := e.state
	if s == nil {
		return
	}

	ppp := float32(pixelsPerPoint)
	monitor := [2]float32{s.width, s.height}
	now := float64(time.Now().UnixNano()) / 1e9
	raw := ui.RawInput{
		ViewportID: ui.RootViewport,
		Viewports: map[ui.ViewportID]ui.ViewportInfo{
			ui.RootViewport: {NativePixelsPerPoint: &ppp, MonitorSize: &monitor},
		},
		Time: &now,
	}
	if s.pointer != nil {
		raw.Events = append(raw.Events, ui.PointerMoved{Pos: *s.pointer})
	}

	s.ctx.BeginFrame(raw)
	s.inFrame = true
}

// Build calls fn to add content to the current frame. fn must not call
// back into the Engine. It returns false if the engine is not
// initialized or no frame has been started.
func (e *Engine) Build(fn func(*ui.Context)) bool {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	s := e.state
	if s == nil || !s.inFrame {
		return false
	}
	fn(s.ctx)
	return true
}

// ShowDemo adds the editor layout to the current frame.
func (e *Engine) ShowDemo() {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	s := e.state
	if s == nil || !s.inFrame {
		return
	}
	if s.editor == nil {
		s.editor = demo.NewEditor()
	}
	s.editor.Show(s.ctx)
}

// Render ends the current frame, tessellates it, and refills the
// geometry buffer. It returns true if the frame produced any vertices.
// state is informational only.
func (e *Engine) Render(state *EngineState) bool {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	s := e.state
	if s == nil {
		return false
	}
	if !s.inFrame {
		e.lg.Warn("Render called without NewFrame")
	}

	out := s.ctx.EndFrame()
	s.inFrame = false
	s.lastOutput = &out
	s.frames++

	stats := FrameStats{Frame: s.frames, TextureDeltas: len(out.TexturesDelta.Set)}

	if s.atlas.Latch(out.TexturesDelta) {
		e.lg.Infof("font atlas: %dx%d", s.atlas.Width, s.atlas.Height)
	}

	prims := s.ctx.Tessellate(out.Shapes, pixelsPerPoint)
	stats.ClippedPrimitives = len(prims)

	s.geometry.Reset()
	filter := makeVertexFilter(s.width, s.height, e.config.VertexMargin)
	for _, p := range prims {
		if m, ok := p.Primitive.(*ui.Mesh); ok {
			s.geometry.AppendMesh(m, filter, &stats)
		} else {
			stats.DroppedPrimitives++
		}
	}
	stats.Vertices, stats.Indices = len(s.geometry.Vertices), len(s.geometry.Indices)
	s.stats = stats

	if s.frames <= verboseFrames {
		e.lg.Info("rendered frame", slog.Any("stats", stats))
	} else {
		e.lg.Debug("rendered frame", slog.Any("stats", stats))
	}

	e.record(s, state)

	return !s.geometry.IsEmpty()
}

func (e *Engine) record(s *readyState, state *EngineState) {
	if e.recorder == nil {
		return
	}
	if limit := e.config.CaptureFrames; limit > 0 && e.recordedFrames >= limit {
		return
	}

	rec := &FrameRecord{
		Frame:      s.frames,
		Time:       float64(time.Now().UnixNano()) / 1e9,
		ScreenSize: [2]float32{s.width, s.height},
		Vertices:   s.geometry.Vertices,
		Indices:    s.geometry.Indices,
		Stats:      s.stats,
		AtlasSize:  [2]uint32{s.atlas.Width, s.atlas.Height},
	}
	if state != nil {
		rec.State = *state
	}

	if err := e.recorder.RecordFrame(rec); err != nil {
		e.lg.Errorf("frame %d: unable to record: %v", s.frames, err)
		e.recorder = nil
		return
	}
	e.recordedFrames++
}

// Stats returns the statistics from the most recent Render call.
func (e *Engine) Stats() (FrameStats, bool) {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	if s := e.state; s != nil && s.frames > 0 {
		return s.stats, true
	}
	return FrameStats{}, false
}

// LastOutput returns the UI output of the most recent frame.
func (e *Engine) LastOutput() (*ui.Output, bool) {
	e.mu.Lock(e.lg)
	defer e.mu.Unlock(e.lg)

	if s := e.state; s != nil && s.lastOutput != nil {
		return s.lastOutput, true
	}
	return nil, false
}
