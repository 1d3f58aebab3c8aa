// capture/summary.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package capture

import (
	"github.com/vkengine/uibridge/bridge"
	"github.com/vkengine/uibridge/util"
)

// Summary aggregates the frames of a capture.
type Summary struct {
	Session     string
	Frames      int
	EmptyFrames int
	MaxVertices int
	MaxIndices  int
	MeanFPS     float32
	Totals      bridge.FrameStats
	ScreenSizes [][2]float32
}

func Summarize(h Header, frames []bridge.FrameRecord) Summary {
	s := Summary{Session: h.Session, Frames: len(frames)}

	s.EmptyFrames = len(util.FilterSlice(frames, func(f bridge.FrameRecord) bool { return len(f.Vertices) == 0 }))
	s.MaxVertices = util.ReduceSlice(frames, func(f bridge.FrameRecord, m int) int { return max(m, len(f.Vertices)) }, 0)
	s.MaxIndices = util.ReduceSlice(frames, func(f bridge.FrameRecord, m int) int { return max(m, len(f.Indices)) }, 0)

	if len(frames) > 0 {
		fps := util.ReduceSlice(frames, func(f bridge.FrameRecord, sum float32) float32 { return sum + f.State.FPS }, 0)
		s.MeanFPS = fps / float32(len(frames))
	}

	sizes := make(map[[2]float32]interface{})
	for _, f := range frames {
		s.Totals.Merge(f.Stats)
		if _, ok := sizes[f.ScreenSize]; !ok {
			sizes[f.ScreenSize] = nil
			s.ScreenSizes = append(s.ScreenSizes, f.ScreenSize)
		}
	}
	return s
}
