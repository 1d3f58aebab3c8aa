// bridge/stats.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bridge

import (
	"fmt"
	"log/slog"
)

// FrameStats encapsulates assorted statistics from converting a frame's
// primitives into the geometry buffer.
type FrameStats struct {
	Frame                            uint64
	Meshes                           int
	Vertices, Indices                int
	DroppedVertices, DroppedTris     int
	DroppedPrimitives                int
	ClippedPrimitives, TextureDeltas int
}

func (fs *FrameStats) String() string {
	return fmt.Sprintf("frame %d: %d meshes, %d vertices, %d indices (dropped %d vertices, %d tris, %d primitives)",
		fs.Frame, fs.Meshes, fs.Vertices, fs.Indices, fs.DroppedVertices, fs.DroppedTris, fs.DroppedPrimitives)
}

// Merge accumulates s into fs; the frame number is taken from s.
func (fs *FrameStats) Merge(s FrameStats) {
	fs.Frame = s.Frame
	fs.Meshes += s.Meshes
	fs.Vertices += s.Vertices
	fs.Indices += s.Indices
	fs.DroppedVertices += s.DroppedVertices
	fs.DroppedTris += s.DroppedTris
	fs.DroppedPrimitives += s.DroppedPrimitives
	fs.ClippedPrimitives += s.ClippedPrimitives
	fs.TextureDeltas += s.TextureDeltas
}

func (fs FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", fs.Frame),
		slog.Int("primitives", fs.ClippedPrimitives),
		slog.Int("meshes", fs.Meshes),
		slog.Int("vertices", fs.Vertices),
		slog.Int("indices", fs.Indices),
		slog.Int("dropped_vertices", fs.DroppedVertices),
		slog.Int("dropped_tris", fs.DroppedTris),
		slog.Int("dropped_primitives", fs.DroppedPrimitives),
		slog.Int("texture_deltas", fs.TextureDeltas),
	)
}
