// renderer/ogl2.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"C"
	"unsafe"

	"github.com/vkengine/uibridge/bridge"
	"github.com/vkengine/uibridge/log"
	"github.com/vkengine/uibridge/math"
	"github.com/vkengine/uibridge/util"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/gl/v2.1/gl"
)

var vertexStride = int32(unsafe.Sizeof(bridge.UIVertex{}))

type OpenGL2Renderer struct {
	lg              *log.Logger
	createdTextures map[uint32]int

	fontTexture uint32
	fontSize    [2]uint32
	fontPixels  *byte

	ClearColor [4]float32
}

// NewOpenGL2Renderer initializes OpenGL; the context must already be
// current.
func NewOpenGL2Renderer(lg *log.Logger) (*OpenGL2Renderer, error) {
	lg.Info("Starting OpenGL2Renderer initialization")
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize OpenGL")
	}
	vendor, renderer := gl.GetString(gl.VENDOR), gl.GetString(gl.RENDERER)
	v, r := (*C.char)(unsafe.Pointer(vendor)), (*C.char)(unsafe.Pointer(renderer))
	lg.Infof("OpenGL vendor %s renderer %s", C.GoString(v), C.GoString(r))

	lg.Info("Finished OpenGL2Renderer initialization")
	return &OpenGL2Renderer{
		lg:              lg,
		createdTextures: make(map[uint32]int),
		ClearColor:      [4]float32{0.1, 0.1, 0.12, 1},
	}, nil
}

func (ogl2 *OpenGL2Renderer) Dispose() {
	for texid := range ogl2.createdTextures {
		gl.DeleteTextures(1, &texid)
	}
	clear(ogl2.createdTextures)
	ogl2.fontTexture = 0
}

func (ogl2 *OpenGL2Renderer) textureBytes() int {
	reduce := func(id uint32, bytes int, total int) int { return total + bytes }
	return util.ReduceMap[uint32, int, int](ogl2.createdTextures, reduce, 0)
}

func (ogl2 *OpenGL2Renderer) createdTexture(texid uint32, bytes int) {
	_, exists := ogl2.createdTextures[texid]
	ogl2.createdTextures[texid] = bytes

	mb := float32(ogl2.textureBytes()) / (1024 * 1024)
	if exists {
		ogl2.lg.Infof("Updated tex id %d: %d bytes -> %.2f MiB of textures total", texid, bytes, mb)
	} else {
		ogl2.lg.Infof("Created tex id %d: %d bytes -> %.2f MiB of textures total", texid, bytes, mb)
	}
}

func (ogl2 *OpenGL2Renderer) SetFontTexture(fv bridge.FontView) {
	if len(fv.Pixels) == 0 || len(fv.Pixels) < int(fv.Width*fv.Height*4) {
		return
	}
	if ogl2.fontTexture != 0 && ogl2.fontSize == [2]uint32{fv.Width, fv.Height} && ogl2.fontPixels == &fv.Pixels[0] {
		return
	}

	if ogl2.fontTexture == 0 {
		gl.GenTextures(1, &ogl2.fontTexture)
	}

	var lastTexture int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &lastTexture)

	gl.BindTexture(gl.TEXTURE_2D, ogl2.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(fv.Width), int32(fv.Height), 0, gl.RGBA,
		gl.UNSIGNED_BYTE, unsafe.Pointer(&fv.Pixels[0]))
	gl.BindTexture(gl.TEXTURE_2D, uint32(lastTexture))

	ogl2.fontSize = [2]uint32{fv.Width, fv.Height}
	ogl2.fontPixels = &fv.Pixels[0]
	ogl2.createdTexture(ogl2.fontTexture, len(fv.Pixels))
}

func (ogl2 *OpenGL2Renderer) Draw(rv bridge.RenderView, displaySize, framebufferSize [2]float32) RendererStats {
	var stats RendererStats
	stats.textureBytes = ogl2.textureBytes()

	gl.Viewport(0, 0, int32(framebufferSize[0]), int32(framebufferSize[1]))
	gl.Disable(gl.SCISSOR_TEST)
	c := ogl2.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if len(rv.Vertices) == 0 || len(rv.Indices) == 0 {
		return stats
	}

	proj := math.OrthoProjection(displaySize)
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&proj[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	s := math.ScissorRect(math.Extent2D{P1: displaySize}, displaySize, framebufferSize)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(s[0], s[1], s[2], s[3])

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)

	if ogl2.fontTexture != 0 {
		gl.Enable(gl.TEXTURE_2D)
		gl.BindTexture(gl.TEXTURE_2D, ogl2.fontTexture)
	}

	v := unsafe.Pointer(&rv.Vertices[0])
	gl.EnableClientState(gl.VERTEX_ARRAY)
	gl.VertexPointer(2, gl.FLOAT, vertexStride, v)
	gl.EnableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.TexCoordPointer(2, gl.FLOAT, vertexStride, unsafe.Add(v, unsafe.Offsetof(rv.Vertices[0].TexCoord)))
	gl.EnableClientState(gl.COLOR_ARRAY)
	gl.ColorPointer(4, gl.UNSIGNED_BYTE, vertexStride, unsafe.Add(v, unsafe.Offsetof(rv.Vertices[0].Color)))

	gl.DrawElements(gl.TRIANGLES, int32(len(rv.Indices)), gl.UNSIGNED_INT, unsafe.Pointer(&rv.Indices[0]))
	stats.nDrawCalls++
	stats.nVertices += len(rv.Vertices)
	stats.nTriangles += len(rv.Indices) / 3

	gl.DisableClientState(gl.VERTEX_ARRAY)
	gl.DisableClientState(gl.TEXTURE_COORD_ARRAY)
	gl.DisableClientState(gl.COLOR_ARRAY)
	gl.Disable(gl.TEXTURE_2D)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.SCISSOR_TEST)

	return stats
}
