// demo/editor.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package demo builds a sample game-editor layout using only the public
// ui API: a menu bar, scene outliner, details panel, content browser,
// toolbar, status bar, and a 3D viewport placeholder.
package demo

import (
	"fmt"

	"github.com/vkengine/uibridge/math"
	"github.com/vkengine/uibridge/ui"
)

var (
	panelFill   = ui.RGB(42, 42, 45)
	menuFill    = ui.RGB(32, 32, 35)
	viewFill    = ui.RGB(22, 22, 24)
	toolFill    = ui.ColorFromHex(0x232326)
	toolBorder  = ui.ColorFromHex(0x373737)
	gridColor   = ui.RGB(45, 45, 50)
	titleColor  = ui.RGB(240, 240, 240)
	dimColor    = ui.RGB(150, 150, 150)
	accentColor = ui.ColorFromHex(0x0078d7)
	xColor      = ui.RGB(220, 100, 100)
	yColor      = ui.RGB(100, 220, 100)
	zColor      = ui.RGB(100, 150, 220)
)

type sceneNode struct {
	Label    string
	Children []string
	Open     bool
}

var sceneTree = []sceneNode{
	{Label: "World", Open: true, Children: []string{"DirectionalLight", "Cube_001", "Cube_002", "MainCamera"}},
	{Label: "Materials", Children: []string{"DefaultMaterial", "MetalMaterial"}},
	{Label: "Lighting", Children: []string{"SkyLight", "PointLight_001"}},
}

type asset struct {
	Name, Type string
	Color      ui.Color32
}

var assets = []asset{
	{"SM_Cube", "Static Mesh", ui.RGB(90, 150, 220)},
	{"SM_Sphere", "Static Mesh", ui.RGB(90, 150, 220)},
	{"M_Default", "Material", ui.RGB(220, 150, 90)},
	{"M_Metal", "Material", ui.RGB(220, 150, 90)},
	{"T_Grid", "Texture", ui.RGB(150, 220, 90)},
	{"T_Normal", "Texture", ui.RGB(150, 220, 90)},
}

var contentFolders = []string{"Meshes", "Materials", "Textures", "Blueprints", "Audio"}

// Editor holds the state of the editor layout that persists across
// frames.
type Editor struct {
	Selected      string
	SelectedAsset string
	ViewMode      string
	Flags         map[string]bool
	Frames        int

	// Toolbar state
	Tool      string
	GridSnap  bool
	AngleSnap bool
	Playback  string
}

var (
	transformTools = []string{"Move", "Rotate", "Scale"}
	playbackModes  = []string{"Play", "Pause", "Stop"}
)

func NewEditor() *Editor {
	return &Editor{
		Selected: "Cube_001",
		ViewMode: "Perspective",
		Tool:     "Move",
		Playback: "Stop",
		Flags: map[string]bool{
			"Cast Shadows":            true,
			"Receive Shadows":         true,
			"Visible":                 true,
			"Simulate Physics":        false,
			"Generate Overlap Events": false,
		},
	}
}

// Show adds the editor layout to the current frame of ctx.
func (e *Editor) Show(ctx *ui.Context) {
	e.Frames++

	st := ctx.Style()
	saved := *st
	st.PanelFill = panelFill
	defer func() { *st = saved }()

	e.menuBar(ctx)
	e.toolbar(ctx)
	e.statusBar(ctx)
	ctx.Panel("outliner", ui.PanelLeft, 260, e.outliner)
	ctx.Panel("details", ui.PanelRight, 340, e.details)
	ctx.Panel("content_browser", ui.PanelBottom, 240, e.contentBrowser)
	ctx.CentralPanel(e.viewport)
}

func (e *Editor) menuBar(ctx *ui.Context) {
	r := ctx.Panel("menu_bar", ui.PanelTop, 28, func(u *ui.Ui) {
		u.Horizontal(func(u *ui.Ui) {
			for _, m := range []string{"File", "Edit", "View", "Tools", "Build", "Window", "Help"} {
				u.SelectableLabel(false, m)
			}
			u.Separator()
			u.WeakLabel("Vulkan Engine v1.0")
		})
	})
	ctx.Painter().HLine(r.P0[0], r.P1[0], r.P1[1], ui.Stroke{Width: 1, Color: menuFill})
}

func (e *Editor) toolbar(ctx *ui.Context) {
	st := ctx.Style()
	st.PanelFill = toolFill
	r := ctx.Panel("toolbar", ui.PanelTop, 38, func(u *ui.Ui) {
		u.Horizontal(func(u *ui.Ui) {
			u.WeakLabel("Transform:")
			for _, tool := range transformTools {
				if u.SelectableLabel(e.Tool == tool, tool).Clicked {
					e.Tool = tool
				}
			}
			u.Separator()

			u.WeakLabel("Snap:")
			if u.SelectableLabel(e.GridSnap, "Grid").Clicked {
				e.GridSnap = !e.GridSnap
			}
			if u.SelectableLabel(e.AngleSnap, "Angle").Clicked {
				e.AngleSnap = !e.AngleSnap
			}
			u.Separator()

			u.WeakLabel("Playback:")
			for _, mode := range playbackModes {
				if u.SelectableLabel(e.Playback == mode, mode).Clicked {
					e.Playback = mode
				}
			}
		})
	})
	st.PanelFill = panelFill
	ctx.Painter().HLine(r.P0[0], r.P1[0], r.P1[1], ui.Stroke{Width: 1, Color: toolBorder})
}

// playbackStatus returns the status bar text for the playback state;
// while playing it pulses between the dim and highlight colors.
func (e *Editor) playbackStatus() (string, ui.Color32) {
	switch e.Playback {
	case "Play":
		pulse := math.Abs(float32(e.Frames%60)/30 - 1)
		return "Playing", ui.LerpColor(pulse, dimColor, yColor)
	case "Pause":
		return "Paused", dimColor
	default:
		return "Ready", yColor
	}
}

func (e *Editor) statusBar(ctx *ui.Context) {
	sz := ctx.ScreenRect()
	ctx.Panel("status_bar", ui.PanelBottom, 24, func(u *ui.Ui) {
		u.Horizontal(func(u *ui.Ui) {
			u.ColoredLabel(e.playbackStatus())
			u.Separator()
			u.Label(fmt.Sprintf("Frame: %d", e.Frames))
			u.Separator()
			u.WeakLabel(fmt.Sprintf("%.0fx%.0f", sz.Width(), sz.Height()))
			u.Separator()
			u.WeakLabel("Vulkan Renderer")
		})
	})
}

func (e *Editor) outliner(u *ui.Ui) {
	u.Heading("Outliner")
	u.Separator()
	for _, node := range sceneTree {
		u.CollapsingHeader(node.Label, node.Open, func(u *ui.Ui) {
			for _, child := range node.Children {
				if u.SelectableLabel(e.Selected == child, child).Clicked {
					e.Selected = child
				}
			}
		})
	}
}

func (e *Editor) details(u *ui.Ui) {
	u.Heading("Details")
	u.Separator()
	u.ColoredLabel(e.Selected, titleColor)
	u.WeakLabel("Static Mesh")
	u.Separator()

	u.CollapsingHeader("Transform", true, func(u *ui.Ui) {
		vector3(u, "Location", [3]float32{0, 0, 0})
		vector3(u, "Rotation", [3]float32{0, 45, 0})
		vector3(u, "Scale", [3]float32{1, 1, 1})
	})
	u.CollapsingHeader("Static Mesh", true, func(u *ui.Ui) {
		property(u, "Mesh Asset", "SM_Cube")
		property(u, "Material", "M_DefaultMaterial")
		property(u, "Vertices", "24")
		property(u, "Triangles", "12")
	})
	u.CollapsingHeader("Rendering", false, func(u *ui.Ui) {
		for _, f := range []string{"Cast Shadows", "Receive Shadows", "Visible"} {
			e.flag(u, f)
		}
	})
	u.CollapsingHeader("Physics", false, func(u *ui.Ui) {
		for _, f := range []string{"Simulate Physics", "Generate Overlap Events"} {
			e.flag(u, f)
		}
	})
	u.AddSpace(8)
	u.Button("+ Add Component")
}

func (e *Editor) flag(u *ui.Ui, name string) {
	v := e.Flags[name]
	if u.Checkbox(name, &v).Changed {
		e.Flags[name] = v
	}
}

func vector3(u *ui.Ui, label string, v [3]float32) {
	u.Horizontal(func(u *ui.Ui) {
		u.WeakLabel(label)
		for i, c := range []ui.Color32{xColor, yColor, zColor} {
			u.ColoredLabel([]string{"X", "Y", "Z"}[i], c)
			u.Monospace(fmt.Sprintf("%.1f", v[i]))
		}
	})
}

func property(u *ui.Ui, label, value string) {
	u.Horizontal(func(u *ui.Ui) {
		u.WeakLabel(label + ":")
		u.Label(value)
	})
}

func (e *Editor) contentBrowser(u *ui.Ui) {
	u.Horizontal(func(u *ui.Ui) {
		u.Heading("Content Browser")
		u.Button("+ Import")
	})
	u.Separator()

	u.Horizontal(func(u *ui.Ui) {
		u.SelectableLabel(false, "Content")
		u.WeakLabel(">")
		u.SelectableLabel(false, "Assets")
	})

	const itemSize, spacing = 90, 12
	start := u.Cursor()
	p := u.Painter()
	y := start[1]
	for _, f := range contentFolders {
		sz := p.Text([2]float32{start[0], y}, f, ui.BodyFont, dimColor)
		y += sz[1] + 4
	}

	x0 := start[0] + 180
	cols := max(int((u.MaxRect().P1[0]-x0)/(itemSize+spacing)), 1)
	for i, a := range assets {
		col, row := i%cols, i/cols
		pos := [2]float32{x0 + float32(col)*(itemSize+spacing), start[1] + float32(row)*(itemSize+spacing)}
		r := math.Extent2DFromMinSize(pos, itemSize, itemSize)
		border := ui.Stroke{Width: 1, Color: ui.RGB(60, 60, 60)}
		if e.SelectedAsset == a.Name {
			border = ui.Stroke{Width: 2, Color: accentColor}
		}
		p.Rect(r, 4, menuFill, border)
		p.RectFilled(math.Extent2DFromMinSize(math.Add2f(pos, [2]float32{25, 10}), 40, 40), 2, a.Color)
		p.Text(math.Add2f(pos, [2]float32{6, 56}), a.Name, ui.SmallFont, titleColor)
		p.Text(math.Add2f(pos, [2]float32{6, 72}), a.Type, ui.SmallFont, dimColor)

		if in := u.Input(); in.Mouse.Valid && in.Mouse.Released[ui.MouseButtonPrimary] && r.Inside(in.Mouse.Pos) {
			e.SelectedAsset = a.Name
		}
	}
}

func (e *Editor) viewport(u *ui.Ui) {
	r := u.MaxRect()
	p := u.Painter()
	p.RectFilled(r, 0, viewFill)

	// Ground grid
	const spacing = 40
	grid := ui.Stroke{Width: 1, Color: gridColor}
	for x := r.P0[0] + spacing; x < r.P1[0]; x += spacing {
		p.VLine(x, r.P0[1], r.P1[1], grid)
	}
	for y := r.P0[1] + spacing; y < r.P1[1]; y += spacing {
		p.HLine(r.P0[0], r.P1[0], y, grid)
	}

	// A cube in cabinet projection.
	c := r.Center()
	s := min(r.Width(), r.Height()) / 6
	d := [2]float32{s / 2, -s / 2}
	front := [][2]float32{{c[0] - s, c[1] - s}, {c[0] + s, c[1] - s}, {c[0] + s, c[1] + s}, {c[0] - s, c[1] + s}}
	top := [][2]float32{front[0], front[1], math.Add2f(front[1], d), math.Add2f(front[0], d)}
	side := [][2]float32{front[1], math.Add2f(front[1], d), math.Add2f(front[2], d), front[2]}
	edge := ui.Stroke{Width: 1.5, Color: accentColor}
	p.Path(top, true, ui.RGB(140, 140, 150), edge)
	p.Path(side, true, ui.RGB(90, 90, 100), edge)
	p.Path(front, true, ui.RGB(115, 115, 125), edge)

	p.Text(math.Add2f(r.P0, [2]float32{10, 8}), "3D Viewport", ui.BodyFont, titleColor)
	p.Text(math.Add2f(r.P0, [2]float32{10, 26}), e.ViewMode+" View", ui.SmallFont, dimColor)
	p.Text(math.Add2f(r.P0, [2]float32{10, 40}), fmt.Sprintf("%.0f x %.0f", r.Width(), r.Height()), ui.SmallFont, dimColor)

	u.Horizontal(func(u *ui.Ui) {
		u.AddSpace(max(r.Width()-330, 0))
		for _, mode := range []string{"Perspective", "Top", "Front", "Side"} {
			if u.SelectableLabel(e.ViewMode == mode, mode).Clicked {
				e.ViewMode = mode
			}
		}
	})
}
