// cmd/uicapture/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// uicapture records frames from a headless UI engine and summarizes
// capture files.
//
// Usage:
//
//	uicapture record [-frames n] [-size WxH] out.cap
//	uicapture inspect [-json] [-dump] [-v] capture.cap...
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vkengine/uibridge/bridge"
	"github.com/vkengine/uibridge/capture"
	"github.com/vkengine/uibridge/log"
	"github.com/vkengine/uibridge/util"

	"github.com/apenwarr/fixconsole"
	"github.com/cockroachdb/errors"
	"github.com/goforj/godump"
	"github.com/iancoleman/orderedmap"
	"golang.org/x/sync/errgroup"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: uicapture record [-frames n] [-size WxH] out.cap\n")
	fmt.Fprintf(os.Stderr, "       uicapture inspect [-json] [-dump] [-v] capture.cap...\n")
	os.Exit(1)
}

func main() {
	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	if len(os.Args) < 2 {
		usage()
	}

	var err error
	switch os.Args[1] {
	case "record":
		err = record(os.Args[2:])
	case "inspect":
		err = inspect(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "uicapture: %v\n", err)
		os.Exit(1)
	}
}

func parseSize(s string) ([2]float32, error) {
	var w, h float32
	if _, err := fmt.Sscanf(s, "%gx%g", &w, &h); err != nil {
		return [2]float32{}, errors.Wrapf(err, "%s: invalid size", s)
	}
	if w <= 0 || h <= 0 {
		return [2]float32{}, errors.Newf("%s: size must be positive", s)
	}
	return [2]float32{w, h}, nil
}

// record drives the demo editor on a headless engine and captures its
// frames.
func record(args []string) error {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	frames := fs.Int("frames", 60, "number of frames to record")
	size := fs.String("size", "1920x1080", "screen size")
	logLevel := fs.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir := fs.String("logdir", "", "log file directory")
	fs.Parse(args)

	if fs.NArg() != 1 {
		usage()
	}
	sz, err := parseSize(*size)
	if err != nil {
		return err
	}

	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	rec, err := capture.Create(fs.Arg(0), lg)
	if err != nil {
		return err
	}

	config := bridge.DefaultConfig()
	config.CaptureFrames = *frames
	e := bridge.NewEngine(lg, config, bridge.WithRecorder(rec))
	if !e.Init(0, 0) {
		rec.Close()
		return errors.New("unable to initialize the UI engine")
	}
	e.SetScreenSize(sz[0], sz[1])

	const dt = float32(1) / 60
	for i := 0; i < *frames; i++ {
		e.NewFrame()
		e.ShowDemo()
		e.Render(&bridge.EngineState{
			FPS:        60,
			FrameTime:  dt,
			FrameCount: uint64(i + 1),
			TotalTime:  float32(i+1) * dt,
		})
	}
	e.Cleanup()

	if err := rec.Close(); err != nil {
		return err
	}
	fmt.Printf("%s: %d frames, session %s\n", fs.Arg(0), rec.Frames(), rec.Header().Session)
	return nil
}

type inspected struct {
	filename string
	header   capture.Header
	frames   []bridge.FrameRecord
	summary  capture.Summary
	err      error
}

func inspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print summaries as JSON")
	dump := fs.Bool("dump", false, "dump each summary's full structure")
	verbose := fs.Bool("v", false, "list frames that dropped geometry")
	fs.Parse(args)

	if fs.NArg() == 0 {
		usage()
	}

	// Every file is read even if some fail; the failures are reported
	// together afterward.
	results := make([]inspected, fs.NArg())
	var eg errgroup.Group
	for i, fn := range fs.Args() {
		i, fn := i, fn
		eg.Go(func() error {
			results[i] = load(fn)
			return nil
		})
	}
	eg.Wait()

	var e util.ErrorLogger
	for _, res := range results {
		if res.err != nil {
			e.Push(res.filename)
			e.Error(res.err)
			e.Pop()
		}
	}
	results = util.FilterSlice(results, func(res inspected) bool { return res.err == nil })

	for _, res := range results {
		switch {
		case *dump:
			godump.Dump(res.summary)
		case *asJSON:
			b, err := json.MarshalIndent(summaryJSON(res), "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
		default:
			printSummary(res)
		}

		if *verbose {
			dropped := util.FilterSlice(res.frames, func(f bridge.FrameRecord) bool {
				return f.Stats.DroppedVertices > 0 || f.Stats.DroppedTris > 0 || f.Stats.DroppedPrimitives > 0
			})
			lines := util.MapSlice(dropped, func(f bridge.FrameRecord) string { return "  " + f.Stats.String() })
			if len(lines) > 0 {
				fmt.Println(strings.Join(lines, "\n"))
			}
		}
	}

	if e.HaveErrors() {
		e.PrintErrors(nil)
		return errors.Newf("%d of %d captures could not be read", fs.NArg()-len(results), fs.NArg())
	}
	return nil
}

func load(fn string) inspected {
	res := inspected{filename: fn}
	r, err := capture.Open(fn)
	if err != nil {
		res.err = err
		return res
	}
	defer r.Close()

	res.header = r.Header
	if res.frames, err = r.ReadAll(); err != nil {
		res.err = err
		return res
	}
	res.summary = capture.Summarize(r.Header, res.frames)
	return res
}

// summaryJSON returns the summary with its keys in a fixed, readable
// order.
func summaryJSON(res inspected) *orderedmap.OrderedMap {
	s := res.summary
	m := orderedmap.New()
	m.Set("file", res.filename)
	m.Set("session", s.Session)
	m.Set("created", res.header.Created)
	m.Set("version", res.header.Version)
	m.Set("frames", s.Frames)
	m.Set("empty_frames", s.EmptyFrames)
	m.Set("max_vertices", s.MaxVertices)
	m.Set("max_indices", s.MaxIndices)
	m.Set("mean_fps", s.MeanFPS)
	m.Set("screen_sizes", s.ScreenSizes)

	totals := orderedmap.New()
	totals.Set("meshes", s.Totals.Meshes)
	totals.Set("vertices", s.Totals.Vertices)
	totals.Set("indices", s.Totals.Indices)
	totals.Set("dropped_vertices", s.Totals.DroppedVertices)
	totals.Set("dropped_tris", s.Totals.DroppedTris)
	totals.Set("dropped_primitives", s.Totals.DroppedPrimitives)
	totals.Set("texture_deltas", s.Totals.TextureDeltas)
	m.Set("totals", totals)
	return m
}

func printSummary(res inspected) {
	s := res.summary
	fmt.Printf("%s: session %s, created %s\n", res.filename, s.Session, res.header.Created.Format("2006-01-02 15:04:05"))
	fmt.Printf("  %d frames (%d empty), mean %.1f fps\n", s.Frames, s.EmptyFrames, s.MeanFPS)
	fmt.Printf("  max %d vertices, %d indices per frame\n", s.MaxVertices, s.MaxIndices)
	fmt.Printf("  dropped %d vertices, %d triangles, %d primitives\n",
		s.Totals.DroppedVertices, s.Totals.DroppedTris, s.Totals.DroppedPrimitives)
	sizes := util.MapSlice(s.ScreenSizes, func(sz [2]float32) string { return fmt.Sprintf("%gx%g", sz[0], sz[1]) })
	fmt.Printf("  screen sizes: %s\n", strings.Join(sizes, ", "))
}
