// cmd/uiview/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// uiview hosts the UI bridge in a GLFW window, drawing the exported
// geometry with OpenGL the way a native engine would with Vulkan.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/vkengine/uibridge/bridge"
	"github.com/vkengine/uibridge/capture"
	"github.com/vkengine/uibridge/log"
	"github.com/vkengine/uibridge/platform"
	"github.com/vkengine/uibridge/renderer"
	"github.com/vkengine/uibridge/util"

	"github.com/apenwarr/fixconsole"
	"github.com/loov/hrtime"
)

var (
	logLevel    = flag.String("loglevel", "", "logging level: debug, info, warn, error")
	logDir      = flag.String("logdir", "", "log file directory")
	configFile  = flag.String("config", "", "configuration file")
	capturePath = flag.String("capture", "", "record rendered frames to this file")
	maxFrames   = flag.Int("frames", 0, "exit after this many frames")
	noVSync     = flag.Bool("novsync", false, "disable v-sync")
	msaa        = flag.Bool("msaa", false, "enable multisampling")
	cpuprofile  = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile  = flag.String("memprofile", "", "write memory profile to this file")
)

func init() {
	// OpenGL and friends require that all calls be made from the primary
	// application thread, while by default, go allows the main thread to
	// run on different hardware threads over the course of
	// execution. Therefore, lock the main thread here.
	runtime.LockOSThread()
}

// frameTimer tracks recent frame durations to report the frame rate.
type frameTimer struct {
	start, last time.Duration
	times       *util.RingBuffer[time.Duration]
}

func makeFrameTimer() frameTimer {
	now := hrtime.Now()
	return frameTimer{start: now, last: now, times: util.NewRingBuffer[time.Duration](120)}
}

// tick records the end of a frame and returns the engine state for it.
func (ft *frameTimer) tick(frame uint64) bridge.EngineState {
	now := hrtime.Now()
	dt := now - ft.last
	ft.last = now
	ft.times.Add(dt)

	var sum time.Duration
	for i := range ft.times.Size() {
		sum += ft.times.Get(i)
	}
	var fps float32
	if sum > 0 {
		fps = float32(ft.times.Size()) / float32(sum.Seconds())
	}

	return bridge.EngineState{
		FPS:        fps,
		FrameTime:  float32(dt.Seconds()),
		FrameCount: frame,
		TotalTime:  float32((now - ft.start).Seconds()),
	}
}

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	fn := *configFile
	if fn == "" {
		fn = bridge.ConfigFilePath()
	}
	config, configErr := bridge.LoadConfig(fn)
	if *logLevel != "" {
		config.LogLevel = *logLevel
	}
	if *logDir != "" {
		config.LogDir = *logDir
	}
	if *capturePath != "" {
		config.CapturePath = *capturePath
	}

	lg := log.New(config.LogLevel, config.LogDir)
	defer lg.CatchAndReportCrash()
	if configErr != nil {
		lg.Errorf("%v", configErr)
	}

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer profiler.Cleanup()

	var opts []bridge.Option
	if config.CapturePath != "" {
		rec, err := capture.Create(config.CapturePath, lg)
		if err != nil {
			lg.Errorf("%v", err)
			os.Exit(1)
		}
		defer rec.Close()
		opts = append(opts, bridge.WithRecorder(rec))
	}

	eng := bridge.NewEngine(lg, config, opts...)

	plat, err := platform.New(&platform.Config{
		InitialWindowSize: [2]int{int(config.InitialSize[0]), int(config.InitialSize[1])},
		Title:             "uibridge",
		EnableMSAA:        *msaa,
	}, eng, lg)
	if err != nil {
		lg.Errorf("Unable to create application window: %v", err)
		os.Exit(1)
	}
	defer plat.Dispose()
	plat.EnableVSync(!*noVSync)

	r, err := renderer.NewOpenGL2Renderer(lg)
	if err != nil {
		lg.Errorf("Unable to initialize OpenGL: %v", err)
		os.Exit(1)
	}
	defer r.Dispose()

	if !eng.Init(0, 0) {
		lg.Errorf("Unable to initialize the UI engine")
		os.Exit(1)
	}
	defer eng.Cleanup()

	timer := makeFrameTimer()
	var stats renderer.RendererStats
	for frame := uint64(1); !plat.ShouldStop(); frame++ {
		plat.ProcessEvents()

		displaySize := plat.DisplaySize()
		eng.SetScreenSize(displaySize[0], displaySize[1])
		if out, ok := eng.LastOutput(); ok {
			plat.NewFrame(out)
		} else {
			plat.NewFrame(nil)
		}

		eng.NewFrame()
		eng.ShowDemo()
		state := timer.tick(frame)
		eng.Render(&state)

		if fv, ok := eng.FontTexture(); ok {
			r.SetFontTexture(fv)
		}
		rv, _ := eng.RenderData()
		stats.Merge(r.Draw(rv, displaySize, plat.FramebufferSize()))
		plat.PostRender()

		if frame%300 == 0 {
			lg.Debug("rendered", "frames", frame, "stats", stats)
			stats = renderer.RendererStats{}
		}
		plat.SetWindowTitle(fmt.Sprintf("uibridge - %.0f fps", state.FPS))

		if *maxFrames > 0 && frame >= uint64(*maxFrames) {
			break
		}
	}
	lg.Info("exiting normally")
}
