// bridge/config.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bridge

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/vkengine/uibridge/log"
	"github.com/vkengine/uibridge/util"

	"github.com/cockroachdb/errors"
)

// ConfigEnvVar names the environment variable that may give the path to
// the configuration file.
const ConfigEnvVar = "UIBRIDGE_CONFIG"

type Config struct {
	LogLevel string
	LogDir   string
	// Logical screen size used until the host calls SetScreenSize.
	InitialSize [2]float32
	// Vertices more than this far outside the screen are discarded.
	VertexMargin float32
	// If non-empty, rendered frames are recorded to this file.
	CapturePath string
	// Maximum number of frames to record; 0 means no limit.
	CaptureFrames int
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		LogDir:       log.DefaultDir(),
		InitialSize:  [2]float32{1920, 1080},
		VertexMargin: 100,
	}
}

// ConfigFilePath returns the path of the configuration file: the one
// given by $UIBRIDGE_CONFIG if set and otherwise config.json in the
// user's configuration directory.
func ConfigFilePath() string {
	if fn := os.Getenv(ConfigEnvVar); fn != "" {
		return fn
	}
	return filepath.Join(log.DefaultDir(), "config.json")
}

// LoadConfig returns the configuration stored in the file fn. A missing
// file is not an error: the default configuration is returned. If the
// file is present but can't be parsed, the defaults are returned along
// with the error. Invalid settings are replaced with their defaults and
// reported in the returned error.
func LoadConfig(fn string) (*Config, error) {
	config := DefaultConfig()

	contents, err := os.ReadFile(fn)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	} else if err != nil {
		return config, errors.Wrapf(err, "%s", fn)
	}

	d := json.NewDecoder(bytes.NewReader(contents))
	if err := d.Decode(config); err != nil {
		return DefaultConfig(), errors.Wrapf(err, "%s: malformed config", fn)
	}

	var e util.ErrorLogger
	e.Push(fn)
	config.sanitize(&e)
	e.Pop()
	if e.HaveErrors() {
		return config, errors.New(e.String())
	}
	return config, nil
}

var logLevels = []string{"debug", "info", "warn", "error"}

// sanitize replaces invalid settings with defaults. Empty strings select
// the default silently; other invalid values are reported to e.
func (c *Config) sanitize(e *util.ErrorLogger) {
	def := DefaultConfig()
	if c.InitialSize[0] <= 0 || c.InitialSize[1] <= 0 {
		e.ErrorString("InitialSize %v must be positive", c.InitialSize)
		c.InitialSize = def.InitialSize
	}
	if c.VertexMargin < 0 {
		e.ErrorString("VertexMargin %g must not be negative", c.VertexMargin)
		c.VertexMargin = def.VertexMargin
	}
	if c.LogDir == "" {
		c.LogDir = def.LogDir
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	} else if !slices.Contains(logLevels, c.LogLevel) {
		e.ErrorString("LogLevel %q: expected one of %v", c.LogLevel, logLevels)
		c.LogLevel = def.LogLevel
	}
	if c.CaptureFrames < 0 {
		e.ErrorString("CaptureFrames %d must not be negative", c.CaptureFrames)
		c.CaptureFrames = 0
	}
}

func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

func (c *Config) Save(fn string) error {
	if err := os.MkdirAll(filepath.Dir(fn), 0o700); err != nil {
		return errors.Wrapf(err, "%s", filepath.Dir(fn))
	}
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}
