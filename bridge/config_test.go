// bridge/config_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bridge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	c, err := LoadConfig(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Errorf("missing file: %v", err)
	}
	if c.InitialSize != [2]float32{1920, 1080} || c.VertexMargin != 100 || c.LogLevel != "info" {
		t.Errorf("unexpected defaults %+v", c)
	}

	for _, test := range []struct {
		name, json string
		check      func(*Config) bool
		errs       int
	}{
		{"override", `{"LogLevel": "debug", "InitialSize": [800, 600], "CaptureFrames": 10}`,
			func(c *Config) bool {
				return c.LogLevel == "debug" && c.InitialSize == [2]float32{800, 600} && c.CaptureFrames == 10
			}, 0},
		{"partial", `{"CapturePath": "frames.cap"}`,
			func(c *Config) bool {
				return c.CapturePath == "frames.cap" && c.InitialSize == [2]float32{1920, 1080}
			}, 0},
		{"sanitized", `{"InitialSize": [0, -5], "VertexMargin": -1, "LogLevel": "", "CaptureFrames": -3}`,
			func(c *Config) bool {
				return c.InitialSize == [2]float32{1920, 1080} && c.VertexMargin == 100 &&
					c.LogLevel == "info" && c.CaptureFrames == 0
			}, 3},
		{"badlevel", `{"LogLevel": "verbose"}`,
			func(c *Config) bool { return c.LogLevel == "info" }, 1},
	} {
		fn := filepath.Join(dir, test.name+".json")
		if err := os.WriteFile(fn, []byte(test.json), 0o600); err != nil {
			t.Fatal(err)
		}
		c, err := LoadConfig(fn)
		if test.errs == 0 && err != nil {
			t.Errorf("%s: %v", test.name, err)
		} else if test.errs > 0 && (err == nil || strings.Count(err.Error(), fn+": ") != test.errs) {
			t.Errorf("%s: expected %d errors, got %v", test.name, test.errs, err)
		}
		if !test.check(c) {
			t.Errorf("%s: unexpected config %+v", test.name, c)
		}
	}

	fn := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(fn, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if c, err := LoadConfig(fn); err == nil {
		t.Errorf("expected error for malformed config")
	} else if c == nil || c.InitialSize != [2]float32{1920, 1080} {
		t.Errorf("expected defaults with malformed config")
	}
}

func TestConfigSaveLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "sub", "config.json")
	c := DefaultConfig()
	c.VertexMargin = 50
	c.CapturePath = "x.cap"
	if err := c.Save(fn); err != nil {
		t.Fatal(err)
	}
	c2, err := LoadConfig(fn)
	if err != nil {
		t.Fatal(err)
	}
	if *c2 != *c {
		t.Errorf("got %+v, expected %+v", c2, c)
	}
}

func TestConfigFilePath(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/tmp/uibridge-test.json")
	if fn := ConfigFilePath(); fn != "/tmp/uibridge-test.json" {
		t.Errorf("got %q", fn)
	}
	t.Setenv(ConfigEnvVar, "")
	if fn := ConfigFilePath(); filepath.Base(fn) != "config.json" {
		t.Errorf("got %q", fn)
	}
}
