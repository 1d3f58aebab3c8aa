// cmd/uicapture/main_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vkengine/uibridge/capture"
)

func TestParseSize(t *testing.T) {
	for _, test := range []struct {
		s    string
		size [2]float32
		ok   bool
	}{
		{"1920x1080", [2]float32{1920, 1080}, true},
		{"800x600.5", [2]float32{800, 600.5}, true},
		{"0x600", [2]float32{}, false},
		{"wide", [2]float32{}, false},
	} {
		sz, err := parseSize(test.s)
		if (err == nil) != test.ok {
			t.Errorf("%s: unexpected error result %v", test.s, err)
		} else if sz != test.size {
			t.Errorf("%s: got %v, expected %v", test.s, sz, test.size)
		}
	}
}

func TestRecordAndInspect(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "demo.cap")
	if err := record([]string{"-frames", "4", "-size", "1280x720", "-logdir", t.TempDir(), fn}); err != nil {
		t.Fatal(err)
	}

	r, err := capture.Open(fn)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	frames, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	s := capture.Summarize(r.Header, frames)
	if s.Frames != 4 || s.EmptyFrames != 0 || s.MaxVertices == 0 {
		t.Errorf("unexpected summary %+v", s)
	}
	if len(s.ScreenSizes) != 1 || s.ScreenSizes[0] != [2]float32{1280, 720} {
		t.Errorf("screen sizes %v", s.ScreenSizes)
	}

	if err := inspect([]string{"-json", "-v", fn}); err != nil {
		t.Errorf("inspect: %v", err)
	}
	m := summaryJSON(inspected{filename: fn, header: r.Header, summary: s})
	if v, ok := m.Get("frames"); !ok || v != 4 {
		t.Errorf("json frames %v", v)
	}
	if keys := m.Keys(); keys[0] != "file" || keys[len(keys)-1] != "totals" {
		t.Errorf("json keys out of order: %v", keys)
	}
}

func TestInspectReportsAllFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.cap")
	if err := record([]string{"-frames", "2", "-logdir", dir, good}); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.cap")
	if err := os.WriteFile(bad, []byte("not a capture"), 0o600); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.cap")

	err := inspect([]string{good, bad, missing})
	if err == nil {
		t.Fatalf("expected error for unreadable captures")
	}
	if !strings.Contains(err.Error(), "2 of 3") {
		t.Errorf("unexpected error %v", err)
	}

	if res := load(good); res.err != nil || res.summary.Frames != 2 {
		t.Errorf("good capture: %v, %d frames", res.err, res.summary.Frames)
	}
	if res := load(bad); res.err == nil {
		t.Errorf("expected error loading %s", bad)
	}
}
