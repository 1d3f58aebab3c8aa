// log/log_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package log

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, test := range []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	} {
		if got := ParseLevel(test.in); got != test.want {
			t.Errorf("ParseLevel(%q) = %v, expected %v", test.in, got, test.want)
		}
	}
}

func TestNewLogFile(t *testing.T) {
	dir := t.TempDir()
	lg := New("info", dir)

	if lg.LogDir != dir {
		t.Errorf("LogDir = %q, expected %q", lg.LogDir, dir)
	}
	if filepath.Dir(lg.LogFile) != dir {
		t.Errorf("LogFile %q not in %q", lg.LogFile, dir)
	}

	lg.Debugf("hidden %d", 1)
	lg.Infof("visible %d", 2)

	b, err := os.ReadFile(lg.LogFile)
	if err != nil {
		t.Fatalf("%v", err)
	}
	if s := string(b); strings.Contains(s, "hidden 1") || !strings.Contains(s, "visible 2") {
		t.Errorf("unexpected log contents: %s", s)
	}
}

func TestCatchAndReportCrash(t *testing.T) {
	dir := t.TempDir()
	lg := New("error", dir)

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		func() {
			defer lg.CatchAndReportCrash()
			panic("boom")
		}()
	}()
	if recovered != nil {
		t.Fatalf("panic escaped: %v", recovered)
	}

	crashes, err := filepath.Glob(filepath.Join(dir, "crash-*.txt"))
	if err != nil {
		t.Fatalf("%v", err)
	}
	if len(crashes) != 1 {
		t.Errorf("expected one crash report, got %d", len(crashes))
	}
}
