// util/error_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestErrorLogger(t *testing.T) {
	var e ErrorLogger
	if e.HaveErrors() {
		t.Errorf("new ErrorLogger has errors")
	}

	e.ErrorString("top %d", 1)
	e.Push("config.json")
	e.Push("InitialSize")
	e.Error(errors.New("negative"))
	e.Pop()
	e.ErrorString("bad level")
	e.Pop()

	if !e.HaveErrors() {
		t.Errorf("expected errors")
	}
	expected := "top 1\nconfig.json / InitialSize: negative\nconfig.json: bad level"
	if s := e.String(); s != expected {
		t.Errorf("got %q, expected %q", s, expected)
	}
}
