// capture/capture.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package capture records the frames produced by a bridge.Engine to a
// file and reads them back. A capture is a zstd-compressed stream of
// msgpack values: a Header followed by one bridge.FrameRecord per frame.
package capture

import (
	"bufio"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vkengine/uibridge/bridge"
	"github.com/vkengine/uibridge/log"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	Magic   = "uibridge-capture"
	Version = 1
)

var ErrBadHeader = errors.New("not a uibridge capture")

type Header struct {
	Magic   string
	Version int
	Session string
	Created time.Time
}

// SessionID returns the capture's session id.
func (h Header) SessionID() (uuid.UUID, error) {
	return uuid.Parse(h.Session)
}

///////////////////////////////////////////////////////////////////////////
// Recorder

// Recorder writes frames to a capture. It implements
// bridge.FrameRecorder.
type Recorder struct {
	mu     sync.Mutex
	lg     *log.Logger
	header Header
	frames int

	bw   *bufio.Writer
	zw   *zstd.Encoder
	enc  *msgpack.Encoder
	file io.Closer // closed along with the recorder, if non-nil
}

// Create creates the capture file at path.
func Create(path string, lg *log.Logger) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "capture")
	}
	r, err := NewRecorder(f, lg)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.file = f
	lg.Infof("%s: recording frames, session %s", path, r.header.Session)
	return r, nil
}

// NewRecorder starts a capture written to w.
func NewRecorder(w io.Writer, lg *log.Logger) (*Recorder, error) {
	bw := bufio.NewWriter(w)
	zw, err := zstd.NewWriter(bw, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create zstd writer")
	}

	r := &Recorder{
		lg: lg,
		header: Header{
			Magic:   Magic,
			Version: Version,
			Session: uuid.NewString(),
			Created: time.Now().UTC(),
		},
		bw:  bw,
		zw:  zw,
		enc: msgpack.NewEncoder(zw),
	}
	// The header is flushed right away so that an unwritable destination
	// is reported here rather than at the first frame.
	if err := r.enc.Encode(r.header); err != nil {
		zw.Close()
		return nil, errors.Wrap(err, "failed to encode capture header")
	}
	if err := errors.CombineErrors(zw.Flush(), bw.Flush()); err != nil {
		zw.Close()
		return nil, errors.Wrap(err, "failed to write capture header")
	}
	return r, nil
}

func (r *Recorder) RecordFrame(f *bridge.FrameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.enc == nil {
		return errors.New("capture closed")
	}
	if err := r.enc.Encode(f); err != nil {
		return errors.Wrapf(err, "frame %d", f.Frame)
	}
	r.frames++
	return nil
}

func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *Recorder) Header() Header {
	return r.header
}

// Close flushes the capture; it must be called for the capture to be
// readable.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.enc == nil {
		return nil
	}
	r.enc = nil

	var errs error
	if err := r.zw.Close(); err != nil {
		errs = errors.CombineErrors(errs, errors.Wrap(err, "failed to close zstd writer"))
	}
	if err := r.bw.Flush(); err != nil {
		errs = errors.CombineErrors(errs, err)
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			errs = errors.CombineErrors(errs, err)
		}
	}
	r.lg.Infof("capture %s: %d frames recorded", r.header.Session, r.frames)
	return errs
}

///////////////////////////////////////////////////////////////////////////
// Reader

// Reader reads the frames of a capture in order.
type Reader struct {
	Header Header

	zr   *zstd.Decoder
	dec  *msgpack.Decoder
	file io.Closer
}

// Open opens the capture file at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "%s", path)
	}
	r.file = f
	return r, nil
}

// NewReader reads a capture from rd, validating its header.
func NewReader(rd io.Reader) (*Reader, error) {
	zr, err := zstd.NewReader(bufio.NewReader(rd), zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create zstd reader")
	}

	r := &Reader{zr: zr, dec: msgpack.NewDecoder(zr)}
	if err := r.dec.Decode(&r.Header); err != nil {
		zr.Close()
		return nil, errors.Mark(errors.Wrap(err, "failed to decode capture header"), ErrBadHeader)
	}
	if r.Header.Magic != Magic {
		zr.Close()
		return nil, ErrBadHeader
	}
	if r.Header.Version > Version {
		zr.Close()
		return nil, errors.Newf("capture version %d is newer than supported version %d", r.Header.Version, Version)
	}
	return r, nil
}

// Next returns the next frame; it returns io.EOF after the last one.
func (r *Reader) Next() (*bridge.FrameRecord, error) {
	var f bridge.FrameRecord
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, errors.Wrap(err, "failed to decode frame")
	}
	return &f, nil
}

// ReadAll returns all of the remaining frames.
func (r *Reader) ReadAll() ([]bridge.FrameRecord, error) {
	var frames []bridge.FrameRecord
	for {
		f, err := r.Next()
		if err == io.EOF {
			return frames, nil
		} else if err != nil {
			return frames, err
		}
		frames = append(frames, *f)
	}
}

func (r *Reader) Close() error {
	r.zr.Close()
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
