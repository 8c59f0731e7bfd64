/*
NAME
  writer.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package analyser

import (
	"github.com/pkg/errors"

	"github.com/ausocean/photosense/filter"
)

// FrameWriter adapts an Analyser to the filter.Filter interface, so the
// core can be dropped into a hosting application's decode/lex pipeline
// exactly where it would otherwise place a filter.NoOp ahead of its encoder:
// each Write call is expected to carry exactly one decoded, raw BGR frame.
// Timestamps are synthesised from the configured frame rate and an internal
// frame counter, for callers with no timestamp of their own (e.g. a fixed-FPS
// file decode rather than a live, timestamped stream).
type FrameWriter struct {
	a   *Analyser
	fps float64

	frameIndex uint32
	closed     bool

	// Last holds the most recently produced FrameRecord, for callers that
	// drive the pipeline purely through Write/Close rather than ProcessFrame.
	Last FrameRecord
}

var _ filter.Filter = (*FrameWriter)(nil)

// NewFrameWriter wraps a, synthesising each frame's timestamp at 1000/fps
// milliseconds apart starting from zero.
func NewFrameWriter(a *Analyser) *FrameWriter {
	fps := float64(a.cfg.FrameRate)
	if fps <= 0 {
		fps = 1
	}
	return &FrameWriter{a: a, fps: fps}
}

// Write treats p as exactly one raw BGR frame of the Analyser's configured
// source dimensions and runs it through ProcessFrame. It satisfies
// io.Writer, returning len(p) and a nil error on success so it composes with
// an io.MultiWriter or any other filter.Filter in a chain.
func (w *FrameWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New("analyser: write to closed FrameWriter")
	}

	frame := Frame{
		Index:       w.frameIndex,
		TimestampMs: int64(float64(w.frameIndex) * 1000 / w.fps),
		Width:       w.a.srcWidth,
		Height:      w.a.srcHeight,
		Pixels:      p,
	}

	rec, err := w.a.ProcessFrame(frame)
	if err != nil {
		return 0, err
	}

	w.Last = rec
	w.frameIndex++
	return len(p), nil
}

// Close marks the FrameWriter as done. It does not itself call
// Analyser.Finalize, since a FrameWriter may be one of several filters
// sharing an Analyser's stream; the caller remains responsible for calling
// Finalize once every writer feeding that Analyser has closed.
func (w *FrameWriter) Close() error {
	w.closed = true
	return nil
}
