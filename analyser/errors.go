/*
NAME
  errors.go

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

import "github.com/pkg/errors"

// Sentinel errors for the fatal, stream-aborting conditions the core can
// raise. Per-frame anomalies (a non-monotonic timestamp, a skipped pattern
// pipeline pass) never escape as errors; they are recorded on the
// FrameRecord instead.
var (
	// ErrInvalidConfiguration is returned by New when the supplied Config
	// fails validation in a way Config.Validate cannot correct by defaulting.
	ErrInvalidConfiguration = errors.New("analyser: invalid configuration")

	// ErrFrameGeometryMismatch is returned by ProcessFrame when a frame's
	// dimensions differ from the stream's configured width/height.
	ErrFrameGeometryMismatch = errors.New("analyser: frame geometry mismatch")
)
