/*
NAME
  record.go

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
	"math"
	"strconv"

	"github.com/ausocean/photosense/pattern"
	"github.com/ausocean/photosense/tracker"
)

// FrameRecord is the immutable, per-frame output of the analysis pipeline:
// the observed means, diffs and window counts for both channels, the
// per-channel flash verdicts, and the pattern-detector's verdict for this
// frame.
type FrameRecord struct {
	FrameIndex  uint32
	TimestampMs int64

	LuminanceMean             float32
	LuminanceFlashAreaPercent float64 // Fraction in [0,1]; format with FormatPercent for display.
	AvgLuminanceDiff          float32
	AvgLuminanceDiffAcc       float32

	RedMean             float32
	RedFlashAreaPercent float64
	AvgRedDiff          float32
	AvgRedDiffAcc       float32

	LuminanceTransitions       int
	RedTransitions             int
	LuminanceExtendedFailCount int
	RedExtendedFailCount       int

	LuminanceFrameResult tracker.FlashResult
	RedFrameResult       tracker.FlashResult

	PatternAreaPercent   float64 // Fraction in [0,1] of the (possibly downscaled) frame area.
	PatternDetectedLines int
	PatternFrameResult   pattern.Result

	// NonMonotonicTimestamp records that this frame's timestamp was not
	// strictly greater than its predecessor's: the SlidingWindowManager
	// recovered locally by resetting its windows, keeping only this frame.
	NonMonotonicTimestamp bool
}

// FormatPercent renders a fraction in [0,1] as a percentage string truncated
// (not rounded) to two decimal places, e.g. "12.34%".
func FormatPercent(fraction float64) string {
	pct := fraction * 100
	truncated := math.Trunc(pct*100) / 100
	return strconv.FormatFloat(truncated, 'f', 2, 64) + "%"
}

// LuminanceFlashAreaPercentString formats LuminanceFlashAreaPercent per
// FormatPercent.
func (r FrameRecord) LuminanceFlashAreaPercentString() string {
	return FormatPercent(r.LuminanceFlashAreaPercent)
}

// RedFlashAreaPercentString formats RedFlashAreaPercent per FormatPercent.
func (r FrameRecord) RedFlashAreaPercentString() string {
	return FormatPercent(r.RedFlashAreaPercent)
}

// PatternAreaPercentString formats PatternAreaPercent per FormatPercent.
func (r FrameRecord) PatternAreaPercentString() string {
	return FormatPercent(r.PatternAreaPercent)
}
