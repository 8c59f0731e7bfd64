/*
NAME
  pattern.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package pattern implements stripe-pattern detection: an FFT-based
// frequency-domain filter locates periodic structure in a luminance frame,
// and a contour/Otsu pipeline measures its area, stripe count and average
// light/dark luminance. A Detector tracks how many consecutive frames a
// harmful pattern has persisted and reports Fail once that streak reaches a
// configured time threshold.
//
// The FFT/contour pipeline needs OpenCV (via gocv.io/x/gocv) and is only
// compiled when the withcv build tag is set; see detector_cv.go and
// detector_stub.go. Everything in this file is plain Go and has no such
// dependency.
package pattern

// Pattern describes one detected candidate region within a single frame.
type Pattern struct {
	Area             int     // Non-zero pixel count of the detected pattern region.
	NComponents      int     // Number of grouped, shape-similar stripe contours.
	AvgLightLuminance float64 // Mean luminance of the Otsu-light sub-region.
	AvgDarkLuminance  float64 // Mean luminance of the Otsu-dark sub-region.
}

// Params configures pattern detection. AreaProportion, MinStripes and
// LightLuminanceMin gate whether a detected Pattern counts as harmful;
// TimeThreshold (seconds) is how long a harmful pattern must persist before
// the stream is failed.
type Params struct {
	AreaProportion  float64
	MinStripes      int
	TimeThreshold   float64
	LightLuminanceMin float64 // Minimum avgLightLuminance (normalised 0-1) for a pattern to count as harmful; typically 0.25.
}

// Result is the per-frame pattern verdict, mirroring FlashResult's shape for
// the transition tracker.
type Result int

const (
	Pass Result = iota
	Fail
)

func (r Result) String() string {
	if r == Fail {
		return "Fail"
	}
	return "Pass"
}

// counter mirrors tracker's cumulative-count/passed-prefix idiom, used here
// to track how many of the trailing frameTimeThresh frames had a harmful
// pattern.
type counter struct {
	counts []int
	passed int
	current int
}

func (c *counter) updateCurrent(harmful bool) {
	delta := 0
	if harmful {
		delta = 1
	}
	if len(c.counts) == 0 {
		c.counts = append(c.counts, delta)
	} else {
		c.counts = append(c.counts, c.counts[len(c.counts)-1]+delta)
	}
	c.current = c.counts[len(c.counts)-1] - c.passed
}

func (c *counter) updatePassed() {
	if len(c.counts) == 0 {
		return
	}
	c.passed = c.counts[0]
	c.counts = c.counts[1:]
}

// IncidentTotals accumulates how many frames the pattern detector failed
// over the whole stream.
type IncidentTotals struct {
	PatternFailFrames int
}
