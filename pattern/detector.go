/*
NAME
  detector.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pattern

import "github.com/ausocean/photosense/scalarfield"

// Finder locates a candidate stripe pattern in a single luminance field. A
// Finder owns whatever internal working resolution it chooses to operate at
// (a typical implementation downsamples wide frames before running its FFT
// pipeline); FrameArea reports that resolution's pixel count so Detector can
// compare the reported Pattern.Area against it on equal terms.
type Finder interface {
	Find(luminance *scalarfield.Field) (p Pattern, found bool, err error)
	FrameArea() int
}

// Detector is the stateful, per-stream stripe-pattern tracker. It consumes
// one luminance field per frame, asks its Finder whether a candidate pattern
// is present, judges whether that pattern is harmful, and maintains a
// trailing-window count of harmful frames to decide the per-frame verdict.
type Detector struct {
	params Params
	finder Finder

	frameTimeThresh int // Trailing-frame count a harmful pattern must persist for.
	cnt             counter
	isFail          bool
	incidents       IncidentTotals
}

// NewDetector constructs a Detector. fps is the stream's nominal frame rate;
// params.TimeThreshold (seconds) is converted to a frame count via
// truncation.
func NewDetector(fps int, params Params, finder Finder) *Detector {
	return &Detector{
		params:          params,
		finder:          finder,
		frameTimeThresh: int(float64(fps) * params.TimeThreshold),
	}
}

// CheckFrame runs one frame through the detector and returns its verdict
// along with whatever Pattern the Finder located (the zero Pattern if none).
func (d *Detector) CheckFrame(luminance *scalarfield.Field) (Result, Pattern, error) {
	p, found, err := d.finder.Find(luminance)
	if err != nil {
		return Pass, Pattern{}, err
	}

	harmful := false
	if found {
		safeArea := int(float64(d.finder.FrameArea()) * d.params.AreaProportion)
		harmful = p.Area >= safeArea &&
			p.NComponents >= d.params.MinStripes &&
			p.AvgLightLuminance >= d.params.LightLuminanceMin
	}

	d.cnt.updateCurrent(harmful)

	result := Pass
	if d.cnt.current >= d.frameTimeThresh {
		result = Fail
		d.isFail = true
		d.incidents.PatternFailFrames++
	}

	if len(d.cnt.counts) == d.frameTimeThresh {
		d.cnt.updatePassed()
	}

	return result, p, nil
}

// IsFail reports whether any frame observed so far reached Fail.
func (d *Detector) IsFail() bool { return d.isFail }

// Incidents returns the accumulated pattern-fail totals.
func (d *Detector) Incidents() IncidentTotals { return d.incidents }
