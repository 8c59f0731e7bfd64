//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  Replaces the OpenCV-backed stripe-pattern finder when the withcv build tag
  is not set. This is needed because CI does not have a copy of OpenCV
  installed.

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

// CVFinder is a stub standing in for the OpenCV-backed Finder, returning no
// pattern on every frame. Built only in the absence of the withcv tag; for
// testing purposes only.
type CVFinder struct {
	width, height int
}

// NewCVFinder returns a pointer to a new stub CVFinder for testing purposes
// only.
func NewCVFinder(width, height int) *CVFinder {
	return &CVFinder{width: width, height: height}
}

// FrameArea implements Finder.
func (f *CVFinder) FrameArea() int { return f.width * f.height }

// Find implements Finder. It always reports no pattern found.
func (f *CVFinder) Find(luminance *scalarfield.Field) (Pattern, bool, error) {
	return Pattern{}, false, nil
}
