//go:build withcv
// +build withcv

/*
NAME
  detector_cv_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package pattern

import (
	"testing"

	"github.com/ausocean/photosense/scalarfield"
)

// stripedField builds a luminance field of nStripes alternating light/dark
// vertical bands, the classic photosensitivity stripe pattern: strong,
// regularly-spaced periodic structure concentrates almost all of the frame's
// frequency-domain energy into a handful of sharp, off-centre DFT peaks.
func stripedField(width, height, nStripes int) *scalarfield.Field {
	f := scalarfield.NewField(width, height)
	bandWidth := width / nStripes
	if bandWidth < 1 {
		bandWidth = 1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := float32(0)
			if (x/bandWidth)%2 == 0 {
				v = 1
			}
			f.Set(x, y, v)
		}
	}
	return f
}

// shapesField builds a luminance field of a handful of isolated,
// differently-sized, non-repeating shapes (filled rectangles at irregular
// positions) against a uniform background. Unlike a stripe pattern, these
// shapes carry no periodic structure, so their frequency content is spread
// broadly rather than concentrated into a few dominant off-centre peaks.
func shapesField(width, height int) *scalarfield.Field {
	f := scalarfield.NewField(width, height)

	type box struct{ x0, y0, x1, y1 int }
	boxes := []box{
		{10, 15, 40, 70},
		{90, 20, 130, 45},
		{60, 120, 75, 180},
		{150, 90, 210, 110},
		{25, 160, 100, 200},
	}
	for _, b := range boxes {
		for y := b.y0; y < b.y1 && y < height; y++ {
			for x := b.x0; x < b.x1 && x < width; x++ {
				f.Set(x, y, 1)
			}
		}
	}
	return f
}

// TestCVFinderStripedImageDetectsPattern drives the real OpenCV-backed
// CVFinder (selected by the withcv build tag, exactly as NewKNN/NewMOG are
// selected in _examples/ausocean-av/filter/filter_test.go) against a
// synthetic 20-vertical-stripe image and expects it to report a pattern.
func TestCVFinderStripedImageDetectsPattern(t *testing.T) {
	const width, height = 240, 240
	finder := NewCVFinder(width, height)

	field := stripedField(width, height, 20)
	p, found, err := finder.Find(field)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if !found {
		t.Fatal("Find() found = false, want true for a 20-vertical-stripe image")
	}
	if p.Area <= 0 {
		t.Errorf("Pattern.Area = %d, want > 0", p.Area)
	}
}

// TestCVFinderShapesImageNoPattern drives the real CVFinder against a
// handful of arbitrary, non-repeating shapes and expects no pattern to be
// reported, since nothing in the image repeats periodically.
func TestCVFinderShapesImageNoPattern(t *testing.T) {
	const width, height = 240, 240
	finder := NewCVFinder(width, height)

	field := shapesField(width, height)
	_, found, err := finder.Find(field)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if found {
		t.Error("Find() found = true, want false for a non-repetitive shapes image")
	}
}
