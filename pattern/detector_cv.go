//go:build withcv
// +build withcv

/*
NAME
  detector_cv.go

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

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ausocean/photosense/scalarfield"
)

// CVFinder implements Finder using an FFT-based frequency-domain filter to
// surface periodic (stripe) structure in a luminance frame, followed by a
// contour pipeline that measures the surviving region's area, stripe count
// and average light/dark luminance.
//
// Wide frames are downscaled 50% before analysis: the FFT and contour
// thresholds below are all sized relative to that working resolution, not
// the original frame.
type CVFinder struct {
	scaleWidth, scaleHeight int
	centerPoint             image.Point

	diffThreshold     float64 // Minimum non-zero pixel count in the IFT threshold mask for a candidate region to exist.
	contourThreshArea float64 // Minimum contour area to survive the small-contour filter.
}

// NewCVFinder constructs a CVFinder for frames of the given dimensions.
func NewCVFinder(width, height int) *CVFinder {
	sw, sh := width, height
	if width > 480 {
		sw = width * 50 / 100
		sh = height * 50 / 100
	}
	area := float64(sw * sh)
	return &CVFinder{
		scaleWidth:        sw,
		scaleHeight:       sh,
		centerPoint:       image.Pt(sw/2, sh/2),
		diffThreshold:     area * 0.1,
		contourThreshArea: area * 0.00155,
	}
}

// FrameArea implements Finder.
func (f *CVFinder) FrameArea() int { return f.scaleWidth * f.scaleHeight }

// Find implements Finder.
func (f *CVFinder) Find(luminance *scalarfield.Field) (Pattern, bool, error) {
	src := fieldToMat32F(luminance)
	defer src.Close()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(src, &resized, image.Pt(f.scaleWidth, f.scaleHeight), 0, 0, gocv.InterpolationLinear)

	luminance8U := gocv.NewMat()
	defer luminance8U.Close()
	gocv.Normalize(resized, &luminance8U, 0, 255, gocv.NormMinMax)
	luminance8U.ConvertTo(&luminance8U, gocv.MatTypeCV8U)

	iftThresh, ok := f.hasPattern(luminance8U)
	defer iftThresh.Close()
	if !ok {
		return Pattern{}, false, nil
	}

	regionMask, nComponents := f.patternRegion(iftThresh, luminance8U)
	defer regionMask.Close()
	if nComponents < 0 {
		return Pattern{}, false, nil
	}

	p := Pattern{NComponents: nComponents, Area: gocv.CountNonZero(regionMask)}
	f.setPatternLuminance(&p, regionMask, luminance8U, resized)
	return p, true, nil
}

// hasPattern runs the FFT peak-suppression pipeline and returns the
// thresholded IFT/original absolute-difference mask, plus whether its
// non-zero area clears diffThreshold.
func (f *CVFinder) hasPattern(luminance8U gocv.Mat) (gocv.Mat, bool) {
	ft := newFourierTransform(f.centerPoint)

	dft := ft.dft(luminance8U)
	defer dft.Close()
	mag, phase, psd := ft.psd(dft)
	defer mag.Close()
	defer phase.Close()
	defer psd.Close()

	peaks := ft.peaks(psd)
	defer peaks.Close()
	ft.filterMagnitude(peaks, mag)

	ift := ft.inverse(mag, phase)
	defer ift.Close()

	thresh := highlightPatternArea(ift, luminance8U)
	return thresh, gocv.CountNonZero(thresh) >= int(f.diffThreshold)
}

// highlightPatternArea resizes ift to match luminanceFrame if needed, then
// returns a binary mask of where the two differ by more than 50 levels.
func highlightPatternArea(ift, luminanceFrame gocv.Mat) gocv.Mat {
	work := ift
	if ift.Cols() != luminanceFrame.Cols() || ift.Rows() != luminanceFrame.Rows() {
		resized := gocv.NewMat()
		gocv.Resize(ift, &resized, image.Pt(luminanceFrame.Cols(), luminanceFrame.Rows()), 0, 0, gocv.InterpolationLinear)
		work = resized
		defer resized.Close()
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(work, luminanceFrame, &diff)

	thresh := gocv.NewMat()
	gocv.Threshold(diff, &thresh, 50, 255, gocv.ThresholdBinary)
	return thresh
}

// patternRegion filters the threshold mask down to its larger contours,
// groups the survivors by shape similarity and returns a filled mask of the
// largest group's minimum-area bounding rectangle, plus that group's size.
// It reports nComponents -1 if no contour survives the small-area filter.
func (f *CVFinder) patternRegion(threshIFT, luminanceFrame gocv.Mat) (gocv.Mat, int) {
	contours := gocv.FindContours(threshIFT, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	big := f.moveBiggerContours(contours, threshIFT)
	defer big.Close()

	survivors := gocv.FindContours(big, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer survivors.Close()

	mask := gocv.NewMatWithSize(threshIFT.Rows(), threshIFT.Cols(), gocv.MatTypeCV8U)
	if survivors.Size() == 0 {
		return mask, -1
	}

	pts, nComponents := patternContour(survivors)
	rect := gocv.MinAreaRect(pts)

	rectPts := gocv.NewPointsVectorFromPoints([][]image.Point{rect.Points})
	defer rectPts.Close()
	gocv.FillPoly(&mask, rectPts, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	gocv.BitwiseAnd(luminanceFrame, mask, &luminanceFrame)
	return mask, nComponents
}

// moveBiggerContours draws every contour whose area exceeds
// contourThreshArea onto a fresh, same-sized zero mat, dropping the rest.
func (f *CVFinder) moveBiggerContours(contours gocv.PointsVector, src gocv.Mat) gocv.Mat {
	out := gocv.NewMatWithSize(src.Rows(), src.Cols(), src.Type())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		if gocv.ContourArea(c) > f.contourThreshArea {
			one := gocv.NewPointsVectorFromPoints([][]image.Point{c.ToPoints()})
			gocv.FillPoly(&out, one, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			one.Close()
		}
	}
	return out
}

// patternContour picks the contour that represents the pattern. With fewer
// than five candidates it returns the single largest contour and a component
// count of 0; with five or more it returns the largest shape-similar group of
// contours merged into one point set, along with the group's size.
func patternContour(contours gocv.PointsVector) (gocv.PointVector, int) {
	if contours.Size() < 5 {
		return biggestContour(contours), 0
	}
	return similarContourGroup(contours)
}

func biggestContour(contours gocv.PointsVector) gocv.PointVector {
	best := contours.At(0)
	bestArea := gocv.ContourArea(best)
	for i := 1; i < contours.Size(); i++ {
		c := contours.At(i)
		if a := gocv.ContourArea(c); a > bestArea {
			best, bestArea = c, a
		}
	}
	return best
}

// similarContourGroup groups contours by OpenCV shape-matching similarity
// (Hu-moment based, matchShapes I1) and returns the largest group's points
// merged into a single contour, along with the group size.
func similarContourGroup(contours gocv.PointsVector) (gocv.PointVector, int) {
	n := contours.Size()
	bestGroup := []int{0}
	for i := 0; i < n; i++ {
		group := []int{i}
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			if gocv.MatchShapes(contours.At(i), contours.At(j), gocv.ContoursMatchI1, 0) < 0.7 {
				group = append(group, j)
			}
		}
		if len(group) > len(bestGroup) {
			bestGroup = group
		}
	}

	var merged []image.Point
	for _, idx := range bestGroup {
		merged = append(merged, contours.At(idx).ToPoints()...)
	}
	return gocv.NewPointVectorFromPoints(merged), len(bestGroup)
}

// setPatternLuminance splits the masked 8-bit luminance into Otsu light/dark
// sub-regions and averages the original (unmasked, float) luminance over
// each.
func (f *CVFinder) setPatternLuminance(p *Pattern, region, luminance8U, luminanceFloat gocv.Mat) {
	light := gocv.NewMat()
	defer light.Close()
	gocv.Threshold(luminance8U, &light, 0, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)

	dark := gocv.NewMat()
	defer dark.Close()
	gocv.BitwiseNotWithMask(light, &dark, region)

	p.AvgLightLuminance = gocv.MeanWithMask(luminanceFloat, light).Val1
	p.AvgDarkLuminance = gocv.MeanWithMask(luminanceFloat, dark).Val1
}

// fieldToMat32F copies a scalarfield.Field into a single-channel 32-bit
// float gocv.Mat, row by row.
func fieldToMat32F(f *scalarfield.Field) gocv.Mat {
	m := gocv.NewMatWithSize(f.Height, f.Width, gocv.MatTypeCV32F)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			m.SetFloatAt(y, x, f.At(x, y))
		}
	}
	return m
}
