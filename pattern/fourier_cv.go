//go:build withcv
// +build withcv

/*
NAME
  fourier_cv.go

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

	"gocv.io/x/gocv"
)

// fourierTransform performs the DFT/IDFT round trip used to remove the
// dominant periodic structure from a luminance frame: forward DFT, a power
// spectral density estimate, Otsu-thresholded peak detection, suppression of
// those peaks (except near DC), and an inverse transform back to image space.
type fourierTransform struct {
	center image.Point
}

func newFourierTransform(center image.Point) *fourierTransform {
	return &fourierTransform{center: center}
}

// dft returns the forward, complex, scale-normalised DFT of an 8-bit
// single-channel image, zero-padded to the next size with an efficient FFT
// factorisation.
func (ft *fourierTransform) dft(src gocv.Mat) gocv.Mat {
	m := gocv.GetOptimalDFTSize(src.Rows())
	n := gocv.GetOptimalDFTSize(src.Cols())

	padded := gocv.NewMat()
	defer padded.Close()
	gocv.CopyMakeBorder(src, &padded, 0, m-src.Rows(), 0, n-src.Cols(), gocv.BorderConstant, gocv.NewScalar(0, 0, 0, 0))
	padded.ConvertToWithParams(&padded, gocv.MatTypeCV32F, 1.0/255.0, 0)

	imag := gocv.NewMatWithSize(padded.Rows(), padded.Cols(), gocv.MatTypeCV32F)
	defer imag.Close()
	complexIn := gocv.NewMat()
	defer complexIn.Close()
	gocv.Merge([]gocv.Mat{padded, imag}, &complexIn)

	out := gocv.NewMat()
	gocv.DFT(complexIn, &out, gocv.DftScale|gocv.DftComplexOutput)
	return out
}

// dftComponents is the magnitude/phase decomposition of a complex DFT.
type dftComponents struct {
	magnitude, phase gocv.Mat
}

func (ft *fourierTransform) components(dft gocv.Mat) dftComponents {
	planes := gocv.Split(dft)
	mag, phase := gocv.NewMat(), gocv.NewMat()
	gocv.CartToPolar(planes[0], planes[1], &mag, &phase, false)
	planes[0].Close()
	planes[1].Close()
	return dftComponents{magnitude: mag, phase: phase}
}

// psd derives a normalised, log-scaled power spectral density estimate from
// dft, for use as the peak-detection input.
func (ft *fourierTransform) psd(dft gocv.Mat) (magnitude, phase, powerSpectrum gocv.Mat) {
	comps := ft.components(dft)

	ps := comps.magnitude.Clone()
	gocv.Normalize(ps, &ps, -1.0, 1.0, gocv.NormMinMax)

	zero := gocv.NewMatWithSize(ps.Rows(), ps.Cols(), ps.Type())
	zero.SetTo(gocv.NewScalar(0, 0, 0, 0))
	absPS := gocv.NewMat()
	gocv.AbsDiff(ps, zero, &absPS)
	zero.Close()
	ps.Close()

	ones := gocv.NewMatWithSize(absPS.Rows(), absPS.Cols(), absPS.Type())
	ones.SetTo(gocv.NewScalar(1, 0, 0, 0))
	gocv.Subtract(ones, absPS, &absPS)
	ones.Close()

	gocv.Pow(absPS, 2, &absPS)
	logScale(&absPS)
	gocv.Normalize(absPS, &absPS, 0, 255, gocv.NormMinMax)

	return comps.magnitude, comps.phase, absPS
}

// peaks Otsu-thresholds the PSD to isolate its strongest local maxima.
func (ft *fourierTransform) peaks(psd gocv.Mat) gocv.Mat {
	u8 := gocv.NewMat()
	psd.ConvertTo(&u8, gocv.MatTypeCV8U)
	thresh := gocv.NewMat()
	gocv.Threshold(u8, &thresh, 7, 255, gocv.ThresholdBinary+gocv.ThresholdOtsu)
	u8.Close()
	return thresh
}

// filterMagnitude zeroes out the detected peaks in magnitude, other than a
// 5-pixel radius around DC (the zero-frequency component, which always
// dominates and is not itself a pattern signal).
func (ft *fourierTransform) filterMagnitude(peaks, magnitude gocv.Mat) {
	fftShift(&peaks)
	peaks8U := gocv.NewMat()
	defer peaks8U.Close()
	peaks.ConvertTo(&peaks8U, gocv.MatTypeCV8U)
	gocv.Circle(&peaks8U, ft.center, 5, gocv.NewScalar(0, 0, 0, 0), -1)
	fftShift(&peaks8U)

	zero := gocv.NewMatWithSize(magnitude.Rows(), magnitude.Cols(), magnitude.Type())
	defer zero.Close()
	zero.CopyToWithMask(&magnitude, peaks8U)
}

// inverse reconstructs an 8-bit image from magnitude/phase via an inverse,
// real-output DFT.
func (ft *fourierTransform) inverse(magnitude, phase gocv.Mat) gocv.Mat {
	re, im := gocv.NewMat(), gocv.NewMat()
	defer re.Close()
	defer im.Close()
	gocv.PolarToCart(magnitude, phase, &re, &im, false)

	complex := gocv.NewMat()
	defer complex.Close()
	gocv.Merge([]gocv.Mat{re, im}, &complex)

	ift := gocv.NewMat()
	gocv.DFT(complex, &ift, gocv.DftInverse|gocv.DftRealOutput)
	ift.ConvertToWithParams(&ift, gocv.MatTypeCV8U, 255.0, 0)
	return ift
}

// fftShift rearranges the quadrants of a DFT-domain image so that the
// zero-frequency component sits at the image's centre rather than its
// corners.
func fftShift(m *gocv.Mat) {
	cols, rows := m.Cols()&-2, m.Rows()&-2
	region := m.Region(image.Rect(0, 0, cols, rows))
	defer region.Close()

	cx, cy := cols/2, rows/2
	q0 := region.Region(image.Rect(0, 0, cx, cy))
	q1 := region.Region(image.Rect(cx, 0, cols, cy))
	q2 := region.Region(image.Rect(0, cy, cx, rows))
	q3 := region.Region(image.Rect(cx, cy, cols, rows))
	defer q0.Close()
	defer q1.Close()
	defer q2.Close()
	defer q3.Close()

	tmp := gocv.NewMat()
	defer tmp.Close()
	q0.CopyTo(&tmp)
	q3.CopyTo(&q0)
	tmp.CopyTo(&q3)

	q1.CopyTo(&tmp)
	q2.CopyTo(&q1)
	tmp.CopyTo(&q2)
}

// logScale maps m to a logarithmic scale in place: m += 1; log(m, m).
func logScale(m *gocv.Mat) {
	ones := gocv.NewMatWithSize(m.Rows(), m.Cols(), m.Type())
	defer ones.Close()
	ones.SetTo(gocv.NewScalar(1, 0, 0, 0))
	gocv.Add(*m, ones, m)
	gocv.Log(*m, m)
}
