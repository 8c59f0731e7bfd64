/*
NAME
  scalarfield.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package scalarfield provides the per-pixel scalar fields (luminance,
// red-saturation) that the flash-transition detectors operate on, plus the
// sRGB conversion that feeds them both. Per-pixel work is fanned out across
// a bounded worker pool sized to the frame's row count, joined with
// golang.org/x/sync/errgroup.
package scalarfield

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/ausocean/photosense/colortable"
)

// Field is a rectangular grid of 32-bit floats, one per pixel, in row-major
// order. It is the common representation for both the luminance field and
// the red-saturation field.
type Field struct {
	Width, Height int
	Values        []float32
}

// NewField allocates a zeroed field of the given dimensions.
func NewField(width, height int) *Field {
	return &Field{Width: width, Height: height, Values: make([]float32, width*height)}
}

// At returns the value at (x, y).
func (f *Field) At(x, y int) float32 { return f.Values[y*f.Width+x] }

// Set assigns the value at (x, y).
func (f *Field) Set(x, y int, v float32) { f.Values[y*f.Width+x] = v }

// Mean returns the arithmetic mean over all pixels in the field.
func (f *Field) Mean() float32 {
	if len(f.Values) == 0 {
		return 0
	}
	sum := floats.Sum(toFloat64(f.Values))
	return float32(sum / float64(len(f.Values)))
}

// CountNonZero returns the number of non-zero entries in the field.
func (f *Field) CountNonZero() int {
	n := 0
	for _, v := range f.Values {
		if v != 0 {
			n++
		}
	}
	return n
}

// toFloat64 widens a float32 slice for gonum/floats, which operates on
// float64. The scalar fields themselves stay float32 for size and speed;
// only the reduction is done in the wider type.
func toFloat64(src []float32) []float64 {
	dst := make([]float64, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

// RGBFrame is an sRGB-converted frame, BGR channel order, three float32
// values per pixel. It is the shared input to both Luminance and
// RedSaturation below.
type RGBFrame struct {
	Width, Height int
	// Values holds width*height*3 entries; pixel (x,y)'s channels are at
	// offset (y*Width+x)*3 + {0:B, 1:G, 2:R}.
	Values []float32
}

const (
	chanB = 0
	chanG = 1
	chanR = 2
)

// ToSRGB converts an 8-bit BGR frame into a normalised sRGB RGBFrame using
// the supplied lookup table, fanning the per-row conversion out across a
// worker pool sized by workers: the inner per-pixel loop parallelises while
// cross-frame state stays sequential elsewhere.
func ToSRGB(bgr []byte, width, height int, tbl *colortable.Table, workers int) (*RGBFrame, error) {
	if len(bgr) != width*height*3 {
		return nil, fmt.Errorf("scalarfield: frame has %d bytes, want %d for %dx%d BGR", len(bgr), width*height*3, width, height)
	}

	out := &RGBFrame{Width: width, Height: height, Values: make([]float32, width*height*3)}

	err := forEachRow(height, workers, func(y int) {
		rowOff := y * width * 3
		for x := 0; x < width; x++ {
			off := rowOff + x*3
			out.Values[off+chanB] = tbl.Lookup(bgr[off+chanB])
			out.Values[off+chanG] = tbl.Lookup(bgr[off+chanG])
			out.Values[off+chanR] = tbl.Lookup(bgr[off+chanR])
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Relative luminance weights, per ITU-R BT.709:
// Y = 0.0722*B + 0.7152*G + 0.2126*R.
const (
	weightB = 0.0722
	weightG = 0.7152
	weightR = 0.2126
)

// Luminance computes the per-pixel relative luminance field from an sRGB
// frame.
func Luminance(src *RGBFrame, workers int) (*Field, error) {
	f := NewField(src.Width, src.Height)
	err := forEachRow(src.Height, workers, func(y int) {
		rowOff := y * src.Width * 3
		dstOff := y * src.Width
		for x := 0; x < src.Width; x++ {
			off := rowOff + x*3
			b, g, r := src.Values[off+chanB], src.Values[off+chanG], src.Values[off+chanR]
			f.Values[dstOff+x] = weightB*b + weightG*g + weightR*r
		}
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Red-saturation constants: a pixel is considered saturated red if
// R/(R+G+B) >= redSaturationRatio, and its coefficient is
// (R-G-B)*redSaturationScale, clamped to non-negative.
const (
	redSaturationRatio = 0.8
	redSaturationScale = 320
)

// RedSaturation computes the per-pixel red-saturation coefficient field from
// an sRGB frame.
func RedSaturation(src *RGBFrame, workers int) (*Field, error) {
	f := NewField(src.Width, src.Height)
	err := forEachRow(src.Height, workers, func(y int) {
		rowOff := y * src.Width * 3
		dstOff := y * src.Width
		for x := 0; x < src.Width; x++ {
			off := rowOff + x*3
			b, g, r := src.Values[off+chanB], src.Values[off+chanG], src.Values[off+chanR]

			total := r + g + b
			if total <= 0 || r/total < redSaturationRatio {
				continue
			}
			coef := (r - g - b) * redSaturationScale
			if coef > 0 {
				f.Values[dstOff+x] = coef
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// WorkerCount recommends a worker-pool size for the per-row fan-out, scaling
// with frame height (≈6 workers at 1080p, rising with height).
func WorkerCount(height int) int {
	const refHeight = 1080
	const refWorkers = 6
	w := refWorkers * height / refHeight
	if w < 1 {
		w = 1
	}
	if max := runtime.NumCPU(); w > max {
		w = max
	}
	return w
}

// forEachRow partitions [0,rows) into contiguous chunks and runs fn on each
// row within a chunk, using an errgroup bounded to workers goroutines.
// Cross-frame state is never touched here; this only parallelises the
// independent per-row inner loop.
func forEachRow(rows, workers int, fn func(y int)) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > rows {
		workers = rows
	}
	if workers <= 1 || rows == 0 {
		for y := 0; y < rows; y++ {
			fn(y)
		}
		return nil
	}

	g, _ := errgroup.WithContext(context.Background())
	chunk := (rows + workers - 1) / workers
	for start := 0; start < rows; start += chunk {
		start := start
		end := start + chunk
		if end > rows {
			end = rows
		}
		g.Go(func() error {
			for y := start; y < end; y++ {
				fn(y)
			}
			return nil
		})
	}
	return g.Wait()
}
