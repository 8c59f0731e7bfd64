/*
NAME
  frame.go

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

// Frame is one decoded, 8-bit BGR frame handed to the core by the hosting
// application's decoder; demuxing/decoding is the hosting application's
// job, not the core's. Pixels holds Width*Height*3 bytes, BGR channel order,
// row-major.
type Frame struct {
	Index       uint32
	TimestampMs int64
	Width       int
	Height      int
	Pixels      []byte
}

// resizeBGR nearest-neighbour-samples src (an 8-bit BGR frame, srcW x srcH)
// down to a proportion of its original size. It is pure Go, deliberately
// independent of gocv, so that frame_resize.enabled works even when the
// module is built without the withcv tag (pattern detection is the only
// component that requires OpenCV; see pattern/detector_stub.go).
func resizeBGR(src []byte, srcW, srcH int, proportion float64) (dst []byte, dstW, dstH int) {
	dstW = int(float64(srcW) * proportion)
	dstH = int(float64(srcH) * proportion)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst = make([]byte, dstW*dstH*3)
	for y := 0; y < dstH; y++ {
		sy := y * srcH / dstH
		for x := 0; x < dstW; x++ {
			sx := x * srcW / dstW
			srcOff := (sy*srcW + sx) * 3
			dstOff := (y*dstW + x) * 3
			dst[dstOff], dst[dstOff+1], dst[dstOff+2] = src[srcOff], src[srcOff+1], src[srcOff+2]
		}
	}
	return dst, dstW, dstH
}
