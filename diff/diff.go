/*
NAME
  diff.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package diff implements the frame-to-frame flash transition detector: a
// pairwise scalar-field difference, a safe-area gate, a sign-coherent
// accumulator bounded to a rolling one-second window, and the edge-triggered
// transition classifier. One Differencer exists per channel (luminance,
// red-saturation).
package diff

import (
	"github.com/ausocean/photosense/scalarfield"
)

// Policy carries the per-channel configuration a Differencer is built with.
// Luminance and red-saturation channels use distinct threshold values and
// may differ on whether the darker-mean gate applies at all.
type Policy struct {
	FlashThreshold float32 // Minimum |combined signed diff| to register a transition.
	DarkThreshold  float32 // Darker-of-the-pair mean must be below this for a transition to fire.
	AreaProportion float64 // Minimum changed-pixel fraction for CheckSafeArea to report a non-zero diff.
	ApplyDarkGate  bool    // Whether the darker-mean gate applies to this channel.
}

// Differencer tracks one channel's previous/current scalar fields and the
// rolling accumulator used to detect flash transitions.
type Differencer struct {
	policy    Policy
	fps       int
	frameSize int
	safeArea  int // truncated toward zero: int(frameSize * AreaProportion).

	previous *scalarfield.Field
	current  *scalarfield.Field

	previousMean float32
	currentMean  float32

	window      []float32 // rolling per-step signed contributions, capacity fps.
	accumulated float32   // sign-coherent running sum across window.

	flashAreaProportion float64
}

// New constructs a Differencer for a channel with the given nominal fps and
// frame pixel count (width*height). fps bounds the rolling window; frameSize
// determines the safe-area pixel threshold.
func New(policy Policy, fps, frameSize int) *Differencer {
	if fps < 1 {
		fps = 1
	}
	return &Differencer{
		policy:    policy,
		fps:       fps,
		frameSize: frameSize,
		safeArea:  int(float64(frameSize) * policy.AreaProportion), // truncation toward zero.
		window:    make([]float32, 0, fps),
	}
}

// SetCurrentFrame rotates previous <- current, current <- field, and updates
// the per-frame means. The field passed in becomes owned by the Differencer.
func (d *Differencer) SetCurrentFrame(field *scalarfield.Field) {
	d.previous = d.current
	d.current = field

	d.previousMean = d.currentMean
	d.currentMean = field.Mean()
}

// FrameDifference returns current-minus-previous, elementwise, and whether a
// previous frame existed at all (the first frame of a stream has none).
func (d *Differencer) FrameDifference() (*scalarfield.Field, bool) {
	if d.previous == nil || d.current == nil {
		return nil, false
	}
	out := scalarfield.NewField(d.current.Width, d.current.Height)
	for i := range out.Values {
		out.Values[i] = d.current.Values[i] - d.previous.Values[i]
	}
	return out, true
}

// CheckSafeArea returns 0 if fewer than the configured safe-area proportion
// of pixels changed, otherwise current_mean - previous_mean. It also records
// the flash-area proportion observed, retrievable via FlashAreaProportion.
func (d *Differencer) CheckSafeArea(frameDiff *scalarfield.Field) float32 {
	variation := frameDiff.CountNonZero()
	if d.frameSize > 0 {
		d.flashAreaProportion = float64(variation) / float64(d.frameSize)
	}

	if variation < d.safeArea {
		return 0
	}
	return d.currentMean - d.previousMean
}

// sameSign reports whether num1 and num2 have matching sign, treating 0 as
// compatible with either sign (0 means "the flash trend has not changed").
func sameSign(num1, num2 float32) bool {
	return (num1 <= 0 && num2 <= 0) || (num1 >= 0 && num2 >= 0)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// CheckTransition accumulates signedDiff into the rolling window (clearing it
// on a sign flip) and reports whether this accumulation newly crosses the
// flash threshold, edge-triggered so a sustained level above threshold only
// fires once. It returns the new accumulated value, which the caller should
// retain across frames (Differencer does this internally via Observe).
func (d *Differencer) CheckTransition(signedDiff float32) (isNewTransition bool, combined float32) {
	lastAccumulated := d.accumulated

	if sameSign(lastAccumulated, signedDiff) {
		if len(d.window) == cap(d.window) && len(d.window) > 0 {
			lastAccumulated -= d.window[0]
			d.window = append(d.window[:0], d.window[1:]...)
		}
		d.window = append(d.window, signedDiff)
		combined = signedDiff + lastAccumulated
	} else {
		d.window = append(d.window[:0], signedDiff)
		combined = signedDiff
	}

	isNewTransition = d.isFlashTransition(lastAccumulated, combined)
	d.accumulated = combined
	return isNewTransition, combined
}

// isFlashTransition implements the edge-triggering + dark-gate transition
// classification logic.
func (d *Differencer) isFlashTransition(lastAccumulated, combined float32) bool {
	// Edge-triggering: if the previous frame already crossed the same-sign
	// threshold, this frame is a continuation, not a new transition.
	if sameSign(lastAccumulated, combined) && abs32(lastAccumulated) >= d.policy.FlashThreshold {
		return false
	}

	if abs32(combined) < d.policy.FlashThreshold {
		return false
	}

	if !d.policy.ApplyDarkGate {
		return true
	}

	darkerMean := min32(d.previousMean, d.currentMean)
	return darkerMean < d.policy.DarkThreshold
}

// Observe runs the full per-frame pipeline for one incoming scalar field:
// frame rotation, frame differencing, the safe-area gate, and transition
// classification. It returns false with no further effect on the first
// frame of a stream, since there is no previous frame to diff against.
func (d *Differencer) Observe(field *scalarfield.Field) (isTransition bool, signedDiff, accumulated float32) {
	d.SetCurrentFrame(field)

	frameDiff, hasPrevious := d.FrameDifference()
	if !hasPrevious {
		return false, 0, d.accumulated
	}

	signedDiff = d.CheckSafeArea(frameDiff)
	isTransition, accumulated = d.CheckTransition(signedDiff)
	return isTransition, signedDiff, accumulated
}

// Mean returns the current frame's mean value.
func (d *Differencer) Mean() float32 { return d.currentMean }

// FlashAreaProportion returns the fraction of pixels that changed on the
// last CheckSafeArea call.
func (d *Differencer) FlashAreaProportion() float64 { return d.flashAreaProportion }

// Accumulated returns the current sign-coherent accumulated signed diff.
func (d *Differencer) Accumulated() float32 { return d.accumulated }
