/*
NAME
  diff_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package diff

import (
	"math"
	"testing"

	"github.com/ausocean/photosense/scalarfield"
)

func solidField(w, h int, v float32) *scalarfield.Field {
	f := scalarfield.NewField(w, h)
	for i := range f.Values {
		f.Values[i] = v
	}
	return f
}

const (
	testW, testH = 10, 10
	testFPS      = 7
)

func newTestDifferencer(applyDarkGate bool) *Differencer {
	return New(Policy{
		FlashThreshold: 0.2,
		DarkThreshold:  0.8,
		AreaProportion: 0.1,
		ApplyDarkGate:  applyDarkGate,
	}, testFPS, testW*testH)
}

// Property 4: safe-area gate.
func TestCheckSafeAreaGate(t *testing.T) {
	d := newTestDifferencer(true)
	d.SetCurrentFrame(solidField(testW, testH, 0))
	d.SetCurrentFrame(solidField(testW, testH, 1))

	frameDiff, ok := d.FrameDifference()
	if !ok {
		t.Fatal("expected a previous frame")
	}

	// Zero out all but a few pixels of frameDiff so changed area is below
	// the 10% safe-area threshold (10 pixels out of 100).
	for i := 5; i < len(frameDiff.Values); i++ {
		frameDiff.Values[i] = 0
	}

	if got := d.CheckSafeArea(frameDiff); got != 0 {
		t.Errorf("CheckSafeArea() = %v, want 0 below safe-area threshold", got)
	}
}

func TestCheckSafeAreaAboveThreshold(t *testing.T) {
	d := newTestDifferencer(true)
	d.SetCurrentFrame(solidField(testW, testH, 0))
	d.SetCurrentFrame(solidField(testW, testH, 1))

	frameDiff, _ := d.FrameDifference()
	got := d.CheckSafeArea(frameDiff)
	want := float32(1) // currentMean(1) - previousMean(0)
	if got != want {
		t.Errorf("CheckSafeArea() = %v, want %v", got, want)
	}
}

// Property 1: sign-coherent accumulation, clipped to the trailing fps window.
func TestSignCoherentAccumulation(t *testing.T) {
	d := newTestDifferencer(false) // disable dark gate to isolate accumulation.

	var lastAccum float32
	var sum float32
	for i := 0; i < testFPS+2; i++ {
		_, combined := d.CheckTransition(0.05)
		sum += 0.05
		if len(d.window) > testFPS {
			t.Fatalf("rolling window exceeded fps capacity: %d", len(d.window))
		}
		lastAccum = combined
	}

	// After testFPS+2 steps, window should be clipped to the most recent
	// testFPS entries.
	want := float32(testFPS) * 0.05
	if math.Abs(float64(lastAccum-want)) > 1e-5 {
		t.Errorf("accumulated = %v, want %v (clipped to trailing fps window)", lastAccum, want)
	}
	_ = sum
}

func TestSignFlipClearsWindow(t *testing.T) {
	d := newTestDifferencer(false)

	d.CheckTransition(0.1)
	d.CheckTransition(0.1)
	_, combined := d.CheckTransition(-0.3)

	if len(d.window) != 1 {
		t.Fatalf("window len = %d, want 1 after sign flip", len(d.window))
	}
	if combined != -0.3 {
		t.Errorf("combined = %v, want -0.3 after sign flip", combined)
	}
}

// Property 2: edge-triggering.
func TestEdgeTriggering(t *testing.T) {
	d := newTestDifferencer(false)

	first, _ := d.CheckTransition(0.3)
	if !first {
		t.Fatal("expected first frame crossing threshold to register a transition")
	}

	second, _ := d.CheckTransition(0.05) // same sign, accumulation stays >= threshold.
	if second {
		t.Fatal("expected second consecutive same-sign frame above threshold not to re-trigger")
	}
}

// Property 3: dark gate (luminance only).
func TestDarkGateBlocksTransition(t *testing.T) {
	d := newTestDifferencer(true)
	d.SetCurrentFrame(solidField(testW, testH, 0.9))

	// A swing of 0.3 clears FlashThreshold(0.2), but the darker mean 0.9 is
	// not below DarkThreshold(0.8).
	isTransition, _, _ := d.Observe(solidField(testW, testH, 1.2))
	if isTransition {
		t.Fatal("expected dark gate to block transition when darker mean is above threshold")
	}
}

func TestDarkGateNotAppliedWhenDisabled(t *testing.T) {
	d := newTestDifferencer(false)
	d.SetCurrentFrame(solidField(testW, testH, 0.9))

	// Same swing as above: the darker mean 0.9 would block it if the gate
	// applied.
	isTransition, _, _ := d.Observe(solidField(testW, testH, 1.2))
	if !isTransition {
		t.Fatal("expected transition with dark gate disabled, even though the darker mean 0.9 is not below DarkThreshold(0.8)")
	}
}

func TestFirstFrameProducesNoTransition(t *testing.T) {
	d := newTestDifferencer(true)
	isTransition, _, _ := d.Observe(solidField(testW, testH, 0.5))
	if isTransition {
		t.Fatal("first frame must never produce a transition")
	}
}
