/*
NAME
  tracker_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import "testing"

import "github.com/ausocean/photosense/window"

func TestCounterBasicAccumulation(t *testing.T) {
	var c counter
	got := c.updateCurrent(true)
	if got != 1 {
		t.Fatalf("updateCurrent(true) = %d, want 1", got)
	}
	got = c.updateCurrent(false)
	if got != 1 {
		t.Fatalf("updateCurrent(false) = %d, want 1 (no new transition)", got)
	}
	got = c.updateCurrent(true)
	if got != 2 {
		t.Fatalf("updateCurrent(true) = %d, want 2", got)
	}

	c.updatePassed() // Evict the first frame (count 1): passed becomes 1.
	if c.current != 1 {
		t.Fatalf("current after updatePassed = %d, want 1", c.current)
	}
}

func TestTrackerPassBelowWarningThreshold(t *testing.T) {
	params := Params{MaxTransitions: 6, MinTransitions: 4, WarningTransitions: 4, ExtendedFailSeconds: 4, ExtendedFailWindow: 5}
	wm := window.NewFPSManager()
	tr := New(5, params, wm)

	for i := 0; i < 3; i++ {
		wm.Arrive(int64(i))
		lum, red := tr.Observe(true, true)
		if lum != Pass || red != Pass {
			t.Errorf("frame %d: got lum=%v red=%v, want Pass/Pass", i, lum, red)
		}
	}
}

// TestTrackerSteadyWarning confirms that once a fixed-FPS W1 window saturates
// with every frame transitioning, the count converges to the window capacity
// (here 5) and stays there — never exceeding Max (6) — so every subsequent
// frame is PassWithWarning rather than FlashFail.
func TestTrackerSteadyWarning(t *testing.T) {
	params := Params{MaxTransitions: 6, MinTransitions: 4, WarningTransitions: 4, ExtendedFailSeconds: 4, ExtendedFailWindow: 5}
	wm := window.NewFPSManager()
	tr := New(5, params, wm)

	for i := 0; i < 10; i++ {
		wm.Arrive(int64(i))
		tr.Observe(true, true)
	}

	if tr.LuminanceTransitions() != 5 {
		t.Errorf("LuminanceTransitions = %d, want 5 (window capacity)", tr.LuminanceTransitions())
	}
	if !tr.LuminanceFlags().PassWithWarning {
		t.Error("expected PassWithWarning flag to be set")
	}
	if tr.LuminanceFlags().FlashFail {
		t.Error("FlashFail flag should not be set")
	}
}

// TestTrackerFlashFail: at fps=10 a fully-transitioning stream saturates W1 at
// count 10, which exceeds Max (6), so every frame once the window fills
// should report FlashFail. W1 counts 1,2,...,10 over frames 1-10 and then
// stays at the window capacity (10), so FlashFail fires on frames 7-12
// inclusive: 6 frames.
func TestTrackerFlashFail(t *testing.T) {
	params := Params{MaxTransitions: 6, MinTransitions: 4, WarningTransitions: 4, ExtendedFailSeconds: 4, ExtendedFailWindow: 5}
	wm := window.NewFPSManager()
	tr := New(10, params, wm)

	var lastLum, lastRed FlashResult
	for i := 0; i < 12; i++ {
		wm.Arrive(int64(i))
		lastLum, lastRed = tr.Observe(true, true)
	}

	if lastLum != FlashFail || lastRed != FlashFail {
		t.Fatalf("got lum=%v red=%v, want FlashFail/FlashFail", lastLum, lastRed)
	}
	if got := tr.LuminanceIncidents().FlashFailFrames; got != 6 {
		t.Errorf("LuminanceIncidents().FlashFailFrames = %d, want 6", got)
	}
	if got := tr.RedIncidents().FlashFailFrames; got != 6 {
		t.Errorf("RedIncidents().FlashFailFrames = %d, want 6", got)
	}
}

// TestTrackerLuminanceFlashFailExactCount reproduces the luminance-only
// flash-fail scenario at fps=8: W1's capacity is 8, so no frame ages out of
// the window across these 8 arrivals, and the cumulative luminance count
// climbs 1,2,...,8. Observe evaluates a verdict every frame (required so
// FrameRecord.LuminanceFrameResult is meaningful on each frame, consistent
// with the extended-fail scenario in TestTrackerExtendedFail23Frames), so
// both frames whose count exceeds MaxTransitions (6) - frame 7 (count 7) and
// frame 8 (count 8) - each register their own FlashFail incident.
func TestTrackerLuminanceFlashFailExactCount(t *testing.T) {
	params := Params{MaxTransitions: 6, MinTransitions: 4, WarningTransitions: 4, ExtendedFailSeconds: 4, ExtendedFailWindow: 5}
	wm := window.NewFPSManager()
	tr := New(8, params, wm)

	var lastLum, lastRed FlashResult
	for i := 0; i < 8; i++ {
		wm.Arrive(int64(i))
		lastLum, lastRed = tr.Observe(true, false)
	}

	if lastLum != FlashFail {
		t.Fatalf("luminance got %v, want FlashFail", lastLum)
	}
	if lastRed != Pass {
		t.Fatalf("red got %v, want Pass (no red transitions fed)", lastRed)
	}
	if got := tr.LuminanceIncidents().FlashFailFrames; got != 2 {
		t.Errorf("LuminanceIncidents().FlashFailFrames = %d, want 2", got)
	}
	if got := tr.RedIncidents(); got != (IncidentTotals{}) {
		t.Errorf("RedIncidents() = %+v, want zero value", got)
	}
}

// TestTrackerExtendedFail23Frames reproduces the extended-fail scenario: a
// fixed fps=5 stream with every frame transitioning reaches its first
// ExtendedFail verdict on frame 23, having logged PassWithWarning on the 19
// frames before it (frames 4 through 22; frames 1-3 are below the warning
// threshold).
func TestTrackerExtendedFail23Frames(t *testing.T) {
	params := Params{MaxTransitions: 6, MinTransitions: 4, WarningTransitions: 4, ExtendedFailSeconds: 4, ExtendedFailWindow: 5}
	wm := window.NewFPSManager()
	tr := New(5, params, wm)

	var lastLum, lastRed FlashResult
	for i := 0; i < 23; i++ {
		wm.Arrive(int64(i))
		lastLum, lastRed = tr.Observe(true, true)
	}

	if lastLum != ExtendedFail || lastRed != ExtendedFail {
		t.Fatalf("frame 23: got lum=%v red=%v, want ExtendedFail/ExtendedFail", lastLum, lastRed)
	}

	wantIncidents := IncidentTotals{PassWithWarningFrames: 19, ExtendedFailFrames: 1}
	if got := tr.LuminanceIncidents(); got != wantIncidents {
		t.Errorf("LuminanceIncidents = %+v, want %+v", got, wantIncidents)
	}
	if got := tr.RedIncidents(); got != wantIncidents {
		t.Errorf("RedIncidents = %+v, want %+v", got, wantIncidents)
	}
	if got := tr.LuminanceIncidents().TotalFailedFrames(); got != 1 {
		t.Errorf("TotalFailedFrames = %d, want 1", got)
	}
}

// TestTrackerNonTransitioningStreamAlwaysPasses is a control: a stream that
// never transitions must never leave Pass, regardless of length.
func TestTrackerNonTransitioningStreamAlwaysPasses(t *testing.T) {
	params := Params{MaxTransitions: 6, MinTransitions: 4, WarningTransitions: 4, ExtendedFailSeconds: 4, ExtendedFailWindow: 5}
	wm := window.NewFPSManager()
	tr := New(5, params, wm)

	for i := 0; i < 50; i++ {
		wm.Arrive(int64(i))
		lum, red := tr.Observe(false, false)
		if lum != Pass || red != Pass {
			t.Fatalf("frame %d: got lum=%v red=%v, want Pass/Pass", i, lum, red)
		}
	}

	if tr.LuminanceIncidents() != (IncidentTotals{}) {
		t.Errorf("expected zero incidents, got %+v", tr.LuminanceIncidents())
	}
}
