/*
NAME
  fps.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package window

// FPSManager implements Manager for fixed-framerate streams: a window is
// full after maxFrames arrivals, after which every subsequent arrival ages
// out exactly one frame. Size grows with occupancy and saturates at the
// window's capacity once full; TransitionTracker relies on this exact count
// for its extended-fail window comparison rather than an approximation
// derived from the 1-second window's own occupancy.
type FPSManager struct {
	windows []fpsWindow
}

type fpsWindow struct {
	maxFrames      int
	currentFrames  int
	framesToRemove int
}

// NewFPSManager returns a new, empty FPSManager.
func NewFPSManager() *FPSManager {
	return &FPSManager{}
}

// Register implements Manager. maxSeconds is accepted for interface
// compatibility but unused; fixed-FPS windows are sized purely in frames.
func (m *FPSManager) Register(maxFrames int, maxSeconds float64) Handle {
	m.windows = append(m.windows, fpsWindow{maxFrames: maxFrames})
	return Handle(len(m.windows) - 1)
}

// Arrive implements Manager. The frame-count strategy has no notion of a
// non-monotonic timestamp, so it always reports false.
func (m *FPSManager) Arrive(timestampMs int64) bool {
	for i := range m.windows {
		w := &m.windows[i]
		full := 0
		if w.currentFrames >= w.maxFrames {
			full = 1
		}
		w.framesToRemove = full
		w.currentFrames += 1 - full
	}
	return false
}

// AgedOut implements Manager.
func (m *FPSManager) AgedOut(h Handle) int { return m.windows[h].framesToRemove }

// Size implements Manager: occupancy grows with each arrival until the
// window fills, then saturates at its configured capacity.
func (m *FPSManager) Size(h Handle) int { return m.windows[h].currentFrames }

// Reset implements Manager. keepLast is accepted for interface symmetry with
// TimeManager; a fixed-FPS window always behaves as though the new frame is
// present immediately after a reset.
func (m *FPSManager) Reset(h Handle, keepLast bool) {
	w := &m.windows[h]
	w.framesToRemove = 0
	w.currentFrames = 1
}
