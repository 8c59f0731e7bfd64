/*
NAME
  time.go

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

// TimeManager implements Manager for variable/real-time streams: windows are
// bounded by wall-clock time rather than frame count. Each window keeps an
// ordered list of arrival timestamps and the deltas between consecutive
// arrivals, plus their running sum, so that ageing frames out of the window
// is amortised O(1) per arrival.
type TimeManager struct {
	windows []*timeWindow
}

type timeWindow struct {
	maxFrames int   // advisory capacity, unused for sizing (time-bounded instead).
	maxTimeMs int64 // window length in milliseconds.

	timestamps     []int64 // arrival timestamps currently in the window.
	deltas         []int64 // deltas between consecutive timestamps in the window.
	timeSum        int64   // sum of deltas.
	framesToRemove int
}

// NewTimeManager returns a new, empty TimeManager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Register implements Manager. maxSeconds is converted to milliseconds and
// truncated, storing the window length as an integer millisecond value.
func (m *TimeManager) Register(maxFrames int, maxSeconds float64) Handle {
	m.windows = append(m.windows, &timeWindow{
		maxFrames: maxFrames,
		maxTimeMs: int64(maxSeconds * 1000),
	})
	return Handle(len(m.windows) - 1)
}

// Arrive implements Manager.
func (m *TimeManager) Arrive(timestampMs int64) bool {
	nonMonotonic := false
	for _, w := range m.windows {
		if w.addFrame(timestampMs) {
			nonMonotonic = true
		}
	}
	return nonMonotonic
}

// addFrame updates one window with a new arrival and reports whether the
// arrival violated the monotonic-timestamp precondition.
func (w *timeWindow) addFrame(timestampMs int64) (nonMonotonic bool) {
	if len(w.timestamps) == 0 {
		w.framesToRemove = 0
		w.timestamps = append(w.timestamps, timestampMs)
		return false
	}

	dt := timestampMs - w.timestamps[len(w.timestamps)-1]
	if dt <= 0 {
		// Caller precondition violated: timestamps must be strictly
		// increasing. Recover by resetting and keeping only the new frame.
		prior := len(w.timestamps)
		w.resetLocked(false)
		w.timestamps = append(w.timestamps, timestampMs)
		w.framesToRemove = prior
		return true
	}

	if dt >= w.maxTimeMs {
		prior := len(w.timestamps)
		w.resetLocked(false)
		w.timestamps = append(w.timestamps, timestampMs)
		w.framesToRemove = prior
		return false
	}

	removed := 0
	for w.timeSum+dt >= w.maxTimeMs {
		w.timeSum -= w.deltas[0]
		w.deltas = w.deltas[1:]
		w.timestamps = w.timestamps[1:]
		removed++
	}
	w.timeSum += dt
	w.deltas = append(w.deltas, dt)
	w.timestamps = append(w.timestamps, timestampMs)
	w.framesToRemove = removed
	return false
}

// resetLocked clears a window's timestamps/deltas, optionally keeping the
// most recent timestamp.
func (w *timeWindow) resetLocked(keepLast bool) {
	if keepLast && len(w.timestamps) > 0 {
		last := w.timestamps[len(w.timestamps)-1]
		w.timestamps = w.timestamps[:0]
		w.timestamps = append(w.timestamps, last)
	} else {
		w.timestamps = w.timestamps[:0]
	}
	w.deltas = w.deltas[:0]
	w.timeSum = 0
	w.framesToRemove = 0
}

// AgedOut implements Manager.
func (m *TimeManager) AgedOut(h Handle) int { return m.windows[h].framesToRemove }

// Size implements Manager: the exact count of timestamps currently held.
func (m *TimeManager) Size(h Handle) int { return len(m.windows[h].timestamps) }

// Reset implements Manager.
func (m *TimeManager) Reset(h Handle, keepLast bool) {
	m.windows[h].resetLocked(keepLast)
}
