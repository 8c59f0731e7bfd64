/*
NAME
  window.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package window implements the sliding-window abstraction the transition
// tracker uses to find out how many of the oldest frame arrivals have aged
// out of a registered window. Two strategies are provided: a frame-count
// window for fixed-FPS streams, and a wall-clock timestamp window for
// variable/real-time streams. Both satisfy the single Manager interface so
// the tracker does not need to know which one it was built with.
package window

// Handle identifies a window registered with a Manager. Handles are opaque
// indices assigned in registration order.
type Handle int

// Manager is the sliding-window abstraction. It is single-threaded: frames
// must arrive via Arrive in monotonic timestamp order for the timestamp
// implementation to behave sensibly; a violation is handled per-window as a
// reset that keeps only the new frame (see Arrive's return value).
type Manager interface {
	// Register adds a new window of the given frame-count capacity and, for
	// timestamp-based managers, wall-clock capacity in seconds. It returns a
	// handle used by the other methods.
	Register(maxFrames int, maxSeconds float64) Handle

	// Arrive notifies every registered window of a new frame arrival at the
	// given timestamp (milliseconds). It reports whether this arrival was
	// detected as non-monotonic (timestamp implementation only; always false
	// for the frame-count implementation), in which case every window was
	// reset keeping only the new frame.
	Arrive(timestampMs int64) (nonMonotonic bool)

	// AgedOut returns how many of the oldest entries exited the window as a
	// result of the most recent Arrive call.
	AgedOut(h Handle) int

	// Size returns how many frames currently fall inside the window.
	Size(h Handle) int

	// Reset clears a window. If keepLast is true the most recently arrived
	// frame remains as the window's sole entry; otherwise the window is left
	// completely empty.
	Reset(h Handle, keepLast bool)
}
