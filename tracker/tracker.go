/*
NAME
  tracker.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package tracker implements the transition tracker: it consumes the
// per-frame luminance/red-saturation transition booleans produced by
// package diff and, via a window.Manager, maintains the 1-second and
// 5-second cumulative counters that drive the per-frame flash verdict.
package tracker

import "github.com/ausocean/photosense/window"

// FlashResult is the per-frame, per-channel flash verdict.
type FlashResult int

const (
	Pass FlashResult = iota
	PassWithWarning
	ExtendedFail
	FlashFail
)

func (r FlashResult) String() string {
	switch r {
	case Pass:
		return "Pass"
	case PassWithWarning:
		return "PassWithWarning"
	case ExtendedFail:
		return "ExtendedFail"
	case FlashFail:
		return "FlashFail"
	default:
		return "Unknown"
	}
}

// IncidentTotals accumulates, for one channel, how many frames fell into
// each non-pass category over the whole stream.
type IncidentTotals struct {
	PassWithWarningFrames int
	ExtendedFailFrames    int
	FlashFailFrames       int
}

// TotalFailedFrames is extended-fail frames plus flash-fail frames: the
// two categories the overall clip verdict treats as failing rather than
// merely warning.
func (t IncidentTotals) TotalFailedFrames() int {
	return t.ExtendedFailFrames + t.FlashFailFrames
}

// VerdictFlags are the monotonic, once-set, per-channel flags used for the
// overall stream verdict roll-up.
type VerdictFlags struct {
	PassWithWarning bool
	FlashFail       bool
	ExtendedFail    bool
}

// counter is a cumulative transition count sequence plus a passed prefix.
// current is always counts.back - passed.
type counter struct {
	counts  []int
	passed  int
	current int
}

// updateCurrent appends one frame's observation (transition or not) to the
// cumulative sequence and returns the new window count.
func (c *counter) updateCurrent(observed bool) int {
	delta := 0
	if observed {
		delta = 1
	}

	if len(c.counts) == 0 {
		c.counts = append(c.counts, delta)
		c.current = delta
		return c.current
	}

	c.counts = append(c.counts, c.counts[len(c.counts)-1]+delta)
	c.current = c.counts[len(c.counts)-1] - c.passed
	return c.current
}

// updatePassed advances the passed prefix by one aged-out entry.
func (c *counter) updatePassed() {
	if len(c.counts) == 0 {
		return
	}
	c.passed = c.counts[0]
	c.counts = c.counts[1:]
	if len(c.counts) == 0 {
		c.passed = 0
		c.current = 0
		return
	}
	c.current = c.counts[len(c.counts)-1] - c.passed
}

// Params is the transition-tracker configuration contract: strictly
// exceeding Max triggers FlashFail, reaching Min makes a frame eligible for
// ExtendedFail, reaching Warning makes it PassWithWarning. The caller must
// ensure Min <= Warning <= Max (enforced by package config's Validate).
// ExtendedFailSeconds and ExtendedFailWindow size the W4/W5 windows
// (seconds); both default to 4s/5s but are tunable through config.Config.
type Params struct {
	MaxTransitions     int
	MinTransitions     int
	WarningTransitions int

	ExtendedFailSeconds float64
	ExtendedFailWindow  float64
}

const w1Seconds = 1

// Tracker is the per-stream transition tracker. One Tracker is created per
// analysed stream and is never reused across streams.
type Tracker struct {
	params Params
	wm     window.Manager
	w1, w4, w5 window.Handle

	lumW1, redW1 counter
	lumW5, redW5 counter

	lumFlags, redFlags         VerdictFlags
	lumIncidents, redIncidents IncidentTotals
}

// New constructs a Tracker and registers its three windows (W1, W4, W5) with
// wm. fps is the stream's nominal frame rate, used to size the frame-count
// windows; wm may be either window.NewFPSManager() or window.NewTimeManager()
// depending on Config.AnalyseByTime.
func New(fps int, params Params, wm window.Manager) *Tracker {
	return &Tracker{
		params: params,
		wm:     wm,
		w1:     wm.Register(fps, w1Seconds),
		w4:     wm.Register(int(params.ExtendedFailSeconds*float64(fps)), params.ExtendedFailSeconds),
		w5:     wm.Register(int(params.ExtendedFailWindow*float64(fps)), params.ExtendedFailWindow),
	}
}

// Observe runs one frame through the tracker. The caller must have already
// notified wm of this frame's arrival (via Manager.Arrive) before calling
// Observe, since multiple components may share the same window.Manager
// instance and arrival notification happens exactly once per frame.
func (t *Tracker) Observe(lumTransition, redTransition bool) (lumResult, redResult FlashResult) {
	t.updateCounters()

	lumCurrent := t.lumW1.updateCurrent(lumTransition)
	redCurrent := t.redW1.updateCurrent(redTransition)

	t.lumW5.updateCurrent(t.params.MinTransitions <= lumCurrent && lumCurrent <= t.params.MaxTransitions)
	t.redW5.updateCurrent(t.params.MinTransitions <= redCurrent && redCurrent <= t.params.MaxTransitions)

	f4 := t.wm.Size(t.w4)

	lumResult = t.evaluate(lumCurrent, t.lumW5.current, f4, &t.lumFlags, &t.lumIncidents)
	redResult = t.evaluate(redCurrent, t.redW5.current, f4, &t.redFlags, &t.redIncidents)
	return lumResult, redResult
}

// updateCounters advances the passed prefixes on the W1 and W5 counters by
// however many frames aged out of those windows on the most recent arrival.
func (t *Tracker) updateCounters() {
	for n := t.wm.AgedOut(t.w1); n > 0; n-- {
		t.lumW1.updatePassed()
		t.redW1.updatePassed()
	}
	for n := t.wm.AgedOut(t.w5); n > 0; n-- {
		t.lumW5.updatePassed()
		t.redW5.updatePassed()
	}
}

// evaluate implements the per-channel flash verdict decision.
func (t *Tracker) evaluate(w1Current, w5Current, f4 int, flags *VerdictFlags, incidents *IncidentTotals) FlashResult {
	switch {
	case w1Current > t.params.MaxTransitions:
		flags.FlashFail = true
		incidents.FlashFailFrames++
		return FlashFail
	case w5Current >= f4 && w1Current >= t.params.MinTransitions:
		flags.ExtendedFail = true
		incidents.ExtendedFailFrames++
		return ExtendedFail
	case w1Current >= t.params.WarningTransitions:
		flags.PassWithWarning = true
		incidents.PassWithWarningFrames++
		return PassWithWarning
	default:
		return Pass
	}
}

// LuminanceTransitions returns the current W1 luminance transition count.
func (t *Tracker) LuminanceTransitions() int { return t.lumW1.current }

// RedTransitions returns the current W1 red-saturation transition count.
func (t *Tracker) RedTransitions() int { return t.redW1.current }

// LuminanceExtendedFailCount returns the current W5 luminance count.
func (t *Tracker) LuminanceExtendedFailCount() int { return t.lumW5.current }

// RedExtendedFailCount returns the current W5 red-saturation count.
func (t *Tracker) RedExtendedFailCount() int { return t.redW5.current }

// LuminanceFlags returns the accumulated luminance verdict flags.
func (t *Tracker) LuminanceFlags() VerdictFlags { return t.lumFlags }

// RedFlags returns the accumulated red-saturation verdict flags.
func (t *Tracker) RedFlags() VerdictFlags { return t.redFlags }

// LuminanceIncidents returns the accumulated luminance incident totals.
func (t *Tracker) LuminanceIncidents() IncidentTotals { return t.lumIncidents }

// RedIncidents returns the accumulated red-saturation incident totals.
func (t *Tracker) RedIncidents() IncidentTotals { return t.redIncidents }
