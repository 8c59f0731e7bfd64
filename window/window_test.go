/*
NAME
  window_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package window

import "testing"

func TestFPSWindowSaturates(t *testing.T) {
	m := NewFPSManager()
	h := m.Register(3, 0)

	wantAgedOut := []int{0, 0, 0, 1, 1}
	wantSize := []int{1, 2, 3, 3, 3}

	for i, ts := range []int64{0, 1, 2, 3, 4} {
		m.Arrive(ts)
		if got := m.AgedOut(h); got != wantAgedOut[i] {
			t.Errorf("arrival %d: AgedOut = %d, want %d", i, got, wantAgedOut[i])
		}
		if got := m.Size(h); got != wantSize[i] {
			t.Errorf("arrival %d: Size = %d, want %d", i, got, wantSize[i])
		}
	}
}

func TestFPSWindowReset(t *testing.T) {
	m := NewFPSManager()
	h := m.Register(3, 0)
	m.Arrive(0)
	m.Arrive(1)
	m.Reset(h, true)
	if got := m.Size(h); got != 1 {
		t.Errorf("Size after reset = %d, want 1", got)
	}
	if got := m.AgedOut(h); got != 0 {
		t.Errorf("AgedOut after reset = %d, want 0", got)
	}
}

// S6 — timestamp windowing drop.
func TestTimeWindowS6(t *testing.T) {
	m := NewTimeManager()
	h := m.Register(0, 1) // 1-second window.

	arrivals := []int64{0, 250, 500, 750, 1750}
	var lastAgedOut, lastSize int
	for _, ts := range arrivals {
		m.Arrive(ts)
		lastAgedOut = m.AgedOut(h)
		lastSize = m.Size(h)
	}

	if lastAgedOut != 4 {
		t.Errorf("AgedOut = %d, want 4", lastAgedOut)
	}
	if lastSize != 1 {
		t.Errorf("Size = %d, want 1", lastSize)
	}
}

func TestTimeWindowGradualEviction(t *testing.T) {
	m := NewTimeManager()
	h := m.Register(0, 1)

	// Arrivals every 400ms: window holds at most ceil(1000/400) ~ entries
	// whose cumulative delta sum stays below 1000ms.
	arrivals := []int64{0, 400, 800, 1200, 1600}
	var aged []int
	for _, ts := range arrivals {
		m.Arrive(ts)
		aged = append(aged, m.AgedOut(h))
	}

	// 0: first frame, no eviction.
	// 400: dt=400, sum=400 < 1000, no eviction.
	// 800: dt=400, sum=800 < 1000, no eviction.
	// 1200: dt=400, sum+dt=1200 >= 1000, evict oldest (0), sum=800.
	// 1600: dt=400, sum+dt=1200 >= 1000, evict oldest (400), sum=800.
	want := []int{0, 0, 0, 1, 1}
	for i := range want {
		if aged[i] != want[i] {
			t.Errorf("arrival %d: AgedOut = %d, want %d", i, aged[i], want[i])
		}
	}
}

func TestTimeWindowNonMonotonicRecovers(t *testing.T) {
	m := NewTimeManager()
	h := m.Register(0, 1)

	m.Arrive(1000)
	m.Arrive(1200)
	nonMonotonic := m.Arrive(900) // Goes backwards.

	if !nonMonotonic {
		t.Fatal("expected non-monotonic arrival to be reported")
	}
	if got := m.Size(h); got != 1 {
		t.Errorf("Size after non-monotonic reset = %d, want 1", got)
	}
	if got := m.AgedOut(h); got != 2 {
		t.Errorf("AgedOut after non-monotonic reset = %d, want 2 (prior size)", got)
	}
}
