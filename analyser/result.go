/*
NAME
  result.go

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

import "github.com/ausocean/photosense/tracker"

// OverallResult is the clip-level verdict rolled up from every channel's
// VerdictFlags plus the pattern detector's fail state.
type OverallResult int

const (
	Pass OverallResult = iota
	PassWithWarning
	Fail
)

func (r OverallResult) String() string {
	switch r {
	case Pass:
		return "Pass"
	case PassWithWarning:
		return "PassWithWarning"
	case Fail:
		return "Fail"
	default:
		return "Unknown"
	}
}

// FailureKind enumerates the distinct reasons a clip can fail or warn,
// reported as a set on AnalysisResult.Failures.
type FailureKind int

const (
	LuminanceFlashFailure FailureKind = iota
	RedFlashFailure
	LuminanceExtendedFlashFailure
	RedExtendedFlashFailure
	PatternFailure
)

func (k FailureKind) String() string {
	switch k {
	case LuminanceFlashFailure:
		return "LuminanceFlashFailure"
	case RedFlashFailure:
		return "RedFlashFailure"
	case LuminanceExtendedFlashFailure:
		return "LuminanceExtendedFlashFailure"
	case RedExtendedFlashFailure:
		return "RedExtendedFlashFailure"
	case PatternFailure:
		return "PatternFailure"
	default:
		return "Unknown"
	}
}

// AnalysisResult is the clip-level output produced once a stream ends (by
// exhaustion or cancellation): it always reflects the frames actually
// analysed, never a promise about frames never seen.
type AnalysisResult struct {
	TotalFrames    int
	AnalysisTimeMS int64
	VideoLengthMS  int64

	OverallResult OverallResult
	Failures      []FailureKind

	LuminanceIncidents tracker.IncidentTotals
	RedIncidents       tracker.IncidentTotals

	PatternFailFrames int
}

// rollUp derives the overall verdict and failure-kind set from the
// accumulated per-channel VerdictFlags and the pattern detector's fail
// state.
func rollUp(lum, red tracker.VerdictFlags, patternFail bool) (OverallResult, []FailureKind) {
	var failures []FailureKind

	if lum.FlashFail {
		failures = append(failures, LuminanceFlashFailure)
	}
	if red.FlashFail {
		failures = append(failures, RedFlashFailure)
	}
	if lum.ExtendedFail {
		failures = append(failures, LuminanceExtendedFlashFailure)
	}
	if red.ExtendedFail {
		failures = append(failures, RedExtendedFlashFailure)
	}
	if patternFail {
		failures = append(failures, PatternFailure)
	}

	switch {
	case lum.FlashFail || red.FlashFail || patternFail:
		return Fail, failures
	case lum.ExtendedFail || red.ExtendedFail:
		return Fail, failures
	case lum.PassWithWarning || red.PassWithWarning:
		return PassWithWarning, failures
	default:
		return Pass, failures
	}
}
