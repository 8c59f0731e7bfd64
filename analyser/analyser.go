/*
NAME
  analyser.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package analyser orchestrates one frame at a time through the
// photosensitivity analysis pipeline: colour-space conversion, the two
// flash-transition differencers, the transition tracker, and the
// stripe-pattern detector, assembling a FrameRecord per frame and a final
// AnalysisResult once the stream ends.
package analyser

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/ausocean/photosense/colortable"
	"github.com/ausocean/photosense/config"
	"github.com/ausocean/photosense/diff"
	"github.com/ausocean/photosense/pattern"
	"github.com/ausocean/photosense/scalarfield"
	"github.com/ausocean/photosense/tracker"
	"github.com/ausocean/photosense/window"
)

// Analyser is the per-stream orchestrator. Exactly one is created per
// analysed stream; it owns every other component (colour table, both
// channel differencers, the sliding-window manager, the transition tracker
// and the pattern detector) exclusively and is never reused across streams.
type Analyser struct {
	cfg config.Config

	srcWidth, srcHeight int // Dimensions the stream was opened with; geometry-checked per frame.
	width, height       int // Effective analysis dimensions, after the optional resize step.
	workers             int

	table   *colortable.Table
	lumDiff *diff.Differencer
	redDiff *diff.Differencer
	wm      window.Manager
	tracker *tracker.Tracker
	pattern *pattern.Detector

	frameCount  int
	startTime   time.Time
	haveFirstTs bool
	firstTsMs   int64
	lastTsMs    int64
}

// New constructs an Analyser for a stream of the given nominal dimensions.
// cfg is validated before use; a non-nil error wraps ErrInvalidConfiguration,
// fatal at construction.
func New(cfg config.Config, width, height int) (*Analyser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(ErrInvalidConfiguration, err.Error())
	}

	a := &Analyser{
		cfg:       cfg,
		srcWidth:  width,
		srcHeight: height,
		width:     width,
		height:    height,
		startTime: time.Now(),
	}

	if cfg.FrameResizeEnabled {
		a.width = int(float64(width) * cfg.FrameResizeProportion)
		a.height = int(float64(height) * cfg.FrameResizeProportion)
		if a.width < 1 {
			a.width = 1
		}
		if a.height < 1 {
			a.height = 1
		}
	}
	a.workers = scalarfield.WorkerCount(a.height)

	a.table = colortable.New()

	fps := int(cfg.FrameRate)
	frameSize := a.width * a.height

	a.lumDiff = diff.New(diff.Policy{
		FlashThreshold: cfg.LuminanceFlashThreshold,
		DarkThreshold:  cfg.LuminanceDarkThreshold,
		AreaProportion: cfg.FlashAreaProportion,
		ApplyDarkGate:  true,
	}, fps, frameSize)

	a.redDiff = diff.New(diff.Policy{
		FlashThreshold: cfg.RedFlashThreshold,
		DarkThreshold:  cfg.RedDarkThreshold,
		AreaProportion: cfg.FlashAreaProportion,
		ApplyDarkGate:  cfg.RedApplyDarkThreshold,
	}, fps, frameSize)

	if cfg.AnalyseByTime {
		a.wm = window.NewTimeManager()
	} else {
		a.wm = window.NewFPSManager()
	}

	a.tracker = tracker.New(fps, tracker.Params{
		MaxTransitions:      cfg.MaxTransitions,
		MinTransitions:      cfg.MinTransitions,
		WarningTransitions:  cfg.WarningTransitions,
		ExtendedFailSeconds: cfg.ExtendedFailSeconds,
		ExtendedFailWindow:  cfg.ExtendedFailWindow,
	}, a.wm)

	if cfg.PatternEnabled {
		finder := pattern.NewCVFinder(a.width, a.height)
		a.pattern = pattern.NewDetector(fps, pattern.Params{
			AreaProportion:    cfg.PatternAreaProportion,
			MinStripes:        cfg.PatternMinStripes,
			TimeThreshold:     cfg.PatternTimeThreshold,
			LightLuminanceMin: cfg.PatternLightLuminanceMin,
		}, finder)
	}

	return a, nil
}

// ProcessFrame runs one decoded frame through the full per-frame pipeline
// and returns its FrameRecord. A non-nil error is fatal: either
// ErrFrameGeometryMismatch, or a wrapped scalar-field conversion error (for
// example a pixel buffer whose length is not Width*Height*3). The caller
// should stop feeding frames and call Finalize. Every other per-frame anomaly
// is recovered locally and recorded on the FrameRecord itself, never returned
// as an error.
func (a *Analyser) ProcessFrame(f Frame) (FrameRecord, error) {
	if f.Width != a.srcWidth || f.Height != a.srcHeight {
		return FrameRecord{}, errors.Wrap(ErrFrameGeometryMismatch,
			fmt.Sprintf("frame %d is %dx%d, stream configured for %dx%d", f.Index, f.Width, f.Height, a.srcWidth, a.srcHeight))
	}

	pixels, w, h := f.Pixels, f.Width, f.Height
	if a.cfg.FrameResizeEnabled {
		pixels, w, h = resizeBGR(pixels, w, h, a.cfg.FrameResizeProportion)
	}

	srgb, err := scalarfield.ToSRGB(pixels, w, h, a.table, a.workers)
	if err != nil {
		return FrameRecord{}, errors.Wrap(err, "analyser: sRGB conversion")
	}

	luminance, err := scalarfield.Luminance(srgb, a.workers)
	if err != nil {
		return FrameRecord{}, errors.Wrap(err, "analyser: luminance field")
	}
	lumTransition, lumSignedDiff, lumAcc := a.lumDiff.Observe(luminance)

	red, err := scalarfield.RedSaturation(srgb, a.workers)
	if err != nil {
		return FrameRecord{}, errors.Wrap(err, "analyser: red-saturation field")
	}
	redTransition, redSignedDiff, redAcc := a.redDiff.Observe(red)

	nonMonotonic := a.wm.Arrive(f.TimestampMs)
	if nonMonotonic && a.cfg.Logger != nil {
		a.cfg.Logger.Warning("non-monotonic frame timestamp, windows reset", "frame", f.Index, "timestamp", f.TimestampMs)
	}

	lumResult, redResult := a.tracker.Observe(lumTransition, redTransition)

	patResult, patPattern, patArea := pattern.Pass, pattern.Pattern{}, 0
	if a.pattern != nil {
		var err error
		patResult, patPattern, err = a.pattern.CheckFrame(luminance)
		if err != nil {
			if a.cfg.Logger != nil {
				a.cfg.Logger.Warning("pattern pipeline skipped this frame", "frame", f.Index, "error", err.Error())
			}
			patResult = pattern.Pass
		}
		patArea = patPattern.Area
	}

	a.frameCount++
	a.recordTimestamp(f.TimestampMs)

	rec := FrameRecord{
		FrameIndex:                 f.Index,
		TimestampMs:                f.TimestampMs,
		LuminanceMean:              a.lumDiff.Mean(),
		LuminanceFlashAreaPercent:  a.lumDiff.FlashAreaProportion(),
		AvgLuminanceDiff:           lumSignedDiff,
		AvgLuminanceDiffAcc:        lumAcc,
		RedMean:                    a.redDiff.Mean(),
		RedFlashAreaPercent:        a.redDiff.FlashAreaProportion(),
		AvgRedDiff:                 redSignedDiff,
		AvgRedDiffAcc:              redAcc,
		LuminanceTransitions:       a.tracker.LuminanceTransitions(),
		RedTransitions:             a.tracker.RedTransitions(),
		LuminanceExtendedFailCount: a.tracker.LuminanceExtendedFailCount(),
		RedExtendedFailCount:       a.tracker.RedExtendedFailCount(),
		LuminanceFrameResult:       lumResult,
		RedFrameResult:             redResult,
		PatternDetectedLines:       patPattern.NComponents,
		PatternFrameResult:         patResult,
		NonMonotonicTimestamp:      nonMonotonic,
	}
	if a.pattern != nil && a.width > 0 && a.height > 0 {
		rec.PatternAreaPercent = float64(patArea) / float64(a.width*a.height)
	}

	return rec, nil
}

// recordTimestamp tracks the first and last timestamps observed, used to
// derive AnalysisResult.VideoLengthMS at Finalize.
func (a *Analyser) recordTimestamp(ts int64) {
	if !a.haveFirstTs {
		a.firstTsMs = ts
		a.haveFirstTs = true
	}
	a.lastTsMs = ts
}

// Finalize ends the stream and returns the AnalysisResult covering every
// frame consumed so far: the result always reflects frames actually
// analysed, whether the stream ran to completion or was cancelled early.
func (a *Analyser) Finalize() AnalysisResult {
	patternFail := a.pattern != nil && a.pattern.IsFail()
	overall, failures := rollUp(a.tracker.LuminanceFlags(), a.tracker.RedFlags(), patternFail)

	res := AnalysisResult{
		TotalFrames:        a.frameCount,
		AnalysisTimeMS:     time.Since(a.startTime).Milliseconds(),
		VideoLengthMS:      a.lastTsMs - a.firstTsMs,
		OverallResult:      overall,
		Failures:           failures,
		LuminanceIncidents: a.tracker.LuminanceIncidents(),
		RedIncidents:       a.tracker.RedIncidents(),
	}
	if a.pattern != nil {
		res.PatternFailFrames = a.pattern.Incidents().PatternFailFrames
	}
	return res
}
