/*
NAME
  config.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config contains the configuration settings for the
// photosensitivity analysis core.
package config

import (
	"fmt"
	"math"

	"github.com/ausocean/utils/logging"
)

// Default variable values, each declared as a top-level const rather than
// inlined as a magic number.
const (
	defaultLuminanceFlashThreshold = 0.1
	defaultLuminanceDarkThreshold  = 0.8
	defaultRedFlashThreshold       = 20.0
	defaultRedDarkThreshold        = 0.8
	defaultFlashAreaProportion     = 0.25

	defaultMaxTransitions     = 6
	defaultMinTransitions     = 4
	defaultWarningTransitions = 4

	defaultExtendedFailSeconds = 4.0
	defaultExtendedFailWindow  = 5.0

	defaultPatternMinStripes        = 5
	defaultPatternLightLuminanceMin = 0.25
	defaultPatternTimeThreshold     = 3.0
	defaultPatternAreaProportion    = 0.25

	defaultFrameResizeProportion = 0.5
	defaultFrameRate             = 25

	defaultVerbosity = logging.Error
)

// Config provides every parameter the photosensitivity core needs to
// analyse one stream. A new Config must be passed through Validate before
// use; Validate both defaults correctable fields (reporting each through
// LogInvalidField) and returns a hard error for combinations that can never
// be corrected by defaulting.
type Config struct {
	// FrameRate is the stream's nominal frame rate, used to size the W1/W4/W5
	// transition windows and the pattern-persistence frame count.
	FrameRate uint

	// AnalyseByTime selects the timestamp-based SlidingWindowManager instead
	// of the fixed-FPS frame-count one, for variable/real-time streams.
	AnalyseByTime bool

	// LuminanceFlashThreshold is the minimum |combined signed diff| on the
	// luminance channel to register a transition.
	LuminanceFlashThreshold float32

	// LuminanceDarkThreshold is the darker-of-the-pair mean luminance must be
	// below this for a luminance transition to fire.
	LuminanceDarkThreshold float32

	// RedFlashThreshold is the minimum |combined signed diff| on the
	// red-saturation channel to register a transition.
	RedFlashThreshold float32

	// RedDarkThreshold is the darker-of-the-pair mean must be below this for a
	// red-saturation transition to fire, only consulted if RedApplyDarkThreshold.
	RedDarkThreshold float32

	// RedApplyDarkThreshold controls whether the darker-mean gate applies to
	// the red-saturation channel at all (resolved Open Question, default
	// false, matching the original's final shipped configuration).
	RedApplyDarkThreshold bool

	// FlashAreaProportion is the minimum changed-pixel fraction (of total
	// frame pixels) for a frame-to-frame difference to be considered at all,
	// shared by both channels.
	FlashAreaProportion float64

	// MaxTransitions, MinTransitions and WarningTransitions configure the
	// TransitionTracker's per-frame verdict thresholds. Must satisfy
	// MinTransitions <= WarningTransitions <= MaxTransitions.
	MaxTransitions     int
	MinTransitions     int
	WarningTransitions int

	// ExtendedFailSeconds and ExtendedFailWindow size the W4/W5 windows (in
	// seconds) used for sustained, near-threshold transition activity.
	ExtendedFailSeconds float64
	ExtendedFailWindow  float64

	// PatternEnabled turns the FFT-based stripe-pattern detector on or off.
	PatternEnabled bool

	// PatternMinStripes is the minimum grouped-contour count for a detected
	// region to count as a stripe pattern.
	PatternMinStripes int

	// PatternLightLuminanceMin is the minimum mean light-region luminance
	// (normalised 0-1) for a pattern to count as harmful.
	PatternLightLuminanceMin float64

	// PatternTimeThreshold (seconds) is how long a harmful pattern must
	// persist before the stream is failed.
	PatternTimeThreshold float64

	// PatternAreaProportion is the minimum pattern-region area, as a
	// proportion of the (possibly downscaled) frame area, to count as
	// harmful.
	PatternAreaProportion float64

	// FrameResizeEnabled, FrameResizeProportion configure the optional
	// pre-analysis frame downscale.
	FrameResizeEnabled    bool
	FrameResizeProportion float64

	// Logger holds an implementation of logging.Logger, used by Validate,
	// Update and the analyser. Must be set before Validate is called.
	Logger logging.Logger

	// LogLevel is the core's logging verbosity level. Valid values are
	// defined by enums from the logger package: logging.Debug, logging.Info,
	// logging.Warning, logging.Error, logging.Fatal.
	LogLevel int8

	Suppress bool // Holds logger suppression state.
}

// Validate defaults correctable fields (reporting each through
// LogInvalidField) and returns a non-nil error for configuration errors that
// can never be corrected by defaulting: non-finite thresholds, an
// inconsistent min/warning/max ordering, or an area proportion that is
// negative or greater than 1 (an unset, zero area proportion is defaulted).
func (c *Config) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}

	if !finite32(c.LuminanceFlashThreshold) || !finite32(c.LuminanceDarkThreshold) ||
		!finite32(c.RedFlashThreshold) || !finite32(c.RedDarkThreshold) {
		return fmt.Errorf("config: non-finite threshold value")
	}
	if c.MinTransitions > c.WarningTransitions || c.WarningTransitions > c.MaxTransitions {
		return fmt.Errorf("config: transition thresholds must satisfy min(%d) <= warning(%d) <= max(%d)",
			c.MinTransitions, c.WarningTransitions, c.MaxTransitions)
	}
	if c.FlashAreaProportion <= 0 || c.FlashAreaProportion > 1 {
		return fmt.Errorf("config: FlashAreaProportion %v outside (0, 1]", c.FlashAreaProportion)
	}
	if c.PatternAreaProportion <= 0 || c.PatternAreaProportion > 1 {
		return fmt.Errorf("config: PatternAreaProportion %v outside (0, 1]", c.PatternAreaProportion)
	}
	if c.ExtendedFailSeconds < 0 || c.ExtendedFailWindow < 0 || c.PatternTimeThreshold < 0 {
		return fmt.Errorf("config: time thresholds must be non-negative")
	}

	return nil
}

func finite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Update takes a map of configuration variable names and their corresponding
// values, parses the string values into the correct type, and sets the
// Config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

// LogInvalidField logs, at Info level, that a field was bad or unset and is
// being defaulted.
func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
