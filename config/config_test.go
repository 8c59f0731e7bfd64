/*
NAME
  config_test.go

DESCRIPTION
  config_test.go provides testing for the Config struct methods (Validate and
  Update).

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"testing"

	"github.com/ausocean/utils/logging"
	"github.com/google/go-cmp/cmp"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestValidateDefaults(t *testing.T) {
	dl := &dumbLogger{}

	want := Config{
		Logger:                   dl,
		FrameRate:                defaultFrameRate,
		LuminanceFlashThreshold:  defaultLuminanceFlashThreshold,
		LuminanceDarkThreshold:   defaultLuminanceDarkThreshold,
		RedFlashThreshold:        defaultRedFlashThreshold,
		RedDarkThreshold:         defaultRedDarkThreshold,
		FlashAreaProportion:      defaultFlashAreaProportion,
		MaxTransitions:           defaultMaxTransitions,
		MinTransitions:           defaultMinTransitions,
		WarningTransitions:       defaultWarningTransitions,
		ExtendedFailSeconds:      defaultExtendedFailSeconds,
		ExtendedFailWindow:       defaultExtendedFailWindow,
		PatternMinStripes:        defaultPatternMinStripes,
		PatternLightLuminanceMin: defaultPatternLightLuminanceMin,
		PatternTimeThreshold:     defaultPatternTimeThreshold,
		PatternAreaProportion:    defaultPatternAreaProportion,
		LogLevel:                 defaultVerbosity,
	}

	got := Config{Logger: dl}
	if err := got.Validate(); err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if !cmp.Equal(got, want) {
		t.Errorf("configs not equal\nwant: %+v\ngot: %+v", want, got)
	}
}

func TestValidateRejectsBadTransitionOrdering(t *testing.T) {
	dl := &dumbLogger{}
	c := Config{
		Logger:                  dl,
		FrameRate:                25,
		LuminanceFlashThreshold:  0.1,
		LuminanceDarkThreshold:   0.2,
		RedFlashThreshold:        20,
		RedDarkThreshold:         0.2,
		FlashAreaProportion:      0.25,
		MaxTransitions:           4,
		MinTransitions:           6, // Min > Max: invalid.
		WarningTransitions:       4,
		ExtendedFailSeconds:      4,
		ExtendedFailWindow:       5,
		PatternMinStripes:        5,
		PatternLightLuminanceMin: 0.25,
		PatternTimeThreshold:     3,
		PatternAreaProportion:    0.25,
		LogLevel:                 logging.Error,
	}
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for min > max transitions, got nil")
	}
}

func TestValidateRejectsAreaProportionOutOfRange(t *testing.T) {
	dl := &dumbLogger{}
	c := Config{
		Logger:                  dl,
		FrameRate:                25,
		LuminanceFlashThreshold:  0.1,
		LuminanceDarkThreshold:   0.2,
		RedFlashThreshold:        20,
		RedDarkThreshold:         0.2,
		FlashAreaProportion:      1.5, // Outside (0, 1].
		MaxTransitions:           6,
		MinTransitions:           4,
		WarningTransitions:       4,
		ExtendedFailSeconds:      4,
		ExtendedFailWindow:       5,
		PatternMinStripes:        5,
		PatternLightLuminanceMin: 0.25,
		PatternTimeThreshold:     3,
		PatternAreaProportion:    0.25,
		LogLevel:                 logging.Error,
	}
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for FlashAreaProportion outside (0, 1], got nil")
	}
}

func TestUpdate(t *testing.T) {
	updateMap := map[string]string{
		"FrameRate":                "30",
		"AnalyseByTime":            "true",
		"LuminanceFlashThreshold":  "0.12",
		"LuminanceDarkThreshold":   "0.22",
		"RedFlashThreshold":        "25",
		"RedDarkThreshold":         "0.3",
		"RedApplyDarkThreshold":    "true",
		"FlashAreaProportion":      "0.3",
		"MaxTransitions":           "7",
		"MinTransitions":           "5",
		"WarningTransitions":       "5",
		"ExtendedFailSeconds":      "4",
		"ExtendedFailWindow":       "5",
		"PatternEnabled":           "true",
		"PatternMinStripes":        "6",
		"PatternLightLuminanceMin": "0.3",
		"PatternTimeThreshold":     "2.5",
		"PatternAreaProportion":    "0.2",
		"FrameResizeEnabled":       "true",
		"FrameResizeProportion":    "0.5",
		"logging":                  "Warning",
		"Suppress":                 "true",
	}

	dl := &dumbLogger{}

	want := Config{
		Logger:                   dl,
		FrameRate:                30,
		AnalyseByTime:            true,
		LuminanceFlashThreshold:  0.12,
		LuminanceDarkThreshold:   0.22,
		RedFlashThreshold:        25,
		RedDarkThreshold:         0.3,
		RedApplyDarkThreshold:    true,
		FlashAreaProportion:      0.3,
		MaxTransitions:           7,
		MinTransitions:           5,
		WarningTransitions:       5,
		ExtendedFailSeconds:      4,
		ExtendedFailWindow:       5,
		PatternEnabled:           true,
		PatternMinStripes:        6,
		PatternLightLuminanceMin: 0.3,
		PatternTimeThreshold:     2.5,
		PatternAreaProportion:    0.2,
		FrameResizeEnabled:       true,
		FrameResizeProportion:    0.5,
		LogLevel:                 logging.Warning,
		Suppress:                 true,
	}

	got := Config{Logger: dl}
	got.Update(updateMap)
	if !cmp.Equal(want, got) {
		t.Errorf("configs not equal\nwant: %+v\ngot: %+v", want, got)
	}
}
